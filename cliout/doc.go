// Output goes to stdout by default. Color is used only when stdout is a
// terminal (golang.org/x/term) and NO_COLOR is unset.
//
//	if err := cliout.SetFormat(outputFlag); err != nil {
//		return err
//	}
//	return cliout.Print(result, func() {
//		cliout.Success("parsed %s", result.Href)
//		cliout.Label("host", u.Hostname())
//	})
package cliout

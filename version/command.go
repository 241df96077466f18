package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jongio/urlkit/cliout"
)

// NewCommand returns a "version" command printing info in the current
// cliout format.
func NewCommand(info *Info) *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: fmt.Sprintf("Display %s version information", info.Name),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if quiet && !cliout.IsJSON() {
				fmt.Fprintln(cmd.OutOrStdout(), info.Version)
				return nil
			}
			return cliout.Print(info, func() {
				cliout.Header(info.Name + " Version")
				cliout.Label("Version", info.Version)
				cliout.Label("Git Commit", info.GitCommit)
				cliout.Label("Build Date", info.BuildDate)
				cliout.Label("Go", info.GoVersion)
			})
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only print version number")
	return cmd
}

package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/jongio/urlkit/cliout"
	"github.com/jongio/urlkit/logutil"
	"github.com/jongio/urlkit/urlparse"
)

func newParseCmd(a *app) *cobra.Command {
	var base, state string
	cmd := &cobra.Command{
		Use:   "parse <input>",
		Short: "Parse a URL and print its components",
		Example: `  urlkit parse "https://EXAMPLE.com/a/../b?q#f"
  urlkit parse ../c --base https://example.org/a/b
  urlkit parse 8080 --base https://example.org/ --state port`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("base") {
				base = a.cfg.Base
			}
			req := urlparse.Request{Input: args[0], Base: base, State: state}
			m, err := req.Run(urlparse.WithLogger(logutil.NewLogger("urlparse")))
			if err != nil {
				return err
			}
			if err := printResult(m); err != nil {
				return err
			}
			if m.Failed() {
				return m.Err()
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&base, "base", "b", "", "Base URL for relative input")
	cmd.Flags().StringVarP(&state, "state", "s", "", "State override, e.g. port or hostname; the input replaces that component of --base")
	return cmd
}

func printResult(m *urlparse.Machine) error {
	return cliout.Print(m.Result(), func() {
		u := m.URL()
		if m.Failed() {
			cliout.Error("Failed to parse: %v", m.Err())
		} else {
			cliout.Header(u.String())
			cliout.Label("protocol", u.Protocol())
			cliout.Label("username", u.Username)
			cliout.Label("password", u.Password)
			cliout.Label("host", u.HostString())
			cliout.Label("hostname", u.Hostname())
			cliout.Label("host kind", u.Host.Kind().String())
			cliout.Label("port", u.PortString())
			cliout.Label("pathname", u.Pathname())
			cliout.Label("search", u.Search())
			cliout.Label("hash", u.Hash())
		}

		errs := m.ValidationErrors()
		if len(errs) == 0 {
			return
		}
		names := make([]string, 0, len(errs))
		for _, err := range errs {
			names = append(names, err.Error())
		}
		cliout.Warning("%d validation error(s)", len(errs))
		for _, name := range names {
			cliout.Bullet("%s", name)
		}
		logutil.Debug("validation errors", "errors", strings.Join(names, ", "))
	})
}

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jongio/urlkit/cliout"
	"github.com/jongio/urlkit/config"
	"github.com/jongio/urlkit/logutil"
	"github.com/jongio/urlkit/version"
)

// app carries the loaded configuration to the subcommands.
type app struct {
	cfg        *config.Config
	configPath string
	output     string
	debug      bool
	logLevel   string
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "urlkit",
		Short:         "Parse and inspect URLs the way browsers do",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.output, "output", "o", "default", "Output format (default, json)")
	pf.BoolVar(&a.debug, "debug", false, "Enable debug logging")
	pf.StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pf.StringVar(&a.configPath, "config", "", "Config file (default "+config.DefaultFile+")")

	root.AddCommand(
		newParseCmd(a),
		newCheckCmd(a),
		newServeCmd(a),
		newMCPCmd(a),
		version.NewCommand(version.New("urlkit")),
	)
	return root
}

// setup loads the config and applies the flags given on the command line
// over it.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	cmd.Flags().Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "output":
			cfg.Output = a.output
		case "debug":
			cfg.Debug = a.debug
		case "log-level":
			cfg.LogLevel = a.logLevel
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	logutil.SetupLogger(cfg.Debug, cfg.StructuredLogs)
	if cfg.LogLevel != "" && !cfg.Debug {
		logutil.SetLevel(logutil.ParseLevel(cfg.LogLevel))
	}
	if err := cliout.SetFormat(cfg.Output); err != nil {
		return err
	}
	a.cfg = cfg
	logutil.Debug("config loaded", "path", a.configPath, "output", cfg.Output, "level", int(logutil.GetLevel()))
	return nil
}

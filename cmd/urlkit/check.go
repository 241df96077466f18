package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jongio/urlkit/cache"
	"github.com/jongio/urlkit/cliout"
	"github.com/jongio/urlkit/conformance"
	"github.com/jongio/urlkit/fileutil"
	"github.com/jongio/urlkit/logutil"
	"github.com/jongio/urlkit/metrics"
	"github.com/jongio/urlkit/security"
	"github.com/jongio/urlkit/version"
)

var errNoTestData = errors.New("no test data: pass a file or --fetch")

func newCheckCmd(a *app) *cobra.Command {
	var fetch, refresh bool
	var reportPath string
	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Run the web-platform-tests URL conformance data",
		Long: `Run urltestdata.json from web-platform-tests against the parser.

With --fetch the data is downloaded from conformance.dataURL and cached for
conformance.cacheTTL. Exits non-zero when any case fails.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var cases []conformance.Case
			var err error
			switch {
			case len(args) == 1:
				cases, err = conformance.LoadFile(args[0])
			case fetch:
				cases, err = fetchCases(cmd.Context(), a, refresh)
			default:
				return errNoTestData
			}
			if err != nil {
				return err
			}

			report := conformance.Run(cases)
			metrics.RecordConformance(report.Passed, report.Failed, report.Skipped)
			logutil.Debug("conformance run", "total", report.Total, "failed", report.Failed)

			if reportPath != "" {
				if err := security.ValidatePath(reportPath); err != nil {
					return err
				}
				if err := fileutil.AtomicWriteJSON(reportPath, report); err != nil {
					return err
				}
			}
			if err := printReport(report); err != nil {
				return err
			}
			if report.Failed > 0 {
				return fmt.Errorf("%d of %d cases failed", report.Failed, report.Total)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&fetch, "fetch", false, "Download the test data instead of reading a file")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Ignore cached test data when fetching")
	cmd.Flags().StringVar(&reportPath, "report", "", "Write the full JSON report to this path")
	return cmd
}

func fetchCases(ctx context.Context, a *app, refresh bool) ([]conformance.Case, error) {
	cc := a.cfg.Conformance
	c := cache.NewManager(cache.Options{Dir: cc.CacheDir, TTL: cc.CacheTTL, Version: version.Version})
	if refresh {
		if err := c.Invalidate(cc.DataURL); err != nil {
			return nil, err
		}
	}

	f := conformance.NewFetcher(cc.DataURL, c, conformance.FetchOptions{
		Retries: cc.Retries,
		Timeout: cc.Timeout,
		Logger:  logutil.NewLogger("conformance"),
	})
	return f.Fetch(ctx)
}

func printReport(r *conformance.Report) error {
	return cliout.Print(r, func() {
		cliout.Header("URL conformance")
		cliout.Label("total", strconv.Itoa(r.Total))
		cliout.Label("passed", strconv.Itoa(r.Passed))
		cliout.Label("failed", strconv.Itoa(r.Failed))
		cliout.Label("skipped", strconv.Itoa(r.Skipped))

		failures := r.Failures()
		if len(failures) == 0 {
			cliout.Success("All cases passed")
			return
		}

		rows := make([]cliout.TableRow, 0, len(failures))
		for _, f := range failures {
			base := ""
			if f.Base != nil {
				base = *f.Base
			}
			rows = append(rows, cliout.TableRow{
				"#":        strconv.Itoa(f.Index),
				"input":    strconv.Quote(f.Input),
				"base":     base,
				"mismatch": f.Mismatches[0],
			})
		}
		cliout.Table([]string{"#", "input", "base", "mismatch"}, rows)
	})
}

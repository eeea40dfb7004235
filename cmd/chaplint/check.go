package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"chaplint/internal/config"
	"chaplint/internal/detect"
	"chaplint/internal/diag"
	"chaplint/internal/driver"
	"chaplint/internal/report"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.json|directory>",
	Short: "Run the rule battery over chapter documents",
	Long:  `Check a single *_chapters.json document, or every such document under a directory, and report structural title anomalies plus per-book statistics`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	checkCmd.Flags().Int("top", 0, "max issue details shown per book (0=default)")
	checkCmd.Flags().Bool("no-stats", false, "omit the statistics block")
	checkCmd.Flags().Bool("cache", false, "reuse cached reports for unchanged files")
	checkCmd.Flags().Bool("progress", false, "show a live progress view for directory batches")
	checkCmd.Flags().Bool("strict", false, "exit non-zero when any high-severity issue is found")
}

type checkOptions struct {
	format    string
	jobs      int
	top       int
	showStats bool
	useCache  bool
	progress  bool
	strict    bool
	quiet     bool
	maxIssues int
}

func runCheck(cmd *cobra.Command, args []string) error {
	target := args[0]

	if err := applyColorMode(cmd); err != nil {
		return err
	}
	opts, err := collectCheckOptions(cmd)
	if err != nil {
		return err
	}
	switch opts.format {
	case "pretty", "json":
	default:
		return fmt.Errorf("unknown format %q (must be pretty or json)", opts.format)
	}

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("cannot stat %q: %w", target, err)
	}

	startDir := target
	if !info.IsDir() {
		startDir = filepath.Dir(target)
	}
	det, settings, err := buildDetector(cmd, startDir)
	if err != nil {
		return err
	}
	if opts.top <= 0 {
		opts.top = settings.Top
	}

	var cache *driver.ReportCache
	if opts.useCache {
		cache, err = driver.OpenReportCache("chaplint")
		if err != nil {
			return fmt.Errorf("cannot open report cache: %w", err)
		}
	}

	var exit int
	if info.IsDir() {
		exit, err = checkDir(cmd, det, target, cache, opts)
	} else {
		exit, err = checkFile(cmd, det, target, opts)
	}
	if err != nil {
		return err
	}
	if exit != 0 {
		os.Exit(exit)
	}
	return nil
}

func collectCheckOptions(cmd *cobra.Command) (checkOptions, error) {
	var opts checkOptions
	var err error

	if opts.format, err = cmd.Flags().GetString("format"); err != nil {
		return opts, err
	}
	if opts.jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return opts, err
	}
	if opts.top, err = cmd.Flags().GetInt("top"); err != nil {
		return opts, err
	}
	noStats, err := cmd.Flags().GetBool("no-stats")
	if err != nil {
		return opts, err
	}
	opts.showStats = !noStats
	if opts.useCache, err = cmd.Flags().GetBool("cache"); err != nil {
		return opts, err
	}
	if opts.progress, err = cmd.Flags().GetBool("progress"); err != nil {
		return opts, err
	}
	if opts.strict, err = cmd.Flags().GetBool("strict"); err != nil {
		return opts, err
	}
	if opts.quiet, err = cmd.Root().PersistentFlags().GetBool("quiet"); err != nil {
		return opts, err
	}
	if opts.maxIssues, err = cmd.Root().PersistentFlags().GetInt("max-issues"); err != nil {
		return opts, err
	}
	return opts, nil
}

// buildDetector resolves settings (explicit --config, else discovery from
// startDir) and compiles the detector.
func buildDetector(cmd *cobra.Command, startDir string) (*detect.Detector, config.Settings, error) {
	configPath, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, config.Settings{}, err
	}
	settings, err := config.Resolve(configPath, startDir)
	if err != nil {
		return nil, config.Settings{}, err
	}
	det, err := detect.New(settings.Detect)
	if err != nil {
		return nil, config.Settings{}, err
	}
	return det, settings, nil
}

func checkFile(cmd *cobra.Command, det *detect.Detector, path string, opts checkOptions) (int, error) {
	rep, err := driver.CheckFile(det, path, opts.maxIssues)
	if err != nil {
		if opts.format == "json" {
			_ = report.WriteJSON(cmd.OutOrStdout(), map[string]string{
				"file":  path,
				"error": err.Error(),
			})
		} else {
			report.PrettyLoadFailure(cmd.OutOrStdout(), path, err)
		}
		return 1, nil
	}

	if opts.format == "json" {
		if err := report.WriteJSON(cmd.OutOrStdout(), report.BuildReportJSON(rep)); err != nil {
			return 0, err
		}
	} else {
		report.Pretty(cmd.OutOrStdout(), rep, report.PrettyOpts{
			Top:       opts.top,
			ShowStats: opts.showStats,
			Quiet:     opts.quiet,
		})
	}
	return exitCode(opts, []driver.FileResult{{Path: path, Report: rep}}), nil
}

type batchJSON struct {
	Files    []report.ReportJSON `json:"files"`
	Failures []failureJSON       `json:"failures,omitempty"`
	Summary  report.SummaryJSON  `json:"summary"`
}

type failureJSON struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

func checkDir(cmd *cobra.Command, det *detect.Detector, dir string, cache *driver.ReportCache, opts checkOptions) (int, error) {
	driverOpts := driver.Options{
		Jobs:      opts.jobs,
		MaxIssues: opts.maxIssues,
		Cache:     cache,
	}

	var results []driver.FileResult
	var err error
	if opts.progress && opts.format == "pretty" && isTerminal(os.Stdout) {
		results, err = checkDirWithProgress(cmd, det, dir, driverOpts)
	} else {
		results, err = driver.CheckDir(cmd.Context(), det, dir, driverOpts)
	}
	if err != nil {
		return 0, fmt.Errorf("batch check failed: %w", err)
	}
	if len(results) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "no %s files found under %s\n", "*_chapters.json", dir)
		return 0, nil
	}

	summary := driver.Summarize(results)

	if opts.format == "json" {
		out := batchJSON{Summary: report.BuildSummaryJSON(summary)}
		for _, fr := range results {
			if fr.Err != nil {
				out.Failures = append(out.Failures, failureJSON{File: fr.Path, Error: fr.Err.Error()})
				continue
			}
			out.Files = append(out.Files, report.BuildReportJSON(fr.Report))
		}
		if err := report.WriteJSON(cmd.OutOrStdout(), out); err != nil {
			return 0, err
		}
	} else {
		for _, fr := range results {
			if fr.Err != nil {
				report.PrettyLoadFailure(cmd.OutOrStdout(), fr.Path, fr.Err)
				continue
			}
			report.Pretty(cmd.OutOrStdout(), fr.Report, report.PrettyOpts{
				Top:       opts.top,
				ShowStats: opts.showStats,
				Quiet:     opts.quiet,
			})
		}
		if len(results) > 1 {
			report.PrettySummary(cmd.OutOrStdout(), summary)
		}
	}

	return exitCode(opts, results), nil
}

// exitCode decides the process status: load failures always fail the run;
// --strict also fails it on any high-severity issue.
func exitCode(opts checkOptions, results []driver.FileResult) int {
	for _, fr := range results {
		if fr.Err != nil {
			return 1
		}
		if opts.strict && fr.Report.Result.Issues.HasSeverity(diag.SevHigh) {
			return 1
		}
	}
	return 0
}

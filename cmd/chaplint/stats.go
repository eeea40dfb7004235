package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"chaplint/internal/book"
	"chaplint/internal/detect"
	"chaplint/internal/diag"
	"chaplint/internal/driver"
	"chaplint/internal/report"
)

var statsCmd = &cobra.Command{
	Use:   "stats [flags] <file.json|directory>",
	Short: "Show title statistics without running checks",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runStats(cmd *cobra.Command, args []string) error {
	target := args[0]

	if err := applyColorMode(cmd); err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	switch format {
	case "pretty", "json":
	default:
		return fmt.Errorf("unknown format %q (must be pretty or json)", format)
	}

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("cannot stat %q: %w", target, err)
	}

	startDir := target
	if !info.IsDir() {
		startDir = filepath.Dir(target)
	}
	det, _, err := buildDetector(cmd, startDir)
	if err != nil {
		return err
	}

	paths := []string{target}
	if info.IsDir() {
		if paths, err = driver.ListChapterFiles(target); err != nil {
			return err
		}
		if len(paths) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "no %s files found under %s\n", "*_chapters.json", target)
			return nil
		}
	}

	var files []report.StatsJSON
	var failures []failureJSON
	for _, path := range paths {
		b, err := book.Load(path)
		if err != nil {
			failures = append(failures, failureJSON{File: path, Error: err.Error()})
			if format == "pretty" {
				report.PrettyLoadFailure(cmd.OutOrStdout(), path, err)
			}
			continue
		}
		rep := report.New(b, &detect.Result{
			Issues: diag.NewBag(0),
			Stats:  det.Statistics(b.Chapters),
		})
		if format == "json" {
			files = append(files, report.BuildStatsJSON(rep))
		} else {
			report.PrettyStatistics(cmd.OutOrStdout(), rep)
		}
	}

	if format == "json" {
		var payload any
		switch {
		case !info.IsDir() && len(files) == 1:
			payload = files[0]
		case !info.IsDir():
			payload = failures[0]
		default:
			payload = struct {
				Files    []report.StatsJSON `json:"files"`
				Failures []failureJSON      `json:"failures,omitempty"`
			}{files, failures}
		}
		if err := report.WriteJSON(cmd.OutOrStdout(), payload); err != nil {
			return err
		}
	}
	if len(failures) > 0 {
		os.Exit(1)
	}
	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"chaplint/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "chaplint",
	Short: "Quality checker for extracted chapter title lists",
	Long:  `chaplint inspects *_chapters.json documents produced by the extraction pipeline and reports structural defects in chapter titles: merged or duplicated headings, body text misread as a title, marker ordering violations, and headings without any recognizable marker`,
}

// main registers subcommands and persistent flags, then executes the root
// command. Command execution errors exit with status 1.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("max-issues", 0, "maximum issues collected per file (0=unlimited)")
	rootCmd.PersistentFlags().String("config", "", "path to chaplint.toml (default: discovered upward from the target)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// applyColorMode resolves the persistent --color flag into the global
// color switch shared by every renderer.
func applyColorMode(cmd *cobra.Command) error {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto":
		color.NoColor = !isTerminal(os.Stdout)
	default:
		return fmt.Errorf("unknown color mode %q (must be auto, on or off)", mode)
	}
	return nil
}

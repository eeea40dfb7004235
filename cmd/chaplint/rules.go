package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"chaplint/internal/diag"
	"chaplint/internal/report"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the checks in battery order",
	RunE:  runRules,
}

func init() {
	rulesCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type ruleInfo struct {
	Kinds    []diag.Kind
	Label    string
	Severity diag.Severity
	About    string
}

// battery mirrors the execution order of the checks. The hierarchy check
// emits two anomaly kinds, the others one each.
var battery = []ruleInfo{
	{[]diag.Kind{diag.MergedHeading}, "合并标题", diag.SevHigh,
		"a title carrying more than one canonical chapter marker, usually two headings glued together"},
	{[]diag.Kind{diag.DuplicateTitle}, "重复标题", diag.SevHigh,
		"the same title text appearing in more than one chapter"},
	{[]diag.Kind{diag.LongTitle}, "异常长度", diag.SevMedium,
		"a title longer than the configured character limit"},
	{[]diag.Kind{diag.HighPunctuation}, "标点密度", diag.SevMedium,
		"a title with too many sentence punctuation marks, suggesting body text"},
	{[]diag.Kind{diag.MultipleUpperMarkers, diag.ReversedHierarchy}, "层级问题", diag.SevHigh,
		"conflicting volume-level markers, or a volume marker trailing the chapter marker"},
	{[]diag.Kind{diag.MissingMarker}, "缺少标记", diag.SevMedium,
		"a title with neither a chapter marker nor a whitelisted special name"},
	{[]diag.Kind{diag.SuspiciousTitle}, "可疑标题", diag.SevMedium,
		"a title matching a narrative-text pattern such as dialogue or pronoun openings"},
}

type ruleJSON struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Label    string `json:"label"`
	Severity string `json:"severity"`
	About    string `json:"about"`
}

func runRules(cmd *cobra.Command, _ []string) error {
	if err := applyColorMode(cmd); err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}

	if format == "json" {
		out := make([]ruleJSON, 0, len(battery)+1)
		for _, ri := range battery {
			for _, k := range ri.Kinds {
				out = append(out, ruleJSON{
					ID:       k.ID(),
					Type:     k.String(),
					Label:    ri.Label,
					Severity: ri.Severity.String(),
					About:    ri.About,
				})
			}
		}
		return report.WriteJSON(cmd.OutOrStdout(), out)
	}

	w := cmd.OutOrStdout()
	for _, ri := range battery {
		for _, k := range ri.Kinds {
			fmt.Fprintf(w, "%s  %-22s %-8s %s\n", k.ID(), k.String(), ri.Severity, ri.Label)
		}
		fmt.Fprintf(w, "         %s\n", ri.About)
	}
	return nil
}

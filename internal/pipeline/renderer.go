package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/veridict/veridict/internal/model"
)

// Renderer writes reports to JSON and Markdown outputs.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the report as indented JSON.
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderMarkdown writes a human-readable Markdown report.
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Fact-Check Report: %s\n\n", report.Source)
	fmt.Fprintf(&b, "Analyzed: %s\n\n", report.AnalyzedAt.Format("2006-01-02 15:04 UTC"))
	fmt.Fprintf(&b, "## Credibility: %.1f/100 (%s)\n\n", report.CredibilityScore.Score, report.CredibilityScore.Label)
	fmt.Fprintf(&b, "%s\n\n", report.Summary)

	if len(report.CredibilityScore.VerdictCounts) > 0 {
		b.WriteString("## Verdict Breakdown\n\n")
		b.WriteString("| Verdict | Count |\n|---|---|\n")
		verdicts := make([]string, 0, len(report.CredibilityScore.VerdictCounts))
		for v := range report.CredibilityScore.VerdictCounts {
			verdicts = append(verdicts, v)
		}
		sort.Strings(verdicts)
		for _, v := range verdicts {
			fmt.Fprintf(&b, "| %s | %d |\n", strings.ReplaceAll(v, "_", " "), report.CredibilityScore.VerdictCounts[v])
		}
		b.WriteString("\n")
	}

	b.WriteString("## Claims\n\n")
	for i, fc := range report.FactChecks {
		fmt.Fprintf(&b, "### %d. %s\n\n", i+1, fc.Claim)
		fmt.Fprintf(&b, "- Speaker: %s\n", fc.Speaker)
		fmt.Fprintf(&b, "- Verdict: **%s** (confidence %d)\n", strings.ReplaceAll(string(fc.Verdict), "_", " "), fc.Confidence)
		if len(fc.Sources) > 0 {
			fmt.Fprintf(&b, "- Sources: %s\n", strings.Join(fc.Sources, ", "))
		}
		fmt.Fprintf(&b, "\n%s\n\n", fc.Explanation)
	}

	if len(report.AnalysisNotes) > 0 {
		b.WriteString("## Analysis Notes\n\n")
		for _, note := range report.AnalysisNotes {
			fmt.Fprintf(&b, "- %s\n", note)
		}
		b.WriteString("\n")
	}

	if r.includeFooter {
		b.WriteString("---\n\nGenerated by Veridict. Verdicts are best-effort and explainable, not ground truth.\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// RenderSummary prints a terse result summary to stdout.
func (r *Renderer) RenderSummary(report *model.Report) {
	fmt.Printf("\n%s\n", strings.Repeat("=", 60))
	fmt.Printf("Source:      %s\n", report.Source)
	fmt.Printf("Claims:      %d extracted, %d checked\n", report.TotalClaims, report.CheckedClaims)
	fmt.Printf("Credibility: %.1f/100 (%s)\n", report.CredibilityScore.Score, report.CredibilityScore.Label)
	fmt.Printf("%s\n", strings.Repeat("=", 60))
	fmt.Printf("%s\n\n", report.Summary)
}

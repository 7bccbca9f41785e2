package pipeline

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/veridict/veridict/internal/llm"
	"github.com/veridict/veridict/internal/model"
)

// Summarizer produces the narrative summary for a report. The template
// path is always available; an LLM provider only polishes the wording and
// never affects scores or verdicts.
type Summarizer struct {
	provider llm.Provider
}

// NewSummarizer creates a summarizer. provider may be nil.
func NewSummarizer(provider llm.Provider) *Summarizer {
	return &Summarizer{provider: provider}
}

const summarySystemPrompt = `You write brief, neutral summaries of fact-check reports for journalists.
Rewrite the provided findings as 3-4 flowing sentences. Do not change any
number, verdict, or count. Do not add findings that are not listed.`

// Summarize builds the narrative summary. On any LLM failure the template
// summary is returned unchanged.
func (s *Summarizer) Summarize(ctx context.Context, report *model.Report) string {
	template := buildTemplateSummary(report)

	if s.provider == nil {
		return template
	}

	resp, err := s.provider.Complete(ctx, llm.CompletionRequest{
		System: summarySystemPrompt,
		Prompt: template,
	})
	if err != nil || strings.TrimSpace(resp.Text) == "" {
		return template
	}
	return strings.TrimSpace(resp.Text)
}

// buildTemplateSummary assembles the deterministic narrative.
func buildTemplateSummary(report *model.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Analyzed %d claims from %s; %d were substantive enough to verify. ",
		report.TotalClaims, report.Source, report.CheckedClaims)
	fmt.Fprintf(&b, "Overall credibility: %.1f/100 (%s). ",
		report.CredibilityScore.Score, report.CredibilityScore.Label)

	if breakdown := formatCounts(report.CredibilityScore.VerdictCounts); breakdown != "" {
		fmt.Fprintf(&b, "Verdict breakdown: %s. ", breakdown)
	}

	if worst := worstClaim(report.FactChecks); worst != "" {
		fmt.Fprintf(&b, "Most notable inaccuracy: %s", worst)
	}

	return strings.TrimSpace(b.String())
}

// formatCounts renders verdict counts in descending order.
func formatCounts(counts map[string]int) string {
	type kv struct {
		verdict string
		count   int
	}
	var pairs []kv
	for v, c := range counts {
		pairs = append(pairs, kv{v, c})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].count != pairs[j].count {
			return pairs[i].count > pairs[j].count
		}
		return pairs[i].verdict < pairs[j].verdict
	})

	var parts []string
	for _, p := range pairs {
		parts = append(parts, fmt.Sprintf("%d %s", p.count, strings.ReplaceAll(p.verdict, "_", " ")))
	}
	return strings.Join(parts, ", ")
}

// worstClaim picks the most confidently negative verdict for the summary.
func worstClaim(verdicts []model.AggregatedVerdict) string {
	best := -1
	var chosen model.AggregatedVerdict
	for _, v := range verdicts {
		if !v.Verdict.Negative() {
			continue
		}
		if v.Confidence > best {
			best = v.Confidence
			chosen = v
		}
	}
	if best < 0 {
		return ""
	}
	return fmt.Sprintf("%q (%s, confidence %d).", chosen.Claim, chosen.Verdict, chosen.Confidence)
}

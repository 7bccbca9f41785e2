package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/veridict/veridict/internal/llm"
	"github.com/veridict/veridict/internal/model"
)

// stubProvider implements llm.Provider
type stubProvider struct {
	text string
	err  error
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &llm.CompletionResponse{Text: s.text}, nil
}

func (s *stubProvider) IsAvailable(ctx context.Context) bool { return s.err == nil }

func testReport() *model.Report {
	return &model.Report{
		Source:        "campaign rally",
		AnalyzedAt:    time.Now().UTC(),
		TotalClaims:   5,
		CheckedClaims: 4,
		CredibilityScore: model.CredibilityScore{
			Score: 42.5,
			Label: "Questionable credibility",
			VerdictCounts: map[string]int{
				"true":           1,
				"false":          2,
				"empty_rhetoric": 1,
				"needs_context":  1,
			},
		},
		FactChecks: []model.AggregatedVerdict{
			{Claim: "claim a", Verdict: model.VerdictTrue, Confidence: 90},
			{Claim: "the big lie", Verdict: model.VerdictFalse, Confidence: 85},
			{Claim: "smaller lie", Verdict: model.VerdictFalse, Confidence: 60},
		},
	}
}

func TestBuildTemplateSummary(t *testing.T) {
	summary := buildTemplateSummary(testReport())

	for _, fragment := range []string{"5 claims", "campaign rally", "42.5/100", "Questionable credibility", "2 false"} {
		if !strings.Contains(summary, fragment) {
			t.Errorf("Expected summary to contain %q, got %q", fragment, summary)
		}
	}
	// The most confidently false claim is called out
	if !strings.Contains(summary, "the big lie") {
		t.Errorf("Expected worst claim named, got %q", summary)
	}
}

func TestSummarizer_NoProvider(t *testing.T) {
	s := NewSummarizer(nil)

	summary := s.Summarize(context.Background(), testReport())
	if summary == "" {
		t.Fatal("Expected template summary without a provider")
	}
}

func TestSummarizer_ProviderFailureFallsBack(t *testing.T) {
	s := NewSummarizer(&stubProvider{err: errors.New("provider down")})

	summary := s.Summarize(context.Background(), testReport())
	if !strings.Contains(summary, "42.5/100") {
		t.Errorf("Expected template fallback on provider failure, got %q", summary)
	}
}

func TestSummarizer_ProviderPolish(t *testing.T) {
	s := NewSummarizer(&stubProvider{text: "  A polished narrative summary.  "})

	summary := s.Summarize(context.Background(), testReport())
	if summary != "A polished narrative summary." {
		t.Errorf("Expected trimmed provider output, got %q", summary)
	}
}

func TestSummarizer_EmptyProviderOutputFallsBack(t *testing.T) {
	s := NewSummarizer(&stubProvider{text: "   "})

	summary := s.Summarize(context.Background(), testReport())
	if !strings.Contains(summary, "42.5/100") {
		t.Errorf("Expected template fallback on empty output, got %q", summary)
	}
}

func TestFormatCounts(t *testing.T) {
	got := formatCounts(map[string]int{"false": 3, "true": 1, "mixed": 3})

	// Descending by count, ties alphabetical
	if got != "3 false, 3 mixed, 1 true" {
		t.Errorf("Expected ordered breakdown, got %q", got)
	}
}

func TestWorstClaim(t *testing.T) {
	verdicts := []model.AggregatedVerdict{
		{Claim: "fine", Verdict: model.VerdictTrue, Confidence: 95},
		{Claim: "weak lie", Verdict: model.VerdictMisleading, Confidence: 50},
		{Claim: "strong lie", Verdict: model.VerdictFalse, Confidence: 90},
	}

	got := worstClaim(verdicts)
	if !strings.Contains(got, "strong lie") {
		t.Errorf("Expected the most confident negative verdict, got %q", got)
	}

	if got := worstClaim([]model.AggregatedVerdict{{Claim: "fine", Verdict: model.VerdictTrue, Confidence: 95}}); got != "" {
		t.Errorf("Expected empty string with no negative verdicts, got %q", got)
	}
}

package check

import (
	"context"
	"errors"
	"strings"
	"testing"

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

func TestParseVerdict_ExplicitLine(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		verdict model.Verdict
	}{
		{"plain true", "verdict: true\nconfidence: 80\nevidence: well documented", model.VerdictTrue},
		{"mostly false", "Verdict: mostly_false\nevidence: contradicted by data", model.VerdictMostlyFalse},
		{"spaced token", "verdict: mostly true", model.VerdictMostlyTrue},
		{"needs context", "verdict: needs_context", model.VerdictNeedsContext},
		{"opinion", "verdict: opinion", model.VerdictOpinion},
		{"misleading", "verdict: misleading", model.VerdictMisleading},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseVerdict(tt.text); got != tt.verdict {
				t.Errorf("Expected %s, got %s", tt.verdict, got)
			}
		})
	}
}

func TestParseVerdict_SentimentFallback(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		verdict model.Verdict
	}{
		{"positive", "The claim is accurate and supported by the official data.", model.VerdictMostlyTrue},
		{"negative", "The figure is wrong and was debunked by the official record.", model.VerdictMostlyFalse},
		{"neutral", "It is hard to assess this without more detail.", model.VerdictNeedsContext},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseVerdict(tt.text); got != tt.verdict {
				t.Errorf("Expected %s, got %s", tt.verdict, got)
			}
		})
	}
}

func TestParseConfidence(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"explicit", "verdict: true\nconfidence: 85\nevidence: documented", 85},
		{"explicit zero", "confidence: 0", 0},
		{"out of range ignored", "confidence: 250 something hard to say", 40},
		{"hedged", "This might possibly be the case, it is unclear.", 40},
		{"absolute", "This is clearly documented and confirmed.", 75},
		{"plain", "The claim concerns the federal budget.", 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseConfidence(tt.text); got != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestAIChecker_Check(t *testing.T) {
	provider := &stubProvider{text: "verdict: mostly_true\nconfidence: 70\nevidence: The jobs figure is close to official counts."}
	checker := NewAIChecker(provider)

	result, err := checker.Check(context.Background(), "We created 7 million jobs.")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Verdict != model.VerdictMostlyTrue {
		t.Errorf("Expected mostly_true, got %s", result.Verdict)
	}
	if result.Confidence != 70 {
		t.Errorf("Expected confidence 70, got %d", result.Confidence)
	}
	if !strings.Contains(result.Explanation, "jobs figure") {
		t.Errorf("Expected evidence in explanation, got %q", result.Explanation)
	}
	if result.Weight != WeightAI {
		t.Errorf("Expected weight %v, got %v", WeightAI, result.Weight)
	}
}

func TestAIChecker_ProviderError(t *testing.T) {
	checker := NewAIChecker(&stubProvider{err: errors.New("rate limited")})

	result, err := checker.Check(context.Background(), "Any claim.")
	if err == nil {
		t.Error("Expected provider error to propagate")
	}
	if result.Found {
		t.Error("Expected not-found result alongside the error")
	}
}

func TestAIChecker_NilProvider(t *testing.T) {
	if c := NewAIChecker(nil); c != nil {
		t.Error("Expected nil checker without a provider")
	}
}

package check

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/veridict/veridict/internal/llm"
	"github.com/veridict/veridict/internal/model"
)

// AIChecker asks an LLM for a structured verdict-plus-evidence analysis
// and parses verdict keywords out of the free text. It is the fallback
// source: only consulted when the factual checkers return nothing
// conclusive, or for opinion decomposition.
type AIChecker struct {
	provider llm.Provider
}

// NewAIChecker creates the checker. Returns nil when no provider is
// configured.
func NewAIChecker(provider llm.Provider) *AIChecker {
	if provider == nil {
		return nil
	}
	return &AIChecker{provider: provider}
}

// Name returns the checker name
func (c *AIChecker) Name() string {
	return "ai_analysis"
}

const aiCheckSystemPrompt = `You are a careful fact-checking analyst. Assess the claim using your knowledge.
Respond in this structure:
verdict: one of true, mostly_true, nearly_true, mixed, misleading, mostly_false, false, opinion, needs_context
confidence: a number 0-100
evidence: 2-3 sentences explaining your assessment, citing what is known

Be conservative: if you cannot assess the claim, use needs_context with low confidence.`

// Check asks the model to assess the claim. Provider errors propagate so
// the fan-out runner converts them to not-found.
func (c *AIChecker) Check(ctx context.Context, claim string) (model.SourceCheckResult, error) {
	resp, err := c.provider.Complete(ctx, llm.CompletionRequest{
		System: aiCheckSystemPrompt,
		Prompt: "Claim: " + claim,
	})
	if err != nil {
		return model.NotFound(c.Name()), fmt.Errorf("ai analysis: %w", err)
	}

	verdict := ParseVerdict(resp.Text)
	confidence := ParseConfidence(resp.Text)
	explanation := parseEvidence(resp.Text)
	if explanation == "" {
		explanation = strings.TrimSpace(resp.Text)
	}

	return model.SourceCheckResult{
		Found:       true,
		Verdict:     verdict,
		Explanation: "AI analysis: " + explanation,
		Confidence:  confidence,
		SourceName:  c.Name(),
		Weight:      WeightAI,
	}, nil
}

// CheckOpinion decomposes an opinion-flagged claim: the model separates
// factual components from the subjective framing.
func (c *AIChecker) CheckOpinion(ctx context.Context, claim string) (model.SourceCheckResult, error) {
	resp, err := c.provider.Complete(ctx, llm.CompletionRequest{
		System: aiCheckSystemPrompt,
		Prompt: "This statement is flagged as opinion. Identify any factual component and assess only that; if it is purely subjective, use verdict: opinion.\n\nStatement: " + claim,
	})
	if err != nil {
		return model.NotFound(c.Name()), fmt.Errorf("ai opinion analysis: %w", err)
	}

	return model.SourceCheckResult{
		Found:       true,
		Verdict:     ParseVerdict(resp.Text),
		Explanation: "AI analysis: " + firstNonEmpty(parseEvidence(resp.Text), strings.TrimSpace(resp.Text)),
		Confidence:  ParseConfidence(resp.Text),
		SourceName:  c.Name(),
		Weight:      WeightAI,
	}, nil
}

// Explicit verdict tokens, tried before the sentiment fallback.
// Order matters: compound tokens first.
var verdictTokens = []struct {
	token   string
	verdict model.Verdict
}{
	{"mostly_true", model.VerdictMostlyTrue},
	{"mostly true", model.VerdictMostlyTrue},
	{"nearly_true", model.VerdictNearlyTrue},
	{"nearly true", model.VerdictNearlyTrue},
	{"mostly_false", model.VerdictMostlyFalse},
	{"mostly false", model.VerdictMostlyFalse},
	{"needs_context", model.VerdictNeedsContext},
	{"needs context", model.VerdictNeedsContext},
	{"misleading", model.VerdictMisleading},
	{"exaggerat", model.VerdictExaggeration},
	{"mixed", model.VerdictMixed},
	{"opinion", model.VerdictOpinion},
	{"unverifiable", model.VerdictUnverifiable},
	{"false", model.VerdictFalse},
	{"true", model.VerdictTrue},
}

var (
	verdictLineRe    = regexp.MustCompile(`(?im)^\s*verdict\s*:\s*(.+)$`)
	confidenceLineRe = regexp.MustCompile(`(?i)confidence\s*:?\s*(\d{1,3})`)
	evidenceLineRe   = regexp.MustCompile(`(?is)evidence\s*:\s*(.+)`)

	hedgeWordsRe    = regexp.MustCompile(`(?i)\b(may|might|possibly|unclear|uncertain|difficult to|cannot confirm|hard to say|it depends)\b`)
	absoluteWordsRe = regexp.MustCompile(`(?i)\b(clearly|definitely|certainly|well.documented|established|confirmed|verified)\b`)

	positiveWords = []string{"accurate", "correct", "supported", "consistent", "confirmed"}
	negativeWords = []string{"inaccurate", "incorrect", "wrong", "unsupported", "contradicted", "refuted", "debunked"}
)

// ParseVerdict extracts a verdict from free LLM text: the explicit
// "verdict:" line first, then token search, then a sentiment-word tally.
func ParseVerdict(text string) model.Verdict {
	lower := strings.ToLower(text)

	if m := verdictLineRe.FindStringSubmatch(text); m != nil {
		lower = strings.ToLower(m[1])
	}

	for _, vt := range verdictTokens {
		if strings.Contains(lower, vt.token) {
			return vt.verdict
		}
	}

	// Sentiment fallback over the full text
	full := strings.ToLower(text)
	score := 0
	for _, w := range positiveWords {
		score += strings.Count(full, w)
	}
	for _, w := range negativeWords {
		score -= strings.Count(full, w)
	}
	switch {
	case score >= 2:
		return model.VerdictMostlyTrue
	case score == 1:
		return model.VerdictNearlyTrue
	case score == -1:
		return model.VerdictMisleading
	case score <= -2:
		return model.VerdictMostlyFalse
	default:
		return model.VerdictNeedsContext
	}
}

// ParseConfidence extracts an explicit "confidence: N" marker, falling back
// to a fixed heuristic: hedged language lowers confidence, absolute
// language raises it.
func ParseConfidence(text string) int {
	if m := confidenceLineRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n >= 0 && n <= 100 {
			return n
		}
	}

	confidence := 60
	if hedgeWordsRe.MatchString(text) {
		confidence = 40
	}
	if absoluteWordsRe.MatchString(text) {
		confidence = 75
	}
	return confidence
}

func parseEvidence(text string) string {
	if m := evidenceLineRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

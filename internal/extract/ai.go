package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/veridict/veridict/internal/llm"
	"github.com/veridict/veridict/internal/model"
)

// AIExtractor prefers LLM-backed claim extraction and falls back to the
// pattern extractor on any failure. Extract never fails.
type AIExtractor struct {
	provider llm.Provider
	fallback *Extractor
}

// NewAIExtractor creates an AI-preferred extractor. provider may be nil, in
// which case every call goes straight to the pattern fallback.
func NewAIExtractor(provider llm.Provider, fallback *Extractor) *AIExtractor {
	if fallback == nil {
		fallback = NewExtractor()
	}
	return &AIExtractor{provider: provider, fallback: fallback}
}

const extractionSystemPrompt = `You extract verifiable factual claims from political transcripts.
Return one claim per line in the exact format:
SPEAKER | CLAIM

Rules:
- Each claim must be a complete, self-contained factual sentence.
- Attribute the speaker if identifiable, otherwise use "Unknown".
- Skip greetings, pleasantries, opinions, and pure rhetoric.
- Do not add commentary or numbering.`

// Extract extracts claims from a transcript, preferring the LLM path.
func (a *AIExtractor) Extract(ctx context.Context, transcript string, maxClaims int) []model.Claim {
	if a.provider == nil {
		return a.fallback.Extract(transcript, maxClaims)
	}

	claims, err := a.extractWithLLM(ctx, transcript, maxClaims)
	if err != nil || len(claims) == 0 {
		return a.fallback.Extract(transcript, maxClaims)
	}
	return claims
}

func (a *AIExtractor) extractWithLLM(ctx context.Context, transcript string, maxClaims int) ([]model.Claim, error) {
	if maxClaims <= 0 {
		maxClaims = 30
	}

	prompt := fmt.Sprintf("Extract up to %d checkable factual claims from this transcript:\n\n%s", maxClaims, truncate(transcript, 12000))

	resp, err := a.provider.Complete(ctx, llm.CompletionRequest{
		System: extractionSystemPrompt,
		Prompt: prompt,
	})
	if err != nil {
		return nil, fmt.Errorf("llm extraction: %w", err)
	}

	claims := parseClaimLines(resp.Text, maxClaims)
	if len(claims) == 0 {
		return nil, fmt.Errorf("llm extraction: no parseable claims in response")
	}
	return claims, nil
}

// parseClaimLines parses "SPEAKER | CLAIM" lines out of an LLM response.
// Malformed lines are skipped rather than failing the whole parse.
func parseClaimLines(text string, maxClaims int) []model.Claim {
	var claims []model.Claim
	seen := make(map[string]bool)

	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts := strings.SplitN(line, "|", 2)
		if len(parts) != 2 {
			continue
		}

		speaker := strings.TrimSpace(parts[0])
		claim := strings.TrimSpace(parts[1])
		if speaker == "" {
			speaker = model.UnknownSpeaker
		}
		if len(claim) < 10 || len(strings.Fields(claim)) < 3 {
			continue
		}

		key := strings.ToLower(claim)
		if seen[key] {
			continue
		}
		seen[key] = true

		claims = append(claims, model.Claim{
			Text:       terminate(claim),
			Speaker:    speaker,
			Confidence: 85,
			Heuristic:  "ai",
			Sentence:   i,
		})

		if len(claims) >= maxClaims {
			break
		}
	}

	return claims
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// Package score reduces a list of per-claim verdicts into one 0-100
// transcript-level credibility score.
package score

import (
	"math"

	"github.com/veridict/veridict/internal/model"
)

// NeutralScore is returned when no scored verdicts are available.
const NeutralScore = 50.0

// band maps a score floor to its label. Bands are monotonic; the first
// matching floor wins.
type band struct {
	floor float64
	label string
}

// Scorer computes the transcript-level credibility score.
type Scorer struct {
	bands []band
}

// NewScorer creates a credibility scorer with the standard label bands.
func NewScorer() *Scorer {
	return &Scorer{
		bands: []band{
			{85, "High credibility"},
			{70, "Mostly credible"},
			{55, "Mixed credibility"},
			{40, "Questionable credibility"},
			{0, "Low credibility"},
		},
	}
}

// Score reduces the verdict list to a single credibility score.
//
// Each scored verdict contributes its anchor weighted by its own
// confidence. Categorical verdicts (opinion, needs_context, rhetoric)
// never enter the numeric average; they still appear in the verdict
// counts used for breakdown reporting.
func (s *Scorer) Score(verdicts []model.AggregatedVerdict) model.CredibilityScore {
	counts := make(map[string]int)
	var scoreSum, weightSum float64

	for _, v := range verdicts {
		counts[string(v.Verdict)]++

		anchor, ok := v.Verdict.Anchor()
		if !ok {
			continue
		}
		confidence := float64(v.Confidence) / 100.0
		if confidence < 0 {
			confidence = 0
		} else if confidence > 1 {
			confidence = 1
		}
		scoreSum += anchor * confidence
		weightSum += confidence
	}

	final := NeutralScore
	if weightSum > 0 {
		final = math.Round(scoreSum/weightSum*10) / 10
	}

	return model.CredibilityScore{
		Score:         final,
		Label:         s.label(final),
		VerdictCounts: counts,
	}
}

func (s *Scorer) label(score float64) string {
	for _, b := range s.bands {
		if score >= b.floor {
			return b.label
		}
	}
	return s.bands[len(s.bands)-1].label
}

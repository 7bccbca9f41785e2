// Package verdict combines independent source-checker opinions on one
// claim into a single, explainable verdict.
package verdict

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/veridict/veridict/internal/history"
	"github.com/veridict/veridict/internal/model"
)

// Aggregator merges checker results per claim. Aggregation is a pure
// function of its inputs aside from the history side effect: the same
// (claim, results) always yields the same verdict.
type Aggregator struct {
	history  *history.Tracker // Optional; nil disables pattern/historical notes
	fallback []fallbackPattern
}

// fallbackPattern is one local heuristic applied when every external
// source came back empty.
type fallbackPattern struct {
	name        string
	re          *regexp.Regexp
	verdict     model.Verdict
	confidence  int
	explanation string
}

// NewAggregator creates an aggregator. tracker may be nil.
func NewAggregator(tracker *history.Tracker) *Aggregator {
	return &Aggregator{
		history: tracker,
		fallback: []fallbackPattern{
			{
				name:        "conspiracy_language",
				re:          regexp.MustCompile(`(?i)\b(deep state|rigged|stolen election|they don'?t want you to know|the media won'?t (tell|report)|cover[- ]?up|hoax)\b`),
				verdict:     model.VerdictMisleading,
				confidence:  45,
				explanation: "Claim uses conspiracy-style framing; such claims are overwhelmingly unsupported by evidence.",
			},
			{
				name:        "unprecedented_claim",
				re:          regexp.MustCompile(`(?i)\b(unprecedented|never (before )?in (american |our |world )?history|first time ever)\b`),
				verdict:     model.VerdictExaggeration,
				confidence:  40,
				explanation: "Sweeping historical-first claim; such superlatives are rarely literally accurate.",
			},
			{
				name:        "absolute_language",
				re:          regexp.MustCompile(`(?i)\b(always|never|every single|nobody|no one|everyone|everybody|all of them|none of them)\b`),
				verdict:     model.VerdictExaggeration,
				confidence:  35,
				explanation: "Absolute language (always/never/everyone) almost always admits exceptions.",
			},
		},
	}
}

// Aggregate merges all checker results for one claim into a single
// verdict. No external-call failure can reach this point: failed checkers
// arrive as not-found results.
func (a *Aggregator) Aggregate(claim, speaker string, results []model.SourceCheckResult) model.AggregatedVerdict {
	agg := a.aggregate(claim, speaker, results)

	if a.history != nil {
		source := ""
		if len(agg.Sources) > 0 {
			source = agg.Sources[0]
		}
		a.history.Record(speaker, claim, agg.Verdict, source)
	}

	return agg
}

func (a *Aggregator) aggregate(claim, speaker string, results []model.SourceCheckResult) model.AggregatedVerdict {
	// 1. Rhetoric/prediction classification takes precedence over all
	// factual-source results.
	for _, r := range results {
		if r.Found && (r.Verdict == model.VerdictEmptyRhetoric || r.Verdict == model.VerdictUnsubstantiatedPredict) {
			return model.AggregatedVerdict{
				Claim:       claim,
				Speaker:     speaker,
				Verdict:     r.Verdict,
				Confidence:  r.Confidence,
				Explanation: a.withNotes(speaker, claim, prefixed(r)),
				Sources:     []string{r.SourceName},
			}
		}
	}

	// 2. Discard not-found results
	var found []model.SourceCheckResult
	for _, r := range results {
		if r.Found {
			found = append(found, r)
		}
	}

	if len(found) == 0 {
		return a.noSourceVerdict(claim, speaker)
	}

	// 3-5. Weighted score over scored verdicts; categorical opinions
	// contribute explanation text but not score.
	var scoreSum, weightSum, confSum float64
	var sources []string
	var explanations []string
	seenSource := make(map[string]bool)

	for _, r := range found {
		explanations = append(explanations, prefixed(r))
		if !seenSource[r.SourceName] {
			seenSource[r.SourceName] = true
			sources = append(sources, r.SourceName)
		}

		scale, ok := r.Verdict.Scale()
		if !ok {
			continue
		}
		weight := r.Weight
		if weight <= 0 {
			weight = 0.5
		}
		scoreSum += scale * weight
		weightSum += weight
		confSum += float64(r.Confidence) * weight
	}

	var finalVerdict model.Verdict
	var confidence int
	if weightSum > 0 {
		finalVerdict = model.VerdictFromScore(scoreSum / weightSum)
		confidence = int(math.Round(confSum / weightSum))
	} else {
		// Every contributing source was categorical (needs_context etc.)
		finalVerdict = model.VerdictNeedsContext
		total := 0
		for _, r := range found {
			total += r.Confidence
		}
		confidence = total / len(found)
	}

	return model.AggregatedVerdict{
		Claim:       claim,
		Speaker:     speaker,
		Verdict:     finalVerdict,
		Confidence:  confidence,
		Explanation: a.withNotes(speaker, claim, strings.Join(explanations, " ")),
		Sources:     sources,
	}
}

// noSourceVerdict applies the local pattern fallback, then gives up with
// needs_context. Never fabricates a true/false verdict.
func (a *Aggregator) noSourceVerdict(claim, speaker string) model.AggregatedVerdict {
	for _, p := range a.fallback {
		if p.re.MatchString(claim) {
			return model.AggregatedVerdict{
				Claim:       claim,
				Speaker:     speaker,
				Verdict:     p.verdict,
				Confidence:  p.confidence,
				Explanation: a.withNotes(speaker, claim, "[pattern_analysis] "+p.explanation),
				Sources:     []string{"pattern_analysis"},
			}
		}
	}

	return model.AggregatedVerdict{
		Claim:       claim,
		Speaker:     speaker,
		Verdict:     model.VerdictNeedsContext,
		Confidence:  30,
		Explanation: a.withNotes(speaker, claim, "No verifiable source was found for this claim; it could not be confirmed or refuted."),
	}
}

// withNotes appends speaker-pattern and historical-repeat notes to an
// explanation.
func (a *Aggregator) withNotes(speaker, claim, explanation string) string {
	if a.history == nil {
		return explanation
	}

	if note := a.history.PatternNote(speaker); note != "" {
		explanation += " " + note
	}
	if prior := a.history.PriorChecks(speaker, claim); len(prior) > 0 {
		explanation += fmt.Sprintf(" Historical note: this exact claim has been checked %d time(s) before (last verdict: %s).",
			len(prior), prior[len(prior)-1].Verdict)
	}
	return explanation
}

func prefixed(r model.SourceCheckResult) string {
	return "[" + r.SourceName + "] " + r.Explanation
}

package check

import (
	"fmt"
	"regexp"

	"github.com/veridict/veridict/internal/model"
)

// RhetoricDetector is a pre-filter, not a source: it pattern-matches
// boastful or sweeping language with no verifiable substance. When it
// matches, the whole checker fan-out is short-circuited and its verdict
// wins outright.
type RhetoricDetector struct {
	boastPatterns      []*regexp.Regexp
	predictionPatterns []*regexp.Regexp
	substanceMarkers   *regexp.Regexp
}

// NewRhetoricDetector creates the detector with its built-in pattern tables.
func NewRhetoricDetector() *RhetoricDetector {
	return &RhetoricDetector{
		boastPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(like never before|like nobody has ever seen|the likes of which)\b`),
			regexp.MustCompile(`(?i)\b(greatest|best|strongest|most incredible|most beautiful|most tremendous)\b.*\b(ever|in history|in the world|of all time)\b`),
			regexp.MustCompile(`(?i)\bmake\s+\w+(\s+\w+)?\s+great again\b`),
			regexp.MustCompile(`(?i)\b(tremendous|incredible|unbelievable|phenomenal)\b.*\b(tremendous|incredible|unbelievable|phenomenal|winning)\b`),
			regexp.MustCompile(`(?i)\b(everybody|everyone) (knows|agrees|is saying)\b`),
			regexp.MustCompile(`(?i)\bnobody('s| has| is)? (ever )?(seen|done) (anything like )?(it|this|that)\b`),
		},
		predictionPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(will be|going to be|we will|we('re| are) going to)\b.*\b(respected|feared|loved|winning|great|greatest|best|rich|strong|stronger)\b`),
			regexp.MustCompile(`(?i)\byou('ll| will) see\b`),
			regexp.MustCompile(`(?i)\b(very soon|before long|faster than (anyone|anybody) (thinks|expects))\b`),
		},
		// Any of these marks real substance: the claim stays checkable
		substanceMarkers: regexp.MustCompile(`(?i)\d|\b(policy|policies|plan|bill|legislation|law|act|budget|program|funding|tariff|tax(es)?|treaty|executive order|percent|billion|million|trillion)\b`),
	}
}

// Detect classifies a claim as empty rhetoric or an unsubstantiated
// prediction. priorVagueCount is the speaker's historical count of similar
// vague promises (0 if unknown); it annotates the explanation only.
func (d *RhetoricDetector) Detect(claim string, priorVagueCount int) (model.SourceCheckResult, bool) {
	if d.substanceMarkers.MatchString(claim) {
		return model.SourceCheckResult{}, false
	}

	if verdict, ok := d.classify(claim); ok {
		explanation := "Boastful or sweeping language with no verifiable substance (no policy, plan, or numeric content)."
		if verdict == model.VerdictUnsubstantiatedPredict {
			explanation = "A promise about the future with no stated mechanism, plan, or measurable target."
		}
		if priorVagueCount >= 2 {
			explanation += fmt.Sprintf(" This speaker has made %d similar vague statements previously.", priorVagueCount)
		}

		return model.SourceCheckResult{
			Found:       true,
			Verdict:     verdict,
			Explanation: explanation,
			Confidence:  88,
			SourceName:  "rhetoric_detector",
			Weight:      1.0, // Short-circuits aggregation; weight is nominal
		}, true
	}

	return model.SourceCheckResult{}, false
}

func (d *RhetoricDetector) classify(claim string) (model.Verdict, bool) {
	// Boast patterns take precedence: "we will win like never before" is
	// rhetoric first, prediction second.
	for _, re := range d.boastPatterns {
		if re.MatchString(claim) {
			return model.VerdictEmptyRhetoric, true
		}
	}
	for _, re := range d.predictionPatterns {
		if re.MatchString(claim) {
			return model.VerdictUnsubstantiatedPredict, true
		}
	}
	return "", false
}

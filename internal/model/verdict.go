package model

// Verdict is the categorical outcome of checking one claim.
// The vocabulary is fixed; every component uses this single enumeration.
type Verdict string

const (
	// Scored verdicts, ordered from most to least accurate.
	VerdictTrue         Verdict = "true"
	VerdictMostlyTrue   Verdict = "mostly_true"
	VerdictNearlyTrue   Verdict = "nearly_true"
	VerdictMixed        Verdict = "mixed"
	VerdictExaggeration Verdict = "exaggeration"
	VerdictMisleading   Verdict = "misleading"
	VerdictMostlyFalse  Verdict = "mostly_false"
	VerdictFalse        Verdict = "false"

	// Categorical outcomes. These carry no numeric anchor and are excluded
	// from the credibility average (they still count toward breakdowns).
	VerdictEmptyRhetoric            Verdict = "empty_rhetoric"
	VerdictUnsubstantiatedPredict   Verdict = "unsubstantiated_prediction"
	VerdictNeedsContext             Verdict = "needs_context"
	VerdictUnverifiable             Verdict = "unverifiable"
	VerdictOpinion                  Verdict = "opinion"
	VerdictNotAClaim                Verdict = "not_a_claim"
	VerdictUnverified               Verdict = "unverified" // Synthetic degraded result after a batch failure
)

// verdictAnchors maps scored verdicts to their 0-100 credibility anchor.
var verdictAnchors = map[Verdict]float64{
	VerdictTrue:         100,
	VerdictMostlyTrue:   85,
	VerdictNearlyTrue:   70,
	VerdictMixed:        50,
	VerdictExaggeration: 50,
	VerdictMisleading:   35,
	VerdictMostlyFalse:  20,
	VerdictFalse:        0,
}

// Anchor returns the 0-100 credibility anchor for a scored verdict.
// The second return is false for categorical (non-scored) verdicts.
func (v Verdict) Anchor() (float64, bool) {
	anchor, ok := verdictAnchors[v]
	return anchor, ok
}

// Scored reports whether the verdict participates in the numeric
// credibility average.
func (v Verdict) Scored() bool {
	_, ok := verdictAnchors[v]
	return ok
}

// verdictScale maps scored verdicts to the [0,1] scale used when combining
// multiple source opinions on one claim.
var verdictScale = map[Verdict]float64{
	VerdictTrue:         1.0,
	VerdictMostlyTrue:   0.8,
	VerdictNearlyTrue:   0.7,
	VerdictMixed:        0.6,
	VerdictExaggeration: 0.6,
	VerdictMisleading:   0.3,
	VerdictMostlyFalse:  0.2,
	VerdictFalse:        0.0,
}

// Scale returns the [0,1] aggregation weight for a scored verdict.
// The second return is false for categorical verdicts.
func (v Verdict) Scale() (float64, bool) {
	s, ok := verdictScale[v]
	return s, ok
}

// Negative reports whether the verdict indicates a false or misleading claim.
// Used for speaker-pattern analysis.
func (v Verdict) Negative() bool {
	switch v {
	case VerdictFalse, VerdictMostlyFalse, VerdictMisleading:
		return true
	}
	return false
}

// VerdictFromScore maps an aggregated [0,1] score to a verdict using the
// fixed thresholds shared by all aggregation paths.
func VerdictFromScore(score float64) Verdict {
	switch {
	case score >= 0.85:
		return VerdictTrue
	case score >= 0.70:
		return VerdictMostlyTrue
	case score >= 0.60:
		return VerdictNearlyTrue
	case score >= 0.40:
		return VerdictMisleading
	case score >= 0.20:
		return VerdictMostlyFalse
	default:
		return VerdictFalse
	}
}

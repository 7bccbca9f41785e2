package model

// Claim represents a checkable factual assertion extracted from a transcript
type Claim struct {
	Text       string `json:"text"`                // The claim text (normalized, punctuation-terminated)
	Speaker    string `json:"speaker"`             // Attributed speaker, or "Unknown"
	Context    string `json:"context,omitempty"`   // Surrounding transcript text
	Confidence int    `json:"confidence"`          // Heuristic belief (0-100) this is a genuine, checkable claim
	Heuristic  string `json:"heuristic,omitempty"` // Which extraction rule matched (e.g., "signal:statistic")
	Sentence   int    `json:"sentence,omitempty"`  // Sentence index in transcript (0-based)
}

// UnknownSpeaker is the attribution used when no speaker could be identified.
const UnknownSpeaker = "Unknown"

// SourceCheckResult is one checker's independent opinion on a claim
type SourceCheckResult struct {
	Found       bool    `json:"found"`                 // Whether this checker produced an opinion at all
	Verdict     Verdict `json:"verdict,omitempty"`     // The checker's verdict
	Explanation string  `json:"explanation,omitempty"` // Human-readable justification
	Confidence  int     `json:"confidence"`            // 0-100
	SourceName  string  `json:"source_name"`           // Identifies the checker/provider
	Weight      float64 `json:"weight"`                // Trust weight in [0,1] used during aggregation
}

// NotFound returns the standard "no opinion" result for a named checker.
func NotFound(sourceName string) SourceCheckResult {
	return SourceCheckResult{Found: false, SourceName: sourceName}
}

// AggregatedVerdict is the final merged judgment for one claim
type AggregatedVerdict struct {
	Claim       string   `json:"claim"`
	Speaker     string   `json:"speaker"`
	Verdict     Verdict  `json:"verdict"`
	Confidence  int      `json:"confidence"`
	Explanation string   `json:"explanation"`
	Sources     []string `json:"sources,omitempty"` // Distinct source names that contributed, in order
}

package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/veridict/veridict/internal/model"
)

// signal is one data-driven "this looks checkable" rule.
type signal struct {
	name  string
	re    *regexp.Regexp
	boost int // Added to the base extraction confidence when matched
}

// Extractor extracts candidate claims from transcript text using
// pattern heuristics. It never fails: worst case is zero claims.
type Extractor struct {
	signals    []signal
	nonClaims  []*regexp.Regexp
	minWords   int
	minChars   int
	contextPad int
}

// NewExtractor creates a pattern-based claim extractor.
func NewExtractor() *Extractor {
	return &Extractor{
		signals: []signal{
			{"statistic", regexp.MustCompile(`\d`), 25},
			{"factual_pattern", regexp.MustCompile(`(?i)\b(was founded in|was established in|was created in|won the|lost the|signed into law|voted (?:for|against)|passed the|according to|is the (?:first|only|largest|smallest))\b`), 20},
			{"comparison", regexp.MustCompile(`(?i)\b(more|less|fewer|higher|lower|bigger|smaller|better|worse|greater)\s+than\b|\b(most|least|largest|smallest|highest|lowest|best|worst)\b`), 10},
			{"absolute", regexp.MustCompile(`(?i)\b(never|always|nobody|no one|everybody|everyone|every single|all of them|none of)\b`), 10},
			{"promise", regexp.MustCompile(`(?i)\b(will|going to|shall|promise[sd]?|pledge[sd]?|guarantee[sd]?)\b`), 5},
		},
		nonClaims: []*regexp.Regexp{
			regexp.MustCompile(`(?i)^(thank you|thanks)\b`),
			regexp.MustCompile(`(?i)^(good (morning|afternoon|evening|night))\b`),
			regexp.MustCompile(`(?i)^(hello|hi|hey|welcome|greetings)\b`),
			regexp.MustCompile(`(?i)^(god bless)\b`),
			regexp.MustCompile(`(?i)^(ladies and gentlemen)\b`),
			regexp.MustCompile(`(?i)^(please (welcome|join me))\b`),
			regexp.MustCompile(`(?i)^(it'?s (great|good|wonderful|an honor) to be here)\b`),
			regexp.MustCompile(`(?i)^(yes|no|okay|ok|right|sure|absolutely|exactly|of course)[.!?]?$`),
			regexp.MustCompile(`(?i)^\[(applause|laughter|music|cheering|crosstalk|inaudible)\]`),
		},
		minWords:   3,
		minChars:   10,
		contextPad: 100,
	}
}

// Extract extracts up to maxClaims claims from a transcript.
// Ordering is stable: order of first appearance in the transcript.
func (e *Extractor) Extract(transcript string, maxClaims int) []model.Claim {
	if maxClaims <= 0 {
		maxClaims = 30
	}

	lines := splitSpeakerLines(transcript)

	var claims []model.Claim
	seen := make(map[string]bool)
	sentenceIdx := 0

	for _, ln := range lines {
		sentences := SplitSentences(ln.text)
		for _, sentence := range sentences {
			idx := sentenceIdx
			sentenceIdx++

			if !e.isCandidate(sentence) {
				continue
			}

			matched, confidence := e.matchSignals(sentence)
			if matched == "" {
				continue
			}

			key := strings.ToLower(strings.TrimSpace(sentence))
			if seen[key] {
				continue
			}
			seen[key] = true

			claims = append(claims, model.Claim{
				Text:       terminate(sentence),
				Speaker:    ln.speaker,
				Context:    contextAround(ln.text, sentence, e.contextPad),
				Confidence: confidence,
				Heuristic:  "signal:" + matched,
				Sentence:   idx,
			})

			if len(claims) >= maxClaims {
				return claims
			}
		}
	}

	return claims
}

// isCandidate applies the minimum-length and non-claim filters.
func (e *Extractor) isCandidate(sentence string) bool {
	trimmed := strings.TrimSpace(sentence)
	if len(trimmed) < e.minChars {
		return false
	}
	if len(strings.Fields(trimmed)) < e.minWords {
		return false
	}
	for _, re := range e.nonClaims {
		if re.MatchString(trimmed) {
			return false
		}
	}
	return true
}

// matchSignals returns the first matching signal name and the resulting
// extraction confidence: base 50 plus every matching signal's boost,
// capped at 95.
func (e *Extractor) matchSignals(sentence string) (string, int) {
	first := ""
	confidence := 50
	for _, sig := range e.signals {
		if sig.re.MatchString(sentence) {
			if first == "" {
				first = sig.name
			}
			confidence += sig.boost
		}
	}
	if first == "" {
		return "", 0
	}
	if confidence > 95 {
		confidence = 95
	}
	return first, confidence
}

// SplitSentences splits text into sentence-like units.
func SplitSentences(text string) []string {
	text = strings.ReplaceAll(text, "\n", " ")

	var sentences []string
	var current strings.Builder

	for i, r := range text {
		current.WriteRune(r)

		if r == '.' || r == '!' || r == '?' {
			// Avoid splitting mid-abbreviation or inside a number
			if i+1 < len(text) && text[i+1] != ' ' && text[i+1] != '\t' {
				continue
			}
			sentence := strings.TrimSpace(current.String())
			if sentence != "" {
				sentences = append(sentences, sentence)
			}
			current.Reset()
		}
	}

	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}

// terminate ensures a claim ends with sentence punctuation.
func terminate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	switch s[len(s)-1] {
	case '.', '!', '?':
		return s
	}
	return s + "."
}

// contextAround returns the surrounding text of a sentence within its line,
// padded by pad characters on each side.
func contextAround(text, sentence string, pad int) string {
	idx := strings.Index(text, strings.TrimSuffix(sentence, "."))
	if idx < 0 {
		return ""
	}
	start := idx - pad
	if start < 0 {
		start = 0
	}
	end := idx + len(sentence) + pad
	if end > len(text) {
		end = len(text)
	}
	return strings.TrimSpace(text[start:end])
}

// SortBySentence restores first-appearance order after any reordering.
func SortBySentence(claims []model.Claim) {
	sort.SliceStable(claims, func(i, j int) bool {
		return claims[i].Sentence < claims[j].Sentence
	})
}

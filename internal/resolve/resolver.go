package resolve

import (
	"regexp"
	"strings"

	"github.com/veridict/veridict/internal/model"
)

// Info records what the resolver did to a claim.
type Info struct {
	Changed       bool     `json:"changed"`
	Substitutions []string `json:"substitutions,omitempty"` // e.g., "he -> Donald Trump"
	TooVague      bool     `json:"too_vague"`
	Reason        string   `json:"reason,omitempty"`
}

// Resolver normalizes pronoun and partial-name references in claims and
// flags claims that are too vague to verify. It never fails: on any
// internal problem the original claim text is returned unchanged.
type Resolver struct {
	surnames   map[string]string
	ultraVague map[string]bool
	maxRecall  int
}

// NewResolver creates a context resolver with the built-in surname table.
func NewResolver() *Resolver {
	return &Resolver{
		surnames: map[string]string{
			"trump":     "Donald Trump",
			"biden":     "Joe Biden",
			"harris":    "Kamala Harris",
			"obama":     "Barack Obama",
			"clinton":   "Hillary Clinton",
			"pelosi":    "Nancy Pelosi",
			"mcconnell": "Mitch McConnell",
			"sanders":   "Bernie Sanders",
			"vance":     "JD Vance",
			"walz":      "Tim Walz",
			"putin":     "Vladimir Putin",
			"zelensky":  "Volodymyr Zelensky",
			"netanyahu": "Benjamin Netanyahu",
		},
		ultraVague: map[string]bool{
			"it is what it is":      true,
			"things are happening":  true,
			"everybody knows it":    true,
			"believe me":            true,
			"you know what i mean":  true,
			"that thing":            true,
			"a lot of things":       true,
			"we all know the truth": true,
		},
		maxRecall: 10,
	}
}

var (
	thirdPersonRe = regexp.MustCompile(`(?i)\b(he|she|they|this|that|their)\b`)
	firstPersonRe = regexp.MustCompile(`(?i)\b(i|my|mine|we|our)\b`)
	barePronounRe = regexp.MustCompile(`(?i)^(he|she|it|they|this|that|those|these)[.!?]?$`)

	// Two or more capitalized words in a row, e.g. "Donald Trump"
	properNounRe = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)+\b`)
)

// Resolve rewrites pronoun and surname references in a claim using the
// last few claims as context. recent is ordered oldest-first.
func (r *Resolver) Resolve(claim model.Claim, recent []string) (resolved string, info Info) {
	// Resolution must never break the pipeline
	defer func() {
		if p := recover(); p != nil {
			resolved = claim.Text
			info = Info{}
		}
	}()

	text := claim.Text

	// First-person pronouns refer to the attributed speaker
	if claim.Speaker != "" && claim.Speaker != model.UnknownSpeaker {
		if loc := firstPersonRe.FindStringIndex(text); loc != nil {
			pronoun := text[loc[0]:loc[1]]
			if strings.EqualFold(pronoun, "i") || strings.EqualFold(pronoun, "we") {
				text = text[:loc[0]] + claim.Speaker + text[loc[1]:]
				info.Substitutions = append(info.Substitutions, pronoun+" -> "+claim.Speaker)
			}
		}
	}

	// Third-person pronouns refer to the most recent proper noun
	if loc := thirdPersonRe.FindStringIndex(text); loc != nil {
		if ref := r.lastProperNoun(recent); ref != "" {
			pronoun := text[loc[0]:loc[1]]
			text = text[:loc[0]] + ref + text[loc[1]:]
			info.Substitutions = append(info.Substitutions, pronoun+" -> "+ref)
		}
	}

	// Surname-only references expand to the full name
	for surname, full := range r.surnames {
		if strings.Contains(strings.ToLower(text), full2lower(full)) {
			continue // Full name already present
		}
		re := regexp.MustCompile(`(?i)\b` + surname + `\b`)
		if loc := re.FindStringIndex(text); loc != nil {
			text = text[:loc[0]] + full + text[loc[1]:]
			info.Substitutions = append(info.Substitutions, surname+" -> "+full)
		}
	}

	info.Changed = text != claim.Text
	info.TooVague, info.Reason = r.tooVague(text)

	return text, info
}

// tooVague applies the narrow vagueness rules. The bias is toward
// attempting verification: only clearly uncheckable claims are flagged.
func (r *Resolver) tooVague(text string) (bool, string) {
	trimmed := strings.TrimSpace(text)

	if len(strings.Fields(trimmed)) < 3 {
		return true, "under 3 words"
	}
	if barePronounRe.MatchString(trimmed) {
		return true, "bare pronoun"
	}
	normalized := strings.ToLower(strings.TrimRight(trimmed, ".!?"))
	if r.ultraVague[normalized] {
		return true, "ultra-vague phrase"
	}
	return false, ""
}

// lastProperNoun scans the most recent claims (newest first, up to
// maxRecall) for a multi-word proper noun.
func (r *Resolver) lastProperNoun(recent []string) string {
	start := len(recent) - r.maxRecall
	if start < 0 {
		start = 0
	}
	for i := len(recent) - 1; i >= start; i-- {
		matches := properNounRe.FindAllString(recent[i], -1)
		if len(matches) > 0 {
			return matches[len(matches)-1]
		}
	}
	return ""
}

func full2lower(s string) string {
	return strings.ToLower(s)
}

package extract

import (
	"regexp"
	"strings"

	"github.com/veridict/veridict/internal/model"
)

// speakerLine is one run of transcript text attributed to a single speaker.
type speakerLine struct {
	speaker string
	text    string
}

// Speaker label patterns, checked in order against the start of each line.
var (
	// "Senator Warren:" / "President Biden:" - title-prefixed name
	titledSpeakerRe = regexp.MustCompile(`^((?:President|Vice President|Senator|Governor|Representative|Rep\.|Secretary|Speaker|Mayor|Dr\.|Mr\.|Ms\.|Mrs\.)\s+[A-Z][a-zA-Z.'-]+(?:\s+[A-Z][a-zA-Z.'-]+)?)\s*:\s*`)

	// "MODERATOR:" / "TRUMP:" - ALL-CAPS label
	capsSpeakerRe = regexp.MustCompile(`^([A-Z][A-Z.'-]+(?:\s+[A-Z][A-Z.'-]+)?)\s*:\s*`)

	// "Jane Smith:" - plain name prefix, at most three words
	nameSpeakerRe = regexp.MustCompile(`^([A-Z][a-zA-Z.'-]+(?:\s+[A-Z][a-zA-Z.'-]+){0,2})\s*:\s*`)
)

// wellKnownSpeakers normalizes frequently seen ALL-CAPS or surname-only
// labels to a full name.
var wellKnownSpeakers = map[string]string{
	"TRUMP":     "Donald Trump",
	"BIDEN":     "Joe Biden",
	"HARRIS":    "Kamala Harris",
	"OBAMA":     "Barack Obama",
	"PELOSI":    "Nancy Pelosi",
	"MCCONNELL": "Mitch McConnell",
	"SANDERS":   "Bernie Sanders",
	"VANCE":     "JD Vance",
	"WALZ":      "Tim Walz",
}

// splitSpeakerLines breaks a transcript into speaker-attributed runs.
// Lines without a recognizable label inherit the most recent speaker;
// if the transcript has no labels at all, every line is "Unknown".
func splitSpeakerLines(transcript string) []speakerLine {
	current := model.UnknownSpeaker
	var out []speakerLine

	for _, raw := range strings.Split(transcript, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if speaker, rest, ok := matchSpeakerLabel(line); ok {
			current = speaker
			line = rest
			if line == "" {
				continue
			}
		}

		out = append(out, speakerLine{speaker: current, text: line})
	}

	return out
}

// matchSpeakerLabel tries the label patterns against the start of a line and
// returns the normalized speaker name plus the remaining text.
func matchSpeakerLabel(line string) (string, string, bool) {
	for _, re := range []*regexp.Regexp{titledSpeakerRe, capsSpeakerRe, nameSpeakerRe} {
		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		label := strings.TrimSpace(m[1])

		// A sentence like "Fact: the economy grew" is not a speaker label.
		if isLabelStopword(label) {
			continue
		}

		return normalizeSpeaker(label), strings.TrimSpace(line[len(m[0]):]), true
	}
	return "", "", false
}

var labelStopwords = map[string]bool{
	"Fact":     true,
	"Note":     true,
	"Question": true,
	"Answer":   true,
	"Source":   true,
	"Warning":  true,
	"Update":   true,
	"NOTE":     true,
	"FACT":     true,
}

func isLabelStopword(label string) bool {
	return labelStopwords[label]
}

// normalizeSpeaker maps known labels to full names and title-cases
// ALL-CAPS labels.
func normalizeSpeaker(label string) string {
	if full, ok := wellKnownSpeakers[strings.ToUpper(label)]; ok {
		return full
	}
	if label == strings.ToUpper(label) {
		// "MODERATOR" -> "Moderator"
		words := strings.Fields(strings.ToLower(label))
		for i, w := range words {
			if len(w) > 0 {
				words[i] = strings.ToUpper(w[:1]) + w[1:]
			}
		}
		return strings.Join(words, " ")
	}
	return label
}

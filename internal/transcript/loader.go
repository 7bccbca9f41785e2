// Package transcript normalizes transcript inputs (plain text, SRT/VTT
// subtitles, saved HTML pages) into the UTF-8 text string the
// verification pipeline consumes.
package transcript

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// LoadFile reads a transcript file, dispatching on extension.
func LoadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read transcript: %w", err)
	}

	text := string(data)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".srt":
		return StripSRT(text), nil
	case ".vtt":
		return StripVTT(text), nil
	case ".html", ".htm":
		return StripHTML(text)
	default:
		return strings.TrimSpace(text), nil
	}
}

var (
	srtIndexRe     = regexp.MustCompile(`^\d+$`)
	srtTimestampRe = regexp.MustCompile(`\d{2}:\d{2}:\d{2}[,.]\d{3}\s*-->\s*\d{2}:\d{2}:\d{2}[,.]\d{3}`)
	vttTagRe       = regexp.MustCompile(`<[^>]+>`)
)

// StripSRT removes cue indices and timestamps from SubRip subtitles.
func StripSRT(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || srtIndexRe.MatchString(trimmed) || srtTimestampRe.MatchString(trimmed) {
			continue
		}
		lines = append(lines, trimmed)
	}
	return strings.Join(lines, "\n")
}

// StripVTT removes the WEBVTT header, cue metadata, and inline tags.
func StripVTT(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" ||
			strings.HasPrefix(trimmed, "WEBVTT") ||
			strings.HasPrefix(trimmed, "NOTE") ||
			strings.HasPrefix(trimmed, "STYLE") ||
			srtTimestampRe.MatchString(trimmed) {
			continue
		}
		lines = append(lines, vttTagRe.ReplaceAllString(trimmed, ""))
	}
	return strings.Join(lines, "\n")
}

// StripHTML extracts visible text from an HTML document, skipping
// scripts and styles.
func StripHTML(content string) (string, error) {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				buf.WriteString(text)
				buf.WriteString("\n")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.TrimSpace(buf.String()), nil
}

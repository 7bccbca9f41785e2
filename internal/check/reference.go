package check

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/veridict/veridict/internal/model"
)

// ReferenceChecker compares claimed numeric values against a stored
// reference table for a fixed catalogue of political/statistical topics.
// It is fully offline and always available.
type ReferenceChecker struct {
	entries []referenceEntry
}

// referenceEntry is one row of the reference catalogue.
type referenceEntry struct {
	topic     string
	keywords  []string // All must appear (case-insensitive) for the entry to apply
	value     float64
	unit      string
	tolerance float64 // Absolute tolerance; 0 = default 10% of value
	source    string
}

// NewReferenceChecker creates the checker with its built-in catalogue.
// Reference values are point-in-time snapshots and carry their source.
func NewReferenceChecker() *ReferenceChecker {
	return &ReferenceChecker{
		entries: []referenceEntry{
			{
				topic:    "US unemployment rate",
				keywords: []string{"unemployment"},
				value:    4.1, unit: "%",
				source: "Bureau of Labor Statistics, 2024",
			},
			{
				topic:    "US inflation rate",
				keywords: []string{"inflation"},
				value:    2.9, unit: "%",
				source: "Bureau of Labor Statistics CPI, 2024",
			},
			{
				topic:    "US homeless population",
				keywords: []string{"homeless"},
				value:    653104, unit: " people",
				source: "HUD Annual Homelessness Assessment Report, 2023",
			},
			{
				topic:    "US national debt",
				keywords: []string{"national debt"},
				value:    34e12, unit: " USD",
				source: "US Treasury, 2024",
			},
			{
				topic:    "US murder rate",
				keywords: []string{"murder", "rate"},
				value:    5.7, unit: " per 100,000",
				source: "FBI Uniform Crime Report, 2023",
			},
			{
				topic:    "US population",
				keywords: []string{"population", "united states"},
				value:    335e6, unit: " people",
				source: "US Census Bureau, 2024",
			},
			{
				topic:    "Federal minimum wage",
				keywords: []string{"minimum wage"},
				value:    7.25, unit: " USD/hr",
				source: "US Department of Labor",
			},
			{
				topic:    "Southwest border encounters (FY2023)",
				keywords: []string{"border", "crossings"},
				value:    2.48e6, unit: " encounters",
				tolerance: 0.3e6,
				source: "US Customs and Border Protection, FY2023",
			},
			{
				topic:    "Global average temperature rise since pre-industrial",
				keywords: []string{"degrees", "warming"},
				value:    1.2, unit: " °C",
				tolerance: 0.2,
				source: "IPCC AR6",
			},
			{
				topic:    "Americans without health insurance",
				keywords: []string{"health insurance"},
				value:    26e6, unit: " people",
				source: "US Census Bureau, 2023",
			},
		},
	}
}

// Name returns the checker name
func (c *ReferenceChecker) Name() string {
	return "static_reference"
}

// claimedValueRe extracts a numeric figure with an optional scale word.
var claimedValueRe = regexp.MustCompile(`(?i)(\d+(?:[,.]\d+)*)\s*(%|percent|trillion|billion|million|thousand)?`)

// Check extracts a claimed value, finds a matching topic, and compares
// within tolerance tiers: 1x -> true, 2x -> mostly_true, 4x -> misleading,
// beyond -> false.
func (c *ReferenceChecker) Check(ctx context.Context, claim string) (model.SourceCheckResult, error) {
	entry, ok := c.matchTopic(claim)
	if !ok {
		return model.NotFound(c.Name()), nil
	}

	claimed, ok := extractClaimedValue(claim)
	if !ok {
		return model.NotFound(c.Name()), nil
	}

	tolerance := entry.tolerance
	if tolerance == 0 {
		tolerance = entry.value * 0.10
	}

	diff := math.Abs(claimed - entry.value)

	var verdict model.Verdict
	var confidence int
	switch {
	case diff <= tolerance:
		verdict = model.VerdictTrue
		confidence = 90
	case diff <= 2*tolerance:
		verdict = model.VerdictMostlyTrue
		confidence = 80
	case diff <= 4*tolerance:
		verdict = model.VerdictMisleading
		confidence = 75
	default:
		verdict = model.VerdictFalse
		confidence = 85
	}

	explanation := fmt.Sprintf("Claimed %s%s for %s; reference value is %s%s (%s).",
		formatValue(claimed), entry.unit, entry.topic, formatValue(entry.value), entry.unit, entry.source)

	return model.SourceCheckResult{
		Found:       true,
		Verdict:     verdict,
		Explanation: explanation,
		Confidence:  confidence,
		SourceName:  c.Name(),
		Weight:      WeightReference,
	}, nil
}

func (c *ReferenceChecker) matchTopic(claim string) (referenceEntry, bool) {
	lower := strings.ToLower(claim)
	for _, entry := range c.entries {
		all := true
		for _, kw := range entry.keywords {
			if !strings.Contains(lower, kw) {
				all = false
				break
			}
		}
		if all {
			return entry, true
		}
	}
	return referenceEntry{}, false
}

// extractClaimedValue pulls the claimed numeric figure out of a claim,
// applying any scale word (million, percent, ...). Bare year-like numbers
// ("in 2024") are skipped when any other figure is present.
func extractClaimedValue(claim string) (float64, bool) {
	matches := claimedValueRe.FindAllStringSubmatch(claim, -1)
	if matches == nil {
		return 0, false
	}

	var fallback float64
	haveFallback := false

	for _, m := range matches {
		raw := strings.ReplaceAll(m[1], ",", "")
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}

		scale := strings.ToLower(m[2])
		switch scale {
		case "trillion":
			value *= 1e12
		case "billion":
			value *= 1e9
		case "million":
			value *= 1e6
		case "thousand":
			value *= 1e3
		}

		if scale == "" && value >= 1900 && value <= 2100 && value == math.Trunc(value) {
			if !haveFallback {
				fallback = value
				haveFallback = true
			}
			continue
		}

		return value, true
	}

	return fallback, haveFallback
}

func formatValue(v float64) string {
	switch {
	case v >= 1e12:
		return strconv.FormatFloat(v/1e12, 'f', -1, 64) + " trillion"
	case v >= 1e9:
		return strconv.FormatFloat(v/1e9, 'f', -1, 64) + " billion"
	case v >= 1e6:
		return strconv.FormatFloat(v/1e6, 'f', -1, 64) + " million"
	default:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
}

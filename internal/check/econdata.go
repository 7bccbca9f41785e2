package check

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/veridict/veridict/internal/model"
)

const fredEndpoint = "https://api.stlouisfed.org/fred/series/observations"

// EconDataChecker corroborates economic claims against the FRED data
// series API. It reports the most recent observation rather than a
// true/false judgment: numeric corroboration, not a verdict.
type EconDataChecker struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
	series     []seriesRule
}

// seriesRule maps an economic-indicator keyword to a canonical FRED series.
type seriesRule struct {
	keyword  string
	seriesID string
	label    string
	unit     string
}

// NewEconDataChecker creates the checker. Returns nil when no API key is
// configured.
func NewEconDataChecker(apiKey string, timeout time.Duration) *EconDataChecker {
	if apiKey == "" {
		return nil
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &EconDataChecker{
		apiKey:     apiKey,
		endpoint:   fredEndpoint,
		httpClient: &http.Client{Timeout: timeout},
		series: []seriesRule{
			{"unemployment", "UNRATE", "the US unemployment rate", "%"},
			{"inflation", "CPIAUCSL", "the Consumer Price Index (all urban consumers)", ""},
			{"gdp", "GDP", "US gross domestic product", " billion USD"},
			{"interest rate", "FEDFUNDS", "the federal funds rate", "%"},
			{"gas price", "GASREGW", "the average US regular gasoline price", " USD/gal"},
			{"minimum wage", "FEDMINNCUSFM", "the federal minimum wage", " USD/hr"},
			{"median income", "MEHOINUSA672N", "real median household income", " USD"},
			{"national debt", "GFDEBTN", "total federal debt", " million USD"},
		},
	}
}

// Name returns the checker name
func (c *EconDataChecker) Name() string {
	return "fred_econdata"
}

type fredResponse struct {
	Observations []struct {
		Date  string `json:"date"`
		Value string `json:"value"`
	} `json:"observations"`
}

// Check reports the latest observation for the first matching indicator
// keyword. Claims without an economic keyword are not-found.
func (c *EconDataChecker) Check(ctx context.Context, claim string) (model.SourceCheckResult, error) {
	rule, ok := c.matchSeries(claim)
	if !ok {
		return model.NotFound(c.Name()), nil
	}

	query := url.Values{}
	query.Set("series_id", rule.seriesID)
	query.Set("api_key", c.apiKey)
	query.Set("file_type", "json")
	query.Set("sort_order", "desc")
	query.Set("limit", "1")

	var resp fredResponse
	if err := getJSON(ctx, c.httpClient, c.endpoint+"?"+query.Encode(), &resp); err != nil {
		return model.NotFound(c.Name()), fmt.Errorf("FRED lookup (%s): %w", rule.seriesID, err)
	}

	if len(resp.Observations) == 0 || resp.Observations[0].Value == "." {
		return model.NotFound(c.Name()), nil
	}

	obs := resp.Observations[0]
	explanation := fmt.Sprintf("Official data: %s was %s%s as of %s (FRED series %s). Compare the claimed figure against this value.",
		rule.label, obs.Value, rule.unit, obs.Date, rule.seriesID)

	// Data corroboration leans needs_context: the reader judges the match
	return model.SourceCheckResult{
		Found:       true,
		Verdict:     model.VerdictNeedsContext,
		Explanation: explanation,
		Confidence:  60,
		SourceName:  c.Name(),
		Weight:      WeightEconData,
	}, nil
}

func (c *EconDataChecker) matchSeries(claim string) (seriesRule, bool) {
	lower := strings.ToLower(claim)
	for _, rule := range c.series {
		if strings.Contains(lower, rule.keyword) {
			return rule, true
		}
	}
	return seriesRule{}, false
}

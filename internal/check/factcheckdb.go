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

const factCheckEndpoint = "https://factchecktools.googleapis.com/v1alpha1/claims:search"

// FactCheckDBChecker looks a claim up in the Google Fact Check Tools
// claims-review index and maps the reviewer's free-form rating into the
// canonical verdict vocabulary.
type FactCheckDBChecker struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

// NewFactCheckDBChecker creates the checker. Returns nil when no API key is
// configured; the pipeline skips nil checkers and labels the degradation.
func NewFactCheckDBChecker(apiKey string, timeout time.Duration) *FactCheckDBChecker {
	if apiKey == "" {
		return nil
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &FactCheckDBChecker{
		apiKey:     apiKey,
		endpoint:   factCheckEndpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Name returns the checker name
func (c *FactCheckDBChecker) Name() string {
	return "google_factcheck"
}

// Wire shapes for the claims:search response
type factCheckResponse struct {
	Claims []struct {
		Text        string `json:"text"`
		Claimant    string `json:"claimant"`
		ClaimReview []struct {
			Publisher struct {
				Name string `json:"name"`
				Site string `json:"site"`
			} `json:"publisher"`
			URL           string `json:"url"`
			TextualRating string `json:"textualRating"`
			Title         string `json:"title"`
		} `json:"claimReview"`
	} `json:"claims"`
}

// ratingRule maps a provider rating substring to a canonical verdict.
// Order matters: more specific substrings come first.
type ratingRule struct {
	substring string
	verdict   model.Verdict
}

// ratingRules is the data-driven rating vocabulary table, matched
// case-insensitively against the reviewer's textual rating.
var ratingRules = []ratingRule{
	{"pants on fire", model.VerdictFalse},
	{"mostly false", model.VerdictMostlyFalse},
	{"mostly true", model.VerdictMostlyTrue},
	{"half true", model.VerdictMixed},
	{"half-true", model.VerdictMixed},
	{"mixture", model.VerdictMixed},
	{"mixed", model.VerdictMixed},
	{"misleading", model.VerdictMisleading},
	{"exaggerat", model.VerdictExaggeration},
	{"unproven", model.VerdictNeedsContext},
	{"unverified", model.VerdictNeedsContext},
	{"needs context", model.VerdictNeedsContext},
	{"missing context", model.VerdictNeedsContext},
	{"lacks context", model.VerdictNeedsContext},
	{"false", model.VerdictFalse},
	{"incorrect", model.VerdictFalse},
	{"true", model.VerdictTrue},
	{"correct", model.VerdictTrue},
	{"accurate", model.VerdictTrue},
}

// MapRating converts a provider's free-form rating string to a canonical
// verdict. Unrecognized ratings map to needs_context rather than failing.
func MapRating(rating string) model.Verdict {
	lower := strings.ToLower(rating)
	for _, rule := range ratingRules {
		if strings.Contains(lower, rule.substring) {
			return rule.verdict
		}
	}
	return model.VerdictNeedsContext
}

// Check looks the claim up in the claims-review index.
func (c *FactCheckDBChecker) Check(ctx context.Context, claim string) (model.SourceCheckResult, error) {
	query := url.Values{}
	query.Set("query", claim)
	query.Set("key", c.apiKey)
	query.Set("languageCode", "en")

	var resp factCheckResponse
	if err := getJSON(ctx, c.httpClient, c.endpoint+"?"+query.Encode(), &resp); err != nil {
		return model.NotFound(c.Name()), fmt.Errorf("fact check lookup: %w", err)
	}

	if len(resp.Claims) == 0 {
		return model.NotFound(c.Name()), nil
	}

	// Take the first claim with a review attached
	for _, reviewed := range resp.Claims {
		if len(reviewed.ClaimReview) == 0 {
			continue
		}
		review := reviewed.ClaimReview[0]
		verdict := MapRating(review.TextualRating)

		explanation := fmt.Sprintf("%s rated a matching claim %q as %q.",
			review.Publisher.Name, reviewed.Text, review.TextualRating)
		if review.URL != "" {
			explanation += " See " + review.URL
		}

		confidence := 80
		if verdict == model.VerdictNeedsContext {
			confidence = 50
		}

		return model.SourceCheckResult{
			Found:       true,
			Verdict:     verdict,
			Explanation: explanation,
			Confidence:  confidence,
			SourceName:  c.Name(),
			Weight:      WeightFactCheckDB,
		}, nil
	}

	return model.NotFound(c.Name()), nil
}

package check

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/veridict/veridict/internal/model"
)

func TestMapRating(t *testing.T) {
	tests := []struct {
		rating  string
		verdict model.Verdict
	}{
		{"True", model.VerdictTrue},
		{"Accurate.", model.VerdictTrue},
		{"Mostly True", model.VerdictMostlyTrue},
		{"Half True", model.VerdictMixed},
		{"Mixture", model.VerdictMixed},
		{"Misleading", model.VerdictMisleading},
		{"Exaggerated", model.VerdictExaggeration},
		{"Exaggerates", model.VerdictExaggeration},
		{"Mostly False", model.VerdictMostlyFalse},
		{"False", model.VerdictFalse},
		{"Pants on Fire!", model.VerdictFalse},
		{"Incorrect", model.VerdictFalse},
		{"Unproven", model.VerdictNeedsContext},
		{"Missing Context", model.VerdictNeedsContext},
		// Unknown vocabularies degrade to needs_context, never to a judgment
		{"Four Pinocchios... sort of", model.VerdictNeedsContext},
		{"", model.VerdictNeedsContext},
	}

	for _, tt := range tests {
		t.Run(tt.rating, func(t *testing.T) {
			if got := MapRating(tt.rating); got != tt.verdict {
				t.Errorf("MapRating(%q): expected %s, got %s", tt.rating, tt.verdict, got)
			}
		})
	}
}

func TestFactCheckDBChecker_NoKey(t *testing.T) {
	if c := NewFactCheckDBChecker("", 10*time.Second); c != nil {
		t.Error("Expected nil checker without an API key")
	}
}

func TestFactCheckDBChecker_Check(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("query") == "" {
			t.Error("Expected query parameter")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"claims": [{
				"text": "We created 7 million jobs",
				"claimant": "Donald Trump",
				"claimReview": [{
					"publisher": {"name": "PolitiFact", "site": "politifact.com"},
					"url": "https://politifact.com/example",
					"textualRating": "Mostly False",
					"title": "Checking the jobs claim"
				}]
			}]
		}`))
	}))
	defer server.Close()

	checker := &FactCheckDBChecker{
		apiKey:     "test-key",
		endpoint:   server.URL,
		httpClient: server.Client(),
	}

	result, err := checker.Check(context.Background(), "We created 7 million jobs.")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !result.Found {
		t.Fatal("Expected a result")
	}
	if result.Verdict != model.VerdictMostlyFalse {
		t.Errorf("Expected mostly_false, got %s", result.Verdict)
	}
	if !strings.Contains(result.Explanation, "PolitiFact") {
		t.Errorf("Expected publisher in explanation, got %q", result.Explanation)
	}
	if result.Weight != WeightFactCheckDB {
		t.Errorf("Expected weight %v, got %v", WeightFactCheckDB, result.Weight)
	}
}

func TestFactCheckDBChecker_NoMatches(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"claims": []}`))
	}))
	defer server.Close()

	checker := &FactCheckDBChecker{
		apiKey:     "test-key",
		endpoint:   server.URL,
		httpClient: server.Client(),
	}

	result, err := checker.Check(context.Background(), "An obscure claim nobody reviewed.")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Found {
		t.Error("Expected not-found for an unreviewed claim")
	}
}

func TestFactCheckDBChecker_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	checker := &FactCheckDBChecker{
		apiKey:     "test-key",
		endpoint:   server.URL,
		httpClient: server.Client(),
	}

	result, err := checker.Check(context.Background(), "Any claim.")
	if err == nil {
		t.Error("Expected an error on provider failure")
	}
	if result.Found {
		t.Error("Expected not-found result alongside the error")
	}
}

// Package check implements the independent source checkers that attempt to
// verify a single claim against one external or heuristic source.
package check

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/veridict/veridict/internal/model"
)

// Checker is the fixed capability interface every source checker implements.
// A checker either produces an opinion (Found=true), declines
// (Found=false), or fails (error). Failures are converted to "not found"
// by the fan-out runner; they never abort other checkers.
type Checker interface {
	// Name identifies the checker/provider in results and logs
	Name() string

	// Check attempts to verify one claim
	Check(ctx context.Context, claim string) (model.SourceCheckResult, error)
}

// Default trust weights per source, used during aggregation.
const (
	WeightFactCheckDB = 0.80
	WeightReference   = 0.75
	WeightEconData    = 0.70
	WeightNews        = 0.60
	WeightAI          = 0.50
)

// getJSON performs a GET with the given client and decodes the JSON body
// into out. The caller's context bounds the call; the client carries the
// hard timeout.
func getJSON(ctx context.Context, client *http.Client, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

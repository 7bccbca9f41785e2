package check

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/veridict/veridict/internal/model"
	"github.com/veridict/veridict/internal/worker"
)

// Runner fans one claim out to every checker concurrently. Each checker is
// independently failable: a panic, error, or timeout in one converts to
// not-found for that checker only and never disturbs the others.
type Runner struct {
	checkers []Checker
	timeout  time.Duration
	limiter  *worker.Limiter // Optional per-provider rate limiter
}

// NewRunner creates a fan-out runner. Nil checkers (unconfigured providers)
// are dropped here so callers can pass constructor results directly.
func NewRunner(timeout time.Duration, limiter *worker.Limiter, checkers ...Checker) *Runner {
	if timeout <= 0 {
		timeout = 12 * time.Second
	}

	kept := make([]Checker, 0, len(checkers))
	for _, c := range checkers {
		if c == nil || isNilChecker(c) {
			continue
		}
		kept = append(kept, c)
	}

	return &Runner{checkers: kept, timeout: timeout, limiter: limiter}
}

// Checkers returns the names of the active checkers, for degraded-mode
// reporting.
func (r *Runner) Checkers() []string {
	names := make([]string, len(r.checkers))
	for i, c := range r.checkers {
		names[i] = c.Name()
	}
	return names
}

// Run invokes every checker concurrently for one claim and collects the
// results in checker order. The per-claim timeout bounds the whole fan-out.
func (r *Runner) Run(ctx context.Context, claim string) []model.SourceCheckResult {
	if len(r.checkers) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	results := make([]model.SourceCheckResult, len(r.checkers))
	var wg sync.WaitGroup

	for i, c := range r.checkers {
		wg.Add(1)
		go func(idx int, checker Checker) {
			defer wg.Done()
			results[idx] = r.runOne(ctx, checker, claim)
		}(i, c)
	}

	wg.Wait()
	return results
}

// runOne executes a single checker with panic isolation.
func (r *Runner) runOne(ctx context.Context, checker Checker, claim string) (result model.SourceCheckResult) {
	defer func() {
		if p := recover(); p != nil {
			log.Printf("warning: checker %s panicked: %v", checker.Name(), p)
			result = model.NotFound(checker.Name())
		}
	}()

	if r.limiter != nil {
		if err := r.limiter.Wait(ctx, checker.Name()); err != nil {
			return model.NotFound(checker.Name())
		}
	}

	result, err := checker.Check(ctx, claim)
	if err != nil {
		log.Printf("warning: checker %s failed: %v", checker.Name(), err)
		return model.NotFound(checker.Name())
	}
	if result.SourceName == "" {
		result.SourceName = checker.Name()
	}
	return result
}

// isNilChecker guards against typed-nil interface values from the
// concrete constructors (e.g., (*NewsChecker)(nil)).
func isNilChecker(c Checker) bool {
	switch v := c.(type) {
	case *FactCheckDBChecker:
		return v == nil
	case *EconDataChecker:
		return v == nil
	case *ReferenceChecker:
		return v == nil
	case *NewsChecker:
		return v == nil
	case *AIChecker:
		return v == nil
	default:
		return false
	}
}

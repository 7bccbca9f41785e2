// Package pipeline orchestrates the verification pipeline: extraction,
// context resolution, batched checker fan-out, aggregation, scoring, and
// summary.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/veridict/veridict/internal/cache"
	"github.com/veridict/veridict/internal/check"
	"github.com/veridict/veridict/internal/extract"
	"github.com/veridict/veridict/internal/history"
	"github.com/veridict/veridict/internal/llm"
	"github.com/veridict/veridict/internal/model"
	"github.com/veridict/veridict/internal/resolve"
	"github.com/veridict/veridict/internal/score"
	"github.com/veridict/veridict/internal/verdict"
	"github.com/veridict/veridict/internal/worker"
)

// ProgressSink receives job lifecycle updates. The pipeline only writes;
// it never reads back.
type ProgressSink interface {
	Create(jobID string)
	Update(jobID string, update model.JobUpdate)
}

// nopSink discards updates when no sink is wired (e.g., one-shot CLI runs).
type nopSink struct{}

func (nopSink) Create(string)                  {}
func (nopSink) Update(string, model.JobUpdate) {}

// Progress milestones per stage. The checking stage fills the
// checkingStart..checkingEnd sub-range proportionally to claims completed.
const (
	progressExtracting  = 20
	progressFiltering   = 30
	checkingStart       = 40
	checkingEnd         = 70
	progressAggregating = 90
	progressComplete    = 100
)

// Pipeline runs the complete fact-checking flow for one transcript.
type Pipeline struct {
	cfg        *model.Config
	extractor  *extract.AIExtractor
	resolver   *resolve.Resolver
	rhetoric   *check.RhetoricDetector
	runner     *check.Runner
	aggregator *verdict.Aggregator
	scorer     *score.Scorer
	tracker    *history.Tracker
	cache      *cache.VerdictCache
	summarizer *Summarizer
	sink       ProgressSink
	notes      []string // Degraded-mode labels, copied into every report
}

// New wires the pipeline from configuration. tracker is the injectable
// speaker history; sink may be nil.
func New(cfg *model.Config, tracker *history.Tracker, sink ProgressSink) *Pipeline {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}
	if tracker == nil {
		tracker = history.NewTracker(cfg.History.MaxSpeakers, cfg.History.MaxChecksPerClaim)
	}
	if sink == nil {
		sink = nopSink{}
	}

	var provider llm.Provider
	if cfg.LLM.Provider != "" {
		p, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize LLM provider: %v\n", err)
		} else {
			provider = p
		}
	}

	var notes []string
	factDB := check.NewFactCheckDBChecker(cfg.Providers.GoogleFactCheckAPIKey, cfg.HTTP.Timeout)
	if factDB == nil {
		notes = append(notes, "fact-check database checker skipped: no API key configured")
	}
	econ := check.NewEconDataChecker(cfg.Providers.FREDAPIKey, cfg.HTTP.Timeout)
	if econ == nil {
		notes = append(notes, "economic-data checker skipped: no API key configured")
	}
	news := check.NewNewsChecker(cfg.Providers.NewsAPIKey, cfg.Providers.NewsFeeds, cfg.HTTP.Timeout)
	if news == nil {
		notes = append(notes, "news-corroboration checker skipped: no API key or feeds configured")
	}
	ai := check.NewAIChecker(provider)
	if ai == nil {
		notes = append(notes, "AI-analysis checker skipped: no LLM provider configured")
	}

	limiter := worker.NewLimiter(cfg.HTTP.RateLimit, cfg.HTTP.RateBurst)
	runner := check.NewRunner(cfg.Pipeline.ClaimTimeout, limiter,
		factDB, econ, check.NewReferenceChecker(), news, ai)

	var verdictCache *cache.VerdictCache
	if cfg.Cache.Enabled {
		var store cache.Cache
		if cfg.Cache.Dir != "" {
			store = cache.NewLayeredCache(cfg.Cache.TTL, cfg.Cache.Dir, cfg.Cache.TTL)
		} else {
			store = cache.NewMemoryCache(cfg.Cache.TTL, 10*time.Minute)
		}
		verdictCache = cache.NewVerdictCache(store, cfg.Cache.TTL)
	}

	return &Pipeline{
		cfg:        cfg,
		extractor:  extract.NewAIExtractor(provider, extract.NewExtractor()),
		resolver:   resolve.NewResolver(),
		rhetoric:   check.NewRhetoricDetector(),
		runner:     runner,
		aggregator: verdict.NewAggregator(tracker),
		scorer:     score.NewScorer(),
		tracker:    tracker,
		cache:      verdictCache,
		summarizer: NewSummarizer(provider),
		sink:       sink,
		notes:      notes,
	}
}

// Analyze runs the full pipeline for one transcript. The returned error is
// also recorded in the sink; no failure past extraction aborts the job
// without a terminal update.
func (p *Pipeline) Analyze(ctx context.Context, jobID, transcriptText, sourceLabel string) (report *model.Report, err error) {
	p.sink.Create(jobID)

	// One guard at the top of the orchestrator: nothing below may leave
	// the job in a non-terminal state.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pipeline panic: %v", r)
		}
		if err != nil {
			p.sink.Update(jobID, model.JobUpdate{Status: model.StatusError, Error: err.Error()})
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, p.cfg.Pipeline.JobTimeout)
	defer cancel()

	// Extraction
	p.update(jobID, model.StatusExtracting, progressExtracting, "extracting claims")
	claims := p.extractor.Extract(ctx, transcriptText, p.cfg.Pipeline.MaxClaims)

	// Filtering: context resolution and vagueness triage
	p.update(jobID, model.StatusFiltering, progressFiltering, "resolving context")
	checkable, vague := p.filterClaims(claims)

	// Checking: batched concurrent verification
	p.update(jobID, model.StatusChecking, checkingStart, "verifying claims")
	verdicts := p.checkClaims(ctx, jobID, checkable)

	// Aggregating: merge in the vague-claim verdicts, restore input order
	p.update(jobID, model.StatusAggregating, progressAggregating, "aggregating verdicts")
	verdicts = append(verdicts, vague...)

	// Summarizing
	p.update(jobID, model.StatusSummarizing, progressAggregating, "building summary")
	credibility := p.scorer.Score(verdicts)

	report = &model.Report{
		Source:           sourceLabel,
		AnalyzedAt:       time.Now().UTC(),
		TotalClaims:      len(claims),
		CheckedClaims:    len(checkable),
		CredibilityScore: credibility,
		FactChecks:       verdicts,
		AnalysisNotes:    p.notes,
	}
	report.Summary = p.summarizer.Summarize(ctx, report)

	p.sink.Update(jobID, model.JobUpdate{
		Status:   model.StatusComplete,
		Progress: progressComplete,
		Result:   report,
	})
	return report, nil
}

// filterClaims resolves references per claim and splits off claims too
// vague to verify, which receive an immediate needs_context verdict.
func (p *Pipeline) filterClaims(claims []model.Claim) ([]model.Claim, []model.AggregatedVerdict) {
	var checkable []model.Claim
	var vague []model.AggregatedVerdict
	var recent []string

	for _, claim := range claims {
		resolved, info := p.resolver.Resolve(claim, recent)
		recent = append(recent, claim.Text)

		if info.TooVague {
			vague = append(vague, model.AggregatedVerdict{
				Claim:       claim.Text,
				Speaker:     claim.Speaker,
				Verdict:     model.VerdictNeedsContext,
				Confidence:  30,
				Explanation: "Too vague to verify: " + info.Reason + ".",
			})
			continue
		}

		claim.Text = resolved
		checkable = append(checkable, claim)
	}

	return checkable, vague
}

// checkClaims verifies claims in fixed-size batches, with bounded
// concurrency inside each batch. A failing claim degrades to a synthetic
// unverified verdict instead of aborting the batch.
func (p *Pipeline) checkClaims(ctx context.Context, jobID string, claims []model.Claim) []model.AggregatedVerdict {
	if len(claims) == 0 {
		return nil
	}

	batchSize := p.cfg.Pipeline.BatchSize
	if batchSize <= 0 {
		batchSize = 5
	}
	concurrency := p.cfg.Pipeline.ClaimConcurrency
	if concurrency <= 0 {
		concurrency = 10
	}

	verdicts := make([]model.AggregatedVerdict, len(claims))
	done := 0

	for start := 0; start < len(claims); start += batchSize {
		end := start + batchSize
		if end > len(claims) {
			end = len(claims)
		}

		var wg sync.WaitGroup
		semaphore := make(chan struct{}, concurrency)

		for i := start; i < end; i++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				select {
				case <-ctx.Done():
					verdicts[idx] = p.degradedVerdict(claims[idx], "job timeout")
					return
				case semaphore <- struct{}{}:
				}
				defer func() { <-semaphore }()
				verdicts[idx] = p.checkOne(ctx, claims[idx])
			}(i)
		}
		wg.Wait()

		done = end
		progress := checkingStart + (checkingEnd-checkingStart)*done/len(claims)
		p.update(jobID, model.StatusChecking, progress,
			fmt.Sprintf("verified %d/%d claims", done, len(claims)))
	}

	return verdicts
}

// checkOne verifies a single claim: cache, rhetoric pre-filter, fan-out,
// aggregation. Panics degrade to an unverified verdict.
func (p *Pipeline) checkOne(ctx context.Context, claim model.Claim) (out model.AggregatedVerdict) {
	defer func() {
		if r := recover(); r != nil {
			out = p.degradedVerdict(claim, fmt.Sprintf("internal error: %v", r))
		}
	}()

	if p.cache != nil {
		if cached, found := p.cache.Get(claim.Text); found {
			cached.Speaker = claim.Speaker
			return cached
		}
	}

	// Rhetoric pre-filter short-circuits the fan-out
	priorVague := 0
	if stats, ok := p.tracker.Stats(claim.Speaker); ok {
		priorVague = stats.VagueCount
	}
	if result, hit := p.rhetoric.Detect(claim.Text, priorVague); hit {
		agg := p.aggregator.Aggregate(claim.Text, claim.Speaker, []model.SourceCheckResult{result})
		p.cacheSet(claim.Text, agg)
		return agg
	}

	results := p.runner.Run(ctx, claim.Text)
	agg := p.aggregator.Aggregate(claim.Text, claim.Speaker, results)
	p.cacheSet(claim.Text, agg)
	return agg
}

func (p *Pipeline) cacheSet(claim string, agg model.AggregatedVerdict) {
	if p.cache != nil {
		p.cache.Set(claim, agg)
	}
}

// degradedVerdict is the synthetic result for a claim that could not be
// processed at all.
func (p *Pipeline) degradedVerdict(claim model.Claim, reason string) model.AggregatedVerdict {
	return model.AggregatedVerdict{
		Claim:       claim.Text,
		Speaker:     claim.Speaker,
		Verdict:     model.VerdictUnverified,
		Confidence:  0,
		Explanation: "Verification could not be completed: " + reason + ".",
	}
}

func (p *Pipeline) update(jobID string, status model.JobStatus, progress int, message string) {
	p.sink.Update(jobID, model.JobUpdate{Status: status, Progress: progress, Message: message})
}

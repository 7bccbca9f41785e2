package pipeline

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/veridict/veridict/internal/history"
	"github.com/veridict/veridict/internal/model"
)

// recordingSink captures every progress update for inspection
type recordingSink struct {
	mu      sync.Mutex
	created []string
	updates []model.JobUpdate
}

func (s *recordingSink) Create(jobID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created = append(s.created, jobID)
}

func (s *recordingSink) Update(jobID string, update model.JobUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates = append(s.updates, update)
}

const testTranscript = `TRUMP: The unemployment rate is 4.1 percent right now.
We will be respected again like never before.
Everybody knows it.`

func newTestPipeline(sink ProgressSink) *Pipeline {
	cfg := model.DefaultConfig()
	tracker := history.NewTracker(100, 20)
	return New(cfg, tracker, sink)
}

func TestPipeline_Analyze(t *testing.T) {
	sink := &recordingSink{}
	p := newTestPipeline(sink)

	report, err := p.Analyze(context.Background(), "job-1", testTranscript, "test rally")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if report.Source != "test rally" {
		t.Errorf("Expected source label, got %q", report.Source)
	}
	if report.TotalClaims != 3 {
		t.Errorf("Expected 3 extracted claims, got %d", report.TotalClaims)
	}
	if report.CheckedClaims != 2 {
		t.Errorf("Expected 2 checkable claims (one too vague), got %d", report.CheckedClaims)
	}
	if len(report.FactChecks) != 3 {
		t.Fatalf("Expected a verdict per claim, got %d", len(report.FactChecks))
	}
	if report.Summary == "" {
		t.Error("Expected a narrative summary")
	}

	byVerdict := make(map[model.Verdict]int)
	for _, fc := range report.FactChecks {
		byVerdict[fc.Verdict]++
	}
	if byVerdict[model.VerdictTrue] != 1 {
		t.Errorf("Expected the accurate statistic verified true, got %v", byVerdict)
	}
	if byVerdict[model.VerdictEmptyRhetoric] != 1 {
		t.Errorf("Expected the boast classified as empty rhetoric, got %v", byVerdict)
	}
	if byVerdict[model.VerdictNeedsContext] != 1 {
		t.Errorf("Expected the vague claim to need context, got %v", byVerdict)
	}
}

func TestPipeline_ProgressMilestones(t *testing.T) {
	sink := &recordingSink{}
	p := newTestPipeline(sink)

	if _, err := p.Analyze(context.Background(), "job-1", testTranscript, "test"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(sink.created) != 1 || sink.created[0] != "job-1" {
		t.Errorf("Expected one job created, got %v", sink.created)
	}

	last := -1
	for _, u := range sink.updates {
		if u.Progress != 0 && u.Progress < last {
			t.Errorf("Expected monotonic progress, got %d after %d", u.Progress, last)
		}
		if u.Progress > last {
			last = u.Progress
		}
	}

	final := sink.updates[len(sink.updates)-1]
	if final.Status != model.StatusComplete {
		t.Errorf("Expected terminal complete update, got %s", final.Status)
	}
	if final.Progress != 100 {
		t.Errorf("Expected progress 100, got %d", final.Progress)
	}
	if final.Result == nil {
		t.Error("Expected the report attached to the terminal update")
	}
}

func TestPipeline_DegradedModeNotes(t *testing.T) {
	// No API keys configured: every external checker is skipped and the
	// report says so.
	p := newTestPipeline(nil)

	report, err := p.Analyze(context.Background(), "job-1", testTranscript, "test")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(report.AnalysisNotes) < 3 {
		t.Fatalf("Expected degraded-mode notes for skipped checkers, got %v", report.AnalysisNotes)
	}
	joined := strings.Join(report.AnalysisNotes, " ")
	for _, fragment := range []string{"fact-check database", "economic-data", "news-corroboration"} {
		if !strings.Contains(joined, fragment) {
			t.Errorf("Expected note about %s checker, got %v", fragment, report.AnalysisNotes)
		}
	}
}

func TestPipeline_EmptyTranscript(t *testing.T) {
	p := newTestPipeline(nil)

	report, err := p.Analyze(context.Background(), "job-1", "", "empty")
	if err != nil {
		t.Fatalf("Expected no error on empty input, got %v", err)
	}
	if report.TotalClaims != 0 {
		t.Errorf("Expected no claims, got %d", report.TotalClaims)
	}
	if report.CredibilityScore.Score != 50.0 {
		t.Errorf("Expected neutral score with nothing to check, got %v", report.CredibilityScore.Score)
	}
}

func TestPipeline_CacheReuse(t *testing.T) {
	p := newTestPipeline(nil)

	first, err := p.Analyze(context.Background(), "job-1", testTranscript, "run one")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	second, err := p.Analyze(context.Background(), "job-2", testTranscript, "run two")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(first.FactChecks) != len(second.FactChecks) {
		t.Fatalf("Expected identical claim counts, got %d and %d", len(first.FactChecks), len(second.FactChecks))
	}
	// Cached verdicts keep the attributed speaker
	for _, fc := range second.FactChecks {
		if fc.Verdict == model.VerdictTrue && fc.Speaker != "Donald Trump" {
			t.Errorf("Expected speaker preserved on cache hit, got %q", fc.Speaker)
		}
	}
}

func TestPipeline_SpeakerHistoryAccumulates(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = false
	tracker := history.NewTracker(100, 20)
	p := New(cfg, tracker, nil)

	if _, err := p.Analyze(context.Background(), "job-1", testTranscript, "test"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	stats, ok := tracker.Stats("Donald Trump")
	if !ok {
		t.Fatal("Expected speaker history after a run")
	}
	if stats.TotalClaims < 2 {
		t.Errorf("Expected checked claims recorded, got %d", stats.TotalClaims)
	}
}

func TestPipeline_NilConfigDefaults(t *testing.T) {
	p := New(nil, nil, nil)

	report, err := p.Analyze(context.Background(), "job-1", "The economy grew by 3 percent last year.", "test")
	if err != nil {
		t.Fatalf("Expected defaults to work, got %v", err)
	}
	if report.TotalClaims != 1 {
		t.Errorf("Expected 1 claim, got %d", report.TotalClaims)
	}
}

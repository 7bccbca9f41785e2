// Package history maintains per-speaker verification statistics used to
// detect repeat patterns. The tracker is an explicitly owned, injectable
// component: callers pass it into the pipeline and aggregator rather than
// reaching for a process-wide singleton.
package history

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/veridict/veridict/internal/model"
)

// CheckRecord is one past verification of a claim.
type CheckRecord struct {
	Verdict   model.Verdict
	Source    string
	CheckedAt time.Time
}

// SpeakerStats is a read-only snapshot of one speaker's record.
type SpeakerStats struct {
	Speaker       string
	TotalClaims   int
	VerdictCounts map[model.Verdict]int
	VagueCount    int // empty_rhetoric + unsubstantiated_prediction
}

// FalseOrMisleading returns the count of negative verdicts.
func (s SpeakerStats) FalseOrMisleading() int {
	n := 0
	for v, c := range s.VerdictCounts {
		if v.Negative() {
			n += c
		}
	}
	return n
}

// AccuracyRate returns the share of scored claims with a positive verdict,
// or -1 when the speaker has no scored claims yet.
func (s SpeakerStats) AccuracyRate() float64 {
	scored, positive := 0, 0
	for v, c := range s.VerdictCounts {
		if !v.Scored() {
			continue
		}
		scored += c
		if anchor, _ := v.Anchor(); anchor >= 70 {
			positive += c
		}
	}
	if scored == 0 {
		return -1
	}
	return float64(positive) / float64(scored)
}

// speakerRecord is the mutable per-speaker state.
type speakerRecord struct {
	verdictCounts map[model.Verdict]int
	totalClaims   int
	claimChecks   map[string][]CheckRecord // Keyed by normalized claim hash
	lastSeen      time.Time
}

// Tracker accumulates speaker history across jobs for the life of the
// process. Safe for concurrent use. Bounded: least-recently-seen speakers
// are evicted past maxSpeakers.
type Tracker struct {
	mu                sync.RWMutex
	speakers          map[string]*speakerRecord
	maxSpeakers       int
	maxChecksPerClaim int
}

// NewTracker creates a bounded history tracker.
func NewTracker(maxSpeakers, maxChecksPerClaim int) *Tracker {
	if maxSpeakers <= 0 {
		maxSpeakers = 1000
	}
	if maxChecksPerClaim <= 0 {
		maxChecksPerClaim = 20
	}
	return &Tracker{
		speakers:          make(map[string]*speakerRecord),
		maxSpeakers:       maxSpeakers,
		maxChecksPerClaim: maxChecksPerClaim,
	}
}

// ClaimHash returns the normalized hash used for exact-repeat detection.
func ClaimHash(claim string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(claim)), " ")
	normalized = strings.TrimRight(normalized, ".!?")
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:8])
}

func normalizeSpeaker(speaker string) string {
	s := strings.TrimSpace(strings.ToLower(speaker))
	if s == "" {
		return strings.ToLower(model.UnknownSpeaker)
	}
	return s
}

// Record records one verification outcome for a speaker. Verdict counts
// only ever increase; eviction removes whole speakers, never counts.
func (t *Tracker) Record(speaker, claim string, verdict model.Verdict, source string) {
	key := normalizeSpeaker(speaker)
	hash := ClaimHash(claim)

	t.mu.Lock()
	defer t.mu.Unlock()

	rec, ok := t.speakers[key]
	if !ok {
		if len(t.speakers) >= t.maxSpeakers {
			t.evictOldest()
		}
		rec = &speakerRecord{
			verdictCounts: make(map[model.Verdict]int),
			claimChecks:   make(map[string][]CheckRecord),
		}
		t.speakers[key] = rec
	}

	rec.verdictCounts[verdict]++
	rec.totalClaims++
	rec.lastSeen = time.Now()

	checks := rec.claimChecks[hash]
	if len(checks) < t.maxChecksPerClaim {
		rec.claimChecks[hash] = append(checks, CheckRecord{
			Verdict:   verdict,
			Source:    source,
			CheckedAt: time.Now(),
		})
	}
}

// Stats returns a snapshot of a speaker's record. ok is false for unseen
// speakers.
func (t *Tracker) Stats(speaker string) (SpeakerStats, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	rec, ok := t.speakers[normalizeSpeaker(speaker)]
	if !ok {
		return SpeakerStats{}, false
	}

	counts := make(map[model.Verdict]int, len(rec.verdictCounts))
	vague := 0
	for v, c := range rec.verdictCounts {
		counts[v] = c
		if v == model.VerdictEmptyRhetoric || v == model.VerdictUnsubstantiatedPredict {
			vague += c
		}
	}

	return SpeakerStats{
		Speaker:       speaker,
		TotalClaims:   rec.totalClaims,
		VerdictCounts: counts,
		VagueCount:    vague,
	}, true
}

// PriorChecks returns past verifications of the exact same (normalized)
// claim by this speaker.
func (t *Tracker) PriorChecks(speaker, claim string) []CheckRecord {
	t.mu.RLock()
	defer t.mu.RUnlock()

	rec, ok := t.speakers[normalizeSpeaker(speaker)]
	if !ok {
		return nil
	}
	checks := rec.claimChecks[ClaimHash(claim)]
	out := make([]CheckRecord, len(checks))
	copy(out, checks)
	return out
}

// PatternNote describes a speaker's track record when it is notable
// enough to include in an explanation (>=2 prior false/misleading claims,
// or a tracked accuracy rate). Empty string otherwise.
func (t *Tracker) PatternNote(speaker string) string {
	stats, ok := t.Stats(speaker)
	if !ok || speaker == model.UnknownSpeaker {
		return ""
	}

	if negative := stats.FalseOrMisleading(); negative >= 2 {
		return fmt.Sprintf("Speaker pattern: %s has %d prior false or misleading claims out of %d checked.",
			speaker, negative, stats.TotalClaims)
	}
	if rate := stats.AccuracyRate(); rate >= 0 && stats.TotalClaims >= 5 {
		return fmt.Sprintf("Speaker pattern: %s has a tracked accuracy rate of %.0f%% over %d claims.",
			speaker, rate*100, stats.TotalClaims)
	}
	return ""
}

// evictOldest removes the least-recently-seen speaker. Caller holds the
// write lock.
func (t *Tracker) evictOldest() {
	var oldestKey string
	var oldest time.Time
	first := true
	for key, rec := range t.speakers {
		if first || rec.lastSeen.Before(oldest) {
			oldestKey, oldest = key, rec.lastSeen
			first = false
		}
	}
	if oldestKey != "" {
		delete(t.speakers, oldestKey)
	}
}

package history

import (
	"fmt"
	"strings"
	"testing"

	"github.com/veridict/veridict/internal/model"
)

func TestTracker_RecordAndStats(t *testing.T) {
	tracker := NewTracker(100, 20)

	tracker.Record("Donald Trump", "claim one about jobs.", model.VerdictFalse, "static_reference")
	tracker.Record("Donald Trump", "claim two about the border.", model.VerdictMisleading, "static_reference")
	tracker.Record("Donald Trump", "claim three about trade.", model.VerdictTrue, "google_factcheck")

	stats, ok := tracker.Stats("Donald Trump")
	if !ok {
		t.Fatal("Expected stats for recorded speaker")
	}
	if stats.TotalClaims != 3 {
		t.Errorf("Expected 3 claims, got %d", stats.TotalClaims)
	}
	if stats.FalseOrMisleading() != 2 {
		t.Errorf("Expected 2 false-or-misleading, got %d", stats.FalseOrMisleading())
	}
}

func TestTracker_SpeakerNormalization(t *testing.T) {
	tracker := NewTracker(100, 20)

	tracker.Record("Donald Trump", "a claim about taxes.", model.VerdictTrue, "x")
	tracker.Record("  DONALD TRUMP ", "another claim about taxes.", model.VerdictTrue, "x")

	stats, ok := tracker.Stats("donald trump")
	if !ok {
		t.Fatal("Expected case-insensitive speaker lookup")
	}
	if stats.TotalClaims != 2 {
		t.Errorf("Expected casing variants merged, got %d claims", stats.TotalClaims)
	}
}

func TestTracker_UnknownSpeaker(t *testing.T) {
	tracker := NewTracker(100, 20)

	if _, ok := tracker.Stats("Never Seen"); ok {
		t.Error("Expected no stats for unseen speaker")
	}
}

func TestTracker_PriorChecks(t *testing.T) {
	tracker := NewTracker(100, 20)

	claim := "The unemployment rate is 4.1 percent."
	tracker.Record("Speaker", claim, model.VerdictTrue, "static_reference")

	// Normalization: whitespace, case, and trailing punctuation collapse
	prior := tracker.PriorChecks("Speaker", "  the Unemployment rate IS 4.1 percent ")
	if len(prior) != 1 {
		t.Fatalf("Expected 1 prior check via normalized hash, got %d", len(prior))
	}
	if prior[0].Verdict != model.VerdictTrue {
		t.Errorf("Expected recorded verdict, got %s", prior[0].Verdict)
	}

	if prior := tracker.PriorChecks("Speaker", "A completely different claim."); len(prior) != 0 {
		t.Errorf("Expected no priors for a different claim, got %d", len(prior))
	}
}

func TestTracker_ChecksPerClaimBounded(t *testing.T) {
	tracker := NewTracker(100, 3)

	claim := "The same claim repeated."
	for i := 0; i < 10; i++ {
		tracker.Record("Speaker", claim, model.VerdictFalse, "x")
	}

	if prior := tracker.PriorChecks("Speaker", claim); len(prior) != 3 {
		t.Errorf("Expected per-claim checks capped at 3, got %d", len(prior))
	}

	// Counts keep accumulating past the cap
	stats, _ := tracker.Stats("Speaker")
	if stats.TotalClaims != 10 {
		t.Errorf("Expected all 10 recordings counted, got %d", stats.TotalClaims)
	}
}

func TestTracker_Eviction(t *testing.T) {
	tracker := NewTracker(3, 20)

	for i := 0; i < 5; i++ {
		tracker.Record(fmt.Sprintf("Speaker %d", i), "some claim text here.", model.VerdictTrue, "x")
	}

	if _, ok := tracker.Stats("Speaker 0"); ok {
		t.Error("Expected oldest speaker evicted")
	}
	if _, ok := tracker.Stats("Speaker 4"); !ok {
		t.Error("Expected newest speaker retained")
	}
}

func TestTracker_PatternNote(t *testing.T) {
	tracker := NewTracker(100, 20)

	if note := tracker.PatternNote("Fresh Speaker"); note != "" {
		t.Errorf("Expected no note for unseen speaker, got %q", note)
	}

	tracker.Record("Liar", "claim a about jobs.", model.VerdictFalse, "x")
	if note := tracker.PatternNote("Liar"); note != "" {
		t.Errorf("Expected no note below 2 negatives, got %q", note)
	}

	tracker.Record("Liar", "claim b about trade.", model.VerdictFalse, "x")
	note := tracker.PatternNote("Liar")
	if !strings.Contains(note, "2 prior false or misleading") {
		t.Errorf("Expected pattern note after 2 negatives, got %q", note)
	}
}

func TestTracker_PatternNote_AccuracyRate(t *testing.T) {
	tracker := NewTracker(100, 20)

	for i := 0; i < 5; i++ {
		tracker.Record("Honest", fmt.Sprintf("distinct accurate claim %d.", i), model.VerdictTrue, "x")
	}

	note := tracker.PatternNote("Honest")
	if !strings.Contains(note, "accuracy rate of 100%") {
		t.Errorf("Expected accuracy-rate note over 5 claims, got %q", note)
	}
}

func TestTracker_NoNoteForUnknown(t *testing.T) {
	tracker := NewTracker(100, 20)

	tracker.Record(model.UnknownSpeaker, "claim a about jobs.", model.VerdictFalse, "x")
	tracker.Record(model.UnknownSpeaker, "claim b about trade.", model.VerdictFalse, "x")

	if note := tracker.PatternNote(model.UnknownSpeaker); note != "" {
		t.Errorf("Expected no pattern note for the Unknown bucket, got %q", note)
	}
}

func TestTracker_VagueCount(t *testing.T) {
	tracker := NewTracker(100, 20)

	tracker.Record("Speaker", "we will win like never before.", model.VerdictEmptyRhetoric, "rhetoric_detector")
	tracker.Record("Speaker", "you'll see very soon.", model.VerdictUnsubstantiatedPredict, "rhetoric_detector")
	tracker.Record("Speaker", "the rate is 4.1 percent.", model.VerdictTrue, "static_reference")

	stats, _ := tracker.Stats("Speaker")
	if stats.VagueCount != 2 {
		t.Errorf("Expected vague count 2, got %d", stats.VagueCount)
	}
}

func TestClaimHash(t *testing.T) {
	a := ClaimHash("The economy grew 3 percent.")
	b := ClaimHash("  the ECONOMY grew 3 percent ")
	if a != b {
		t.Error("Expected normalized variants to hash identically")
	}

	c := ClaimHash("The economy shrank 3 percent.")
	if a == c {
		t.Error("Expected different claims to hash differently")
	}
}

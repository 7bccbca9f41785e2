package jobs

import (
	"sync"
	"testing"
	"time"

	"github.com/veridict/veridict/internal/model"
)

func TestStore_CreateAndGet(t *testing.T) {
	store := NewStore(time.Hour)
	store.Create("job-1")

	job, found := store.Get("job-1")
	if !found {
		t.Fatal("Expected job after Create")
	}
	if job.Status != model.StatusCreated {
		t.Errorf("Expected created status, got %s", job.Status)
	}
	if job.Progress != 0 {
		t.Errorf("Expected zero progress, got %d", job.Progress)
	}
}

func TestStore_UpdateUnknownJobDropped(t *testing.T) {
	store := NewStore(time.Hour)

	store.Update("ghost", model.JobUpdate{Status: model.StatusChecking, Progress: 50})
	if _, found := store.Get("ghost"); found {
		t.Error("Expected update to an unknown job to be dropped")
	}
}

func TestStore_ProgressNeverDecreases(t *testing.T) {
	store := NewStore(time.Hour)
	store.Create("job-1")

	store.Update("job-1", model.JobUpdate{Status: model.StatusChecking, Progress: 60})
	store.Update("job-1", model.JobUpdate{Status: model.StatusChecking, Progress: 40})

	job, _ := store.Get("job-1")
	if job.Progress != 60 {
		t.Errorf("Expected progress to stay at 60, got %d", job.Progress)
	}
}

func TestStore_TerminalImmutable(t *testing.T) {
	store := NewStore(time.Hour)
	store.Create("job-1")

	report := &model.Report{Source: "test"}
	store.Update("job-1", model.JobUpdate{Status: model.StatusComplete, Progress: 100, Result: report})
	store.Update("job-1", model.JobUpdate{Status: model.StatusChecking, Progress: 40})

	job, _ := store.Get("job-1")
	if job.Status != model.StatusComplete {
		t.Errorf("Expected terminal status preserved, got %s", job.Status)
	}
	if job.Result == nil || job.Result.Source != "test" {
		t.Error("Expected result preserved")
	}
}

func TestStore_ErrorIsTerminal(t *testing.T) {
	store := NewStore(time.Hour)
	store.Create("job-1")

	store.Update("job-1", model.JobUpdate{Status: model.StatusError, Error: "pipeline panic"})
	store.Update("job-1", model.JobUpdate{Status: model.StatusComplete, Progress: 100})

	job, _ := store.Get("job-1")
	if job.Status != model.StatusError {
		t.Errorf("Expected error status preserved, got %s", job.Status)
	}
	if job.Error != "pipeline panic" {
		t.Errorf("Expected error message preserved, got %q", job.Error)
	}
}

func TestStore_ConcurrentUpdates(t *testing.T) {
	store := NewStore(time.Hour)
	store.Create("job-1")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			store.Update("job-1", model.JobUpdate{Status: model.StatusChecking, Progress: p})
		}(i)
		wg.Add(1)
		go func() {
			defer wg.Done()
			// A reader never sees a partially applied update
			if job, found := store.Get("job-1"); found && job.ID != "job-1" {
				t.Error("Expected consistent snapshot")
			}
		}()
	}
	wg.Wait()

	job, _ := store.Get("job-1")
	if job.Progress != 49 {
		t.Errorf("Expected max progress 49, got %d", job.Progress)
	}
}

// Package jobs provides the in-memory job/progress store. The pipeline
// only ever writes into it; status-polling callers read from it.
package jobs

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/veridict/veridict/internal/model"
)

// Job is a point-in-time snapshot of one transcript job.
type Job struct {
	ID        string           `json:"id"`
	Status    model.JobStatus  `json:"status"`
	Progress  int              `json:"progress"`
	Message   string           `json:"message,omitempty"`
	Result    *model.Report    `json:"result,omitempty"`
	Error     string           `json:"error,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// Store holds job state with a TTL so finished jobs age out. All updates
// go through one mutex: a reader never observes a partially written
// update, and terminal jobs are immutable.
type Store struct {
	mu   sync.Mutex
	jobs *gocache.Cache
}

// NewStore creates a job store. Jobs expire ttl after their last update.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Store{
		jobs: gocache.New(ttl, 10*time.Minute),
	}
}

// Create registers a new job in the created state.
func (s *Store) Create(jobID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.jobs.SetDefault(jobID, Job{
		ID:        jobID,
		Status:    model.StatusCreated,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

// Update applies one update to a job. Updates to unknown or terminal jobs
// are dropped; progress never moves backwards.
func (s *Store) Update(jobID string, update model.JobUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, found := s.jobs.Get(jobID)
	if !found {
		return
	}
	job := raw.(Job)
	if job.Status.Terminal() {
		return
	}

	if update.Status != "" {
		job.Status = update.Status
	}
	if update.Progress > job.Progress {
		job.Progress = update.Progress
	}
	if update.Message != "" {
		job.Message = update.Message
	}
	if update.Result != nil {
		job.Result = update.Result
	}
	if update.Error != "" {
		job.Error = update.Error
	}
	job.UpdatedAt = time.Now()

	s.jobs.SetDefault(jobID, job)
}

// Get returns a snapshot of a job.
func (s *Store) Get(jobID string) (Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, found := s.jobs.Get(jobID)
	if !found {
		return Job{}, false
	}
	return raw.(Job), true
}

package qmeasure

import (
	"time"

	"github.com/google/uuid"
)

// Job is a circuit waiting for a pool worker.
type Job struct {
	ID        string
	Circuit   Circuit
	StartTime time.Time

	outcome chan Outcome
}

// JobOption is a function type for configuring jobs
type JobOption func(*Job)

// WithJobID replaces the generated job ID.
func WithJobID(id string) JobOption {
	return func(j *Job) {
		j.ID = id
	}
}

// Outcome is what a pool reports for a finished job.
type Outcome struct {
	JobID    string
	Results  Results
	Err      error
	Duration time.Duration
}

func newJob(circuit Circuit, opts ...JobOption) Job {
	job := Job{
		ID:        uuid.NewString(),
		Circuit:   circuit,
		StartTime: time.Now(),
		outcome:   make(chan Outcome, 1),
	}

	for _, opt := range opts {
		opt(&job)
	}

	return job
}

func (j Job) finish(results Results, err error) {
	j.outcome <- Outcome{
		JobID:    j.ID,
		Results:  results,
		Err:      err,
		Duration: time.Since(j.StartTime),
	}
	close(j.outcome)
}

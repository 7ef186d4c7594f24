package qmeasure

import (
	"context"

	"github.com/theapemachine/errnie"
)

// Worker executes jobs on a device nobody else touches.
type Worker struct {
	id     int
	pool   *Pool
	device *Device
}

func (w *Worker) run(ctx context.Context) {
	w.pool.metrics.addWorkers(1)
	defer w.pool.metrics.addWorkers(-1)

	for {
		select {
		case <-ctx.Done():
			return
		case job := <-w.pool.jobs:
			w.pool.metrics.addQueued(-1)
			w.processJob(job)
		}
	}
}

/*
processJob runs one circuit and resets the device afterwards, whatever the
outcome, so the next job starts from a clean measurement state.
*/
func (w *Worker) processJob(job Job) {
	results, err := w.device.Execute(job.Circuit)
	w.device.Reset()

	if err != nil {
		errnie.Info("worker %d - job %s failed: %v", w.id, job.ID, err)
	}

	job.finish(results, err)
}

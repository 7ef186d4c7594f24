package qmeasure

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/theapemachine/errnie"
)

// ErrPoolClosed is reported for jobs submitted to, or stranded in, a closed pool.
var ErrPoolClosed = errors.New("qmeasure: pool closed")

// DeviceFactory builds the private device of one pool worker.
type DeviceFactory func() (*Device, error)

/*
Pool executes circuits in parallel. Devices are not safe for concurrent use,
so every worker owns a device of its own built by the factory; a job is run
by exactly one worker and its result is delivered on the channel Submit
returned.
*/
type Pool struct {
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.RWMutex
	closed  bool
	jobs    chan Job
	workers []*Worker
	metrics *Metrics

	regulators []Regulator
}

// NewPool starts size workers with their own devices.
func NewPool(
	ctx context.Context, size int, factory DeviceFactory, metrics *Metrics, opts ...PoolOption,
) (*Pool, error) {
	if size < 1 {
		return nil, fmt.Errorf("pool needs at least one worker, got %d", size)
	}

	if factory == nil {
		return nil, fmt.Errorf("pool needs a device factory")
	}

	ctx, cancel := context.WithCancel(ctx)
	p := &Pool{
		ctx:     ctx,
		cancel:  cancel,
		jobs:    make(chan Job, size*10),
		workers: make([]*Worker, 0, size),
		metrics: metrics,
	}

	for _, opt := range opts {
		opt(p)
	}

	for i := 0; i < size; i++ {
		device, err := factory()
		if err != nil {
			cancel()
			p.wg.Wait()
			return nil, fmt.Errorf("device for worker %d: %w", i, err)
		}

		p.startWorker(i, device)
	}

	errnie.Info("NewPool - started %d workers", size)
	return p, nil
}

func (p *Pool) startWorker(id int, device *Device) {
	worker := &Worker{
		id:     id,
		pool:   p,
		device: device,
	}
	p.workers = append(p.workers, worker)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		worker.run(p.ctx)
	}()
}

/*
Submit queues circuit and returns a channel that yields exactly one Outcome.
It blocks while the queue is full and fails fast once the pool is closed or
a regulator refuses the job.
*/
func (p *Pool) Submit(circuit Circuit, opts ...JobOption) <-chan Outcome {
	job := newJob(circuit, opts...)

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		job.finish(Results{}, ErrPoolClosed)
		return job.outcome
	}

	if !p.admit() {
		job.finish(Results{}, ErrThrottled)
		return job.outcome
	}

	select {
	case p.jobs <- job:
		p.metrics.addQueued(1)
	case <-p.ctx.Done():
		job.finish(Results{}, fmt.Errorf("%w: %v", ErrPoolClosed, p.ctx.Err()))
	}

	return job.outcome
}

// Run submits every circuit and waits for all outcomes, in input order.
func (p *Pool) Run(ctx context.Context, circuits []Circuit) ([]Outcome, error) {
	pending := make([]<-chan Outcome, len(circuits))
	for i, circuit := range circuits {
		pending[i] = p.Submit(circuit)
	}

	outcomes := make([]Outcome, len(circuits))
	for i, ch := range pending {
		select {
		case outcome := <-ch:
			outcomes[i] = outcome
		case <-ctx.Done():
			return outcomes[:i], ctx.Err()
		}
	}

	return outcomes, nil
}

func (p *Pool) Size() int {
	return len(p.workers)
}

// Close stops the workers and fails every job still waiting in the queue.
func (p *Pool) Close() {
	if p == nil {
		return
	}

	p.cancel()

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()

	p.wg.Wait()

	for {
		select {
		case job := <-p.jobs:
			p.metrics.addQueued(-1)
			job.finish(Results{}, ErrPoolClosed)
		default:
			errnie.Info("Pool closed")
			return
		}
	}
}

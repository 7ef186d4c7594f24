package qmeasure

import "errors"

// ErrThrottled is reported for jobs a regulator refused to admit.
var ErrThrottled = errors.New("qmeasure: job throttled")

/*
Regulator decides whether a pool admits the next job. Limit is called once
per Submit; returning true rejects the job with ErrThrottled instead of
queueing it, which keeps a flood of circuits from growing the queue without
bound.
*/
type Regulator interface {
	Limit() bool
}

// PoolOption is a function type for configuring pools.
type PoolOption func(*Pool)

// WithRegulator adds a regulator every submission must pass.
func WithRegulator(regulator Regulator) PoolOption {
	return func(p *Pool) {
		p.regulators = append(p.regulators, regulator)
	}
}

func (p *Pool) admit() bool {
	for _, regulator := range p.regulators {
		if regulator.Limit() {
			p.metrics.recordThrottled()
			return false
		}
	}
	return true
}

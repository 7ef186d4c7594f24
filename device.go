package qmeasure

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/theapemachine/errnie"
)

/*
Device turns the state a Backend produces into the statistics a circuit asks
for. Each Execute runs validate, rotate, apply, sample and statistics in that
order on a fresh Execution and stops at the first failure.

A Device and its random source belong to one caller at a time. Run circuits
in parallel on independent devices, for instance through a Pool.
*/
type Device struct {
	backend Backend
	config  Config
	source  rand.Source
	metrics *Metrics
	last    *Execution
}

// DeviceOption is a function type for configuring devices.
type DeviceOption func(*Device)

// WithShots overrides the number of samples drawn per execution.
func WithShots(shots int) DeviceOption {
	return func(dev *Device) {
		dev.config.Shots = shots
	}
}

// WithAnalytic switches between exact statistics and sampled estimates.
func WithAnalytic(analytic bool) DeviceOption {
	return func(dev *Device) {
		dev.config.Analytic = analytic
	}
}

// WithSource injects the generator used for sampling.
func WithSource(src rand.Source) DeviceOption {
	return func(dev *Device) {
		dev.source = src
	}
}

// WithSeed seeds a private PCG generator for reproducible samples.
func WithSeed(seed uint64) DeviceOption {
	return func(dev *Device) {
		dev.config.Seed = seed
		dev.source = newSource(seed)
	}
}

// WithMetrics records executions, samples and statistics on metrics.
func WithMetrics(metrics *Metrics) DeviceOption {
	return func(dev *Device) {
		dev.metrics = metrics
	}
}

// NewDevice measures backend with config, or NewConfig defaults when nil.
func NewDevice(backend Backend, config *Config, opts ...DeviceOption) (*Device, error) {
	if backend == nil {
		return nil, fmt.Errorf("device needs a backend")
	}

	if config == nil {
		config = NewConfig()
	}

	dev := &Device{
		backend: backend,
		config:  *config,
	}

	for _, opt := range opts {
		opt(dev)
	}

	if err := dev.config.Validate(); err != nil {
		return nil, err
	}

	if dev.source == nil {
		dev.source = newSource(dev.config.Seed)
	}

	errnie.Info(
		"NewDevice - wires %d, shots %d, analytic %v",
		dev.config.Wires, dev.config.Shots, dev.config.Analytic,
	)

	return dev, nil
}

func newSource(seed uint64) rand.Source {
	if seed == 0 {
		return rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
}

// Config returns a copy of the configuration the device runs with.
func (dev *Device) Config() Config {
	return dev.config
}

// NewExecution starts a measurement context bound to this device.
func (dev *Device) NewExecution() *Execution {
	return &Execution{
		backend:  dev.backend,
		numWires: dev.config.Wires,
		shots:    dev.config.Shots,
		analytic: dev.config.Analytic,
		source:   dev.source,
		metrics:  dev.metrics,
		memory:   !dev.config.Analytic,
	}
}

/*
Execute runs circuit and returns one entry per observable with a return type.
Validation happens before anything is mutated; later failures leave the
device's last execution half finished, and the device must be Reset before it
is used again.
*/
func (dev *Device) Execute(circuit Circuit) (results Results, err error) {
	startTime := time.Now()

	defer func() {
		dev.metrics.recordExecution(startTime, err)
		if err != nil {
			errnie.Info("Execute - failed: %v", err)
		}
	}()

	if err = dev.CheckValidity(circuit); err != nil {
		return Results{}, err
	}

	exec := dev.NewExecution()
	dev.last = exec

	rotations := exec.RotateBasis(circuit.Observables)

	if err = dev.backend.Apply(circuit.Operations, rotations); err != nil {
		return Results{}, fmt.Errorf("apply: %w", err)
	}

	if err = exec.GenerateSamples(); err != nil {
		return Results{}, fmt.Errorf("generate samples: %w", err)
	}

	values, err := exec.Statistics(circuit.Observables)
	if err != nil {
		return Results{}, err
	}

	return NewResults(values, circuit.Observables), nil
}

/*
CheckValidity rejects operations and observables the backend does not
declare, and any wire outside the device. Backends that do not implement
CapabilityDeclarer accept every name.
*/
func (dev *Device) CheckValidity(circuit Circuit) error {
	declarer, restricted := dev.backend.(CapabilityDeclarer)

	var caps Capabilities
	if restricted {
		caps = declarer.Capabilities()
	}

	for _, op := range circuit.Operations {
		if restricted && !caps.SupportsOperation(op.Name) {
			return observableErrorf(op.Name, ErrUnsupportedOperation, "")
		}

		if err := dev.checkWires(op.Wires); err != nil {
			return observableErrorf(op.Name, err, "")
		}
	}

	for _, obs := range circuit.Observables {
		if restricted {
			for _, name := range obs.Components() {
				if !caps.SupportsObservable(name) {
					return observableErrorf(obs.Name, ErrUnsupportedObservable, "component %s", name)
				}
			}
		}

		if err := obs.checkShape(); err != nil {
			return err
		}

		if _, err := sortedWires(obs.Wires, dev.config.Wires); err != nil {
			return observableErrorf(obs.Name, err, "")
		}
	}

	return nil
}

func (dev *Device) checkWires(wires []int) error {
	for _, wire := range wires {
		if wire < 0 || wire >= dev.config.Wires {
			return fmt.Errorf("%w: wire %d outside [0, %d)", ErrShapeMismatch, wire, dev.config.Wires)
		}
	}
	return nil
}

// Samples returns the samples of the last execution, nil if none were drawn.
func (dev *Device) Samples() [][]int {
	if dev.last == nil {
		return nil
	}
	return dev.last.Samples()
}

func (dev *Device) WiresUsed() []int {
	if dev.last == nil {
		return nil
	}
	return dev.last.WiresUsed()
}

// Reset drops the last measurement context and resets the backend if it can.
func (dev *Device) Reset() {
	dev.last = nil

	if resetter, ok := dev.backend.(Resetter); ok {
		resetter.Reset()
	}
}

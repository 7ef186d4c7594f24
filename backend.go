package qmeasure

import "slices"

/*
Backend is the state-evolution engine a Device measures. Apply runs the
circuit operations followed by the diagonalizing rotations; Probability
returns basis-state probabilities of the resulting state over wires (all
wires when wires is nil), ordered as MarginalProb orders them.
*/
type Backend interface {
	Apply(operations, rotations []Operation) error
	Probability(wires []int) ([]float64, error)
}

// CapabilityDeclarer is implemented by backends that restrict what they run.
type CapabilityDeclarer interface {
	Capabilities() Capabilities
}

// Resetter is implemented by backends holding state between executions.
type Resetter interface {
	Reset()
}

// Capabilities lists the operation and observable names a backend supports.
type Capabilities struct {
	Operations  []string
	Observables []string
}

func (c Capabilities) SupportsOperation(name string) bool {
	return slices.Contains(c.Operations, name)
}

func (c Capabilities) SupportsObservable(name string) bool {
	return slices.Contains(c.Observables, name)
}

// Circuit is what a Device executes: operations, then measured observables.
type Circuit struct {
	Operations  []Operation
	Observables []Observable
}

package qmeasure

import "math/rand/v2"

/*
Execution is the measurement context of a single circuit run. It carries the
wires referenced by the observables, whether samples must be kept, and the
sample matrix once drawn. A Device creates a fresh Execution for every call to
Execute, so nothing leaks from one run into the next.

An Execution is not safe for concurrent use.
*/
type Execution struct {
	backend  Backend
	numWires int
	shots    int
	analytic bool
	source   rand.Source
	metrics  *Metrics

	wiresUsed []int
	memory    bool
	samples   [][]int
}

// WiresUsed returns the sorted wires the rotated observables act on.
func (exec *Execution) WiresUsed() []int {
	return append([]int(nil), exec.wiresUsed...)
}

// Memory reports whether the execution keeps computational basis samples.
func (exec *Execution) Memory() bool {
	return exec.memory
}

/*
Samples returns the shots x len(WiresUsed) matrix of 0/1 outcomes, column j
belonging to the j-th used wire, or nil when no samples were drawn.
*/
func (exec *Execution) Samples() [][]int {
	if exec.samples == nil {
		return nil
	}

	out := make([][]int, len(exec.samples))
	for i, row := range exec.samples {
		out[i] = append([]int(nil), row...)
	}
	return out
}

func (exec *Execution) Analytic() bool {
	return exec.analytic
}

func (exec *Execution) Shots() int {
	return exec.shots
}

package qmeasure

import "math/rand/v2"

// fixedBackend serves a constant joint distribution and records what it applied.
type fixedBackend struct {
	numWires   int
	prob       []float64
	operations [][]Operation
	rotations  [][]Operation
	applyErr   error
	resets     int
}

func newFixedBackend(numWires int, prob []float64) *fixedBackend {
	return &fixedBackend{numWires: numWires, prob: prob}
}

func (b *fixedBackend) Apply(operations, rotations []Operation) error {
	b.operations = append(b.operations, operations)
	b.rotations = append(b.rotations, rotations)
	return b.applyErr
}

func (b *fixedBackend) Probability(wires []int) ([]float64, error) {
	return MarginalProb(b.prob, b.numWires, wires)
}

func (b *fixedBackend) Reset() {
	b.resets++
}

// declaringBackend restricts a fixedBackend to a capability set.
type declaringBackend struct {
	*fixedBackend
	caps Capabilities
}

func (b declaringBackend) Capabilities() Capabilities {
	return b.caps
}

func uniform(numWires int) []float64 {
	prob := make([]float64, 1<<numWires)
	for i := range prob {
		prob[i] = 1 / float64(len(prob))
	}
	return prob
}

func seeded(seed uint64) rand.Source {
	return rand.NewPCG(seed, seed+1)
}

func newTestExecution(backend Backend, numWires, shots int, analytic bool) *Execution {
	return &Execution{
		backend:  backend,
		numWires: numWires,
		shots:    shots,
		analytic: analytic,
		source:   seeded(42),
		memory:   !analytic,
	}
}

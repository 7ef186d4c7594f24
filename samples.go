package qmeasure

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// probTolerance bounds how far a probability vector may sum away from one.
const probTolerance = 1e-7

/*
GenerateSamples draws the execution's computational basis samples. It is a
no-op unless samples were requested or the device runs with finite shots.
The probabilities are taken over the used wires only, after the observables
were rotated, so column j of the result is the j-th used wire.
*/
func (exec *Execution) GenerateSamples() error {
	if !exec.memory {
		return nil
	}

	n := len(exec.wiresUsed)
	prob := []float64{1}

	if n > 0 {
		var err error
		if prob, err = exec.backend.Probability(exec.WiresUsed()); err != nil {
			return fmt.Errorf("probability over wires %v: %w", exec.wiresUsed, err)
		}
	}

	states, err := SampleBasisStates(1<<n, exec.shots, prob, exec.source)
	if err != nil {
		return err
	}

	exec.samples = StatesToBinary(states, n)
	exec.metrics.recordSamples(len(states))
	return nil
}

/*
SampleBasisStates draws shots basis-state indices in [0, numStates) with
replacement, weighted by prob. The draw is fully determined by the state of
src. A nil src falls back to the process-wide generator of math/rand/v2,
which callers must not share between concurrently sampling devices if they
need reproducible output.
*/
func SampleBasisStates(numStates, shots int, prob []float64, src rand.Source) ([]int, error) {
	if len(prob) != numStates {
		return nil, fmt.Errorf(
			"%w: %d probabilities for %d basis states", ErrShapeMismatch, len(prob), numStates,
		)
	}

	if shots < 0 {
		return nil, fmt.Errorf("%w: negative shot count %d", ErrShapeMismatch, shots)
	}

	if err := checkProbability(prob); err != nil {
		return nil, err
	}

	categorical := distuv.NewCategorical(prob, src)
	states := make([]int, shots)

	for i := range states {
		states[i] = int(categorical.Rand())
	}

	return states, nil
}

/*
StatesToBinary expands basis-state indices into rows of numWires bits, most
significant bit first, matching the eigenvalue ordering of observables.
*/
func StatesToBinary(states []int, numWires int) [][]int {
	out := make([][]int, len(states))

	for i, state := range states {
		row := make([]int, numWires)
		for j := range row {
			row[j] = (state >> (numWires - 1 - j)) & 1
		}
		out[i] = row
	}

	return out
}

// BinaryToState packs a big-endian bit row back into its basis-state index.
func BinaryToState(bits []int) int {
	state := 0
	for _, bit := range bits {
		state = state<<1 | bit&1
	}
	return state
}

func checkProbability(prob []float64) error {
	for i, p := range prob {
		if p < 0 || math.IsNaN(p) || math.IsInf(p, 0) {
			return fmt.Errorf("%w: entry %d is %v", ErrInvalidProbability, i, p)
		}
	}

	if sum := floats.Sum(prob); math.Abs(sum-1) > probTolerance {
		return fmt.Errorf("%w: sums to %v", ErrInvalidProbability, sum)
	}

	return nil
}

package qmeasure

import (
	"fmt"
	"slices"
)

/*
MarginalProb reduces a joint probability vector over numWires wires to the
marginal over wires, summing out every wire not listed. The vector is read as
a numWires-dimensional tensor of shape (2, ..., 2) with wire 0 on the most
significant axis.

A nil wires slice is the identity. Otherwise the result has 2^len(wires)
entries ordered by the retained wires in ascending order, whatever order they
were requested in; callers that need a different order must reorder the
result themselves.
*/
func MarginalProb(prob []float64, numWires int, wires []int) ([]float64, error) {
	if numWires < 0 || len(prob) != 1<<numWires {
		return nil, fmt.Errorf(
			"%w: probability vector of length %d does not cover %d wires", ErrShapeMismatch, len(prob), numWires,
		)
	}

	if wires == nil {
		return append([]float64(nil), prob...), nil
	}

	keep, err := sortedWires(wires, numWires)
	if err != nil {
		return nil, err
	}

	shifts := make([]int, len(keep))
	for i, wire := range keep {
		shifts[i] = numWires - 1 - wire
	}

	out := make([]float64, 1<<len(keep))
	for idx, p := range prob {
		target := 0
		for _, shift := range shifts {
			target = target<<1 | (idx>>shift)&1
		}
		out[target] += p
	}

	return out, nil
}

// sortedWires validates wires against the device size and returns them sorted.
func sortedWires(wires []int, numWires int) ([]int, error) {
	seen := make(map[int]bool, len(wires))

	for _, wire := range wires {
		if wire < 0 || wire >= numWires {
			return nil, fmt.Errorf("%w: wire %d outside [0, %d)", ErrShapeMismatch, wire, numWires)
		}
		if seen[wire] {
			return nil, fmt.Errorf("%w: wire %d requested twice", ErrShapeMismatch, wire)
		}
		seen[wire] = true
	}

	out := append([]int(nil), wires...)
	slices.Sort(out)
	return out, nil
}

/*
reorderWires permutes a vector indexed big-endian over the wires in from into
the same distribution indexed over the wires in to. Both must list the same
wires.
*/
func reorderWires(prob []float64, from, to []int) ([]float64, error) {
	if slices.Equal(from, to) {
		return prob, nil
	}

	if len(from) != len(to) || len(prob) != 1<<len(from) {
		return nil, fmt.Errorf("%w: cannot reorder %v into %v", ErrShapeMismatch, from, to)
	}

	position := make(map[int]int, len(from))
	for i, wire := range from {
		position[wire] = i
	}

	n := len(to)
	shifts := make([]int, n)
	for i, wire := range to {
		pos, ok := position[wire]
		if !ok {
			return nil, fmt.Errorf("%w: wire %d missing from %v", ErrShapeMismatch, wire, from)
		}
		shifts[i] = n - 1 - pos
	}

	out := make([]float64, len(prob))
	for idx := range out {
		source := 0
		for i, shift := range shifts {
			bit := (idx >> (n - 1 - i)) & 1
			source |= bit << shift
		}
		out[idx] = prob[source]
	}

	return out, nil
}

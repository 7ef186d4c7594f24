/*
Package simulator is a dense statevector backend for qmeasure devices. It
keeps all 2^n amplitudes in memory, applies gates as small unitaries over
their wires and reports basis-state probabilities with wire 0 as the most
significant bit.
*/
package simulator

import (
	"fmt"
	"math/cmplx"
	"slices"

	"github.com/theapemachine/qmeasure"
)

// StateVector simulates a register of qubits. It is not safe for concurrent use.
type StateVector struct {
	wires int
	amps  []complex128
}

func New(wires int) (*StateVector, error) {
	if wires < 1 || wires > 30 {
		return nil, fmt.Errorf("simulator supports 1 to 30 wires, got %d", wires)
	}

	sv := &StateVector{wires: wires}
	sv.Reset()
	return sv, nil
}

// Reset returns the register to |0...0>.
func (sv *StateVector) Reset() {
	sv.amps = make([]complex128, 1<<sv.wires)
	sv.amps[0] = 1
}

func (sv *StateVector) Wires() int {
	return sv.wires
}

func (sv *StateVector) Amplitudes() []complex128 {
	return append([]complex128(nil), sv.amps...)
}

func (sv *StateVector) Capabilities() qmeasure.Capabilities {
	return qmeasure.Capabilities{
		Operations: supportedOperations(),
		Observables: []string{
			qmeasure.GatePauliX,
			qmeasure.GatePauliY,
			qmeasure.GatePauliZ,
			qmeasure.GateHadamard,
			qmeasure.GateIdentity,
			qmeasure.ObservableHermitian,
		},
	}
}

/*
Apply prepares |0...0>, runs operations and then the diagonalizing rotations.
BasisState is only accepted as the first operation.
*/
func (sv *StateVector) Apply(operations, rotations []qmeasure.Operation) error {
	sv.Reset()

	for i, op := range slices.Concat(operations, rotations) {
		if op.Name == qmeasure.GateBasisState {
			if i != 0 {
				return fmt.Errorf("%s must be the first operation", op.Name)
			}
			if err := sv.prepareBasisState(op); err != nil {
				return err
			}
			continue
		}

		matrix, err := matrixOf(op)
		if err != nil {
			return err
		}

		if err := sv.applyMatrix(matrix, op.Wires); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	return nil
}

// Probability returns |amplitude|^2, marginalized onto wires when given.
func (sv *StateVector) Probability(wires []int) ([]float64, error) {
	prob := make([]float64, len(sv.amps))
	for i, amp := range sv.amps {
		a := cmplx.Abs(amp)
		prob[i] = a * a
	}

	return qmeasure.MarginalProb(prob, sv.wires, wires)
}

func (sv *StateVector) prepareBasisState(op qmeasure.Operation) error {
	if len(op.Params) != len(op.Wires) {
		return fmt.Errorf("%s needs one bit per wire, got %d for %d wires", op.Name, len(op.Params), len(op.Wires))
	}

	if err := sv.checkWires(op.Wires); err != nil {
		return err
	}

	index := 0
	for i, wire := range op.Wires {
		switch op.Params[i] {
		case 0:
		case 1:
			index |= 1 << (sv.wires - 1 - wire)
		default:
			return fmt.Errorf("%s bits must be 0 or 1, got %v", op.Name, op.Params[i])
		}
	}

	clear(sv.amps)
	sv.amps[index] = 1
	return nil
}

/*
applyMatrix multiplies the amplitudes of every subspace spanned by wires with
a 2^k x 2^k matrix, wires[0] being the most significant local bit.
*/
func (sv *StateVector) applyMatrix(matrix []complex128, wires []int) error {
	if err := sv.checkWires(wires); err != nil {
		return err
	}

	k := len(wires)
	dim := 1 << k
	if len(matrix) != dim*dim {
		return fmt.Errorf("matrix has %d entries, want %d", len(matrix), dim*dim)
	}

	mask := 0
	shifts := make([]int, k)
	for i, wire := range wires {
		shifts[i] = sv.wires - 1 - wire
		mask |= 1 << shifts[i]
	}

	indices := make([]int, dim)
	local := make([]complex128, dim)

	for base := range sv.amps {
		if base&mask != 0 {
			continue
		}

		for j := range indices {
			idx := base
			for i, shift := range shifts {
				if (j>>(k-1-i))&1 == 1 {
					idx |= 1 << shift
				}
			}
			indices[j] = idx
			local[j] = sv.amps[idx]
		}

		for r, idx := range indices {
			var sum complex128
			for c := range local {
				sum += matrix[r*dim+c] * local[c]
			}
			sv.amps[idx] = sum
		}
	}

	return nil
}

func (sv *StateVector) checkWires(wires []int) error {
	seen := make(map[int]bool, len(wires))
	for _, wire := range wires {
		if wire < 0 || wire >= sv.wires {
			return fmt.Errorf("%w: wire %d outside [0, %d)", qmeasure.ErrShapeMismatch, wire, sv.wires)
		}
		if seen[wire] {
			return fmt.Errorf("%w: wire %d used twice", qmeasure.ErrShapeMismatch, wire)
		}
		seen[wire] = true
	}
	return nil
}

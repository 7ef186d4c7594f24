package qmeasure

import "fmt"

// Gate names understood by the bundled simulator and used for the
// diagonalizing rotations of the built-in observables.
const (
	GateIdentity     = "Identity"
	GateHadamard     = "Hadamard"
	GatePauliX       = "PauliX"
	GatePauliY       = "PauliY"
	GatePauliZ       = "PauliZ"
	GateS            = "S"
	GateT            = "T"
	GateRX           = "RX"
	GateRY           = "RY"
	GateRZ           = "RZ"
	GatePhaseShift   = "PhaseShift"
	GateCNOT         = "CNOT"
	GateCZ           = "CZ"
	GateSWAP         = "SWAP"
	GateBasisState   = "BasisState"
	GateQubitUnitary = "QubitUnitary"
)

// ObservableHermitian names observables built from an explicit matrix.
const ObservableHermitian = "Hermitian"

/*
Operation is a single gate application handed to a Backend. The measurement
engine never interprets it beyond validation; Matrix is only set for
QubitUnitary and holds a row-major 2^k x 2^k unitary over Wires.
*/
type Operation struct {
	Name   string
	Wires  []int
	Params []float64
	Matrix []complex128
}

func NewOperation(name string, wires []int, params ...float64) Operation {
	return Operation{
		Name:   name,
		Wires:  append([]int(nil), wires...),
		Params: params,
	}
}

// NewUnitary wraps an explicit unitary acting on wires.
func NewUnitary(matrix []complex128, wires ...int) (Operation, error) {
	dim := 1 << len(wires)
	if len(matrix) != dim*dim {
		return Operation{}, fmt.Errorf(
			"%w: unitary on %d wires needs %d entries, got %d",
			ErrShapeMismatch, len(wires), dim*dim, len(matrix),
		)
	}

	return Operation{
		Name:   GateQubitUnitary,
		Wires:  append([]int(nil), wires...),
		Matrix: append([]complex128(nil), matrix...),
	}, nil
}

func (op Operation) String() string {
	if len(op.Params) == 0 {
		return fmt.Sprintf("%s%v", op.Name, op.Wires)
	}

	return fmt.Sprintf("%s(%v)%v", op.Name, op.Params, op.Wires)
}

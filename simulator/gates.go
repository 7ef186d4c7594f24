package simulator

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/theapemachine/qmeasure"
)

var invSqrt2 = complex(1/math.Sqrt2, 0)

// fixedGates are the parameterless gates as row-major unitaries.
var fixedGates = map[string][]complex128{
	qmeasure.GateIdentity: {
		1, 0,
		0, 1,
	},
	qmeasure.GateHadamard: {
		invSqrt2, invSqrt2,
		invSqrt2, -invSqrt2,
	},
	qmeasure.GatePauliX: {
		0, 1,
		1, 0,
	},
	qmeasure.GatePauliY: {
		0, -1i,
		1i, 0,
	},
	qmeasure.GatePauliZ: {
		1, 0,
		0, -1,
	},
	qmeasure.GateS: {
		1, 0,
		0, 1i,
	},
	qmeasure.GateT: {
		1, 0,
		0, cmplx.Exp(complex(0, math.Pi/4)),
	},
	qmeasure.GateCNOT: {
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 0, 1,
		0, 0, 1, 0,
	},
	qmeasure.GateCZ: {
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, -1,
	},
	qmeasure.GateSWAP: {
		1, 0, 0, 0,
		0, 0, 1, 0,
		0, 1, 0, 0,
		0, 0, 0, 1,
	},
}

// arity is the number of wires each named gate acts on.
var arity = map[string]int{
	qmeasure.GateIdentity:   1,
	qmeasure.GateHadamard:   1,
	qmeasure.GatePauliX:     1,
	qmeasure.GatePauliY:     1,
	qmeasure.GatePauliZ:     1,
	qmeasure.GateS:          1,
	qmeasure.GateT:          1,
	qmeasure.GateRX:         1,
	qmeasure.GateRY:         1,
	qmeasure.GateRZ:         1,
	qmeasure.GatePhaseShift: 1,
	qmeasure.GateCNOT:       2,
	qmeasure.GateCZ:         2,
	qmeasure.GateSWAP:       2,
}

// matrixOf resolves op to the unitary the simulator applies.
func matrixOf(op qmeasure.Operation) ([]complex128, error) {
	if op.Name == qmeasure.GateQubitUnitary {
		return op.Matrix, nil
	}

	if want, ok := arity[op.Name]; ok && want != len(op.Wires) {
		return nil, fmt.Errorf("%s acts on %d wires, got %d", op.Name, want, len(op.Wires))
	}

	if m, ok := fixedGates[op.Name]; ok {
		return m, nil
	}

	if len(op.Params) != 1 {
		return nil, fmt.Errorf("%s takes one parameter, got %d", op.Name, len(op.Params))
	}

	theta := op.Params[0]
	c := complex(math.Cos(theta/2), 0)
	s := complex(math.Sin(theta/2), 0)

	switch op.Name {
	case qmeasure.GateRX:
		return []complex128{
			c, -1i * s,
			-1i * s, c,
		}, nil
	case qmeasure.GateRY:
		return []complex128{
			c, -s,
			s, c,
		}, nil
	case qmeasure.GateRZ:
		return []complex128{
			cmplx.Exp(complex(0, -theta/2)), 0,
			0, cmplx.Exp(complex(0, theta/2)),
		}, nil
	case qmeasure.GatePhaseShift:
		return []complex128{
			1, 0,
			0, cmplx.Exp(complex(0, theta)),
		}, nil
	}

	return nil, fmt.Errorf("unknown gate %s", op.Name)
}

func supportedOperations() []string {
	ops := make([]string, 0, len(arity)+2)
	for name := range arity {
		ops = append(ops, name)
	}
	return append(ops, qmeasure.GateBasisState, qmeasure.GateQubitUnitary)
}

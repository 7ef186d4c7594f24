package qmeasure

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

/*
Observable is a measurable quantity on one or more wires. Its eigenvalues are
ordered by the big-endian encoding of the local basis state over Wires, in the
order Wires lists them, and its diagonalizing gates rotate the eigenbasis onto
the computational basis so the engine can read statistics from basis-state
probabilities.
*/
type Observable struct {
	Name   string
	Wires  []int
	Return ReturnType

	components []string
	eigvals    []float64
	rotations  []Operation
}

// NewObservable builds an observable from an explicit spectrum and rotation list.
func NewObservable(name string, wires []int, eigvals []float64, rotations ...Operation) (Observable, error) {
	obs := Observable{
		Name:       name,
		Wires:      append([]int(nil), wires...),
		components: []string{name},
		eigvals:    append([]float64(nil), eigvals...),
		rotations:  append([]Operation(nil), rotations...),
	}

	if err := obs.checkShape(); err != nil {
		return Observable{}, err
	}

	return obs, nil
}

// PauliX measures X on wire, rotated with a Hadamard.
func PauliX(wire int) Observable {
	return singleWire(GatePauliX, wire, []float64{1, -1},
		NewOperation(GateHadamard, []int{wire}),
	)
}

// PauliY measures Y on wire, rotated with Z, S and Hadamard.
func PauliY(wire int) Observable {
	return singleWire(GatePauliY, wire, []float64{1, -1},
		NewOperation(GatePauliZ, []int{wire}),
		NewOperation(GateS, []int{wire}),
		NewOperation(GateHadamard, []int{wire}),
	)
}

// PauliZ measures in the computational basis and needs no rotation.
func PauliZ(wire int) Observable {
	return singleWire(GatePauliZ, wire, []float64{1, -1})
}

// Hadamard measures the Hadamard observable, rotated with RY(-pi/4).
func Hadamard(wire int) Observable {
	return singleWire(GateHadamard, wire, []float64{1, -1},
		NewOperation(GateRY, []int{wire}, -math.Pi/4),
	)
}

// Identity has the spectrum [1, 1]; Probs builds on it.
func Identity(wire int) Observable {
	return singleWire(GateIdentity, wire, []float64{1, 1})
}

func singleWire(name string, wire int, eigvals []float64, rotations ...Operation) Observable {
	return Observable{
		Name:       name,
		Wires:      []int{wire},
		components: []string{name},
		eigvals:    eigvals,
		rotations:  rotations,
	}
}

/*
Hermitian builds an observable from a real symmetric matrix over wires. The
matrix is eigendecomposed once; the eigenvalues come back in ascending order
and the diagonalizing rotation is the transpose of the eigenvector matrix, so
basis state k after rotation corresponds to eigenvalue k.
*/
func Hermitian(a *mat.SymDense, wires ...int) (Observable, error) {
	if a == nil || len(wires) == 0 {
		return Observable{}, fmt.Errorf("%w: hermitian needs a matrix and at least one wire", ErrShapeMismatch)
	}

	dim, _ := a.Dims()
	if dim != 1<<len(wires) {
		return Observable{}, fmt.Errorf(
			"%w: hermitian of dimension %d cannot act on %d wires", ErrShapeMismatch, dim, len(wires),
		)
	}

	var es mat.EigenSym
	if ok := es.Factorize(a, true); !ok {
		return Observable{}, fmt.Errorf("%w: eigendecomposition did not converge", ErrShapeMismatch)
	}

	var vectors mat.Dense
	es.VectorsTo(&vectors)

	rotation := make([]complex128, dim*dim)
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			rotation[i*dim+j] = complex(vectors.At(j, i), 0)
		}
	}

	unitary, err := NewUnitary(rotation, wires...)
	if err != nil {
		return Observable{}, err
	}

	return Observable{
		Name:       ObservableHermitian,
		Wires:      append([]int(nil), wires...),
		components: []string{ObservableHermitian},
		eigvals:    es.Values(nil),
		rotations:  []Operation{unitary},
	}, nil
}

/*
Tensor multiplies observables acting on disjoint wires. Wires are concatenated
in argument order, the spectrum is the Kronecker product of the factors and the
rotations are applied factor by factor.
*/
func Tensor(factors ...Observable) (Observable, error) {
	if len(factors) == 0 {
		return Observable{}, fmt.Errorf("%w: empty tensor product", ErrShapeMismatch)
	}

	seen := make(map[int]bool)
	out := Observable{eigvals: []float64{1}}
	names := make([]string, 0, len(factors))

	for _, factor := range factors {
		for _, wire := range factor.Wires {
			if seen[wire] {
				return Observable{}, fmt.Errorf("%w: wire %d appears twice in tensor product", ErrShapeMismatch, wire)
			}
			seen[wire] = true
		}

		out.Wires = append(out.Wires, factor.Wires...)
		out.components = append(out.components, factor.Components()...)
		out.rotations = append(out.rotations, factor.rotations...)
		out.eigvals = kron(out.eigvals, factor.eigvals)
		names = append(names, factor.Name)
	}

	out.Name = strings.Join(names, "@")
	return out, nil
}

func kron(a, b []float64) []float64 {
	out := make([]float64, 0, len(a)*len(b))
	for _, x := range a {
		for _, y := range b {
			out = append(out, x*y)
		}
	}
	return out
}

// Probs requests the marginal probability vector over wires.
func Probs(wires ...int) Observable {
	factors := make([]Observable, len(wires))
	for i, wire := range wires {
		factors[i] = Identity(wire)
	}

	obs, err := Tensor(factors...)
	if err != nil {
		// Duplicate wires; keep the request so validation reports it.
		obs = Observable{Wires: append([]int(nil), wires...), components: []string{GateIdentity}}
	}

	obs.Name = "Probs"
	obs.Return = Probability
	return obs
}

// As returns a copy of o measured with the given return type.
func (o Observable) As(rt ReturnType) Observable {
	o.Return = rt
	return o
}

func (o Observable) Eigenvalues() []float64 {
	return append([]float64(nil), o.eigvals...)
}

func (o Observable) DiagonalizingGates() []Operation {
	return append([]Operation(nil), o.rotations...)
}

// Components lists the names of the single observables o is a product of.
func (o Observable) Components() []string {
	if len(o.components) == 0 {
		return []string{o.Name}
	}
	return append([]string(nil), o.components...)
}

/*
pauliSpectrum reports whether o is a single-wire observable whose declared
spectrum is exactly [+1, -1], which lets samples be decoded as 1 - 2*bit.
*/
func (o Observable) pauliSpectrum() bool {
	return len(o.Wires) == 1 &&
		len(o.eigvals) == 2 &&
		o.eigvals[0] == 1 &&
		o.eigvals[1] == -1
}

func (o Observable) checkShape() error {
	if len(o.Wires) == 0 {
		return observableErrorf(o.Name, ErrShapeMismatch, "observable acts on no wires")
	}

	if want := 1 << len(o.Wires); len(o.eigvals) != want {
		return observableErrorf(o.Name, ErrShapeMismatch,
			"%d eigenvalues for %d wires, want %d", len(o.eigvals), len(o.Wires), want,
		)
	}

	return nil
}

func (o Observable) String() string {
	return fmt.Sprintf("%s(%s%v)", o.Return, o.Name, o.Wires)
}

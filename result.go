package qmeasure

import (
	"fmt"
	"strings"
)

// Value is one entry of a result collection: a scalar or an array.
type Value struct {
	scalar  float64
	array   []float64
	isArray bool
}

func Scalar(v float64) Value {
	return Value{scalar: v}
}

func Array(v []float64) Value {
	return Value{array: append([]float64(nil), v...), isArray: true}
}

func (v Value) IsArray() bool {
	return v.isArray
}

// Float returns the scalar; it is zero for array values.
func (v Value) Float() float64 {
	return v.scalar
}

// Floats returns a copy of the array; it is nil for scalar values.
func (v Value) Floats() []float64 {
	if !v.isArray {
		return nil
	}
	return append([]float64(nil), v.array...)
}

func (v Value) String() string {
	if v.isArray {
		return fmt.Sprint(v.array)
	}
	return fmt.Sprint(v.scalar)
}

/*
Results is the ordered outcome of one execution. When the circuit mixed Sample
with any other return type the entries cannot share one numeric shape and the
collection is heterogeneous; otherwise Scalars or Arrays give a uniform view.
*/
type Results struct {
	values        []Value
	heterogeneous bool
}

// NewResults packages values measured for observables.
func NewResults(values []Value, observables []Observable) Results {
	samples := 0
	for _, obs := range observables {
		if obs.Return == Sample {
			samples++
		}
	}

	return Results{
		values:        values,
		heterogeneous: samples > 0 && samples < len(observables),
	}
}

func (r Results) Len() int {
	return len(r.values)
}

func (r Results) At(i int) Value {
	return r.values[i]
}

func (r Results) Values() []Value {
	return append([]Value(nil), r.values...)
}

func (r Results) Heterogeneous() bool {
	return r.heterogeneous
}

// Scalars returns the collection as a flat vector when every entry is a scalar.
func (r Results) Scalars() ([]float64, bool) {
	if r.heterogeneous {
		return nil, false
	}

	out := make([]float64, len(r.values))
	for i, v := range r.values {
		if v.isArray {
			return nil, false
		}
		out[i] = v.scalar
	}
	return out, true
}

// Arrays returns the collection as rows when every entry is an array.
func (r Results) Arrays() ([][]float64, bool) {
	if r.heterogeneous {
		return nil, false
	}

	out := make([][]float64, len(r.values))
	for i, v := range r.values {
		if !v.isArray {
			return nil, false
		}
		out[i] = v.Floats()
	}
	return out, true
}

func (r Results) String() string {
	parts := make([]string, len(r.values))
	for i, v := range r.values {
		parts[i] = v.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

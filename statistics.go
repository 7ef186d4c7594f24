package qmeasure

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

/*
Statistics computes the requested statistic of every observable, in order.
Observables with NoReturn are skipped without error. An unknown return type
aborts the whole collection; no partial result is returned.
*/
func (exec *Execution) Statistics(observables []Observable) ([]Value, error) {
	results := make([]Value, 0, len(observables))

	for _, obs := range observables {
		var (
			value Value
			err   error
		)

		switch obs.Return {
		case NoReturn:
			continue
		case Expectation:
			var ev float64
			ev, err = exec.Expval(obs)
			value = Scalar(ev)
		case Variance:
			var v float64
			v, err = exec.Var(obs)
			value = Scalar(v)
		case Sample:
			var samples []float64
			samples, err = exec.Sample(obs)
			value = Array(samples)
		case Probability:
			var prob []float64
			prob, err = exec.Probability(obs.Wires)
			value = Array(prob)
		default:
			return nil, observableErrorf(obs.Name, ErrUnsupportedReturnType, "return type %s", obs.Return)
		}

		if err != nil {
			return nil, wrapObservable(obs, err)
		}

		exec.metrics.recordObservable(obs.Return)
		results = append(results, value)
	}

	return results, nil
}

// Expval returns the expectation value of obs, exactly or from samples.
func (exec *Execution) Expval(obs Observable) (float64, error) {
	if !exec.analytic {
		samples, err := exec.Sample(obs)
		if err != nil {
			return 0, err
		}
		return stat.Mean(samples, nil), nil
	}

	prob, err := exec.observableProbability(obs)
	if err != nil {
		return 0, err
	}

	return floats.Dot(obs.eigvals, prob), nil
}

// Var returns the variance of obs; the sampled estimate is not Bessel corrected.
func (exec *Execution) Var(obs Observable) (float64, error) {
	if !exec.analytic {
		samples, err := exec.Sample(obs)
		if err != nil {
			return 0, err
		}
		return stat.PopVariance(samples, nil), nil
	}

	prob, err := exec.observableProbability(obs)
	if err != nil {
		return 0, err
	}

	squares := make([]float64, len(obs.eigvals))
	floats.MulTo(squares, obs.eigvals, obs.eigvals)

	mean := floats.Dot(obs.eigvals, prob)
	return floats.Dot(squares, prob) - mean*mean, nil
}

/*
Sample maps every stored sample row onto the eigenvalue of obs it selects.
Observables with a single wire and the spectrum [+1, -1] are decoded straight
from the bit; everything else goes through the eigenvalue table.
*/
func (exec *Execution) Sample(obs Observable) ([]float64, error) {
	if exec.samples == nil {
		return nil, observableErrorf(obs.Name, ErrNoSamples, "")
	}

	columns, err := exec.sampleColumns(obs.Wires)
	if err != nil {
		return nil, wrapObservable(obs, err)
	}

	if obs.pauliSpectrum() {
		return samplePauli(exec.samples, columns[0]), nil
	}

	if err := obs.checkShape(); err != nil {
		return nil, err
	}

	return sampleEigenvalues(exec.samples, columns, obs.eigvals), nil
}

func samplePauli(samples [][]int, column int) []float64 {
	out := make([]float64, len(samples))
	for i, row := range samples {
		out[i] = float64(1 - 2*row[column])
	}
	return out
}

func sampleEigenvalues(samples [][]int, columns []int, eigvals []float64) []float64 {
	out := make([]float64, len(samples))
	for i, row := range samples {
		index := 0
		for _, column := range columns {
			index = index<<1 | row[column]
		}
		out[i] = eigvals[index]
	}
	return out
}

// sampleColumns maps wires onto their column in the sample matrix.
func (exec *Execution) sampleColumns(wires []int) ([]int, error) {
	if len(wires) == 0 {
		return nil, fmt.Errorf("%w: observable acts on no wires", ErrShapeMismatch)
	}

	lookup := make(map[int]int, len(exec.wiresUsed))
	for column, wire := range exec.wiresUsed {
		lookup[wire] = column
	}

	columns := make([]int, len(wires))
	for i, wire := range wires {
		column, ok := lookup[wire]
		if !ok {
			return nil, fmt.Errorf("%w: wire %d was not sampled", ErrShapeMismatch, wire)
		}
		columns[i] = column
	}

	return columns, nil
}

/*
Probability returns the marginal probability over wires from the backend, in
ascending wire order. A vector that is not a distribution is an error.
*/
func (exec *Execution) Probability(wires []int) ([]float64, error) {
	if _, err := sortedWires(wires, exec.numWires); err != nil {
		return nil, err
	}

	prob, err := exec.backend.Probability(append([]int(nil), wires...))
	if err != nil {
		return nil, err
	}

	if len(prob) != 1<<len(wires) {
		return nil, fmt.Errorf(
			"%w: backend returned %d probabilities for %d wires", ErrShapeMismatch, len(prob), len(wires),
		)
	}

	if err := checkProbability(prob); err != nil {
		return nil, err
	}

	return prob, nil
}

// observableProbability orders the marginal like the eigenvalues of obs.
func (exec *Execution) observableProbability(obs Observable) ([]float64, error) {
	if err := obs.checkShape(); err != nil {
		return nil, err
	}

	prob, err := exec.Probability(obs.Wires)
	if err != nil {
		return nil, err
	}

	sorted, err := sortedWires(obs.Wires, exec.numWires)
	if err != nil {
		return nil, err
	}

	return reorderWires(prob, sorted, obs.Wires)
}

func wrapObservable(obs Observable, err error) error {
	var named *ObservableError
	if errors.As(err, &named) {
		return err
	}
	return &ObservableError{Name: obs.Name, Err: err}
}

package qmeasure

import (
	"errors"
	"fmt"
)

/*
Sentinel errors returned by the measurement engine. Every failure is terminal
for the execution that produced it; callers match them with errors.Is and must
Reset the device before running it again.
*/
var (
	// ErrUnsupportedReturnType is returned when an observable asks for a
	// statistic outside Expectation, Variance, Sample and Probability.
	ErrUnsupportedReturnType = errors.New("qmeasure: unsupported return type")

	// ErrValidation is the parent of every capability check failure.
	ErrValidation = errors.New("qmeasure: circuit validation failed")

	// ErrUnsupportedOperation signals an operation the backend does not declare.
	ErrUnsupportedOperation = fmt.Errorf("%w: operation not supported", ErrValidation)

	// ErrUnsupportedObservable signals an observable the backend does not declare.
	ErrUnsupportedObservable = fmt.Errorf("%w: observable not supported", ErrValidation)

	// ErrShapeMismatch covers wire indices out of range, duplicate wires and
	// vectors of the wrong length.
	ErrShapeMismatch = errors.New("qmeasure: shape mismatch")

	// ErrInvalidProbability signals a vector that is not a probability
	// distribution (negative entries or a sum away from one).
	ErrInvalidProbability = fmt.Errorf("%w: invalid probability vector", ErrShapeMismatch)

	// ErrNoSamples is returned when samples are read before any were generated.
	ErrNoSamples = errors.New("qmeasure: no samples generated")
)

// ObservableError names the observable or operation a failure belongs to.
type ObservableError struct {
	Name string
	Err  error
}

func (e *ObservableError) Error() string {
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e *ObservableError) Unwrap() error {
	return e.Err
}

func observableErrorf(name string, err error, format string, args ...any) error {
	if format == "" {
		return &ObservableError{Name: name, Err: err}
	}

	return &ObservableError{
		Name: name,
		Err:  fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err),
	}
}

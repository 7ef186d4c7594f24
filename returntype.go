package qmeasure

import (
	"fmt"
	"strings"
)

/*
ReturnType selects the statistic a measured observable produces. The zero
value, NoReturn, marks an observable that takes part in basis rotation but
contributes nothing to the result collection.
*/
type ReturnType int

const (
	NoReturn ReturnType = iota
	Expectation
	Variance
	Sample
	Probability
)

func (rt ReturnType) String() string {
	switch rt {
	case NoReturn:
		return "none"
	case Expectation:
		return "expval"
	case Variance:
		return "var"
	case Sample:
		return "sample"
	case Probability:
		return "probs"
	default:
		return fmt.Sprintf("ReturnType(%d)", int(rt))
	}
}

// Valid reports whether rt is one of the known kinds, NoReturn included.
func (rt ReturnType) Valid() bool {
	return rt >= NoReturn && rt <= Probability
}

// ParseReturnType accepts the short names used in circuit files as well as
// the long names of the statistics.
func ParseReturnType(s string) (ReturnType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return NoReturn, nil
	case "expval", "expectation":
		return Expectation, nil
	case "var", "variance":
		return Variance, nil
	case "sample", "samples":
		return Sample, nil
	case "probs", "probability":
		return Probability, nil
	}

	return NoReturn, fmt.Errorf("%w: %q", ErrUnsupportedReturnType, s)
}

func (rt *ReturnType) UnmarshalText(text []byte) error {
	parsed, err := ParseReturnType(string(text))
	if err != nil {
		return err
	}

	*rt = parsed
	return nil
}

func (rt ReturnType) MarshalText() ([]byte, error) {
	if !rt.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedReturnType, int(rt))
	}

	return []byte(rt.String()), nil
}

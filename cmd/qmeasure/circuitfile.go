package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/theapemachine/qmeasure"
	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"
)

/*
circuitFile is the YAML layout accepted by the run command:

	wires: 2
	operations:
	  - gate: Hadamard
	    wires: [0]
	  - gate: CNOT
	    wires: [0, 1]
	observables:
	  - measure: expval
	    observable: PauliZ@PauliZ
	    wires: [0, 1]
	  - measure: probs
	    wires: [0, 1]
*/
type circuitFile struct {
	Wires       int               `yaml:"wires"`
	Operations  []operationEntry  `yaml:"operations"`
	Observables []observableEntry `yaml:"observables"`
}

type operationEntry struct {
	Gate   string    `yaml:"gate"`
	Wires  []int     `yaml:"wires"`
	Params []float64 `yaml:"params"`
}

type observableEntry struct {
	Measure    string      `yaml:"measure"`
	Observable string      `yaml:"observable"`
	Wires      []int       `yaml:"wires"`
	Matrix     [][]float64 `yaml:"matrix"`
}

func loadCircuitFile(path string) (*circuitFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read circuit file: %w", err)
	}

	var file circuitFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("failed to parse circuit file %s: %w", path, err)
	}

	return &file, nil
}

func (f *circuitFile) Circuit() (qmeasure.Circuit, error) {
	circuit := qmeasure.Circuit{
		Operations:  make([]qmeasure.Operation, 0, len(f.Operations)),
		Observables: make([]qmeasure.Observable, 0, len(f.Observables)),
	}

	for _, entry := range f.Operations {
		circuit.Operations = append(circuit.Operations, qmeasure.NewOperation(entry.Gate, entry.Wires, entry.Params...))
	}

	for i, entry := range f.Observables {
		obs, err := entry.build()
		if err != nil {
			return qmeasure.Circuit{}, fmt.Errorf("observable %d: %w", i, err)
		}
		circuit.Observables = append(circuit.Observables, obs)
	}

	return circuit, nil
}

func (e observableEntry) build() (qmeasure.Observable, error) {
	rt, err := qmeasure.ParseReturnType(e.Measure)
	if err != nil {
		return qmeasure.Observable{}, err
	}

	if rt == qmeasure.Probability && e.Observable == "" {
		return qmeasure.Probs(e.Wires...), nil
	}

	if e.Observable == qmeasure.ObservableHermitian {
		obs, err := e.hermitian()
		if err != nil {
			return qmeasure.Observable{}, err
		}
		return obs.As(rt), nil
	}

	names := strings.Split(e.Observable, "@")
	if len(names) != len(e.Wires) {
		return qmeasure.Observable{}, fmt.Errorf(
			"%s needs one wire per factor, got %d wires", e.Observable, len(e.Wires),
		)
	}

	factors := make([]qmeasure.Observable, len(names))
	for i, name := range names {
		factor, err := singleObservable(strings.TrimSpace(name), e.Wires[i])
		if err != nil {
			return qmeasure.Observable{}, err
		}
		factors[i] = factor
	}

	if len(factors) == 1 {
		return factors[0].As(rt), nil
	}

	obs, err := qmeasure.Tensor(factors...)
	if err != nil {
		return qmeasure.Observable{}, err
	}
	return obs.As(rt), nil
}

func singleObservable(name string, wire int) (qmeasure.Observable, error) {
	switch name {
	case qmeasure.GatePauliX:
		return qmeasure.PauliX(wire), nil
	case qmeasure.GatePauliY:
		return qmeasure.PauliY(wire), nil
	case qmeasure.GatePauliZ:
		return qmeasure.PauliZ(wire), nil
	case qmeasure.GateHadamard:
		return qmeasure.Hadamard(wire), nil
	case qmeasure.GateIdentity:
		return qmeasure.Identity(wire), nil
	}

	return qmeasure.Observable{}, fmt.Errorf("unknown observable %q", name)
}

func (e observableEntry) hermitian() (qmeasure.Observable, error) {
	n := len(e.Matrix)
	data := make([]float64, 0, n*n)

	for _, row := range e.Matrix {
		if len(row) != n {
			return qmeasure.Observable{}, fmt.Errorf("hermitian matrix must be square")
		}
		data = append(data, row...)
	}

	if n == 0 {
		return qmeasure.Observable{}, fmt.Errorf("hermitian matrix is empty")
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if e.Matrix[i][j] != e.Matrix[j][i] {
				return qmeasure.Observable{}, fmt.Errorf("hermitian matrix must be symmetric")
			}
		}
	}

	return qmeasure.Hermitian(mat.NewSymDense(n, data), e.Wires...)
}

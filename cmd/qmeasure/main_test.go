package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/theapemachine/qmeasure"
)

const bellCircuit = `wires: 2
operations:
  - gate: Hadamard
    wires: [0]
  - gate: CNOT
    wires: [0, 1]
observables:
  - measure: expval
    observable: PauliZ@PauliZ
    wires: [0, 1]
  - measure: none
    observable: PauliZ
    wires: [1]
  - measure: probs
    wires: [0, 1]
`

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCircuitFile(t *testing.T) {
	Convey("Given a circuit file", t, func() {
		file, err := loadCircuitFile(writeFile(t, "bell.yaml", bellCircuit))
		So(err, ShouldBeNil)
		So(file.Wires, ShouldEqual, 2)

		circuit, err := file.Circuit()
		So(err, ShouldBeNil)

		Convey("Operations should keep their order and wires", func() {
			So(circuit.Operations, ShouldHaveLength, 2)
			So(circuit.Operations[0].Name, ShouldEqual, qmeasure.GateHadamard)
			So(circuit.Operations[1].Wires, ShouldResemble, []int{0, 1})
		})

		Convey("Observables should carry their return types", func() {
			So(circuit.Observables, ShouldHaveLength, 3)
			So(circuit.Observables[0].Name, ShouldEqual, "PauliZ@PauliZ")
			So(circuit.Observables[0].Return, ShouldEqual, qmeasure.Expectation)
			So(circuit.Observables[1].Return, ShouldEqual, qmeasure.NoReturn)
			So(circuit.Observables[2].Return, ShouldEqual, qmeasure.Probability)
			So(circuit.Observables[2].Wires, ShouldResemble, []int{0, 1})
		})
	})

	Convey("Given observable entries", t, func() {
		Convey("A Hermitian matrix should be eigendecomposed", func() {
			obs, err := observableEntry{
				Measure:    "var",
				Observable: "Hermitian",
				Wires:      []int{0},
				Matrix:     [][]float64{{2, 1}, {1, 2}},
			}.build()
			So(err, ShouldBeNil)
			So(obs.Return, ShouldEqual, qmeasure.Variance)

			eigvals := obs.Eigenvalues()
			So(eigvals[0], ShouldAlmostEqual, 1, 1e-12)
			So(eigvals[1], ShouldAlmostEqual, 3, 1e-12)
		})

		Convey("A non-symmetric matrix should be rejected", func() {
			_, err := observableEntry{
				Measure:    "expval",
				Observable: "Hermitian",
				Wires:      []int{0},
				Matrix:     [][]float64{{0, 1}, {2, 0}},
			}.build()
			So(err, ShouldNotBeNil)
		})

		Convey("An unknown name should be rejected", func() {
			_, err := observableEntry{Measure: "expval", Observable: "PauliW", Wires: []int{0}}.build()
			So(err, ShouldNotBeNil)
		})

		Convey("An unknown measurement should be rejected", func() {
			_, err := observableEntry{Measure: "median", Observable: "PauliZ", Wires: []int{0}}.build()
			So(err, ShouldNotBeNil)
		})

		Convey("Factors and wires must pair up", func() {
			_, err := observableEntry{Measure: "expval", Observable: "PauliZ@PauliX", Wires: []int{0}}.build()
			So(err, ShouldNotBeNil)
		})
	})
}

func TestRunCommand(t *testing.T) {
	Convey("Given the run command and a Bell circuit", t, func() {
		path := writeFile(t, "bell.yaml", bellCircuit)

		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetErr(&out)

		Reset(func() {
			rootCmd.SetArgs(nil)
			rootCmd.SetOut(nil)
			rootCmd.SetErr(nil)
		})

		Convey("It should print one line per measured observable", func() {
			rootCmd.SetArgs([]string{"run", path})
			So(rootCmd.Execute(), ShouldBeNil)

			So(out.String(), ShouldContainSubstring, "expval(PauliZ@PauliZ[0 1]) = ")
			So(out.String(), ShouldContainSubstring, "probs(Probs[0 1]) = [")
			So(out.String(), ShouldNotContainSubstring, "none(")
		})

		Convey("A missing circuit file should fail", func() {
			rootCmd.SetArgs([]string{"run", filepath.Join(t.TempDir(), "missing.yaml")})
			So(rootCmd.Execute(), ShouldNotBeNil)
		})
	})

	Convey("Given the version command", t, func() {
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetArgs([]string{"version"})

		So(rootCmd.Execute(), ShouldBeNil)
		So(out.String(), ShouldEqual, version+"\n")

		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
	})
}

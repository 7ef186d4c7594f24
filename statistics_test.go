package qmeasure

import (
	"errors"
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestStatistics(t *testing.T) {
	Convey("Given an analytic execution over a known distribution", t, func() {
		// |w0 w1>: 00 -> 0.1, 01 -> 0.2, 10 -> 0.3, 11 -> 0.4
		backend := newFixedBackend(2, []float64{0.1, 0.2, 0.3, 0.4})
		exec := newTestExecution(backend, 2, 10, true)

		Convey("Expectation should weight eigenvalues by probability", func() {
			ev, err := exec.Expval(PauliZ(0))
			So(err, ShouldBeNil)
			So(ev, ShouldAlmostEqual, 0.3-0.7, 1e-12)

			ev, err = exec.Expval(PauliZ(1))
			So(err, ShouldBeNil)
			So(ev, ShouldAlmostEqual, 0.4-0.6, 1e-12)
		})

		Convey("Expectation should follow the observable's wire order", func() {
			obs, err := Tensor(PauliZ(1), Identity(0))
			So(err, ShouldBeNil)

			ev, err := exec.Expval(obs)
			So(err, ShouldBeNil)
			So(ev, ShouldAlmostEqual, -0.2, 1e-12)

			custom, err := NewObservable("Custom", []int{1, 0}, []float64{0, 1, 2, 3})
			So(err, ShouldBeNil)

			// index b1b0: 00 -> 0.1, 01 -> 0.3, 10 -> 0.2, 11 -> 0.4
			ev, err = exec.Expval(custom)
			So(err, ShouldBeNil)
			So(ev, ShouldAlmostEqual, 0*0.1+1*0.3+2*0.2+3*0.4, 1e-12)
		})

		Convey("Variance should be the second moment minus the squared mean", func() {
			v, err := exec.Var(PauliZ(0))
			So(err, ShouldBeNil)
			So(v, ShouldAlmostEqual, 1-0.16, 1e-12)
		})

		Convey("Probability should marginalise onto the observable's wires", func() {
			prob, err := exec.Probability([]int{1})
			So(err, ShouldBeNil)
			So(prob[0], ShouldAlmostEqual, 0.4, 1e-12)
			So(prob[1], ShouldAlmostEqual, 0.6, 1e-12)
		})

		Convey("Probability should reject wires outside the device", func() {
			_, err := exec.Probability([]int{2})
			So(errors.Is(err, ErrShapeMismatch), ShouldBeTrue)
		})

		Convey("Sample should fail before samples exist", func() {
			_, err := exec.Sample(PauliZ(0))
			So(errors.Is(err, ErrNoSamples), ShouldBeTrue)
		})

		Convey("Statistics should keep the input order", func() {
			observables := []Observable{
				PauliZ(1).As(Variance),
				Probs(0),
				PauliZ(0).As(Expectation),
			}
			exec.RotateBasis(observables)

			values, err := exec.Statistics(observables)
			So(err, ShouldBeNil)
			So(values, ShouldHaveLength, 3)
			So(values[0].IsArray(), ShouldBeFalse)
			So(values[0].Float(), ShouldAlmostEqual, 1-0.04, 1e-12)
			So(values[1].IsArray(), ShouldBeTrue)
			So(values[1].Floats(), ShouldHaveLength, 2)
			So(values[2].Float(), ShouldAlmostEqual, -0.4, 1e-12)
		})

		Convey("Statistics should skip observables without a return type", func() {
			values, err := exec.Statistics([]Observable{PauliZ(0)})
			So(err, ShouldBeNil)
			So(values, ShouldBeEmpty)
		})

		Convey("Statistics should refuse unknown return types", func() {
			values, err := exec.Statistics([]Observable{
				PauliZ(0).As(Expectation),
				PauliX(1).As(ReturnType(42)),
			})
			So(values, ShouldBeNil)
			So(errors.Is(err, ErrUnsupportedReturnType), ShouldBeTrue)

			var named *ObservableError
			So(errors.As(err, &named), ShouldBeTrue)
			So(named.Name, ShouldEqual, GatePauliX)
		})
	})

	Convey("Given sampled statistics over a known distribution", t, func() {
		backend := newFixedBackend(2, []float64{0.1, 0.2, 0.3, 0.4})
		exec := newTestExecution(backend, 2, 2000, false)

		observables := []Observable{PauliZ(0).As(Expectation), PauliZ(1).As(Sample)}
		exec.RotateBasis(observables)
		So(exec.GenerateSamples(), ShouldBeNil)

		Convey("Samples of a ±1 observable should only hold ±1", func() {
			samples, err := exec.Sample(PauliZ(1))
			So(err, ShouldBeNil)
			So(samples, ShouldHaveLength, 2000)

			for _, s := range samples {
				So(s == 1 || s == -1, ShouldBeTrue)
			}
		})

		Convey("The ±1 shortcut should agree with the eigenvalue table", func() {
			for _, wire := range []int{0, 1} {
				samples := exec.Samples()
				fast := samplePauli(samples, wire)
				general := sampleEigenvalues(samples, []int{wire}, PauliZ(wire).Eigenvalues())
				So(fast, ShouldResemble, general)
			}
		})

		Convey("A reversed two wire observable should read bits in its own order", func() {
			custom, err := NewObservable("Custom", []int{1, 0}, []float64{0, 1, 2, 3})
			So(err, ShouldBeNil)

			values, err := exec.Sample(custom)
			So(err, ShouldBeNil)

			for i, row := range exec.Samples() {
				So(values[i], ShouldEqual, float64(row[1]*2+row[0]))
			}
		})

		Convey("Sampled estimates should be close to the exact values", func() {
			ev, err := exec.Expval(PauliZ(0))
			So(err, ShouldBeNil)
			So(ev, ShouldAlmostEqual, -0.4, 5/math.Sqrt(2000))

			v, err := exec.Var(PauliZ(0))
			So(err, ShouldBeNil)
			So(v, ShouldAlmostEqual, 0.84, 5/math.Sqrt(2000))
		})

		Convey("The sampled variance should not be Bessel corrected", func() {
			samples, err := exec.Sample(PauliZ(0))
			So(err, ShouldBeNil)

			mean := 0.0
			for _, s := range samples {
				mean += s
			}
			mean /= float64(len(samples))

			population := 0.0
			for _, s := range samples {
				population += (s - mean) * (s - mean)
			}
			population /= float64(len(samples))

			v, err := exec.Var(PauliZ(0))
			So(err, ShouldBeNil)
			So(v, ShouldAlmostEqual, population, 1e-9)
		})
	})
}

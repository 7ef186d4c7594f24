package qmeasure

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRateLimiter(t *testing.T) {
	Convey("Given a rate limiter with 2 tokens", t, func() {
		limiter := NewRateLimiter(2, time.Hour)

		Convey("It should admit a burst of two and then limit", func() {
			So(limiter.Limit(), ShouldBeFalse)
			So(limiter.Limit(), ShouldBeFalse)
			So(limiter.Limit(), ShouldBeTrue)
			So(limiter.tokens, ShouldEqual, 0)
		})
	})

	Convey("Given a rate limiter with a short refill period", t, func() {
		limiter := NewRateLimiter(3, 20*time.Millisecond)

		Convey("It should refill after the period has elapsed", func() {
			So(limiter.Limit(), ShouldBeFalse)
			So(limiter.Limit(), ShouldBeFalse)
			So(limiter.Limit(), ShouldBeFalse)
			So(limiter.Limit(), ShouldBeTrue)

			time.Sleep(50 * time.Millisecond)

			So(limiter.Limit(), ShouldBeFalse)
		})

		Convey("It should never exceed its capacity", func() {
			time.Sleep(100 * time.Millisecond)

			limiter.mu.Lock()
			limiter.refill()
			So(limiter.tokens, ShouldEqual, 3)
			limiter.mu.Unlock()
		})
	})
}

func TestPoolRegulation(t *testing.T) {
	Convey("Given a pool regulated to two jobs", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), poolTimeout)
		metrics := NewMetrics(prometheus.NewRegistry())

		pool, err := NewPool(ctx, 1, testFactory(7), metrics,
			WithRegulator(NewRateLimiter(2, time.Hour)),
		)
		So(err, ShouldBeNil)

		Reset(func() {
			pool.Close()
			cancel()
		})

		circuit := Circuit{Observables: []Observable{PauliZ(0).As(Expectation)}}

		first := <-pool.Submit(circuit)
		second := <-pool.Submit(circuit)
		third := <-pool.Submit(circuit)

		So(first.Err, ShouldBeNil)
		So(second.Err, ShouldBeNil)
		So(errors.Is(third.Err, ErrThrottled), ShouldBeTrue)
		So(testutil.ToFloat64(metrics.Throttled), ShouldEqual, 1)
	})
}

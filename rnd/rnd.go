// Package rnd collects the probability distributions the simulator
// draws from: uniform integers and floats, normal, lognormal, and the
// pessimistic lognormal used for latency and interval jitter. Grounded
// on the original Utils.hpp Rnd class.
//
// Unlike the original's process-wide static Rnd, every function here
// takes a *rand.Rand explicitly — the Simulator owns one instance, so
// a seeded run is reproducible without any global mutable state
// (§9 of SPEC_FULL.md: explicit context over singletons).
package rnd

import (
	"math"
	"math/rand"
)

// Int returns a uniform value in [0, lim).
func Int(r *rand.Rand, lim int) int {
	return r.Intn(lim)
}

// Float returns a uniform value in [0, lim).
func Float(r *rand.Rand, lim float64) float64 {
	return r.Float64() * lim
}

// Normal returns a sample from N(0, deviation).
func Normal(r *rand.Rand, deviation float64) float64 {
	return r.NormFloat64() * deviation
}

// deviationFromRelative reproduces the original's "magic formula":
// it converts a relative deviation coefficient (1.0 = no jitter, 1.1
// = about 10%, ...) into the standard deviation of the underlying
// normal distribution that, once exponentiated, yields that spread.
func deviationFromRelative(relativeDeviation float64) float64 {
	x := math.Log(relativeDeviation) / math.Log(2.48)
	return math.Log(x+1) / math.Log(2.48)
}

// LogNormal returns exp(N(0, deviation)) where deviation is derived
// from relativeDeviation (must be in [1, 15)).
func LogNormal(r *rand.Rand, relativeDeviation float64) float64 {
	deviation := deviationFromRelative(relativeDeviation)
	return math.Exp(Normal(r, deviation))
}

// PessimisticLogNormal is LogNormal's one-sided variant: it takes
// exp(|N(0, deviation)|), so the jitter only ever inflates the base
// value, never shrinks it. Used for every latency and periodic-job
// interval draw in the simulator.
func PessimisticLogNormal(r *rand.Rand, relativeDeviation float64) float64 {
	deviation := deviationFromRelative(relativeDeviation)
	return math.Exp(math.Abs(Normal(r, deviation)))
}

// ChooseByWeight picks an index in [0, n) with probability
// proportional to weight(i). weight must be non-negative and sum to a
// positive total.
func ChooseByWeight(r *rand.Rand, n int, weight func(i int) float64) int {
	total := 0.0
	for i := 0; i < n; i++ {
		total += weight(i)
	}
	draw := Float(r, total)
	for i := 0; i < n; i++ {
		w := weight(i)
		if draw < w {
			return i
		}
		draw -= w
	}
	return n - 1
}

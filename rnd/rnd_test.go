package rnd

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPessimisticLogNormalNeverShrinksBelowOne(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		v := PessimisticLogNormal(r, 1.1)
		assert.GreaterOrEqual(t, v, 1.0)
	}
}

func TestLogNormalCanShrink(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	sawBelowOne := false
	for i := 0; i < 1000; i++ {
		if LogNormal(r, 1.1) < 1.0 {
			sawBelowOne = true
			break
		}
	}
	assert.True(t, sawBelowOne)
}

func TestChooseByWeightAntiClusteringBias(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	counts := make([]int, 3)
	weight := func(i int) float64 { return 1. / (float64(counts[i]) + 0.5) }
	for i := 0; i < 3000; i++ {
		idx := ChooseByWeight(r, 3, weight)
		counts[idx]++
	}
	for _, c := range counts {
		assert.InDelta(t, 1000, c, 150, "anti-clustering weight should roughly balance buckets")
	}
}

func TestDeterministicReplayGivenSeed(t *testing.T) {
	r1 := rand.New(rand.NewSource(99))
	r2 := rand.New(rand.NewSource(99))
	for i := 0; i < 50; i++ {
		assert.Equal(t, PessimisticLogNormal(r1, 1.1), PessimisticLogNormal(r2, 1.1))
	}
}

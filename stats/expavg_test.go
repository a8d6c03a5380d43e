package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpAvgFirstUpdateSeeds(t *testing.T) {
	var e ExpAvg
	assert.False(t, e.IsSet())
	e.Update(100)
	assert.True(t, e.IsSet())
	assert.Equal(t, 100.0, e.Get())
}

func TestExpAvgBlendsSubsequentSamples(t *testing.T) {
	var e ExpAvg
	e.Update(100)
	e.Update(200)
	want := Alpha*200 + (1-Alpha)*100
	assert.InDelta(t, want, e.Get(), 1e-9)
}

func TestExpAvgConvergesTowardRepeatedValue(t *testing.T) {
	var e ExpAvg
	e.Update(0)
	for i := 0; i < 500; i++ {
		e.Update(1000)
	}
	assert.InDelta(t, 1000, e.Get(), 1)
}

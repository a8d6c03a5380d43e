package cluster

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddNodeAssignsDistinctIDsAndIndexes(t *testing.T) {
	c := New()
	r := rand.New(rand.NewSource(1))
	var addedIDs = map[uint64]bool{}
	for i := 0; i < 20; i++ {
		n := c.AddNode(r)
		assert.False(t, addedIDs[uint64(n.ID)])
		addedIDs[uint64(n.ID)] = true
		assert.Equal(t, i, n.Idx)
	}
	assert.Equal(t, 20, c.Count())

	for id, idx := range c.idToIdx {
		assert.Equal(t, id, c.nodes[idx].ID)
	}
}

func TestFindNodeMissingReturnsNil(t *testing.T) {
	c := New()
	assert.Nil(t, c.FindNode(999))
}

func TestDelNodeMaintainsInvariants(t *testing.T) {
	c := New()
	r := rand.New(rand.NewSource(2))
	for i := 0; i < 10; i++ {
		c.AddNode(r)
	}

	for c.Count() > 0 {
		removed := c.DelNode(r)
		assert.Nil(t, c.FindNode(removed))
		for id, idx := range c.idToIdx {
			assert.Equal(t, id, c.nodes[idx].ID)
		}
		assert.Equal(t, len(c.nodes), len(c.idToIdx))
	}
}

func TestPhysicalOccupancyTracksLiveNodes(t *testing.T) {
	c := New()
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 30; i++ {
		c.AddNode(r)
	}
	total := 0
	for dc := 0; dc < 3; dc++ {
		for rack := 0; rack < 100; rack++ {
			total += c.Physical.Occupancy(dc, rack)
		}
	}
	assert.Equal(t, 30, total)

	c.DelNode(r)
	total = 0
	for dc := 0; dc < 3; dc++ {
		for rack := 0; rack < 100; rack++ {
			total += c.Physical.Occupancy(dc, rack)
		}
	}
	assert.Equal(t, 29, total)
}

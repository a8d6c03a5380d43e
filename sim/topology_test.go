package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gossipsim/ids"
)

func TestOptimalConnCountStaysWithinSpecBounds(t *testing.T) {
	for n := 0; n <= 200; n++ {
		count := OptimalConnCount(n)
		assert.GreaterOrEqual(t, count, InitialConnectCount)
		upperBound := InitialConnectCount
		if n-1 > upperBound {
			upperBound = n - 1
		}
		assert.LessOrEqual(t, count, upperBound)
	}
}

func TestOptimalConnCountIsMonotonicNonDecreasing(t *testing.T) {
	prev := OptimalConnCount(0)
	for n := 1; n <= 500; n++ {
		cur := OptimalConnCount(n)
		assert.GreaterOrEqual(t, cur, prev)
		prev = cur
	}
}

func TestUrgencyClampsToSpecRange(t *testing.T) {
	assert.Equal(t, 0.05, urgency(0))
	assert.Equal(t, 0.05, urgency(0.01))
	assert.Equal(t, 1.0, urgency(5))
	assert.Equal(t, 0.5, urgency(0.5))
}

func TestTopologyGrowsSparseNodeTowardOptimalFanOut(t *testing.T) {
	s := New(7)
	// A small star: center connected to several nodes that each only
	// know the center. Each leaf's optimal_conn_count is at least
	// InitialConnectCount, so a leaf below that should try to grow
	// toward another leaf it hears about via gossip.
	center := s.Cluster.AddNode(s.Rng)
	var leaves []ids.NodeID
	for i := 0; i < 6; i++ {
		leaf := s.Cluster.AddNode(s.Rng)
		leaves = append(leaves, leaf.ID)
		s.Scheduler.Add(0, JobConnect{Sim: s, Origin: leaf.ID, Peer: center.ID})
	}
	for s.Scheduler.More() {
		s.Scheduler.Next()
	}

	for _, leafID := range leaves {
		s.Scheduler.Add(0, JobGossip{Sim: s, Node: center.ID})
		s.Scheduler.Add(0, JobGossip{Sim: s, Node: leafID})
	}
	// Let a few gossip rounds exchange knowledge before any topology
	// decision is made, firing strictly the already-queued events.
	for i := 0; i < 40 && s.Scheduler.More(); i++ {
		s.Scheduler.Next()
	}

	leaf := s.Cluster.FindNode(leaves[0])
	before := leaf.ConnCount()
	s.Scheduler.Add(0, JobTopology{Sim: s, Node: leaf.ID})
	for i := 0; i < 30 && s.Scheduler.More(); i++ {
		s.Scheduler.Next()
	}

	assert.GreaterOrEqual(t, leaf.ConnCount(), before, "topology search must never shrink an under-connected node's fan-out in this scenario")
}

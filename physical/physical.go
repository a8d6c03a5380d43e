// Package physical models the (dc, rack) placement of nodes and the
// base latency between any two cells, grounded on the original
// PhysicalTopology.hpp.
package physical

import (
	"math/rand"

	"gossipsim/rnd"
)

// Constants, all in microseconds unless noted (spec.md §6).
const (
	NumDC    = 3
	NumRacks = 100

	BadPeerLatency    = 10000
	CrossDCLatency    = 4000
	CrossRackLatency  = 2000
	MinimalLatency    = 500
	LatencyRandomCoef = 1.1
)

// Node is a node's immutable physical placement.
type Node struct {
	DC   int
	Rack int
}

// Topology tracks how many live nodes occupy each (dc, rack) cell, so
// fresh placements can be biased away from crowded cells.
type Topology struct {
	counts [NumDC * NumRacks]int
}

// New returns an empty occupancy table.
func New() *Topology {
	return &Topology{}
}

// Place draws a cell with weight 1/(count+0.5), biasing away from
// crowded cells, registers the occupancy increment, and returns the
// new node's placement.
func (t *Topology) Place(r *rand.Rand) Node {
	i := rnd.ChooseByWeight(r, len(t.counts), func(i int) float64 {
		return 1. / (float64(t.counts[i]) + 0.5)
	})
	t.counts[i]++
	return Node{DC: i / NumRacks, Rack: i % NumRacks}
}

// Register increments the occupancy count for an already-placed node
// (used when a node is copied rather than freshly created).
func (t *Topology) Register(n Node) {
	t.counts[n.DC*NumRacks+n.Rack]++
}

// Unregister decrements the occupancy count for a node leaving the
// cluster.
func (t *Topology) Unregister(n Node) {
	t.counts[n.DC*NumRacks+n.Rack]--
}

// Occupancy returns the live node count in a given cell, for tests
// and invariant checks.
func (t *Topology) Occupancy(dc, rack int) int {
	return t.counts[dc*NumRacks+rack]
}

// BaseLatency is the latency floor for a pair of cells, before
// jitter: BadPeerLatency if either side is absent, CrossDCLatency for
// different DCs, CrossRackLatency for same DC/different rack,
// MinimalLatency for the same rack.
func BaseLatency(a, b *Node) float64 {
	if a == nil || b == nil {
		return BadPeerLatency
	}
	if a.DC != b.DC {
		return CrossDCLatency
	}
	if a.Rack != b.Rack {
		return CrossRackLatency
	}
	return MinimalLatency
}

// Latency is BaseLatency inflated by pessimistic lognormal jitter —
// the simulated one-way ping delay between two nodes.
func Latency(r *rand.Rand, a, b *Node) float64 {
	return BaseLatency(a, b) * rnd.PessimisticLogNormal(r, LatencyRandomCoef)
}

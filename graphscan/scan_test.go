package graphscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gossipsim/ids"
)

func nodeSet(ns ...ids.NodeID) map[ids.NodeID]struct{} {
	m := map[ids.NodeID]struct{}{}
	for _, n := range ns {
		m[n] = struct{}{}
	}
	return m
}

func TestScanLinearChain(t *testing.T) {
	// 0 -- 1 -- 2, each hop latency 10.
	adj := map[ids.NodeID][]Edge{
		0: {{Peer: 1, Latency: 10}},
		1: {{Peer: 0, Latency: 10}, {Peer: 2, Latency: 10}},
		2: {{Peer: 1, Latency: 10}},
	}
	jump := func(n ids.NodeID) []Edge { return adj[n] }
	all := nodeSet(0, 1, 2)

	res := Scan(0, all, jump)
	assert.Equal(t, 2, res.MaxHops)
	assert.Equal(t, 20.0, res.MaxLatency)
	assert.Empty(t, res.Inaccessible)
	assert.InDelta(t, 1.5, res.AvgHops, 1e-9) // node1 at hop1, node2 at hop2
	assert.InDelta(t, 15.0, res.AvgLatency, 1e-9)
}

func TestScanReportsInaccessible(t *testing.T) {
	adj := map[ids.NodeID][]Edge{
		0: {{Peer: 1, Latency: 5}},
		1: {{Peer: 0, Latency: 5}},
		2: nil, // isolated
	}
	jump := func(n ids.NodeID) []Edge { return adj[n] }
	all := nodeSet(0, 1, 2)

	res := Scan(0, all, jump)
	assert.Equal(t, []ids.NodeID{2}, res.Inaccessible)
}

func TestScanPrefersFewerHopsOverCheaperLongerPath(t *testing.T) {
	// 0 reaches 2 via a direct expensive edge (1 hop) and via 1 cheaply (2 hops).
	adj := map[ids.NodeID][]Edge{
		0: {{Peer: 1, Latency: 1}, {Peer: 2, Latency: 100}},
		1: {{Peer: 2, Latency: 1}},
		2: nil,
	}
	jump := func(n ids.NodeID) []Edge { return adj[n] }
	all := nodeSet(0, 1, 2)

	res := Scan(0, all, jump)
	assert.Equal(t, 1, res.MaxHops)
	assert.Equal(t, 100.0, res.MaxLatency) // node 2 is a hop-1 arrival at 100; the cheaper 1+1 path has 2 hops
}

func TestScanSingleNodeHasNoHops(t *testing.T) {
	jump := func(n ids.NodeID) []Edge { return nil }
	res := Scan(0, nodeSet(0), jump)
	assert.Equal(t, 0, res.MaxHops)
	assert.Equal(t, 0.0, res.AvgHops)
	assert.Empty(t, res.Inaccessible)
}

func TestScanMaxHopsBoundedByNodeCount(t *testing.T) {
	// star-free worst case: a long chain of N nodes has at most N-1 hops.
	const n = 8
	adj := map[ids.NodeID][]Edge{}
	all := map[ids.NodeID]struct{}{}
	for i := 0; i < n; i++ {
		all[ids.NodeID(i)] = struct{}{}
		var edges []Edge
		if i > 0 {
			edges = append(edges, Edge{Peer: ids.NodeID(i - 1), Latency: 1})
		}
		if i < n-1 {
			edges = append(edges, Edge{Peer: ids.NodeID(i + 1), Latency: 1})
		}
		adj[ids.NodeID(i)] = edges
	}
	jump := func(id ids.NodeID) []Edge { return adj[id] }
	res := Scan(0, all, jump)
	assert.LessOrEqual(t, res.MaxHops, n-1)
	assert.Empty(t, res.Inaccessible)
}

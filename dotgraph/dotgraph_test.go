package dotgraph

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"gossipsim/sim"
)

func TestRenderHasThreeDCSubgraphs(t *testing.T) {
	s := sim.New(1)
	out := Render(s.Cluster)
	assert.Contains(t, out, "subgraph cluster0")
	assert.Contains(t, out, "subgraph cluster1")
	assert.Contains(t, out, "subgraph cluster2")
	assert.Contains(t, out, "label=DC0")
	assert.Contains(t, out, "label=DC1")
	assert.Contains(t, out, "label=DC2")
	assert.True(t, strings.HasPrefix(out, "graph G {"))
}

func TestRenderEmitsEachEstablishedEdgeOnce(t *testing.T) {
	s := sim.New(2)
	sim.AddNodes(s, 2)
	// Periodic jobs reschedule themselves forever; run a bounded span.
	for s.Scheduler.More() && s.Scheduler.Now() < 200000 {
		s.Scheduler.Next()
	}

	out := Render(s.Cluster)
	a := s.Cluster.Nodes()[0]
	b := s.Cluster.Nodes()[1]
	var higher, lower uint64
	if uint64(a.ID) > uint64(b.ID) {
		higher, lower = uint64(a.ID), uint64(b.ID)
	} else {
		higher, lower = uint64(b.ID), uint64(a.ID)
	}
	edgeLine := "n" + strconv.FormatUint(higher, 10) + " -- n" + strconv.FormatUint(lower, 10) + ";"
	backwards := "n" + strconv.FormatUint(lower, 10) + " -- n" + strconv.FormatUint(higher, 10) + ";"

	assert.Contains(t, out, edgeLine)
	assert.NotContains(t, out, backwards)
}

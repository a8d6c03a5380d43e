package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gossipsim/cluster"
	"gossipsim/ids"
)

func TestGossipPropagatesKnowledgeAcrossAConnection(t *testing.T) {
	s := New(5)
	a := s.Cluster.AddNode(s.Rng)
	b := s.Cluster.AddNode(s.Rng)
	s.Scheduler.Add(0, JobConnect{Sim: s, Origin: a.ID, Peer: b.ID})
	for s.Scheduler.More() {
		s.Scheduler.Next()
	}

	s.Scheduler.Add(0, JobGossip{Sim: s, Node: a.ID})
	for i := 0; i < 4 && s.Scheduler.More(); i++ {
		s.Scheduler.Next()
	}

	_, knowsA := b.KnownNodes()[a.ID]
	assert.True(t, knowsA, "b must learn a's self-record through one gossip round")
}

func TestGossipSnapshotIsImmuneToLaterPrepareKnowledge(t *testing.T) {
	s := New(6)
	a := s.Cluster.AddNode(s.Rng)
	b := s.Cluster.AddNode(s.Rng)
	s.Scheduler.Add(0, JobConnect{Sim: s, Origin: a.ID, Peer: b.ID})
	for s.Scheduler.More() {
		s.Scheduler.Next()
	}

	first := a.PrepareKnowledge()
	snapshot := map[ids.NodeID]cluster.KnownInfoNode{}
	for id, info := range first {
		snapshot[id] = info
	}
	versionAtSnapshot := snapshot[a.ID].InfoVersion

	a.PrepareKnowledge() // bumps self_info_version again, mutating a.knownNodes in place

	assert.Equal(t, versionAtSnapshot, snapshot[a.ID].InfoVersion, "a copied snapshot must not observe later mutation")
}

// Package sim wires the cluster, scheduler, and physical topology
// together into the job set from spec.md §4.6 and the topology
// optimizer from §4.7. Grounded on the original JobConnect.hpp,
// JobHeartbeat.hpp, JobGossip.hpp, and JobTopology.hpp, restructured
// as a single Simulator value passed to every job instead of the
// original's process-wide statics (SPEC_FULL.md §9).
package sim

import (
	"math/rand"

	"gossipsim/cluster"
	"gossipsim/ids"
	"gossipsim/physical"
	"gossipsim/rnd"
	"gossipsim/scheduler"
)

// Constants, all in microseconds unless noted (spec.md §6).
const (
	InitialConnectCount = 3
	ConnCoef            = 1.5
	ThinkInterval       = 10000
	HeartbeatInterval   = 1000
	GossipInterval      = 5000
	IntervalRandomCoef  = 1.1
)

// Simulator bundles the cluster registry, the event scheduler, and
// the shared PRNG that every job and the physical topology draw from.
type Simulator struct {
	Cluster   *cluster.Cluster
	Scheduler *scheduler.Scheduler
	Rng       *rand.Rand
}

// New returns a Simulator seeded deterministically, ready to accept
// REPL commands (spec.md §6, §8.8).
func New(seed int64) *Simulator {
	return &Simulator{
		Cluster:   cluster.New(),
		Scheduler: scheduler.New(),
		Rng:       rand.New(rand.NewSource(seed)),
	}
}

// schedule is shorthand for Scheduler.Add with a float delay, rounded
// the way the original's implicit size_t conversion truncates a
// double microsecond count toward zero.
func (s *Simulator) schedule(delay float64, event scheduler.Event) {
	s.Scheduler.Add(uint64(delay), event)
}

// pingDelay is the simulated one-way latency from `from` to `to`,
// using their physical placements. A vanished `to` degrades to
// BadPeerLatency (still jittered); a vanished `from` is a programmer
// error — every caller must have already confirmed `from` is live.
func (s *Simulator) pingDelay(from, to ids.NodeID) float64 {
	node := s.Cluster.FindNode(from)
	if node == nil {
		panic("pingDelay: origin node is not live")
	}
	var peerPhys *physical.Node
	if peer := s.Cluster.FindNode(to); peer != nil {
		peerPhys = &peer.Physical
	}
	return physical.Latency(s.Rng, &node.Physical, peerPhys)
}

// jitteredInterval applies the pessimistic lognormal jitter every
// self-rescheduling job (heartbeat, gossip, topology) uses on its own
// rescheduling interval.
func (s *Simulator) jitteredInterval(base float64) float64 {
	return base * rnd.PessimisticLogNormal(s.Rng, IntervalRandomCoef)
}

package sim

import (
	"math/rand"

	"gossipsim/ids"
)

// AddNodes implements the REPL's `add N` command (spec.md §6).
// Grounded on the original GossipModeling.cpp's addNode(num): the seed
// list is computed ONCE for the whole batch, from whatever was already
// in the cluster before this call, then shared and grown across the N
// new nodes rather than redrawn independently per node. If the cluster
// already has InitialConnectCount nodes or fewer, the seed list is
// every existing node; otherwise it's InitialConnectCount of them
// chosen at random. Each new node connects to everything currently in
// the seed list, then — only while the list is still short of
// InitialConnectCount — joins the list itself, so later nodes in the
// same batch may seed off earlier ones.
func AddNodes(sim *Simulator, n int) {
	if n <= 0 {
		return
	}

	seeds := initialSeeds(sim)

	for i := 0; i < n; i++ {
		node := sim.Cluster.AddNode(sim.Rng)

		sim.Scheduler.Add(0, JobHeartbeat{Sim: sim, Node: node.ID})
		sim.Scheduler.Add(0, JobGossip{Sim: sim, Node: node.ID})
		sim.Scheduler.Add(0, JobTopology{Sim: sim, Node: node.ID})
		for _, seed := range seeds {
			sim.Scheduler.Add(0, JobConnect{Sim: sim, Origin: node.ID, Peer: seed})
		}

		if len(seeds) < InitialConnectCount {
			seeds = append(seeds, node.ID)
		}
	}
}

// initialSeeds computes the seed list an `add N` batch starts from:
// every existing node if there are InitialConnectCount or fewer,
// otherwise InitialConnectCount of them chosen without replacement.
func initialSeeds(sim *Simulator) []ids.NodeID {
	existing := sim.Cluster.Nodes()
	if len(existing) <= InitialConnectCount {
		seeds := make([]ids.NodeID, len(existing))
		for i, node := range existing {
			seeds[i] = node.ID
		}
		return seeds
	}
	pool := make([]ids.NodeID, len(existing))
	for i, node := range existing {
		pool[i] = node.ID
	}
	return chooseSeeds(sim.Rng, pool, InitialConnectCount)
}

// chooseSeeds returns up to count distinct ids drawn uniformly from
// pool without replacement, or the whole pool if it's smaller.
func chooseSeeds(r *rand.Rand, pool []ids.NodeID, count int) []ids.NodeID {
	if len(pool) <= count {
		return pool
	}
	shuffled := append([]ids.NodeID(nil), pool...)
	r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	return shuffled[:count]
}

// DelNodes implements the REPL's `del N` command: removes N uniformly
// random nodes from the cluster. No compensating action is taken here
// directly — a departed node's surviving peers discover its absence
// and clean up through their own heartbeat jobs finding FindNode
// return nil (spec.md §4.2, §7).
func DelNodes(sim *Simulator, n int) {
	for i := 0; i < n && sim.Cluster.Count() > 0; i++ {
		sim.Cluster.DelNode(sim.Rng)
	}
}

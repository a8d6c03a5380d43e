// Package graphscan implements the BFS wave expansion used both for
// cluster-wide health statistics and for the topology optimizer's
// simulated-adjacency evaluation. Grounded on the original Utils.hpp
// scanGraph, extended with the avg_hops/avg_latency accumulators the
// richer JobTopology.hpp variant reads (see SPEC_FULL.md §1, §9.2).
package graphscan

import "gossipsim/ids"

// Edge is one hop out of a node: the peer reached and the latency of
// that hop.
type Edge struct {
	Peer    ids.NodeID
	Latency float64
}

// Jump returns the outgoing edges from a node, as seen by whatever
// adjacency source the caller is scanning (live connections for
// cluster health, or a node's known_nodes knowledge for the topology
// optimizer).
type Jump func(node ids.NodeID) []Edge

// Result is the outcome of one BFS wave scan from a single origin.
type Result struct {
	MaxHops     int
	MaxLatency  float64
	AvgHops     float64
	AvgLatency  float64
	Inaccessible []ids.NodeID
}

// Scan runs the wave expansion from origin over the adjacency
// function jump, seeding the all-nodes set of everything that must
// be considered reachable (and reporting anything missing from it in
// Inaccessible).
//
// Each round expands the current wave; ties on cumulative latency to
// the same peer keep the minimum. The round counter becomes MaxHops.
// MaxLatency is the worst cumulative latency among those
// shortest-hop-count paths, not the worst over globally shortest-
// latency paths — a deliberate simplification preserved from the
// original (SPEC_FULL.md §1, open question 1).
func Scan(origin ids.NodeID, all map[ids.NodeID]struct{}, jump Jump) Result {
	visited := map[ids.NodeID]struct{}{origin: {}}
	wave := map[ids.NodeID]float64{origin: 0}

	var res Result
	var sumHops int
	var sumLatency float64
	var reachedCount int

	for {
		next := map[ids.NodeID]float64{}
		for nodeID, curLat := range wave {
			for _, edge := range jump(nodeID) {
				if _, ok := visited[edge.Peer]; ok {
					continue
				}
				lat := curLat + edge.Latency
				if existing, ok := next[edge.Peer]; !ok || existing > lat {
					next[edge.Peer] = lat
				}
			}
		}
		if len(next) == 0 {
			break
		}
		res.MaxHops++
		for nodeID, lat := range next {
			if lat > res.MaxLatency {
				res.MaxLatency = lat
			}
			visited[nodeID] = struct{}{}
			sumHops += res.MaxHops
			sumLatency += lat
			reachedCount++
		}
		wave = next
	}

	if reachedCount > 0 {
		res.AvgHops = float64(sumHops) / float64(reachedCount)
		res.AvgLatency = sumLatency / float64(reachedCount)
	}

	for nodeID := range all {
		if _, ok := visited[nodeID]; !ok {
			res.Inaccessible = append(res.Inaccessible, nodeID)
		}
	}
	return res
}

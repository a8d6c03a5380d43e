package cluster

import (
	"math/rand"

	"gossipsim/ids"
	"gossipsim/physical"
)

// Cluster is the process-wide collection of live nodes: a vector plus
// an id-to-index map, so lookup by id and uniformly-random removal are
// both cheap. Grounded on the original ClusterBase.hpp, restructured
// as an explicit value passed around rather than a singleton
// (SPEC_FULL.md §9: explicit context over singletons).
type Cluster struct {
	nodes    []*Node
	idToIdx  map[ids.NodeID]int
	nodeIDs  ids.NodeIDGenerator
	connIDs  ids.ConnIDGenerator
	Physical *physical.Topology
}

// New returns an empty Cluster.
func New() *Cluster {
	return &Cluster{
		idToIdx:  map[ids.NodeID]int{},
		Physical: physical.New(),
	}
}

// AddNode appends a new Node with a freshly allocated id and a
// physical placement drawn from the cluster's occupancy table.
func (c *Cluster) AddNode(r *rand.Rand) *Node {
	id := c.nodeIDs.Next()
	idx := len(c.nodes)
	phys := c.Physical.Place(r)
	node := newNode(id, idx, phys, &c.connIDs)
	c.nodes = append(c.nodes, node)
	c.idToIdx[id] = idx
	return node
}

// DelNode removes a uniformly random node using the swap-with-last
// idiom, updating the index map and unregistering the removed node's
// physical cell. Returns the removed node's id; callers must not
// assume the node's established peers have been notified — the
// scheduler handles the compensating disconnects.
func (c *Cluster) DelNode(r *rand.Rand) ids.NodeID {
	idx := r.Intn(len(c.nodes))
	removed := c.nodes[idx]

	last := len(c.nodes) - 1
	c.nodes[idx] = c.nodes[last]
	c.nodes[idx].Idx = idx
	c.idToIdx[c.nodes[idx].ID] = idx
	c.nodes = c.nodes[:last]
	delete(c.idToIdx, removed.ID)

	c.Physical.Unregister(removed.Physical)
	return removed.ID
}

// FindNode returns the live node for id, or nil if it has left the
// cluster. Event handlers must treat nil as "drop this work silently"
// (spec.md §4.2, §7).
func (c *Cluster) FindNode(id ids.NodeID) *Node {
	idx, ok := c.idToIdx[id]
	if !ok {
		return nil
	}
	return c.nodes[idx]
}

// Nodes returns the live node vector. Callers must not mutate it.
func (c *Cluster) Nodes() []*Node {
	return c.nodes
}

// NodeIDs returns the set of currently live node ids, for graph scans
// that need to report which ids are inaccessible.
func (c *Cluster) NodeIDs() map[ids.NodeID]struct{} {
	set := make(map[ids.NodeID]struct{}, len(c.nodes))
	for _, n := range c.nodes {
		set[n.ID] = struct{}{}
	}
	return set
}

// Count returns the number of live nodes.
func (c *Cluster) Count() int {
	return len(c.nodes)
}

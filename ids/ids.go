// Package ids defines the opaque node and connection handles used
// throughout the simulator. Both are plain integers with a sentinel
// "unset" value, grounded on the original Types.hpp NodeId/ConnId.
package ids

import "math"

// unset is the sentinel raw value meaning "no id assigned".
const unset = math.MaxUint64

// NodeID identifies a node for the lifetime of a simulation run.
// NodeIDs are never reused: the Cluster hands them out from a
// monotonically increasing counter.
type NodeID uint64

// ZeroNode is the unset NodeID.
var ZeroNode = NodeID(unset)

// IsSet reports whether id has been assigned a real value.
func (id NodeID) IsSet() bool { return id != NodeID(unset) }

// Less orders NodeIDs by raw integer value. The original source's
// operator< compared for equality, a bug; this is the corrected
// strict order required for deterministic tie-breaks.
func (id NodeID) Less(other NodeID) bool { return id < other }

// ConnID identifies one endpoint's half of a connection. The same
// ConnID is used by both sides of a logical link.
type ConnID uint64

// ZeroConn is the unset ConnID.
var ZeroConn = ConnID(unset)

// IsSet reports whether id has been assigned a real value.
func (id ConnID) IsSet() bool { return id != ConnID(unset) }

// Less orders ConnIDs by raw integer value.
func (id ConnID) Less(other ConnID) bool { return id < other }

// NodeIDGenerator hands out fresh, never-repeating NodeIDs.
type NodeIDGenerator struct {
	next uint64
}

// Next returns the next unused NodeID.
func (g *NodeIDGenerator) Next() NodeID {
	id := NodeID(g.next)
	g.next++
	return id
}

// ConnIDGenerator hands out fresh, never-repeating ConnIDs. A single
// generator is shared by every Node in a Cluster, mirroring the
// original's process-wide `conn_id_generator` counter (ClusterBase.hpp):
// since Accept stores an incoming connection under the id its remote
// peer already allocated, two independently-counting generators would
// let unrelated peers both mint ConnId 0 and collide in a node's
// connection table.
type ConnIDGenerator struct {
	next uint64
}

// Next returns the next unused ConnID.
func (g *ConnIDGenerator) Next() ConnID {
	id := ConnID(g.next)
	g.next++
	return id
}

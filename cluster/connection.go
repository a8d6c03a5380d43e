package cluster

import (
	"gossipsim/ids"
	"gossipsim/stats"
)

// Direction records which side of a handshake a Connection represents.
type Direction int

const (
	Outgoing Direction = iota
	Incoming
)

// Status tracks a Connection's handshake progress.
type Status int

const (
	Pending Status = iota
	Established
)

// Connection is one endpoint's view of a logical link to a peer. The
// peer's own Connection object carries the same ConnID with the
// opposite Direction, per spec.md §4.3.
type Connection struct {
	ConnID    ids.ConnID
	PeerID    ids.NodeID
	Direction Direction
	Status    Status
	Latency   stats.ExpAvg
}

// IsEstablished reports whether the handshake for this connection has
// completed.
func (c *Connection) IsEstablished() bool { return c.Status == Established }

// IsIncoming reports whether this side accepted the connection.
func (c *Connection) IsIncoming() bool { return c.Direction == Incoming }

// IsOutgoing reports whether this side initiated the connection.
func (c *Connection) IsOutgoing() bool { return c.Direction == Outgoing }

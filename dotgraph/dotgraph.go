// Package dotgraph emits the DOT graph the REPL's `print` command
// produces (spec.md §6): nodes grouped into three DC-colored
// subgraphs, one undirected edge per established connection, printed
// once from its higher-id endpoint. Grounded on the original
// GossipModeling.cpp's print routine, matched field-for-field so a
// canned scenario's DOT output is byte-identical to the original's.
package dotgraph

import (
	"fmt"
	"sort"
	"strings"

	"gossipsim/cluster"
)

var dcColors = [3]string{"red", "green", "blue"}

// Render writes the DOT source for the cluster's current established
// connections.
func Render(c *cluster.Cluster) string {
	var b strings.Builder
	b.WriteString("graph G {\n")

	nodes := append([]*cluster.Node(nil), c.Nodes()...)
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID.Less(nodes[j].ID) })

	byDC := make(map[int][]*cluster.Node)
	for _, n := range nodes {
		byDC[n.Physical.DC] = append(byDC[n.Physical.DC], n)
	}
	for dc := 0; dc < len(dcColors); dc++ {
		fmt.Fprintf(&b, "  subgraph cluster%d {\n", dc)
		fmt.Fprintf(&b, "    label=DC%d\n", dc)
		fmt.Fprintf(&b, "    color=%s;\n", dcColors[dc])
		b.WriteString("    node [style=filled];\n")
		for _, n := range byDC[dc] {
			fmt.Fprintf(&b, "    n%d;\n", uint64(n.ID))
		}
		b.WriteString("  }\n")
	}

	for _, n := range nodes {
		for _, peerID := range n.EstablishedPeers() {
			// Print each undirected edge once, from the higher-id
			// endpoint, matching the original's dedup rule.
			if uint64(n.ID) < uint64(peerID) {
				continue
			}
			fmt.Fprintf(&b, "  n%d -- n%d;\n", uint64(n.ID), uint64(peerID))
		}
	}

	b.WriteString("}\n")
	return b.String()
}

// Package repl implements the interactive text command interface
// spec.md §6 specifies as an external collaborator: a loop reading
// whitespace-separated tokens from stdin and driving a Simulator.
// Grounded on the original GossipModeling.cpp main loop, trimmed to
// the four-field status line spec.md's output contract names (see
// SPEC_FULL.md §12).
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"gossipsim/clusterstatus"
	"gossipsim/dotgraph"
	"gossipsim/sim"
)

// statusInterval is how far past the last report, in virtual
// microseconds, `wait` must advance before printing another cluster
// status line (spec.md §6).
const statusInterval = 10000

// Run drives s from whitespace-separated tokens read off r, writing
// the REPL's protocol output to w, until `end`, `exit`, or EOF.
func Run(s *sim.Simulator, r io.Reader, w io.Writer) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	for scanner.Scan() {
		tok := scanner.Text()
		switch tok {
		case "add":
			n, ok := nextInt(scanner)
			if !ok {
				fmt.Fprintf(w, "unknown command %s\n", tok)
				continue
			}
			fmt.Fprintf(w, "adding %d\n", n)
			sim.AddNodes(s, n)
		case "del":
			n, ok := nextInt(scanner)
			if !ok {
				fmt.Fprintf(w, "unknown command %s\n", tok)
				continue
			}
			fmt.Fprintf(w, "deleting %d\n", n)
			sim.DelNodes(s, n)
		case "wait":
			n, ok := nextInt(scanner)
			if !ok {
				fmt.Fprintf(w, "unknown command %s\n", tok)
				continue
			}
			wait(s, w, uint64(n))
		case "print":
			fmt.Fprint(w, dotgraph.Render(s.Cluster))
		case "end", "exit":
			return
		default:
			fmt.Fprintf(w, "unknown command %s\n", tok)
		}
	}
}

// nextInt consumes the next whitespace-separated token and parses it
// as a non-negative integer argument.
func nextInt(scanner *bufio.Scanner) (int, bool) {
	if !scanner.Scan() {
		return 0, false
	}
	n, err := strconv.Atoi(scanner.Text())
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// wait advances virtual time by firing events one at a time while the
// current virtual time stays under duration past where waiting
// started, printing a status line whenever more than statusInterval
// has elapsed since the last one, and a final status line and
// "finished waiting" once it stops. Grounded on the original
// GossipModeling.cpp: the loop condition is checked before each fire,
// so the last event fired can carry virtual time past the deadline —
// preserved rather than clamped, to match the original exactly.
func wait(s *sim.Simulator, w io.Writer, duration uint64) {
	if !s.Scheduler.More() {
		fmt.Fprintln(w, "No more to do")
		return
	}
	fmt.Fprintf(w, "waiting %d microseconds\n", duration)

	start := s.Scheduler.Now()
	lastReport := start
	for s.Scheduler.More() && s.Scheduler.Now() < start+duration {
		s.Scheduler.Next()
		if s.Scheduler.Now() > lastReport+statusInterval {
			printStatus(s, w)
			lastReport = s.Scheduler.Now()
		}
	}
	printStatus(s, w)
	fmt.Fprintln(w, "finished waiting")
}

func printStatus(s *sim.Simulator, w io.Writer) {
	st := clusterstatus.Compute(s.Cluster)
	fmt.Fprintf(w, "{max_hops = %d, max_conns = %d, max_latency = %g, unknown_node_count = %d}\n",
		st.MaxHops, st.MaxConns, st.MaxLatency, st.UnknownNodeCount)
}

package scene

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// treeLog receives warnings from node operations, which have no Scene.
var treeLog = zerolog.Nop()

// debugStats holds per-frame timing metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	traverseTime time.Duration
	submitTime   time.Duration
	commandCount int
}

// debugLog writes timing and draw stats at debug level.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	s.log.Debug().
		Uint64("frame", s.frame).
		Dur("traverse", stats.traverseTime).
		Dur("submit", stats.submitTime).
		Int("commands", stats.commandCount).
		Msg("frame stats")
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("scene debug: %s on disposed node %q", op, n.Name))
	}
}

// debugMaxTreeDepth is the depth past which AddChild warns.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		treeLog.Warn().Int("depth", depth).Str("node", n.Name).Msg("tree depth exceeds threshold")
	}
}

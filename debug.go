package touch

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// debugLogger receives tree warnings from node operations, which have no
// Scene pointer. SetDebugMode points it at the scene's logger.
var debugLogger = zap.NewNop()

// inputStats holds per-frame input metrics.
// Only populated when Scene.debug is true.
type inputStats struct {
	starts       int
	moves        int
	ends         int
	cancels      int
	contacts     int
	timers       int
	dispatchTime time.Duration
}

func (st inputStats) any() bool {
	return st.starts+st.moves+st.ends+st.cancels > 0
}

// debugLog logs the frame's input stats.
func (s *Scene) debugLog(stats inputStats) {
	if !s.debug {
		return
	}
	s.log.Debug("input frame",
		zap.Int("starts", stats.starts),
		zap.Int("moves", stats.moves),
		zap.Int("ends", stats.ends),
		zap.Int("cancels", stats.cancels),
		zap.Int("contacts", stats.contacts),
		zap.Int("pendingTimers", stats.timers),
		zap.Duration("dispatch", stats.dispatchTime),
	)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode; in release mode
// callers skip this entirely.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("touch debug: %s on disposed node %q", op, n.Name))
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		debugLogger.Warn("tree depth exceeds threshold",
			zap.Int("depth", depth),
			zap.Int("threshold", debugMaxTreeDepth),
			zap.String("node", n.Name),
		)
	}
}

// debugCheckChildCount warns if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		debugLogger.Warn("child count exceeds threshold",
			zap.Int("children", len(n.children)),
			zap.Int("threshold", debugMaxChildCount),
			zap.String("node", n.Name),
		)
	}
}

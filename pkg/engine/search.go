package engine

import "fmt"

// Edge records how a state was first discovered: the action taken and the
// hash of the predecessor state. Later paths to the same state are pruned,
// not recorded, so a Graph answers reachability with one witnessing sequence
// per node, not all of them.
type Edge struct {
	Action   Action
	FromHash uint64
}

// Graph is the output of a reachability search. States appear only as their
// 64-bit hash; collected states additionally carry their full board in
// Nodes. The hash is a pruning key with an accepted collision risk, never a
// correctness oracle.
type Graph struct {
	// Start is the hash of the search root.
	Start uint64
	// Nodes holds the boards the collect predicate accepted.
	Nodes map[uint64]*Board
	// EdgesIn maps every discovered state to its first incoming edge.
	EdgesIn map[uint64]Edge
}

// CollectFunc decides whether a discovered state belongs in the result. A
// collected state is recorded and not expanded further.
type CollectFunc func(b *Board, hash uint64, ctx TurnContext) bool

// ExpandFunc restricts which actions the search follows.
type ExpandFunc func(a Action) bool

// ExpandAll follows every legal action.
func ExpandAll(Action) bool { return true }

// Search runs a breadth-first traversal of the action graph from start.
// Expansion stops at states where the controlling player changed or the game
// is decided, so the traversal stays within one turn. The breadth-first
// order guarantees that the witnessing sequence per node is a shortest one.
//
// Search never mutates start and shares no state between calls, so it is
// safe to run concurrently for different start values.
func Search(start *Board, collect CollectFunc, expand ExpandFunc) (*Graph, error) {
	return SearchBounded(start, collect, expand, 0)
}

// SearchBounded is Search with a cap on visited states. The reachable set of
// an adversarial position can be very large and the core has no cancellation
// primitive, so callers that need a deadline bound the traversal instead.
// maxVisited <= 0 means unbounded.
func SearchBounded(start *Board, collect CollectFunc, expand ExpandFunc, maxVisited int) (*Graph, error) {
	searchPlayer := start.ControllingPlayer

	root := start.Clone()
	// The repetition bookkeeping would have to be copied on every clone and
	// never matters within a single turn.
	root.Draw.resetHalfMoveCounter()

	graph := &Graph{
		Start:   root.Hash(),
		Nodes:   make(map[uint64]*Board),
		EdgesIn: make(map[uint64]Edge),
	}

	queue := []*Board{root}
	visited := 0
	for len(queue) > 0 {
		todo := queue[0]
		queue = queue[1:]
		visited++
		if maxVisited > 0 && visited > maxVisited {
			return nil, fmt.Errorf("%w: %d states", ErrSearchBudget, maxVisited)
		}

		hash := todo.Hash()
		ctx := TurnContext{
			PlayerChanged: todo.ControllingPlayer != searchPlayer,
			GameOver:      todo.Victory.IsOver(),
		}
		if collect(todo, hash, ctx) {
			graph.Nodes[hash] = todo
			// Collected states are results, not expansion frontier.
			continue
		}
		if ctx.PlayerChanged || ctx.GameOver {
			continue
		}

		actions, err := todo.Actions()
		if err != nil {
			return nil, err
		}
		for _, action := range actions {
			if !expand(action) {
				continue
			}
			next := todo.Clone()
			if err := next.ExecuteTrusted(action); err != nil {
				// The action came from Actions, failing here is a bug.
				return nil, fmt.Errorf("%w: %v: %v", ErrSearchStep, action, err)
			}
			nextHash := next.Hash()
			if _, seen := graph.EdgesIn[nextHash]; seen || nextHash == graph.Start {
				continue
			}
			graph.EdgesIn[nextHash] = Edge{Action: action, FromHash: hash}
			queue = append(queue, next)
		}
	}

	return graph, nil
}

// TraceBack follows the first-discovery edges from target back to the search
// root and returns the action sequence in execution order. It returns nil
// when the target was never discovered.
func (g *Graph) TraceBack(target uint64) []Action {
	if target == g.Start {
		return []Action{}
	}
	var trace []Action
	pivot := target
	for pivot != g.Start {
		edge, ok := g.EdgesIn[pivot]
		if !ok {
			return nil
		}
		trace = append(trace, edge.Action)
		pivot = edge.FromHash
	}
	for i, j := 0, len(trace)-1; i < j; i, j = i+1, j-1 {
		trace[i], trace[j] = trace[j], trace[i]
	}
	return trace
}

package engine

import "fmt"

// ReachableSettledStates enumerates every settled position reachable within
// the current turn: all states where control passed to the opponent or the
// game ended. This is the foundation of both Ŝako discovery and the opening
// book connection finder.
func ReachableSettledStates(start *Board) (*Graph, error) {
	return Search(start,
		func(b *Board, hash uint64, ctx TurnContext) bool {
			return ctx.PlayerChanged || ctx.GameOver
		},
		ExpandAll)
}

// FindSakoSequences finds every shortest action sequence with which the
// attacker could unite with the defending king in a single turn, regardless
// of who actually controls the board. An empty result means the defender is
// not in Ŝako.
func FindSakoSequences(start *Board, attacker PlayerColor) ([][]Action, error) {
	if start.Victory.IsOver() {
		return nil, nil
	}
	root := start.Clone()
	if root.RequiredAction.IsPromote() {
		if err := root.Execute(Promote(Queen)); err != nil {
			return nil, err
		}
	}
	if !root.IsSettled() {
		return nil, ErrBoardNotSettled
	}
	root.ControllingPlayer = attacker
	defender := attacker.Other()

	graph, err := Search(root,
		func(b *Board, hash uint64, ctx TurnContext) bool {
			return b.KingInUnion(defender)
		},
		ExpandAll)
	if err != nil {
		return nil, err
	}

	sequences := make([][]Action, 0, len(graph.Nodes))
	for hash := range graph.Nodes {
		if trace := graph.TraceBack(hash); len(trace) > 0 {
			sequences = append(sequences, trace)
		}
	}
	return sequences, nil
}

// ExecuteSequence replays a sequence of actions as the given player on a
// copy of the board. It fails with ErrNotYourTurn as soon as the player does
// not control the board, and with the underlying rule violation when an
// action is illegal. The input board is never modified.
func ExecuteSequence(start *Board, actions []Action, asPlayer PlayerColor) (*Board, error) {
	if len(actions) == 0 {
		return nil, ErrMissingInput
	}
	board := start.Clone()
	for i, action := range actions {
		if board.ControllingPlayer != asPlayer {
			return nil, fmt.Errorf("%w: action %d (%v)", ErrNotYourTurn, i, action)
		}
		if err := board.Execute(action); err != nil {
			return nil, fmt.Errorf("action %d (%v): %w", i, action, err)
		}
	}
	return board, nil
}

// FindLastCheckpointIndex replays an action log from the starting position
// and returns the index just after the last turn boundary. Everything behind
// that index belongs to the still-open turn and may be rolled back. The log
// is trusted to contain only legal actions.
func FindLastCheckpointIndex(actions []Action) (int, error) {
	board := NewBoard()
	lastCheckpoint := 0
	lastPlayer := board.ControllingPlayer

	for i, action := range actions {
		if err := board.ExecuteTrusted(action); err != nil {
			return 0, fmt.Errorf("action %d (%v): %w", i, action, err)
		}
		if board.ControllingPlayer != lastPlayer {
			lastCheckpoint = i + 1
			lastPlayer = board.ControllingPlayer
		}
	}

	// A decided game can not be rolled back at all.
	if board.Victory.IsOver() {
		return len(actions), nil
	}
	return lastCheckpoint, nil
}

package engine

import (
	"errors"
	"testing"
)

func TestReachableSettledStatesInitialPosition(t *testing.T) {
	graph, err := ReachableSettledStates(NewBoard())
	if err != nil {
		t.Fatalf("ReachableSettledStates: %v", err)
	}

	// The classic opening count: 16 pawn moves and 4 knight moves, no
	// captures available, so every move settles immediately.
	if len(graph.Nodes) != 20 {
		t.Errorf("Expected 20 settled states from the starting position, got %d", len(graph.Nodes))
	}

	for hash, board := range graph.Nodes {
		if !board.IsSettled() {
			t.Errorf("Collected state %d is not settled", hash)
		}
		if board.ControllingPlayer != Black {
			t.Errorf("Collected state %d did not pass control to black", hash)
		}
		trace := graph.TraceBack(hash)
		if len(trace) != 2 {
			t.Errorf("Expected a lift and a place per opening move, got %v", trace)
		}
	}
}

func TestTraceBackReplaysToCollectedState(t *testing.T) {
	start := NewBoard()
	graph, err := ReachableSettledStates(start)
	if err != nil {
		t.Fatalf("ReachableSettledStates: %v", err)
	}

	for hash, want := range graph.Nodes {
		trace := graph.TraceBack(hash)
		replayed := start.Clone()
		replayed.Draw.resetHalfMoveCounter()
		for _, action := range trace {
			if err := replayed.Execute(action); err != nil {
				t.Fatalf("Replaying trace %v: %v", trace, err)
			}
		}
		if !replayed.Equal(want) {
			t.Errorf("Trace %v did not reproduce the collected state", trace)
		}
	}
}

func TestTraceBackUndiscovered(t *testing.T) {
	graph, err := ReachableSettledStates(NewBoard())
	if err != nil {
		t.Fatalf("ReachableSettledStates: %v", err)
	}
	if trace := graph.TraceBack(0xdeadbeef); trace != nil {
		t.Errorf("Tracing an undiscovered hash should return nil, got %v", trace)
	}
}

func TestSearchBudgetExceeded(t *testing.T) {
	_, err := SearchBounded(NewBoard(),
		func(b *Board, hash uint64, ctx TurnContext) bool {
			return ctx.PlayerChanged || ctx.GameOver
		},
		ExpandAll, 3)
	if !errors.Is(err, ErrSearchBudget) {
		t.Errorf("Expected ErrSearchBudget, got %v", err)
	}
}

func TestSearchDoesNotMutateStart(t *testing.T) {
	start := NewBoard()
	before := start.Clone()
	if _, err := ReachableSettledStates(start); err != nil {
		t.Fatalf("ReachableSettledStates: %v", err)
	}
	if !start.Equal(before) {
		t.Error("Search must not mutate the start board")
	}
}

func TestIsSakoBishopThreatensKing(t *testing.T) {
	board := EmptyBoard()
	board.SetPiece(White, sq(t, "c4"), Bishop)
	board.SetPiece(White, sq(t, "e1"), King)
	board.SetPiece(Black, sq(t, "f7"), King)

	sako, err := IsSako(board, White)
	if err != nil {
		t.Fatalf("IsSako: %v", err)
	}
	if !sako {
		t.Error("The bishop on c4 threatens the king on f7")
	}

	sako, err = IsSako(board, Black)
	if err != nil {
		t.Fatalf("IsSako: %v", err)
	}
	if sako {
		t.Error("Black has no piece that could reach the white king")
	}
}

func TestIsSakoThroughChain(t *testing.T) {
	// The white rook cannot reach the king directly, but it can take over
	// the union on d5 and the freed knight jumps on to the king.
	board := EmptyBoard()
	board.SetPiece(White, sq(t, "d1"), Rook)
	board.SetPiece(White, sq(t, "d5"), Knight)
	board.SetPiece(Black, sq(t, "d5"), Pawn)
	board.SetPiece(White, sq(t, "a1"), King)
	board.SetPiece(Black, sq(t, "e7"), King)

	sako, err := IsSako(board, White)
	if err != nil {
		t.Fatalf("IsSako: %v", err)
	}
	if !sako {
		t.Error("The rook chain through d5 should give Ŝako")
	}
}

func TestFindSakoSequencesDirect(t *testing.T) {
	board := EmptyBoard()
	board.SetPiece(White, sq(t, "c4"), Bishop)
	board.SetPiece(White, sq(t, "e1"), King)
	board.SetPiece(Black, sq(t, "f7"), King)

	sequences, err := FindSakoSequences(board, White)
	if err != nil {
		t.Fatalf("FindSakoSequences: %v", err)
	}
	if len(sequences) != 1 {
		t.Fatalf("Expected exactly one Ŝako sequence, got %d", len(sequences))
	}

	want := []Action{Lift(sq(t, "c4")), Place(sq(t, "f7"))}
	got := sequences[0]
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Expected %v, got %v", want, got)
	}

	// The sequence must actually win when played out.
	result, err := ExecuteSequence(board, got, White)
	if err != nil {
		t.Fatalf("ExecuteSequence: %v", err)
	}
	if result.Victory != WhiteWins {
		t.Errorf("Playing the Ŝako sequence should win, got %v", result.Victory)
	}
}

func TestFindSakoSequencesNone(t *testing.T) {
	board := EmptyBoard()
	board.SetPiece(White, sq(t, "e1"), King)
	board.SetPiece(Black, sq(t, "e8"), King)

	sequences, err := FindSakoSequences(board, White)
	if err != nil {
		t.Fatalf("FindSakoSequences: %v", err)
	}
	if len(sequences) != 0 {
		t.Errorf("Two lone kings cannot give Ŝako, got %v", sequences)
	}
}

func TestExecuteSequenceWrongPlayer(t *testing.T) {
	board := NewBoard()
	_, err := ExecuteSequence(board, []Action{Lift(sq(t, "e7"))}, Black)
	if !errors.Is(err, ErrNotYourTurn) {
		t.Errorf("Expected ErrNotYourTurn, got %v", err)
	}

	_, err = ExecuteSequence(board, nil, White)
	if !errors.Is(err, ErrMissingInput) {
		t.Errorf("Expected ErrMissingInput on an empty sequence, got %v", err)
	}
}

func TestFindLastCheckpointIndex(t *testing.T) {
	actions := []Action{
		Lift(sq(t, "e2")), Place(sq(t, "e4")), // white, boundary after index 2
		Lift(sq(t, "d7")), Place(sq(t, "d5")), // black, boundary after index 4
		Lift(sq(t, "e4")), // white turn still open
	}
	index, err := FindLastCheckpointIndex(actions)
	if err != nil {
		t.Fatalf("FindLastCheckpointIndex: %v", err)
	}
	if index != 4 {
		t.Errorf("Expected checkpoint index 4, got %d", index)
	}
}

func TestFindLastCheckpointIndexEmptyLog(t *testing.T) {
	index, err := FindLastCheckpointIndex(nil)
	if err != nil {
		t.Fatalf("FindLastCheckpointIndex: %v", err)
	}
	if index != 0 {
		t.Errorf("Expected 0 for an empty log, got %d", index)
	}
}

package engine

import "testing"

func TestFormatSequenceCases(t *testing.T) {
	castleBoard := EmptyBoard()
	castleBoard.SetPiece(White, sq(t, "e1"), King)
	castleBoard.SetPiece(White, sq(t, "h1"), Rook)
	castleBoard.SetPiece(Black, sq(t, "e8"), King)
	castleBoard.Castling.WhiteKingSide = true

	promoteBoard := EmptyBoard()
	promoteBoard.SetPiece(White, sq(t, "a7"), Pawn)
	promoteBoard.SetPiece(White, sq(t, "e1"), King)
	promoteBoard.SetPiece(Black, sq(t, "e8"), King)

	unionBoard := NewBoard()
	play(t, unionBoard,
		Lift(sq(t, "e2")), Place(sq(t, "e4")),
		Lift(sq(t, "d7")), Place(sq(t, "d5")),
	)

	chainBoard := unionBoard.Clone()
	play(t, chainBoard, Lift(sq(t, "e4")), Place(sq(t, "d5")))

	cases := []struct {
		name    string
		board   *Board
		player  PlayerColor
		actions []Action
		want    string
	}{
		{
			name:    "calm pawn move",
			board:   NewBoard(),
			player:  White,
			actions: []Action{Lift(sq(t, "e2")), Place(sq(t, "e4"))},
			want:    "e2>e4",
		},
		{
			name:    "knight move",
			board:   NewBoard(),
			player:  White,
			actions: []Action{Lift(sq(t, "g1")), Place(sq(t, "f3"))},
			want:    "Ng1>f3",
		},
		{
			name:    "pawn forms union",
			board:   unionBoard,
			player:  White,
			actions: []Action{Lift(sq(t, "e4")), Place(sq(t, "d5"))},
			want:    "e4xd5",
		},
		{
			name:   "queen chains through union",
			board:  chainBoard,
			player: Black,
			actions: []Action{
				Lift(sq(t, "d8")), Place(sq(t, "d5")), Place(sq(t, "d4")),
			},
			want: "Qd8>Pd5>d4",
		},
		{
			name:    "king side castling",
			board:   castleBoard,
			player:  White,
			actions: []Action{Lift(sq(t, "e1")), Place(sq(t, "g1"))},
			want:    "0-0",
		},
		{
			name:    "promotion",
			board:   promoteBoard,
			player:  White,
			actions: []Action{Lift(sq(t, "a7")), Place(sq(t, "a8")), Promote(Queen)},
			want:    "a7>a8=Q",
		},
	}

	for _, tc := range cases {
		got, err := FormatSequence(tc.board, tc.player, tc.actions)
		if err != nil {
			t.Errorf("%s: FormatSequence: %v", tc.name, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestFormatSequenceRejectsIllegalActions(t *testing.T) {
	_, err := FormatSequence(NewBoard(), White, []Action{Lift(sq(t, "e5"))})
	if err == nil {
		t.Error("Formatting an illegal sequence should fail")
	}
}

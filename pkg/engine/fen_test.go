package engine

import (
	"errors"
	"testing"
)

func TestWriteFENInitialPosition(t *testing.T) {
	got := WriteFEN(NewBoard())
	want := "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w 0 AHah - -"
	if got != want {
		t.Errorf("WriteFEN(initial) = %q, want %q", got, want)
	}
}

func TestWriteFENEmptyBoard(t *testing.T) {
	got := WriteFEN(EmptyBoard())
	want := "8/8/8/8/8/8/8/8 w 0 - - -"
	if got != want {
		t.Errorf("WriteFEN(empty) = %q, want %q", got, want)
	}
}

func TestWriteFENAfterDoubleMove(t *testing.T) {
	board := NewBoard()
	play(t, board, Lift(sq(t, "d2")), Place(sq(t, "d4")))

	got := WriteFEN(board)
	want := "rnbqkbnr/pppppppp/8/8/3P4/8/PPP1PPPP/RNBQKBNR b 1 AHah d3 -"
	if got != want {
		t.Errorf("WriteFEN = %q, want %q", got, want)
	}
}

func TestWriteFENLiftedPiece(t *testing.T) {
	board := NewBoard()
	play(t, board, Lift(sq(t, "d2")))

	got := WriteFEN(board)
	want := "rnbqkbnr/pppppppp/8/8/8/8/PPP1PPPP/RNBQKBNR^d2P w 1 AHah - -"
	if got != want {
		t.Errorf("WriteFEN = %q, want %q", got, want)
	}
}

func TestWriteFENUnionSquare(t *testing.T) {
	board := EmptyBoard()
	board.SetPiece(White, sq(t, "d5"), Pawn)
	board.SetPiece(Black, sq(t, "d5"), Queen)

	got := WriteFEN(board)
	want := "8/8/8/3f4/8/8/8/8 w 0 - - -"
	if got != want {
		t.Errorf("WriteFEN = %q, want %q", got, want)
	}
}

func TestFENRoundTrips(t *testing.T) {
	cases := []string{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w 0 AHah - -",
		"8/8/8/8/8/8/8/8 w 0 - - -",
		"rnbqkbnr/pppppppp/8/8/3P4/8/PPP1PPPP/RNBQKBNR b 1 AHah d3 -",
		"rnbqkbnr/pppppppp/8/8/8/8/PPP1PPPP/RNBQKBNR^d2P w 1 AHah - -",
		"r1bqkb1r/ppp1pppp/2n2n2/3p4/3P1B2/2N2N2/PPP1PPPP/R2QKB1R b 7 AHah - -",
		"8/8/8/3f4/8/4k3/8/4K3 b 12 - - -",
	}
	for _, fen := range cases {
		board, err := ParseFEN(fen)
		if err != nil {
			t.Errorf("ParseFEN(%q): %v", fen, err)
			continue
		}
		if got := WriteFEN(board); got != fen {
			t.Errorf("Round trip of %q produced %q", fen, got)
		}
	}
}

func TestParseFENRejectsMalformedInput(t *testing.T) {
	cases := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w 0 AHah - -",           // only 7 rows
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x 0 AHah - -",  // bad player
		"rnbqkbnr/ppppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w 0 AHah - -", // row too long
		"rnbqkbnr/ppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w 0 AHah - -",   // row too short
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w 999 AHah - -",
	}
	for _, fen := range cases {
		if _, err := ParseFEN(fen); !errors.Is(err, ErrInvalidFEN) {
			t.Errorf("ParseFEN(%q) should fail with ErrInvalidFEN, got %v", fen, err)
		}
	}
}

func TestParseFENDropsCastlingWithoutKings(t *testing.T) {
	board, err := ParseFEN("8/8/8/8/8/8/8/R3K2R w 0 AHah - -")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	// The black king is missing, so no castling survives at all.
	if board.Castling != (Castling{}) {
		t.Errorf("Castling rights should be dropped without both kings, got %+v", board.Castling)
	}
}

func TestParseFENMatchesIncrementalHash(t *testing.T) {
	board := NewBoard()
	play(t, board,
		Lift(sq(t, "e2")), Place(sq(t, "e4")),
		Lift(sq(t, "d7")), Place(sq(t, "d5")),
		Lift(sq(t, "e4")), Place(sq(t, "d5")),
	)

	decoded, err := ParseFEN(WriteFEN(board))
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if decoded.Hash() != board.Hash() {
		t.Error("Decoding a written FEN should reproduce the incremental hash")
	}
	if !decoded.Equal(board) {
		t.Error("Decoding a written FEN should reproduce the board")
	}
}

func TestParseFENLiftedPair(t *testing.T) {
	// "f" above d5 is a white queen paired with a black pawn; with black to
	// move the black pawn is the held piece.
	board, err := ParseFEN("8/8/8/8/8/8/8/8^d5f b 0 - - -")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if board.Lifted.Piece != Pawn || board.Lifted.Partner != Queen {
		t.Errorf("Expected black pawn with white queen partner, got %+v", board.Lifted)
	}
	if board.Lifted.Position != sq(t, "d5") {
		t.Errorf("Expected the hand above d5, got %v", board.Lifted.Position)
	}
	if board.RequiredAction != MustPlace {
		t.Errorf("A lifted piece forces MustPlace, got %v", board.RequiredAction)
	}
}

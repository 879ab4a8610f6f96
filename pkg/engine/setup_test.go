package engine

import (
	"testing"

	"golang.org/x/exp/rand"
)

func TestFischerRandomBoardInvariants(t *testing.T) {
	for seed := uint64(1); seed <= 50; seed++ {
		board := FischerRandomBoard(rand.New(rand.NewSource(seed)))

		counts := map[PieceType]int{}
		kingX, leftRookX, rightRookX := -1, -1, -1
		var bishopXs []int
		for x := uint8(0); x < 8; x++ {
			white := board.PieceAt(White, SquareAt(x, 0))
			black := board.PieceAt(Black, SquareAt(x, 7))
			if white != black {
				t.Fatalf("seed %d: back ranks are not mirrored at file %d", seed, x)
			}
			counts[white]++
			switch white {
			case King:
				kingX = int(x)
			case Rook:
				if leftRookX < 0 {
					leftRookX = int(x)
				} else {
					rightRookX = int(x)
				}
			case Bishop:
				bishopXs = append(bishopXs, int(x))
			}
			if board.PieceAt(White, SquareAt(x, 1)) != Pawn || board.PieceAt(Black, SquareAt(x, 6)) != Pawn {
				t.Fatalf("seed %d: missing pawn at file %d", seed, x)
			}
		}

		want := map[PieceType]int{Rook: 2, Knight: 2, Bishop: 2, Queen: 1, King: 1}
		for piece, n := range want {
			if counts[piece] != n {
				t.Fatalf("seed %d: expected %d %v, got %d", seed, n, piece, counts[piece])
			}
		}
		if !(leftRookX < kingX && kingX < rightRookX) {
			t.Errorf("seed %d: king at %d is not between the rooks (%d, %d)",
				seed, kingX, leftRookX, rightRookX)
		}
		if (bishopXs[0]+bishopXs[1])%2 == 0 {
			t.Errorf("seed %d: bishops at %v share a square color", seed, bishopXs)
		}
		if board.Castling != (Castling{}) {
			t.Errorf("seed %d: a randomized setup must not carry castling rights", seed)
		}
	}
}

func TestFischerRandomBoardIsDeterministic(t *testing.T) {
	a := FischerRandomBoard(rand.New(rand.NewSource(7)))
	b := FischerRandomBoard(rand.New(rand.NewSource(7)))
	if !a.Equal(b) {
		t.Error("The same seed should produce the same setup")
	}
}

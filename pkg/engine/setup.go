package engine

import "golang.org/x/exp/rand"

// FischerRandomBoard sets up a Chess960-style randomized back rank: the king
// between the rooks and the bishops on opposite square colors, mirrored for
// both players. Castling is not available from a randomized setup, the
// castling moves assume the classic corner layout.
func FischerRandomBoard(rng *rand.Rand) *Board {
	board := EmptyBoard()

	for x := uint8(0); x < 8; x++ {
		board.substrate.set(White, SquareAt(x, 1), Pawn)
		board.substrate.set(Black, SquareAt(x, 6), Pawn)
	}

	place := func(x uint8, piece PieceType) {
		board.substrate.set(White, SquareAt(x, 0), piece)
		board.substrate.set(Black, SquareAt(x, 7), piece)
	}

	// Rooks and king first: the king must stand between the rooks.
	leftRook := uint8(rng.Intn(6))
	king := leftRook + 1 + uint8(rng.Intn(int(6-leftRook)))
	rightRook := king + 1 + uint8(rng.Intn(int(7-king)))
	place(leftRook, Rook)
	place(king, King)
	place(rightRook, Rook)

	taken := func(x uint8) bool {
		return board.substrate.get(White, SquareAt(x, 0)) != NoPiece
	}

	// Bishops on opposite square colors.
	darkBishop := 1 + 2*uint8(rng.Intn(4))
	for taken(darkBishop) {
		darkBishop = 1 + 2*uint8(rng.Intn(4))
	}
	place(darkBishop, Bishop)
	lightBishop := 2 * uint8(rng.Intn(4))
	for taken(lightBishop) {
		lightBishop = 2 * uint8(rng.Intn(4))
	}
	place(lightBishop, Bishop)

	queen := uint8(rng.Intn(8))
	for taken(queen) {
		queen = uint8(rng.Intn(8))
	}
	place(queen, Queen)

	for x := uint8(0); x < 8; x++ {
		if !taken(x) {
			place(x, Knight)
		}
	}

	return board
}

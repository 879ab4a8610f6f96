// Package zobrist provides the process-wide random tables backing the
// incremental position hash. See https://en.wikipedia.org/wiki/Zobrist_hashing
// for an introduction.
//
// The tables are generated once from a fixed PCG seed, so the same value is
// assigned to the same (piece, color, square) triple in every process. This
// matters because hash-keyed data (notably the opening book pipeline) may be
// persisted between runs; regenerating the tables with a different seed would
// invalidate all of it.
package zobrist

import (
	"golang.org/x/exp/rand"
)

// tableSeed must never change. Changing it silently invalidates every
// persisted hash-keyed artifact.
const tableSeed = 0x9e3779b97f4a7c15

const (
	// pieceColorCount is 6 piece types times 2 colors.
	pieceColorCount = 12
	squareCount     = 64
)

var (
	// pieceSquare holds one value per (lifted, piece-color, square) triple.
	// Settled pieces use the first 12*64 entries, lifted pieces the rest.
	pieceSquare [2 * pieceColorCount * squareCount]uint64
	castling    [4]uint64
	enPassant   [squareCount]uint64
	sideToMove  uint64
)

func init() {
	rng := rand.New(rand.NewSource(tableSeed))
	for i := range pieceSquare {
		pieceSquare[i] = rng.Uint64()
	}
	for i := range castling {
		castling[i] = rng.Uint64()
	}
	for i := range enPassant {
		enPassant[i] = rng.Uint64()
	}
	sideToMove = rng.Uint64()
}

// PieceSquare returns the value for a piece of the given piece-color index
// standing on (or lifted above) a square. The pieceColor index is
// piece*2 + color, matching the layout the engine uses for its substrate.
func PieceSquare(pieceColor, square int, lifted bool) uint64 {
	idx := pieceColor*squareCount + square
	if lifted {
		idx += pieceColorCount * squareCount
	}
	return pieceSquare[idx]
}

// Castling returns the value for one of the four castling rights.
// Order: white queen side, white king side, black queen side, black king side.
func Castling(i int) uint64 {
	return castling[i]
}

// EnPassant returns the value for an en passant target square.
func EnPassant(square int) uint64 {
	return enPassant[square]
}

// SideToMove returns the value XORed in while white is to move.
func SideToMove() uint64 {
	return sideToMove
}

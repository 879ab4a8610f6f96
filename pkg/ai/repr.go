// Package ai bridges the rule engine and an external policy/value
// evaluator: it encodes positions into the evaluator's fixed-shape numeric
// form, maps actions onto policy-vector indices, and shapes the exploration
// noise added to move priors.
package ai

import "github.com/yourusername/pacoengine/pkg/engine"

// The board travels to the evaluator as 38 indices, expanded there (or by
// TensorRepresentation) into an 8x8x30 tensor:
//
//	Layers  0-11  settled pieces: (pawn..king) x (mine, opponent)
//	Layers 12-23  lifted pieces, same order
//	Layer     24  en passant square
//	Layers 25-28  castling: my queen side, my king side, theirs queen, theirs king
//	Layer     29  the no-progress clock scaled into [0, 1]
//
// "Mine" is whoever controls the board; for black the board is additionally
// flipped vertically so the evaluator always looks at the position from the
// acting player's side. The encoding is deterministic and total: the same
// position always yields the same numbers, in this process or the next one,
// because it is the contract with an independently versioned evaluator.

const (
	// IndexLength is 32 piece slots + en passant + 4 castling flags + clock.
	IndexLength = 38
	// TensorLength is the flattened 8x8x30 tensor.
	TensorLength = 8 * 8 * 30
)

// IndexRepresentation encodes the board as the 38-index form.
func IndexRepresentation(board *engine.Board) [IndexLength]uint32 {
	var out [IndexLength]uint32
	w := indexWriter{storage: &out, viewpoint: board.ControllingPlayer}

	for _, color := range [2]engine.PlayerColor{engine.White, engine.Black} {
		for tile := engine.Square(0); tile < 64; tile++ {
			if piece := board.PieceAt(color, tile); piece != engine.NoPiece {
				w.pushPiece(tile, piece, color, false)
			}
		}
	}

	if !board.Lifted.IsEmpty() {
		w.pushPiece(board.Lifted.Position, board.Lifted.Piece, board.ControllingPlayer, true)
		if board.Lifted.IsPair() {
			w.pushPiece(board.Lifted.Position, board.Lifted.Partner, board.ControllingPlayer.Other(), true)
		}
	}
	// An ordinary game has 30 to 32 pieces. Sparse setup positions are
	// padded by repeating the first slot, which only re-sets a tensor cell
	// that is already one.
	for w.n < 32 {
		w.push(out[0])
	}

	w.pushEnPassant(board.EnPassant)
	w.pushCastling(board.Castling)
	w.push(uint32(board.Draw.NoProgressHalfMoves))

	return out
}

// TensorRepresentation expands the index form into the flat 8x8x30 tensor.
func TensorRepresentation(board *engine.Board) [TensorLength]float32 {
	var out [TensorLength]float32
	repr := IndexRepresentation(board)

	// Piece slots and the en passant slot are one-hot cells.
	for i := 0; i <= 32; i++ {
		out[repr[i]] = 1.0
	}
	// Castling flags fill whole layers.
	for i := 33; i <= 36; i++ {
		if repr[i] == 1 {
			layer := (i - 8) * 64
			for j := 0; j < 64; j++ {
				out[layer+j] = 1.0
			}
		}
	}
	clock := float32(repr[37]) / 100.0
	for j := 0; j < 64; j++ {
		out[29*64+j] = clock
	}
	return out
}

type indexWriter struct {
	storage   *[IndexLength]uint32
	n         int
	viewpoint engine.PlayerColor
}

func (w *indexWriter) push(value uint32) {
	w.storage[w.n] = value
	w.n++
}

func (w *indexWriter) pushBool(value bool) {
	if value {
		w.push(1)
	} else {
		w.push(0)
	}
}

func (w *indexWriter) pushPiece(tile engine.Square, piece engine.PieceType, color engine.PlayerColor, lifted bool) {
	if w.n >= 32 {
		// Editor-built positions may exceed the 32 piece slots; extras are
		// dropped rather than corrupting the fixed shape.
		return
	}
	w.push(pieceCellIndex(w.viewpoint, tile, piece, color, lifted))
}

func (w *indexWriter) pushEnPassant(enPassant engine.Square) {
	if enPassant == engine.NoSquare {
		// Duplicate the first slot as "none".
		w.push(w.storage[0])
		return
	}
	w.push(24*64 + uint32(viewpointSquare(w.viewpoint, enPassant)))
}

func (w *indexWriter) pushCastling(c engine.Castling) {
	if w.viewpoint == engine.White {
		w.pushBool(c.WhiteQueenSide)
		w.pushBool(c.WhiteKingSide)
		w.pushBool(c.BlackQueenSide)
		w.pushBool(c.BlackKingSide)
	} else {
		w.pushBool(c.BlackQueenSide)
		w.pushBool(c.BlackKingSide)
		w.pushBool(c.WhiteQueenSide)
		w.pushBool(c.WhiteKingSide)
	}
}

// pieceCellIndex flattens (tile, piece, relative color, lifted) into the
// tensor cell index.
func pieceCellIndex(viewpoint engine.PlayerColor, tile engine.Square, piece engine.PieceType, color engine.PlayerColor, lifted bool) uint32 {
	liftIndex := uint32(0)
	if lifted {
		liftIndex = 1
	}
	colorIndex := uint32(0)
	if color != viewpoint {
		colorIndex = 1
	}
	pieceIndex := uint32(piece - engine.Pawn)
	tileIndex := uint32(viewpointSquare(viewpoint, tile))
	return tileIndex + 64*(pieceIndex+6*(colorIndex+2*liftIndex))
}

// viewpointSquare mirrors the square vertically for the black viewpoint. A
// mirror rather than a rotation, because king and queen are not placed
// symmetrically.
func viewpointSquare(viewpoint engine.PlayerColor, tile engine.Square) engine.Square {
	if viewpoint == engine.White {
		return tile
	}
	return engine.SquareAt(tile.X(), 7-tile.Y())
}

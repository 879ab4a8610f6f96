package engine

import "github.com/yourusername/pacoengine/internal/zobrist"

// substrate is the piece storage of the board: one piece array per color. A
// square where both arrays hold a piece is a union square.
//
// The substrate keeps its zobrist hash up to date on every mutation, so
// hashing a board is O(1) instead of a full board scan.
type substrate struct {
	white [64]PieceType
	black [64]PieceType
	hash  uint64
}

// pieceColorIndex maps a (piece, color) pair into the zobrist table layout.
// Keeping the piece on the left turns the multiply into a shift.
func pieceColorIndex(piece PieceType, color PlayerColor) int {
	return int(piece-1)*2 + int(color)
}

func (s *substrate) pieces(color PlayerColor) *[64]PieceType {
	if color == White {
		return &s.white
	}
	return &s.black
}

// get returns the piece of the given color on the square, NoPiece when empty.
func (s *substrate) get(color PlayerColor, square Square) PieceType {
	return s.pieces(color)[square]
}

// hasPiece reports whether the given color occupies the square.
func (s *substrate) hasPiece(color PlayerColor, square Square) bool {
	return s.get(color, square) != NoPiece
}

// isEmpty reports whether neither color occupies the square.
func (s *substrate) isEmpty(square Square) bool {
	return s.white[square] == NoPiece && s.black[square] == NoPiece
}

// set places a piece for a color, replacing whatever was there.
func (s *substrate) set(color PlayerColor, square Square, piece PieceType) {
	arr := s.pieces(color)
	if old := arr[square]; old != NoPiece {
		s.hash ^= zobrist.PieceSquare(pieceColorIndex(old, color), int(square), false)
	}
	arr[square] = piece
	if piece != NoPiece {
		s.hash ^= zobrist.PieceSquare(pieceColorIndex(piece, color), int(square), false)
	}
}

// remove takes the piece of a color off the square and returns it.
func (s *substrate) remove(color PlayerColor, square Square) PieceType {
	arr := s.pieces(color)
	old := arr[square]
	if old != NoPiece {
		s.hash ^= zobrist.PieceSquare(pieceColorIndex(old, color), int(square), false)
		arr[square] = NoPiece
	}
	return old
}

// swap exchanges the full content of two squares, both colors included. This
// backs auxiliary movement like castling rooks and en passant resets.
func (s *substrate) swap(a, b Square) {
	wa, wb := s.white[a], s.white[b]
	ba, bb := s.black[a], s.black[b]
	s.set(White, a, wb)
	s.set(White, b, wa)
	s.set(Black, a, bb)
	s.set(Black, b, ba)
}

// bitboardColor returns the set of squares occupied by the given color.
func (s *substrate) bitboardColor(color PlayerColor) BitBoard {
	var result BitBoard
	arr := s.pieces(color)
	for i := Square(0); i < 64; i++ {
		if arr[i] != NoPiece {
			result.Insert(i)
		}
	}
	return result
}

// findKing locates the king of a color.
func (s *substrate) findKing(color PlayerColor) (Square, error) {
	arr := s.pieces(color)
	for i := Square(0); i < 64; i++ {
		if arr[i] == King {
			return i, nil
		}
	}
	return NoSquare, ErrNoKingOnBoard
}

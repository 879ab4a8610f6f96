package engine

import (
	"fmt"
	"math/bits"
	"strings"
)

// PieceType identifies a chess piece. The zero value means "no piece", which
// lets the board store plain piece arrays without an extra presence flag.
type PieceType uint8

const (
	NoPiece PieceType = iota
	Pawn
	Rook
	Knight
	Bishop
	Queen
	King
)

func (p PieceType) String() string {
	switch p {
	case Pawn:
		return "Pawn"
	case Rook:
		return "Rook"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "NoPiece"
	}
}

// letter is the algebraic notation letter of the piece. Pawns are written
// without a letter.
func (p PieceType) letter() string {
	if p == Pawn {
		return ""
	}
	return p.forceLetter()
}

// forceLetter is like letter but spells out pawns as "P", for spots in the
// notation where the piece can not be inferred.
func (p PieceType) forceLetter() string {
	switch p {
	case Pawn:
		return "P"
	case Rook:
		return "R"
	case Knight:
		return "N"
	case Bishop:
		return "B"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		return "?"
	}
}

// PlayerColor is one of the two sides.
type PlayerColor uint8

const (
	White PlayerColor = iota
	Black
)

// Other returns the opposing color.
func (c PlayerColor) Other() PlayerColor {
	return 1 - c
}

// forwardDirection is the y direction pawns of this color move in.
func (c PlayerColor) forwardDirection() int8 {
	if c == White {
		return 1
	}
	return -1
}

// homeRow is the back rank of this color, where its pieces start out.
func (c PlayerColor) homeRow() uint8 {
	if c == White {
		return 0
	}
	return 7
}

func (c PlayerColor) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Square indexes a board position. a1 is 0, b1 is 1, a2 is 8, h8 is 63.
type Square uint8

// NoSquare is the sentinel for "no square", used for optional squares like
// the en passant target.
const NoSquare Square = 64

// SquareAt builds a square from zero-based file (x) and rank (y) coordinates.
func SquareAt(x, y uint8) Square {
	return Square(x + 8*y)
}

// squareChecked is SquareAt with bounds checking for signed coordinates.
func squareChecked(x, y int8) (Square, bool) {
	if x < 0 || y < 0 || x >= 8 || y >= 8 {
		return NoSquare, false
	}
	return SquareAt(uint8(x), uint8(y)), true
}

// X is the file of the square, 0 through 7.
func (s Square) X() uint8 {
	return uint8(s) % 8
}

// Y is the rank of the square, 0 through 7.
func (s Square) Y() uint8 {
	return uint8(s) / 8
}

// Add offsets the square by (dx, dy), reporting false when that leaves the
// board.
func (s Square) Add(dx, dy int8) (Square, bool) {
	return squareChecked(int8(s.X())+dx, int8(s.Y())+dy)
}

// inPawnRow reports whether the square is on the starting pawn rank of the
// given player.
func (s Square) inPawnRow(player PlayerColor) bool {
	if player == White {
		return s.Y() == 1
	}
	return s.Y() == 6
}

// HomeRow returns the player whose back rank this square is on, if any.
func (s Square) HomeRow() (PlayerColor, bool) {
	switch s.Y() {
	case 0:
		return White, true
	case 7:
		return Black, true
	default:
		return White, false
	}
}

// advancePawn returns the square a pawn of the given color reaches by moving
// forward one step, reporting false when it would leave the board.
func (s Square) advancePawn(player PlayerColor) (Square, bool) {
	return s.Add(0, player.forwardDirection())
}

// String renders the square in algebraic notation like "d4".
func (s Square) String() string {
	if s >= NoSquare {
		return "-"
	}
	return fmt.Sprintf("%c%d", 'a'+s.X(), s.Y()+1)
}

// ParseSquare parses algebraic notation like "d4" back into a square.
func ParseSquare(text string) (Square, error) {
	if len(text) != 2 {
		return NoSquare, fmt.Errorf("%w: want a square like 'd5', got %q", ErrInvalidSquare, text)
	}
	x := strings.IndexByte("abcdefgh", text[0])
	y := strings.IndexByte("12345678", text[1])
	if x < 0 || y < 0 {
		return NoSquare, fmt.Errorf("%w: want a square like 'd5', got %q", ErrInvalidSquare, text)
	}
	return SquareAt(uint8(x), uint8(y)), nil
}

// BitBoard is a set of squares, one bit per square.
type BitBoard uint64

// Contains reports whether the square is in the set.
func (b BitBoard) Contains(s Square) bool {
	return b&(1<<uint(s)) != 0
}

// Insert adds a square to the set.
func (b *BitBoard) Insert(s Square) {
	*b |= 1 << uint(s)
}

// InsertAll adds every square of another set.
func (b *BitBoard) InsertAll(other BitBoard) {
	*b |= other
}

// IsEmpty reports whether the set holds no squares.
func (b BitBoard) IsEmpty() bool {
	return b == 0
}

// Len counts the squares in the set.
func (b BitBoard) Len() int {
	return bits.OnesCount64(uint64(b))
}

// Squares lists the members in ascending order.
func (b BitBoard) Squares() []Square {
	result := make([]Square, 0, b.Len())
	for rest := b; rest != 0; rest &= rest - 1 {
		result = append(result, Square(bits.TrailingZeros64(uint64(rest))))
	}
	return result
}

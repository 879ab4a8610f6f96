package engine

import "github.com/yourusername/pacoengine/internal/zobrist"

// RequiredAction is the state machine that tells the controlling player what
// kind of action must come next.
type RequiredAction uint8

const (
	// MustLift starts a turn: the controlling player picks up a piece.
	MustLift RequiredAction = iota
	// MustPlace follows a lift or a chain step: the held piece goes down.
	MustPlace
	// MustPromoteThenLift is a promotion gifted by the opponent placing a
	// pair whose partner pawn reached our home row. After promoting, the
	// regular turn starts.
	MustPromoteThenLift
	// MustPromoteThenPlace is an in-chain promotion: a pawn reached the home
	// row during a chain and the chain continues after promoting.
	MustPromoteThenPlace
	// MustPromoteThenFinish is a promotion at the end of a turn.
	MustPromoteThenFinish
)

// IsPromote reports whether the required action is one of the promotions.
func (r RequiredAction) IsPromote() bool {
	return r == MustPromoteThenLift || r == MustPromoteThenPlace || r == MustPromoteThenFinish
}

func (r RequiredAction) String() string {
	switch r {
	case MustLift:
		return "Lift"
	case MustPlace:
		return "Place"
	case MustPromoteThenLift:
		return "PromoteThenLift"
	case MustPromoteThenPlace:
		return "PromoteThenPlace"
	default:
		return "PromoteThenFinish"
	}
}

// Hand holds zero to two lifted pieces. The owner of Piece is the controlling
// player; Partner, when present, belongs to the opponent.
type Hand struct {
	Piece    PieceType // NoPiece when the hand is empty
	Partner  PieceType // NoPiece unless a pair is lifted
	Position Square    // square the hand hovers above
}

// IsEmpty reports whether nothing is lifted.
func (h Hand) IsEmpty() bool {
	return h.Piece == NoPiece
}

// IsPair reports whether a full union is lifted.
func (h Hand) IsPair() bool {
	return h.Partner != NoPiece
}

// Castling tracks the four castling rights. Rights only ever get removed.
type Castling struct {
	WhiteQueenSide bool
	WhiteKingSide  bool
	BlackQueenSide bool
	BlackKingSide  bool
}

// allCastlingRights is the initial state of a regular game.
func allCastlingRights() Castling {
	return Castling{true, true, true, true}
}

func (c *Castling) removeRightsFor(player PlayerColor) {
	if player == White {
		c.WhiteQueenSide = false
		c.WhiteKingSide = false
	} else {
		c.BlackQueenSide = false
		c.BlackKingSide = false
	}
}

// VictoryState reports how (and whether) the game ended. It is monotonic:
// once the game is over no action may change the state again.
type VictoryState uint8

const (
	Running VictoryState = iota
	WhiteWins
	BlackWins
	NoProgressDraw
	RepetitionDraw
)

// IsOver reports whether the game has ended.
func (v VictoryState) IsOver() bool {
	return v != Running
}

func (v VictoryState) String() string {
	switch v {
	case WhiteWins:
		return "White wins"
	case BlackWins:
		return "Black wins"
	case NoProgressDraw:
		return "Draw by no progress"
	case RepetitionDraw:
		return "Draw by repetition"
	default:
		return "Running"
	}
}

func unionVictory(winner PlayerColor) VictoryState {
	if winner == White {
		return WhiteWins
	}
	return BlackWins
}

// noProgressLimit is the half-move count after which the game is drawn.
// Progress means forming a new union or promoting a pawn. Unlike regular
// chess, moving a pawn forward does not count.
const noProgressLimit = 100

// defaultRepetitionLimit draws a game once a settled position was seen this
// many times.
const defaultRepetitionLimit = 3

// DrawState carries the bookkeeping for the two draw rules.
type DrawState struct {
	// NoProgressHalfMoves counts up on every lift and resets when a union
	// forms or a pawn promotes.
	NoProgressHalfMoves uint8
	// RepetitionLimit is how many sightings of a settled position draw the
	// game. Zero disables the repetition rule.
	RepetitionLimit uint8
	// seen counts settled positions by hash. Progress clears it, as no
	// earlier position can recur after progress.
	seen map[uint64]uint8
}

func (d *DrawState) halfMoveWithNoProgress() {
	d.NoProgressHalfMoves++
}

func (d *DrawState) resetHalfMoveCounter() {
	d.NoProgressHalfMoves = 0
	clear(d.seen)
}

func (d *DrawState) clone() DrawState {
	result := *d
	if len(d.seen) > 0 {
		result.seen = make(map[uint64]uint8, len(d.seen))
		for k, v := range d.seen {
			result.seen[k] = v
		}
	} else {
		result.seen = nil
	}
	return result
}

// Board is the full game state. It is mutated in place by Execute; use Clone
// before executing when the old state must stay around.
type Board struct {
	substrate         substrate
	ControllingPlayer PlayerColor
	RequiredAction    RequiredAction
	Lifted            Hand
	// EnPassant is the capture target square after a pawn double move,
	// NoSquare otherwise.
	EnPassant Square
	// Promotion is the square of a pawn waiting for promotion, NoSquare
	// otherwise.
	Promotion Square
	Castling  Castling
	Victory   VictoryState
	Draw      DrawState
}

// NewBoard sets up the regular starting position.
func NewBoard() *Board {
	board := EmptyBoard()
	board.Castling = allCastlingRights()

	backRow := [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for x := uint8(0); x < 8; x++ {
		board.substrate.set(White, SquareAt(x, 0), backRow[x])
		board.substrate.set(White, SquareAt(x, 1), Pawn)
		board.substrate.set(Black, SquareAt(x, 6), Pawn)
		board.substrate.set(Black, SquareAt(x, 7), backRow[x])
	}
	return board
}

// EmptyBoard creates a board without any pieces. Convenient for building up
// simpler positions.
func EmptyBoard() *Board {
	return &Board{
		ControllingPlayer: White,
		RequiredAction:    MustLift,
		EnPassant:         NoSquare,
		Promotion:         NoSquare,
		Victory:           Running,
		Draw:              DrawState{RepetitionLimit: defaultRepetitionLimit},
	}
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	result := *b
	result.Draw = b.Draw.clone()
	return &result
}

// Equal compares two boards. The repetition bookkeeping map is excluded, two
// boards that differ only in their recorded history are considered equal.
func (b *Board) Equal(other *Board) bool {
	return b.substrate.white == other.substrate.white &&
		b.substrate.black == other.substrate.black &&
		b.ControllingPlayer == other.ControllingPlayer &&
		b.RequiredAction == other.RequiredAction &&
		b.Lifted == other.Lifted &&
		b.EnPassant == other.EnPassant &&
		b.Promotion == other.Promotion &&
		b.Castling == other.Castling &&
		b.Victory == other.Victory &&
		b.Draw.NoProgressHalfMoves == other.Draw.NoProgressHalfMoves
}

// PieceAt returns the piece of the given color on the square, NoPiece when
// there is none.
func (b *Board) PieceAt(color PlayerColor, square Square) PieceType {
	return b.substrate.get(color, square)
}

// PiecesAt returns the white and black piece on the square at once.
func (b *Board) PiecesAt(square Square) (white, black PieceType) {
	return b.substrate.white[square], b.substrate.black[square]
}

// SetPiece places a piece directly, bypassing all rules. Intended for
// position setup and tests.
func (b *Board) SetPiece(color PlayerColor, square Square, piece PieceType) {
	b.substrate.set(color, square, piece)
}

// IsSettled reports whether no piece is lifted. Calling Actions on a settled
// board only returns lift actions.
func (b *Board) IsSettled() bool {
	return b.Lifted.IsEmpty()
}

// KingInUnion reports whether the king of the given color shares its square
// with an opponent piece.
func (b *Board) KingInUnion(color PlayerColor) bool {
	kingSquare, err := b.substrate.findKing(color)
	if err != nil {
		return false
	}
	return b.substrate.hasPiece(color.Other(), kingSquare)
}

// EnPassantCapturePossible reports whether the held piece can capture en
// passant right now. It is false when a pawn would first have to be lifted.
func (b *Board) EnPassantCapturePossible() bool {
	if b.Lifted.Piece != Pawn || b.Lifted.IsPair() || b.EnPassant == NoSquare {
		return false
	}
	forward := b.ControllingPlayer.forwardDirection()
	if left, ok := b.Lifted.Position.Add(-1, forward); ok && left == b.EnPassant {
		return true
	}
	if right, ok := b.Lifted.Position.Add(1, forward); ok && right == b.EnPassant {
		return true
	}
	return false
}

// Hash is the 64-bit state identity of the board. The substrate part is
// maintained incrementally on every mutation; the auxiliary flags are folded
// in here. Distinct states may collide, that risk is accepted by every user
// of the hash.
func (b *Board) Hash() uint64 {
	sum := b.substrate.hash

	if !b.Lifted.IsEmpty() {
		idx := pieceColorIndex(b.Lifted.Piece, b.ControllingPlayer)
		sum ^= zobrist.PieceSquare(idx, int(b.Lifted.Position), true)
		if b.Lifted.IsPair() {
			idx = pieceColorIndex(b.Lifted.Partner, b.ControllingPlayer.Other())
			sum ^= zobrist.PieceSquare(idx, int(b.Lifted.Position), true)
		}
	}

	if b.Castling.WhiteQueenSide {
		sum ^= zobrist.Castling(0)
	}
	if b.Castling.WhiteKingSide {
		sum ^= zobrist.Castling(1)
	}
	if b.Castling.BlackQueenSide {
		sum ^= zobrist.Castling(2)
	}
	if b.Castling.BlackKingSide {
		sum ^= zobrist.Castling(3)
	}

	if b.ControllingPlayer == White {
		sum ^= zobrist.SideToMove()
	}

	if b.EnPassant != NoSquare {
		sum ^= zobrist.EnPassant(int(b.EnPassant))
	}

	return sum
}

// recordPosition runs the draw checks after a turn completed and the board is
// settled again.
func recordPosition(b *Board) {
	if b.Victory != Running {
		return
	}

	if b.Draw.NoProgressHalfMoves >= noProgressLimit {
		b.Victory = NoProgressDraw
		return
	}

	if b.Draw.RepetitionLimit == 0 {
		return
	}

	if b.Draw.seen == nil {
		b.Draw.seen = make(map[uint64]uint8)
	}
	hash := b.Hash()
	b.Draw.seen[hash]++
	if b.Draw.seen[hash] >= b.Draw.RepetitionLimit {
		b.Victory = RepetitionDraw
	}
}

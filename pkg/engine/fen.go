package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// FEN codec for the union-chess variant. The format extends X-FEN with an
// alphabet for union squares and a suffix for the lifted piece:
//
//	rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w 0 AHah - -
//	<pieces>[^<square><letter>] <player> <halfmoves> <castling> <en passant> -
//
// Lowercase letters are black pieces, uppercase letters white pieces, and
// the extra letters (a, c, d, ...) encode union squares. "^d2P" appends a
// white pawn lifted above d2. The trailing "-" field is kept for
// compatibility with other implementations of the format.

// fenSquare is the full content of one square: at most one piece per color.
type fenSquare struct {
	white PieceType
	black PieceType
}

func (f fenSquare) flip() fenSquare {
	return fenSquare{white: f.black, black: f.white}
}

func (f fenSquare) isEmpty() bool {
	return f.white == NoPiece && f.black == NoPiece
}

// lowercaseSquares maps the lowercase FEN alphabet. Singles are black
// pieces; union letters pair the black piece with a white one. Uppercase
// letters mean the flipped square.
var lowercaseSquares = map[byte]fenSquare{
	'p': {NoPiece, Pawn},
	'r': {NoPiece, Rook},
	'n': {NoPiece, Knight},
	'b': {NoPiece, Bishop},
	'q': {NoPiece, Queen},
	'k': {NoPiece, King},
	'a': {Pawn, Pawn},
	'c': {Rook, Pawn},
	'd': {Knight, Pawn},
	'e': {Bishop, Pawn},
	'f': {Queen, Pawn},
	'g': {King, Pawn},
	'h': {Rook, Rook},
	'i': {Knight, Rook},
	'j': {Bishop, Rook},
	'l': {Queen, Rook},
	'm': {King, Rook},
	'o': {Knight, Knight},
	's': {Bishop, Knight},
	't': {Queen, Knight},
	'u': {King, Knight},
	'v': {Bishop, Bishop},
	'w': {Queen, Bishop},
	'x': {King, Bishop},
	'y': {Queen, Queen},
	'z': {King, Queen},
	'_': {King, King},
}

var (
	charToSquare map[byte]fenSquare
	squareToChar map[fenSquare]byte
)

func init() {
	charToSquare = make(map[byte]fenSquare, 2*len(lowercaseSquares))
	squareToChar = make(map[fenSquare]byte, 2*len(lowercaseSquares))
	for c, sq := range lowercaseSquares {
		charToSquare[c] = sq
		squareToChar[sq] = c
	}
	// Uppercase letters encode the flipped square. Lowercase wins for
	// symmetric unions, which flip onto themselves.
	for c, sq := range lowercaseSquares {
		upper := c - 'a' + 'A'
		if c == '_' {
			continue
		}
		charToSquare[upper] = sq.flip()
		if _, taken := squareToChar[sq.flip()]; !taken {
			squareToChar[sq.flip()] = upper
		}
	}
}

var fenPattern = regexp.MustCompile(
	`^((?:[a-zA-Z1-8_]+/){7}[a-zA-Z1-8_]+)(\^[a-h][1-8][a-zA-Z_])? ([wb]) ([0-9]+) ([A-H]{0,2}[a-h]{0,2}|-) ([a-h][1-8]|-) -$`)

// ParseFEN decodes the textual encoding back into a board. It fails with an
// error wrapping ErrInvalidFEN on malformed input; it never panics.
func ParseFEN(input string) (*Board, error) {
	groups := fenPattern.FindStringSubmatch(input)
	if groups == nil {
		return nil, fmt.Errorf("%w: %q does not match the fen shape", ErrInvalidFEN, input)
	}
	pieces, lifted, player, halfMoves, castling, enPassant :=
		groups[1], groups[2], groups[3], groups[4], groups[5], groups[6]

	board := EmptyBoard()

	for v, row := range strings.Split(pieces, "/") {
		h := 0
		for i := 0; i < len(row); i++ {
			c := row[i]
			if sq, ok := charToSquare[c]; ok {
				if h >= 8 {
					return nil, fmt.Errorf("%w: row %d is too long", ErrInvalidFEN, v)
				}
				position := Square(56 + h - 8*v)
				board.substrate.set(White, position, sq.white)
				board.substrate.set(Black, position, sq.black)
				h++
			} else if c >= '1' && c <= '8' {
				h += int(c - '0')
			} else {
				return nil, fmt.Errorf("%w: unknown piece symbol %q", ErrInvalidFEN, string(c))
			}
		}
		if h != 8 {
			return nil, fmt.Errorf("%w: row %d has length %d", ErrInvalidFEN, v, h)
		}
	}

	if player == "w" {
		board.ControllingPlayer = White
	} else {
		board.ControllingPlayer = Black
	}

	hand, err := parseLiftedSuffix(lifted, board.ControllingPlayer)
	if err != nil {
		return nil, err
	}
	board.Lifted = hand
	if hand.IsEmpty() {
		board.RequiredAction = MustLift
	} else {
		board.RequiredAction = MustPlace
	}

	n, err := strconv.Atoi(halfMoves)
	if err != nil || n > 255 {
		return nil, fmt.Errorf("%w: bad half move count %q", ErrInvalidFEN, halfMoves)
	}
	board.Draw.NoProgressHalfMoves = uint8(n)

	// Castling rights only make sense while both kings exist. A king may be
	// in hand rather than on the substrate.
	if board.hasBothKings() {
		board.Castling = Castling{
			WhiteQueenSide: strings.ContainsRune(castling, 'A'),
			WhiteKingSide:  strings.ContainsRune(castling, 'H'),
			BlackQueenSide: strings.ContainsRune(castling, 'a'),
			BlackKingSide:  strings.ContainsRune(castling, 'h'),
		}
	}

	if enPassant != "-" {
		s, err := ParseSquare(enPassant)
		if err != nil {
			return nil, fmt.Errorf("%w: bad en passant square %q", ErrInvalidFEN, enPassant)
		}
		board.EnPassant = s
	}

	return board, nil
}

func (b *Board) hasBothKings() bool {
	_, errW := b.substrate.findKing(White)
	_, errB := b.substrate.findKing(Black)
	if b.Lifted.Piece == King {
		if b.ControllingPlayer == White {
			errW = nil
		} else {
			errB = nil
		}
	}
	return errW == nil && errB == nil
}

// parseLiftedSuffix reads the "^d2P" part of a FEN, empty input meaning an
// empty hand.
func parseLiftedSuffix(input string, controllingPlayer PlayerColor) (Hand, error) {
	if input == "" {
		return Hand{}, nil
	}
	// The overall pattern already pinned the shape to ^<square><letter>.
	position, err := ParseSquare(input[1:3])
	if err != nil {
		return Hand{}, fmt.Errorf("%w: bad lifted square in %q", ErrInvalidFEN, input)
	}
	sq, ok := charToSquare[input[3]]
	if !ok {
		return Hand{}, fmt.Errorf("%w: bad lifted piece letter in %q", ErrInvalidFEN, input)
	}

	var piece, partner PieceType
	if controllingPlayer == White {
		piece, partner = sq.white, sq.black
	} else {
		piece, partner = sq.black, sq.white
	}
	if piece == NoPiece {
		return Hand{}, fmt.Errorf("%w: lifted square %q holds no piece of the controlling player", ErrInvalidFEN, input)
	}
	return Hand{Piece: piece, Partner: partner, Position: position}, nil
}

// WriteFEN encodes the board as text. ParseFEN(WriteFEN(b)) reproduces b for
// every reachable position that is not mid-promotion and not decided; those
// states never need to travel as FEN.
func WriteFEN(board *Board) string {
	var sb strings.Builder

	for v := 0; v <= 7; v++ {
		running := 0
		for h := 0; h <= 7; h++ {
			position := Square(56 + h - 8*v)
			white, black := board.PiecesAt(position)
			sq := fenSquare{white: white, black: black}
			if sq.isEmpty() {
				running++
				continue
			}
			if running > 0 {
				sb.WriteString(strconv.Itoa(running))
				running = 0
			}
			sb.WriteByte(squareToChar[sq])
		}
		if running > 0 {
			sb.WriteString(strconv.Itoa(running))
		}
		if v != 7 {
			sb.WriteByte('/')
		}
	}

	if !board.Lifted.IsEmpty() {
		sq := fenSquare{}
		if board.ControllingPlayer == White {
			sq.white, sq.black = board.Lifted.Piece, board.Lifted.Partner
		} else {
			sq.black, sq.white = board.Lifted.Piece, board.Lifted.Partner
		}
		sb.WriteByte('^')
		sb.WriteString(board.Lifted.Position.String())
		sb.WriteByte(squareToChar[sq])
	}

	player := "w"
	if board.ControllingPlayer == Black {
		player = "b"
	}
	fmt.Fprintf(&sb, " %s %d %s %s -",
		player, board.Draw.NoProgressHalfMoves, castlingFEN(board.Castling), board.EnPassant)

	return sb.String()
}

func castlingFEN(c Castling) string {
	var sb strings.Builder
	if c.WhiteQueenSide {
		sb.WriteByte('A')
	}
	if c.WhiteKingSide {
		sb.WriteByte('H')
	}
	if c.BlackQueenSide {
		sb.WriteByte('a')
	}
	if c.BlackKingSide {
		sb.WriteByte('h')
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

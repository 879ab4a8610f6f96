package engine

import "fmt"

// Named corner and corridor squares used by the castling rules.
const (
	sqA1 Square = 0
	sqB1 Square = 1
	sqC1 Square = 2
	sqD1 Square = 3
	sqE1 Square = 4
	sqF1 Square = 5
	sqG1 Square = 6
	sqH1 Square = 7
	sqA8 Square = 56
	sqB8 Square = 57
	sqC8 Square = 58
	sqD8 Square = 59
	sqE8 Square = 60
	sqF8 Square = 61
	sqG8 Square = 62
	sqH8 Square = 63
)

// Precomputed jump targets, indexed by square.
var (
	knightTargets [64]BitBoard
	kingTargets   [64]BitBoard
)

func init() {
	knightJumps := [8][2]int8{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingSteps := [8][2]int8{{0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}}
	for s := Square(0); s < 64; s++ {
		for _, d := range knightJumps {
			if t, ok := s.Add(d[0], d[1]); ok {
				knightTargets[s].Insert(t)
			}
		}
		for _, d := range kingSteps {
			if t, ok := s.Add(d[0], d[1]); ok {
				kingTargets[s].Insert(t)
			}
		}
	}
}

// TurnContext reports what an executed action did to the turn structure.
// Every analysis that distinguishes "my move continues" from "control passed
// to the opponent" branches on PlayerChanged, never on the action kind.
type TurnContext struct {
	// PlayerChanged is true when the action ended the acting player's turn.
	PlayerChanged bool
	// GameOver is true when the game is decided after the action.
	GameOver bool
}

// Actions lists every action that is legal right now. Executing any returned
// action with ExecuteTrusted succeeds. A decided game has no actions.
func (b *Board) Actions() ([]Action, error) {
	if b.Victory.IsOver() {
		return nil, nil
	}

	switch b.RequiredAction {
	case MustLift:
		squares, err := b.liftablePieces()
		if err != nil {
			return nil, err
		}
		return liftActions(squares), nil
	case MustPlace:
		targets, err := b.placeActions()
		if err != nil {
			return nil, err
		}
		return placeActionList(targets), nil
	default:
		return promotionOptions(), nil
	}
}

// Execute validates the action against Actions and applies it. It is the only
// way callers should advance a board they did not generate the action for.
func (b *Board) Execute(action Action) error {
	actions, err := b.Actions()
	if err != nil {
		return err
	}
	for _, a := range actions {
		if a == action {
			return b.ExecuteTrusted(action)
		}
	}
	return fmt.Errorf("%w: %v", ErrActionNotLegal, action)
}

// ExecuteTrusted applies the action without checking legality. Only call it
// with actions obtained from Actions on the same state.
func (b *Board) ExecuteTrusted(action Action) error {
	switch action.Kind {
	case KindLift:
		return b.lift(action.Target)
	case KindPlace:
		return b.place(action.Target)
	default:
		return b.promote(action.Piece)
	}
}

// ExecuteTracked is Execute plus the turn context of the applied action.
func (b *Board) ExecuteTracked(action Action) (TurnContext, error) {
	before := b.ControllingPlayer
	if err := b.Execute(action); err != nil {
		return TurnContext{}, err
	}
	return TurnContext{
		PlayerChanged: b.ControllingPlayer != before,
		GameOver:      b.Victory.IsOver(),
	}, nil
}

// liftablePieces finds all squares the controlling player may lift from. A
// piece that has no square to be placed on afterwards is not liftable, so a
// lift never strands the search in a dead end.
func (b *Board) liftablePieces() (BitBoard, error) {
	var result BitBoard
	player := b.ControllingPlayer
	for _, p := range b.substrate.bitboardColor(player).Squares() {
		piece := b.substrate.get(player, p)
		isPair := b.substrate.hasPiece(player.Other(), p)
		if piece == King {
			// A castling option implies a regular move option, so the
			// expensive castling check is skipped here.
			if !b.placeTargetsKingWithoutCastling(p).IsEmpty() {
				result.Insert(p)
			}
			continue
		}
		targets, err := b.placeTargets(p, piece, isPair)
		if err != nil {
			return 0, err
		}
		if !targets.IsEmpty() {
			result.Insert(p)
		}
	}
	return result, nil
}

// placeActions computes the targets for the currently lifted piece or pair.
func (b *Board) placeActions() (BitBoard, error) {
	if b.Lifted.IsEmpty() {
		return 0, ErrPlaceEmptyHand
	}
	return b.placeTargets(b.Lifted.Position, b.Lifted.Piece, b.Lifted.IsPair())
}

// lift picks up the piece (and its partner, if the square is a union) at the
// given square. Lifting counts against the no-progress clock right away, so
// in-chain promotions don't confuse the bookkeeping later.
func (b *Board) lift(position Square) error {
	if b.RequiredAction != MustLift {
		return fmt.Errorf("%w: required action is %v", ErrLiftNotAllowed, b.RequiredAction)
	}
	if !b.Lifted.IsEmpty() {
		return ErrLiftFullHand
	}

	player := b.ControllingPlayer
	piece := b.substrate.get(player, position)
	if piece == NoPiece {
		return ErrLiftEmptySquare
	}

	b.RequiredAction = MustPlace
	b.Draw.halfMoveWithNoProgress()

	// Lifting a rook off its corner forfeits that castling right, for the
	// owner when it moves and for the partner when it is carried along.
	if piece == Rook {
		b.forfeitRookCastling(position, player)
	}

	partner := b.substrate.get(player.Other(), position)
	if partner != NoPiece {
		if partner == Rook {
			b.forfeitRookCastling(position, player.Other())
		}
		b.Lifted = Hand{Piece: piece, Partner: partner, Position: position}
		b.substrate.remove(player.Other(), position)
	} else {
		b.Lifted = Hand{Piece: piece, Partner: NoPiece, Position: position}
	}
	b.substrate.remove(player, position)
	return nil
}

func (b *Board) forfeitRookCastling(position Square, owner PlayerColor) {
	switch {
	case owner == White && position == sqA1:
		b.Castling.WhiteQueenSide = false
	case owner == White && position == sqH1:
		b.Castling.WhiteKingSide = false
	case owner == Black && position == sqA8:
		b.Castling.BlackQueenSide = false
	case owner == Black && position == sqH8:
		b.Castling.BlackKingSide = false
	}
}

// place puts the lifted piece or pair down on the target square. This is
// where chains form, unions are created, victories are detected and turns
// end.
func (b *Board) place(target Square) error {
	if b.RequiredAction != MustPlace {
		return fmt.Errorf("%w: required action is %v", ErrPlaceNotAllowed, b.RequiredAction)
	}
	if b.Lifted.IsEmpty() {
		return ErrPlaceEmptyHand
	}
	if b.Lifted.IsPair() {
		return b.placePair(target)
	}
	return b.placeSingle(target)
}

func (b *Board) placeSingle(target Square) error {
	player := b.ControllingPlayer
	piece := b.Lifted.Piece
	source := b.Lifted.Position

	if b.isPlaceUsingEnPassant(target, piece, source) {
		b.enPassantAuxiliaryMove(target)
	}

	// A pawn reaching the opponent's home row schedules a promotion.
	if piece == Pawn {
		if owner, ok := target.HomeRow(); ok && owner == player.Other() {
			b.Promotion = target
		}
	}

	if piece == King {
		b.EnPassant = NoSquare
		return b.placeKing(source, target)
	}

	boardPiece := b.substrate.get(player, target)
	b.substrate.set(player, target, piece)

	if boardPiece != NoPiece {
		// A chain: the displaced piece moves into the hand and the same
		// player continues.
		b.Lifted = Hand{Piece: boardPiece, Partner: NoPiece, Position: target}
		if b.Promotion != NoSquare {
			b.RequiredAction = MustPromoteThenPlace
		} else {
			b.RequiredAction = MustPlace
		}
		return nil
	}

	newPartner := b.substrate.get(player.Other(), target)
	if newPartner != NoPiece {
		// A new union forms, which counts as progress.
		b.Draw.resetHalfMoveCounter()
	}

	b.EnPassant = NoSquare
	b.checkAndMarkEnPassant(piece, source, target)
	b.Lifted = Hand{}

	// Uniting with the opponent king wins the game. The king can only be
	// reached here because it is never part of an existing union.
	if newPartner == King {
		b.Victory = unionVictory(player)
	}

	if b.Promotion != NoSquare {
		b.RequiredAction = MustPromoteThenFinish
	} else {
		b.RequiredAction = MustLift
		b.ControllingPlayer = player.Other()
		recordPosition(b)
	}
	return nil
}

func (b *Board) placePair(target Square) error {
	if !b.substrate.isEmpty(target) {
		return ErrPlacePairFullSquare
	}
	player := b.ControllingPlayer
	piece := b.Lifted.Piece
	partner := b.Lifted.Partner
	source := b.Lifted.Position

	b.EnPassant = NoSquare
	b.checkAndMarkEnPassant(piece, source, target)

	b.substrate.set(player, target, piece)
	b.substrate.set(player.Other(), target, partner)
	b.Lifted = Hand{}

	promoteOwn := piece == Pawn && target.Y() == player.Other().homeRow()
	promotePartner := partner == Pawn && target.Y() == player.homeRow()
	switch {
	case promoteOwn:
		b.Promotion = target
		b.RequiredAction = MustPromoteThenFinish
	case promotePartner:
		// The opponent's pawn reached its home row inside the pair. The
		// opponent promotes first, then takes their regular turn.
		b.Promotion = target
		b.RequiredAction = MustPromoteThenLift
		b.ControllingPlayer = player.Other()
	default:
		b.RequiredAction = MustLift
		b.ControllingPlayer = player.Other()
		recordPosition(b)
	}
	return nil
}

// placeKing handles king placement, including the castling rook swap.
func (b *Board) placeKing(source, target Square) error {
	if rookSource, rookTarget, ok := castlingAuxiliaryMove(source, target); ok {
		if err := b.ensureCorridorClean(source, target); err != nil {
			return err
		}
		b.substrate.swap(rookSource, rookTarget)
	}

	b.substrate.set(b.ControllingPlayer, target, King)
	b.Lifted = Hand{}
	b.Castling.removeRightsFor(b.ControllingPlayer)
	b.ControllingPlayer = b.ControllingPlayer.Other()
	b.RequiredAction = MustLift

	// Moving the king never counts as progress, matching the FIDE treatment
	// of castling rights.
	recordPosition(b)
	return nil
}

// castlingAuxiliaryMove reports the rook swap a king move triggers, if it is
// a castling move.
func castlingAuxiliaryMove(kingSource, kingTarget Square) (rookSource, rookTarget Square, ok bool) {
	switch {
	case kingSource == sqE1 && kingTarget == sqC1:
		return sqA1, sqD1, true
	case kingSource == sqE1 && kingTarget == sqG1:
		return sqH1, sqF1, true
	case kingSource == sqE8 && kingTarget == sqC8:
		return sqA8, sqD8, true
	case kingSource == sqE8 && kingTarget == sqG8:
		return sqH8, sqF8, true
	default:
		return NoSquare, NoSquare, false
	}
}

// ensureCorridorClean guards against overwriting pieces between the king's
// source and target while castling.
func (b *Board) ensureCorridorClean(kingSource, kingTarget Square) error {
	lo, hi := kingSource, kingTarget
	if lo > hi {
		lo, hi = hi, lo
	}
	for s := lo + 1; s < hi; s++ {
		if !b.substrate.isEmpty(s) {
			return fmt.Errorf("%w: %v is occupied", ErrNoSpaceForKing, s)
		}
	}
	return nil
}

// checkAndMarkEnPassant stores the en passant target after a pawn double
// move.
func (b *Board) checkAndMarkEnPassant(piece PieceType, source, target Square) {
	if piece != Pawn || !source.inPawnRow(b.ControllingPlayer) {
		return
	}
	dy := int8(target.Y()) - int8(source.Y())
	if dy != 2 && dy != -2 {
		return
	}
	mid, _ := source.advancePawn(b.ControllingPlayer)
	b.EnPassant = mid
}

// isPlaceUsingEnPassant detects a pawn capturing en passant, as opposed to a
// pawn chaining out of a pair into the empty en passant square.
func (b *Board) isPlaceUsingEnPassant(target Square, piece PieceType, source Square) bool {
	if piece != Pawn || target != b.EnPassant {
		return false
	}
	straight, ok := source.advancePawn(b.ControllingPlayer)
	return !ok || straight != target
}

// enPassantAuxiliaryMove moves the captured pawn (with any partner) back onto
// the en passant square and consumes the marker so a chain can't use it
// twice.
func (b *Board) enPassantAuxiliaryMove(target Square) {
	resetFrom, _ := target.advancePawn(b.ControllingPlayer.Other())
	b.substrate.swap(target, resetFrom)
	b.EnPassant = NoSquare
}

// promote replaces the pawn scheduled for promotion with the chosen piece.
func (b *Board) promote(newType PieceType) error {
	if !b.RequiredAction.IsPromote() {
		return fmt.Errorf("%w: required action is %v", ErrPromoteNotAllowed, b.RequiredAction)
	}
	if newType == Pawn {
		return ErrPromoteToPawn
	}
	if newType == King {
		return ErrPromoteToKing
	}
	if b.Promotion == NoSquare {
		return ErrPromoteWithoutCandidate
	}

	owner := b.ControllingPlayer
	if b.substrate.get(owner, b.Promotion) != Pawn {
		return ErrPromoteNotAPawn
	}
	b.substrate.set(owner, b.Promotion, newType)
	b.Promotion = NoSquare

	// Promotion counts as progress.
	b.Draw.resetHalfMoveCounter()

	switch b.RequiredAction {
	case MustPromoteThenLift:
		b.RequiredAction = MustLift
		recordPosition(b)
	case MustPromoteThenPlace:
		b.RequiredAction = MustPlace
	default: // MustPromoteThenFinish
		b.RequiredAction = MustLift
		b.ControllingPlayer = b.ControllingPlayer.Other()
		b.EnPassant = NoSquare
		recordPosition(b)
	}
	return nil
}

// placeTargets computes all squares a piece lifted from position may be
// placed on.
func (b *Board) placeTargets(position Square, piece PieceType, isPair bool) (BitBoard, error) {
	switch piece {
	case Pawn:
		return b.placeTargetsPawn(position, isPair), nil
	case Rook:
		return b.slideTargetsAll(position, rookDirections[:], isPair, false), nil
	case Knight:
		return b.placeTargetsKnight(position, isPair, false), nil
	case Bishop:
		return b.slideTargetsAll(position, bishopDirections[:], isPair, false), nil
	case Queen:
		return b.slideTargetsAll(position, queenDirections[:], isPair, false), nil
	case King:
		return b.placeTargetsKing(position)
	default:
		return 0, ErrLiftEmptySquare
	}
}

var (
	rookDirections   = [4][2]int8{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}
	bishopDirections = [4][2]int8{{1, 1}, {-1, 1}, {1, -1}, {-1, -1}}
	queenDirections  = [8][2]int8{{0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}}
)

func (b *Board) placeTargetsPawn(position Square, isPair bool) BitBoard {
	var result BitBoard
	forward := b.ControllingPlayer.forwardDirection()

	// Striking diagonally needs a target, so a pair can never strike.
	if !isPair {
		for _, dx := range [2]int8{-1, 1} {
			if t, ok := position.Add(dx, forward); ok {
				if b.substrate.hasPiece(b.ControllingPlayer.Other(), t) || t == b.EnPassant {
					result.Insert(t)
				}
			}
		}
	}

	if step, ok := position.Add(0, forward); ok && b.substrate.isEmpty(step) {
		result.Insert(step)
		doubleAllowed := position.Y() <= 1
		if b.ControllingPlayer == Black {
			doubleAllowed = position.Y() >= 6
		}
		if doubleAllowed {
			if step2, ok := step.Add(0, forward); ok && b.substrate.isEmpty(step2) {
				result.Insert(step2)
			}
		}
	}
	return result
}

// threatPlaceTargetsPawn lists the squares a pawn threatens, which needs no
// capture target.
func (b *Board) threatPlaceTargetsPawn(position Square) BitBoard {
	var result BitBoard
	forward := b.ControllingPlayer.forwardDirection()
	for _, dx := range [2]int8{-1, 1} {
		if t, ok := position.Add(dx, forward); ok {
			result.Insert(t)
		}
	}
	return result
}

func (b *Board) placeTargetsKnight(position Square, isPair, threatDetection bool) BitBoard {
	onBoard := knightTargets[position]
	if threatDetection {
		return onBoard
	}
	var result BitBoard
	for _, t := range onBoard.Squares() {
		if isPair {
			if b.substrate.isEmpty(t) {
				result.Insert(t)
			}
		} else if b.canPlaceSingleAt(t) {
			result.Insert(t)
		}
	}
	return result
}

func (b *Board) slideTargetsAll(position Square, directions [][2]int8, isPair, threatDetection bool) BitBoard {
	var result BitBoard
	for _, d := range directions {
		result.InsertAll(b.slideTargets(position, d[0], d[1], isPair, threatDetection))
	}
	return result
}

// slideTargets walks step by step in one direction until an obstacle or the
// board edge. Whether the first obstacle is a valid target depends on pair
// and threat mode.
func (b *Board) slideTargets(start Square, dx, dy int8, isPair, threatDetection bool) BitBoard {
	var result BitBoard
	target, ok := start.Add(dx, dy)
	for ok {
		if b.substrate.isEmpty(target) {
			result.Insert(target)
			target, ok = target.Add(dx, dy)
			continue
		}
		if !isPair && b.canPlaceSingleAt(target) {
			result.Insert(target)
		} else if threatDetection {
			// A square with a lone own piece still counts as threatened.
			result.Insert(target)
		}
		break
	}
	return result
}

// canPlaceSingleAt is only false when the target holds a lone piece of the
// own color, which the lifted piece could neither join nor chain through.
func (b *Board) canPlaceSingleAt(target Square) bool {
	return b.substrate.hasPiece(b.ControllingPlayer.Other(), target) ||
		!b.substrate.hasPiece(b.ControllingPlayer, target)
}

// placeTargetsKingWithoutCastling: the king places like a pair, only onto
// empty squares.
func (b *Board) placeTargetsKingWithoutCastling(position Square) BitBoard {
	var result BitBoard
	for _, t := range kingTargets[position].Squares() {
		if b.substrate.isEmpty(t) {
			result.Insert(t)
		}
	}
	return result
}

// placeTargetsKing adds the castling targets to the regular king steps.
// Castling needs the corridor empty and the king's path free of threats.
func (b *Board) placeTargetsKing(position Square) (BitBoard, error) {
	result := b.placeTargetsKingWithoutCastling(position)

	// Threat computation is expensive, do it at most once.
	var threats BitBoard
	threatsComputed := false
	computeThreats := func() (BitBoard, error) {
		if threatsComputed {
			return threats, nil
		}
		// The king is in hand and the wrong player is active for a direct
		// threat scan, so scan a normalized clone instead.
		clone := b.Clone()
		clone.ControllingPlayer = clone.ControllingPlayer.Other()
		clone.Lifted = Hand{}
		clone.RequiredAction = MustLift
		t, err := determineAllThreats(clone)
		if err != nil {
			return 0, err
		}
		threats = t
		threatsComputed = true
		return threats, nil
	}

	type castlingOption struct {
		allowed  bool
		corridor []Square
		safe     []Square
		target   Square
	}
	var options []castlingOption
	if b.ControllingPlayer == White {
		options = []castlingOption{
			{b.Castling.WhiteQueenSide, []Square{sqB1, sqC1, sqD1}, []Square{sqC1, sqD1, sqE1}, sqC1},
			{b.Castling.WhiteKingSide, []Square{sqF1, sqG1}, []Square{sqE1, sqF1, sqG1}, sqG1},
		}
	} else {
		options = []castlingOption{
			{b.Castling.BlackQueenSide, []Square{sqB8, sqC8, sqD8}, []Square{sqC8, sqD8, sqE8}, sqC8},
			{b.Castling.BlackKingSide, []Square{sqF8, sqG8}, []Square{sqE8, sqF8, sqG8}, sqG8},
		}
	}

option:
	for _, opt := range options {
		if !opt.allowed {
			continue
		}
		for _, s := range opt.corridor {
			if !b.substrate.isEmpty(s) {
				continue option
			}
		}
		t, err := computeThreats()
		if err != nil {
			return 0, err
		}
		for _, s := range opt.safe {
			if t.Contains(s) {
				continue option
			}
		}
		result.Insert(opt.target)
	}

	return result, nil
}

package engine

import "fmt"

// ThreatActions lists the actions that threaten to capture a square. Pairs
// and king movement are excluded: the king can never join a union, so it
// cannot create, move or take over one, and it is exempt from chains.
// Movement onto an empty square that could capture is included, and so are
// actions that leave the board in a dead end.
func (b *Board) ThreatActions() []Action {
	// Promotions threaten because they can happen mid-chain.
	if b.Promotion != NoSquare {
		return promotionOptions()
	}

	if b.Lifted.IsEmpty() {
		var lifts BitBoard
		player := b.ControllingPlayer
		for _, p := range b.substrate.bitboardColor(player).Squares() {
			if b.substrate.get(player, p) != King {
				lifts.Insert(p)
			}
		}
		return liftActions(lifts)
	}

	if b.Lifted.IsPair() {
		return nil
	}
	return placeActionList(b.threatPlaceTargets(b.Lifted.Position, b.Lifted.Piece))
}

func (b *Board) threatPlaceTargets(position Square, piece PieceType) BitBoard {
	switch piece {
	case Pawn:
		return b.threatPlaceTargetsPawn(position)
	case Rook:
		return b.slideTargetsAll(position, rookDirections[:], false, true)
	case Knight:
		return b.placeTargetsKnight(position, false, true)
	case Bishop:
		return b.slideTargetsAll(position, bishopDirections[:], false, true)
	case Queen:
		return b.slideTargetsAll(position, queenDirections[:], false, true)
	default:
		// The king can not threaten.
		return 0
	}
}

// determineAllThreats finds every square the controlling player threatens,
// following all chain continuations. This is simpler than full move
// enumeration because no path bookkeeping is needed, only a visited set.
func determineAllThreats(board *Board) (BitBoard, error) {
	var threats BitBoard
	var queue []*Board
	seen := make(map[uint64]struct{})

	for _, action := range board.ThreatActions() {
		next := board.Clone()
		if err := next.ExecuteTrusted(action); err != nil {
			return 0, fmt.Errorf("%w: %v: %v", ErrSearchStep, action, err)
		}
		queue = append(queue, next)
	}

	for len(queue) > 0 {
		todo := queue[0]
		queue = queue[1:]

		for _, action := range todo.ThreatActions() {
			if s, ok := action.Position(); ok {
				threats.Insert(s)
			}
		}

		// Follow the legal continuations that keep a chain alive: places
		// onto full unions (or en passant chaining) and promotions.
		actions, err := todo.Actions()
		if err != nil {
			return 0, err
		}
		for _, action := range actions {
			switch action.Kind {
			case KindPlace:
				white, black := todo.PiecesAt(action.Target)
				if white == NoPiece || black == NoPiece {
					if !todo.EnPassantCapturePossible() {
						continue
					}
				}
			case KindPromote:
				// Promotion adds no threat but extends the chain.
			default:
				continue
			}
			next := todo.Clone()
			if err := next.ExecuteTrusted(action); err != nil {
				return 0, fmt.Errorf("%w: %v: %v", ErrSearchStep, action, err)
			}
			if next.IsSettled() {
				continue
			}
			hash := next.Hash()
			if _, ok := seen[hash]; ok {
				continue
			}
			seen[hash] = struct{}{}
			queue = append(queue, next)
		}
	}

	return threats, nil
}

// IsSako reports whether the given player threatens to unite with the
// opponent king, i.e. whether the opponent is in Ŝako. The board must be
// settled; who actually controls the board does not matter.
func IsSako(board *Board, forPlayer PlayerColor) (bool, error) {
	if board.Victory.IsOver() {
		return false, nil
	}
	clone := board.Clone()
	// A pending promotion is resolved to a queen first, so the threat scan
	// starts from a regular lift state.
	if clone.RequiredAction.IsPromote() {
		if err := clone.Execute(Promote(Queen)); err != nil {
			return false, err
		}
	}
	if !clone.IsSettled() {
		return false, ErrBoardNotSettled
	}
	clone.ControllingPlayer = forPlayer

	threats, err := determineAllThreats(clone)
	if err != nil {
		return false, err
	}
	kingSquare, err := clone.substrate.findKing(forPlayer.Other())
	if err != nil {
		return false, err
	}
	return threats.Contains(kingSquare), nil
}

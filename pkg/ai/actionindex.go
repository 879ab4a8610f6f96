package ai

import (
	"fmt"

	"github.com/yourusername/pacoengine/pkg/engine"
)

// The policy vector has one slot per possible action, indexed 1-based:
//
//	  1 ..  64  lift the piece on that square
//	 65 .. 128  place the held piece on that square
//	129 .. 132  promote to rook, knight, bishop, queen
//
// Like the board representation, squares are viewpoint relative: from the
// black viewpoint the board is mirrored vertically before indexing.

// PolicyLength is the number of distinct action slots.
const PolicyLength = 132

// ActionIndex maps an action to its policy slot from the given viewpoint.
func ActionIndex(action engine.Action, viewpoint engine.PlayerColor) uint8 {
	switch action.Kind {
	case engine.KindLift:
		return 1 + uint8(viewpointSquare(viewpoint, action.Target))
	case engine.KindPlace:
		return 65 + uint8(viewpointSquare(viewpoint, action.Target))
	default:
		switch action.Piece {
		case engine.Rook:
			return 129
		case engine.Knight:
			return 130
		case engine.Bishop:
			return 131
		default:
			return 132
		}
	}
}

// ActionFromIndex inverts ActionIndex. It fails on slots outside 1..132.
func ActionFromIndex(index uint8, viewpoint engine.PlayerColor) (engine.Action, error) {
	switch {
	case index >= 1 && index <= 64:
		return engine.Lift(viewpointSquare(viewpoint, engine.Square(index-1))), nil
	case index >= 65 && index <= 128:
		return engine.Place(viewpointSquare(viewpoint, engine.Square(index-65))), nil
	case index == 129:
		return engine.Promote(engine.Rook), nil
	case index == 130:
		return engine.Promote(engine.Knight), nil
	case index == 131:
		return engine.Promote(engine.Bishop), nil
	case index == 132:
		return engine.Promote(engine.Queen), nil
	default:
		return engine.Action{}, fmt.Errorf("%w: policy slot %d", engine.ErrInvalidAction, index)
	}
}

package engine

import (
	"fmt"
	"strings"
)

// ActionKind discriminates the three atomic actions that make up a turn.
type ActionKind uint8

const (
	KindLift ActionKind = iota
	KindPlace
	KindPromote
)

// Action is one atomic step of a turn. A full move is a sequence of actions:
// Lift(p1), Place(p2), Place(p3), ... which ends with an empty hand.
type Action struct {
	Kind   ActionKind
	Target Square    // for lift and place
	Piece  PieceType // for promote
}

// Lift picks up the piece (or pair) on the given square.
func Lift(target Square) Action {
	return Action{Kind: KindLift, Target: target}
}

// Place puts the held piece down on the given square.
func Place(target Square) Action {
	return Action{Kind: KindPlace, Target: target}
}

// Promote turns the pending promotion pawn into the given piece.
func Promote(piece PieceType) Action {
	return Action{Kind: KindPromote, Piece: piece}
}

// Position returns the square an action touches. Promotions touch no square.
func (a Action) Position() (Square, bool) {
	if a.Kind == KindPromote {
		return NoSquare, false
	}
	return a.Target, true
}

func (a Action) String() string {
	switch a.Kind {
	case KindLift:
		return fmt.Sprintf("Lift %v", a.Target)
	case KindPlace:
		return fmt.Sprintf("Place %v", a.Target)
	default:
		return fmt.Sprintf("Promote %v", a.Piece)
	}
}

// ParseAction reads the textual form produced by String, like "Lift d2" or
// "Promote Queen". Matching is case insensitive on the verb.
func ParseAction(text string) (Action, error) {
	verb, rest, found := strings.Cut(strings.TrimSpace(text), " ")
	if !found {
		return Action{}, fmt.Errorf("%w: want 'Lift d2', 'Place d4' or 'Promote Queen', got %q", ErrInvalidAction, text)
	}
	rest = strings.TrimSpace(rest)
	switch strings.ToLower(verb) {
	case "lift":
		target, err := ParseSquare(rest)
		if err != nil {
			return Action{}, fmt.Errorf("%w: %v", ErrInvalidAction, err)
		}
		return Lift(target), nil
	case "place":
		target, err := ParseSquare(rest)
		if err != nil {
			return Action{}, fmt.Errorf("%w: %v", ErrInvalidAction, err)
		}
		return Place(target), nil
	case "promote":
		switch strings.ToLower(rest) {
		case "rook", "r":
			return Promote(Rook), nil
		case "knight", "n":
			return Promote(Knight), nil
		case "bishop", "b":
			return Promote(Bishop), nil
		case "queen", "q":
			return Promote(Queen), nil
		}
		return Action{}, fmt.Errorf("%w: bad promotion piece %q", ErrInvalidAction, rest)
	}
	return Action{}, fmt.Errorf("%w: unknown action verb %q", ErrInvalidAction, verb)
}

// promotionOptions are the four actions available whenever a promotion is
// required.
func promotionOptions() []Action {
	return []Action{Promote(Rook), Promote(Knight), Promote(Bishop), Promote(Queen)}
}

// liftActions converts a set of liftable squares into actions.
func liftActions(squares BitBoard) []Action {
	result := make([]Action, 0, squares.Len())
	for _, s := range squares.Squares() {
		result = append(result, Lift(s))
	}
	return result
}

// placeActionList converts a set of place targets into actions.
func placeActionList(squares BitBoard) []Action {
	result := make([]Action, 0, squares.Len())
	for _, s := range squares.Squares() {
		result = append(result, Place(s))
	}
	return result
}

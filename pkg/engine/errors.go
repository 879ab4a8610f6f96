package engine

import "errors"

// Rule violations. These are returned when a caller asks for an action the
// rules forbid in the current state. They are safe to show to a client and
// never indicate a bug in the engine.
var (
	ErrLiftFullHand            = errors.New("lifting while already holding a piece")
	ErrLiftEmptySquare         = errors.New("lifting from an empty square")
	ErrLiftNotAllowed          = errors.New("lifting is not the required action")
	ErrPlaceEmptyHand          = errors.New("placing with an empty hand")
	ErrPlaceNotAllowed         = errors.New("placing is not the required action")
	ErrPlacePairFullSquare     = errors.New("placing a pair on an occupied square")
	ErrPromoteNotAllowed       = errors.New("promoting is not the required action")
	ErrPromoteToPawn           = errors.New("promoting to a pawn")
	ErrPromoteToKing           = errors.New("promoting to a king")
	ErrPromoteWithoutCandidate = errors.New("promoting without a promotion candidate")
	ErrPromoteNotAPawn         = errors.New("promotion square does not hold a pawn")
	ErrNoSpaceForKing          = errors.New("castling corridor is not empty")
	ErrActionNotLegal          = errors.New("action is not legal in this state")
	ErrNotYourTurn             = errors.New("acting player does not control the board")
	ErrMissingInput            = errors.New("empty action sequence")
)

// Codec errors. Returned by the FEN parser and the square/action parsers.
var (
	ErrInvalidFEN    = errors.New("malformed fen")
	ErrInvalidSquare = errors.New("malformed square")
	ErrInvalidAction = errors.New("malformed action")
)

// Analysis errors. These indicate an internal invariant was broken, for
// example when a generated action fails to execute inside a search. They are
// propagated as-is and never swallowed.
var (
	ErrNoKingOnBoard    = errors.New("no king of that color on the board")
	ErrBoardNotSettled  = errors.New("analysis requires a settled board")
	ErrSearchNotAllowed = errors.New("search player does not control the unsettled board")
	ErrSearchStep       = errors.New("generated action failed to execute")
	ErrSearchBudget     = errors.New("search visited-node budget exhausted")
)

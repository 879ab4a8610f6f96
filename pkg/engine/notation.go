package engine

import (
	"fmt"
	"strings"
)

// FormatSequence renders an action sequence in compact move notation by
// replaying it on a copy of the board as the given player. A chain reads
// like "Qd8>Pd5>d4": the lifted piece, each exchanged piece, and the final
// square. Forming a union is written with "x", promotion with "=", castling
// as "0-0" / "0-0-0".
func FormatSequence(start *Board, asPlayer PlayerColor, actions []Action) (string, error) {
	board := start.Clone()
	board.ControllingPlayer = asPlayer

	var sb strings.Builder
	var kingFrom Square = NoSquare
	for i, action := range actions {
		switch action.Kind {
		case KindLift:
			if err := board.Execute(action); err != nil {
				return "", fmt.Errorf("action %d (%v): %w", i, action, err)
			}
			if board.Lifted.IsPair() {
				sb.WriteString(board.Lifted.Piece.forceLetter())
				sb.WriteString(board.Lifted.Partner.forceLetter())
			} else {
				sb.WriteString(board.Lifted.Piece.letter())
			}
			if board.Lifted.Piece == King {
				kingFrom = action.Target
			}
			sb.WriteString(action.Target.String())

		case KindPlace:
			partner := board.PieceAt(board.ControllingPlayer.Other(), action.Target)
			wasInHand := board.Lifted.Piece
			if err := board.Execute(action); err != nil {
				return "", fmt.Errorf("action %d (%v): %w", i, action, err)
			}
			if wasInHand == King && kingFrom != NoSquare {
				if dx := int8(action.Target.X()) - int8(kingFrom.X()); dx == 2 || dx == -2 {
					// Rewrite "Ke1g1" as castling notation.
					label := "0-0"
					if dx == -2 {
						label = "0-0-0"
					}
					rewound := sb.String()
					rewound = rewound[:len(rewound)-3]
					sb.Reset()
					sb.WriteString(rewound)
					sb.WriteString(label)
					kingFrom = NoSquare
					continue
				}
				kingFrom = NoSquare
			}
			switch {
			case !board.Lifted.IsEmpty():
				// The chain continues with the exchanged piece.
				sb.WriteString(">")
				sb.WriteString(board.Lifted.Piece.forceLetter())
				sb.WriteString(action.Target.String())
			case partner != NoPiece:
				sb.WriteString("x")
				sb.WriteString(partner.letter())
				sb.WriteString(action.Target.String())
			default:
				sb.WriteString(">")
				sb.WriteString(action.Target.String())
			}

		default:
			if err := board.Execute(action); err != nil {
				return "", fmt.Errorf("action %d (%v): %w", i, action, err)
			}
			sb.WriteString("=")
			sb.WriteString(action.Piece.letter())
		}
	}
	return sb.String(), nil
}

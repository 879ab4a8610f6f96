// Package puzzle analyzes positions for teaching material: it replays a game
// record to a position and reports every forced Ŝako sequence either player
// has from there.
package puzzle

import (
	"fmt"
	"strings"

	"github.com/yourusername/pacoengine/pkg/engine"
)

// Report is the outcome of analyzing one position.
type Report struct {
	// TextSummary is a human readable rendition of the findings.
	TextSummary string `json:"text_summary"`
	// WhiteSequences and BlackSequences hold the raw winning sequences, one
	// slice of actions per distinct line.
	WhiteSequences [][]engine.Action `json:"white_sequences"`
	BlackSequences [][]engine.Action `json:"black_sequences"`
}

// Analyze replays a game record from a starting position and analyzes the
// resulting board. The replay is strict: the first illegal action fails the
// analysis with its index.
func Analyze(startFEN string, history []engine.Action) (*Report, error) {
	board, err := engine.ParseFEN(startFEN)
	if err != nil {
		return nil, err
	}
	for i, action := range history {
		if err := board.Execute(action); err != nil {
			return nil, fmt.Errorf("action %d (%v): %w", i, action, err)
		}
	}
	return AnalyzeBoard(board)
}

// AnalyzeBoard finds the Ŝako sequences of both players on a settled board.
func AnalyzeBoard(board *engine.Board) (*Report, error) {
	white, err := engine.FindSakoSequences(board, engine.White)
	if err != nil {
		return nil, err
	}
	black, err := engine.FindSakoSequences(board, engine.Black)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	if len(white) == 0 && len(black) == 0 {
		sb.WriteString("No Ŝako found.\n")
	}
	if err := writeSequences(&sb, board, engine.White, white); err != nil {
		return nil, err
	}
	if err := writeSequences(&sb, board, engine.Black, black); err != nil {
		return nil, err
	}

	return &Report{
		TextSummary:    sb.String(),
		WhiteSequences: white,
		BlackSequences: black,
	}, nil
}

func writeSequences(sb *strings.Builder, board *engine.Board, player engine.PlayerColor, sequences [][]engine.Action) error {
	if len(sequences) == 0 {
		return nil
	}
	fmt.Fprintf(sb, "Ŝako %v:\n", player)
	for _, sequence := range sequences {
		notation, err := engine.FormatSequence(board, player, sequence)
		if err != nil {
			return err
		}
		sb.WriteString(notation)
		sb.WriteString(";\n")
	}
	return nil
}

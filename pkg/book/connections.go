package book

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/yourusername/pacoengine/pkg/engine"
)

// FindConnections enriches the book in place: for every position it
// enumerates all legal moves and, whenever one lands on another book
// position, records that move with the target's position value. Afterwards
// every entry is deduplicated, so running the finder again on its own output
// changes nothing. It returns the number of connections found before
// deduplication.
func FindConnections(b Book, log zerolog.Logger) (int, error) {
	log.Info().Int("positions", len(b)).Msg("searching for book connections")

	found := 0
	for fen, entry := range b {
		board, err := engine.ParseFEN(fen)
		if err != nil {
			return found, fmt.Errorf("book entry %q: %w", fen, err)
		}

		graph, err := engine.ReachableSettledStates(board)
		if err != nil {
			return found, fmt.Errorf("book entry %q: %w", fen, err)
		}

		for hash, settled := range graph.Nodes {
			target, inBook := b[engine.WriteFEN(settled)]
			if !inBook {
				continue
			}
			trace := graph.TraceBack(hash)
			if len(trace) == 0 {
				continue
			}
			entry.SuggestedMoves = append(entry.SuggestedMoves, MoveData{
				MoveValue: target.PositionValue,
				Actions:   trace,
			})
			found++
		}
	}

	for _, entry := range b {
		entry.Deduplicate()
	}

	log.Info().Int("connections", found).Msg("book connection search done")
	return found, nil
}

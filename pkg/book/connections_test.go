package book

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/pacoengine/pkg/engine"
)

// twoPositionBook builds a book holding the starting position and the
// position after 1. e4, which is reachable from it in one move.
func twoPositionBook(t *testing.T) (Book, string, string) {
	t.Helper()

	startFEN := engine.WriteFEN(engine.NewBoard())

	after := engine.NewBoard()
	for _, action := range []engine.Action{
		engine.Lift(engine.SquareAt(4, 1)),
		engine.Place(engine.SquareAt(4, 3)),
	} {
		require.NoError(t, after.Execute(action))
	}
	afterFEN := engine.WriteFEN(after)

	return Book{
		startFEN: {PositionValue: 0.1},
		afterFEN: {PositionValue: -0.2},
	}, startFEN, afterFEN
}

func TestFindConnectionsLinksBookPositions(t *testing.T) {
	b, startFEN, afterFEN := twoPositionBook(t)

	found, err := FindConnections(b, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 1, found)

	start := b[startFEN]
	require.Len(t, start.SuggestedMoves, 1)
	move := start.SuggestedMoves[0]
	// A connection carries the value of the position it reaches.
	assert.Equal(t, float32(-0.2), move.MoveValue)
	assert.Equal(t, []engine.Action{
		engine.Lift(engine.SquareAt(4, 1)),
		engine.Place(engine.SquareAt(4, 3)),
	}, move.Actions)

	// The e4 position reaches nothing in this tiny book.
	assert.Empty(t, b[afterFEN].SuggestedMoves)
}

func TestFindConnectionsIsIdempotent(t *testing.T) {
	b, startFEN, _ := twoPositionBook(t)

	_, err := FindConnections(b, zerolog.Nop())
	require.NoError(t, err)
	first := len(b[startFEN].SuggestedMoves)

	_, err = FindConnections(b, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, first, len(b[startFEN].SuggestedMoves),
		"running the finder twice must not duplicate connections")
}

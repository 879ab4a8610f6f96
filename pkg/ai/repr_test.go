package ai

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/pacoengine/pkg/engine"
)

func TestIndexRepresentationInitialPosition(t *testing.T) {
	repr := IndexRepresentation(engine.NewBoard())

	want := [IndexLength]uint32{
		// White back rank and pawns, own settled layers.
		64, 129, 194, 259, 324, 197, 134, 71,
		8, 9, 10, 11, 12, 13, 14, 15,
		// Black pawns and back rank, opponent settled layers.
		432, 433, 434, 435, 436, 437, 438, 439,
		504, 569, 634, 699, 764, 637, 574, 511,
		// No en passant square: the first slot repeats.
		64,
		// All four castling rights, no half moves on the clock.
		1, 1, 1, 1, 0,
	}
	assert.Equal(t, want, repr)
}

func TestIndexRepresentationIsViewpointSymmetric(t *testing.T) {
	// The starting position is mirror symmetric, so the set of occupied
	// tensor cells is the same from both viewpoints. The slot order differs
	// because pieces are always walked white first.
	board := engine.NewBoard()
	board.ControllingPlayer = engine.Black

	white := IndexRepresentation(engine.NewBoard())
	black := IndexRepresentation(board)

	whiteSlots := append([]uint32(nil), white[:32]...)
	blackSlots := append([]uint32(nil), black[:32]...)
	slices.Sort(whiteSlots)
	slices.Sort(blackSlots)
	assert.Equal(t, whiteSlots, blackSlots,
		"the symmetric starting position should fill the same cells from both sides")
	assert.Equal(t, white[33:], black[33:],
		"castling flags and clock should agree for the symmetric position")
}

func TestIndexRepresentationLiftedPiece(t *testing.T) {
	board := engine.NewBoard()
	require.NoError(t, board.Execute(engine.Lift(engine.SquareAt(3, 1))))

	repr := IndexRepresentation(board)

	// The lifted pawn moves to the lifted-own layer: tile 11 + 64*12.
	assert.Contains(t, repr[:32], uint32(11+64*12))
	// The clock counted the lift.
	assert.Equal(t, uint32(1), repr[37])
}

func TestIndexRepresentationSparseBoardPads(t *testing.T) {
	board := engine.EmptyBoard()
	board.SetPiece(engine.White, engine.SquareAt(4, 0), engine.King)
	board.SetPiece(engine.Black, engine.SquareAt(4, 7), engine.King)

	repr := IndexRepresentation(board)

	// Two kings, then 30 repetitions of the first slot.
	first := repr[0]
	for i := 2; i < 32; i++ {
		assert.Equal(t, first, repr[i], "slot %d should repeat the first slot", i)
	}
}

func TestTensorRepresentationInitialPosition(t *testing.T) {
	tensor := TensorRepresentation(engine.NewBoard())

	ones := 0
	for _, v := range tensor[:25*64] {
		if v == 1.0 {
			ones++
		}
	}
	// 32 settled pieces; the duplicated en passant slot re-sets a cell.
	assert.Equal(t, 32, ones, "expected one tensor cell per piece")

	// All four castling layers are filled.
	for layer := 25; layer <= 28; layer++ {
		for j := 0; j < 64; j++ {
			require.Equal(t, float32(1.0), tensor[layer*64+j], "castling layer %d", layer)
		}
	}
	// The clock layer is zero at the start.
	for j := 0; j < 64; j++ {
		require.Equal(t, float32(0.0), tensor[29*64+j])
	}
}

func TestActionIndexRoundTrip(t *testing.T) {
	for _, viewpoint := range []engine.PlayerColor{engine.White, engine.Black} {
		for index := uint8(1); index <= PolicyLength; index++ {
			action, err := ActionFromIndex(index, viewpoint)
			require.NoError(t, err)
			assert.Equal(t, index, ActionIndex(action, viewpoint),
				"index %d viewpoint %v", index, viewpoint)
		}
	}

	_, err := ActionFromIndex(0, engine.White)
	assert.Error(t, err)
	_, err = ActionFromIndex(133, engine.White)
	assert.Error(t, err)
}

func TestActionIndexBlackViewpointMirrors(t *testing.T) {
	// Lifting a2 from the white viewpoint is slot 9; from the black
	// viewpoint the same slot means lifting a7.
	a2 := engine.SquareAt(0, 1)
	a7 := engine.SquareAt(0, 6)

	assert.Equal(t, uint8(9), ActionIndex(engine.Lift(a2), engine.White))
	assert.Equal(t, uint8(9), ActionIndex(engine.Lift(a7), engine.Black))

	action, err := ActionFromIndex(9, engine.Black)
	require.NoError(t, err)
	assert.Equal(t, engine.Lift(a7), action)
}

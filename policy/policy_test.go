package policy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domino14/ninuki/board"
	"github.com/domino14/ninuki/move"
)

func mustBoard(t *testing.T, size int) *board.Board {
	t.Helper()
	b, err := board.New(size)
	require.NoError(t, err)
	return b
}

func TestDecideWin(t *testing.T) {
	b := mustBoard(t, 5)
	for col := 1; col <= 4; col++ {
		b.Place(move.FromCoord(1, col, 5), board.Black)
	}
	b.SetCurrentPlayer(board.Black)
	before := b.Hash()

	action, moves, err := New(b, 0).Decide(RuleBased)
	require.NoError(t, err)
	assert.Equal(t, ActionWin, action)
	assert.Equal(t, []move.Point{move.FromCoord(1, 5, 5)}, moves)
	assert.Equal(t, before, b.Hash())
}

func TestDecideBlockWin(t *testing.T) {
	b := mustBoard(t, 5)
	for col := 1; col <= 4; col++ {
		b.Place(move.FromCoord(1, col, 5), board.Black)
	}
	b.SetCurrentPlayer(board.White)

	action, moves, err := New(b, 0).Decide(RuleBased)
	require.NoError(t, err)
	assert.Equal(t, ActionBlockWin, action)
	assert.Equal(t, []move.Point{move.FromCoord(1, 5, 5)}, moves)
}

func TestDecideOpenFour(t *testing.T) {
	b := mustBoard(t, 7)
	for col := 2; col <= 4; col++ {
		b.Place(move.FromCoord(3, col, 7), board.Black)
	}
	b.SetCurrentPlayer(board.Black)
	before := b.Hash()

	action, moves, err := New(b, 0).Decide(RuleBased)
	require.NoError(t, err)
	assert.Equal(t, ActionOpenFour, action)
	// only extending to E3 leaves both ends of the four open
	assert.Equal(t, []move.Point{move.FromCoord(3, 5, 7)}, moves)
	assert.Equal(t, before, b.Hash())
}

func TestDecideBlockOpenFour(t *testing.T) {
	b := mustBoard(t, 7)
	for col := 2; col <= 4; col++ {
		b.Place(move.FromCoord(3, col, 7), board.Black)
	}
	b.SetCurrentPlayer(board.White)
	before := b.Hash()

	action, moves, err := New(b, 0).Decide(RuleBased)
	require.NoError(t, err)
	assert.Equal(t, ActionBlockOpenFour, action)
	assert.Equal(t, []move.Point{
		move.FromCoord(3, 1, 7),
		move.FromCoord(3, 5, 7),
	}, moves)
	assert.Equal(t, before, b.Hash())
}

func TestDecideRandomFallback(t *testing.T) {
	b := mustBoard(t, 4)
	b.SetCurrentPlayer(board.Black)
	before := b.Hash()

	action, moves, err := New(b, 0).Decide(RuleBased)
	require.NoError(t, err)
	assert.Equal(t, ActionRandom, action)
	assert.NotEmpty(t, moves)
	for _, m := range moves {
		assert.Equal(t, board.Empty, b.Get(m))
	}
	assert.Equal(t, before, b.Hash())
}

func TestDecideRandomPolicy(t *testing.T) {
	b := mustBoard(t, 5)
	b.PlayMove(move.FromCoord(3, 3, 5), board.Black)
	before := b.Hash()

	action, moves, err := New(b, 3).Decide(Random)
	require.NoError(t, err)
	assert.Equal(t, ActionRandom, action)
	assert.NotEmpty(t, moves)
	assert.Equal(t, before, b.Hash())
}

func TestDecideInvalidPolicy(t *testing.T) {
	b := mustBoard(t, 5)
	before := b.Hash()
	_, _, err := New(b, 0).Decide("bogus")
	assert.True(t, errors.Is(err, ErrInvalidPolicy))
	assert.Equal(t, before, b.Hash())
}

func TestDecideIdempotent(t *testing.T) {
	b := mustBoard(t, 7)
	for col := 2; col <= 4; col++ {
		b.Place(move.FromCoord(3, col, 7), board.Black)
	}
	b.SetCurrentPlayer(board.Black)
	e := New(b, 0)

	a1, m1, err := e.Decide(RuleBased)
	require.NoError(t, err)
	a2, m2, err := e.Decide(RuleBased)
	require.NoError(t, err)
	assert.Equal(t, a1, a2)
	assert.Equal(t, m1, m2)
}

func TestActionStrings(t *testing.T) {
	assert.Equal(t, "Win", ActionWin.String())
	assert.Equal(t, "BlockWin", ActionBlockWin.String())
	assert.Equal(t, "OpenFour", ActionOpenFour.String())
	assert.Equal(t, "BlockOpenFour", ActionBlockOpenFour.String())
	assert.Equal(t, "Random", ActionRandom.String())
}

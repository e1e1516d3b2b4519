package board

import (
	"errors"
	"fmt"

	"github.com/cespare/xxhash"

	"github.com/domino14/ninuki/move"
)

// A Color is the content of a single board cell.
type Color uint8

const (
	Empty Color = iota
	Black
	White
	Border
)

func (c Color) String() string {
	switch c {
	case Black:
		return "b"
	case White:
		return "w"
	case Empty:
		return "e"
	}
	return "border"
}

// Opponent returns the other stone color. It is only meaningful for Black
// and White.
func (c Color) Opponent() Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	}
	return c
}

var (
	ErrBadSize  = errors.New("board size out of range")
	ErrOccupied = errors.New("cell is occupied")
)

// A Board is an N×N gomoku playing area surrounded by a one-cell sentinel
// border, flattened to a single array with stride size+1. Interior point
// indices are row*(size+1)+col for 1-based rows and columns; every other
// index holds Border. The border lets the run detectors walk off the edge
// of the playing area without bounds checks.
type Board struct {
	size          int
	cells         []Color
	currentPlayer Color
}

// New creates an empty board. Size must be in 2..move.MaxBoardSize.
func New(size int) (*Board, error) {
	b := &Board{}
	if err := b.Reset(size); err != nil {
		return nil, err
	}
	return b, nil
}

// Reset clears the board to an empty grid of the given size. Black moves
// first.
func (b *Board) Reset(size int) error {
	if size < 2 || size > move.MaxBoardSize {
		return fmt.Errorf("%w: %d", ErrBadSize, size)
	}
	ns := size + 1
	b.size = size
	b.cells = make([]Color, (size+2)*ns+1)
	for i := range b.cells {
		b.cells[i] = Border
	}
	for row := 1; row <= size; row++ {
		for col := 1; col <= size; col++ {
			b.cells[row*ns+col] = Empty
		}
	}
	b.currentPlayer = Black
	return nil
}

func (b *Board) Size() int { return b.size }

// CurrentPlayer is the color to move.
func (b *Board) CurrentPlayer() Color { return b.currentPlayer }

// SetCurrentPlayer overrides the color to move. The command layer uses this
// when a genmove/solve request names a color out of turn.
func (b *Board) SetCurrentPlayer(c Color) { b.currentPlayer = c }

// Get returns the content of a point.
func (b *Board) Get(pt move.Point) Color {
	return b.cells[pt]
}

// IsLegal reports whether color may play at pt. Pass is always legal.
func (b *Board) IsLegal(pt move.Point, color Color) bool {
	if pt == move.Pass {
		return true
	}
	if pt < 0 || int(pt) >= len(b.cells) {
		return false
	}
	return b.cells[pt] == Empty
}

// PlayMove places a stone for color and advances the current player. It
// returns false, leaving the board untouched, if the target cell is not
// empty. A Pass does not touch the grid but still flips the current player.
func (b *Board) PlayMove(pt move.Point, color Color) bool {
	if pt == move.Pass {
		b.currentPlayer = color.Opponent()
		return true
	}
	if !b.IsLegal(pt, color) {
		return false
	}
	b.cells[pt] = color
	b.currentPlayer = color.Opponent()
	return true
}

// Place writes a stone without touching the current player. It is the
// speculative half of the Place/Undo pair used by the solver and the policy
// engine; every Place must be matched by exactly one Undo before the
// enclosing call returns.
func (b *Board) Place(pt move.Point, color Color) {
	b.cells[pt] = color
}

// Undo resets a cell to empty, backtracking a speculative placement.
func (b *Board) Undo(pt move.Point) {
	b.cells[pt] = Empty
}

// EmptyPoints returns all empty interior points in row-major order. Several
// callers use "first in this order" as a tie-break, so the order is part of
// the contract.
func (b *Board) EmptyPoints() []move.Point {
	ns := b.size + 1
	pts := make([]move.Point, 0, b.size*b.size)
	for row := 1; row <= b.size; row++ {
		for col := 1; col <= b.size; col++ {
			pt := move.Point(row*ns + col)
			if b.cells[pt] == Empty {
				pts = append(pts, pt)
			}
		}
	}
	return pts
}

// NumEmpty counts the empty interior points without allocating.
func (b *Board) NumEmpty() int {
	n := 0
	ns := b.size + 1
	for row := 1; row <= b.size; row++ {
		for col := 1; col <= b.size; col++ {
			if b.cells[row*ns+col] == Empty {
				n++
			}
		}
	}
	return n
}

// directions returns the four scan axes: horizontal, vertical and the two
// diagonals, in point-index deltas.
func (b *Board) directions() [4]int {
	ns := b.size + 1
	return [4]int{1, ns, ns + 1, ns - 1}
}

// DetectFiveInARow scans every interior point for a run of five or more
// same-colored stones along any of the four axes and returns the first
// color found, or Empty. This runs once per solver node so it must not
// allocate.
func (b *Board) DetectFiveInARow() Color {
	dirs := b.directions()
	ns := b.size + 1
	for row := 1; row <= b.size; row++ {
		for col := 1; col <= b.size; col++ {
			pt := row*ns + col
			c := b.cells[pt]
			if c != Black && c != White {
				continue
			}
			for _, d := range dirs {
				run := 1
				for q := pt + d; b.cells[q] == c; q += d {
					run++
					if run == 5 {
						return c
					}
				}
			}
		}
	}
	return Empty
}

// DetectFourInARow scans for a run of exactly four same-colored stones with
// at least one empty extension cell. Only the block-open-four heuristic
// uses this.
func (b *Board) DetectFourInARow() Color {
	dirs := b.directions()
	ns := b.size + 1
	for row := 1; row <= b.size; row++ {
		for col := 1; col <= b.size; col++ {
			pt := row*ns + col
			c := b.cells[pt]
			if c != Black && c != White {
				continue
			}
			for _, d := range dirs {
				if b.cells[pt-d] == c {
					continue // not the start of the run
				}
				run := 1
				q := pt + d
				for ; b.cells[q] == c; q += d {
					run++
				}
				if run == 4 && (b.cells[pt-d] == Empty || b.cells[q] == Empty) {
					return c
				}
			}
		}
	}
	return Empty
}

// Hash is an xxhash digest of the cell contents. The solver and the policy
// engine promise to leave the board exactly as they found it; tests and
// debug assertions compare hashes across calls to enforce that.
func (b *Board) Hash() uint64 {
	buf := make([]byte, len(b.cells))
	for i, c := range b.cells {
		buf[i] = byte(c)
	}
	return xxhash.Sum64(buf)
}

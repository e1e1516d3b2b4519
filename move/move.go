package move

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxBoardSize is the largest board edge the coordinate scheme supports;
// GTP column letters run A-Z skipping I, so 25 columns.
const MaxBoardSize = 25

// columnLetters skips I, per GTP convention.
const columnLetters = "ABCDEFGHJKLMNOPQRSTUVWXYZ"

// A Point is an index into the flattened board array. Interior points are
// row*(size+1)+col for 1-based row and col.
type Point int

const (
	// Pass is the pass move sentinel; it never indexes the board array.
	Pass Point = -1
	// NoPoint marks the absence of a point, e.g. a solver result that
	// carries no recommended move.
	NoPoint Point = -2
)

var (
	ErrOutOfRange = errors.New("coordinate out of range")
)

// FromCoord converts a 1-based (row, col) pair to a Point for the given
// board size.
func FromCoord(row, col, size int) Point {
	return Point(row*(size+1) + col)
}

// ToCoord converts a Point back to its 1-based (row, col) pair.
// Pass is not convertible and must be special-cased by the caller.
func (p Point) ToCoord(size int) (row, col int) {
	ns := size + 1
	return int(p) / ns, int(p) % ns
}

// Format renders a point as a GTP coordinate such as "A1", or "PASS".
func (p Point) Format(size int) string {
	if p == Pass {
		return "PASS"
	}
	row, col := p.ToCoord(size)
	if row < 1 || row > MaxBoardSize || col < 1 || col > MaxBoardSize {
		return "??"
	}
	return string(columnLetters[col-1]) + strconv.Itoa(row)
}

// Parse converts a GTP coordinate string ("a1", "J10", "pass") into a Point
// for the given board size. The column letter I is not used.
func Parse(s string, size int) (Point, error) {
	if size < 2 || size > MaxBoardSize {
		return NoPoint, fmt.Errorf("board size %d: %w", size, ErrOutOfRange)
	}
	ls := strings.ToLower(strings.TrimSpace(s))
	if ls == "pass" {
		return Pass, nil
	}
	if len(ls) < 2 {
		return NoPoint, fmt.Errorf("invalid point %q", s)
	}
	colc := ls[0]
	if colc < 'a' || colc > 'z' || colc == 'i' {
		return NoPoint, fmt.Errorf("invalid point %q", s)
	}
	col := int(colc - 'a')
	if colc < 'i' {
		col++
	}
	row, err := strconv.Atoi(ls[1:])
	if err != nil || row < 1 {
		return NoPoint, fmt.Errorf("invalid point %q", s)
	}
	if col > size || row > size {
		return NoPoint, fmt.Errorf("%q: %w", s, ErrOutOfRange)
	}
	return FromCoord(row, col, size), nil
}

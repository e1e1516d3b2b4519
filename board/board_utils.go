package board

import (
	"strings"

	"github.com/domino14/ninuki/move"
)

// ToDisplayText returns a human-readable rendering of the board with
// column letters and row numbers, highest row first.
func (b *Board) ToDisplayText() string {
	var str strings.Builder
	ns := b.size + 1
	for row := b.size; row >= 1; row-- {
		str.WriteString(rowLabel(row))
		for col := 1; col <= b.size; col++ {
			switch b.cells[row*ns+col] {
			case Black:
				str.WriteString(" X")
			case White:
				str.WriteString(" O")
			default:
				str.WriteString(" .")
			}
		}
		str.WriteString("\n")
	}
	str.WriteString("  ")
	for col := 1; col <= b.size; col++ {
		str.WriteString(" ")
		str.WriteString(move.FromCoord(1, col, b.size).Format(b.size)[:1])
	}
	return str.String()
}

func rowLabel(row int) string {
	if row < 10 {
		return " " + string(rune('0'+row))
	}
	return string(rune('0'+row/10)) + string(rune('0'+row%10))
}

// ToRulesText renders the raw grid for gogui-rules_board: one row per line,
// highest row first, X/O/. cells with no decoration.
func (b *Board) ToRulesText() string {
	var str strings.Builder
	ns := b.size + 1
	for row := b.size; row >= 1; row-- {
		for col := 1; col <= b.size; col++ {
			switch b.cells[row*ns+col] {
			case Black:
				str.WriteString("X")
			case White:
				str.WriteString("O")
			case Empty:
				str.WriteString(".")
			}
		}
		str.WriteString("\n")
	}
	return str.String()
}

// SetFromPlaintext fills the board from a diagram of X/O/. rows, highest
// row first, as produced by ToRulesText. Intended for tests.
func (b *Board) SetFromPlaintext(diagram string) error {
	rows := []string{}
	for _, line := range strings.Split(strings.TrimSpace(diagram), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			rows = append(rows, line)
		}
	}
	if err := b.Reset(len(rows)); err != nil {
		return err
	}
	ns := b.size + 1
	for i, line := range rows {
		row := b.size - i
		for col := 1; col <= b.size && col <= len(line); col++ {
			switch line[col-1] {
			case 'X', 'x':
				b.cells[row*ns+col] = Black
			case 'O', 'o':
				b.cells[row*ns+col] = White
			}
		}
	}
	return nil
}

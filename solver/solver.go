// Package solver implements an exhaustive, deadline-bounded solver for
// gomoku positions. The search is full-width and full-depth: every empty
// point is tried at every level, with no alpha-beta pruning. It is an
// anytime search; once the deadline passes a branch resolves to Unknown
// and is never upgraded afterwards.
package solver

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/ninuki/board"
	"github.com/domino14/ninuki/move"
)

// An Outcome is the game-theoretic value the search assigns to a position.
type Outcome uint8

const (
	Unknown Outcome = iota
	BlackWins
	WhiteWins
	Draw
)

func (o Outcome) String() string {
	switch o {
	case BlackWins:
		return "b"
	case WhiteWins:
		return "w"
	case Draw:
		return "draw"
	}
	return "unknown"
}

// Winner returns the winning color, or board.Empty for draw/unknown.
func (o Outcome) Winner() board.Color {
	switch o {
	case BlackWins:
		return board.Black
	case WhiteWins:
		return board.White
	}
	return board.Empty
}

func outcomeForColor(c board.Color) Outcome {
	switch c {
	case board.Black:
		return BlackWins
	case board.White:
		return WhiteWins
	}
	return Draw
}

// A Result pairs the search outcome with an optional recommended move.
// Move is move.NoPoint when the search has no move to offer, e.g. when the
// side not on the move already holds a forced win.
type Result struct {
	Outcome Outcome
	Move    move.Point
}

// HasMove reports whether the result carries a recommended move.
func (r Result) HasMove() bool { return r.Move != move.NoPoint }

// Solver runs exhaustive searches over a borrowed board. The board is
// mutated in place during a search and restored before Solve returns; a
// Solver holds no state across calls beyond the board reference.
type Solver struct {
	b *board.Board

	// lastTried is updated at every node before the speculative placement;
	// when the search ends it holds the move tried most recently anywhere
	// in the tree, which doubles as the recommended move when no decisive
	// line was seen.
	lastTried move.Point
	// firstDecisive is the first placement anywhere in the search that
	// completed an immediate five-in-a-row; it takes precedence over
	// lastTried as the recommended move.
	firstDecisive move.Point
}

func New(b *board.Board) *Solver {
	return &Solver{b: b}
}

// Solve searches the full game tree for the current player within the
// deadline carried by ctx. If the primary search concludes the mover is
// losing, a rescue pass re-searches for a drawing line under the same
// deadline. The board and current player are unchanged on return.
func (s *Solver) Solve(ctx context.Context) Result {
	toMove := s.b.CurrentPlayer()
	started := time.Now()
	checksum := s.b.Hash()

	// A five already on the board decides the position outright; no move
	// is offered.
	if five := s.b.DetectFiveInARow(); five != board.Empty {
		return Result{Outcome: outcomeForColor(five), Move: move.NoPoint}
	}

	s.lastTried = move.NoPoint
	s.firstDecisive = move.NoPoint
	outcome := s.search(ctx, toMove)
	recommended := s.lastTried
	if s.firstDecisive != move.NoPoint {
		recommended = s.firstDecisive
	}

	if outcome.Winner() == toMove.Opponent() {
		// The mover is losing; try not to lose. The rescue pass reads the
		// same deadline and accepts a draw as a searchable outcome.
		s.lastTried = move.NoPoint
		rescue := s.searchRescue(ctx, toMove)
		if rescue != Unknown {
			outcome = rescue
			recommended = s.lastTried
		}
		// On deadline expiry the rescue pass learns nothing; the primary
		// result, a known loss, stands.
	}

	log.Debug().
		Str("to-move", toMove.String()).
		Str("outcome", outcome.String()).
		Dur("elapsed", time.Since(started)).
		Msg("solve-done")
	if s.b.Hash() != checksum {
		log.Error().Msg("solver did not restore the board")
	}
	return Result{Outcome: outcome, Move: recommended}
}

// search is the primary pass. Turn ownership is an explicit parameter;
// children are visited in board enumeration order and the loop stops at the
// first child whose result is a decisive win for either side. That early
// exit is not minimax value propagation: a win for the opponent also stops
// the scan. It trades optimality for speed and callers rely on the
// resulting tie-breaks, so it must not be "fixed" into best-child
// selection.
func (s *Solver) search(ctx context.Context, toMove board.Color) Outcome {
	if ctx.Err() != nil {
		return Unknown
	}
	empties := s.b.EmptyPoints()
	if len(empties) == 0 {
		return outcomeForColor(s.b.DetectFiveInARow())
	}
	var result Outcome
	for _, pt := range empties {
		s.lastTried = pt
		s.b.Place(pt, toMove)
		if five := s.b.DetectFiveInARow(); five != board.Empty {
			if s.firstDecisive == move.NoPoint {
				s.firstDecisive = pt
			}
		}
		result = s.search(ctx, toMove.Opponent())
		s.b.Undo(pt)
		if result == BlackWins || result == WhiteWins {
			break
		}
	}
	return result
}

// searchRescue is the rescue pass. Leaf resolution is altered: a full board
// is a win only if the color on the move at the leaf holds the five,
// anything else counts as a draw. The scan never exits early; only the
// deadline stops it, in which case Unknown propagates up.
func (s *Solver) searchRescue(ctx context.Context, toMove board.Color) Outcome {
	if ctx.Err() != nil {
		return Unknown
	}
	empties := s.b.EmptyPoints()
	if len(empties) == 0 {
		if s.b.DetectFiveInARow() == toMove {
			return outcomeForColor(toMove)
		}
		return Draw
	}
	var result Outcome
	for _, pt := range empties {
		s.b.Place(pt, toMove)
		result = s.searchRescue(ctx, toMove.Opponent())
		s.b.Undo(pt)
		s.lastTried = pt
	}
	return result
}

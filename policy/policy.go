// Package policy selects moves for real-time play. A priority cascade of
// tactical detectors runs first; if no rule fires, a shuffled rollout
// produces fallback candidates. Every rule leaves the board exactly as it
// found it.
package policy

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"lukechampine.com/frand"

	"github.com/domino14/ninuki/board"
	"github.com/domino14/ninuki/move"
)

// Policy names accepted by Decide.
const (
	RuleBased = "rule_based"
	Random    = "random"
)

// DefaultTrials is the number of rollout trials for the random fallback.
const DefaultTrials = 10

var ErrInvalidPolicy = errors.New("invalid policy")

// An Action names the cascade rule that produced a candidate set.
type Action uint8

const (
	ActionWin Action = iota
	ActionBlockWin
	ActionOpenFour
	ActionBlockOpenFour
	ActionRandom
)

func (a Action) String() string {
	switch a {
	case ActionWin:
		return "Win"
	case ActionBlockWin:
		return "BlockWin"
	case ActionOpenFour:
		return "OpenFour"
	case ActionBlockOpenFour:
		return "BlockOpenFour"
	}
	return "Random"
}

// Engine generates candidate moves over a borrowed board.
type Engine struct {
	b      *board.Board
	trials int
}

func New(b *board.Board, trials int) *Engine {
	if trials <= 0 {
		trials = DefaultTrials
	}
	return &Engine{b: b, trials: trials}
}

// Decide runs the named policy for the current player and returns the rule
// that fired together with its candidate moves in enumeration order.
func (e *Engine) Decide(name string) (Action, []move.Point, error) {
	player := e.b.CurrentPlayer()
	checksum := e.b.Hash()
	defer func() {
		if e.b.Hash() != checksum {
			log.Error().Str("policy", name).Msg("policy did not restore the board")
		}
	}()
	switch name {
	case RuleBased:
		action, moves := e.ruleBased(player)
		return action, moves, nil
	case Random:
		return ActionRandom, e.rolloutCandidates(player), nil
	default:
		return ActionRandom, nil, fmt.Errorf("%w: %q", ErrInvalidPolicy, name)
	}
}

// ruleBased walks the cascade; the first rule with a non-empty candidate
// set wins.
func (e *Engine) ruleBased(player board.Color) (Action, []move.Point) {
	opponent := player.Opponent()
	if moves := e.winningMoves(player); len(moves) > 0 {
		return ActionWin, moves
	}
	if moves := e.winningMoves(opponent); len(moves) > 0 {
		return ActionBlockWin, moves
	}
	if moves := e.openFourMoves(player); len(moves) > 0 {
		return ActionOpenFour, moves
	}
	if moves := e.blockOpenFourMoves(opponent); len(moves) > 0 {
		return ActionBlockOpenFour, moves
	}
	return ActionRandom, e.rolloutCandidates(player)
}

// winningMoves finds every empty point that completes five-in-a-row for
// color. With color set to the opponent these are exactly the points the
// mover must occupy to deny an immediate loss.
func (e *Engine) winningMoves(color board.Color) []move.Point {
	var moves []move.Point
	for _, pt := range e.b.EmptyPoints() {
		e.b.Place(pt, color)
		if e.b.DetectFiveInARow() == color {
			moves = append(moves, pt)
		}
		e.b.Undo(pt)
	}
	return moves
}

// completionPoint returns the first empty point, in enumeration order, that
// completes five-in-a-row for color.
func (e *Engine) completionPoint(color board.Color) (move.Point, bool) {
	for _, pt := range e.b.EmptyPoints() {
		e.b.Place(pt, color)
		five := e.b.DetectFiveInARow()
		e.b.Undo(pt)
		if five == color {
			return pt, true
		}
	}
	return move.NoPoint, false
}

// openFourMoves finds points where playing color builds a four that no
// single opposing stone can stop: after color plays, a completion point
// exists, and even with the opponent occupying it another completion
// remains.
func (e *Engine) openFourMoves(color board.Color) []move.Point {
	var moves []move.Point
	for _, pt := range e.b.EmptyPoints() {
		e.b.Place(pt, color)
		if block, ok := e.completionPoint(color); ok {
			e.b.Place(block, color.Opponent())
			if _, still := e.completionPoint(color); still {
				moves = append(moves, pt)
			}
			e.b.Undo(block)
		}
		e.b.Undo(pt)
	}
	return moves
}

// blockOpenFourMoves finds points where color (the opponent) would build a
// four with an open extension; the mover plays there to deny the
// completion.
func (e *Engine) blockOpenFourMoves(color board.Color) []move.Point {
	var moves []move.Point
	for _, pt := range e.b.EmptyPoints() {
		e.b.Place(pt, color)
		if e.b.DetectFourInARow() == color {
			if _, ok := e.completionPoint(color); ok && !lo.Contains(moves, pt) {
				moves = append(moves, pt)
			}
		}
		e.b.Undo(pt)
	}
	return moves
}

// rolloutCandidates shuffles the empty points once and runs e.trials
// rollouts over the shuffled order, assigning points alternately starting
// with player. After each assignment the position is scored; whenever the
// player holds the five, or no five exists yet, the first point assigned in
// the trial is recorded. Candidates are deduplicated across trials.
func (e *Engine) rolloutCandidates(player board.Color) []move.Point {
	empties := e.b.EmptyPoints()
	frand.Shuffle(len(empties), func(i, j int) {
		empties[i], empties[j] = empties[j], empties[i]
	})
	var candidates []move.Point
	for t := 0; t < e.trials; t++ {
		mover := player
		first := move.NoPoint
		for _, pt := range empties {
			if first == move.NoPoint {
				first = pt
			}
			e.b.Place(pt, mover)
			five := e.b.DetectFiveInARow()
			if five == player || five == board.Empty {
				candidates = append(candidates, first)
			}
			mover = mover.Opponent()
		}
		for _, pt := range empties {
			e.b.Undo(pt)
		}
	}
	return lo.Uniq(candidates)
}

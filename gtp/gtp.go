// Package gtp implements the Go Text Protocol surface of the engine: a
// line-oriented command dispatcher that owns the board and the player to
// move, and translates between GTP coordinates and the core packages.
package gtp

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/ninuki/board"
	"github.com/domino14/ninuki/config"
	"github.com/domino14/ninuki/move"
	"github.com/domino14/ninuki/policy"
	"github.com/domino14/ninuki/solver"
)

const (
	EngineName    = "ninuki"
	EngineVersion = "1.0"
)

var reLeadingID = regexp.MustCompile(`^\d+`)

type handler func(args []string)

type argSpec struct {
	count int
	usage string
}

// Controller dispatches GTP commands. It exclusively owns the board; the
// solver and the policy engine borrow it for the duration of a single
// command.
type Controller struct {
	out io.Writer

	board       *board.Board
	komi        float64
	timeLimit   int
	policyName  string
	simulations int
	quitting    bool

	commands map[string]handler
	argmap   map[string]argSpec
}

// NewController builds a controller with a fresh board per the given
// configuration, writing responses to out.
func NewController(cfg *config.Config, out io.Writer) (*Controller, error) {
	b, err := board.New(cfg.BoardSize)
	if err != nil {
		return nil, err
	}
	c := &Controller{
		out:         out,
		board:       b,
		timeLimit:   cfg.TimeLimit,
		policyName:  cfg.Policy,
		simulations: cfg.Simulations,
	}
	c.commands = map[string]handler{
		"protocol_version":         c.protocolVersionCmd,
		"quit":                     c.quitCmd,
		"name":                     c.nameCmd,
		"version":                  c.versionCmd,
		"known_command":            c.knownCommandCmd,
		"list_commands":            c.listCommandsCmd,
		"boardsize":                c.boardsizeCmd,
		"clear_board":              c.clearBoardCmd,
		"showboard":                c.showboardCmd,
		"komi":                     c.komiCmd,
		"play":                     c.playCmd,
		"genmove":                  c.genmoveCmd,
		"legal_moves":              c.legalMovesCmd,
		"timelimit":                c.timelimitCmd,
		"solve":                    c.solveCmd,
		"policy":                   c.policyCmd,
		"policy_moves":             c.policyMovesCmd,
		"gogui-rules_game_id":      c.goguiGameIDCmd,
		"gogui-rules_board_size":   c.goguiBoardSizeCmd,
		"gogui-rules_legal_moves":  c.goguiLegalMovesCmd,
		"gogui-rules_side_to_move": c.goguiSideToMoveCmd,
		"gogui-rules_board":        c.goguiBoardCmd,
		"gogui-rules_final_result": c.goguiFinalResultCmd,
		"gogui-analyze_commands":   c.goguiAnalyzeCmd,
	}
	c.argmap = map[string]argSpec{
		"boardsize":     {1, "Usage: boardsize INT"},
		"komi":          {1, "Usage: komi FLOAT"},
		"known_command": {1, "Usage: known_command CMD_NAME"},
		"genmove":       {1, "Usage: genmove {w,b}"},
		"play":          {2, "Usage: play {b,w} MOVE"},
		"legal_moves":   {1, "Usage: legal_moves {w,b}"},
		"timelimit":     {1, "Usage: timelimit INT"},
		"policy":        {1, "Usage: policy {rule_based,random}"},
	}
	return c, nil
}

// Run processes commands from r until EOF or quit.
func (c *Controller) Run(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if !c.Execute(scanner.Text()) {
			return nil
		}
	}
	return scanner.Err()
}

// Execute parses and runs one command line. It returns false once the quit
// command has been handled.
func (c *Controller) Execute(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" || line[0] == '#' {
		return !c.quitting
	}
	// regression drivers prefix commands with a numeric id
	if line[0] >= '0' && line[0] <= '9' {
		line = strings.TrimSpace(reLeadingID.ReplaceAllString(line, ""))
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return !c.quitting
	}
	name, args := fields[0], fields[1:]
	if spec, ok := c.argmap[name]; ok && spec.count != len(args) {
		c.failure(spec.usage)
		return !c.quitting
	}
	cmd, ok := c.commands[name]
	if !ok {
		log.Debug().Str("command", name).Msg("unknown-command")
		c.failure("Unknown command")
		return !c.quitting
	}
	log.Debug().Str("command", name).Strs("args", args).Msg("dispatch")
	cmd(args)
	return !c.quitting
}

func (c *Controller) respond(response string) {
	fmt.Fprintf(c.out, "= %s\n\n", response)
}

func (c *Controller) failure(msg string) {
	fmt.Fprintf(c.out, "? %s\n\n", msg)
}

func (c *Controller) protocolVersionCmd(args []string) { c.respond("2") }

func (c *Controller) quitCmd(args []string) {
	c.respond("")
	c.quitting = true
}

func (c *Controller) nameCmd(args []string)    { c.respond(EngineName) }
func (c *Controller) versionCmd(args []string) { c.respond(EngineVersion) }

func (c *Controller) knownCommandCmd(args []string) {
	if _, ok := c.commands[args[0]]; ok {
		c.respond("true")
	} else {
		c.respond("false")
	}
}

func (c *Controller) listCommandsCmd(args []string) {
	names := make([]string, 0, len(c.commands))
	for name := range c.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	c.respond(strings.Join(names, " "))
}

func (c *Controller) boardsizeCmd(args []string) {
	size, err := strconv.Atoi(args[0])
	if err != nil {
		c.failure("Usage: boardsize INT")
		return
	}
	if err := c.board.Reset(size); err != nil {
		c.failure(err.Error())
		return
	}
	c.respond("")
}

func (c *Controller) clearBoardCmd(args []string) {
	c.board.Reset(c.board.Size())
	c.respond("")
}

func (c *Controller) showboardCmd(args []string) {
	c.respond("\n" + c.board.ToDisplayText())
}

func (c *Controller) komiCmd(args []string) {
	komi, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		c.failure("Usage: komi FLOAT")
		return
	}
	c.komi = komi
	c.respond("")
}

func colorFromString(s string) (board.Color, error) {
	switch strings.ToLower(s) {
	case "b":
		return board.Black, nil
	case "w":
		return board.White, nil
	}
	return board.Empty, fmt.Errorf("%q wrong color", s)
}

func (c *Controller) playCmd(args []string) {
	color, err := colorFromString(args[0])
	if err != nil {
		c.respond(fmt.Sprintf("illegal move: %v", err))
		return
	}
	if strings.EqualFold(args[1], "pass") {
		c.board.PlayMove(move.Pass, color)
		c.respond("")
		return
	}
	pt, err := move.Parse(args[1], c.board.Size())
	if err != nil {
		c.respond(fmt.Sprintf("illegal move: %v", err))
		return
	}
	if !c.board.PlayMove(pt, color) {
		c.respond(fmt.Sprintf("illegal move: %q occupied", strings.ToLower(args[1])))
		return
	}
	log.Debug().Str("move", args[1]).Msg("played")
	c.respond("")
}

func (c *Controller) timelimitCmd(args []string) {
	seconds, err := strconv.Atoi(args[0])
	if err != nil {
		c.respond("ERROR: Please choose a number between 1 and 100 as an argument.")
		return
	}
	if seconds < config.MinTimeLimit || seconds > config.MaxTimeLimit {
		c.respond("ERROR: The Timelimit has to be between 1 and 100 seconds.")
		return
	}
	c.timeLimit = seconds
	c.respond("")
}

func (c *Controller) policyCmd(args []string) {
	if args[0] == policy.RuleBased || args[0] == policy.Random {
		c.policyName = args[0]
		c.respond("")
		return
	}
	c.respond(fmt.Sprintf(
		"ERROR: %s is not a valid policy. Choose 'rule_based' or 'random'", args[0]))
}

// solveCmd runs the exhaustive search for the current player under the
// configured time limit. Output is one of "b MOVE", "w MOVE", "draw MOVE",
// "unknown", or a bare "b"/"w" when the side not on the move already holds
// a forced win and no move is offered.
func (c *Controller) solveCmd(args []string) {
	mover := c.board.CurrentPlayer()
	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(c.timeLimit)*time.Second)
	defer cancel()
	res := solver.New(c.board).Solve(ctx)

	switch {
	case res.Outcome == solver.Unknown:
		c.respond("unknown")
	case res.Outcome == solver.Draw, res.Outcome.Winner() == mover:
		if res.HasMove() {
			c.respond(res.Outcome.String() + " " + res.Move.Format(c.board.Size()))
		} else {
			c.respond(res.Outcome.String())
		}
	default:
		// the opponent stands to win; report who, offer nothing
		c.respond(res.Outcome.String())
	}
}

func (c *Controller) genmoveCmd(args []string) {
	five := c.board.DetectFiveInARow()
	if five == c.board.CurrentPlayer().Opponent() {
		c.respond("resign")
		return
	}
	if five == c.board.CurrentPlayer() {
		c.respond("pass")
		return
	}
	if c.board.NumEmpty() == 0 {
		c.respond("pass")
		return
	}
	color, err := colorFromString(args[0])
	if err != nil {
		c.failure(err.Error())
		return
	}
	c.board.SetCurrentPlayer(color)
	engine := policy.New(c.board, c.simulations)
	action, moves, err := engine.Decide(c.policyName)
	if err != nil || len(moves) == 0 {
		c.failure("no move")
		return
	}
	mv := moves[0]
	formatted := strings.ToLower(mv.Format(c.board.Size()))
	if !c.board.IsLegal(mv, color) {
		c.respond(fmt.Sprintf("Illegal move: %s", formatted))
		return
	}
	c.board.PlayMove(mv, color)
	log.Debug().Str("action", action.String()).Str("move", formatted).Msg("genmove")
	c.respond(formatted)
}

func (c *Controller) legalMovesCmd(args []string) {
	if _, err := colorFromString(args[0]); err != nil {
		c.failure(err.Error())
		return
	}
	c.respond(strings.Join(c.sortedEmptyPoints(), " "))
}

// policyMovesCmd reports the rule the cascade would fire for the current
// player and its candidate moves.
func (c *Controller) policyMovesCmd(args []string) {
	numEmpty := c.board.NumEmpty()
	if numEmpty == 0 {
		c.respond("")
		return
	}
	size := c.board.Size()
	if numEmpty == size*size {
		// fresh board: every point is an equally good rollout candidate
		c.respond("Random " + strings.Join(c.sortedEmptyPoints(), " "))
		return
	}
	engine := policy.New(c.board, c.simulations)
	action, moves, err := engine.Decide(c.policyName)
	if err != nil {
		c.failure(err.Error())
		return
	}
	formatted := make([]string, len(moves))
	for i, mv := range moves {
		formatted[i] = mv.Format(size)
	}
	c.respond(action.String() + " " + strings.Join(formatted, " "))
}

func (c *Controller) sortedEmptyPoints() []string {
	size := c.board.Size()
	pts := c.board.EmptyPoints()
	formatted := make([]string, len(pts))
	for i, pt := range pts {
		formatted[i] = pt.Format(size)
	}
	sort.Strings(formatted)
	return formatted
}

func (c *Controller) goguiGameIDCmd(args []string) { c.respond("Gomoku") }

func (c *Controller) goguiBoardSizeCmd(args []string) {
	c.respond(strconv.Itoa(c.board.Size()))
}

func (c *Controller) goguiLegalMovesCmd(args []string) {
	if c.board.DetectFiveInARow() != board.Empty {
		c.respond("")
		return
	}
	c.respond(strings.ToLower(strings.Join(c.sortedEmptyPoints(), " ")))
}

func (c *Controller) goguiSideToMoveCmd(args []string) {
	if c.board.CurrentPlayer() == board.Black {
		c.respond("black")
	} else {
		c.respond("white")
	}
}

func (c *Controller) goguiBoardCmd(args []string) {
	c.respond(c.board.ToRulesText())
}

func (c *Controller) goguiFinalResultCmd(args []string) {
	if c.board.NumEmpty() == 0 {
		c.respond("draw")
		return
	}
	switch c.board.DetectFiveInARow() {
	case board.Black:
		c.respond("black")
	case board.White:
		c.respond("white")
	default:
		c.respond("unknown")
	}
}

func (c *Controller) goguiAnalyzeCmd(args []string) {
	c.respond("pstring/Legal Moves For ToPlay/gogui-rules_legal_moves\n" +
		"pstring/Side to Play/gogui-rules_side_to_move\n" +
		"pstring/Final Result/gogui-rules_final_result\n" +
		"pstring/Board Size/gogui-rules_board_size\n" +
		"pstring/Rules GameID/gogui-rules_game_id\n" +
		"pstring/Show Board/gogui-rules_board\n")
}

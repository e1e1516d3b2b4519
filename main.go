package main

import (
	"flag"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/ninuki/config"
	"github.com/domino14/ninuki/gtp"
)

var debugFlag = flag.Bool("debug", false, "log debug output to stderr")

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func main() {
	flag.Parse()

	// responses go to stdout; all logging stays on stderr so the GTP
	// stream is never polluted
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}
	if *debugFlag || cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	controller, err := gtp.NewController(cfg, os.Stdout)
	if err != nil {
		log.Fatal().Err(err).Msg("creating controller")
	}

	l, err := readline.NewEx(&readline.Config{
		Prompt:      "",
		HistoryFile: "/tmp/ninuki_readline.tmp",
		EOFPrompt:   "exit",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("readline")
	}
	defer l.Close()

	for {
		line, err := l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}
		if !controller.Execute(strings.TrimSpace(line)) {
			break
		}
	}
	log.Debug().Msg("exiting")
}

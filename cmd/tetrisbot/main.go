// Command tetrisbot runs the move-selection engine behind the
// newline-delimited JSON protocol of spec.md §6, reading Incoming messages
// from stdin and writing Outgoing replies to stdout.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/rs/zerolog"

	"github.com/tetrisbot/tetrisbot/internal/config"
	"github.com/tetrisbot/tetrisbot/internal/engine"
	"github.com/tetrisbot/tetrisbot/internal/protocol"
	"github.com/tetrisbot/tetrisbot/internal/render"
)

var (
	buildVersion = "(devel)"

	configPath = flag.String("config", "", "path to a YAML config file (kicks, spins, weights)")
	verbose    = flag.Bool("verbose", false, "log search diagnostics to stderr")
	version    = flag.Bool("version", false, "print version and exit")
	renderTUI  = flag.Bool("render", false, "show a spectator view of each move on the terminal")
)

func main() {
	flag.Parse()
	if *version {
		fmt.Printf("tetrisbot %v, running on %v\n", buildVersion, runtime.GOARCH)
		return
	}

	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if !*verbose {
		log = log.Level(zerolog.WarnLevel)
	}

	var logger engine.SearchLogger = engine.ZerologSearchLogger{Log: log}

	host := protocol.NewHost(os.Stdin, os.Stdout, logger)
	if *configPath != "" {
		f, err := config.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *configPath).Msg("loading config")
		}
		host.SetDefaults(f.EngineConfig(), f.EngineWeights())
	}

	if *renderTUI {
		view, err := render.New()
		if err != nil {
			log.Fatal().Err(err).Msg("opening terminal for -render")
		}
		defer view.Close()
		host.OnStep = func(g *engine.GameState) { view.Draw(g) }
	}

	if err := host.Run(); err != nil {
		log.Fatal().Err(err).Msg("protocol loop exited")
	}
}

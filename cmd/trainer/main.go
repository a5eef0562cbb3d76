// Command trainer runs the self-play weight-evolution tournament
// (spec.md §5, original_source/src/trainer.rs) and writes the winning
// heuristic weights to a YAML file cmd/tetrisbot can load.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/tetrisbot/tetrisbot/internal/config"
	"github.com/tetrisbot/tetrisbot/internal/engine"
	"github.com/tetrisbot/tetrisbot/internal/trainer"
)

var (
	configPath = flag.String("config", "", "path to a YAML config file (rules, starting weights)")
	outPath    = flag.String("out", "weights.yaml", "path to write the winning weights")
	numPlayers = flag.Int("players", 16, "tournament population size")
	epochs     = flag.Int("epochs", 20, "number of round-robin epochs")
	seed       = flag.Int64("seed", 1, "trainer RNG seed")
)

func main() {
	flag.Parse()
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg := engine.DefaultConfig()
	initial := engine.DefaultWeights()
	if *configPath != "" {
		f, err := config.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *configPath).Msg("loading config")
		}
		cfg = f.EngineConfig()
		initial = f.EngineWeights()
	}

	log.Info().Int("players", *numPlayers).Int("epochs", *epochs).Msg("starting tournament")
	best := trainer.Train(cfg, initial, *numPlayers, *epochs, *seed)

	if err := writeWeights(*outPath, best); err != nil {
		log.Fatal().Err(err).Str("path", *outPath).Msg("writing weights")
	}
	fmt.Printf("wrote winning weights to %s\n", *outPath)
}

func writeWeights(path string, w engine.Weights) error {
	out := config.File{
		Weights: &config.WeightsFile{
			Height:             w.Height,
			UpperHalfHeight:    w.UpperHalfHeight,
			UpperQuarterHeight: w.UpperQuarterHeight,
			CenterHeight:       w.CenterHeight,
			ClearNone:          w.ClearNone,
			ClearMini:          w.ClearMini,
			ClearNormal:        w.ClearNormal,
			Sent:               w.Sent,
			B2B:                w.B2B,
			Combo:              w.Combo,
			Holes:              w.Holes,
			CoveredHoles:       w.CoveredHoles,
			OverstackedHoles:   w.OverstackedHoles,
			Unevenness:         w.Unevenness,
			Wells:              w.Wells,
		},
	}
	data, err := yaml.Marshal(out)
	if err != nil {
		return errors.Wrap(err, "marshal weights")
	}
	return errors.Wrap(os.WriteFile(path, data, 0o644), "write weights file")
}

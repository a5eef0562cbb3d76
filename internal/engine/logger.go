package engine

import "github.com/rs/zerolog"

// SearchLogger receives diagnostic events from the beam search and
// key-path reconstructor. Implementations must not block the search.
type SearchLogger interface {
	Expanded(nodes int)
	BeamStep(ply, width int, best int)
	KeyPathFound(moves int)
	Warn(msg string)
}

// NulSearchLogger discards every event.
type NulSearchLogger struct{}

func (NulSearchLogger) Expanded(nodes int)             {}
func (NulSearchLogger) BeamStep(ply, width, best int)  {}
func (NulSearchLogger) KeyPathFound(moves int)         {}
func (NulSearchLogger) Warn(msg string)                {}

// ZerologSearchLogger reports search events through a zerolog.Logger.
type ZerologSearchLogger struct {
	Log zerolog.Logger
}

func (l ZerologSearchLogger) Expanded(nodes int) {
	l.Log.Debug().Int("nodes", nodes).Msg("expanded")
}

func (l ZerologSearchLogger) BeamStep(ply, width, best int) {
	l.Log.Debug().Int("ply", ply).Int("width", width).Int("best", best).Msg("beam step")
}

func (l ZerologSearchLogger) KeyPathFound(moves int) {
	l.Log.Debug().Int("moves", moves).Msg("key path found")
}

func (l ZerologSearchLogger) Warn(msg string) {
	l.Log.Warn().Msg(msg)
}

package audio

import (
	"math"

	"github.com/jbonatakis/hakim/internal/config"
	"github.com/jbonatakis/hakim/internal/court"
)

type TrackID string

const (
	TrackTheme    TrackID = "theme"
	TrackTension  TrackID = "tension"
	TrackAmbience TrackID = "ambience"
	TrackGavel    TrackID = "gavel"
	TrackPaper    TrackID = "paper"
)

// Track is one entry of the fixed registry. Scale is applied to the bus
// level to get the track's volume.
type Track struct {
	ID    TrackID
	Bus   config.Bus
	Scale float64
	Loop  bool
}

var registry = []Track{
	{ID: TrackTheme, Bus: config.BusMusic, Scale: 0.6, Loop: true},
	{ID: TrackTension, Bus: config.BusMusic, Scale: 0.5, Loop: true},
	{ID: TrackAmbience, Bus: config.BusAmbience, Scale: 0.5, Loop: true},
	{ID: TrackGavel, Bus: config.BusSFX, Scale: 1},
	{ID: TrackPaper, Bus: config.BusSFX, Scale: 1},
}

// Tracks returns a copy of the registry.
func Tracks() []Track {
	out := make([]Track, len(registry))
	copy(out, registry)
	return out
}

func LookupTrack(id TrackID) (Track, bool) {
	for _, t := range registry {
		if t.ID == id {
			return t, true
		}
	}
	return Track{}, false
}

// Volume is the effective volume of t under mix.
func (t Track) Volume(mix config.Mix) float64 {
	return math.Min(config.ClampLevel(mix.Level(t.Bus))*t.Scale, 1)
}

// phaseTracks are the looping tracks that follow the phase.
var phaseTracks = []TrackID{TrackTheme, TrackTension, TrackAmbience}

// TracksForPhase lists the looping tracks that play during p.
func TracksForPhase(p court.Phase) []TrackID {
	switch p {
	case court.PhaseMenu:
		return []TrackID{TrackTheme}
	case court.PhaseTrial, court.PhaseVerdict:
		return []TrackID{TrackTension, TrackAmbience}
	case court.PhaseEvaluation:
		return []TrackID{TrackAmbience}
	default:
		return nil
	}
}

package audio

import (
	"sync"

	"go.uber.org/zap"

	"github.com/jbonatakis/hakim/internal/config"
	"github.com/jbonatakis/hakim/internal/court"
)

// Player is the playback device. Errors are reported but the coordinator
// never surfaces them.
type Player interface {
	Play(t Track, volume float64, fromStart bool) error
	Pause(id TrackID) error
	SetVolume(id TrackID, volume float64) error
}

// Coordinator mixes the fixed track set and switches loops on phase changes.
// Nothing plays until Unlock is called on the first user input.
type Coordinator struct {
	player Player
	log    *zap.Logger

	mu       sync.Mutex
	mix      config.Mix
	phase    court.Phase
	unlocked bool
}

func NewCoordinator(player Player, mix config.Mix, logger *zap.Logger) *Coordinator {
	if player == nil {
		player = NopPlayer{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{
		player: player,
		log:    logger.Named("audio"),
		mix:    mix,
		phase:  court.PhaseMenu,
	}
}

func (c *Coordinator) Unlocked() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.unlocked
}

func (c *Coordinator) Mix() config.Mix {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mix
}

// Unlock opens the playback gate once per process and starts the current
// phase's loops. Later calls do nothing.
func (c *Coordinator) Unlock() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.unlocked {
		return
	}
	c.unlocked = true
	c.log.Debug("audio unlocked", zap.String("phase", string(c.phase)))
	c.startPhase(c.phase)
}

// SetMix replaces all bus levels and updates every track's volume.
func (c *Coordinator) SetMix(mix config.Mix) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mix = mix
	c.applyVolumes()
}

func (c *Coordinator) SetLevel(bus config.Bus, level float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mix = c.mix.WithLevel(bus, level)
	c.applyVolumes()
}

// OnPhaseChange pauses the phase loops and starts the ones for next.
// Before unlock it only records the phase.
func (c *Coordinator) OnPhaseChange(prev, next court.Phase) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.phase = next
	if !c.unlocked {
		return
	}
	c.log.Debug("phase audio", zap.String("from", string(prev)), zap.String("to", string(next)))
	for _, id := range phaseTracks {
		c.report(id, c.player.Pause(id))
	}
	c.startPhase(next)
}

// PlayOneShot restarts a short effect from the beginning at the current
// level of its bus.
func (c *Coordinator) PlayOneShot(id TrackID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.unlocked {
		return
	}
	t, ok := LookupTrack(id)
	if !ok {
		c.log.Debug("unknown track", zap.String("track", string(id)))
		return
	}
	c.report(id, c.player.Play(t, t.Volume(c.mix), true))
}

func (c *Coordinator) startPhase(p court.Phase) {
	for _, id := range TracksForPhase(p) {
		t, _ := LookupTrack(id)
		// The menu theme starts over; trial loops resume where they were.
		fromStart := id == TrackTheme
		c.report(id, c.player.Play(t, t.Volume(c.mix), fromStart))
	}
}

func (c *Coordinator) applyVolumes() {
	for _, t := range registry {
		c.report(t.ID, c.player.SetVolume(t.ID, t.Volume(c.mix)))
	}
}

func (c *Coordinator) report(id TrackID, err error) {
	if err != nil {
		c.log.Debug("playback failed", zap.String("track", string(id)), zap.Error(err))
	}
}

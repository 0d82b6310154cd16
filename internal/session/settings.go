package session

import (
	"fmt"

	"github.com/jbonatakis/hakim/internal/config"
)

// UpdateSettings applies and persists player settings.
func (s *Session) UpdateSettings(next config.Settings) error {
	next = next.Normalize()
	s.settings = next
	s.audio.SetMix(next.Mix)
	return s.gw.SaveSettings(next)
}

func (s *Session) AdjustMix(bus config.Bus, level float64) error {
	if !bus.Valid() {
		return fmt.Errorf("unknown audio bus %q", bus)
	}
	next := s.settings
	next.Mix = next.Mix.WithLevel(bus, level)
	return s.UpdateSettings(next)
}

func (s *Session) AdjustBrightness(level int) error {
	next := s.settings
	next.Brightness = level
	return s.UpdateSettings(next)
}

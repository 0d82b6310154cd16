package config

import (
	"math"
	"strconv"
	"strings"
)

// ResolveMix turns a stored mix into levels.
// A mix missing any bus is an older stored shape and resolves to defaults as a
// whole; present values are clamped to [0,1].
func ResolveMix(raw RawMix) Mix {
	defaults := DefaultMix()
	if raw.Music == nil || raw.Ambience == nil || raw.SFX == nil {
		return defaults
	}
	return Mix{
		Music:    resolveLevel(raw.Music, defaults.Music),
		Ambience: resolveLevel(raw.Ambience, defaults.Ambience),
		SFX:      resolveLevel(raw.SFX, defaults.SFX),
	}
}

// ResolveBrightness parses a stored brightness value. Anything unparsable
// falls back to the default; numbers are clamped to bounds.
func ResolveBrightness(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultBrightness
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return DefaultBrightness
		}
		value = int(math.Round(f))
	}
	return ClampBrightness(value)
}

func resolveLevel(val *float64, defaultVal float64) float64 {
	if val == nil || math.IsNaN(*val) || math.IsInf(*val, 0) {
		return ClampLevel(defaultVal)
	}
	return ClampLevel(*val)
}

func ClampLevel(value float64) float64 {
	if math.IsNaN(value) {
		return MinLevel
	}
	if value < MinLevel {
		return MinLevel
	}
	if value > MaxLevel {
		return MaxLevel
	}
	return value
}

func ClampBrightness(value int) int {
	return clampInt(value, MinBrightness, MaxBrightness)
}

func clampInt(value int, min int, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// snapLevel rounds to the nearest LevelStep so repeated nudges don't drift.
func snapLevel(value float64) float64 {
	return ClampLevel(math.Round(value/LevelStep) * LevelStep)
}

package config

import (
	"encoding/json"
	"strconv"
)

// DecodeMix parses the stored audio mix slot. Missing or malformed data
// resolves to the defaults.
func DecodeMix(stored string, ok bool) Mix {
	if !ok || stored == "" {
		return DefaultMix()
	}
	var raw RawMix
	if err := json.Unmarshal([]byte(stored), &raw); err != nil {
		return DefaultMix()
	}
	return ResolveMix(raw)
}

func EncodeMix(m Mix) string {
	clamped := Mix{
		Music:    ClampLevel(m.Music),
		Ambience: ClampLevel(m.Ambience),
		SFX:      ClampLevel(m.SFX),
	}
	b, err := json.Marshal(clamped)
	if err != nil {
		// Mix holds three finite floats; Marshal cannot fail.
		panic(err)
	}
	return string(b)
}

func DecodeBrightness(stored string, ok bool) int {
	if !ok {
		return DefaultBrightness
	}
	return ResolveBrightness(stored)
}

func EncodeBrightness(value int) string {
	return strconv.Itoa(ClampBrightness(value))
}

// Normalize clamps every field of s to its bounds.
func (s Settings) Normalize() Settings {
	return Settings{
		Mix: Mix{
			Music:    ClampLevel(s.Mix.Music),
			Ambience: ClampLevel(s.Mix.Ambience),
			SFX:      ClampLevel(s.Mix.SFX),
		},
		Brightness: ClampBrightness(s.Brightness),
	}
}

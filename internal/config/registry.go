package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type OptionType string

const (
	OptionTypeLevel OptionType = "level"
	OptionTypeInt   OptionType = "int"
)

type Bounds struct {
	Min  float64
	Max  float64
	Step float64
}

type OptionMetadata struct {
	KeyPath      string
	DisplayName  string
	Type         OptionType
	DefaultValue float64
	Bounds       Bounds
	Description  string
}

const (
	KeyMusic      = "audio.music"
	KeyAmbience   = "audio.ambience"
	KeySFX        = "audio.sfx"
	KeyBrightness = "display.brightness"
)

// OptionRegistry returns the player settings in display order.
func OptionRegistry() []OptionMetadata {
	defaults := DefaultSettings()

	return []OptionMetadata{
		newLevelOption(KeyMusic, "Müzik", defaults.Mix.Music, "Tema ve gerilim müziği seviyesi"),
		newLevelOption(KeyAmbience, "Ortam Sesi", defaults.Mix.Ambience, "Salon uğultusu seviyesi"),
		newLevelOption(KeySFX, "Efektler", defaults.Mix.SFX, "Tokmak ve kağıt sesleri"),
		{
			KeyPath:      KeyBrightness,
			DisplayName:  "Parlaklık",
			Type:         OptionTypeInt,
			DefaultValue: float64(defaults.Brightness),
			Bounds:       Bounds{Min: MinBrightness, Max: MaxBrightness, Step: BrightnessStep},
			Description:  "Ekran parlaklığı (%)",
		},
	}
}

func newLevelOption(keyPath string, displayName string, defaultValue float64, description string) OptionMetadata {
	return OptionMetadata{
		KeyPath:      keyPath,
		DisplayName:  displayName,
		Type:         OptionTypeLevel,
		DefaultValue: defaultValue,
		Bounds:       Bounds{Min: MinLevel, Max: MaxLevel, Step: LevelStep},
		Description:  description,
	}
}

func LookupOption(key string) (OptionMetadata, bool) {
	for _, opt := range OptionRegistry() {
		if opt.KeyPath == key {
			return opt, true
		}
	}
	return OptionMetadata{}, false
}

func busForKey(key string) (Bus, bool) {
	switch key {
	case KeyMusic:
		return BusMusic, true
	case KeyAmbience:
		return BusAmbience, true
	case KeySFX:
		return BusSFX, true
	default:
		return "", false
	}
}

// Value returns the current value of key in s, as a number.
func (s Settings) Value(key string) (float64, bool) {
	if bus, ok := busForKey(key); ok {
		return s.Mix.Level(bus), true
	}
	if key == KeyBrightness {
		return float64(s.Brightness), true
	}
	return 0, false
}

// FormatValue renders key's value the way the settings views show it.
func (s Settings) FormatValue(key string) string {
	value, ok := s.Value(key)
	if !ok {
		return ""
	}
	if key == KeyBrightness {
		return fmt.Sprintf("%d%%", int(value))
	}
	return fmt.Sprintf("%d%%", int(math.Round(value*100)))
}

// With returns a copy of s with key set to value, clamped to the option's
// bounds.
func (s Settings) With(key string, value float64) (Settings, error) {
	if bus, ok := busForKey(key); ok {
		s.Mix = s.Mix.WithLevel(bus, value)
		return s, nil
	}
	if key == KeyBrightness {
		s.Brightness = ClampBrightness(int(math.Round(value)))
		return s, nil
	}
	return s, fmt.Errorf("unknown setting %q", key)
}

// Nudge moves key one step in the direction of dir (negative or positive).
func (s Settings) Nudge(key string, dir int) (Settings, error) {
	opt, ok := LookupOption(key)
	if !ok {
		return s, fmt.Errorf("unknown setting %q", key)
	}
	current, _ := s.Value(key)
	next := current + float64(sign(dir))*opt.Bounds.Step
	if opt.Type == OptionTypeLevel {
		next = snapLevel(next)
	}
	return s.With(key, next)
}

// ParseOptionValue parses user input for key. Levels accept "0.4", "40" or
// "40%"; brightness accepts "120" or "120%".
func ParseOptionValue(key string, input string) (float64, error) {
	opt, ok := LookupOption(key)
	if !ok {
		return 0, fmt.Errorf("unknown setting %q", key)
	}
	trimmed := strings.TrimSpace(input)
	percent := strings.HasSuffix(trimmed, "%")
	trimmed = strings.TrimSpace(strings.TrimSuffix(trimmed, "%"))
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("invalid value %q for %s", input, key)
	}
	if opt.Type == OptionTypeLevel && (percent || value > 1) {
		value = value / 100
	}
	if value < opt.Bounds.Min || value > opt.Bounds.Max {
		return 0, fmt.Errorf("%s must be between %s and %s", key, formatBound(opt, opt.Bounds.Min), formatBound(opt, opt.Bounds.Max))
	}
	return value, nil
}

func formatBound(opt OptionMetadata, v float64) string {
	if opt.Type == OptionTypeLevel {
		return fmt.Sprintf("%d%%", int(math.Round(v*100)))
	}
	return strconv.Itoa(int(v))
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}

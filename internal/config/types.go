package config

const (
	SchemaVersion = 1

	DefaultMusicLevel    = 0.6
	DefaultAmbienceLevel = 0.5
	DefaultSFXLevel      = 0.8
	DefaultBrightness    = 100

	MinLevel  = 0.0
	MaxLevel  = 1.0
	LevelStep = 0.05

	MinBrightness  = 50
	MaxBrightness  = 150
	BrightnessStep = 5
)

// Bus is one of the three audio mix buses.
type Bus string

const (
	BusMusic    Bus = "music"
	BusAmbience Bus = "ambience"
	BusSFX      Bus = "sfx"
)

func Buses() []Bus {
	return []Bus{BusMusic, BusAmbience, BusSFX}
}

func (b Bus) Valid() bool {
	switch b {
	case BusMusic, BusAmbience, BusSFX:
		return true
	default:
		return false
	}
}

// RawMix is the stored shape of the audio mix. Fields are pointers so a
// missing key can be told apart from a zero level.
type RawMix struct {
	Music    *float64 `json:"music,omitempty"`
	Ambience *float64 `json:"ambience,omitempty"`
	SFX      *float64 `json:"sfx,omitempty"`
}

type Mix struct {
	Music    float64 `json:"music"`
	Ambience float64 `json:"ambience"`
	SFX      float64 `json:"sfx"`
}

// Settings are the player preferences: audio mix and screen brightness.
type Settings struct {
	Mix        Mix `json:"mix"`
	Brightness int `json:"brightness"`
}

func DefaultMix() Mix {
	return Mix{
		Music:    DefaultMusicLevel,
		Ambience: DefaultAmbienceLevel,
		SFX:      DefaultSFXLevel,
	}
}

func DefaultSettings() Settings {
	return Settings{
		Mix:        DefaultMix(),
		Brightness: DefaultBrightness,
	}
}

func (m Mix) Level(bus Bus) float64 {
	switch bus {
	case BusMusic:
		return m.Music
	case BusAmbience:
		return m.Ambience
	case BusSFX:
		return m.SFX
	default:
		return 0
	}
}

// WithLevel returns a copy of m with bus set to level, clamped to [0,1].
func (m Mix) WithLevel(bus Bus, level float64) Mix {
	level = ClampLevel(level)
	switch bus {
	case BusMusic:
		m.Music = level
	case BusAmbience:
		m.Ambience = level
	case BusSFX:
		m.SFX = level
	}
	return m
}

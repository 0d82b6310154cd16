package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func floatPtr(v float64) *float64 {
	return &v
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestResolveMixClampsAndDefaults(t *testing.T) {
	got := ResolveMix(RawMix{Music: floatPtr(1.7), Ambience: floatPtr(-0.2), SFX: floatPtr(0.3)})
	if got.Music != 1 || got.Ambience != 0 || got.SFX != 0.3 {
		t.Fatalf("unexpected mix %+v", got)
	}

	partial := ResolveMix(RawMix{Music: floatPtr(0.1)})
	if partial != DefaultMix() {
		t.Fatalf("partial mix should resolve to defaults, got %+v", partial)
	}
}

func TestDecodeMixFallsBackOnGarbage(t *testing.T) {
	cases := []struct {
		name   string
		stored string
		ok     bool
	}{
		{"missing", "", false},
		{"empty", "", true},
		{"not json", "loud", true},
		{"wrong type", `{"music":"high","ambience":0.1,"sfx":0.1}`, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DecodeMix(tc.stored, tc.ok); got != DefaultMix() {
				t.Fatalf("DecodeMix(%q) = %+v, want defaults", tc.stored, got)
			}
		})
	}
}

func TestMixEncodeDecodeKeepsLevels(t *testing.T) {
	m := Mix{Music: 0.25, Ambience: 0, SFX: 1}
	got := DecodeMix(EncodeMix(m), true)
	if got != m {
		t.Fatalf("got %+v, want %+v", got, m)
	}
}

func TestResolveBrightness(t *testing.T) {
	cases := map[string]int{
		"":      DefaultBrightness,
		"abc":   DefaultBrightness,
		"120":   120,
		"10":    MinBrightness,
		"999":   MaxBrightness,
		"87.6":  88,
		" 95 ":  95,
		"NaN":   DefaultBrightness,
		"-Inf":  DefaultBrightness,
		"150.0": 150,
	}
	for in, want := range cases {
		if got := ResolveBrightness(in); got != want {
			t.Fatalf("ResolveBrightness(%q) = %d, want %d", in, got, want)
		}
	}
	if got := DecodeBrightness("120", false); got != DefaultBrightness {
		t.Fatalf("missing slot should resolve to default, got %d", got)
	}
}

func TestOptionRegistryDefaultsMatchSettings(t *testing.T) {
	defaults := DefaultSettings()
	opts := OptionRegistry()
	if len(opts) != 4 {
		t.Fatalf("expected 4 options, got %d", len(opts))
	}
	for _, opt := range opts {
		value, ok := defaults.Value(opt.KeyPath)
		if !ok {
			t.Fatalf("settings has no value for %s", opt.KeyPath)
		}
		if !almostEqual(value, opt.DefaultValue) {
			t.Fatalf("%s default = %v, registry says %v", opt.KeyPath, value, opt.DefaultValue)
		}
		if opt.DefaultValue < opt.Bounds.Min || opt.DefaultValue > opt.Bounds.Max {
			t.Fatalf("%s default outside bounds", opt.KeyPath)
		}
	}
}

func TestNudgeStepsAndClamps(t *testing.T) {
	s := DefaultSettings()

	s, err := s.Nudge(KeyMusic, 1)
	if err != nil {
		t.Fatalf("nudge: %v", err)
	}
	if !almostEqual(s.Mix.Music, 0.65) {
		t.Fatalf("music = %v, want 0.65", s.Mix.Music)
	}

	for i := 0; i < 30; i++ {
		s, _ = s.Nudge(KeyBrightness, 1)
	}
	if s.Brightness != MaxBrightness {
		t.Fatalf("brightness = %d, want %d", s.Brightness, MaxBrightness)
	}
	for i := 0; i < 30; i++ {
		s, _ = s.Nudge(KeySFX, -1)
	}
	if s.Mix.SFX != 0 {
		t.Fatalf("sfx = %v, want 0", s.Mix.SFX)
	}

	if _, err := s.Nudge("audio.voice", 1); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestParseOptionValue(t *testing.T) {
	cases := []struct {
		key     string
		input   string
		want    float64
		wantErr bool
	}{
		{KeyMusic, "0.4", 0.4, false},
		{KeyMusic, "40", 0.4, false},
		{KeyMusic, "40%", 0.4, false},
		{KeyMusic, "1", 1, false},
		{KeyMusic, "140", 0, true},
		{KeyBrightness, "120", 120, false},
		{KeyBrightness, "120%", 120, false},
		{KeyBrightness, "20", 0, true},
		{KeyBrightness, "bright", 0, true},
		{"nope", "1", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseOptionValue(tc.key, tc.input)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseOptionValue(%s, %q) expected error", tc.key, tc.input)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseOptionValue(%s, %q): %v", tc.key, tc.input, err)
		}
		if !almostEqual(got, tc.want) {
			t.Fatalf("ParseOptionValue(%s, %q) = %v, want %v", tc.key, tc.input, got, tc.want)
		}
	}
}

func TestFormatValue(t *testing.T) {
	s := DefaultSettings()
	if got := s.FormatValue(KeyMusic); got != "60%" {
		t.Fatalf("music = %q", got)
	}
	if got := s.FormatValue(KeyBrightness); got != "100%" {
		t.Fatalf("brightness = %q", got)
	}
}

func clearRuntimeEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"HAKIM_ORACLE", "GEMINI_API_KEY", "API_KEY", "HAKIM_MODEL", "HAKIM_ORACLE_CMD",
		"HAKIM_ORACLE_TIMEOUT", "HAKIM_FIXTURES", "HAKIM_STORE", "HAKIM_DATA_DIR",
		"HAKIM_LOG_LEVEL", "HAKIM_AUDIO_PLAYER", "HAKIM_AUDIO_DIR", "HAKIM_OPENING_DELAY",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadRuntimeDefaults(t *testing.T) {
	clearRuntimeEnv(t)
	home := t.TempDir()
	restore := SetUserHomeDirForTest(func() (string, error) { return home, nil })
	defer restore()

	rt, err := LoadRuntime(t.TempDir())
	if err != nil {
		t.Fatalf("LoadRuntime: %v", err)
	}
	if rt.Oracle != OracleFixture {
		t.Fatalf("oracle = %q, want fixture without a key", rt.Oracle)
	}
	if rt.Store != StoreFile || rt.Model != DefaultModel || rt.OpeningDelay != DefaultOpeningDelay {
		t.Fatalf("unexpected defaults %+v", rt)
	}
	if rt.DataDir != filepath.Join(home, ".hakim") {
		t.Fatalf("data dir = %q", rt.DataDir)
	}
	if rt.StorePath() != filepath.Join(home, ".hakim", "slots.json") {
		t.Fatalf("store path = %q", rt.StorePath())
	}
}

func TestLoadRuntimeReadsDotEnv(t *testing.T) {
	clearRuntimeEnv(t)
	dir := t.TempDir()
	content := "API_KEY=from-file\nHAKIM_STORE=sqlite\nHAKIM_OPENING_DELAY=2s\nHAKIM_DATA_DIR=/tmp/hakim-test\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	// godotenv does not override variables that are already set.
	t.Setenv("HAKIM_STORE", "memory")

	rt, err := LoadRuntime(dir)
	if err != nil {
		t.Fatalf("LoadRuntime: %v", err)
	}
	if rt.APIKey != "from-file" || rt.Oracle != OracleGemini {
		t.Fatalf("expected gemini with fallback key, got %+v", rt)
	}
	if rt.Store != StoreMemory {
		t.Fatalf("store = %q, want environment to win", rt.Store)
	}
	if rt.OpeningDelay != 2*time.Second {
		t.Fatalf("opening delay = %v", rt.OpeningDelay)
	}
	if rt.StorePath() != "" {
		t.Fatalf("memory store should have no path, got %q", rt.StorePath())
	}
	for _, key := range []string{"API_KEY", "HAKIM_OPENING_DELAY", "HAKIM_DATA_DIR"} {
		os.Unsetenv(key)
	}
}

func TestRuntimeResolveRejectsUnknownValues(t *testing.T) {
	if _, err := (Runtime{Oracle: "crystal-ball"}).Resolve(); err == nil {
		t.Fatalf("expected error for unknown oracle")
	}
	if _, err := (Runtime{Oracle: OracleFixture, Store: "tape"}).Resolve(); err == nil {
		t.Fatalf("expected error for unknown store")
	}
}

func TestDefaultDataDirWithoutHome(t *testing.T) {
	restore := SetUserHomeDirForTest(func() (string, error) { return "", errors.New("no home") })
	defer restore()
	if got := DefaultDataDir(); got != ".hakim" {
		t.Fatalf("DefaultDataDir = %q", got)
	}
}

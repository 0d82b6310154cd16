package store

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/jbonatakis/hakim/internal/config"
)

// Slot names one persisted string value.
type Slot string

// SlotVersion is shared by every slot key. A change to any stored shape
// bumps it for all slots together.
const SlotVersion = "v1"

const (
	SlotAudioMix     Slot = "hakim_settings_audio_" + SlotVersion
	SlotBrightness   Slot = "hakim_settings_brightness_" + SlotVersion
	SlotProgress     Slot = "hakim_case_count_" + SlotVersion
	SlotSaveCase     Slot = "hakim_save_case_" + SlotVersion
	SlotSaveLogs     Slot = "hakim_save_logs_" + SlotVersion
	SlotSavePhase    Slot = "hakim_save_phase_" + SlotVersion
	SlotSaveNotebook Slot = "hakim_save_notebook_" + SlotVersion
)

// Slots lists every slot the gateway owns.
func Slots() []Slot {
	return []Slot{
		SlotAudioMix, SlotBrightness, SlotProgress,
		SlotSaveCase, SlotSaveLogs, SlotSavePhase, SlotSaveNotebook,
	}
}

// snapshotSlots are written in this order and cleared together.
var snapshotSlots = []Slot{SlotSaveCase, SlotSaveLogs, SlotSavePhase, SlotSaveNotebook}

// Gateway is the only path from the game to the key-value store.
type Gateway struct {
	kv  KV
	log *zap.Logger
}

func NewGateway(kv KV, logger *zap.Logger) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{kv: kv, log: logger.Named("store")}
}

func (g *Gateway) Save(slot Slot, value string) error {
	if err := g.kv.Set(string(slot), value); err != nil {
		return fmt.Errorf("save %s: %w", slot, err)
	}
	return nil
}

// Load returns the slot's value. Read failures are logged and reported as
// absence.
func (g *Gateway) Load(slot Slot) (string, bool) {
	value, ok, err := g.kv.Get(string(slot))
	if err != nil {
		g.log.Warn("slot read failed", zap.String("slot", string(slot)), zap.Error(err))
		return "", false
	}
	return value, ok
}

func (g *Gateway) Clear(slot Slot) error {
	if err := g.kv.Delete(string(slot)); err != nil {
		return fmt.Errorf("clear %s: %w", slot, err)
	}
	return nil
}

func (g *Gateway) LoadSettings() config.Settings {
	mix, mixOK := g.Load(SlotAudioMix)
	brightness, brightnessOK := g.Load(SlotBrightness)
	return config.Settings{
		Mix:        config.DecodeMix(mix, mixOK),
		Brightness: config.DecodeBrightness(brightness, brightnessOK),
	}
}

func (g *Gateway) SaveSettings(s config.Settings) error {
	if err := g.Save(SlotAudioMix, config.EncodeMix(s.Mix)); err != nil {
		return err
	}
	return g.Save(SlotBrightness, config.EncodeBrightness(s.Brightness))
}

// LoadProgress returns the 1-based case counter. Missing or invalid values
// read as 1.
func (g *Gateway) LoadProgress() int {
	raw, ok := g.Load(SlotProgress)
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		g.log.Debug("progress slot unreadable, starting at 1", zap.String("value", raw))
		return 1
	}
	return n
}

func (g *Gateway) SaveProgress(n int) error {
	if n < 1 {
		n = 1
	}
	return g.Save(SlotProgress, strconv.Itoa(n))
}

package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jbonatakis/hakim/internal/court"
)

var ErrPhaseNotSaveable = errors.New("phase cannot be saved")

// Snapshot is an in-progress session as persisted across four slots.
type Snapshot struct {
	Case       court.Case
	Transcript court.Transcript
	Phase      court.Phase
	Notebook   string
}

// SaveSnapshot writes case, transcript, phase and notebook, in that order.
// The four writes are not atomic as a unit; LoadSnapshot tolerates a torn
// save.
func (g *Gateway) SaveSnapshot(s Snapshot) error {
	if !s.Phase.Saveable() {
		return fmt.Errorf("%w: %s", ErrPhaseNotSaveable, s.Phase)
	}
	caseJSON, err := json.Marshal(s.Case)
	if err != nil {
		return fmt.Errorf("encode case: %w", err)
	}
	logsJSON, err := json.Marshal(s.Transcript)
	if err != nil {
		return fmt.Errorf("encode transcript: %w", err)
	}

	values := map[Slot]string{
		SlotSaveCase:     string(caseJSON),
		SlotSaveLogs:     string(logsJSON),
		SlotSavePhase:    string(s.Phase),
		SlotSaveNotebook: s.Notebook,
	}
	for _, slot := range snapshotSlots {
		if err := g.Save(slot, values[slot]); err != nil {
			return err
		}
	}
	g.log.Debug("snapshot saved",
		zap.String("phase", string(s.Phase)),
		zap.Int("entries", s.Transcript.Len()),
	)
	return nil
}

// LoadSnapshot restores a saved session. It reports false when any of the
// case, transcript or phase slots is missing. When they are present but do
// not parse, every snapshot slot is cleared before reporting false.
func (g *Gateway) LoadSnapshot() (Snapshot, bool) {
	caseRaw, caseOK := g.Load(SlotSaveCase)
	logsRaw, logsOK := g.Load(SlotSaveLogs)
	phaseRaw, phaseOK := g.Load(SlotSavePhase)
	if !caseOK || !logsOK || !phaseOK {
		return Snapshot{}, false
	}

	snap, err := decodeSnapshot(caseRaw, logsRaw, phaseRaw)
	if err != nil {
		g.log.Warn("discarding corrupt snapshot", zap.Error(err))
		if clearErr := g.ClearSnapshot(); clearErr != nil {
			g.log.Warn("clear corrupt snapshot", zap.Error(clearErr))
		}
		return Snapshot{}, false
	}
	snap.Notebook, _ = g.Load(SlotSaveNotebook)
	return snap, true
}

func decodeSnapshot(caseRaw, logsRaw, phaseRaw string) (Snapshot, error) {
	var c court.Case
	if err := json.Unmarshal([]byte(caseRaw), &c); err != nil {
		return Snapshot{}, fmt.Errorf("decode case: %w", err)
	}
	if errs := court.ValidateCase(c); len(errs) > 0 {
		return Snapshot{}, fmt.Errorf("invalid case:\n%s", court.JoinValidationErrors(errs))
	}
	var tr court.Transcript
	if err := json.Unmarshal([]byte(logsRaw), &tr); err != nil {
		return Snapshot{}, fmt.Errorf("decode transcript: %w", err)
	}
	phase, err := court.ParsePhase(phaseRaw)
	if err != nil {
		return Snapshot{}, err
	}
	if !phase.Saveable() {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrPhaseNotSaveable, phase)
	}
	return Snapshot{Case: c, Transcript: tr, Phase: phase}, nil
}

// ClearSnapshot removes all four snapshot slots. It keeps going after a
// failure and returns the first error.
func (g *Gateway) ClearSnapshot() error {
	var first error
	for _, slot := range snapshotSlots {
		if err := g.Clear(slot); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// HasSnapshot reports whether a resumable snapshot exists. A corrupt one is
// cleared as a side effect.
func (g *Gateway) HasSnapshot() bool {
	_, ok := g.LoadSnapshot()
	return ok
}

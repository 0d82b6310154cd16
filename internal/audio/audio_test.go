package audio

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbonatakis/hakim/internal/config"
	"github.com/jbonatakis/hakim/internal/court"
)

type call struct {
	op        string
	track     TrackID
	volume    float64
	fromStart bool
}

type recordingPlayer struct {
	calls   []call
	failing bool
}

func (r *recordingPlayer) Play(t Track, volume float64, fromStart bool) error {
	r.calls = append(r.calls, call{op: "play", track: t.ID, volume: volume, fromStart: fromStart})
	if r.failing {
		return errors.New("playback denied")
	}
	return nil
}

func (r *recordingPlayer) Pause(id TrackID) error {
	r.calls = append(r.calls, call{op: "pause", track: id})
	return nil
}

func (r *recordingPlayer) SetVolume(id TrackID, volume float64) error {
	r.calls = append(r.calls, call{op: "volume", track: id, volume: volume})
	return nil
}

func (r *recordingPlayer) played() []TrackID {
	var out []TrackID
	for _, c := range r.calls {
		if c.op == "play" {
			out = append(out, c.track)
		}
	}
	return out
}

func (r *recordingPlayer) reset() {
	r.calls = nil
}

func TestNothingPlaysBeforeUnlock(t *testing.T) {
	p := &recordingPlayer{}
	c := NewCoordinator(p, config.DefaultMix(), nil)

	c.OnPhaseChange(court.PhaseMenu, court.PhaseLoading)
	c.OnPhaseChange(court.PhaseLoading, court.PhaseTrial)
	c.PlayOneShot(TrackGavel)
	assert.Empty(t, p.played())
	assert.False(t, c.Unlocked())
}

func TestUnlockStartsCurrentPhaseOnce(t *testing.T) {
	p := &recordingPlayer{}
	c := NewCoordinator(p, config.DefaultMix(), nil)
	c.OnPhaseChange(court.PhaseMenu, court.PhaseTrial)

	c.Unlock()
	assert.Equal(t, []TrackID{TrackTension, TrackAmbience}, p.played())

	p.reset()
	c.Unlock()
	assert.Empty(t, p.calls, "second unlock is a no-op")
}

func TestPhaseChangeSelectsTracks(t *testing.T) {
	cases := []struct {
		phase court.Phase
		want  []TrackID
	}{
		{court.PhaseMenu, []TrackID{TrackTheme}},
		{court.PhaseLoading, nil},
		{court.PhaseTrial, []TrackID{TrackTension, TrackAmbience}},
		{court.PhaseVerdict, []TrackID{TrackTension, TrackAmbience}},
		{court.PhaseEvaluation, []TrackID{TrackAmbience}},
	}
	for _, tc := range cases {
		t.Run(string(tc.phase), func(t *testing.T) {
			p := &recordingPlayer{}
			c := NewCoordinator(p, config.DefaultMix(), nil)
			c.Unlock()
			p.reset()

			c.OnPhaseChange(court.PhaseMenu, tc.phase)
			assert.Equal(t, tc.want, p.played())

			pauses := 0
			for _, call := range p.calls {
				if call.op == "pause" {
					pauses++
				}
			}
			assert.Equal(t, 3, pauses, "every phase loop is paused first")
		})
	}
}

func TestThemeRestartsTrialLoopsResume(t *testing.T) {
	p := &recordingPlayer{}
	c := NewCoordinator(p, config.DefaultMix(), nil)
	c.Unlock()
	for _, call := range p.calls {
		if call.op == "play" {
			assert.True(t, call.fromStart, "theme starts from zero")
		}
	}
	p.reset()
	c.OnPhaseChange(court.PhaseMenu, court.PhaseTrial)
	for _, call := range p.calls {
		if call.op == "play" {
			assert.False(t, call.fromStart, "%s resumes", call.track)
		}
	}
}

func TestVolumesFollowMix(t *testing.T) {
	mix := config.Mix{Music: 1, Ambience: 0.4, SFX: 0.8}
	want := map[TrackID]float64{
		TrackTheme:    0.6,
		TrackTension:  0.5,
		TrackAmbience: 0.2,
		TrackGavel:    0.8,
		TrackPaper:    0.8,
	}
	for _, tr := range Tracks() {
		assert.InDelta(t, want[tr.ID], tr.Volume(mix), 1e-9, string(tr.ID))
	}

	p := &recordingPlayer{}
	c := NewCoordinator(p, config.DefaultMix(), nil)
	c.SetLevel(config.BusMusic, 0.5)
	got := map[TrackID]float64{}
	for _, call := range p.calls {
		require.Equal(t, "volume", call.op)
		got[call.track] = call.volume
	}
	assert.Len(t, got, len(Tracks()))
	assert.InDelta(t, 0.3, got[TrackTheme], 1e-9)
	assert.InDelta(t, 0.25, got[TrackTension], 1e-9)
	assert.InDelta(t, 0.25, got[TrackAmbience], 1e-9)

	c.SetLevel(config.BusSFX, 7)
	assert.Equal(t, 1.0, c.Mix().SFX)
}

func TestOneShotUsesCurrentSFXLevel(t *testing.T) {
	p := &recordingPlayer{}
	c := NewCoordinator(p, config.DefaultMix(), nil)
	c.Unlock()
	c.SetMix(config.Mix{Music: 0.1, Ambience: 0.1, SFX: 0.3})
	p.reset()

	c.PlayOneShot(TrackPaper)
	require.Len(t, p.calls, 1)
	assert.Equal(t, call{op: "play", track: TrackPaper, volume: 0.3, fromStart: true}, p.calls[0])

	p.reset()
	c.PlayOneShot(TrackID("trumpet"))
	assert.Empty(t, p.calls)
}

func TestPlaybackErrorsAreSwallowed(t *testing.T) {
	p := &recordingPlayer{failing: true}
	c := NewCoordinator(p, config.DefaultMix(), nil)
	assert.NotPanics(t, func() {
		c.Unlock()
		c.OnPhaseChange(court.PhaseMenu, court.PhaseTrial)
		c.PlayOneShot(TrackGavel)
	})
	assert.NotEmpty(t, p.played())
}

func TestExecPlayerRejectsMissingCommand(t *testing.T) {
	_, err := NewExecPlayer("", t.TempDir())
	require.Error(t, err)
	_, err = NewExecPlayer("definitely-not-a-player-binary-4242", t.TempDir())
	require.Error(t, err)
}

func TestExecPlayerMissingFile(t *testing.T) {
	p := &ExecPlayer{command: []string{"true"}, dir: t.TempDir(), running: map[TrackID]*process{}, volume: map[TrackID]float64{}}
	gavel, _ := LookupTrack(TrackGavel)
	err := p.Play(gavel, 0.5, true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoAudioFile), fmt.Sprint(err))
	assert.NoError(t, p.Pause(TrackGavel))
	assert.NoError(t, p.Close())
}

package cli

import (
	"context"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/jbonatakis/hakim/internal/audio"
	"github.com/jbonatakis/hakim/internal/session"
	"github.com/jbonatakis/hakim/internal/tui"
)

func runGame(ctx context.Context, flags *globalFlags) error {
	e, err := openEnv(flags)
	if err != nil {
		return err
	}
	defer e.Close()

	svc, err := e.newOracle(ctx)
	if err != nil {
		return err
	}

	player, closePlayer := newPlayer(e)
	defer closePlayer()
	coordinator := audio.NewCoordinator(player, e.gw.LoadSettings().Mix, e.log)

	sess := session.New(session.Options{
		Gateway:      e.gw,
		Oracle:       svc,
		Audio:        coordinator,
		Logger:       e.log,
		OpeningDelay: e.rt.OpeningDelay,
	})
	e.log.Info("game started",
		zap.Int("progress", sess.Progress()),
		zap.Bool("resumable", sess.HasSnapshot()),
	)

	return tui.Start(tui.Options{
		Session: sess,
		Audio:   coordinator,
		Logger:  e.log,
		Context: ctx,
	})
}

// newPlayer returns the external audio player when one is configured. A
// broken player setup is logged and the game runs silent.
func newPlayer(e *env) (audio.Player, func()) {
	if e.rt.AudioPlayer == "" {
		return audio.NopPlayer{}, func() {}
	}
	dir := e.rt.AudioDir
	if dir == "" {
		dir = filepath.Join(e.rt.DataDir, "audio")
	}
	p, err := audio.NewExecPlayer(e.rt.AudioPlayer, dir)
	if err != nil {
		e.log.Warn("audio disabled", zap.Error(err))
		return audio.NopPlayer{}, func() {}
	}
	return p, func() {
		if err := p.Close(); err != nil {
			e.log.Warn("close audio player", zap.Error(err))
		}
	}
}

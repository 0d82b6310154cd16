package session

import (
	"go.uber.org/zap"

	"github.com/jbonatakis/hakim/internal/store"
)

// Save writes the running session and posts a confirmation notice. A reply
// or opening still in flight is not part of the save.
func (s *Session) Save() error {
	if !s.phase.Saveable() {
		return ErrNotSaveable
	}
	if s.activeCase == nil {
		return ErrNoCase
	}
	if err := s.saveSnapshot(); err != nil {
		return err
	}
	s.notice = Notice{Kind: NoticeInfo, Text: SavedNotice}
	return nil
}

// EditNotebook replaces the judge's private notes. They are persisted with
// the next save.
func (s *Session) EditNotebook(text string) error {
	if !s.phase.InGame() {
		return s.illegal("edit the notebook")
	}
	s.notebook = text
	return nil
}

func (s *Session) saveSnapshot() error {
	return s.gw.SaveSnapshot(store.Snapshot{
		Case:       *s.activeCase,
		Transcript: s.transcript,
		Phase:      s.phase,
		Notebook:   s.notebook,
	})
}

func (s *Session) clearSnapshot() {
	if err := s.gw.ClearSnapshot(); err != nil {
		s.log.Warn("clear snapshot failed", zap.Error(err))
	}
}

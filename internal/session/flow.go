package session

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jbonatakis/hakim/internal/audio"
	"github.com/jbonatakis/hakim/internal/court"
)

// BeginStart handles "start" from the menu. With a snapshot on disk the
// session resumes and no job is returned; otherwise a case is generated at
// the stored progress.
func (s *Session) BeginStart() (Job, error) {
	if s.phase != court.PhaseMenu {
		return nil, s.illegal("start")
	}
	if s.busy {
		return nil, ErrBusy
	}
	if err := s.Resume(); err == nil {
		return nil, nil
	}
	return s.beginGeneration()
}

// Start is the synchronous form of BeginStart.
func (s *Session) Start(ctx context.Context) error {
	job, err := s.BeginStart()
	return s.run(ctx, job, err)
}

// Resume restores the saved snapshot into the session, including its phase.
func (s *Session) Resume() error {
	if s.phase != court.PhaseMenu {
		return s.illegal("resume")
	}
	snap, ok := s.gw.LoadSnapshot()
	if !ok {
		return ErrNoSnapshot
	}
	s.resetCase()
	c := snap.Case
	s.activeCase = &c
	s.transcript = snap.Transcript
	s.notebook = snap.Notebook
	s.announce()
	s.log.Info("session resumed",
		zap.String("case", c.Title),
		zap.String("phase", string(snap.Phase)),
		zap.Int("entries", snap.Transcript.Len()),
	)
	s.setPhase(snap.Phase)
	return nil
}

// BeginNewGame discards the saved session and restarts the career at 1.
func (s *Session) BeginNewGame() (Job, error) {
	if s.phase != court.PhaseMenu {
		return nil, s.illegal("start a new game")
	}
	if s.busy {
		return nil, ErrBusy
	}
	s.setProgress(1)
	s.clearSnapshot()
	s.resetCase()
	return s.beginGeneration()
}

func (s *Session) NewGame(ctx context.Context) error {
	job, err := s.BeginNewGame()
	return s.run(ctx, job, err)
}

// BeginRestart throws away the current case and generates a fresh one at
// the same progress.
func (s *Session) BeginRestart() (Job, error) {
	if !s.phase.InGame() {
		return nil, s.illegal("restart")
	}
	if s.busy {
		return nil, ErrBusy
	}
	s.clearSnapshot()
	s.resetCase()
	return s.beginGeneration()
}

func (s *Session) Restart(ctx context.Context) error {
	job, err := s.BeginRestart()
	return s.run(ctx, job, err)
}

// BeginNextCase advances the career after an evaluation.
func (s *Session) BeginNextCase() (Job, error) {
	if s.phase != court.PhaseEvaluation {
		return nil, s.illegal("open the next case")
	}
	if s.busy {
		return nil, ErrBusy
	}
	s.setProgress(s.progress + 1)
	s.clearSnapshot()
	s.resetCase()
	return s.beginGeneration()
}

func (s *Session) NextCase(ctx context.Context) error {
	job, err := s.BeginNextCase()
	return s.run(ctx, job, err)
}

func (s *Session) beginGeneration() (Job, error) {
	if s.oracle == nil {
		return nil, ErrNoOracle
	}
	s.notice = Notice{}
	s.busy = true
	s.loadingMessage = fmt.Sprintf(loadingMessageFormat, s.progress)
	s.setPhase(court.PhaseLoading)
	s.log.Info("generating case", zap.Int("progress", s.progress), zap.String("tier", s.Tier().Label()))
	return &caseJob{client: s.oracle, progress: s.progress}, nil
}

// BeginOpenStatements reads the prosecution's opening now and the defense's
// once the returned job finishes.
func (s *Session) BeginOpenStatements() (Job, error) {
	if s.phase != court.PhaseTrial {
		return nil, s.illegal("hear opening statements")
	}
	if s.busy {
		return nil, ErrBusy
	}
	if s.activeCase == nil {
		return nil, ErrNoCase
	}
	if s.transcript.Len() > 0 {
		return nil, ErrOpeningDone
	}
	s.record(court.RoleProsecutor, court.ProsecutorLabel, s.activeCase.ProsecutionOpening)
	s.audio.PlayOneShot(audio.TrackPaper)
	s.busy = true
	return &openingJob{delay: s.openingDelay, caseGen: s.caseGen}, nil
}

func (s *Session) OpenStatements(ctx context.Context) error {
	job, err := s.BeginOpenStatements()
	return s.run(ctx, job, err)
}

// EnterVerdict moves from the courtroom to the verdict form.
func (s *Session) EnterVerdict() error {
	if s.phase != court.PhaseTrial {
		return s.illegal("enter verdict")
	}
	if s.busy {
		return ErrBusy
	}
	s.setPhase(court.PhaseVerdict)
	return nil
}

// ReturnToTrial leaves the verdict form with the trial state untouched.
func (s *Session) ReturnToTrial() error {
	if s.phase != court.PhaseVerdict {
		return s.illegal("return to trial")
	}
	if s.busy {
		return ErrBusy
	}
	s.setPhase(court.PhaseTrial)
	return nil
}

// SetVerdictInput replaces the verdict form. An unknown verdict is rejected
// and the form is left as it was; the remaining form rules are checked by
// the caller with VerdictInput.Validate.
func (s *Session) SetVerdictInput(v court.VerdictInput) error {
	if s.phase != court.PhaseVerdict {
		return s.illegal("edit the verdict")
	}
	if !v.Verdict.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidVerdict, v.Verdict)
	}
	s.verdict = v
	return nil
}

// BeginVerdict submits the verdict for evaluation. The saved session is
// dropped before the oracle is asked, so a crash mid-evaluation cannot
// resurrect a decided case.
func (s *Session) BeginVerdict() (Job, error) {
	if s.phase != court.PhaseVerdict {
		return nil, s.illegal("submit verdict")
	}
	if s.busy {
		return nil, ErrBusy
	}
	if s.activeCase == nil {
		return nil, ErrNoCase
	}
	if s.oracle == nil {
		return nil, ErrNoOracle
	}
	s.clearSnapshot()
	s.busy = true
	s.loadingMessage = DeliberationMessage
	s.setPhase(court.PhaseLoading)
	s.audio.PlayOneShot(audio.TrackGavel)
	s.log.Info("verdict submitted",
		zap.String("verdict", string(s.verdict.Verdict)),
		zap.String("expected", string(s.activeCase.CorrectVerdict)),
	)
	return &evaluationJob{client: s.oracle, c: *s.activeCase, verdict: s.verdict}, nil
}

func (s *Session) SubmitVerdict(ctx context.Context) error {
	job, err := s.BeginVerdict()
	return s.run(ctx, job, err)
}

// QuitToMenu leaves the game. A saveable session is written first; a
// failed save is logged and does not block the quit. A reply or opening
// still in flight is abandoned. Quitting is refused while a case is being
// generated or a verdict evaluated.
func (s *Session) QuitToMenu() error {
	if s.busy && s.phase == court.PhaseLoading {
		return ErrBusy
	}
	if s.phase == court.PhaseMenu {
		return nil
	}
	if s.phase.Saveable() && s.activeCase != nil {
		if err := s.saveSnapshot(); err != nil {
			s.log.Warn("save on quit failed", zap.Error(err))
		}
	}
	s.resetCase()
	s.setPhase(court.PhaseMenu)
	return nil
}

func (s *Session) setProgress(n int) {
	if n < 1 {
		n = 1
	}
	s.progress = n
	if err := s.gw.SaveProgress(n); err != nil {
		s.log.Warn("save progress failed", zap.Int("progress", n), zap.Error(err))
	}
}

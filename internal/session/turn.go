package session

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jbonatakis/hakim/internal/audio"
	"github.com/jbonatakis/hakim/internal/court"
	"github.com/jbonatakis/hakim/internal/oracle"
)

// SelectTarget picks who the next question goes to.
func (s *Session) SelectTarget(target string) error {
	if s.phase != court.PhaseTrial {
		return s.illegal("select a target")
	}
	s.pending.Target = strings.TrimSpace(target)
	return nil
}

// SelectEvidence attaches an item from the case file to the next question.
// An empty name detaches it.
func (s *Session) SelectEvidence(item string) error {
	if s.phase != court.PhaseTrial {
		return s.illegal("select evidence")
	}
	if item == "" {
		s.pending.Evidence = ""
		return nil
	}
	if s.activeCase == nil {
		return ErrNoCase
	}
	if _, ok := s.activeCase.EvidenceByName(item); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEvidence, item)
	}
	s.pending.Evidence = item
	return nil
}

func (s *Session) ToggleEvidenceSelector() {
	s.pending.SelectorOpen = !s.pending.SelectorOpen
}

func (s *Session) SetQuestion(text string) {
	s.pending.Question = text
}

// BeginQuestion sends the pending question. The judge's entry is in the
// transcript when this returns; the reply arrives with the job's result.
func (s *Session) BeginQuestion() (Job, error) {
	if s.phase != court.PhaseTrial {
		return nil, s.illegal("ask a question")
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
	question := strings.TrimSpace(s.pending.Question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}
	target := s.pending.Target
	if target == "" {
		return nil, ErrNoTarget
	}

	var evidence *court.Evidence
	if s.pending.Evidence != "" {
		ev, ok := s.activeCase.EvidenceByName(s.pending.Evidence)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownEvidence, s.pending.Evidence)
		}
		evidence = &ev
	}

	role, speaker := court.ResolveTarget(*s.activeCase, target)
	history := s.transcript.Recent(oracle.HistoryWindow)

	visible := question
	if evidence != nil {
		visible = fmt.Sprintf("[%s: %s] %s", EvidenceMarkerPrefix, evidence.Item, question)
	}
	s.record(court.RoleJudge, court.JudgeLabel, visible)

	s.pending.Evidence = ""
	s.pending.SelectorOpen = false
	s.pending.Question = ""
	s.busy = true
	if evidence != nil {
		s.audio.PlayOneShot(audio.TrackPaper)
	}

	s.log.Debug("question",
		zap.String("target", target),
		zap.String("role", string(role)),
		zap.Bool("evidence", evidence != nil),
	)
	return &replyJob{
		client: s.oracle,
		query: oracle.CharacterQuery{
			Case:     *s.activeCase,
			Role:     role,
			Target:   target,
			History:  history,
			Question: question,
			Evidence: evidence,
		},
		role:    role,
		speaker: speaker,
		caseGen: s.caseGen,
	}, nil
}

// SubmitQuestion selects target and evidence, sets the question and runs the
// turn to completion.
func (s *Session) SubmitQuestion(ctx context.Context, target, question, evidence string) error {
	if err := s.SelectTarget(target); err != nil {
		return err
	}
	if err := s.SelectEvidence(evidence); err != nil {
		return err
	}
	s.SetQuestion(question)
	job, err := s.BeginQuestion()
	return s.run(ctx, job, err)
}

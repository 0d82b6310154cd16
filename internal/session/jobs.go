package session

import (
	"context"
	"time"

	"github.com/jbonatakis/hakim/internal/audio"
	"github.com/jbonatakis/hakim/internal/court"
	"github.com/jbonatakis/hakim/internal/oracle"
)

// Job is the blocking half of a command: an oracle call or a timed pause.
// Run touches no session state and may execute on any goroutine; its Result
// is applied with Session.Complete on the session's goroutine.
type Job interface {
	Run(ctx context.Context) Result
}

// Result is the outcome of a Job.
type Result interface {
	apply(s *Session) error
}

// Complete applies a job's result. Exactly one job is in flight at a time,
// so results are applied in the order their jobs were started.
func (s *Session) Complete(r Result) error {
	return r.apply(s)
}

// run drives a job to completion on the calling goroutine.
func (s *Session) run(ctx context.Context, job Job, err error) error {
	if err != nil {
		return err
	}
	if job == nil {
		return nil
	}
	return s.Complete(job.Run(ctx))
}

type caseJob struct {
	client   oracle.Client
	progress int
}

type caseResult struct {
	progress int
	c        court.Case
	err      error
}

func (j *caseJob) Run(ctx context.Context) Result {
	c, err := j.client.GenerateCase(ctx, j.progress)
	return &caseResult{progress: j.progress, c: c, err: err}
}

func (r *caseResult) apply(s *Session) error {
	if s.phase != court.PhaseLoading || !s.busy {
		return ErrStaleResult
	}
	s.busy = false
	s.loadingMessage = ""
	if r.err != nil {
		s.notice = Notice{Kind: NoticeError, Text: GenerationFailedText}
		s.setPhase(court.PhaseMenu)
		return r.err
	}
	c := r.c
	s.activeCase = &c
	s.transcript = court.Transcript{}
	s.announce()
	s.setPhase(court.PhaseTrial)
	s.audio.PlayOneShot(audio.TrackGavel)
	return nil
}

type replyJob struct {
	client  oracle.Client
	query   oracle.CharacterQuery
	role    court.SpeakerRole
	speaker string
	caseGen uint64
}

type replyResult struct {
	role    court.SpeakerRole
	speaker string
	text    string
	caseGen uint64
}

func (j *replyJob) Run(ctx context.Context) Result {
	return &replyResult{
		role:    j.role,
		speaker: j.speaker,
		text:    j.client.AskCharacter(ctx, j.query),
		caseGen: j.caseGen,
	}
}

func (r *replyResult) apply(s *Session) error {
	if !s.busy || s.activeCase == nil || r.caseGen != s.caseGen {
		return ErrStaleResult
	}
	s.busy = false
	s.record(r.role, r.speaker, r.text)
	return nil
}

type openingJob struct {
	delay   time.Duration
	caseGen uint64
}

type openingResult struct {
	caseGen uint64
}

// Run waits out the pause between the two opening statements. A cancelled
// context ends the wait early.
func (j *openingJob) Run(ctx context.Context) Result {
	if j.delay > 0 {
		timer := time.NewTimer(j.delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
		}
	}
	return openingResult{caseGen: j.caseGen}
}

func (r openingResult) apply(s *Session) error {
	if !s.busy || s.activeCase == nil || r.caseGen != s.caseGen {
		return ErrStaleResult
	}
	s.busy = false
	s.record(court.RoleDefense, court.DefenseLabel, s.activeCase.DefenseOpening)
	s.audio.PlayOneShot(audio.TrackPaper)
	return nil
}

type evaluationJob struct {
	client  oracle.Client
	c       court.Case
	verdict court.VerdictInput
}

type evaluationResult struct {
	ev court.Evaluation
}

func (j *evaluationJob) Run(ctx context.Context) Result {
	return &evaluationResult{ev: j.client.EvaluateVerdict(ctx, j.c, j.verdict)}
}

func (r *evaluationResult) apply(s *Session) error {
	if s.phase != court.PhaseLoading || !s.busy {
		return ErrStaleResult
	}
	s.busy = false
	s.loadingMessage = ""
	ev := r.ev
	ev.Score = court.ClampScore(ev.Score)
	s.evaluation = &ev
	s.clearSnapshot()
	s.setPhase(court.PhaseEvaluation)
	return nil
}

package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/jbonatakis/hakim/internal/court"
)

// Service implements Client over any Generator. It owns prompt building,
// output validation and the fallback policy.
type Service struct {
	gen Generator
	log *zap.Logger
}

func NewService(gen Generator, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{gen: gen, log: logger.Named("oracle")}
}

// GenerateCase asks for a case at the tier for progress. Any failure is a
// *GenerationError; a partially valid case is never returned.
func (s *Service) GenerateCase(ctx context.Context, progress int) (court.Case, error) {
	if progress < 1 {
		progress = 1
	}
	fail := func(stage Stage, cause error, output string) (court.Case, error) {
		err := &GenerationError{Stage: stage, Progress: progress, Cause: cause, Output: output}
		s.log.Warn("case generation failed",
			zap.Int("progress", progress),
			zap.String("stage", string(stage)),
			zap.Error(cause),
		)
		return court.Case{}, err
	}

	req := buildCaseRequest(progress)
	s.log.Debug("generating case",
		zap.Int("progress", progress),
		zap.Int("tier", int(court.TierFor(progress))),
		zap.Float64("temperature", *req.Temperature),
	)
	output, err := s.gen.Generate(ctx, req)
	if err != nil {
		return fail(StageRequest, err, "")
	}

	obj, err := extractObject(output)
	if err != nil {
		return fail(StageExtract, err, output)
	}

	caseSchema, _, err := compiledSchemas()
	if err != nil {
		return fail(StageSchema, err, obj)
	}
	var doc any
	if err := json.Unmarshal([]byte(obj), &doc); err != nil {
		return fail(StageDecode, err, obj)
	}
	if err := caseSchema.Validate(doc); err != nil {
		return fail(StageSchema, err, obj)
	}

	var c court.Case
	if err := json.Unmarshal([]byte(obj), &c); err != nil {
		return fail(StageDecode, err, obj)
	}
	if errs := court.ValidateCase(c); len(errs) > 0 {
		return fail(StageValidate, errors.New(court.JoinValidationErrors(errs)), obj)
	}

	s.log.Info("case generated",
		zap.Int("progress", progress),
		zap.String("title", c.Title),
		zap.Int("witnesses", len(c.Witnesses)),
		zap.Int("evidence", len(c.Evidence)),
	)
	return c, nil
}

// AskCharacter returns the participant's reply, or FallbackReply when the
// generator fails in any way.
func (s *Service) AskCharacter(ctx context.Context, q CharacterQuery) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("character reply panicked", zap.Any("panic", r))
			reply = FallbackReply
		}
	}()

	output, err := s.gen.Generate(ctx, buildCharacterRequest(q))
	if err != nil {
		s.log.Warn("character reply failed",
			zap.String("role", string(q.Role)),
			zap.String("target", q.Target),
			zap.Error(err),
		)
		return FallbackReply
	}
	reply = strings.TrimSpace(output)
	if reply == "" {
		return EmptyReply
	}
	return reply
}

type evaluationWire struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
	Title    string  `json:"title"`
}

// EvaluateVerdict grades the verdict against the case's ground truth. The
// score is clamped to [0,100]; failures yield FallbackEvaluation.
func (s *Service) EvaluateVerdict(ctx context.Context, c court.Case, v court.VerdictInput) (ev court.Evaluation) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("evaluation panicked", zap.Any("panic", r))
			ev = FallbackEvaluation()
		}
	}()

	ev, err := s.evaluate(ctx, c, v)
	if err != nil {
		s.log.Warn("evaluation failed", zap.Error(err))
		return FallbackEvaluation()
	}
	s.log.Info("verdict evaluated",
		zap.String("verdict", string(v.Verdict)),
		zap.String("expected", string(c.CorrectVerdict)),
		zap.Int("score", ev.Score),
	)
	return ev
}

func (s *Service) evaluate(ctx context.Context, c court.Case, v court.VerdictInput) (court.Evaluation, error) {
	output, err := s.gen.Generate(ctx, buildEvaluationRequest(c, v))
	if err != nil {
		return court.Evaluation{}, err
	}
	obj, err := extractObject(output)
	if err != nil {
		return court.Evaluation{}, err
	}
	_, evaluationSchema, err := compiledSchemas()
	if err != nil {
		return court.Evaluation{}, err
	}
	var doc any
	if err := json.Unmarshal([]byte(obj), &doc); err != nil {
		return court.Evaluation{}, fmt.Errorf("decode evaluation: %w", err)
	}
	if err := evaluationSchema.Validate(doc); err != nil {
		return court.Evaluation{}, fmt.Errorf("evaluation schema: %w", err)
	}
	var wire evaluationWire
	if err := json.Unmarshal([]byte(obj), &wire); err != nil {
		return court.Evaluation{}, fmt.Errorf("decode evaluation: %w", err)
	}
	return court.Evaluation{
		Score:    court.ClampScore(int(math.Round(math.Max(-1, math.Min(101, wire.Score))))),
		Feedback: strings.TrimSpace(wire.Feedback),
		Title:    strings.TrimSpace(wire.Title),
	}, nil
}

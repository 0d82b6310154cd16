package oracle

import (
	"context"

	"github.com/jbonatakis/hakim/internal/court"
)

// Client is the game's view of the content oracle. GenerateCase fails hard;
// AskCharacter and EvaluateVerdict always return something usable.
type Client interface {
	GenerateCase(ctx context.Context, progress int) (court.Case, error)
	AskCharacter(ctx context.Context, q CharacterQuery) string
	EvaluateVerdict(ctx context.Context, c court.Case, v court.VerdictInput) court.Evaluation
}

type Kind string

const (
	KindCase       Kind = "case"
	KindCharacter  Kind = "character"
	KindEvaluation Kind = "evaluation"
)

// Request is one exchange with a generator. Hints carry the structured
// inputs behind the prompt so offline generators can answer without
// reading natural language.
type Request struct {
	Kind        Kind     `json:"kind"`
	System      string   `json:"system,omitempty"`
	Prompt      string   `json:"prompt"`
	JSON        bool     `json:"json"`
	Schema      string   `json:"schema,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	Hints       Hints    `json:"hints"`
}

type Hints struct {
	Progress  int               `json:"progress,omitempty"`
	Role      court.SpeakerRole `json:"role,omitempty"`
	Target    string            `json:"target,omitempty"`
	Evidence  string            `json:"evidence,omitempty"`
	Submitted court.Verdict     `json:"submitted,omitempty"`
	Expected  court.Verdict     `json:"expected,omitempty"`
}

// Generator is the transport to a text generation backend. It returns the
// raw text output.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, req Request) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// CharacterQuery is one question from the bench to a participant.
type CharacterQuery struct {
	Case     court.Case
	Role     court.SpeakerRole
	Target   string
	History  []court.Entry
	Question string
	Evidence *court.Evidence
}

// HistoryWindow is how many recent transcript entries a character sees.
const HistoryWindow = 3

const (
	FallbackReply = "Müsadenizle, bu soruya şu an yanıt veremiyorum."
	EmptyReply    = "(...)"
)

func FallbackEvaluation() court.Evaluation {
	return court.Evaluation{
		Score:    50,
		Feedback: "Karar teknik nedenlerle değerlendirilemedi.",
		Title:    "Hükümsüz",
	}
}

package oracle

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/jbonatakis/hakim/internal/court"
)

//go:embed fixtures/default.yaml
var defaultFixtures []byte

// FixtureSet is the YAML shape of a fixture file.
type FixtureSet struct {
	Cases       []court.Case                   `yaml:"cases"`
	Replies     map[court.SpeakerRole][]string `yaml:"replies"`
	Evaluations struct {
		Correct court.Evaluation `yaml:"correct"`
		Wrong   court.Evaluation `yaml:"wrong"`
	} `yaml:"evaluations"`
}

// Fixture answers from canned content. Cases cycle by progress, replies
// rotate per role and evaluations depend on whether the verdict matched.
type Fixture struct {
	set FixtureSet

	mu   sync.Mutex
	next map[court.SpeakerRole]int
}

func DefaultFixture() (*Fixture, error) {
	return ParseFixture(defaultFixtures)
}

func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}
	return ParseFixture(data)
}

func ParseFixture(data []byte) (*Fixture, error) {
	var set FixtureSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}
	if len(set.Cases) == 0 {
		return nil, fmt.Errorf("fixtures define no cases")
	}
	return &Fixture{set: set, next: map[court.SpeakerRole]int{}}, nil
}

func (f *Fixture) Generate(ctx context.Context, req Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	switch req.Kind {
	case KindCase:
		progress := req.Hints.Progress
		if progress < 1 {
			progress = 1
		}
		c := f.set.Cases[(progress-1)%len(f.set.Cases)]
		return marshalString(c)
	case KindCharacter:
		return f.reply(req.Hints.Role), nil
	case KindEvaluation:
		ev := f.set.Evaluations.Wrong
		if req.Hints.Submitted == req.Hints.Expected {
			ev = f.set.Evaluations.Correct
		}
		return marshalString(ev)
	default:
		return "", fmt.Errorf("fixture cannot answer %q requests", req.Kind)
	}
}

func (f *Fixture) reply(role court.SpeakerRole) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	replies := f.set.Replies[role]
	if len(replies) == 0 {
		replies = f.set.Replies[court.RoleWitness]
	}
	if len(replies) == 0 {
		return ""
	}
	i := f.next[role] % len(replies)
	f.next[role]++
	return replies[i]
}

func marshalString(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

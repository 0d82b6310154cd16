package court

import (
	"encoding/json"
	"fmt"
	"strings"
)

type Verdict string

const (
	Guilty    Verdict = "Guilty"
	NotGuilty Verdict = "Not Guilty"
)

// ParseVerdict accepts the canonical values plus the spellings models tend to
// produce ("NotGuilty", "not guilty", "not_guilty").
func ParseVerdict(s string) (Verdict, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("_", "", "-", "", " ", "").Replace(norm)
	switch norm {
	case "guilty":
		return Guilty, nil
	case "notguilty":
		return NotGuilty, nil
	default:
		return "", fmt.Errorf("invalid verdict %q", s)
	}
}

func (v Verdict) Valid() bool {
	return v == Guilty || v == NotGuilty
}

func (v *Verdict) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseVerdict(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

type Evidence struct {
	Item        string `json:"item" yaml:"item"`
	Description string `json:"description" yaml:"description"`
}

type Witness struct {
	Name        string `json:"name" yaml:"name"`
	Role        string `json:"role" yaml:"role"`
	Testimony   string `json:"testimony" yaml:"testimony"`
	Personality string `json:"personality" yaml:"personality"`
}

// Case is one generated scenario. It is never mutated after generation.
type Case struct {
	Title              string     `json:"title" yaml:"title"`
	DefendantName      string     `json:"defendantName" yaml:"defendantName"`
	Crime              string     `json:"crime" yaml:"crime"`
	Summary            string     `json:"summary" yaml:"summary"`
	ProsecutionOpening string     `json:"prosecutionOpening" yaml:"prosecutionOpening"`
	DefenseOpening     string     `json:"defenseOpening" yaml:"defenseOpening"`
	Evidence           []Evidence `json:"evidence" yaml:"evidence"`
	Witnesses          []Witness  `json:"witnesses" yaml:"witnesses"`
	KeyPoints          []string   `json:"keyPoints" yaml:"keyPoints"`
	CorrectVerdict     Verdict    `json:"correctVerdict" yaml:"correctVerdict"`
	Reasoning          string     `json:"reasoning" yaml:"reasoning"`
}

func (c Case) EvidenceByName(name string) (Evidence, bool) {
	for _, ev := range c.Evidence {
		if ev.Item == name {
			return ev, true
		}
	}
	return Evidence{}, false
}

func (c Case) WitnessByName(name string) (Witness, bool) {
	for _, w := range c.Witnesses {
		if w.Name == name {
			return w, true
		}
	}
	return Witness{}, false
}

// VerdictInput is what the presiding judge submits at the end of a trial.
type VerdictInput struct {
	Verdict   Verdict `json:"verdict"`
	Sentence  string  `json:"sentence,omitempty"`
	Reasoning string  `json:"reasoning"`
}

func NewVerdictInput() VerdictInput {
	return VerdictInput{Verdict: NotGuilty}
}

// Validate applies the form rule used by the verdict view: a guilty verdict
// needs a sentence.
func (v VerdictInput) Validate() []ValidationError {
	var errs []ValidationError
	if !v.Verdict.Valid() {
		errs = append(errs, ValidationError{Path: "$.verdict", Message: fmt.Sprintf("invalid verdict %q", v.Verdict)})
	}
	if v.Verdict == Guilty && strings.TrimSpace(v.Sentence) == "" {
		errs = append(errs, ValidationError{Path: "$.sentence", Message: "required for a guilty verdict"})
	}
	return errs
}

type Evaluation struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
	Title    string `json:"title"`
}

func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

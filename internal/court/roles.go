package court

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

type SpeakerRole string

const (
	RoleJudge      SpeakerRole = "Judge"
	RoleProsecutor SpeakerRole = "Prosecutor"
	RoleDefense    SpeakerRole = "Defense Attorney"
	RoleWitness    SpeakerRole = "Witness"
	RoleDefendant  SpeakerRole = "Defendant"
	RoleSystem     SpeakerRole = "System"
)

// Display names used in the transcript and the target selector.
const (
	ProsecutorLabel = "Katılan Vekili"
	DefenseLabel    = "Sanık Müdafii"
	JudgeLabel      = "Mahkeme Başkanı (Siz)"
	ClerkLabel      = "Mübaşir"
	DefendantLabel  = "Sanık"
	WitnessLabel    = "Tanık"
)

func (r SpeakerRole) Valid() bool {
	switch r {
	case RoleJudge, RoleProsecutor, RoleDefense, RoleWitness, RoleDefendant, RoleSystem:
		return true
	default:
		return false
	}
}

// Title is the Turkish name of the role, used where the speaker name alone
// is ambiguous.
func (r SpeakerRole) Title() string {
	switch r {
	case RoleProsecutor:
		return ProsecutorLabel
	case RoleDefense:
		return DefenseLabel
	case RoleWitness:
		return WitnessLabel
	case RoleDefendant:
		return DefendantLabel
	case RoleSystem:
		return ClerkLabel
	case RoleJudge:
		return "Mahkeme Başkanı"
	default:
		return string(r)
	}
}

func (r *SpeakerRole) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	role := SpeakerRole(s)
	if s == "Defense" {
		role = RoleDefense
	}
	if !role.Valid() {
		return fmt.Errorf("invalid speaker role %q", s)
	}
	*r = role
	return nil
}

var (
	prosecutorAliases = []string{"Prosecutor", ProsecutorLabel}
	defenseAliases    = []string{"Defense", string(RoleDefense), DefenseLabel}
)

// ResolveTarget maps a selected target to the role that answers and the
// name recorded in the transcript. Precedence: prosecutor, defense,
// defendant, then any other name is treated as a witness.
func ResolveTarget(c Case, target string) (SpeakerRole, string) {
	target = strings.TrimSpace(target)
	switch {
	case matchesAlias(target, prosecutorAliases):
		return RoleProsecutor, ProsecutorLabel
	case matchesAlias(target, defenseAliases):
		return RoleDefense, DefenseLabel
	case target != "" && target == strings.TrimSpace(c.DefendantName):
		return RoleDefendant, target
	default:
		return RoleWitness, target
	}
}

func matchesAlias(target string, aliases []string) bool {
	fold := cases.Fold()
	folded := fold.String(target)
	for _, alias := range aliases {
		if folded == fold.String(alias) {
			return true
		}
	}
	return false
}

// Targets lists everyone the judge can question, in selector order.
func Targets(c Case) []string {
	out := []string{ProsecutorLabel, DefenseLabel}
	if c.DefendantName != "" {
		out = append(out, c.DefendantName)
	}
	for _, w := range c.Witnesses {
		if w.Name != "" {
			out = append(out, w.Name)
		}
	}
	return out
}

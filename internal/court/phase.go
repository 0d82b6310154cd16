package court

import "fmt"

// Phase is the session's current stage. The string values are also the
// persisted phase tags.
type Phase string

const (
	PhaseMenu       Phase = "MENU"
	PhaseLoading    Phase = "LOADING"
	PhaseTrial      Phase = "TRIAL"
	PhaseVerdict    Phase = "VERDICT"
	PhaseEvaluation Phase = "EVALUATION"
)

func ParsePhase(s string) (Phase, error) {
	switch p := Phase(s); p {
	case PhaseMenu, PhaseLoading, PhaseTrial, PhaseVerdict, PhaseEvaluation:
		return p, nil
	default:
		return "", fmt.Errorf("unknown phase %q", s)
	}
}

// Saveable reports whether a snapshot may be written in p.
func (p Phase) Saveable() bool {
	return p == PhaseTrial || p == PhaseVerdict
}

// InGame reports whether p belongs to a running session.
func (p Phase) InGame() bool {
	return p == PhaseTrial || p == PhaseVerdict || p == PhaseEvaluation
}

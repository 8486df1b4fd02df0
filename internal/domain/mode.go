package domain

// ResponseMode selects the oracle's answer-generation strategy.
type ResponseMode string

const (
	ModeTraining     ResponseMode = "training"
	ModeProfessional ResponseMode = "professional"
	ModeWeb          ResponseMode = "web"
	ModeRAG          ResponseMode = "rag"
	ModeMix          ResponseMode = "mix"
)

// DefaultMode is used for new users and fresh sessions.
const DefaultMode = ModeTraining

// ResponseModes in display order.
var ResponseModes = []ResponseMode{
	ModeTraining, ModeProfessional, ModeWeb, ModeRAG, ModeMix,
}

// ParseResponseMode validates mode input. Unknown values are rejected, not
// defaulted, so garbage never silently degrades the mode/oracle pairing.
func ParseResponseMode(s string) (ResponseMode, error) {
	m := ResponseMode(s)
	for _, known := range ResponseModes {
		if m == known {
			return m, nil
		}
	}
	return "", ErrInvalidMode
}

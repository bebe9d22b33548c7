package capture

// Phase is the tagged state of a capture session.
type Phase int

const (
	PhaseCollapsed Phase = iota
	PhaseExpanded
	PhaseSubmitting
	PhaseSubmitted
)

func (p Phase) String() string {
	switch p {
	case PhaseCollapsed:
		return "collapsed"
	case PhaseExpanded:
		return "expanded"
	case PhaseSubmitting:
		return "submitting"
	case PhaseSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}

// Session is the ephemeral per-visit capture state machine:
//
//	Collapsed → Expanded → Submitting → Submitted
//
// Expanded is also the retry target after any submission error. Submitted
// is terminal; a new capture needs a new session. Sessions are never
// persisted.
type Session struct {
	phase Phase
	email string
}

// NewSession starts a session in the collapsed phase.
func NewSession() *Session {
	return &Session{phase: PhaseCollapsed}
}

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Email returns the address most recently entered into the session.
func (s *Session) Email() string { return s.email }

// Expand reveals the input field. No network call is involved; expanding an
// already-expanded session is a no-op, and a terminal session stays put.
func (s *Session) Expand() {
	if s.phase == PhaseCollapsed {
		s.phase = PhaseExpanded
	}
}

// SetEmail records the user's input. Allowed in any non-terminal phase.
func (s *Session) SetEmail(email string) {
	if s.phase != PhaseSubmitted {
		s.email = email
	}
}

// beginSubmit moves Expanded → Submitting.
func (s *Session) beginSubmit() bool {
	if s.phase != PhaseExpanded {
		return false
	}
	s.phase = PhaseSubmitting
	return true
}

// completeSubmit moves Submitting → Submitted, the terminal phase.
func (s *Session) completeSubmit() {
	if s.phase == PhaseSubmitting {
		s.phase = PhaseSubmitted
	}
}

// failSubmit returns the session to Expanded so the user may retry.
func (s *Session) failSubmit() {
	if s.phase == PhaseSubmitting {
		s.phase = PhaseExpanded
	}
}

package capture

import (
	"context"

	"go.uber.org/zap"
)

// ValidationError is a locally-recovered input error; it never reaches the
// network layer and leaves the session in Expanded.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

var (
	errEmailRequired = &ValidationError{Reason: "Please enter your email address"}
	errEmailInvalid  = &ValidationError{Reason: "Please enter a valid email address"}
)

// Store is the slice of the email store the workflow needs: append one
// record. Injected, never reached through a global.
type Store interface {
	Insert(ctx context.Context, email string) error
}

// Subscriber delivers an address to the external subscription service.
type Subscriber interface {
	Subscribe(ctx context.Context, email string) error
}

// Workflow orchestrates validator → gateway → store for one submission.
//
// Subscription delivery is authoritative; persistence to the management
// store is a compensation-free second step. A store failure after gateway
// success is logged and the submission still lands in Submitted.
type Workflow struct {
	gateway Subscriber
	store   Store
	log     *zap.Logger
}

// NewWorkflow wires the workflow's collaborators.
func NewWorkflow(gateway Subscriber, store Store, log *zap.Logger) *Workflow {
	if log == nil {
		log = zap.NewNop()
	}
	return &Workflow{gateway: gateway, store: store, log: log}
}

// Submit drives one submission attempt through the session state machine.
// On any error the session is back in Expanded for a manual retry; on
// success it is in Submitted, terminal for this session.
func (w *Workflow) Submit(ctx context.Context, s *Session) error {
	s.Expand()

	email := s.Email()
	if email == "" {
		return errEmailRequired
	}
	if !ValidEmail(email) {
		return errEmailInvalid
	}

	if !s.beginSubmit() {
		return &ValidationError{Reason: "submission already completed"}
	}

	if err := w.gateway.Subscribe(ctx, email); err != nil {
		s.failSubmit()
		return err
	}

	// Best-effort secondary write: the welcome email is already on its way,
	// so a store failure must not invert the outcome.
	if err := w.store.Insert(ctx, email); err != nil {
		w.log.Warn("email captured but not persisted to management store",
			zap.String("email", email),
			zap.Error(err),
		)
	}

	s.completeSubmit()
	return nil
}

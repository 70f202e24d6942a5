package mfa

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authkit/pkg/statemachine"
)

// lifecycle builds the transition table for second-factor records.
// Setup is refused once active; verify from active re-checks a login code.
func (s *Service) lifecycle() *statemachine.Definition {
	persist := statemachine.WithActions(s.persistAction)
	return statemachine.MustDefinition(
		statemachine.FromAny(
			[]statemachine.State{StateNotConfigured, StatePending},
			StatePending, EventSetup, persist,
		),
		statemachine.FromAny(
			[]statemachine.State{StatePending, StateActive},
			StateActive, EventVerify, persist,
		),
		statemachine.FromAny(
			[]statemachine.State{StateNotConfigured, StatePending, StateActive},
			StateNotConfigured, EventDisable,
			statemachine.WithActions(s.deleteAction),
		),
	)
}

func (s *Service) persistAction(ctx context.Context, _, _ statemachine.State, event statemachine.Event, data any) error {
	rec, ok := data.(*Settings)
	if !ok || rec == nil {
		return fmt.Errorf("%s: unexpected payload %T", event, data)
	}
	return s.store.PutSettings(ctx, rec)
}

func (s *Service) deleteAction(ctx context.Context, _, _ statemachine.State, event statemachine.Event, data any) error {
	id, ok := data.(uuid.UUID)
	if !ok {
		return fmt.Errorf("%s: unexpected payload %T", event, data)
	}
	return s.store.DeleteSettings(ctx, id)
}

// Package statemachine implements a small finite state machine with guarded
// transitions and side-effecting actions.
//
// A Definition holds the transition table and is built once; Start creates a
// Machine for one entity's current state:
//
//	def := statemachine.MustDefinition(
//	    statemachine.WithTransition("pending", "active", "verify",
//	        statemachine.WithActions(persist)),
//	)
//	m := def.Start(currentState)
//	if err := m.Fire(ctx, "verify", record); errors.Is(err, statemachine.ErrNoTransition) {
//	    // event not allowed from currentState
//	}
//
// Actions run before the state changes; the first failing action aborts the
// transition and its error is returned wrapped.
package statemachine

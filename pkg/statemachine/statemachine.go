package statemachine

import (
	"context"
	"fmt"
	"sync"
)

// State names a node of the machine.
type State string

// Event names a trigger for a transition.
type Event string

// Action executes side effects during a transition. Returning an error
// aborts the transition and leaves the machine in its previous state.
type Action func(ctx context.Context, from, to State, event Event, data any) error

// Guard decides at fire time whether a transition may proceed.
type Guard func(ctx context.Context, from State, event Event, data any) bool

// Transition defines a state change triggered by an event.
type Transition struct {
	From    State
	To      State
	Event   Event
	Guards  []Guard  // all must pass
	Actions []Action // run in order before the state changes
}

// Definition is an immutable transition table. Build it once and start any
// number of machines from it.
type Definition struct {
	table map[State]map[Event][]Transition
}

// Option configures a Definition during construction.
type Option func(*Definition) error

// NewDefinition builds a transition table from options.
func NewDefinition(opts ...Option) (*Definition, error) {
	d := &Definition{table: make(map[State]map[Event][]Transition)}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// MustDefinition is NewDefinition that panics on error.
func MustDefinition(opts ...Option) *Definition {
	d, err := NewDefinition(opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to build state machine definition: %v", err))
	}
	return d
}

func (d *Definition) add(t Transition) error {
	if t.From == "" || t.To == "" || t.Event == "" {
		return ErrInvalidTransition
	}
	if _, ok := d.table[t.From]; !ok {
		d.table[t.From] = make(map[Event][]Transition)
	}
	// Several transitions per from/event are allowed; the first whose guards pass wins.
	d.table[t.From][t.Event] = append(d.table[t.From][t.Event], t)
	return nil
}

// Events lists the events that have at least one transition out of from.
func (d *Definition) Events(from State) []Event {
	events := make([]Event, 0, len(d.table[from]))
	for e := range d.table[from] {
		events = append(events, e)
	}
	return events
}

// Start creates a machine positioned at initial.
func (d *Definition) Start(initial State) *Machine {
	return &Machine{def: d, initial: initial, current: initial}
}

// Machine is a running instance of a Definition. It is safe for concurrent use;
// Fire calls are serialized, including their actions.
type Machine struct {
	def     *Definition
	initial State

	mu      sync.Mutex
	current State
}

// Current returns the current state.
func (m *Machine) Current() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Fire runs the first eligible transition for event.
func (m *Machine) Fire(ctx context.Context, event Event, data any) error {
	if event == "" {
		return ErrInvalidEvent
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	t, err := m.find(ctx, event, data)
	if err != nil {
		return err
	}

	for _, action := range t.Actions {
		if err := action(ctx, m.current, t.To, event, data); err != nil {
			return fmt.Errorf("action failed: %w", err)
		}
	}

	m.current = t.To
	return nil
}

// CanFire reports whether Fire would find an eligible transition.
// Actions are not run.
func (m *Machine) CanFire(ctx context.Context, event Event, data any) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, err := m.find(ctx, event, data)
	return err == nil
}

// Reset moves the machine back to its initial state without running actions.
func (m *Machine) Reset() {
	m.mu.Lock()
	m.current = m.initial
	m.mu.Unlock()
}

func (m *Machine) find(ctx context.Context, event Event, data any) (*Transition, error) {
	candidates := m.def.table[m.current][event]
	if len(candidates) == 0 {
		return nil, &NoTransitionError{State: m.current, Event: event}
	}

	for i := range candidates {
		if guardsPass(ctx, candidates[i].Guards, m.current, event, data) {
			return &candidates[i], nil
		}
	}
	return nil, &RejectedError{State: m.current, Event: event}
}

func guardsPass(ctx context.Context, guards []Guard, from State, event Event, data any) bool {
	for _, g := range guards {
		if !g(ctx, from, event, data) {
			return false
		}
	}
	return true
}

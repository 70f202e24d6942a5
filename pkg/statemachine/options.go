package statemachine

import "fmt"

// TransitionOption configures a single transition with guards and actions.
type TransitionOption func(*Transition)

// WithTransition adds a single transition.
func WithTransition(from, to State, event Event, opts ...TransitionOption) Option {
	return func(d *Definition) error {
		t := Transition{From: from, To: to, Event: event}
		for _, opt := range opts {
			opt(&t)
		}
		return d.add(t)
	}
}

// WithTransitions adds multiple transitions at once. Nil guards and actions are dropped.
func WithTransitions(transitions []Transition) Option {
	return func(d *Definition) error {
		for i, t := range transitions {
			clean := Transition{From: t.From, To: t.To, Event: t.Event}
			WithGuards(t.Guards...)(&clean)
			WithActions(t.Actions...)(&clean)
			if err := d.add(clean); err != nil {
				return fmt.Errorf("transition[%d] %q->%q on %q: %w", i, t.From, t.To, t.Event, err)
			}
		}
		return nil
	}
}

// FromAny adds the same event/target transition from each of the given states.
func FromAny(from []State, to State, event Event, opts ...TransitionOption) Option {
	return func(d *Definition) error {
		for _, f := range from {
			if err := WithTransition(f, to, event, opts...)(d); err != nil {
				return err
			}
		}
		return nil
	}
}

// WithGuards adds guards to a transition.
func WithGuards(guards ...Guard) TransitionOption {
	return func(t *Transition) {
		for _, g := range guards {
			if g != nil {
				t.Guards = append(t.Guards, g)
			}
		}
	}
}

// WithActions adds actions to a transition.
func WithActions(actions ...Action) TransitionOption {
	return func(t *Transition) {
		for _, a := range actions {
			if a != nil {
				t.Actions = append(t.Actions, a)
			}
		}
	}
}

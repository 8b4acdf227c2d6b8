// Package session is a host controller for one phone-input widget. It owns
// the machine state, serializes event dispatch, and hands results to the
// base-widget callbacks.
package session

import (
	"sync"

	"github.com/ppiankov/phoneinput/internal/adapter"
	"github.com/ppiankov/phoneinput/internal/country"
	"github.com/ppiankov/phoneinput/internal/logger"
	"github.com/ppiankov/phoneinput/internal/machine"
	"github.com/ppiankov/phoneinput/internal/policy"
)

// Session holds one widget's state. It is safe for concurrent use; events are
// applied one at a time in lock order.
type Session struct {
	mu     sync.Mutex
	state  machine.State
	policy policy.Policy
	cfg    options
}

// New creates a session for a freshly mounted widget.
func New(p policy.Policy, model, countryCode machine.NullString, opts ...Option) *Session {
	cfg := options{log: logger.Discard()}
	for _, o := range opts {
		o(&cfg)
	}
	return &Session{
		state:  machine.NewState(model, countryCode, machine.ConfigFromPolicy(p)),
		policy: p,
		cfg:    cfg,
	}
}

// State returns the current state.
func (s *Session) State() machine.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Policy returns the policy the session is running under.
func (s *Session) Policy() policy.Policy {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.policy
}

// Dispatch applies one event and returns the resulting state. Callbacks run
// after the lock is released, so they may dispatch again.
func (s *Session) Dispatch(ev machine.Event) machine.State {
	s.mu.Lock()
	after, fx := s.apply(ev)
	s.mu.Unlock()

	fx.run(s.cfg)
	return after
}

// ApplyPolicy switches the session to a new policy and re-derives the input under it.
func (s *Session) ApplyPolicy(p policy.Policy) machine.State {
	s.mu.Lock()
	s.policy = p
	after, fx := s.apply(machine.SyncConfig{Config: machine.ConfigFromPolicy(p)})
	s.mu.Unlock()

	fx.run(s.cfg)
	return after
}

// Commit writes the normalized input back as the model value, the way the
// base widget echoes an accepted number. An empty input commits null.
func (s *Session) Commit() machine.State {
	s.mu.Lock()
	v := machine.NullString{}
	if n := s.state.NormalizedInput; n != "" {
		v = machine.Some(n)
	}
	after, fx := s.apply(machine.BaseModelUpdated{Value: v})
	s.mu.Unlock()

	fx.run(s.cfg)
	return after
}

// effects are the callbacks owed after a dispatch.
type effects struct {
	phone   *adapter.BasePayload
	country *machine.NullString
}

func (fx effects) run(cfg options) {
	if fx.phone != nil {
		adapter.PushPhoneUpdate(cfg.onPhone, *fx.phone)
	}
	if fx.country != nil {
		adapter.PushCountryUpdate(cfg.onCountry, *fx.country)
	}
}

// apply must be called with s.mu held.
func (s *Session) apply(ev machine.Event) (machine.State, effects) {
	before := s.state
	after := machine.Transition(before, ev)
	s.cfg.log.Transition(eventName(ev), before.RawInput, after.RawInput, after.NormalizedInput)

	var fx effects
	switch ev.(type) {
	case machine.UserTyped, machine.SyncConfig, machine.ExternalModelChanged:
		p := adapter.NewBasePayload(after.NormalizedInput, after.Config)
		fx.phone = &p
	case machine.CountrySelected, machine.ExternalCountryChanged:
		c := after.Country
		fx.country = &c
	}

	if _, typed := ev.(machine.UserTyped); typed && s.cfg.detect {
		if res, ok := country.Detect(after.Snapshot, s.policy.Country); ok && after.Country.OrEmpty() != res.Region {
			after = machine.Transition(after, machine.ExternalCountryChanged{Value: machine.Some(res.Region)})
			s.cfg.log.CountryDetected(res.Region, string(res.Source))
			c := after.Country
			fx.country = &c
		}
	}

	s.state = after
	return after, fx
}

func eventName(ev machine.Event) string {
	if ev == nil {
		return "<nil>"
	}
	return string(ev.Type())
}

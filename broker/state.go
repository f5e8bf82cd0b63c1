package broker

import (
	"context"

	"github.com/leadkit/igbroker/pkg/statemachine"
)

// Account lifecycle states. State is reconstructed per call from the
// pending maps, the client registry and the presence of a disk record, so
// a process restart lands each account back in the right state.
const (
	StateAnonymous        = statemachine.StringState("anonymous")
	StateTwoFactorPending = statemachine.StringState("two_factor_pending")
	StateChallengePending = statemachine.StringState("challenge_pending")
	StateAuthenticated    = statemachine.StringState("authenticated")
	StateExpired          = statemachine.StringState("expired")
)

// Lifecycle events.
const (
	EventLoginOK            = statemachine.StringEvent("login_ok")
	EventTwoFactorRequired  = statemachine.StringEvent("two_factor_required")
	EventChallengeRequired  = statemachine.StringEvent("challenge_required")
	EventTwoFactorCompleted = statemachine.StringEvent("two_factor_completed")
	EventChallengeResolved  = statemachine.StringEvent("challenge_resolved")
	EventSessionRestored    = statemachine.StringEvent("session_restored")
	EventSessionExpired     = statemachine.StringEvent("session_expired")
	EventLogout             = statemachine.StringEvent("logout")
)

// lifecycle validates account transitions. The broker consults it in
// advisory mode: an off-table transition is logged, never blocked, so a
// stuck account can always recover through login or logout.
var lifecycle = newLifecycle()

func newLifecycle() statemachine.StateMachine {
	sm := statemachine.MustNew(StateAnonymous)

	transitions := []struct {
		from  statemachine.StringState
		to    statemachine.StringState
		event statemachine.StringEvent
	}{
		{StateAnonymous, StateAuthenticated, EventLoginOK},
		{StateAnonymous, StateTwoFactorPending, EventTwoFactorRequired},
		{StateAnonymous, StateChallengePending, EventChallengeRequired},
		{StateAnonymous, StateAuthenticated, EventSessionRestored},

		{StateTwoFactorPending, StateAuthenticated, EventTwoFactorCompleted},
		{StateTwoFactorPending, StateChallengePending, EventChallengeRequired},

		{StateChallengePending, StateAuthenticated, EventChallengeResolved},
		{StateChallengePending, StateExpired, EventSessionExpired},

		{StateAuthenticated, StateChallengePending, EventChallengeRequired},
		{StateAuthenticated, StateExpired, EventSessionExpired},

		{StateExpired, StateAuthenticated, EventSessionRestored},
		{StateExpired, StateAuthenticated, EventLoginOK},

		{StateAnonymous, StateAnonymous, EventLogout},
		{StateTwoFactorPending, StateAnonymous, EventLogout},
		{StateChallengePending, StateAnonymous, EventLogout},
		{StateAuthenticated, StateAnonymous, EventLogout},
		{StateExpired, StateAnonymous, EventLogout},
	}
	for _, t := range transitions {
		if err := sm.AddTransition(t.from, t.to, t.event, nil, nil); err != nil {
			panic(err)
		}
	}
	return sm
}

// AccountState derives the lifecycle state for accountID from current
// broker bookkeeping. Pending verification wins over a live client, a live
// client wins over a disk record.
func (s *Service) AccountState(accountID string) statemachine.StringState {
	s.mu.Lock()
	_, has2FA := s.pending2FA[accountID]
	_, hasChallenge := s.pendingChallenge[accountID]
	s.mu.Unlock()

	switch {
	case has2FA:
		return StateTwoFactorPending
	case hasChallenge:
		return StateChallengePending
	}
	if _, ok := s.registry.Get(accountID); ok {
		return StateAuthenticated
	}
	if s.store.Exists(accountID) {
		return StateExpired
	}
	return StateAnonymous
}

// observeTransition checks event against the lifecycle table from the
// account's current state and logs a warning when the transition is not on
// the table. It never fails the surrounding operation.
func (s *Service) observeTransition(ctx context.Context, accountID string, event statemachine.StringEvent) {
	from := s.AccountState(accountID)
	if _, err := lifecycle.Peek(ctx, from, event, accountID); err != nil {
		s.log.WarnContext(ctx, "unexpected account lifecycle transition",
			"account_id", accountID,
			"from", string(from),
			"event", string(event),
		)
	}
}

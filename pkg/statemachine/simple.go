package statemachine

import (
	"context"
	"fmt"
	"sync"
)

// SimpleStateMachine provides a thread-safe in-memory state machine
// implementation. Uses a nested map structure for O(1) transition lookups:
// [fromState][event][]Transition.
type SimpleStateMachine struct {
	initialState State
	currentState State
	transitions  map[string]map[string][]Transition
	mu           sync.RWMutex
}

// New creates a state machine starting in initialState.
func New(initialState State) (*SimpleStateMachine, error) {
	if initialState == nil {
		return nil, ErrInvalidTransition
	}
	return &SimpleStateMachine{
		initialState: initialState,
		currentState: initialState,
		transitions:  make(map[string]map[string][]Transition),
	}, nil
}

// MustNew creates a state machine and panics on error, for package-level
// transition tables that must exist before the process can serve anything.
func MustNew(initialState State) *SimpleStateMachine {
	sm, err := New(initialState)
	if err != nil {
		panic(fmt.Sprintf("failed to create state machine: %v", err))
	}
	return sm
}

func (sm *SimpleStateMachine) Current() State {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.currentState
}

func (sm *SimpleStateMachine) AddTransition(from, to State, event Event, guards []Guard, actions []Action) error {
	if from == nil || to == nil || event == nil {
		return ErrInvalidTransition
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	fromStateName := from.Name()
	eventName := event.Name()

	if _, ok := sm.transitions[fromStateName]; !ok {
		sm.transitions[fromStateName] = make(map[string][]Transition)
	}

	// Multiple transitions allowed for same from/event to support guard-based branching
	sm.transitions[fromStateName][eventName] = append(sm.transitions[fromStateName][eventName], Transition{
		From:    from,
		To:      to,
		Event:   event,
		Guards:  guards,
		Actions: actions,
	})
	return nil
}

func (sm *SimpleStateMachine) Fire(ctx context.Context, event Event, data any) error {
	if event == nil {
		return ErrInvalidEvent
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	t, err := sm.match(ctx, sm.currentState, event, data)
	if err != nil {
		return err
	}

	// Execute actions before state change; any failure aborts the transition.
	for _, action := range t.Actions {
		if action != nil {
			if err := action(ctx, sm.currentState, t.To, event, data); err != nil {
				return fmt.Errorf("action failed: %w", err)
			}
		}
	}

	sm.currentState = t.To
	return nil
}

func (sm *SimpleStateMachine) CanFire(ctx context.Context, event Event, data any) bool {
	if event == nil {
		return false
	}

	sm.mu.RLock()
	defer sm.mu.RUnlock()

	_, err := sm.match(ctx, sm.currentState, event, data)
	return err == nil
}

// Peek resolves the target state for an event fired from an arbitrary state,
// without mutating the machine. It lets callers that reconstruct state per
// call validate a transition against a shared table.
func (sm *SimpleStateMachine) Peek(ctx context.Context, from State, event Event, data any) (State, error) {
	if from == nil {
		return nil, ErrInvalidTransition
	}
	if event == nil {
		return nil, ErrInvalidEvent
	}

	sm.mu.RLock()
	defer sm.mu.RUnlock()

	t, err := sm.match(ctx, from, event, data)
	if err != nil {
		return nil, err
	}
	return t.To, nil
}

func (sm *SimpleStateMachine) Reset() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.currentState = sm.initialState
	return nil
}

// match finds the first transition from the given state whose guards all
// pass. Callers must hold at least a read lock.
func (sm *SimpleStateMachine) match(ctx context.Context, from State, event Event, data any) (*Transition, error) {
	fromName := from.Name()
	eventName := event.Name()

	transitions, ok := sm.transitions[fromName][eventName]
	if !ok || len(transitions) == 0 {
		return nil, NewErrNoTransitionAvailable(fromName, eventName)
	}

	// First transition with passing guards wins (enables priority ordering).
	for i, t := range transitions {
		allGuardsPassed := true
		for _, guard := range t.Guards {
			if guard != nil && !guard(ctx, from, event, data) {
				allGuardsPassed = false
				break
			}
		}
		if allGuardsPassed {
			return &transitions[i], nil
		}
	}

	return nil, NewErrTransitionRejected(fromName, eventName)
}

package domain

import (
	"fmt"
	"sync"
)

// FlowState is a state of the tribute page flow.
type FlowState string

const (
	// FlowLoading: the wall has not finished reading from the store.
	FlowLoading FlowState = "loading"
	// FlowReady: the merged feed is available and submissions are accepted.
	FlowReady FlowState = "ready"
	// FlowSubmitting: a validated submission is being recorded.
	FlowSubmitting FlowState = "submitting"
	// FlowConfirmed: the last submission completed; a confirmation is showing.
	FlowConfirmed FlowState = "confirmed"
)

var flowTransitions = map[FlowState][]FlowState{
	FlowLoading:    {FlowReady},
	FlowReady:      {FlowSubmitting},
	FlowSubmitting: {FlowConfirmed},
	FlowConfirmed:  {FlowReady, FlowSubmitting},
}

// Flow is the page-level state machine shared by every tribute flow variant.
// It is safe for concurrent use.
type Flow struct {
	mu    sync.Mutex
	state FlowState
}

// NewFlow returns a Flow in FlowLoading.
func NewFlow() *Flow {
	return &Flow{state: FlowLoading}
}

// State returns the current state.
func (f *Flow) State() FlowState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Transition moves to next, or returns ErrInvalidTransition and leaves the
// state unchanged.
func (f *Flow) Transition(next FlowState) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, allowed := range flowTransitions[f.state] {
		if allowed == next {
			f.state = next
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, f.state, next)
}

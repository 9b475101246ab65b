package domain

import (
	"errors"
	"fmt"
)

// ErrUnresolvedAction is returned when a node produces an action that has
// neither an explicit edge nor a default edge. It is a graph definition bug.
var ErrUnresolvedAction = errors.New("unresolved action")

// ErrUnknownNode is returned when the engine is asked to run a node that is not in the graph.
var ErrUnknownNode = errors.New("unknown node")

// ErrMalformedStore is returned by task stores whose persisted document cannot be decoded.
var ErrMalformedStore = errors.New("malformed task store")

// TransitionError reports the node and action that could not be resolved.
type TransitionError struct {
	NodeID string
	Action Action
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("node '%s' produced action '%s' with no matching edge and no default", e.NodeID, e.Action)
}

// Unwrap allows errors.Is(err, ErrUnresolvedAction).
func (e *TransitionError) Unwrap() error {
	return ErrUnresolvedAction
}

package ports

import (
	"context"

	"github.com/aretw0/taskflow/pkg/domain"
)

// Step is a unit of work with a three-phase lifecycle over shared state S.
//
// Prepare receives a copy of the state and extracts the input P.
// Execute performs the work without any access to the state and returns R.
// Finalize is the only phase allowed to mutate the state; it returns the
// action that selects the outgoing edge.
type Step[S, P, R any] interface {
	Prepare(state S) P
	Execute(ctx context.Context, in P) R
	Finalize(state *S, in P, out R) domain.Action
}

// ActionDeclarer is optionally implemented by steps to list every action
// their Finalize may return. Graph builders use it to reject incomplete
// transition tables before the first run.
type ActionDeclarer interface {
	Actions() []domain.Action
}

// Node is a step bound to an identifier. The engine only deals with nodes.
type Node[S any] interface {
	ID() string
	Activate(ctx context.Context, state *S) domain.Action
}

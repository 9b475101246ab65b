package dsl

import (
	"context"

	"github.com/aretw0/taskflow/pkg/domain"
	"github.com/aretw0/taskflow/pkg/ports"
)

// stepNode binds a Step to an identifier and runs its three phases in order.
type stepNode[S, P, R any] struct {
	id   string
	step ports.Step[S, P, R]
}

// Wrap turns a Step into a Node identified by id.
func Wrap[S, P, R any](id string, step ports.Step[S, P, R]) ports.Node[S] {
	return &stepNode[S, P, R]{id: id, step: step}
}

func (n *stepNode[S, P, R]) ID() string {
	return n.id
}

// Activate runs Prepare on a copy of the state, Execute without access to it,
// and Finalize with write access.
func (n *stepNode[S, P, R]) Activate(ctx context.Context, state *S) domain.Action {
	in := n.step.Prepare(*state)
	out := n.step.Execute(ctx, in)
	return n.step.Finalize(state, in, out)
}

// Actions forwards the declared actions of the wrapped step, if any.
func (n *stepNode[S, P, R]) Actions() []domain.Action {
	if d, ok := any(n.step).(ports.ActionDeclarer); ok {
		return d.Actions()
	}
	return nil
}

// NodeBuilder provides a fluent API for configuring the edges of a node.
type NodeBuilder[S any] struct {
	node      ports.Node[S]
	edges     map[domain.Action]string
	order     []domain.Action
	terminals map[domain.Action]bool
	fallback  string
}

// On adds an edge taken when the node returns action.
func (n *NodeBuilder[S]) On(action domain.Action, target string) *NodeBuilder[S] {
	if _, exists := n.edges[action]; !exists {
		n.order = append(n.order, action)
	}
	n.edges[action] = target
	return n
}

// Default sets the edge used for ActionDefault and for any action without an explicit edge.
func (n *NodeBuilder[S]) Default(target string) *NodeBuilder[S] {
	n.fallback = target
	return n
}

// Terminal marks action as ending the run.
func (n *NodeBuilder[S]) Terminal(action domain.Action) *NodeBuilder[S] {
	n.terminals[action] = true
	return n
}

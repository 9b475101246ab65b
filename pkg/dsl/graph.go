package dsl

import (
	"sort"

	"github.com/aretw0/taskflow/pkg/domain"
	"github.com/aretw0/taskflow/pkg/ports"
)

type compiledNode[S any] struct {
	node      ports.Node[S]
	edges     map[domain.Action]string
	order     []domain.Action
	terminals map[domain.Action]bool
	fallback  string
}

func (c *compiledNode[S]) resolvable(action domain.Action) bool {
	if c.terminals[action] {
		return true
	}
	if _, ok := c.edges[action]; ok {
		return true
	}
	return c.fallback != ""
}

// Graph is a compiled, read-only set of nodes and transition tables.
type Graph[S any] struct {
	entry string
	order []string
	nodes map[string]*compiledNode[S]
}

// Entry returns the id of the entry node.
func (g *Graph[S]) Entry() string {
	return g.entry
}

// Node returns the node registered under id.
func (g *Graph[S]) Node(id string) (ports.Node[S], bool) {
	cn, ok := g.nodes[id]
	if !ok {
		return nil, false
	}
	return cn.node, true
}

// NodeIDs returns the node ids in registration order.
func (g *Graph[S]) NodeIDs() []string {
	return append([]string(nil), g.order...)
}

// Resolve looks up the edge for action leaving node from.
// Explicit edges win over the terminal flag, which wins over the default edge.
// It returns terminal=true when the action ends the run, and a
// *domain.TransitionError when nothing matches.
func (g *Graph[S]) Resolve(from string, action domain.Action) (next string, terminal bool, err error) {
	cn, ok := g.nodes[from]
	if !ok {
		return "", false, &domain.TransitionError{NodeID: from, Action: action}
	}
	if target, ok := cn.edges[action]; ok {
		return target, false, nil
	}
	if cn.terminals[action] {
		return "", true, nil
	}
	if cn.fallback != "" {
		return cn.fallback, false, nil
	}
	return "", false, &domain.TransitionError{NodeID: from, Action: action}
}

// Transitions lists every edge of the graph, in registration order.
func (g *Graph[S]) Transitions() []domain.Transition {
	var out []domain.Transition
	for _, id := range g.order {
		cn := g.nodes[id]
		for _, action := range cn.order {
			out = append(out, domain.Transition{FromNodeID: id, ToNodeID: cn.edges[action], Action: action})
		}
		if cn.fallback != "" {
			out = append(out, domain.Transition{FromNodeID: id, ToNodeID: cn.fallback, Action: domain.ActionDefault})
		}
		terminals := make([]string, 0, len(cn.terminals))
		for action := range cn.terminals {
			terminals = append(terminals, string(action))
		}
		sort.Strings(terminals)
		for _, action := range terminals {
			out = append(out, domain.Transition{FromNodeID: id, Action: domain.Action(action), Terminal: true})
		}
	}
	return out
}

package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/taskflow/pkg/domain"
	"github.com/aretw0/taskflow/pkg/ports"
)

// BuildError describes one problem found while compiling a graph.
type BuildError struct {
	NodeID string
	Reason string
}

func (e *BuildError) Error() string {
	if e.NodeID == "" {
		return "graph: " + e.Reason
	}
	return fmt.Sprintf("graph: node '%s': %s", e.NodeID, e.Reason)
}

// Builder manages the graph construction.
type Builder[S any] struct {
	nodes map[string]*NodeBuilder[S]
	order []string
	entry string
	errs  []error
}

// New creates a new graph builder over shared state S.
func New[S any]() *Builder[S] {
	return &Builder[S]{
		nodes: make(map[string]*NodeBuilder[S]),
	}
}

// Add registers a node in the graph and returns its edge builder.
// Registering the same id twice is reported by Build.
func (b *Builder[S]) Add(node ports.Node[S]) *NodeBuilder[S] {
	nb := &NodeBuilder[S]{
		node:      node,
		edges:     make(map[domain.Action]string),
		terminals: make(map[domain.Action]bool),
	}
	if _, exists := b.nodes[node.ID()]; exists {
		b.errs = append(b.errs, &BuildError{NodeID: node.ID(), Reason: "registered more than once"})
		return nb
	}
	b.nodes[node.ID()] = nb
	b.order = append(b.order, node.ID())
	return nb
}

// Start sets the entry node.
func (b *Builder[S]) Start(id string) *Builder[S] {
	b.entry = id
	return b
}

// Build compiles the transition tables into an immutable Graph.
// All problems found are returned together.
func (b *Builder[S]) Build() (*Graph[S], error) {
	errs := append([]error(nil), b.errs...)

	if b.entry == "" {
		errs = append(errs, &BuildError{Reason: "no entry node"})
	} else if _, ok := b.nodes[b.entry]; !ok {
		errs = append(errs, &BuildError{NodeID: b.entry, Reason: "entry node is not registered"})
	}

	g := &Graph[S]{
		entry: b.entry,
		order: append([]string(nil), b.order...),
		nodes: make(map[string]*compiledNode[S], len(b.nodes)),
	}

	for _, id := range b.order {
		nb := b.nodes[id]

		if len(nb.edges) == 0 && len(nb.terminals) == 0 && nb.fallback == "" {
			errs = append(errs, &BuildError{NodeID: id, Reason: "has no outgoing edge"})
		}
		for _, action := range nb.order {
			if _, ok := b.nodes[nb.edges[action]]; !ok {
				errs = append(errs, &BuildError{NodeID: id, Reason: fmt.Sprintf("action '%s' targets unknown node '%s'", action, nb.edges[action])})
			}
		}
		if nb.fallback != "" {
			if _, ok := b.nodes[nb.fallback]; !ok {
				errs = append(errs, &BuildError{NodeID: id, Reason: fmt.Sprintf("default edge targets unknown node '%s'", nb.fallback)})
			}
		}

		cn := &compiledNode[S]{
			node:      nb.node,
			edges:     make(map[domain.Action]string, len(nb.edges)),
			order:     append([]domain.Action(nil), nb.order...),
			terminals: make(map[domain.Action]bool, len(nb.terminals)),
			fallback:  nb.fallback,
		}
		for k, v := range nb.edges {
			cn.edges[k] = v
		}
		for k, v := range nb.terminals {
			cn.terminals[k] = v
		}

		if d, ok := nb.node.(ports.ActionDeclarer); ok {
			for _, action := range d.Actions() {
				if !cn.resolvable(action) {
					errs = append(errs, &BuildError{NodeID: id, Reason: fmt.Sprintf("declared action '%s' has no edge", action)})
				}
			}
		}

		g.nodes[id] = cn
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return g, nil
}

package domain

// Transition describes one edge of the graph, used for introspection
// (e.g. Mermaid export). The engine resolves edges through the graph itself.
type Transition struct {
	FromNodeID string `json:"from_node_id" yaml:"from"`
	ToNodeID   string `json:"to_node_id,omitempty" yaml:"to,omitempty"`

	// Action is the outcome that selects this edge.
	// ActionDefault marks the fallback edge.
	Action Action `json:"action" yaml:"action"`

	// Terminal marks an action that ends the run instead of moving to a node.
	Terminal bool `json:"terminal,omitempty" yaml:"terminal,omitempty"`
}

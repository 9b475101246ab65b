package domain

// Action is the symbolic outcome of a node activation.
// The engine uses it as the key into the node's transition table.
type Action string

// ActionDefault selects the node's default edge.
// A node whose Finalize returns an action without an explicit edge also
// falls back to its default edge, when one is configured.
const ActionDefault Action = "default"

// String implements fmt.Stringer.
func (a Action) String() string {
	return string(a)
}

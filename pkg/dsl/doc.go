/*
Package dsl provides a Go DSL for programmatically constructing taskflow graphs.

A graph is a set of nodes plus, per node, a transition table mapping the actions its
steps return to the next node. The fluent builder keeps the wiring readable and
checks it once, at construction time, so that the engine only has to deal with the
residual runtime case of an action nobody declared.

Example usage:

	b := dsl.New[State]()

	b.Add(dsl.Wrap[State, Question, Answer]("ask", askStep)).
		On("answer", "check").
		On("quit", "ask").
		Terminal("bye")

	b.Add(dsl.Wrap[State, Answer, bool]("check", checkStep)).
		Default("ask")

	graph, err := b.Start("ask").Build()
	if err != nil {
		log.Fatal(err)
	}
*/
package dsl

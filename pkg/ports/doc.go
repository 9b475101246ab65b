/*
Package ports defines the interfaces that connect the taskflow engine to its nodes
and the task board to its collaborators.

These interfaces decouple the core logic from external implementations, allowing
the board to work with various storage backends, language models and date parsers.

# Key Interfaces

  - Step: The three-phase lifecycle (Prepare, Execute, Finalize) of a unit of work.
  - Node: A step bound to an identifier, as seen by the engine.
  - TaskStore: Whole-document persistence of the task list.
  - Breakdowner: Splits a task description into estimated micro-steps.
  - DateParser: Resolves free-text deadline hints.
*/
package ports

/*
Package domain contains the core domain models of the taskflow engine and its task board.

It defines the symbolic actions that drive transitions, the task records kept on the
board, the shared state threaded through every node, and the lifecycle events used for
observability. This package is kept pure and free of external dependencies like I/O or
persistence, following Hexagonal Architecture principles.

# Key Entities

  - Action: The outcome of a node, used to pick the next edge.
  - Task: A persisted record with description, priority, schedule and breakdown.
  - State: The shared context of a run (task list plus the transient Turn).
  - TransitionError: The fatal error for an action with no matching edge.
*/
package domain

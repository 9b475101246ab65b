// Package steps holds the nodes of the task assistant graph.
//
// Every step follows the three-phase lifecycle of ports.Step over
// domain.State and exposes itself as a graph node through Node().
package steps

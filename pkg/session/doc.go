// Package session provides the session handle that owns the persisted task
// list for one process: it hydrates the list once and writes it back on save.
package session

// Package queue holds the single-slot pending-review queue.
//
// The Store keeps at most one Item: inserting a new one unconditionally
// evicts the previous entry ("replace" semantics). The stored name is the
// only correlation key between an item and externally produced verdicts,
// and merging a verdict into a missing item is a silent no-op rather than
// an error, because verdict producers run decoupled from uploads.
//
// Storage is an in-memory SQLite database pinned to one connection; the
// queue is deliberately transient and lost on restart. Note that concurrent
// uploads race on the slot with last-completion-wins ordering: whichever
// normalization finishes last performs the final Replace. That is inherited,
// documented behavior, not something Replace guards against.
package queue

// Package state persists the init pipeline's progress in
// <bootstrap>/.init-state.json.
//
// The state file is loaded once at command start, normalized through a
// versioned migration list, mutated in memory, and saved atomically. The
// stage field only moves forward, and only through Approve.
package state

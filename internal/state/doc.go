// Package state holds the client's UI state and the reducer that advances it.
//
// State is a value. Reduce takes the current State and an Action and returns
// the next State together with the Effects (HTTP calls) the caller must run.
// Reduce never performs I/O and never mutates the State it is given; slices
// are copied before they change. Effect results come back as further Actions.
//
// Requests are never cancelled. Results that belong to a session or request
// that is no longer current carry enough identity (a session id or a
// sequence number) for Reduce to recognise and drop them.
package state

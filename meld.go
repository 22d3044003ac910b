package meld

import (
	"github.com/meldlab/meld/boundary"
	"github.com/meldlab/meld/store"
)

// Session re-exports the boundary session type.
type Session = boundary.Session

// Handle re-exports the boundary document handle.
type Handle = boundary.Handle

// Store re-exports the persistent document store.
type Store = store.Store

// NewSession creates an empty document session.
func NewSession(opts ...boundary.Option) *Session {
	return boundary.NewSession(opts...)
}

// OpenStore opens or creates a persistent document store at path.
func OpenStore(path string, opts ...store.Option) (*Store, error) {
	return store.Open(path, opts...)
}

package boundary

import (
	"sync"

	"go.uber.org/zap"

	"github.com/meldlab/meld/actor"
	"github.com/meldlab/meld/engine"
	"github.com/meldlab/meld/errors"
	"github.com/meldlab/meld/item"
	"github.com/meldlab/meld/result"
)

// Session owns a set of open documents and issues handles for them.
// Sessions are safe for concurrent use; individual documents are not,
// callers serialize operations per handle.
type Session struct {
	table *docTable
	log   *zap.Logger

	mu     sync.Mutex
	closed bool
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(s *Session) {
		if log != nil {
			s.log = log
		}
	}
}

// NewSession creates an empty session.
func NewSession(opts ...Option) *Session {
	s := &Session{
		table: newDocTable(),
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close destroys every open document. Subsequent operations report an
// error result.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.table.close()
	s.log.Debug("session closed")
}

func (s *Session) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// doc resolves a handle, mapping failures into the error taxonomy.
func (s *Session) doc(phase errors.Phase, h Handle) (*engine.Doc, *errors.Error) {
	if s.isClosed() {
		return nil, errors.Closed(phase, "session")
	}
	d, ok := s.table.get(h)
	if !ok {
		return nil, errors.DocNotFound(phase, uint32(h))
	}
	return d, nil
}

// Create opens a new empty document under a random actor identity and
// yields its handle.
func (s *Session) Create() *result.Result {
	return s.admit(errors.PhaseCreate, engine.New())
}

// CreateWithActor opens a new empty document under the given actor
// identity and yields its handle.
func (s *Session) CreateWithActor(id actor.ID) *result.Result {
	d, err := engine.NewWithActor(id)
	if err != nil {
		return result.FromError(err)
	}
	return s.admit(errors.PhaseCreate, d)
}

// admit registers a document in the table and yields its handle.
func (s *Session) admit(phase errors.Phase, d *engine.Doc) *result.Result {
	if s.isClosed() {
		return result.FromError(errors.Closed(phase, "session"))
	}
	h, ok := s.table.add(d)
	if !ok {
		return result.FromError(errors.Closed(phase, "session"))
	}
	s.log.Debug("document opened",
		zap.Uint32("handle", uint32(h)),
		zap.String("actor", d.Actor().String()))
	return result.Ok(item.Doc(uint32(h)))
}

// Destroy closes the document behind h and recycles the handle.
func (s *Session) Destroy(h Handle) *result.Result {
	if s.isClosed() {
		return result.FromError(errors.Closed(errors.PhaseDestroy, "session"))
	}
	if !s.table.drop(h) {
		return result.FromError(errors.DocNotFound(errors.PhaseDestroy, uint32(h)))
	}
	s.log.Debug("document destroyed", zap.Uint32("handle", uint32(h)))
	return result.Void()
}

// ConfigureActor replaces the actor identity of the document behind h.
// An empty identity is rejected.
func (s *Session) ConfigureActor(h Handle, id actor.ID) *result.Result {
	d, derr := s.doc(errors.PhaseConfig, h)
	if derr != nil {
		return result.FromError(derr)
	}
	if err := d.SetActor(id); err != nil {
		return result.FromError(err)
	}
	return result.Void()
}

// ActorID yields the actor identity of the document behind h.
func (s *Session) ActorID(h Handle) *result.Result {
	d, derr := s.doc(errors.PhaseRead, h)
	if derr != nil {
		return result.FromError(derr)
	}
	return result.Ok(item.ActorID(d.Actor()))
}

// Doc exposes the underlying document for callers that bypass the result
// surface, such as the persistent store.
func (s *Session) Doc(h Handle) (*engine.Doc, bool) {
	if s.isClosed() {
		return nil, false
	}
	return s.table.get(h)
}

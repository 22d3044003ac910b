// Package store persists saved documents in a Pebble key-value database,
// zstd-compressed, addressed by name.
package store

import (
	"sync"

	"github.com/cockroachdb/pebble"
	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"

	"github.com/meldlab/meld/errors"
)

// docPrefix namespaces document keys so future record types can share the
// database.
var docPrefix = []byte("d:")

// Store is a persistent document store. Safe for concurrent use.
type Store struct {
	db      *pebble.DB
	encoder *zstd.Encoder
	decoder *zstd.Decoder
	log     *zap.Logger

	mu     sync.Mutex
	closed bool
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// Open opens or creates a store at path.
func Open(path string, opts ...Option) (*Store, error) {
	db, err := pebble.Open(path, &pebble.Options{
		Cache:        pebble.NewCache(8 << 20),
		MemTableSize: 4 << 20,
	})
	if err != nil {
		return nil, errors.Wrap(errors.PhaseStore, errors.KindInvalidData, err, "open database")
	}

	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(errors.PhaseStore, errors.KindInvalidData, err, "create encoder")
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		encoder.Close()
		_ = db.Close()
		return nil, errors.Wrap(errors.PhaseStore, errors.KindInvalidData, err, "create decoder")
	}

	s := &Store{
		db:      db,
		encoder: encoder,
		decoder: decoder,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Store) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func docKey(name string) []byte {
	return append(append([]byte{}, docPrefix...), name...)
}

// Put stores data under name, replacing any previous version.
func (s *Store) Put(name string, data []byte) error {
	if s.isClosed() {
		return errors.Closed(errors.PhaseStore, "store")
	}
	if name == "" {
		return errors.InvalidInput(errors.PhaseStore, "document name must be non-empty")
	}

	compressed := s.encoder.EncodeAll(data, nil)
	if err := s.db.Set(docKey(name), compressed, pebble.Sync); err != nil {
		return errors.Wrap(errors.PhaseStore, errors.KindInvalidData, err, "write document")
	}
	s.log.Debug("document stored",
		zap.String("name", name),
		zap.Int("raw", len(data)),
		zap.Int("compressed", len(compressed)))
	return nil
}

// Get retrieves the document stored under name.
func (s *Store) Get(name string) ([]byte, error) {
	if s.isClosed() {
		return nil, errors.Closed(errors.PhaseStore, "store")
	}

	value, closer, err := s.db.Get(docKey(name))
	if err == pebble.ErrNotFound {
		return nil, errors.NotFound(errors.PhaseStore, "document", name)
	}
	if err != nil {
		return nil, errors.Wrap(errors.PhaseStore, errors.KindInvalidData, err, "read document")
	}

	// Copy before closing, the value is only valid until then.
	compressed := make([]byte, len(value))
	copy(compressed, value)
	if err := closer.Close(); err != nil {
		return nil, errors.Wrap(errors.PhaseStore, errors.KindInvalidData, err, "read document")
	}

	data, err := s.decoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, errors.Corrupt(errors.PhaseStore, "decompress document "+name, err)
	}
	return data, nil
}

// Delete removes the document stored under name. Deleting an absent name
// is an error.
func (s *Store) Delete(name string) error {
	if s.isClosed() {
		return errors.Closed(errors.PhaseStore, "store")
	}

	key := docKey(name)
	_, closer, err := s.db.Get(key)
	if err == pebble.ErrNotFound {
		return errors.NotFound(errors.PhaseStore, "document", name)
	}
	if err != nil {
		return errors.Wrap(errors.PhaseStore, errors.KindInvalidData, err, "read document")
	}
	_ = closer.Close()

	if err := s.db.Delete(key, pebble.Sync); err != nil {
		return errors.Wrap(errors.PhaseStore, errors.KindInvalidData, err, "delete document")
	}
	return nil
}

// List returns the stored document names in lexicographic order.
func (s *Store) List() ([]string, error) {
	if s.isClosed() {
		return nil, errors.Closed(errors.PhaseStore, "store")
	}

	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: docPrefix,
		UpperBound: prefixUpperBound(docPrefix),
	})
	if err != nil {
		return nil, errors.Wrap(errors.PhaseStore, errors.KindInvalidData, err, "list documents")
	}
	defer iter.Close()

	var names []string
	for iter.First(); iter.Valid(); iter.Next() {
		names = append(names, string(iter.Key()[len(docPrefix):]))
	}
	if err := iter.Error(); err != nil {
		return nil, errors.Wrap(errors.PhaseStore, errors.KindInvalidData, err, "list documents")
	}
	return names, nil
}

// Close releases the database and codec resources.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	s.encoder.Close()
	s.decoder.Close()
	return s.db.Close()
}

// prefixUpperBound computes the exclusive upper bound for a prefix scan.
func prefixUpperBound(prefix []byte) []byte {
	upper := make([]byte, len(prefix))
	copy(upper, prefix)
	for i := len(upper) - 1; i >= 0; i-- {
		upper[i]++
		if upper[i] != 0 {
			return upper
		}
	}
	return nil
}

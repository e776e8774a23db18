package store

// Store persists the root document. Load returns the current state, or an
// empty document when nothing has been saved yet. Save replaces the persisted
// copy in full; a concurrent Load must never observe a partial document.
//
// Callers are expected to serialize load-mutate-save sequences themselves;
// the store only guarantees that individual operations are atomic.
type Store interface {
	Load() (*Document, error)
	Save(*Document) error
}

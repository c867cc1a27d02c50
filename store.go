package authx

import "encoding/json"

const (
	bundleStorageKey = "authx.session.tokens"
	// Reserved alongside the bundle for a cached profile artifact. The
	// manager never writes it, but Clear removes it so a host that does
	// cache there cannot leak a profile past logout.
	profileStorageKey = "authx.session.profile"
)

// SessionStore holds at most one TokenBundle in the session-scoped storage
// facility. It owns the bundle exclusively for the lifetime of the browsing
// session.
type SessionStore struct {
	storage Storage
}

// NewSessionStore wraps the given storage facility. A nil storage gets an
// in-process MemoryStorage.
func NewSessionStore(storage Storage) *SessionStore {
	if storage == nil {
		storage = NewMemoryStorage()
	}
	return &SessionStore{storage: storage}
}

// Save serializes the bundle and stores it under the fixed key, overwriting
// any prior bundle.
func (s *SessionStore) Save(bundle TokenBundle) error {
	payload, err := json.Marshal(bundle)
	if err != nil {
		return newError(ErrCodeInternal, err)
	}
	s.storage.Set(bundleStorageKey, string(payload))
	return nil
}

// Load returns the stored bundle. A missing key or a payload that no longer
// deserializes both report absent rather than an error.
func (s *SessionStore) Load() (TokenBundle, bool) {
	raw, ok := s.storage.Get(bundleStorageKey)
	if !ok {
		return TokenBundle{}, false
	}
	var bundle TokenBundle
	if err := json.Unmarshal([]byte(raw), &bundle); err != nil {
		return TokenBundle{}, false
	}
	return bundle, true
}

// Clear removes the bundle and the reserved profile key. Idempotent.
func (s *SessionStore) Clear() {
	s.storage.Delete(bundleStorageKey)
	s.storage.Delete(profileStorageKey)
}

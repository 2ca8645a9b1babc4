package cookie

import (
	"sync"
	"time"
)

// Store defines a public interface used by cookieauth APIs for reading and
// writing the reauthentication cookie. Implementations must be safe for
// concurrent use by multiple goroutines.
type Store interface {
	// Get returns the cookie value for name, or false when absent.
	Get(name string) (string, bool)

	// Set writes the cookie value with the given expiry.
	Set(name, value string, expiresAt time.Time)

	// Delete removes the cookie. Deleting an absent cookie is a no-op.
	Delete(name string)
}

// MemoryStore is an in-process Store backed by a map. It drops expired
// entries lazily on Get. The zero value is not usable; call NewMemoryStore.
type MemoryStore struct {
	mu      sync.Mutex
	now     func() time.Time
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// NewMemoryStore returns an empty MemoryStore. A nil now defaults to
// time.Now; tests inject a fixed clock.
func NewMemoryStore(now func() time.Time) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{
		now:     now,
		entries: make(map[string]memoryEntry),
	}
}

// Get returns the stored value, evicting it first when its expiry has passed.
func (s *MemoryStore) Get(name string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[name]
	if !ok {
		return "", false
	}
	if !entry.expiresAt.IsZero() && !s.now().Before(entry.expiresAt) {
		delete(s.entries, name)
		return "", false
	}
	return entry.value, true
}

// Set stores value under name until expiresAt. A zero expiresAt never
// expires.
func (s *MemoryStore) Set(name, value string, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[name] = memoryEntry{value: value, expiresAt: expiresAt}
}

// Delete removes name from the store.
func (s *MemoryStore) Delete(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, name)
}

package notifications

import (
	"slices"
	"sync"
)

// Store is the ordered collection of currently visible notifications.
// Insertion order is preserved (oldest first) and ids are unique.
// All methods are safe for concurrent use.
type Store struct {
	items []Notification
	index map[string]struct{}
	mu    sync.RWMutex
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		index: make(map[string]struct{}),
	}
}

// Insert appends the notification to the end of the sequence.
func (s *Store) Insert(notif Notification) error {
	if notif.ID == "" {
		return ErrEmptyID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.index[notif.ID]; exists {
		return &DuplicateIDError{ID: notif.ID}
	}

	s.items = append(s.items, notif)
	s.index[notif.ID] = struct{}{}
	return nil
}

// RemoveByID removes the notification with the given id.
// Removing an absent id is a no-op and reports false.
func (s *Store) RemoveByID(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.index[id]; !exists {
		return false
	}

	delete(s.index, id)
	s.items = slices.DeleteFunc(s.items, func(n Notification) bool { return n.ID == id })
	return true
}

// Clear removes every notification and returns how many were removed.
func (s *Store) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.items)
	s.items = nil
	clear(s.index)
	return n
}

// List returns a copy of the current sequence in insertion order.
func (s *Store) List() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Notification, len(s.items))
	copy(out, s.items)
	return out
}

// Get returns a copy of the notification with the given id.
func (s *Store) Get(id string) (Notification, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, exists := s.index[id]; !exists {
		return Notification{}, false
	}
	for _, n := range s.items {
		if n.ID == id {
			return n, true
		}
	}
	return Notification{}, false
}

// Len returns the number of stored notifications.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

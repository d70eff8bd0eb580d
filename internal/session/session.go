package session

import (
	"fmt"
	"sync"
)

// Mask replaces every hidden value in rendered rows.
const Mask = "******"

// Row is one rendered line of a session.
type Row struct {
	Key      string `json:"key" yaml:"key"`
	Display  string `json:"value" yaml:"value"`
	Revealed bool   `json:"revealed" yaml:"revealed"`
}

// Session holds the fetched value of one secret and its visibility state.
// Everything starts masked. A plain text value has a single row keyed by the
// session id.
type Session struct {
	mu         sync.RWMutex
	id         string
	value      Value
	visibility map[string]bool
	revealed   bool
}

func newSession(id string, value Value) *Session {
	return &Session{
		id:         id,
		value:      value,
		visibility: make(map[string]bool),
	}
}

// ID returns the secret id the session was fetched for.
func (s *Session) ID() string {
	return s.id
}

// Value returns the decoded value.
func (s *Session) Value() Value {
	return s.value
}

// Keys returns the row keys in render order.
func (s *Session) Keys() []string {
	switch s.value.Kind() {
	case KindStructured:
		keys := make([]string, 0, len(s.value.fields))
		for _, f := range s.value.fields {
			keys = append(keys, f.Key)
		}
		return keys
	case KindPlainText:
		return []string{s.id}
	}
	panic(fmt.Sprintf("session: unhandled value kind %v", s.value.Kind()))
}

// RenderRows returns the display rows, masking every value not revealed.
func (s *Session) RenderRows() []Row {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch s.value.Kind() {
	case KindStructured:
		rows := make([]Row, 0, len(s.value.fields))
		for _, f := range s.value.fields {
			rows = append(rows, maskedRow(f.Key, f.Value, s.visibility[f.Key]))
		}
		return rows
	case KindPlainText:
		return []Row{maskedRow(s.id, s.value.text, s.revealed)}
	}
	panic(fmt.Sprintf("session: unhandled value kind %v", s.value.Kind()))
}

func maskedRow(key, value string, revealed bool) Row {
	if revealed {
		return Row{Key: key, Display: value, Revealed: true}
	}
	return Row{Key: key, Display: Mask}
}

// Toggle flips the visibility of key. The first toggle reveals.
func (s *Session) Toggle(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.value.Kind() {
	case KindStructured:
		if _, ok := s.value.field(key); !ok {
			return &UnknownFieldError{ID: s.id, Key: key}
		}
		if s.visibility[key] {
			delete(s.visibility, key)
		} else {
			s.visibility[key] = true
		}
		return nil
	case KindPlainText:
		if key != s.id {
			return &UnknownFieldError{ID: s.id, Key: key}
		}
		s.revealed = !s.revealed
		return nil
	}
	panic(fmt.Sprintf("session: unhandled value kind %v", s.value.Kind()))
}

// Revealed reports whether key is currently shown unmasked.
func (s *Session) Revealed(key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch s.value.Kind() {
	case KindStructured:
		if _, ok := s.value.field(key); !ok {
			return false, &UnknownFieldError{ID: s.id, Key: key}
		}
		return s.visibility[key], nil
	case KindPlainText:
		if key != s.id {
			return false, &UnknownFieldError{ID: s.id, Key: key}
		}
		return s.revealed, nil
	}
	panic(fmt.Sprintf("session: unhandled value kind %v", s.value.Kind()))
}

// RawValue returns the unmasked value of key whatever its visibility.
func (s *Session) RawValue(key string) (string, error) {
	switch s.value.Kind() {
	case KindStructured:
		v, ok := s.value.field(key)
		if !ok {
			return "", &UnknownFieldError{ID: s.id, Key: key}
		}
		return v, nil
	case KindPlainText:
		if key != s.id {
			return "", &UnknownFieldError{ID: s.id, Key: key}
		}
		return s.value.text, nil
	}
	panic(fmt.Sprintf("session: unhandled value kind %v", s.value.Kind()))
}

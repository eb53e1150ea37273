// SPDX-License-Identifier: MPL-2.0

package datastore

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/exp/slices"
)

// Memory is an in-memory Store. Keys are kept sorted by their serialized
// form, so Scan is a range scan plus one lookup per ancestor of the path.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]any
	sorted  []string
}

var (
	_ Store   = (*Memory)(nil)
	_ Scanner = (*Memory)(nil)
	_ Mover   = (*Memory)(nil)
)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]any)}
}

// Len returns the number of entries.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sorted)
}

// Keys returns every key in serialized order.
func (m *Memory) Keys(ctx context.Context) ([]Key, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]Key, len(m.sorted))
	for i, enc := range m.sorted {
		keys[i] = DecodeKey(enc)
	}
	return keys, nil
}

// Get returns the value stored under key.
func (m *Memory) Get(ctx context.Context, key Key) (any, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.entries[key.Encode()]
	return v, ok, nil
}

// Set stores value under key.
func (m *Memory) Set(ctx context.Context, key Key, value any) error {
	if err := key.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(key.Encode(), value)
	return nil
}

// Delete removes key if present.
func (m *Memory) Delete(ctx context.Context, key Key) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drop(key.Encode())
	return nil
}

// Move re-keys from to to under a single lock.
func (m *Memory) Move(ctx context.Context, from, to Key) error {
	if err := to.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	src := from.Encode()
	v, ok := m.entries[src]
	if !ok {
		return fmt.Errorf("moving %s: %w", from, ErrKeyNotFound)
	}
	m.drop(src)
	m.put(to.Encode(), v)
	return nil
}

// Scan returns the keys sharing a prefix with path: stored ancestors of
// path, path itself, and every extension of it.
func (m *Memory) Scan(ctx context.Context, path Key) ([]Key, error) {
	if len(path) == 0 {
		return m.Keys(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Key
	for i := 1; i < len(path); i++ {
		if _, ok := m.entries[path[:i].Encode()]; ok {
			out = append(out, path[:i].Clone())
		}
	}

	enc := path.Encode()
	child := enc + Separator
	start, _ := slices.BinarySearch(m.sorted, enc)
	for _, s := range m.sorted[start:] {
		if !strings.HasPrefix(s, enc) {
			break
		}
		if s == enc || strings.HasPrefix(s, child) {
			out = append(out, DecodeKey(s))
		}
	}
	return out, nil
}

func (m *Memory) put(enc string, v any) {
	if _, exists := m.entries[enc]; !exists {
		i, _ := slices.BinarySearch(m.sorted, enc)
		m.sorted = slices.Insert(m.sorted, i, enc)
	}
	m.entries[enc] = v
}

func (m *Memory) drop(enc string) {
	if _, exists := m.entries[enc]; !exists {
		return
	}
	delete(m.entries, enc)
	if i, found := slices.BinarySearch(m.sorted, enc); found {
		m.sorted = slices.Delete(m.sorted, i, i+1)
	}
}

// SPDX-License-Identifier: MPL-2.0

package datastore

import (
	"context"
	"errors"
	"fmt"
)

// ErrKeyNotFound is returned by Move when the source key holds no value.
var ErrKeyNotFound = errors.New("key not found")

type (
	// Store is the contract the package registry needs from the data store.
	// Implementations must be safe for concurrent use.
	Store interface {
		// Keys enumerates every key currently held.
		Keys(ctx context.Context) ([]Key, error)
		// Get returns the value under key and whether it exists.
		Get(ctx context.Context, key Key) (any, bool, error)
		// Set stores value under key, replacing any previous value.
		Set(ctx context.Context, key Key, value any) error
		// Delete removes key. Deleting a missing key is not an error.
		Delete(ctx context.Context, key Key) error
	}

	// Scanner is implemented by stores that can list the keys sharing a
	// prefix with path without enumerating the whole store.
	Scanner interface {
		Scan(ctx context.Context, path Key) ([]Key, error)
	}

	// Mover is implemented by stores that can re-key an entry in place.
	Mover interface {
		Move(ctx context.Context, from, to Key) error
	}
)

// MatchingKeys returns the keys of s that share a prefix with path.
func MatchingKeys(ctx context.Context, s Store, path Key) ([]Key, error) {
	if sc, ok := s.(Scanner); ok {
		return sc.Scan(ctx, path)
	}
	keys, err := s.Keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("enumerating keys: %w", err)
	}
	var matched []Key
	for _, k := range keys {
		if SharesPrefix(k, path) {
			matched = append(matched, k)
		}
	}
	return matched, nil
}

// Move re-keys the entry under from to to: read, write under the new key,
// drop the old key.
func Move(ctx context.Context, s Store, from, to Key) error {
	if m, ok := s.(Mover); ok {
		return m.Move(ctx, from, to)
	}
	v, ok, err := s.Get(ctx, from)
	if err != nil {
		return fmt.Errorf("reading %s: %w", from, err)
	}
	if !ok {
		return fmt.Errorf("moving %s: %w", from, ErrKeyNotFound)
	}
	if err := s.Set(ctx, to, v); err != nil {
		return fmt.Errorf("writing %s: %w", to, err)
	}
	if err := s.Delete(ctx, from); err != nil {
		return fmt.Errorf("deleting %s: %w", from, err)
	}
	return nil
}

// DeletePrefix deletes every key sharing a prefix with path and returns how
// many were deleted. An empty path owns nothing.
func DeletePrefix(ctx context.Context, s Store, path Key) (int, error) {
	if len(path) == 0 {
		return 0, nil
	}
	keys, err := MatchingKeys(ctx, s, path)
	if err != nil {
		return 0, err
	}
	for i, k := range keys {
		if err := s.Delete(ctx, k); err != nil {
			return i, fmt.Errorf("deleting %s: %w", k, err)
		}
	}
	return len(keys), nil
}

// RenamePrefix re-keys every entry at or below path so that its identity
// position reads newLast, and returns how many entries moved. Ancestors of
// path are left alone: they have no identity position to rewrite.
func RenamePrefix(ctx context.Context, s Store, path Key, newLast string) (int, error) {
	if len(path) == 0 || path[len(path)-1] == newLast {
		return 0, nil
	}
	keys, err := MatchingKeys(ctx, s, path)
	if err != nil {
		return 0, err
	}
	moved := 0
	for _, k := range keys {
		to, ok := Rebase(k, path, newLast)
		if !ok {
			continue
		}
		if err := Move(ctx, s, k, to); err != nil {
			return moved, err
		}
		moved++
	}
	return moved, nil
}

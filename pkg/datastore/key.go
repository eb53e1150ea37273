// SPDX-License-Identifier: MPL-2.0

package datastore

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// Separator joins key components in the serialized form of a Key. It sorts
// below every printable character, so all extensions of a serialized prefix
// form one contiguous range.
const Separator = "\x1f"

// ErrInvalidKey is the sentinel error wrapped by InvalidKeyError.
var ErrInvalidKey = errors.New("invalid key")

type (
	// Key addresses one entry of the store, e.g.
	// {"gwf1", "wel", "wel-1", "period", "1"}.
	Key []string

	// InvalidKeyError is returned for an empty key or one whose component
	// contains Separator.
	InvalidKeyError struct {
		Key    Key
		Reason string
	}
)

// Error implements the error interface.
func (e *InvalidKeyError) Error() string {
	return fmt.Sprintf("invalid key %s: %s", e.Key, e.Reason)
}

// Unwrap returns ErrInvalidKey for errors.Is() compatibility.
func (e *InvalidKeyError) Unwrap() error { return ErrInvalidKey }

// Validate returns an *InvalidKeyError if k is empty or any component
// contains Separator.
func (k Key) Validate() error {
	if len(k) == 0 {
		return &InvalidKeyError{Key: k, Reason: "must have at least one component"}
	}
	for i, c := range k {
		if strings.Contains(c, Separator) {
			return &InvalidKeyError{Key: k, Reason: fmt.Sprintf("component %d contains the separator byte 0x1f", i)}
		}
	}
	return nil
}

// String returns the components in tuple notation.
func (k Key) String() string {
	return "(" + strings.Join(k, ", ") + ")"
}

// Encode returns the serialized form used for ordering and storage.
func (k Key) Encode() string {
	return strings.Join(k, Separator)
}

// DecodeKey reverses Encode. The empty string decodes to the empty key.
func DecodeKey(s string) Key {
	if s == "" {
		return Key{}
	}
	return Key(strings.Split(s, Separator))
}

// Equal reports whether k and other have the same components.
func (k Key) Equal(other Key) bool {
	return slices.Equal(k, other)
}

// Clone returns a copy of k that shares no storage with it.
func (k Key) Clone() Key {
	return append(Key{}, k...)
}

// SharesPrefix reports whether key and path agree on every position they
// both have. A key that extends path matches, and so does a key that is an
// ancestor of path.
func SharesPrefix(key, path Key) bool {
	n := min(len(key), len(path))
	return slices.Equal(key[:n], path[:n])
}

// Rebase replaces the identity position of key, the last component of
// path, with newLast. Components of key beyond that position are kept. It
// reports false when key does not reach the identity position or does not
// share a prefix with path.
//
//	Rebase({"gwf1","wel","wel-1","period","1"}, {"gwf1","wel","wel-1"}, "wel-2")
//	  == {"gwf1","wel","wel-2","period","1"}
func Rebase(key, path Key, newLast string) (Key, bool) {
	if len(path) == 0 || len(key) < len(path) || !SharesPrefix(key, path) {
		return nil, false
	}
	out := key.Clone()
	out[len(path)-1] = newLast
	return out, true
}

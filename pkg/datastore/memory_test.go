// SPDX-License-Identifier: MPL-2.0

package datastore_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/mfsim/mfsim/pkg/datastore"
)

func seed(t *testing.T, s datastore.Store, keys ...datastore.Key) {
	t.Helper()
	for i, k := range keys {
		if err := s.Set(context.Background(), k, i); err != nil {
			t.Fatalf("Set(%s) error: %v", k, err)
		}
	}
}

func keyStrings(keys []datastore.Key) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.String()
	}
	return out
}

func TestMemory_SetGetDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := datastore.NewMemory()
	key := datastore.Key{"gwf1", "dis"}

	if err := m.Set(ctx, key, "value"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	v, ok, err := m.Get(ctx, key)
	if err != nil || !ok || v != "value" {
		t.Fatalf("Get() = %v, %v, %v; want value, true, nil", v, ok, err)
	}

	if err := m.Set(ctx, key, "replaced"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d after overwrite, want 1", m.Len())
	}

	if err := m.Delete(ctx, key); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, ok, _ := m.Get(ctx, key); ok {
		t.Error("Get() after Delete() should report missing")
	}
	if err := m.Delete(ctx, key); err != nil {
		t.Errorf("Delete() of missing key error: %v", err)
	}
}

func TestMemory_SetRejectsInvalidKey(t *testing.T) {
	t.Parallel()

	err := datastore.NewMemory().Set(context.Background(), datastore.Key{}, 1)
	if !errors.Is(err, datastore.ErrInvalidKey) {
		t.Errorf("Set(empty key) error = %v, want ErrInvalidKey", err)
	}
}

func TestMemory_KeysSorted(t *testing.T) {
	t.Parallel()

	m := datastore.NewMemory()
	seed(t, m,
		datastore.Key{"gwf1", "wel", "wel-1"},
		datastore.Key{"gwf1", "dis"},
		datastore.Key{"gwf1"},
		datastore.Key{"gwf1", "wel"},
	)

	keys, err := m.Keys(context.Background())
	if err != nil {
		t.Fatalf("Keys() error: %v", err)
	}
	got := keyStrings(keys)
	want := []string{"(gwf1)", "(gwf1, dis)", "(gwf1, wel)", "(gwf1, wel, wel-1)"}
	if len(got) != len(want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Keys()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestMemory_ScanMatchesSharesPrefix(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := datastore.NewMemory()
	seed(t, m,
		datastore.Key{"gwf1"},
		datastore.Key{"gwf1", "wel"},
		datastore.Key{"gwf1", "wel", "wel-1"},
		datastore.Key{"gwf1", "wel", "wel-1", "period", "1"},
		datastore.Key{"gwf1", "wel", "wel-10"},
		datastore.Key{"gwf1", "wel", "wel-2", "period", "1"},
		datastore.Key{"gwf2", "wel", "wel-1"},
	)

	paths := []datastore.Key{
		{"gwf1", "wel", "wel-1"},
		{"gwf1", "wel"},
		{"gwf2"},
		{"gwf3", "x"},
		{},
	}
	all, err := m.Keys(ctx)
	if err != nil {
		t.Fatalf("Keys() error: %v", err)
	}

	for _, path := range paths {
		t.Run(path.String(), func(t *testing.T) {
			t.Parallel()

			scanned, err := m.Scan(ctx, path)
			if err != nil {
				t.Fatalf("Scan() error: %v", err)
			}
			var want []string
			for _, k := range all {
				if datastore.SharesPrefix(k, path) {
					want = append(want, k.String())
				}
			}
			got := keyStrings(scanned)
			if len(got) != len(want) {
				t.Fatalf("Scan(%s) = %v, want %v", path, got, want)
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("Scan(%s)[%d] = %s, want %s", path, i, got[i], want[i])
				}
			}
		})
	}
}

func TestMemory_Move(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := datastore.NewMemory()
	from := datastore.Key{"gwf1", "wel", "wel-1"}
	to := datastore.Key{"gwf1", "wel", "wel-2"}
	if err := m.Set(ctx, from, 42); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	if err := m.Move(ctx, from, to); err != nil {
		t.Fatalf("Move() error: %v", err)
	}
	if _, ok, _ := m.Get(ctx, from); ok {
		t.Error("source key still present after Move()")
	}
	if v, ok, _ := m.Get(ctx, to); !ok || v != 42 {
		t.Errorf("Get(to) = %v, %v; want 42, true", v, ok)
	}

	if err := m.Move(ctx, from, to); !errors.Is(err, datastore.ErrKeyNotFound) {
		t.Errorf("Move() of missing key error = %v, want ErrKeyNotFound", err)
	}
}

func TestMemory_ConcurrentSet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := datastore.NewMemory()
	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := datastore.Key{"gwf1", "pkg", string(rune('a' + i%26)), string(rune('0' + i/26))}
			if err := m.Set(ctx, key, i); err != nil {
				t.Errorf("Set() error: %v", err)
			}
		}()
	}
	wg.Wait()

	if m.Len() != 32 {
		t.Errorf("Len() = %d, want 32", m.Len())
	}
}

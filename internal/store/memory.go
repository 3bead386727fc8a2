package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemoryStore is a PersistentStore kept in process memory. It is used for
// ":memory:" DSNs and by tests; the per-key capacity and the optional total
// quota behave like the on-device store.
type MemoryStore struct {
	mu           sync.RWMutex
	items        map[Key][]byte
	maxValueSize int
	quota        int
}

// NewMemoryStore returns an empty store. A maxValueSize of 0 means
// MaxValueSize; a quota of 0 disables the total size limit.
func NewMemoryStore(maxValueSize, quota int) *MemoryStore {
	if maxValueSize <= 0 {
		maxValueSize = MaxValueSize
	}
	return &MemoryStore{
		items:        make(map[Key][]byte),
		maxValueSize: maxValueSize,
		quota:        quota,
	}
}

func (m *MemoryStore) Exists(_ context.Context, key Key) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.items[key]
	return ok, nil
}

func (m *MemoryStore) Read(_ context.Context, key Key, maxLen int) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.items[key]
	if !ok {
		return nil, fmt.Errorf("read key %d: %w", key, ErrNotFound)
	}
	if maxLen >= 0 && len(v) > maxLen {
		v = v[:maxLen]
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *MemoryStore) Write(_ context.Context, key Key, data []byte) error {
	if len(data) > m.maxValueSize {
		return fmt.Errorf("write key %d (%d bytes): %w", key, len(data), ErrValueTooLarge)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.quota > 0 {
		used := 0
		for k, v := range m.items {
			if k != key {
				used += len(v)
			}
		}
		if used+len(data) > m.quota {
			return fmt.Errorf("write key %d (%d bytes, %d used of %d): %w", key, len(data), used, m.quota, ErrStorageFull)
		}
	}

	v := make([]byte, len(data))
	copy(v, data)
	m.items[key] = v
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key Key) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.items, key)
	return nil
}

func (m *MemoryStore) SizeOf(_ context.Context, key Key) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.items[key]), nil
}

// Keys returns every stored key in ascending order.
func (m *MemoryStore) Keys() []Key {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]Key, 0, len(m.items))
	for k := range m.items {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Close implements io.Closer.
func (m *MemoryStore) Close() error {
	return nil
}

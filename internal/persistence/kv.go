// Package persistence stores whole collections as JSON documents in a
// key-value backend and loads them back at startup.
package persistence

import (
	"context"
	"errors"
	"sync"
)

var ErrNotFound = errors.New("key not found")

// KV is the backing store. Get returns ErrNotFound for a key never written.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

type MemoryKV struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: map[string][]byte{}}
}

func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = append([]byte(nil), value...)
	return nil
}

type prefixed struct {
	kv     KV
	prefix string
}

// WithPrefix namespaces every key, so several deployments can share one
// backend. An empty prefix returns kv unchanged.
func WithPrefix(kv KV, prefix string) KV {
	if prefix == "" {
		return kv
	}
	return &prefixed{kv: kv, prefix: prefix}
}

func (p *prefixed) Get(ctx context.Context, key string) ([]byte, error) {
	return p.kv.Get(ctx, p.prefix+key)
}

func (p *prefixed) Set(ctx context.Context, key string, value []byte) error {
	return p.kv.Set(ctx, p.prefix+key, value)
}

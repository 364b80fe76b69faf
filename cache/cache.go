// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package cache provides a thread-safe key-value store.
package cache

import (
	"sync"
)

// A UniformlyKeyed cache holds values keyed by uniformly distributed keys, such
// as random IDs, allowing for reduced lock contention.
type UniformlyKeyed[K ~[32]byte, V any] struct {
	buckets [256]bucket[K, V]
}

type bucket[K comparable, V any] struct {
	sync.RWMutex
	data map[K]V
}

// NewUniformlyKeyed constructs a new [UniformlyKeyed] cache.
func NewUniformlyKeyed[K ~[32]byte, V any]() *UniformlyKeyed[K, V] {
	c := new(UniformlyKeyed[K, V])
	for i := range 256 {
		c.buckets[i].data = make(map[K]V)
	}
	return c
}

func (c *UniformlyKeyed[K, V]) bucket(k K) *bucket[K, V] {
	return &c.buckets[k[0]]
}

// StoreIfAbsent stores the key and value only if the key isn't already
// present, returning whether it was stored.
func (c *UniformlyKeyed[K, V]) StoreIfAbsent(k K, v V) bool {
	b := c.bucket(k)
	b.Lock()
	defer b.Unlock()
	if _, ok := b.data[k]; ok {
		return false
	}
	b.data[k] = v
	return true
}

// Load returns a previously stored value and a boolean indicating if it was
// found in the cache.
func (c *UniformlyKeyed[K, V]) Load(k K) (V, bool) {
	b := c.bucket(k)
	b.RLock()
	v, ok := b.data[k]
	b.RUnlock()
	return v, ok
}

// Update atomically replaces the value stored under `k` with the one returned
// by `fn`. If `fn` returns an error, or if `k` isn't present, the stored value
// is unchanged. `fn` MUST NOT call back into the cache.
func (c *UniformlyKeyed[K, V]) Update(k K, fn func(V) (V, error)) (found bool, _ error) {
	b := c.bucket(k)
	b.Lock()
	defer b.Unlock()

	old, ok := b.data[k]
	if !ok {
		return false, nil
	}
	v, err := fn(old)
	if err != nil {
		return true, err
	}
	b.data[k] = v
	return true, nil
}

// Delete removes the key, returning whether it was present.
func (c *UniformlyKeyed[K, V]) Delete(k K) bool {
	b := c.bucket(k)
	b.Lock()
	defer b.Unlock()
	_, ok := b.data[k]
	delete(b.data, k)
	return ok
}

// DeleteFunc removes all entries for which `del` returns true, returning the
// number removed. Buckets are locked one at a time so the result is not an
// atomic snapshot of the entire cache.
func (c *UniformlyKeyed[K, V]) DeleteFunc(del func(K, V) bool) int {
	var n int
	for i := range len(c.buckets) {
		b := &c.buckets[i]
		b.Lock()
		for k, v := range b.data {
			if del(k, v) {
				delete(b.data, k)
				n++
			}
		}
		b.Unlock()
	}
	return n
}

// Len returns the number of entries, subject to the same caveat as
// [UniformlyKeyed.DeleteFunc].
func (c *UniformlyKeyed[K, V]) Len() int {
	var n int
	for i := range len(c.buckets) {
		b := &c.buckets[i]
		b.RLock()
		n += len(b.data)
		b.RUnlock()
	}
	return n
}

// Clear removes all keys from the cache.
func (c *UniformlyKeyed[K, V]) Clear() {
	for i := range len(c.buckets) {
		b := &c.buckets[i]
		b.Lock()
		b.data = make(map[K]V)
		b.Unlock()
	}
}

// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cache

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type key [32]byte

func keyOf(b0, b1 byte) key {
	return key{0: b0, 1: b1}
}

func TestStoreIfAbsentLoadDelete(t *testing.T) {
	c := NewUniformlyKeyed[key, int]()

	_, ok := c.Load(keyOf(1, 0))
	assert.False(t, ok, "Load() before StoreIfAbsent()")

	require.True(t, c.StoreIfAbsent(keyOf(1, 0), 42))
	require.True(t, c.StoreIfAbsent(keyOf(1, 1), 43)) // same bucket
	require.True(t, c.StoreIfAbsent(keyOf(2, 0), 44))

	got, ok := c.Load(keyOf(1, 0))
	require.True(t, ok, "Load() after StoreIfAbsent()")
	assert.Equal(t, 42, got)
	assert.Equal(t, 3, c.Len(), "Len()")

	assert.False(t, c.StoreIfAbsent(keyOf(1, 0), 0), "StoreIfAbsent() on present key")
	assert.True(t, c.StoreIfAbsent(keyOf(3, 0), 45), "StoreIfAbsent() on absent key")
	got, _ = c.Load(keyOf(1, 0))
	assert.Equal(t, 42, got, "value unchanged by StoreIfAbsent()")

	assert.True(t, c.Delete(keyOf(1, 0)), "Delete() present key")
	assert.False(t, c.Delete(keyOf(1, 0)), "Delete() absent key")
	_, ok = c.Load(keyOf(1, 1))
	assert.True(t, ok, "Delete() must not affect other keys in the bucket")

	c.Clear()
	assert.Zero(t, c.Len(), "Len() after Clear()")
}

func TestUpdate(t *testing.T) {
	c := NewUniformlyKeyed[key, int]()
	k := keyOf(7, 7)

	found, err := c.Update(k, func(v int) (int, error) { return v + 1, nil })
	require.NoError(t, err)
	assert.False(t, found, "Update() on absent key")

	require.True(t, c.StoreIfAbsent(k, 1))
	found, err = c.Update(k, func(v int) (int, error) { return v + 1, nil })
	require.NoError(t, err)
	assert.True(t, found)
	got, _ := c.Load(k)
	assert.Equal(t, 2, got, "after successful Update()")

	errBoom := errors.New("boom")
	found, err = c.Update(k, func(int) (int, error) { return 100, errBoom })
	assert.True(t, found)
	assert.ErrorIs(t, err, errBoom)
	got, _ = c.Load(k)
	assert.Equal(t, 2, got, "value unchanged by failed Update()")
}

func TestDeleteFunc(t *testing.T) {
	c := NewUniformlyKeyed[key, int]()
	for i := range 100 {
		c.StoreIfAbsent(keyOf(byte(i), byte(i>>8)), i)
	}

	n := c.DeleteFunc(func(_ key, v int) bool { return v%2 == 0 })
	assert.Equal(t, 50, n, "DeleteFunc() count")
	assert.Equal(t, 50, c.Len(), "Len() after DeleteFunc()")
	_, ok := c.Load(keyOf(3, 0))
	assert.True(t, ok, "odd value retained")
}

func TestConcurrentUpdate(t *testing.T) {
	c := NewUniformlyKeyed[key, int]()
	k := keyOf(9, 9)
	require.True(t, c.StoreIfAbsent(k, 0))

	const n = 64
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = c.Update(k, func(v int) (int, error) { return v + 1, nil })
		}()
	}
	wg.Wait()

	got, _ := c.Load(k)
	assert.Equal(t, n, got)
}

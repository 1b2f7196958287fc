package binarizer

import (
	"sync"
	"sync/atomic"
)

// cell is a value computed on first access and never changed afterwards.
// Concurrent first callers block until the single computation finishes.
// If the computation panics, every later get panics with the same value
// instead of returning the zero value.
type cell[T any] struct {
	once     sync.Once
	settled  atomic.Bool
	value    T
	panicked any
}

// get returns the settled value, running compute if nothing has been stored yet.
func (c *cell[T]) get(compute func() T) T {
	c.once.Do(func() {
		defer func() {
			if r := recover(); r != nil {
				c.panicked = r
				panic(r)
			}
		}()
		c.value = compute()
		c.settled.Store(true)
	})
	if c.panicked != nil {
		panic(c.panicked)
	}
	return c.value
}

// peek returns the settled value without computing it.
func (c *cell[T]) peek() (T, bool) {
	if c.settled.Load() {
		return c.value, true
	}
	var zero T
	return zero, false
}

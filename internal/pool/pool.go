// Package pool provides object pooling for cmdtree parsing.
// Parameter buffers of argument windows and middleware scratch buffers come from here.
package pool

import (
	"bytes"
	"slices"
	"sync"
)

// Pool is a generic, type-safe wrapper around sync.Pool
type Pool[T any] struct {
	pool  sync.Pool
	reset func(*T) // Optional reset function called before reuse
}

// NewPool creates a new generic pool with the given factory function
func NewPool[T any](factory func() *T) *Pool[T] {
	return &Pool[T]{
		pool: sync.Pool{
			New: func() any {
				return factory()
			},
		},
	}
}

// NewPoolWithReset creates a pool with a reset function called before reuse
func NewPoolWithReset[T any](factory func() *T, reset func(*T)) *Pool[T] {
	p := NewPool(factory)
	p.reset = reset
	return p
}

// Get retrieves an object from the pool or creates a new one
func (p *Pool[T]) Get() *T {
	obj := p.pool.Get().(*T)
	if p.reset != nil {
		p.reset(obj)
	}
	return obj
}

// Put returns an object to the pool for reuse
func (p *Pool[T]) Put(obj *T) {
	if obj == nil {
		return
	}
	p.pool.Put(obj)
}

// StringSlicePool pools string slices used as parameter buffers
type StringSlicePool struct {
	*Pool[[]string]
	maxCap int
}

// NewStringSlicePool creates a string slice pool. Slices that grew beyond
// maxCap are dropped on Put instead of being retained.
func NewStringSlicePool(defaultCap, maxCap int) *StringSlicePool {
	return &StringSlicePool{
		Pool: NewPoolWithReset(
			func() *[]string {
				slice := make([]string, 0, defaultCap)
				return &slice
			},
			func(slice *[]string) {
				clear(*slice)
				*slice = (*slice)[:0]
			},
		),
		maxCap: maxCap,
	}
}

// GetCap retrieves an empty slice able to hold at least minCap strings
func (p *StringSlicePool) GetCap(minCap int) *[]string {
	slice := p.Get()
	if minCap > cap(*slice) {
		*slice = slices.Grow(*slice, minCap)
	}
	return slice
}

// Put returns a slice to the pool unless it is oversized
func (p *StringSlicePool) Put(slice *[]string) {
	if slice == nil || cap(*slice) > p.maxCap {
		return
	}
	p.Pool.Put(slice)
}

// Global pool instances
var (
	// GlobalStringSlicePool backs argument window parameter buffers
	GlobalStringSlicePool = NewStringSlicePool(16, 1024)

	// GlobalBufferPool backs log line construction in middleware
	GlobalBufferPool = NewPoolWithReset(
		func() *bytes.Buffer { return bytes.NewBuffer(make([]byte, 0, 256)) },
		func(b *bytes.Buffer) { b.Reset() },
	)
)

// GetStringSlice retrieves a string slice with capacity for at least minCap items
func GetStringSlice(minCap int) *[]string {
	return GlobalStringSlicePool.GetCap(minCap)
}

// PutStringSlice returns a string slice to the global pool
func PutStringSlice(slice *[]string) {
	GlobalStringSlicePool.Put(slice)
}

// GetBuffer retrieves an empty byte buffer
func GetBuffer() *bytes.Buffer {
	return GlobalBufferPool.Get()
}

// PutBuffer returns a byte buffer to the global pool
func PutBuffer(buf *bytes.Buffer) {
	GlobalBufferPool.Put(buf)
}

// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package pool

import (
	"bytes"
	"strings"
	"sync"
)

// maxRetainedCap bounds the capacity of objects returned to the predefined pools.
const maxRetainedCap = 64 << 10

// Pool is a generics wrapper around [sync.Pool] to provide strongly-typed object pooling.
type Pool[T any] struct {
	pool  sync.Pool
	reset func(T) bool
}

// New returns a new [Pool] for T, and will use fn to construct new T's when the pool is empty.
//
// reset is called on Put; returning false drops the object instead of pooling it.
// A nil reset pools every object as-is.
func New[T any](fn func() T, reset func(T) bool) *Pool[T] {
	return &Pool[T]{
		pool: sync.Pool{
			New: func() any {
				return fn()
			},
		},
		reset: reset,
	}
}

// Get gets a T from the pool, or creates a new one if the pool is empty.
func (p *Pool[T]) Get() T {
	return p.pool.Get().(T)
}

// Put returns x into the pool.
func (p *Pool[T]) Put(x T) {
	if p.reset != nil && !p.reset(x) {
		return
	}
	p.pool.Put(x)
}

// Buffer provides the [*bytes.Buffer] pooling objects.
var Buffer = New(
	func() *bytes.Buffer {
		return &bytes.Buffer{}
	},
	func(b *bytes.Buffer) bool {
		if b.Cap() > maxRetainedCap {
			return false
		}
		b.Reset()
		return true
	},
)

// Builder provides the [*strings.Builder] pooling objects.
var Builder = New(
	func() *strings.Builder {
		return &strings.Builder{}
	},
	func(sb *strings.Builder) bool {
		if sb.Cap() > maxRetainedCap {
			return false
		}
		sb.Reset()
		return true
	},
)

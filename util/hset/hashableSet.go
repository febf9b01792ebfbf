// Package hset implements a hash-bucketed set of hashable elements, JVM style.
//
// Unlike a plain map keyed by hash, HSet keeps every element that shares a
// hash bucket and disambiguates with the element's own Equal, so it is safe
// to use as a hash-consing store: a hash collision between two distinct
// values never silently merges them.
package hset

import (
	"github.com/benbjohnson/immutable"
	"iter"
)

// HSet is a shallow wrapper around a map of buckets.
// use immutable.Set if you are not going to be modifying this
// as it is more copy efficient
type HSet[A any] struct {
	hasher     immutable.Hasher[A]
	underlying map[uint32][]A
}

func Empty[A any](hasher immutable.Hasher[A]) HSet[A] {
	return HSet[A]{
		hasher:     hasher,
		underlying: make(map[uint32][]A),
	}
}

func New[A any](hasher immutable.Hasher[A], elems ...A) HSet[A] {
	n := Empty(hasher)
	for _, elem := range elems {
		n.Add(elem)
	}
	return n
}

func (s HSet[A]) Add(elems ...A) {
	for _, elem := range elems {
		h := s.hasher.Hash(elem)
		bucket := s.underlying[h]
		found := false
		for _, existing := range bucket {
			if s.hasher.Equal(existing, elem) {
				found = true
				break
			}
		}
		if !found {
			s.underlying[h] = append(bucket, elem)
		}
	}
}

// GetOrInsert returns the canonical element equal to elem, inserting it if
// this is the first time an equal element is seen. This is the operation
// a hash-consing table is built on: the returned value's identity is the
// one that should be kept and compared against from then on.
func (s HSet[A]) GetOrInsert(elem A) A {
	h := s.hasher.Hash(elem)
	bucket := s.underlying[h]
	for _, existing := range bucket {
		if s.hasher.Equal(existing, elem) {
			return existing
		}
	}
	s.underlying[h] = append(bucket, elem)
	return elem
}

func (s HSet[A]) Remove(elems ...A) {
	for _, elem := range elems {
		h := s.hasher.Hash(elem)
		bucket := s.underlying[h]
		for i, existing := range bucket {
			if s.hasher.Equal(existing, elem) {
				s.underlying[h] = append(bucket[:i], bucket[i+1:]...)
				break
			}
		}
	}
}

func (s HSet[A]) Contains(elem A) bool {
	h := s.hasher.Hash(elem)
	for _, existing := range s.underlying[h] {
		if s.hasher.Equal(existing, elem) {
			return true
		}
	}
	return false
}

func (s HSet[A]) Len() int {
	n := 0
	for _, bucket := range s.underlying {
		n += len(bucket)
	}
	return n
}

func (s HSet[A]) All() iter.Seq[A] {
	return func(yield func(A) bool) {
		for _, bucket := range s.underlying {
			for _, elem := range bucket {
				if !yield(elem) {
					return
				}
			}
		}
	}
}

// Package kvstore implements a string-keyed store with a fixed number of
// chained buckets. It never resizes, so lookups degrade to O(n) when many
// keys land in the same bucket, and enumeration order is stable for the
// lifetime of the store.
package kvstore

import (
	"errors"
	"fmt"
)

// DefaultBuckets is the bucket count used by the sales pipeline.
const DefaultBuckets = 100

var (
	ErrKeyNotFound        = errors.New("key not found")
	ErrInvalidBucketCount = errors.New("bucket count must be positive")
)

// Entry is one key/value pair held in a bucket.
type Entry[V any] struct {
	Key   string
	Value V
}

type Store[V any] struct {
	buckets [][]Entry[V]
	size    int
}

func New[V any](buckets int) (*Store[V], error) {
	if buckets < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBucketCount, buckets)
	}
	return &Store[V]{buckets: make([][]Entry[V], buckets)}, nil
}

// BucketOf returns the bucket index for key: the sum of its code points
// modulo the bucket count. Anagrams always share a bucket.
func (s *Store[V]) BucketOf(key string) int {
	sum := 0
	for _, r := range key {
		sum += int(r)
	}
	return sum % len(s.buckets)
}

func (s *Store[V]) Buckets() int {
	return len(s.buckets)
}

func (s *Store[V]) Len() int {
	return s.size
}

// Put replaces the value for key if present, otherwise appends it to the
// end of its bucket.
func (s *Store[V]) Put(key string, value V) {
	b := s.BucketOf(key)
	for i := range s.buckets[b] {
		if s.buckets[b][i].Key == key {
			s.buckets[b][i].Value = value
			return
		}
	}
	s.buckets[b] = append(s.buckets[b], Entry[V]{Key: key, Value: value})
	s.size++
}

// Get reports the value stored for key. A miss returns the zero value and false.
func (s *Store[V]) Get(key string) (V, bool) {
	b := s.BucketOf(key)
	for _, e := range s.buckets[b] {
		if e.Key == key {
			return e.Value, true
		}
	}
	var zero V
	return zero, false
}

func (s *Store[V]) Delete(key string) error {
	b := s.BucketOf(key)
	for i, e := range s.buckets[b] {
		if e.Key == key {
			s.buckets[b] = append(s.buckets[b][:i], s.buckets[b][i+1:]...)
			s.size--
			return nil
		}
	}
	return fmt.Errorf("delete %q: %w", key, ErrKeyNotFound)
}

// Items returns every entry, bucket by bucket, in insertion order within a
// bucket. The returned slice is a copy.
func (s *Store[V]) Items() []Entry[V] {
	items := make([]Entry[V], 0, s.size)
	for _, bucket := range s.buckets {
		items = append(items, bucket...)
	}
	return items
}

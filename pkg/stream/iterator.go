// Package stream provides the forward-only pull iterators the diff pipeline
// is built from.
package stream

// Iterator produces items one at a time. Next returns false once the
// sequence is exhausted; it keeps returning false after that.
type Iterator[T any] interface {
	Next() (T, bool)
}

// Sized is implemented by iterators that can hint how many items are left.
// The hint is a lower bound.
type Sized interface {
	Remaining() int
}

// Result is one element of a fallible sequence
type Result[T any] struct {
	Value T
	Err   error
}

// Ok wraps a value
func Ok[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

// Fail wraps an error
func Fail[T any](err error) Result[T] {
	return Result[T]{Err: err}
}

// Remaining returns the hint of it, or 0 if it gives none
func Remaining(it any) int {
	if s, ok := it.(Sized); ok {
		return s.Remaining()
	}
	return 0
}

// SliceIterator iterates over a slice
type SliceIterator[T any] struct {
	items []T
}

// FromSlice returns an iterator over items
func FromSlice[T any](items []T) *SliceIterator[T] {
	return &SliceIterator[T]{items: items}
}

// Next returns the next item
func (s *SliceIterator[T]) Next() (T, bool) {
	if len(s.items) == 0 {
		var zero T
		return zero, false
	}
	v := s.items[0]
	s.items = s.items[1:]
	return v, true
}

// Remaining returns the number of items left
func (s *SliceIterator[T]) Remaining() int {
	return len(s.items)
}

// Count drains it and returns the number of items produced
func Count[T any](it Iterator[T]) int {
	n := 0
	for {
		if _, ok := it.Next(); !ok {
			return n
		}
		n++
	}
}

// Collect drains it into a slice
func Collect[T any](it Iterator[T]) []T {
	var out []T
	for {
		v, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

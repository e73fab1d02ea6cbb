package stream

import (
	"github.com/sdejongh/durduff/pkg/models"
)

// Tagged is an item of a merged sequence together with the side(s) it came from
type Tagged[T any] struct {
	Origin models.Origin
	Item   T
}

// Merged is the sorted union of two sorted, duplicate-free sequences.
// Both inputs must be ordered by the same cmp; this is not checked.
type Merged[T any] struct {
	left, right Iterator[T]
	cmp         func(a, b T) int

	lhead, rhead       T
	lpending, rpending bool
	ldone, rdone       bool
}

// Merge joins left and right ordered by cmp
func Merge[T any](left, right Iterator[T], cmp func(a, b T) int) *Merged[T] {
	return &Merged[T]{left: left, right: right, cmp: cmp}
}

func (m *Merged[T]) fill() {
	if !m.lpending && !m.ldone {
		m.lhead, m.lpending = m.left.Next()
		m.ldone = !m.lpending
	}
	if !m.rpending && !m.rdone {
		m.rhead, m.rpending = m.right.Next()
		m.rdone = !m.rpending
	}
}

// Next returns the next item of the union with its origin
func (m *Merged[T]) Next() (Tagged[T], bool) {
	m.fill()

	var zero T
	switch {
	case m.lpending && m.rpending:
		c := m.cmp(m.lhead, m.rhead)
		switch {
		case c < 0:
			return m.takeLeft(), true
		case c > 0:
			return m.takeRight(), true
		default:
			item := m.lhead
			m.lhead, m.lpending = zero, false
			m.rhead, m.rpending = zero, false
			return Tagged[T]{Origin: models.OriginBoth, Item: item}, true
		}
	case m.lpending:
		return m.takeLeft(), true
	case m.rpending:
		return m.takeRight(), true
	default:
		return Tagged[T]{}, false
	}
}

func (m *Merged[T]) takeLeft() Tagged[T] {
	var zero T
	item := m.lhead
	m.lhead, m.lpending = zero, false
	return Tagged[T]{Origin: models.OriginLeft, Item: item}
}

func (m *Merged[T]) takeRight() Tagged[T] {
	var zero T
	item := m.rhead
	m.rhead, m.rpending = zero, false
	return Tagged[T]{Origin: models.OriginRight, Item: item}
}

// Remaining is the larger of both sides' hints, counting peeked items
func (m *Merged[T]) Remaining() int {
	l := Remaining(m.left)
	if m.lpending {
		l++
	}
	r := Remaining(m.right)
	if m.rpending {
		r++
	}
	return max(l, r)
}

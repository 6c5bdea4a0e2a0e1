package cache

import "fmt"

// Deque is a bounded double ended queue backed by a ring.
type Deque[T any] struct {
	buf        []T
	head, tail int
	count      int
}

func NewDeque[T any](max int) Deque[T] {
	return Deque[T]{
		buf: make([]T, max),
	}
}

func (q *Deque[T]) PushBack(elem T) error {
	if q.count == len(q.buf) {
		return fmt.Errorf("queue is full")
	}

	q.buf[q.tail] = elem
	q.tail = q.next(q.tail)
	q.count++
	return nil
}

func (q *Deque[T]) next(i int) int {
	return (i + 1) % len(q.buf)
}

func (q *Deque[T]) at(i int) int {
	return (q.head + i) % len(q.buf)
}

func (q *Deque[T]) PopFront() (elem T, ok bool) {
	if q.count == 0 {
		return
	}

	elem = q.buf[q.head]
	var zero T
	q.buf[q.head] = zero
	q.head = q.next(q.head)
	q.count--
	return elem, true
}

func (q *Deque[T]) Count() int {
	return q.count
}

func (q *Deque[T]) Max() int {
	return len(q.buf)
}

func (q *Deque[T]) Find(match func(T) bool) (elem T, ok bool) {
	for i := 0; i < q.count; i++ {
		e := q.buf[q.at(i)]
		if match(e) {
			return e, true
		}
	}
	return
}

// Del removes the first match from the Deque, keeping the order of the others.
func (q *Deque[T]) Del(match func(T) bool) {
	for i := 0; i < q.count; i++ {
		if !match(q.buf[q.at(i)]) {
			continue
		}
		// Shift the elements before the match one slot towards the tail.
		for j := i; j > 0; j-- {
			q.buf[q.at(j)] = q.buf[q.at(j-1)]
		}
		q.PopFront()
		return
	}
}

func (q *Deque[T]) Clear() {
	var zero T
	for i := range q.buf {
		q.buf[i] = zero
	}
	q.head = 0
	q.tail = 0
	q.count = 0
}

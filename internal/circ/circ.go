package circ

// Circ is a fixed size circular array. Once full, each Add overwrites the oldest value.
type Circ[V any] struct {
	entries      []V
	first, count int
}

func New[V any](max int) Circ[V] {
	if max < 1 {
		max = 1
	}

	return Circ[V]{
		entries: make([]V, max),
	}
}

func (c Circ[V]) Empty() bool {
	return c.count == 0
}

func (c Circ[V]) Len() int {
	return c.count
}

func (c Circ[V]) Max() int {
	return len(c.entries)
}

func (c Circ[V]) full() bool {
	return c.count == len(c.entries)
}

func (c *Circ[V]) Add(v V) {
	if c.full() {
		// evict the oldest entry
		c.entries[c.first] = v
		c.first = c.mod(c.first + 1)
		return
	}
	c.entries[c.mod(c.first+c.count)] = v
	c.count++
}

func (c Circ[V]) mod(index int) int {
	return index % len(c.entries)
}

// Each calls f with the values from oldest to newest.
func (c Circ[V]) Each(f func(v V)) {
	for i := 0; i < c.count; i++ {
		f(c.entries[c.mod(c.first+i)])
	}
}

// Newest returns the most recently added value.
func (c Circ[V]) Newest() (v V, ok bool) {
	if c.Empty() {
		return
	}
	return c.entries[c.mod(c.first+c.count-1)], true
}

func (c *Circ[V]) Clear() {
	var zero V
	for i := range c.entries {
		c.entries[i] = zero
	}
	c.first = 0
	c.count = 0
}

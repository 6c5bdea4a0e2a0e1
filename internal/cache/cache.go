// Package cache is a small map that forgets the oldest inserted entry once it is full.
package cache

type Cache[K comparable, V any] struct {
	entries    map[K]*Entry[K, V]
	orderAdded Deque[K]
}

type Entry[K comparable, V any] struct {
	Key K
	Val V
}

func New[K comparable, V any](max int) Cache[K, V] {
	if max < 1 {
		max = 1
	}
	return Cache[K, V]{
		entries:    make(map[K]*Entry[K, V]),
		orderAdded: NewDeque[K](max),
	}
}

func (c Cache[K, V]) Get(key K) *Entry[K, V] {
	entry, ok := c.entries[key]
	if !ok {
		return nil
	}

	return entry
}

// Set adds key if it is not present and returns its entry. An existing entry is
// returned unchanged.
func (c *Cache[K, V]) Set(key K, val V) *Entry[K, V] {
	entry := c.Get(key)
	if entry == nil {
		return c.addNewEntry(key, val)
	}

	return entry
}

func (c *Cache[K, V]) addNewEntry(key K, val V) *Entry[K, V] {
	c.removeOldestIfNeeded()

	entry := &Entry[K, V]{Key: key, Val: val}
	c.entries[key] = entry
	c.orderAdded.PushBack(key)
	return entry
}

func (c *Cache[K, V]) removeOldestIfNeeded() {
	if c.orderAdded.Count() < c.orderAdded.Max() {
		return
	}

	k, _ := c.orderAdded.PopFront()
	delete(c.entries, k)
}

func (c *Cache[K, V]) Del(key K) {
	if _, ok := c.entries[key]; !ok {
		return
	}
	c.orderAdded.Del(func(k K) bool { return k == key })
	delete(c.entries, key)
}

func (c Cache[K, V]) Len() int {
	return len(c.entries)
}

func (c *Cache[K, V]) Clear() {
	c.entries = make(map[K]*Entry[K, V])
	c.orderAdded.Clear()
}

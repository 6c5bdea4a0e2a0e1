package circ

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func contents(c Circ[int]) []int {
	saw := []int{}
	c.Each(func(v int) { saw = append(saw, v) })
	return saw
}

func TestAddEvictsOldest(t *testing.T) {
	c := New[int](3)

	if !c.Empty() {
		t.Fatalf("Empty circ is not empty")
	}

	for i := 1; i <= 3; i++ {
		c.Add(i)
		if c.Len() != i {
			t.Fatalf("Wrong count. Expected %d but got %d", i, c.Len())
		}
	}

	c.Add(4)
	if c.Len() != 3 {
		t.Fatalf("Wrong count after eviction: %d", c.Len())
	}
	assert.Equal(t, []int{2, 3, 4}, contents(c))

	c.Add(5)
	c.Add(6)
	c.Add(7)
	assert.Equal(t, []int{5, 6, 7}, contents(c))

	v, ok := c.Newest()
	assert.True(t, ok)
	assert.Equal(t, 7, v)
}

func TestSizeOne(t *testing.T) {
	c := New[int](0)
	c.Add(1)
	c.Add(2)

	assert.Equal(t, 1, c.Max())
	assert.Equal(t, []int{2}, contents(c))
}

func TestClear(t *testing.T) {
	c := New[int](2)
	c.Add(1)
	c.Clear()

	if _, ok := c.Newest(); ok {
		t.Fatalf("Newest on a cleared circ returned a value")
	}
	c.Add(3)
	assert.Equal(t, []int{3}, contents(c))
}

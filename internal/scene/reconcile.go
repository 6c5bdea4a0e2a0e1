package scene

import "sort"

// Reconciler keeps one display handle per sort index. Sort indexes change with every
// edit, so the handles are reconciled against the buffer once per frame, after all
// edits for the frame are done, instead of being tied to the sorts themselves.
type Reconciler[H any] struct {
	handles map[int]H
	create  func(i int) H
	destroy func(h H)
}

// NewReconciler makes a reconciler that calls create for each index that appears and
// destroy for the handle of each index that disappears. destroy may be nil.
func NewReconciler[H any](create func(i int) H, destroy func(h H)) *Reconciler[H] {
	return &Reconciler[H]{
		handles: make(map[int]H),
		create:  create,
		destroy: destroy,
	}
}

// Reconcile makes the handles match a buffer of n sorts. It returns the number of
// handles created and destroyed.
func (r *Reconciler[H]) Reconcile(n int) (created, destroyed int) {
	for i, h := range r.handles {
		if i < n {
			continue
		}
		if r.destroy != nil {
			r.destroy(h)
		}
		delete(r.handles, i)
		destroyed++
	}

	for i := 0; i < n; i++ {
		if _, ok := r.handles[i]; ok {
			continue
		}
		r.handles[i] = r.create(i)
		created++
	}

	if created > 0 || destroyed > 0 {
		debug("Reconciler: created %d and destroyed %d handles\n", created, destroyed)
	}
	return
}

func (r *Reconciler[H]) Handle(i int) (h H, ok bool) {
	h, ok = r.handles[i]
	return
}

func (r *Reconciler[H]) Len() int {
	return len(r.handles)
}

// Indexes returns the indexes that have handles, in increasing order.
func (r *Reconciler[H]) Indexes() []int {
	idx := make([]int, 0, len(r.handles))
	for i := range r.handles {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	return idx
}

// Clear destroys every handle.
func (r *Reconciler[H]) Clear() {
	r.Reconcile(0)
}

// HandleIds hands out small integer handles, reusing freed ones lowest first.
type HandleIds struct {
	next int
	free []int
}

func (g *HandleIds) Get() int {
	if len(g.free) == 0 {
		n := g.next
		g.next++
		return n
	}

	sort.Ints(g.free)
	n := g.free[0]
	g.free = g.free[1:]
	return n
}

func (g *HandleIds) Free(id int) {
	g.free = append(g.free, id)
}

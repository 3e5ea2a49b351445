package fxmatrix

// walker resolves cross rates by breadth-first search over the graph whose
// vertices are currency indices and whose edges are the supplied cells.
//
// It starts from the denominator and carries, for each visited vertex v, the
// quantity of v equivalent to one unit of the denominator. Reaching the
// numerator yields the composed rate along a path with the fewest hops.
type walker struct {
	m       *Checked
	queue   []int
	visited []bool
	acc     []float64
}

func newWalker(m *Checked) *walker {
	n := m.index.len()
	return &walker{
		m:       m,
		queue:   make([]int, 0, n),
		visited: make([]bool, n),
		acc:     make([]float64, n),
	}
}

// resolve returns the rate of the currency at index num per unit of the
// currency at index den, or false if they are not connected.
func (w *walker) resolve(num, den int) (float64, bool) {
	w.enqueue(den, 1)
	for len(w.queue) > 0 {
		u := w.dequeue()
		if u == num {
			return w.acc[u], true
		}
		w.enqueueNeighbors(u)
	}
	return 0, false
}

func (w *walker) enqueue(v int, acc float64) {
	w.visited[v] = true
	w.acc[v] = acc
	w.queue = append(w.queue, v)
}

func (w *walker) dequeue() int {
	u := w.queue[0]
	w.queue = w.queue[1:]
	return u
}

// enqueueNeighbors visits every unseen vertex sharing a supplied cell with u,
// in index order so that results are deterministic.
func (w *walker) enqueueNeighbors(u int) {
	for v := range w.visited {
		if v == u || w.visited[v] || !w.m.isSupplied(u, v) {
			continue
		}
		// rate(v, den) = rate(v, u) * rate(u, den)
		r, _ := w.m.store.rate(v, u)
		w.enqueue(v, r*w.acc[u])
	}
}

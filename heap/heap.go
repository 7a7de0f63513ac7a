package heap

// Heap is a binary min-heap ordered by less.
type Heap[T any] struct {
	data []T
	less func(a, b T) bool
}

func New[T any](less func(a, b T) bool) *Heap[T] {
	return &Heap[T]{
		data: []T{},
		less: less,
	}
}

func (h *Heap[T]) Push(value T) {
	h.data = append(h.data, value)
	h.up(len(h.data) - 1)
}

func (h *Heap[T]) Pop() (T, bool) {
	if len(h.data) == 0 {
		var zero T
		return zero, false
	}
	top := h.data[0]
	last := len(h.data) - 1
	h.data[0] = h.data[last]
	var zero T
	h.data[last] = zero
	h.data = h.data[:last]
	h.down(0)
	return top, true
}

func (h *Heap[T]) Peek() (T, bool) {
	if len(h.data) == 0 {
		var zero T
		return zero, false
	}
	return h.data[0], true
}

// PopWhile pops and returns, in heap order, every leading element for which pred holds.
func (h *Heap[T]) PopWhile(pred func(T) bool) []T {
	var result []T
	for {
		top, found := h.Peek()
		if !found || !pred(top) {
			return result
		}
		h.Pop()
		result = append(result, top)
	}
}

// Sorted returns a copy of the contents in heap order, leaving the heap untouched.
func (h *Heap[T]) Sorted() []T {
	clone := &Heap[T]{
		data: append([]T{}, h.data...),
		less: h.less,
	}
	result := make([]T, 0, len(h.data))
	for v, found := clone.Pop(); found; v, found = clone.Pop() {
		result = append(result, v)
	}
	return result
}

func (h *Heap[T]) Clear() {
	h.data = []T{}
}

func (h *Heap[T]) Size() int {
	return len(h.data)
}

func (h *Heap[T]) swap(i, j int) {
	h.data[i], h.data[j] = h.data[j], h.data[i]
}

func (h *Heap[T]) up(index int) {
	for index > 0 {
		parent := (index - 1) / 2
		if !h.less(h.data[index], h.data[parent]) {
			return
		}
		h.swap(index, parent)
		index = parent
	}
}

func (h *Heap[T]) down(index int) {
	size := len(h.data)
	for {
		smallest := index
		for _, child := range []int{2*index + 1, 2*index + 2} {
			if child < size && h.less(h.data[child], h.data[smallest]) {
				smallest = child
			}
		}
		if smallest == index {
			return
		}
		h.swap(index, smallest)
		index = smallest
	}
}

package component

import (
	"sync"
)

// HandleTable stores values behind reusable handles.
// Freed handles are reused most recently freed first.
type HandleTable[T any] struct {
	entries  []slot[T]
	freeList []Handle
	mu       sync.RWMutex
	closed   bool
}

type slot[T any] struct {
	value T
	valid bool
}

// NewHandleTable creates an empty table.
func NewHandleTable[T any]() *HandleTable[T] {
	return &HandleTable[T]{
		entries:  make([]slot[T], 0, 16),
		freeList: make([]Handle, 0, 4),
	}
}

// Insert stores value and returns its handle, or 0 if the table is closed.
func (t *HandleTable[T]) Insert(value T) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return 0
	}

	s := slot[T]{value: value, valid: true}
	if len(t.freeList) > 0 {
		handle := t.freeList[len(t.freeList)-1]
		t.freeList = t.freeList[:len(t.freeList)-1]
		t.entries[handle-1] = s
		return handle
	}

	t.entries = append(t.entries, s)
	return Handle(len(t.entries))
}

// Get retrieves a value by handle.
func (t *HandleTable[T]) Get(handle Handle) (T, bool) {
	var zero T
	if handle == 0 {
		return zero, false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	idx := int(handle) - 1
	if idx >= len(t.entries) || !t.entries[idx].valid {
		return zero, false
	}
	return t.entries[idx].value, true
}

// Remove drops a value and returns it if the handle was valid.
func (t *HandleTable[T]) Remove(handle Handle) (T, bool) {
	var zero T
	if handle == 0 {
		return zero, false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	idx := int(handle) - 1
	if idx >= len(t.entries) || !t.entries[idx].valid {
		return zero, false
	}

	value := t.entries[idx].value
	t.entries[idx] = slot[T]{}
	t.freeList = append(t.freeList, handle)
	return value, true
}

// Len returns the number of live values.
func (t *HandleTable[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries) - len(t.freeList)
}

// Handles returns the live handles in increasing order.
func (t *HandleTable[T]) Handles() []Handle {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Handle, 0, len(t.entries)-len(t.freeList))
	for i, s := range t.entries {
		if s.valid {
			out = append(out, Handle(i+1))
		}
	}
	return out
}

// Seal stops the table from accepting new values and returns the handles
// still live. Existing entries stay reachable until removed or closed.
func (t *HandleTable[T]) Seal() []Handle {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.closed = true
	out := make([]Handle, 0, len(t.entries)-len(t.freeList))
	for i, s := range t.entries {
		if s.valid {
			out = append(out, Handle(i+1))
		}
	}
	return out
}

// Close stops the table from accepting new values and drops all entries.
func (t *HandleTable[T]) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.closed = true
	t.entries = nil
	t.freeList = nil
}

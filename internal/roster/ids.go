package roster

// IDAllocator hands out monotonically increasing person IDs starting at 1.
type IDAllocator struct {
	next int
}

// NewIDAllocator returns an allocator whose first ID is 1.
func NewIDAllocator() *IDAllocator {
	return &IDAllocator{next: 1}
}

// Next returns a fresh ID.
func (a *IDAllocator) Next() int {
	if a.next < 1 {
		a.next = 1
	}
	id := a.next
	a.next++
	return id
}

// Bump makes sure future IDs are greater than seen.
func (a *IDAllocator) Bump(seen int) {
	if seen >= a.next {
		a.next = seen + 1
	}
}

// Peek returns the ID Next would hand out without consuming it.
func (a *IDAllocator) Peek() int {
	if a.next < 1 {
		return 1
	}
	return a.next
}

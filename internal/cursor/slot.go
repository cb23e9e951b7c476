package cursor

import "strconv"

type slotKind uint8

const (
	slotNone slotKind = iota
	slotAt
	slotCreateNew
)

// Slot is the focus within one collection: nothing, an existing element, or
// the "create new" row that follows the last element.
type Slot struct {
	kind  slotKind
	index int
}

// None is the empty slot. It is also the zero value.
func None() Slot { return Slot{} }

// At focuses element i. Negative indices are treated as 0.
func At(i int) Slot {
	if i < 0 {
		i = 0
	}
	return Slot{kind: slotAt, index: i}
}

// CreateNew focuses the row used to add an element to the collection.
func CreateNew() Slot { return Slot{kind: slotCreateNew} }

func (s Slot) IsNone() bool      { return s.kind == slotNone }
func (s Slot) IsCreateNew() bool { return s.kind == slotCreateNew }

// Index returns the focused element, if the slot is At(i).
func (s Slot) Index() (int, bool) {
	if s.kind != slotAt {
		return 0, false
	}
	return s.index, true
}

func (s Slot) String() string {
	switch s.kind {
	case slotAt:
		return strconv.Itoa(s.index)
	case slotCreateNew:
		return "new"
	default:
		return "none"
	}
}

// first is where focus lands when entering a collection of n elements.
func first(n int) Slot {
	if n == 0 {
		return CreateNew()
	}
	return At(0)
}

// next steps forward through a collection of n elements. The create-new row
// comes after the last element and wraps back to the first.
func (s Slot) next(n int) Slot {
	switch s.kind {
	case slotAt:
		if s.index+1 < n {
			return At(s.index + 1)
		}
		return CreateNew()
	default:
		return first(n)
	}
}

// prev steps backward, stopping at the first element.
func (s Slot) prev(n int) Slot {
	switch s.kind {
	case slotAt:
		if n == 0 {
			return CreateNew()
		}
		return At(min(s.index-1, n-1))
	case slotCreateNew:
		if n == 0 {
			return s
		}
		return At(n - 1)
	default:
		return s
	}
}

// clamp pulls an index that no longer exists back to the last element, or to
// None when the collection is empty.
func (s Slot) clamp(n int) Slot {
	if s.kind != slotAt || s.index < n {
		return s
	}
	if n == 0 {
		return None()
	}
	return At(n - 1)
}

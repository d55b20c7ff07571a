package reorder

// Collection is an ordered sequence of unique items owned by the host.
//
// Items returns a live view: callers must not modify the returned slice.
// SetItems replaces the whole order; the state calls it once per
// successful drop.
type Collection[T comparable] interface {
	Items() []T
	SetItems(items []T)
}

// List is the default Collection backed by a slice.
type List[T comparable] struct {
	items []T
}

// NewList creates a List holding items in the given order.
// It returns a *DuplicateItemError if any item appears twice.
func NewList[T comparable](items ...T) (*List[T], error) {
	if err := Validate(items); err != nil {
		return nil, err
	}
	owned := make([]T, len(items))
	copy(owned, items)
	return &List[T]{items: owned}, nil
}

// Items implements Collection.
func (l *List[T]) Items() []T {
	return l.items
}

// SetItems implements Collection.
func (l *List[T]) SetItems(items []T) {
	l.items = items
}


// IndexOf returns the position of item in items, or -1.
func IndexOf[T comparable](items []T, item T) int {
	for i, v := range items {
		if v == item {
			return i
		}
	}
	return -1
}

// Contains reports whether item is a member of items.
func Contains[T comparable](items []T, item T) bool {
	return IndexOf(items, item) >= 0
}

// Validate checks that items holds no duplicates.
func Validate[T comparable](items []T) error {
	seen := make(map[T]int, len(items))
	for i, v := range items {
		if prev, ok := seen[v]; ok {
			return &DuplicateItemError{Index: i, Previous: prev}
		}
		seen[v] = i
	}
	return nil
}

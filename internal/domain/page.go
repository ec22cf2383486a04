package domain

// Page is one page of records returned by a source
// Received counts raw records before malformed ones were dropped;
// pagination infers "has more" from it
type Page[T any] struct {
	Items    []T
	Received int
}

// NewPage builds a page where every received record survived mapping
func NewPage[T any](items []T) Page[T] {
	return Page[T]{Items: items, Received: len(items)}
}

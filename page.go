package sdk

import "fmt"

// Page describes which slice of a result set to return: a 1-based page index
// and a page size. Pagination is purely a request-shaping concern; the client
// does not iterate on the caller's behalf.
//
// There is no exact total count in the wire protocol. Callers detect "more
// results may remain" heuristically: a page filled to exactly its requested
// size may be followed by another page.
//
// Example:
//
//	page, err := sdk.NewPage(1, 30) // "the first 30 results"
type Page struct {
	index int
	size  int
}

// DefaultPage is the page used by callers that omit explicit paging: the
// first page with a standard size of 50.
var DefaultPage = Page{index: 1, size: 50}

// NewPage builds a page descriptor. Both the index and the size must be
// positive; anything else fails with a validation ServiceException.
func NewPage(index, size int) (Page, error) {
	if index < 1 {
		return Page{}, newValidationError(StatusInvalidPage,
			fmt.Sprintf("page index must be at least 1, got %d", index))
	}
	if size < 1 {
		return Page{}, newValidationError(StatusInvalidPage,
			fmt.Sprintf("page size must be at least 1, got %d", size))
	}
	return Page{index: index, size: size}, nil
}

// Index returns the 1-based page index.
func (p Page) Index() int { return p.index }

// Size returns the page size.
func (p Page) Size() int { return p.size }

// isZero reports whether p is the uninitialized zero value, which callers may
// pass to mean "use DefaultPage".
func (p Page) isZero() bool { return p.index == 0 && p.size == 0 }

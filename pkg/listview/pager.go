package listview

// DefaultPageSize is used when no page size, or a non-positive one, is given.
const DefaultPageSize = 10

// DefaultPageSizes are the page sizes a list page offers.
var DefaultPageSizes = []int{5, 10, 25, 50}

// Page is one visible slice of a filtered collection.
type Page[T any] struct {
	Items      []T
	TotalPages int
	Page       int
}

// Paginate returns the page-th slice of items, 1-based. The page index is
// clamped into [1, TotalPages] and TotalPages is never below 1, so an empty
// collection yields one empty page.
func Paginate[T any](items []T, pageSize, page int) Page[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	total := TotalPages(len(items), pageSize)
	page = ClampPage(page, total)

	lo := (page - 1) * pageSize
	hi := min(lo+pageSize, len(items))
	return Page[T]{
		Items:      items[lo:hi:hi],
		TotalPages: total,
		Page:       page,
	}
}

// TotalPages returns ceil(n/pageSize), at least 1.
func TotalPages(n, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return max(1, (n+pageSize-1)/pageSize)
}

// ClampPage bounds page into [1, total].
func ClampPage(page, total int) int {
	return min(max(1, page), max(1, total))
}

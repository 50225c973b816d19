package pagination

const (
	// DefaultPageSize mirrors the staff screens, which page in blocks of 50.
	DefaultPageSize = 50
	// MaxPageSize caps how many rows any offset query can request.
	MaxPageSize = 100
)

// Request holds offset pagination inputs from controllers or services.
// Page is 1-based.
type Request struct {
	Page int
	Size int
}

// Normalize clamps the request to a valid 1-based page and bounded size.
func (r Request) Normalize() Request {
	if r.Page <= 0 {
		r.Page = 1
	}
	if r.Size <= 0 {
		r.Size = DefaultPageSize
	}
	if r.Size > MaxPageSize {
		r.Size = MaxPageSize
	}
	return r
}

// Offset returns the row offset for the normalized request.
func (r Request) Offset() int {
	n := r.Normalize()
	return (n.Page - 1) * n.Size
}

// Limit returns the row limit for the normalized request.
func (r Request) Limit() int {
	return r.Normalize().Size
}

// TotalPages computes the page count for a filtered total.
func TotalPages(totalCount int64, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	if totalCount <= 0 {
		return 0
	}
	pages := totalCount / int64(size)
	if totalCount%int64(size) != 0 {
		pages++
	}
	return int(pages)
}

package pagination

const (
	// DefaultPerPage is the standard page size when one is not provided.
	DefaultPerPage = 50
	// MaxPerPage caps how many rows any list query can request.
	MaxPerPage = 200
)

// Params holds page/per_page inputs from controllers.
type Params struct {
	Page    int
	PerPage int
}

// Normalize clamps the parameters to sane bounds.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage <= 0 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return p
}

// Offset returns the row offset for the normalized parameters.
func (p Params) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.PerPage
}

// TotalPages returns the page count for the given total row count.
func TotalPages(total int64, perPage int) int64 {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if total <= 0 {
		return 0
	}
	return (total + int64(perPage) - 1) / int64(perPage)
}

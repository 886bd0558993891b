package repository

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Pagination holds 1-based offset/limit paging parameters.
type Pagination struct {
	Page     int
	PageSize int
}

// Normalized clamps page and size into their accepted ranges.
func (p Pagination) Normalized() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	switch {
	case p.PageSize <= 0:
		p.PageSize = defaultPageSize
	case p.PageSize > maxPageSize:
		p.PageSize = maxPageSize
	}
	return p
}

// Offset returns the number of records to skip.
func (p Pagination) Offset() int {
	n := p.Normalized()
	return (n.Page - 1) * n.PageSize
}

// Limit returns the maximum number of records to return.
func (p Pagination) Limit() int {
	return p.Normalized().PageSize
}

// TotalPages returns how many pages total items span.
func (p Pagination) TotalPages(total int) int {
	size := p.Limit()
	return (total + size - 1) / size
}

package pagination

import "strconv"

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Params holds coerced pagination input.
type Params struct {
	Page  int
	Limit int
}

// Parse coerces raw query values to positive integers. Missing,
// non-numeric, or non-positive input falls back to the defaults rather
// than failing.
func Parse(pageStr, limitStr string) Params {
	p := Params{Page: DefaultPage, Limit: DefaultLimit}

	if page, err := strconv.Atoi(pageStr); err == nil && page >= 1 {
		p.Page = page
	}
	if limit, err := strconv.Atoi(limitStr); err == nil && limit >= 1 {
		p.Limit = limit
	}

	return p
}

// Offset returns the number of rows to skip.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages returns ceil(total/limit). Zero matching rows yield 0.
func TotalPages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

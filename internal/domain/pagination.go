package domain

import "strings"

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

type Pagination struct {
	Page     int
	PageSize int
	Term     string
	Sort     string
}

func (f Pagination) SortColumn() string {
	return strings.TrimPrefix(f.Sort, "-")
}

func (f Pagination) SortDirection() string {
	if strings.HasPrefix(f.Sort, "-") {
		return "DESC"
	}

	return "ASC"
}

func (f Pagination) Limit() int {
	return f.PageSize
}

func (f Pagination) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// Window returns the [start, end) slice bounds of the requested page over n items.
func (f Pagination) Window(n int) (int, int) {
	start := min(f.Offset(), n)
	end := min(start+f.Limit(), n)

	return start, end
}

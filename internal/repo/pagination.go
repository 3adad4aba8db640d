package repo

// Pagination carries the page metadata returned next to every listing.
// CurrentPage echoes the requested page even when it is past the end; an
// out-of-range page yields an empty list, never an error.
type Pagination struct {
	TotalPages  int   `json:"total_pages"`
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	TotalCount  int64 `json:"total_count"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

const (
	DefaultPage    = 1
	DefaultPerPage = 10
)

// normalizePage applies defaults for absent or non-positive values.
func normalizePage(page, perPage int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	return page, perPage
}

func paginate(total int64, page, perPage int) Pagination {
	pages := int((total + int64(perPage) - 1) / int64(perPage))
	return Pagination{
		TotalPages:  pages,
		CurrentPage: page,
		PerPage:     perPage,
		TotalCount:  total,
		HasNext:     page < pages,
		HasPrev:     page > 1,
	}
}

package service

import "bookreview/internal/models"

// BookFilter narrows and slices the catalog view.
type BookFilter struct {
	Query    string // substring match against title; "" means all books
	Page     int    // 1-based; values < 1 fall back to 1
	PageSize int    // values < 1 fall back to the configured default
}

// PageParams slices a plain (unfiltered) listing.
type PageParams struct {
	Page     int
	PageSize int
}

// PageMeta tells the caller where the returned slice sits in the full
// result set and whether further pages exist.
type PageMeta struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	TotalCount int  `json:"total_count"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

type BookPage struct {
	Books []models.Book `json:"books"`
	PageMeta
}

type ReviewPage struct {
	Reviews []models.Review `json:"reviews"`
	PageMeta
}

// maxPageSize caps a caller-supplied page size; beyond it the request
// falls back to the cap rather than erroring.
const maxPageSize = 100

// normalizePage applies the fail-soft pagination policy: out-of-range
// values are replaced by defaults instead of being rejected.
func normalizePage(page, size, defaultSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = defaultSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}

// buildMeta derives page metadata for a total result count.
func buildMeta(page, size, total int) PageMeta {
	totalPages := 0
	if total > 0 {
		totalPages = (total + size - 1) / size
	}
	return PageMeta{
		Page:       page,
		PageSize:   size,
		TotalCount: total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1 && total > 0,
	}
}

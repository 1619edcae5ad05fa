package helpers

import (
	"net/http"
	"strconv"

	"eventpass/internal/domain"
)

// Listing defaults. page_size is capped so a station cannot pull the whole table at once.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ParsePagination reads page and page_size from the query string. Missing, malformed or
// non-positive values fall back to the defaults; page_size above MaxPageSize is capped.
func ParsePagination(r *http.Request) domain.PaginationParams {
	q := r.URL.Query()
	return domain.PaginationParams{
		Page:     positiveInt(q.Get("page"), DefaultPage),
		PageSize: min(positiveInt(q.Get("page_size"), DefaultPageSize), MaxPageSize),
	}
}

func positiveInt(s string, fallback int) int {
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return fallback
	}
	return v
}

// PaginationMeta accompanies every paginated listing.
// swagger:model PaginationMeta
type PaginationMeta struct {
	Page       int `json:"pagina"`
	PageSize   int `json:"por_pagina"`
	Total      int `json:"total"`
	TotalPages int `json:"total_paginas"`
}

// NewPaginationMeta computes the page count by ceiling division. A zero page size yields zero pages.
func NewPaginationMeta(page, pageSize, total int) PaginationMeta {
	meta := PaginationMeta{Page: page, PageSize: pageSize, Total: total}
	if pageSize > 0 {
		meta.TotalPages = (total + pageSize - 1) / pageSize
	}
	return meta
}

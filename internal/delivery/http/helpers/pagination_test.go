package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"eventpass/internal/domain"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		query string
		want  domain.PaginationParams
	}{
		{"", domain.PaginationParams{Page: 1, PageSize: 20}},
		{"?page=3&page_size=50", domain.PaginationParams{Page: 3, PageSize: 50}},
		{"?page=0&page_size=-4", domain.PaginationParams{Page: 1, PageSize: 20}},
		{"?page=abc&page_size=1000", domain.PaginationParams{Page: 1, PageSize: 100}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := ParsePagination(httptest.NewRequest("GET", "/codes"+tt.query, nil))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewPaginationMeta(t *testing.T) {
	assert.Equal(t, PaginationMeta{Page: 2, PageSize: 20, Total: 41, TotalPages: 3}, NewPaginationMeta(2, 20, 41))
	assert.Equal(t, 0, NewPaginationMeta(1, 20, 0).TotalPages)
	assert.Equal(t, 0, NewPaginationMeta(1, 0, 10).TotalPages)
}

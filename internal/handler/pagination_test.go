package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPaginatedResponse(t *testing.T) {
	tests := []struct {
		name       string
		totalItems int64
		page       int
		limit      int
		totalPages int
	}{
		{"exact pages", 20, 1, 10, 2},
		{"partial last page", 21, 3, 10, 3},
		{"empty result", 0, 1, 10, 0},
		{"single item", 1, 1, 10, 1},
		{"zero limit is clamped", 5, 1, 0, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := NewPaginatedResponse([]string{}, tt.totalItems, tt.page, tt.limit)
			assert.Equal(t, tt.totalItems, resp.Meta.TotalItems)
			assert.Equal(t, tt.totalPages, resp.Meta.TotalPages)
			assert.Equal(t, tt.page, resp.Meta.CurrentPage)
		})
	}
}

package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestCalculateOffsetLimit(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		wantOffset uint64
		wantLimit  int
	}{
		{"first page", 1, 10, 0, 10},
		{"third page", 3, 20, 40, 20},
		{"zero page clamps to first", 0, 10, 0, 10},
		{"negative page clamps to first", -5, 10, 0, 10},
		{"zero size falls back to default", 2, 0, 10, 10},
		{"oversized page size falls back to default", 1, 1000, 0, DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := CalculateOffsetLimit(tt.page, tt.size)
			assert.Equal(t, tt.wantOffset, offset)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestCalculateOffsetLimitProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		page := rapid.IntRange(-100, 10000).Draw(t, "page")
		size := rapid.IntRange(-100, 1000).Draw(t, "size")

		offset, limit := CalculateOffsetLimit(page, size)

		assert.Greater(t, limit, 0)
		assert.LessOrEqual(t, limit, MaxPageSize)
		assert.Zero(t, offset%uint64(limit))
	})
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(42, 2, 10)
	assert.Equal(t, 2, info.CurrentPage)
	assert.Equal(t, 5, info.TotalPages)
	assert.Equal(t, 10, info.PageSize)
	assert.Equal(t, int64(42), info.TotalItems)

	empty := NewPaginationInfo(0, 1, 10)
	assert.Equal(t, 1, empty.TotalPages)
	assert.Equal(t, int64(0), empty.TotalItems)

	past := NewPaginationInfo(10, 5, 10)
	assert.Equal(t, 1, past.CurrentPage)
}

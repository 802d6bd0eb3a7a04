package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateClamps(t *testing.T) {
	p := &PaginationParams{Page: -3, PerPage: 500}
	p.Validate()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 100, p.PerPage)
	assert.Equal(t, 0, p.Offset())

	p = &PaginationParams{Page: 3, PerPage: 0}
	p.Validate()
	assert.Equal(t, 20, p.PerPage)
	assert.Equal(t, 40, p.Offset())
}

func TestNewPagination(t *testing.T) {
	page := NewPagination(2, 20, 45)
	assert.Equal(t, 3, page.TotalPages)
	assert.True(t, page.HasNext)
	assert.True(t, page.HasPrev)

	last := NewPagination(3, 20, 45)
	assert.False(t, last.HasNext)

	empty := NewPaginatedResult[int](nil, NewPagination(1, 20, 0))
	assert.NotNil(t, empty.Items)
	assert.Equal(t, 0, empty.Pagination.TotalPages)
}

package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	p := paginate(25, 2, 10)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 2, p.CurrentPage)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	// exact multiple
	p = paginate(20, 2, 10)
	assert.Equal(t, 2, p.TotalPages)
	assert.False(t, p.HasNext)

	// empty set
	p = paginate(0, 1, 10)
	assert.Equal(t, 0, p.TotalPages)
	assert.False(t, p.HasNext)
	assert.False(t, p.HasPrev)

	// past the end: echoed, not clamped
	p = paginate(3, 7, 5)
	assert.Equal(t, 7, p.CurrentPage)
	assert.Equal(t, 1, p.TotalPages)
	assert.False(t, p.HasNext)
	assert.True(t, p.HasPrev)
}

func TestNormalizePage(t *testing.T) {
	page, per := normalizePage(0, 0)
	assert.Equal(t, DefaultPage, page)
	assert.Equal(t, DefaultPerPage, per)

	page, per = normalizePage(-3, -1)
	assert.Equal(t, DefaultPage, page)
	assert.Equal(t, DefaultPerPage, per)

	page, per = normalizePage(4, 25)
	assert.Equal(t, 4, page)
	assert.Equal(t, 25, per)
}

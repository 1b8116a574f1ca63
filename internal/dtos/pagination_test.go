package dtos

import (
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePageRequest(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  PageRequest
	}{
		{"defaults", "", PageRequest{Page: 0, Size: 10, Sort: "fecha"}},
		{"explicit page and size", "page=2&size=25", PageRequest{Page: 2, Size: 25, Sort: "fecha"}},
		{"sort field only", "sort=titulo", PageRequest{Page: 0, Size: 10, Sort: "titulo"}},
		{"sort with direction", "sort=titulo,desc", PageRequest{Page: 0, Size: 10, Sort: "titulo", Desc: true}},
		{"direction case-insensitive", "sort=curso,DESC", PageRequest{Page: 0, Size: 10, Sort: "curso", Desc: true}},
		{"size capped", "size=5000", PageRequest{Page: 0, Size: 100, Sort: "fecha"}},
		{"negative page ignored", "page=-3", PageRequest{Page: 0, Size: 10, Sort: "fecha"}},
		{"zero size ignored", "size=0", PageRequest{Page: 0, Size: 10, Sort: "fecha"}},
		{"garbage ignored", "page=abc&size=xyz", PageRequest{Page: 0, Size: 10, Sort: "fecha"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/topicos?"+tt.query, nil)
			assert.Equal(t, tt.want, ParsePageRequest(r))
		})
	}
}

func TestNewPagedModel(t *testing.T) {
	base, err := url.Parse("/topicos?page=1&size=2")
	require.NoError(t, err)

	req := PageRequest{Page: 1, Size: 2, Sort: "fecha"}
	model := NewPagedModel([]string{"a", "b"}, req, 5, base)

	assert.Equal(t, 1, model.Page.Number)
	assert.Equal(t, 2, model.Page.Size)
	assert.Equal(t, int64(5), model.Page.TotalElements)
	assert.Equal(t, 3, model.Page.TotalPages)

	// middle page links in every direction
	assert.Contains(t, model.Links["self"], "page=1")
	assert.Contains(t, model.Links["first"], "page=0")
	assert.Contains(t, model.Links["prev"], "page=0")
	assert.Contains(t, model.Links["next"], "page=2")
	assert.Contains(t, model.Links["last"], "page=2")
}

func TestNewPagedModel_FirstAndLastPage(t *testing.T) {
	base, err := url.Parse("/topicos")
	require.NoError(t, err)

	first := NewPagedModel([]string{"a"}, PageRequest{Page: 0, Size: 10, Sort: "fecha"}, 1, base)
	assert.NotContains(t, first.Links, "prev")
	assert.NotContains(t, first.Links, "next")
	assert.Equal(t, 1, first.Page.TotalPages)

	empty := NewPagedModel[string](nil, PageRequest{Page: 0, Size: 10, Sort: "fecha"}, 0, base)
	assert.NotNil(t, empty.Content)
	assert.Empty(t, empty.Content)
	assert.Equal(t, 0, empty.Page.TotalPages)
	assert.NotContains(t, empty.Links, "last")
}

func TestPageLink_PreservesSortDirection(t *testing.T) {
	base, err := url.Parse("/topicos?curso=go")
	require.NoError(t, err)

	model := NewPagedModel([]string{"a"}, PageRequest{Page: 0, Size: 10, Sort: "titulo", Desc: true}, 20, base)
	self := model.Links["self"]
	assert.Contains(t, self, "sort=titulo%2Cdesc")
	// unrelated query parameters carry over into the links
	assert.Contains(t, self, "curso=go")
}

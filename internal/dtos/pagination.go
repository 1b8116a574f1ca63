// File: internal/dtos/pagination.go
package dtos

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultSort     = "fecha"
)

// PageRequest carries pagination and sorting extracted from the query
// string. Pages are zero-based. Sort accepts the "field,direction" form,
// e.g. "fecha,desc"; a bare field name sorts ascending.
type PageRequest struct {
	Page int
	Size int
	Sort string
	Desc bool
}

// ParsePageRequest reads page, size and sort from the request query,
// falling back to page 0, size 10, fecha ascending.
func ParsePageRequest(r *http.Request) PageRequest {
	q := r.URL.Query()

	req := PageRequest{Page: 0, Size: DefaultPageSize, Sort: DefaultSort}

	if v, err := strconv.Atoi(q.Get("page")); err == nil && v >= 0 {
		req.Page = v
	}
	if v, err := strconv.Atoi(q.Get("size")); err == nil && v > 0 {
		if v > MaxPageSize {
			v = MaxPageSize
		}
		req.Size = v
	}

	if sort := q.Get("sort"); sort != "" {
		field, dir, _ := strings.Cut(sort, ",")
		if field = strings.TrimSpace(field); field != "" {
			req.Sort = field
		}
		req.Desc = strings.EqualFold(strings.TrimSpace(dir), "desc")
	}

	return req
}

// PageMetadata describes the slice of results a paged response carries.
type PageMetadata struct {
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

// PagedModel is one page of content plus navigation links.
type PagedModel[T any] struct {
	Content []T               `json:"content"`
	Page    PageMetadata      `json:"page"`
	Links   map[string]string `json:"links"`
}

// NewPagedModel assembles a paged response. baseURL is the request URL the
// page was served from; navigation links reuse its path and query with the
// page number swapped.
func NewPagedModel[T any](content []T, req PageRequest, total int64, baseURL *url.URL) PagedModel[T] {
	totalPages := 0
	if req.Size > 0 {
		totalPages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}

	links := map[string]string{
		"self":  pageLink(baseURL, req, req.Page),
		"first": pageLink(baseURL, req, 0),
	}
	if totalPages > 0 {
		links["last"] = pageLink(baseURL, req, totalPages-1)
	}
	if req.Page > 0 {
		links["prev"] = pageLink(baseURL, req, req.Page-1)
	}
	if req.Page < totalPages-1 {
		links["next"] = pageLink(baseURL, req, req.Page+1)
	}

	if content == nil {
		content = []T{}
	}

	return PagedModel[T]{
		Content: content,
		Page: PageMetadata{
			Number:        req.Page,
			Size:          req.Size,
			TotalElements: total,
			TotalPages:    totalPages,
		},
		Links: links,
	}
}

func pageLink(baseURL *url.URL, req PageRequest, page int) string {
	u := *baseURL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(req.Size))
	sort := req.Sort
	if req.Desc {
		sort = fmt.Sprintf("%s,desc", sort)
	}
	q.Set("sort", sort)
	u.RawQuery = q.Encode()
	return u.String()
}

package service

import "alcyxob/gym-management/internal/repository"

// Paged is one page of a list plus what a pager needs to render.
type Paged[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}

// NewPaged wraps items fetched for page.
func NewPaged[T any](items []T, total int64, page repository.Page) Paged[T] {
	if items == nil {
		items = []T{}
	}
	p := Paged[T]{Items: items, Total: total, Page: page.Page, PageSize: page.Size}
	if page.Size > 0 {
		p.TotalPages = int((total + int64(page.Size) - 1) / int64(page.Size))
	} else if total > 0 {
		p.TotalPages = 1
	}
	return p
}

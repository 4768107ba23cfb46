package handler

import (
	"slices"
	"strings"

	"notamadmin/internal/model"
)

const defaultPerPage = 10

var perPageOptions = []int{5, 10, 20, 50, 100}

type ListQuery struct {
	Airport string `form:"airport"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}

// Paginated reports whether the caller asked for a single page.
func (q ListQuery) Paginated() bool {
	return q.Page != 0 || q.PerPage != 0
}

type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// FilterByAirport keeps NOTAMs whose airport name or airport id contains
// search, ignoring case. An empty search keeps everything.
func FilterByAirport(notams []model.Notam, search string) []model.Notam {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return notams
	}

	filtered := make([]model.Notam, 0, len(notams))
	for _, n := range notams {
		if strings.Contains(strings.ToLower(n.AirportName()), search) ||
			strings.Contains(strings.ToLower(n.AirportID), search) {
			filtered = append(filtered, n)
		}
	}
	return filtered
}

// Paginate returns one page of notams. Unknown page sizes fall back to the
// default and the page number is clamped into range.
func Paginate(notams []model.Notam, page, perPage int) ([]model.Notam, Pagination) {
	if !slices.Contains(perPageOptions, perPage) {
		perPage = defaultPerPage
	}

	total := len(notams)
	totalPages := max(1, (total+perPage-1)/perPage)
	page = max(1, min(page, totalPages))

	start := min((page-1)*perPage, total)
	end := min(start+perPage, total)

	return notams[start:end], Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: totalPages,
	}
}

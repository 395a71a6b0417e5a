// Package directory holds the page logic for the business/client
// management screens: pagination, row selection, form validation and the
// mapping of backend rejections onto form fields. Everything here is pure
// so the handlers stay thin.
package directory

// PerPage is the fixed directory page size.
const PerPage = 10

// ClampPage bounds a requested page to [1, pages]. pages==0 (unknown or
// empty listing) only clamps the lower bound.
func ClampPage(page, pages int) int {
	if page < 1 {
		return 1
	}
	if pages > 0 && page > pages {
		return pages
	}
	return page
}

// Window returns the 1-based "Showing from–to of total" bounds for a page.
// An empty listing yields (0, 0).
func Window(page, perPage, total int) (from, to int) {
	if total == 0 || perPage == 0 {
		return 0, 0
	}
	from = (page-1)*perPage + 1
	to = page * perPage
	if to > total {
		to = total
	}
	if from > total {
		return 0, 0
	}
	return from, to
}

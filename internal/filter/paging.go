package filter

import (
	"math"

	"github.com/Shivanand-hulikatti/events-catalog/internal/model"
)

// Default page sizes per view.
const (
	MosaicPageSize = 20
	ListPageSize   = 50
)

// ResolvePageSize returns explicit when it is set and positive, otherwise
// the default for view.
func ResolvePageSize(explicit *int, view model.ViewMode) int {
	if explicit != nil && *explicit > 0 {
		return *explicit
	}
	if model.ParseViewMode(string(view)) == model.ViewList {
		return ListPageSize
	}
	return MosaicPageSize
}

// ResolvePage returns the zero-based page index, defaulting absent or
// negative values to 0.
func ResolvePage(page *int) int {
	if page == nil || *page < 0 {
		return 0
	}
	return *page
}

// TotalPages is the number of pages of size needed for total items.
func TotalPages(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Offset is the number of items before page. It saturates at math.MaxInt
// instead of overflowing, so a huge page index yields an empty page.
func Offset(page, size int) int {
	if page <= 0 || size <= 0 {
		return 0
	}
	if page > math.MaxInt/size {
		return math.MaxInt
	}
	return page * size
}

package pagination

// Result wraps a paginated response as returned by the blog platform API.
type Result[T any] struct {
	Data       []T `json:"data"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Empty returns a result with no items for the given page and limit.
// Used when a fetch fails and the caller needs a well-formed zero value.
func Empty[T any](page, limit int) Result[T] {
	return Result[T]{Data: []T{}, Page: page, Limit: limit}
}

// WindowSize is the number of page buttons a paginator control shows.
const WindowSize = 5

// Window is the contiguous range of page numbers shown in a paginator
// control, plus the boundary affordances around it. It is derived, never
// stored.
type Window struct {
	Start int
	End   int

	// ShowLeadingFirst indicates page 1 should be rendered before the window.
	ShowLeadingFirst bool
	// ShowLeadingEllipsis indicates a gap between page 1 and the window.
	ShowLeadingEllipsis bool
	// ShowTrailingLast indicates the last page should be rendered after the window.
	ShowTrailingLast bool
	// ShowTrailingEllipsis indicates a gap between the window and the last page.
	ShowTrailingEllipsis bool
}

// Pages returns the page numbers inside the window, in order.
func (w Window) Pages() []int {
	if w.End < w.Start {
		return nil
	}
	pages := make([]int, 0, w.End-w.Start+1)
	for p := w.Start; p <= w.End; p++ {
		pages = append(pages, p)
	}
	return pages
}

// ComputeWindow derives the paginator window for the given current page and
// total page count. Pure: identical inputs always yield identical output.
//
// The window is centered on the current page, clamped to [1, totalPages],
// and re-anchored near the upper boundary so it stays full whenever enough
// pages exist.
func ComputeWindow(currentPage, totalPages int) Window {
	return computeWindow(currentPage, totalPages, WindowSize)
}

func computeWindow(currentPage, totalPages, size int) Window {
	if totalPages < 1 || currentPage < 1 {
		return Window{Start: 1, End: 0}
	}
	if currentPage > totalPages {
		currentPage = totalPages
	}

	start := currentPage - size/2
	if start < 1 {
		start = 1
	}
	end := start + size - 1
	if end > totalPages {
		end = totalPages
	}
	// Keep the window full near the upper boundary.
	if end-start+1 < size {
		start = end - size + 1
		if start < 1 {
			start = 1
		}
	}

	return Window{
		Start:                start,
		End:                  end,
		ShowLeadingFirst:     start > 1,
		ShowLeadingEllipsis:  start > 2,
		ShowTrailingLast:     end < totalPages,
		ShowTrailingEllipsis: end < totalPages-1,
	}
}

package filters

// ComputePageSize derives a page size from the available height in pixels,
// clamped to [minSize, maxSize]. A non-positive row height yields minSize.
func ComputePageSize(heightPx, rowHeightPx, minSize, maxSize int) int {
	if rowHeightPx <= 0 {
		return minSize
	}
	rows := heightPx / rowHeightPx
	if rows < minSize {
		return minSize
	}
	if rows > maxSize {
		return maxSize
	}
	return rows
}

// Pagination tracks a 1-indexed page over a list of items.
type Pagination struct {
	PageSize    int
	CurrentPage int
	TotalItems  int
}

// NewPagination starts on the first page. A non-positive page size is bumped
// to one.
func NewPagination(totalItems, pageSize int) *Pagination {
	if pageSize < 1 {
		pageSize = 1
	}
	return &Pagination{PageSize: pageSize, CurrentPage: 1, TotalItems: totalItems}
}

// TotalPages is never below one, even for an empty list.
func (p *Pagination) TotalPages() int {
	pages := (p.TotalItems + p.PageSize - 1) / p.PageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// Bounds returns the half open index range for the current page, clamped to
// the item count.
func (p *Pagination) Bounds() (start, end int) {
	start = (p.CurrentPage - 1) * p.PageSize
	if start > p.TotalItems {
		start = p.TotalItems
	}
	end = start + p.PageSize
	if end > p.TotalItems {
		end = p.TotalItems
	}
	return start, end
}

// Next advances one page, stopping at the last.
func (p *Pagination) Next() {
	if p.CurrentPage < p.TotalPages() {
		p.CurrentPage++
	}
}

// Prev moves back one page, stopping at the first.
func (p *Pagination) Prev() {
	if p.CurrentPage > 1 {
		p.CurrentPage--
	}
}

// GoTo jumps to a page, clamped to the valid range.
func (p *Pagination) GoTo(page int) {
	if page < 1 {
		page = 1
	}
	if pages := p.TotalPages(); page > pages {
		page = pages
	}
	p.CurrentPage = page
}

// Reset returns to the first page. Call it whenever the filter selection or
// the page size changes.
func (p *Pagination) Reset() {
	p.CurrentPage = 1
}

// SetTotalItems updates the item count and clamps the current page so it
// never points past the end.
func (p *Pagination) SetTotalItems(total int) {
	p.TotalItems = total
	if pages := p.TotalPages(); p.CurrentPage > pages {
		p.CurrentPage = pages
	}
}

// SetPageSize updates the page size and resets to the first page when it
// actually changed.
func (p *Pagination) SetPageSize(size int) {
	if size < 1 {
		size = 1
	}
	if size == p.PageSize {
		return
	}
	p.PageSize = size
	p.CurrentPage = 1
}

// Page slices the current page out of items using the pagination bounds.
func Page[T any](items []T, p *Pagination) []T {
	start, end := p.Bounds()
	return items[start:end]
}

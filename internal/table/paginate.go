package table

// PageCount returns the number of pages for n rows. An empty set has one
// empty page.
func PageCount(n, pageSize int) int {
	if pageSize < 1 {
		pageSize = DefaultRowsPerPage
	}
	pages := (n + pageSize - 1) / pageSize
	if pages < 1 {
		pages = 1
	}
	return pages
}

// ClampPage forces pageIndex into [0, PageCount(n, pageSize)).
func ClampPage(pageIndex, n, pageSize int) int {
	if pageIndex < 0 {
		return 0
	}
	if last := PageCount(n, pageSize) - 1; pageIndex > last {
		return last
	}
	return pageIndex
}

// Paginate returns page pageIndex of records. The index is clamped, so the
// result is always a valid page of the input.
func Paginate(records []Record, pageIndex, pageSize int) []Record {
	if pageSize < 1 {
		pageSize = DefaultRowsPerPage
	}
	pageIndex = ClampPage(pageIndex, len(records), pageSize)
	start := pageIndex * pageSize
	if start >= len(records) {
		return []Record{}
	}
	end := min(start+pageSize, len(records))
	return records[start:end:end]
}

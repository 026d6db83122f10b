package record

// Pager moves through the pages of a record, keeping the current page within [1, NumPages]
type Pager struct {
	numPages int
	page     int
}

func NewPager(numPages, page int) Pager {
	p := Pager{numPages: max(numPages, 1)}
	return p.Set(page)
}

func (p Pager) Page() int {
	return p.page
}

func (p Pager) NumPages() int {
	return p.numPages
}

// Set moves to page, clamped to the existing ones
func (p Pager) Set(page int) Pager {
	p.page = min(max(page, 1), p.numPages)
	return p
}

func (p Pager) First() Pager {
	return p.Set(1)
}

func (p Pager) Previous() Pager {
	return p.Set(p.page - 1)
}

func (p Pager) Next() Pager {
	return p.Set(p.page + 1)
}

func (p Pager) Last() Pager {
	return p.Set(p.numPages)
}

func (p Pager) HasPrevious() bool {
	return p.page > 1
}

func (p Pager) HasNext() bool {
	return p.page < p.numPages
}

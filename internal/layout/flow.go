package layout

// row is one indivisible horizontal strip of a block. Element rects are relative to the
// row: X from the column's left edge, Y from the row's top.
type row struct {
	height   float64
	elements []Element
}

// block is a run of rows. An atomic block moves whole to the next page when it does not
// fit; other blocks break between rows.
type block struct {
	rows   []row
	atomic bool
}

func (b block) height() float64 {
	h := 0.0
	for _, r := range b.rows {
		h += r.height
	}
	return h
}

// pageSet holds the pages being built and decorates every page when it is created.
type pageSet struct {
	pages    []Page
	decorate func(p *Page)
}

// ensure makes sure at least n pages exist.
func (ps *pageSet) ensure(n int) {
	for len(ps.pages) < n {
		p := Page{Number: len(ps.pages) + 1}
		if ps.decorate != nil {
			ps.decorate(&p)
		}
		ps.pages = append(ps.pages, p)
	}
}

func (ps *pageSet) add(page int, el Element) {
	ps.ensure(page + 1)
	ps.pages[page].Elements = append(ps.pages[page].Elements, el)
}

// column flows blocks top to bottom across pages. firstTop applies to the first page only,
// so a header band can push the first page's content down.
type column struct {
	set      *pageSet
	x        float64
	width    float64
	firstTop float64
	top      float64
	bottom   float64

	page int
	y    float64
}

func newColumn(set *pageSet, x, width, firstTop, top, bottom float64) *column {
	set.ensure(1)
	return &column{set: set, x: x, width: width, firstTop: firstTop, top: top, bottom: bottom, y: firstTop}
}

func (c *column) remaining() float64 {
	return c.bottom - c.y
}

func (c *column) nextPage() {
	c.page++
	c.set.ensure(c.page + 1)
	c.y = c.top
}

// skip adds vertical space. Space never carries over to a new page.
func (c *column) skip(h float64) {
	if h >= c.remaining() {
		c.nextPage()
		return
	}
	c.y += h
}

// place emits b, starting a new page first when an atomic block does not fit. An atomic
// block taller than a whole page is split between rows like any other block.
func (c *column) place(b block) {
	if len(b.rows) == 0 {
		return
	}
	h := b.height()
	if b.atomic && h > c.remaining() && h <= c.bottom-c.top && c.y > c.pageTop() {
		c.nextPage()
	}
	for _, r := range b.rows {
		if r.height > c.remaining() && c.y > c.pageTop() {
			c.nextPage()
		}
		c.emit(r)
	}
}

func (c *column) pageTop() float64 {
	if c.page == 0 {
		return c.firstTop
	}
	return c.top
}

func (c *column) emit(r row) {
	for _, el := range r.elements {
		el.Rect.X += c.x
		el.Rect.Y += c.y
		c.set.add(c.page, el)
	}
	c.y += r.height
}

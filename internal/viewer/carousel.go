package viewer

// Carousel is the inline pager on a room card or property hero.
type Carousel struct {
	images []string
	index  int
}

// NewCarousel starts on the first image.
func NewCarousel(images []string) *Carousel {
	return &Carousel{images: append([]string(nil), images...)}
}

// Pageable reports whether paging controls should be shown.
func (c *Carousel) Pageable() bool { return len(c.images) > 1 }

// Next advances with wrap-around; single-image carousels do not move.
func (c *Carousel) Next() {
	if c.Pageable() {
		c.index = (c.index + 1) % len(c.images)
	}
}

// Prev retreats with wrap-around.
func (c *Carousel) Prev() {
	if c.Pageable() {
		c.index = (c.index - 1 + len(c.images)) % len(c.images)
	}
}

// Seek jumps to index, clamped into range.
func (c *Carousel) Seek(index int) { c.index = clamp(index, len(c.images)) }

// Index is the current position.
func (c *Carousel) Index() int { return c.index }

// Current returns the visible image or "".
func (c *Carousel) Current() string {
	if len(c.images) == 0 {
		return ""
	}
	return c.images[c.index]
}

// Expand opens lb on the carousel's images at the visible position.
func (c *Carousel) Expand(lb *Lightbox) {
	lb.Open(c.images, c.index)
}

// Package carousel rotates through the active promotional banners.
package carousel

import (
	"errors"

	"github.com/Skotchmaster/showcase/internal/models"
)

var ErrOutOfRange = errors.New("banner index out of range")

// Carousel holds a snapshot of the active banners and the current index. It is not safe for
// concurrent use.
type Carousel struct {
	banners []models.Banner
	index   int
}

// New snapshots the active banners, keeping their order.
func New(banners []models.Banner) *Carousel {
	active := make([]models.Banner, 0, len(banners))
	for _, b := range banners {
		if b.IsActive {
			active = append(active, b)
		}
	}
	return &Carousel{banners: active}
}

func (c *Carousel) Len() int    { return len(c.banners) }
func (c *Carousel) Index() int  { return c.index }
func (c *Carousel) Empty() bool { return len(c.banners) == 0 }

// ShowControls reports whether prev/next and the dot indicators are shown.
func (c *Carousel) ShowControls() bool { return len(c.banners) > 1 }

func (c *Carousel) Banners() []models.Banner {
	return append([]models.Banner(nil), c.banners...)
}

func (c *Carousel) Current() (models.Banner, bool) {
	if c.Empty() {
		return models.Banner{}, false
	}
	return c.banners[c.index], true
}

func (c *Carousel) Next() {
	if n := len(c.banners); n > 0 {
		c.index = (c.index + 1) % n
	}
}

func (c *Carousel) Prev() {
	if n := len(c.banners); n > 0 {
		c.index = (c.index - 1 + n) % n
	}
}

// Goto jumps to i. An out-of-range i leaves the index unchanged.
func (c *Carousel) Goto(i int) error {
	if i < 0 || i >= len(c.banners) {
		return ErrOutOfRange
	}
	c.index = i
	return nil
}

// Click returns the current banner's affiliate link. The index does not move.
func (c *Carousel) Click() (string, bool) {
	b, ok := c.Current()
	if !ok {
		return "", false
	}
	return b.AffiliateURL, true
}

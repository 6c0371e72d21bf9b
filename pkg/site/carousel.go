package site

import (
	"fmt"
	"path"
)

// Slide is one carousel item with its neighbours resolved.
type Slide struct {
	ID    string `json:"id"`
	Index int    `json:"index"`
	Image string `json:"image"`
	Alt   string `json:"alt"`
	Prev  string `json:"prev,omitempty"`
	Next  string `json:"next,omitempty"`
}

// Carousel is the resolved slide list.
type Carousel struct {
	Heading string  `json:"heading"`
	Slides  []Slide `json:"slides"`
	Loop    bool    `json:"loop"`
}

// BuildCarousel cycles cfg.Images across cfg.Count slides. With Loop set the
// first slide's previous is the last slide and vice versa; otherwise the
// ends have no neighbour.
func BuildCarousel(cfg CarouselConfig) Carousel {
	c := Carousel{Heading: cfg.Heading, Loop: cfg.Loop}
	if cfg.Count <= 0 || len(cfg.Images) == 0 {
		return c
	}

	c.Slides = make([]Slide, cfg.Count)
	for i := range c.Slides {
		c.Slides[i] = Slide{
			ID:    slideID(i),
			Index: i,
			Image: joinURL(cfg.BaseURL, cfg.Images[i%len(cfg.Images)]),
			Alt:   cfg.Alt,
		}
	}
	for i := range c.Slides {
		if prev, ok := c.Step(i, -1); ok {
			c.Slides[i].Prev = slideID(prev)
		}
		if next, ok := c.Step(i, 1); ok {
			c.Slides[i].Next = slideID(next)
		}
	}
	return c
}

// Step moves delta slides from i, wrapping when Loop is set. It reports false
// when the move leaves the list.
func (c Carousel) Step(i, delta int) (int, bool) {
	n := len(c.Slides)
	if n == 0 {
		return 0, false
	}
	target := i + delta
	if c.Loop {
		return ((target % n) + n) % n, true
	}
	if target < 0 || target >= n {
		return i, false
	}
	return target, true
}

func slideID(i int) string {
	return fmt.Sprintf("slide-%d", i+1)
}

func joinURL(base, name string) string {
	if base == "" {
		return name
	}
	return path.Join(base, name)
}

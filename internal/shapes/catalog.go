package shapes

import (
	"errors"
	"fmt"
)

var ErrNoSource = errors.New("catalog needs a random source")

// Source is the random provider used to draw shapes. *rand.Rand satisfies it;
// tests pass a scripted source to get a known sequence.
type Source interface {
	Intn(n int) int
}

// Catalog is a fixed list of shape templates plus the random source used to
// draw from it.
type Catalog struct {
	templates []Shape
	src       Source
}

// DefaultTemplates returns the standard eight pieces.
func DefaultTemplates() []Shape {
	return []Shape{
		MustShape("single", "X"),
		MustShape("domino-h", "XX"),
		MustShape("domino-v", "X\nX"),
		MustShape("square", "XX\nXX"),
		MustShape("corner", "X.\nXX"),
		MustShape("ell", "X.\nX.\nXX"),
		MustShape("line-h", "XXX"),
		MustShape("line-v", "X\nX\nX"),
	}
}

// NewCatalog creates a catalog over templates, or over DefaultTemplates when
// none are given.
func NewCatalog(src Source, templates ...Shape) (*Catalog, error) {
	if src == nil {
		return nil, ErrNoSource
	}
	if len(templates) == 0 {
		templates = DefaultTemplates()
	}
	for i, t := range templates {
		if t.Rows() == 0 {
			return nil, fmt.Errorf("template %d: %w", i, ErrEmptyShape)
		}
	}

	c := &Catalog{src: src, templates: make([]Shape, len(templates))}
	copy(c.templates, templates)
	return c, nil
}

func (c *Catalog) Len() int { return len(c.templates) }

// Templates returns a copy of the template list.
func (c *Catalog) Templates() []Shape {
	out := make([]Shape, len(c.templates))
	copy(out, c.templates)
	return out
}

// DrawRandomShape picks one template uniformly at random.
func (c *Catalog) DrawRandomShape() Shape {
	return c.templates[c.src.Intn(len(c.templates))]
}

// DrawQueue draws k shapes independently; repeats are allowed.
func (c *Catalog) DrawQueue(k int) []Shape {
	if k <= 0 {
		panic(fmt.Sprintf("shapes: DrawQueue called with non-positive length %d", k))
	}
	q := make([]Shape, k)
	for i := range q {
		q[i] = c.DrawRandomShape()
	}
	return q
}

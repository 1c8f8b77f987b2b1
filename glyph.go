package deckicon

import (
	"math"
	"sort"
	"sync"

	"golang.org/x/image/math/f64"
)

// GlyphViewBox is the side length of the square coordinate space glyph
// outlines are defined in.
const GlyphViewBox = 24

// FallbackGlyph is rendered in place of any unknown glyph name.
const FallbackGlyph = "IconQuestionMark"

// PathOp is the kind of a path segment.
type PathOp uint8

const (
	MoveTo PathOp = iota
	LineTo
	QuadTo
	CubeTo
	ClosePath
)

// Segment is one path command. Only the first n points are used,
// n being 1 for MoveTo and LineTo, 2 for QuadTo and 3 for CubeTo.
type Segment struct {
	Op  PathOp
	Pts [3]f64.Vec2
}

// Glyph is a filled outline in the GlyphViewBox coordinate space.
// Subpaths are filled with the nonzero winding rule, holes are wound
// in the opposite direction of their enclosing contour.
type Glyph struct {
	Name string
	Path []Segment
}

// Transform returns the glyph path with every point mapped through m.
func (g Glyph) Transform(m f64.Aff3) []Segment {
	out := make([]Segment, len(g.Path))
	for i, s := range g.Path {
		out[i].Op = s.Op
		for k := 0; k < s.points(); k++ {
			out[i].Pts[k] = apply(m, s.Pts[k])
		}
	}
	return out
}

func (s Segment) points() int {
	switch s.Op {
	case MoveTo, LineTo:
		return 1
	case QuadTo:
		return 2
	case CubeTo:
		return 3
	}
	return 0
}

// pathBuilder accumulates glyph outlines. It keeps track of the current
// point the way SVG path data does.
type pathBuilder struct {
	segs       []Segment
	cur, start f64.Vec2
	open       bool
}

func (b *pathBuilder) add(op PathOp, pts ...float64) *pathBuilder {
	s := Segment{Op: op}
	for i := 0; i+1 < len(pts); i += 2 {
		s.Pts[i/2] = f64.Vec2{pts[i], pts[i+1]}
	}
	switch op {
	case MoveTo:
		b.start, b.cur = s.Pts[0], s.Pts[0]
		b.open = false
	case ClosePath:
		b.cur = b.start
		b.open = false
	default:
		if !b.open && len(b.segs) > 0 && b.segs[len(b.segs)-1].Op == ClosePath {
			// Drawing after a close starts a new subpath at the same point.
			b.segs = append(b.segs, Segment{Op: MoveTo, Pts: [3]f64.Vec2{b.start}})
		}
		b.cur = s.Pts[s.points()-1]
		b.open = true
	}
	b.segs = append(b.segs, s)
	return b
}

func (b *pathBuilder) moveTo(x, y float64) *pathBuilder { return b.add(MoveTo, x, y) }
func (b *pathBuilder) lineTo(x, y float64) *pathBuilder { return b.add(LineTo, x, y) }
func (b *pathBuilder) close() *pathBuilder              { return b.add(ClosePath) }

func (b *pathBuilder) quadTo(cx, cy, x, y float64) *pathBuilder {
	return b.add(QuadTo, cx, cy, x, y)
}

func (b *pathBuilder) cubeTo(c1x, c1y, c2x, c2y, x, y float64) *pathBuilder {
	return b.add(CubeTo, c1x, c1y, c2x, c2y, x, y)
}

// arcTo adds an elliptical arc from the current point to x, y using the
// SVG endpoint parameterization. The arc is approximated by cubic curves
// spanning at most a quarter turn each.
func (b *pathBuilder) arcTo(rx, ry, phi float64, large, sweep bool, x, y float64) *pathBuilder {
	p0, p1 := b.cur, f64.Vec2{x, y}
	if p0 == p1 {
		return b
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 {
		return b.lineTo(x, y)
	}

	sinPhi, cosPhi := math.Sincos(phi * math.Pi / 180)
	dx, dy := (p0[0]-p1[0])/2, (p0[1]-p1[1])/2
	x1 := cosPhi*dx + sinPhi*dy
	y1 := -sinPhi*dx + cosPhi*dy

	if l := x1*x1/(rx*rx) + y1*y1/(ry*ry); l > 1 {
		rx *= math.Sqrt(l)
		ry *= math.Sqrt(l)
	}

	num := rx*rx*ry*ry - rx*rx*y1*y1 - ry*ry*x1*x1
	den := rx*rx*y1*y1 + ry*ry*x1*x1
	coef := math.Sqrt(math.Max(0, num/den))
	if large == sweep {
		coef = -coef
	}
	cx1 := coef * rx * y1 / ry
	cy1 := -coef * ry * x1 / rx
	cx := cosPhi*cx1 - sinPhi*cy1 + (p0[0]+p1[0])/2
	cy := sinPhi*cx1 + cosPhi*cy1 + (p0[1]+p1[1])/2

	ux, uy := (x1-cx1)/rx, (y1-cy1)/ry
	vx, vy := (-x1-cx1)/rx, (-y1-cy1)/ry
	theta := math.Atan2(uy, ux)
	delta := math.Atan2(ux*vy-uy*vx, ux*vx+uy*vy)
	if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	} else if sweep && delta < 0 {
		delta += 2 * math.Pi
	}

	point := func(t float64) (p, d f64.Vec2) {
		sin, cos := math.Sincos(t)
		p = f64.Vec2{
			cx + rx*cos*cosPhi - ry*sin*sinPhi,
			cy + rx*cos*sinPhi + ry*sin*cosPhi,
		}
		d = f64.Vec2{
			-rx*sin*cosPhi - ry*cos*sinPhi,
			-rx*sin*sinPhi + ry*cos*cosPhi,
		}
		return p, d
	}

	n := int(math.Ceil(math.Abs(delta) / (math.Pi / 2)))
	step := delta / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4)
	for i := 0; i < n; i++ {
		e1, d1 := point(theta + float64(i)*step)
		e2, d2 := point(theta + float64(i+1)*step)
		if i == n-1 {
			e2 = p1
		}
		b.cubeTo(
			e1[0]+k*d1[0], e1[1]+k*d1[1],
			e2[0]-k*d2[0], e2[1]-k*d2[1],
			e2[0], e2[1],
		)
	}
	return b
}

// poly adds a closed polygon given as x, y pairs.
func (b *pathBuilder) poly(xy ...float64) *pathBuilder {
	return b.polyline(true, xy...)
}

func (b *pathBuilder) polyline(closed bool, xy ...float64) *pathBuilder {
	if len(xy) < 2 {
		return b
	}
	b.moveTo(xy[0], xy[1])
	for i := 2; i+1 < len(xy); i += 2 {
		b.lineTo(xy[i], xy[i+1])
	}
	if closed {
		b.close()
	}
	return b
}

// rect adds an axis aligned rectangle, clockwise unless reverse is set.
func (b *pathBuilder) rect(x, y, w, h float64, reverse bool) *pathBuilder {
	if reverse {
		return b.poly(x, y, x, y+h, x+w, y+h, x+w, y)
	}
	return b.poly(x, y, x+w, y, x+w, y+h, x, y+h)
}

// roundRect adds a clockwise rectangle with elliptical corners.
func (b *pathBuilder) roundRect(x, y, w, h, rx, ry float64) *pathBuilder {
	rx, ry = math.Min(rx, w/2), math.Min(ry, h/2)
	if rx <= 0 || ry <= 0 {
		return b.rect(x, y, w, h, false)
	}
	b.moveTo(x+rx, y)
	b.lineTo(x+w-rx, y)
	b.arcTo(rx, ry, 0, false, true, x+w, y+ry)
	b.lineTo(x+w, y+h-ry)
	b.arcTo(rx, ry, 0, false, true, x+w-rx, y+h)
	b.lineTo(x+rx, y+h)
	b.arcTo(rx, ry, 0, false, true, x, y+h-ry)
	b.lineTo(x, y+ry)
	b.arcTo(rx, ry, 0, false, true, x+rx, y)
	return b.close()
}

// circle approximates a circle with four cubic arcs, clockwise unless
// reverse is set.
func (b *pathBuilder) circle(cx, cy, r float64, reverse bool) *pathBuilder {
	return b.ellipse(cx, cy, r, r, reverse)
}

func (b *pathBuilder) ellipse(cx, cy, rx, ry float64, reverse bool) *pathBuilder {
	kx, ky := rx*0.5522847498, ry*0.5522847498
	b.moveTo(cx+rx, cy)
	if reverse {
		b.cubeTo(cx+rx, cy-ky, cx+kx, cy-ry, cx, cy-ry)
		b.cubeTo(cx-kx, cy-ry, cx-rx, cy-ky, cx-rx, cy)
		b.cubeTo(cx-rx, cy+ky, cx-kx, cy+ry, cx, cy+ry)
		b.cubeTo(cx+kx, cy+ry, cx+rx, cy+ky, cx+rx, cy)
		return b.close()
	}
	b.cubeTo(cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry)
	b.cubeTo(cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy)
	b.cubeTo(cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry)
	b.cubeTo(cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy)
	return b.close()
}

func (b *pathBuilder) glyph(name string) Glyph {
	return Glyph{Name: name, Path: b.segs}
}

// Registry maps stable glyph names to their outlines. Names missing from
// the registry resolve to the fallback glyph.
type Registry struct {
	mu       sync.RWMutex
	glyphs   map[string]Glyph
	fallback Glyph
}

// NewRegistry creates a registry holding the given glyphs. The fallback
// glyph is registered as well.
func NewRegistry(fallback Glyph, glyphs ...Glyph) *Registry {
	r := &Registry{
		glyphs:   make(map[string]Glyph, len(glyphs)+1),
		fallback: fallback,
	}
	r.Register(fallback)
	for _, g := range glyphs {
		r.Register(g)
	}
	return r
}

// Register adds or replaces a glyph. Glyphs without a name are ignored.
func (r *Registry) Register(g Glyph) {
	if g.Name == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.glyphs[g.Name] = g
}

// Lookup returns the glyph registered under name. If there is none
// the fallback glyph is returned and ok is false.
func (r *Registry) Lookup(name string) (g Glyph, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if g, ok = r.glyphs[name]; ok {
		return g, true
	}
	return r.fallback, false
}

// Names returns the registered glyph names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.glyphs))
	for name := range r.glyphs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package deckicon

import (
	"math"

	"golang.org/x/image/math/f64"
)

// flattenStep is the approximate length, in glyph units, of the line
// segments curves are split into before stroking.
const flattenStep = 1.0

// strokePath returns the filled outline of path stroked with the given
// width, using round caps and joins. The outline is the union of a band
// per line segment and a disk per vertex, all wound the same way, so it
// fills correctly with the nonzero rule.
func strokePath(path []Segment, width float64) []Segment {
	if width <= 0 {
		return nil
	}
	r := width / 2
	b := new(pathBuilder)
	for _, line := range flatten(path) {
		for i, p := range line {
			if i > 0 && p == line[i-1] {
				continue
			}
			b.circle(p[0], p[1], r, false)
		}
		for i := 0; i+1 < len(line); i++ {
			band(b, line[i], line[i+1], r)
		}
	}
	return b.segs
}

// band adds the rectangle of half width r around the segment p0 p1.
func band(b *pathBuilder, p0, p1 f64.Vec2, r float64) {
	dx, dy := p1[0]-p0[0], p1[1]-p0[1]
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx, ny := -dy/l*r, dx/l*r
	b.poly(
		p0[0]-nx, p0[1]-ny,
		p1[0]-nx, p1[1]-ny,
		p1[0]+nx, p1[1]+ny,
		p0[0]+nx, p0[1]+ny,
	)
}

// flatten converts the subpaths of path into polylines. Closed subpaths
// end with their first point. Subpaths without any drawing command are
// dropped.
func flatten(path []Segment) [][]f64.Vec2 {
	var (
		lines [][]f64.Vec2
		cur   []f64.Vec2
	)
	flush := func() {
		if len(cur) > 1 {
			lines = append(lines, cur)
		}
		cur = nil
	}
	for _, s := range path {
		if s.Op != MoveTo && len(cur) == 0 {
			continue
		}
		switch s.Op {
		case MoveTo:
			flush()
			cur = []f64.Vec2{s.Pts[0]}
		case LineTo:
			cur = append(cur, s.Pts[0])
		case QuadTo:
			p0 := cur[len(cur)-1]
			n := curveSteps(p0, s.Pts[0], s.Pts[1])
			for i := 1; i <= n; i++ {
				t := float64(i) / float64(n)
				u := 1 - t
				cur = append(cur, f64.Vec2{
					u*u*p0[0] + 2*u*t*s.Pts[0][0] + t*t*s.Pts[1][0],
					u*u*p0[1] + 2*u*t*s.Pts[0][1] + t*t*s.Pts[1][1],
				})
			}
		case CubeTo:
			p0 := cur[len(cur)-1]
			n := curveSteps(p0, s.Pts[0], s.Pts[1], s.Pts[2])
			for i := 1; i <= n; i++ {
				t := float64(i) / float64(n)
				u := 1 - t
				a, b, c, d := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
				cur = append(cur, f64.Vec2{
					a*p0[0] + b*s.Pts[0][0] + c*s.Pts[1][0] + d*s.Pts[2][0],
					a*p0[1] + b*s.Pts[0][1] + c*s.Pts[1][1] + d*s.Pts[2][1],
				})
			}
		case ClosePath:
			cur = append(cur, cur[0])
			flush()
		}
	}
	flush()
	return lines
}

// curveSteps picks the number of line segments for a curve from the
// length of its control polygon.
func curveSteps(pts ...f64.Vec2) int {
	var l float64
	for i := 1; i < len(pts); i++ {
		l += math.Hypot(pts[i][0]-pts[i-1][0], pts[i][1]-pts[i-1][1])
	}
	return min(max(int(math.Ceil(l/flattenStep)), 2), 32)
}

package deckicon

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"
	"unicode"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/xml"
	"golang.org/x/image/math/f64"
)

// paintStyle holds the inherited SVG presentation attributes that decide
// how a shape contributes to the glyph. Colors are ignored since glyphs
// are tinted when rendered.
type paintStyle struct {
	fill   bool
	stroke bool
	width  float64
	hidden bool
}

func (st paintStyle) set(name, val string) paintStyle {
	switch name {
	case "fill":
		st.fill = val != "none"
	case "stroke":
		st.stroke = val != "none"
	case "stroke-width":
		if v, err := parseNumbers(strings.TrimSuffix(val, "px")); err == nil && len(v) == 1 {
			st.width = v[0]
		}
	case "display", "visibility":
		st.hidden = st.hidden || val == "none" || val == "hidden"
	case "style":
		for _, decl := range strings.Split(val, ";") {
			if k, v, ok := strings.Cut(decl, ":"); ok {
				st = st.set(strings.TrimSpace(k), strings.TrimSpace(v))
			}
		}
	}
	return st
}

type svgElement struct {
	tag   string
	attrs map[string]string
	void  bool
}

// ParseSVG reads an SVG icon and converts its shapes into a glyph outline
// in the GlyphViewBox space. Stroked shapes are outlined with round caps and
// joins, filled shapes are kept as they are. Transforms, gradients and
// text are not supported.
func ParseSVG(name string, r io.Reader) (Glyph, error) {
	l := xml.NewLexer(parse.NewInput(r))

	var (
		b     []Segment
		view  = f64.Aff3{1, 0, 0, 0, 1, 0}
		scale = 1.0
		root  bool
		style = paintStyle{fill: true, width: 1}
		stack []paintStyle
	)
	for {
		tt, _ := l.Next()
		switch tt {
		case xml.ErrorToken:
			if err := l.Err(); err != io.EOF {
				return Glyph{}, fmt.Errorf("%w: %s: %v", ErrInvalidGlyph, name, err)
			}
			if len(b) == 0 {
				return Glyph{}, fmt.Errorf("%w: %s: no shapes", ErrInvalidGlyph, name)
			}
			return Glyph{Name: name, Path: b}, nil

		case xml.StartTagPIToken:
			if _, err := readElement(l, ""); err != nil {
				return Glyph{}, fmt.Errorf("%w: %s: %v", ErrInvalidGlyph, name, err)
			}

		case xml.StartTagToken:
			el, err := readElement(l, localName(l.Text()))
			if err != nil {
				return Glyph{}, fmt.Errorf("%w: %s: %v", ErrInvalidGlyph, name, err)
			}
			st := style
			for k, v := range el.attrs {
				if k != "style" {
					st = st.set(k, v)
				}
			}
			if v, ok := el.attrs["style"]; ok {
				st = st.set("style", v)
			}

			switch el.tag {
			case "svg":
				if !root {
					root = true
					if view, scale, err = viewBox(el.attrs); err != nil {
						return Glyph{}, fmt.Errorf("%w: %s: %v", ErrInvalidGlyph, name, err)
					}
				}
			case "defs", "clipPath", "mask", "marker", "pattern", "symbol", "title", "desc", "metadata":
				st.hidden = true
			default:
				if st.hidden {
					break
				}
				pb := new(pathBuilder)
				if err := buildShape(pb, el); err != nil {
					return Glyph{}, fmt.Errorf("%w: %s: <%s>: %v", ErrInvalidGlyph, name, el.tag, err)
				}
				if len(pb.segs) == 0 {
					break
				}
				segs := Glyph{Path: pb.segs}.Transform(view)
				if st.fill {
					b = append(b, closeSubpaths(segs)...)
				}
				if st.stroke && st.width > 0 {
					b = append(b, strokePath(segs, st.width*scale)...)
				}
			}
			if !el.void {
				stack = append(stack, style)
				style = st
			}

		case xml.EndTagToken:
			if n := len(stack); n > 0 {
				style = stack[n-1]
				stack = stack[:n-1]
			}
		}
	}
}

// readElement consumes the attributes of the tag just opened.
func readElement(l *xml.Lexer, tag string) (svgElement, error) {
	el := svgElement{tag: tag, attrs: make(map[string]string)}
	for {
		tt, _ := l.Next()
		switch tt {
		case xml.AttributeToken:
			el.attrs[localName(l.Text())] = unquote(string(l.AttrVal()))
		case xml.StartTagCloseToken:
			return el, nil
		case xml.StartTagCloseVoidToken, xml.StartTagClosePIToken:
			el.void = true
			return el, nil
		default:
			if err := l.Err(); err != nil && err != io.EOF {
				return el, err
			}
			return el, fmt.Errorf("unterminated <%s> tag", tag)
		}
	}
}

func localName(b []byte) string {
	s := string(b)
	if i := strings.IndexByte(s, ':'); i >= 0 {
		return s[i+1:]
	}
	return s
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

// viewBox returns the transform mapping the user space of the root element
// into the glyph view box, keeping the aspect ratio and centering the
// content, together with its scale factor.
func viewBox(attrs map[string]string) (f64.Aff3, float64, error) {
	var minX, minY, w, h float64
	if v, ok := attrs["viewBox"]; ok {
		box, err := parseNumbers(v)
		if err != nil {
			return f64.Aff3{}, 0, err
		}
		if len(box) != 4 {
			return f64.Aff3{}, 0, fmt.Errorf("malformed viewBox %q", v)
		}
		minX, minY, w, h = box[0], box[1], box[2], box[3]
	} else {
		var err error
		if w, err = length(attrs, "width"); err != nil {
			return f64.Aff3{}, 0, err
		}
		if h, err = length(attrs, "height"); err != nil {
			return f64.Aff3{}, 0, err
		}
	}
	if w <= 0 || h <= 0 {
		w, h = GlyphViewBox, GlyphViewBox
	}
	s := GlyphViewBox / max(w, h)
	tx := -minX*s + (GlyphViewBox-w*s)/2
	ty := -minY*s + (GlyphViewBox-h*s)/2
	return f64.Aff3{s, 0, tx, 0, s, ty}, s, nil
}

// length reads a single numeric attribute. Missing attributes are zero.
func length(attrs map[string]string, key string) (float64, error) {
	v, ok := attrs[key]
	if !ok {
		return 0, nil
	}
	n, err := parseNumbers(strings.TrimSuffix(strings.TrimSpace(v), "px"))
	if err != nil || len(n) != 1 {
		return 0, fmt.Errorf("malformed %s %q", key, v)
	}
	return n[0], nil
}

// buildShape adds the outline of a basic shape or path element. Unknown
// elements add nothing.
func buildShape(b *pathBuilder, el svgElement) error {
	num := func(keys ...string) ([]float64, error) {
		out := make([]float64, len(keys))
		for i, k := range keys {
			v, err := length(el.attrs, k)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	}

	switch el.tag {
	case "path":
		return parsePathData(b, el.attrs["d"])
	case "rect":
		v, err := num("x", "y", "width", "height", "rx", "ry")
		if err != nil {
			return err
		}
		x, y, w, h, rx, ry := v[0], v[1], v[2], v[3], v[4], v[5]
		if w <= 0 || h <= 0 {
			return nil
		}
		_, hasRx := el.attrs["rx"]
		_, hasRy := el.attrs["ry"]
		switch {
		case hasRx && !hasRy:
			ry = rx
		case hasRy && !hasRx:
			rx = ry
		}
		b.roundRect(x, y, w, h, rx, ry)
	case "circle":
		v, err := num("cx", "cy", "r")
		if err != nil {
			return err
		}
		if v[2] > 0 {
			b.circle(v[0], v[1], v[2], false)
		}
	case "ellipse":
		v, err := num("cx", "cy", "rx", "ry")
		if err != nil {
			return err
		}
		if v[2] > 0 && v[3] > 0 {
			b.ellipse(v[0], v[1], v[2], v[3], false)
		}
	case "line":
		v, err := num("x1", "y1", "x2", "y2")
		if err != nil {
			return err
		}
		b.moveTo(v[0], v[1]).lineTo(v[2], v[3])
	case "polyline", "polygon":
		pts, err := parseNumbers(el.attrs["points"])
		if err != nil {
			return err
		}
		b.polyline(el.tag == "polygon", pts[:len(pts)&^1]...)
	}
	return nil
}

// closeSubpaths closes every open subpath of a filled shape and drops the
// subpaths without any drawing command.
func closeSubpaths(path []Segment) []Segment {
	out := make([]Segment, 0, len(path)+1)
	open := false
	for i, s := range path {
		switch s.Op {
		case MoveTo:
			if open {
				out = append(out, Segment{Op: ClosePath})
				open = false
			}
			if i+1 == len(path) || path[i+1].Op == MoveTo || path[i+1].Op == ClosePath {
				continue
			}
			out = append(out, s)
		case ClosePath:
			if open {
				out = append(out, s)
				open = false
			}
		default:
			out = append(out, s)
			open = true
		}
	}
	if open {
		out = append(out, Segment{Op: ClosePath})
	}
	return out
}

// GlyphName derives a glyph name from an icon file name the way icon
// component libraries do: "player-play.svg" becomes "IconPlayerPlay".
func GlyphName(file string) string {
	base := strings.TrimSuffix(path.Base(file), path.Ext(file))
	var sb strings.Builder
	sb.WriteString("Icon")
	upper := true
	for _, r := range base {
		if r == '-' || r == '_' || r == ' ' || r == '.' {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// LoadFS parses every SVG file of fsys matching pattern and registers it
// under the name derived by GlyphName. It returns the number of glyphs
// registered, stopping at the first file that fails to load.
func (r *Registry) LoadFS(fsys fs.FS, pattern string) (int, error) {
	files, err := fs.Glob(fsys, pattern)
	if err != nil {
		return 0, err
	}
	for i, file := range files {
		g, err := loadGlyph(fsys, file)
		if err != nil {
			return i, err
		}
		r.Register(g)
	}
	return len(files), nil
}

func loadGlyph(fsys fs.FS, file string) (Glyph, error) {
	f, err := fsys.Open(file)
	if err != nil {
		return Glyph{}, err
	}
	defer f.Close()
	return ParseSVG(GlyphName(file), f)
}

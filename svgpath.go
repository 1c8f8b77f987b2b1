package deckicon

import (
	"fmt"

	"github.com/tdewolff/parse/v2/strconv"
	"golang.org/x/image/math/f64"
)

// pathScanner reads the numbers and flags of SVG path data and attribute
// value lists. Numbers may be separated by white space, commas or nothing
// at all when the sign or a second decimal point delimits them.
type pathScanner struct {
	b   []byte
	pos int
}

func (s *pathScanner) skip() {
	for s.pos < len(s.b) {
		switch s.b[s.pos] {
		case ' ', '\t', '\n', '\r', '\f', ',':
			s.pos++
		default:
			return
		}
	}
}

func (s *pathScanner) done() bool {
	s.skip()
	return s.pos >= len(s.b)
}

// number reports whether a number follows.
func (s *pathScanner) number() bool {
	s.skip()
	if s.pos >= len(s.b) {
		return false
	}
	c := s.b[s.pos]
	return c >= '0' && c <= '9' || c == '.' || c == '-' || c == '+'
}

func (s *pathScanner) float() (float64, error) {
	s.skip()
	f, n := strconv.ParseFloat(s.b[s.pos:])
	if n == 0 {
		return 0, fmt.Errorf("%w: expected a number at offset %d", ErrInvalidGlyph, s.pos)
	}
	s.pos += n
	return f, nil
}

func (s *pathScanner) floats(v []float64) error {
	for i := range v {
		f, err := s.float()
		if err != nil {
			return err
		}
		v[i] = f
	}
	return nil
}

// flag reads an arc flag. Flags are single digits and need no separator.
func (s *pathScanner) flag() (bool, error) {
	s.skip()
	if s.pos < len(s.b) {
		switch s.b[s.pos] {
		case '0':
			s.pos++
			return false, nil
		case '1':
			s.pos++
			return true, nil
		}
	}
	return false, fmt.Errorf("%w: expected an arc flag at offset %d", ErrInvalidGlyph, s.pos)
}

// parseNumbers reads a list of numbers such as a viewBox or polygon points.
func parseNumbers(v string) ([]float64, error) {
	s := &pathScanner{b: []byte(v)}
	var out []float64
	for !s.done() {
		f, err := s.float()
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// parsePathData appends the commands of SVG path data to b. Arcs are
// converted to cubic curves and relative commands to absolute ones.
func parsePathData(b *pathBuilder, d string) error {
	s := &pathScanner{b: []byte(d)}

	var (
		cmd  byte
		ctrl f64.Vec2 // last control point, for the smooth curve commands
		prev byte
		v    [7]float64
	)
	for !s.done() {
		explicit := !s.number()
		if explicit {
			cmd = s.b[s.pos]
			s.pos++
		} else if cmd == 0 || cmd == 'Z' || cmd == 'z' {
			return fmt.Errorf("%w: unexpected number at offset %d", ErrInvalidGlyph, s.pos)
		}

		var dx, dy float64
		if cmd >= 'a' && cmd <= 'z' {
			dx, dy = b.cur[0], b.cur[1]
		}

		switch cmd {
		case 'M', 'm':
			if err := s.floats(v[:2]); err != nil {
				return err
			}
			b.moveTo(v[0]+dx, v[1]+dy)
			// Further coordinate pairs are implicit line commands.
			cmd = 'L' + cmd - 'M'
		case 'L', 'l':
			if err := s.floats(v[:2]); err != nil {
				return err
			}
			b.lineTo(v[0]+dx, v[1]+dy)
		case 'H', 'h':
			if err := s.floats(v[:1]); err != nil {
				return err
			}
			b.lineTo(v[0]+dx, b.cur[1])
		case 'V', 'v':
			if err := s.floats(v[:1]); err != nil {
				return err
			}
			b.lineTo(b.cur[0], v[0]+dy)
		case 'C', 'c':
			if err := s.floats(v[:6]); err != nil {
				return err
			}
			ctrl = f64.Vec2{v[2] + dx, v[3] + dy}
			b.cubeTo(v[0]+dx, v[1]+dy, ctrl[0], ctrl[1], v[4]+dx, v[5]+dy)
		case 'S', 's':
			if err := s.floats(v[:4]); err != nil {
				return err
			}
			c1 := b.cur
			if prev == 'C' || prev == 'S' {
				c1 = f64.Vec2{2*b.cur[0] - ctrl[0], 2*b.cur[1] - ctrl[1]}
			}
			ctrl = f64.Vec2{v[0] + dx, v[1] + dy}
			b.cubeTo(c1[0], c1[1], ctrl[0], ctrl[1], v[2]+dx, v[3]+dy)
		case 'Q', 'q':
			if err := s.floats(v[:4]); err != nil {
				return err
			}
			ctrl = f64.Vec2{v[0] + dx, v[1] + dy}
			b.quadTo(ctrl[0], ctrl[1], v[2]+dx, v[3]+dy)
		case 'T', 't':
			if err := s.floats(v[:2]); err != nil {
				return err
			}
			c := b.cur
			if prev == 'Q' || prev == 'T' {
				c = f64.Vec2{2*b.cur[0] - ctrl[0], 2*b.cur[1] - ctrl[1]}
			}
			ctrl = c
			b.quadTo(c[0], c[1], v[0]+dx, v[1]+dy)
		case 'A', 'a':
			if err := s.floats(v[:3]); err != nil {
				return err
			}
			large, err := s.flag()
			if err != nil {
				return err
			}
			sweep, err := s.flag()
			if err != nil {
				return err
			}
			if err := s.floats(v[3:5]); err != nil {
				return err
			}
			b.arcTo(v[0], v[1], v[2], large, sweep, v[3]+dx, v[4]+dy)
		case 'Z', 'z':
			b.close()
		default:
			return fmt.Errorf("%w: unknown path command %q", ErrInvalidGlyph, cmd)
		}
		prev = cmd &^ 0x20 // upper case
	}
	return nil
}

package deckicon

import (
	"context"
	"image"
	"image/color"

	"gioui.org/app"
	"gioui.org/io/key"
	"gioui.org/io/system"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"go.uber.org/zap"
)

const (
	previewTitle   = "Stream Deck Icon"
	previewPadding = 32
)

var defaultWindowColor = color.NRGBA{R: 0x2b, G: 0x2d, B: 0x31, A: 0xff}

// Preview is the live renderer. It shows the composition in a window and
// repaints it from scratch whenever a new state is received through Update.
type Preview struct {
	cfg struct {
		title  string
		size   float32
		window color.NRGBA
	}
	composer *Composer
	exporter *Exporter

	updates chan Composition

	state Composition
	frame Frame
	ops   op.Ops

	// ImageOps are immutable once created, so they are cached per image.
	images map[*image.NRGBA]paint.ImageOp
}

// NewPreview creates the live renderer for the given composition. Pressing S
// in the window exports the current state with the exporter, when there is one.
func NewPreview(c Composition, e *Exporter) *Preview {
	p := &Preview{
		composer: defaultComposer,
		exporter: e,
		updates:  make(chan Composition, 1),
		images:   make(map[*image.NRGBA]paint.ImageOp),
	}
	if e != nil {
		p.composer = e.composer
	}
	p.cfg.title = previewTitle
	p.cfg.size = float32(p.composer.Canvas() + 2*previewPadding)
	p.cfg.window = defaultWindowColor

	p.setState(c)
	return p
}

// Update replaces the displayed composition. Only the latest state is kept
// when updates arrive faster than the window consumes them.
func (p *Preview) Update(c Composition) {
	for {
		select {
		case p.updates <- c:
			return
		default:
		}
		select {
		case <-p.updates:
		default:
		}
	}
}

// Run opens the window and processes its events until it gets closed.
// It has to be called on a separate goroutine while app.Main runs on the
// main one.
func (p *Preview) Run() error {
	w := app.NewWindow(
		app.Title(p.cfg.title),
		app.Size(unit.Dp(p.cfg.size), unit.Dp(p.cfg.size)),
	)

	for {
		select {
		case e := <-w.Events():
			switch e := e.(type) {
			case system.FrameEvent:
				p.draw(e)
			case key.Event:
				if p.handleKey(e) == system.ActionClose {
					w.Perform(system.ActionClose)
				}
			case system.DestroyEvent:
				return e.Err
			}
		case c := <-p.updates:
			p.setState(c)
			w.Invalidate()
		}
	}
}

// handleKey reacts to the preview's shortcuts and returns the window action
// they request, if any.
func (p *Preview) handleKey(e key.Event) system.Action {
	if e.State != key.Press {
		return 0
	}
	switch e.Name {
	case key.NameEscape:
		return system.ActionClose
	case "S":
		p.export()
	}
	return 0
}

// setState resolves the new composition and drops the cached image
// operations no longer referenced by the frame.
func (p *Preview) setState(c Composition) {
	p.state = c
	p.frame = p.composer.Compose(c)

	used := make(map[*image.NRGBA]bool)
	for _, it := range p.frame.Items {
		if it.Image != nil {
			used[it.Image] = true
		}
	}
	if p.frame.Text != nil {
		used[p.frame.Text.Image] = true
	}
	for img := range p.images {
		if !used[img] {
			delete(p.images, img)
		}
	}
}

func (p *Preview) export() {
	if p.exporter == nil {
		return
	}
	c := p.state
	go func() {
		// Failures are logged by the exporter.
		if err := p.exporter.Export(context.Background(), c); err == nil {
			Logger().Info("icon exported", zap.String("file", p.exporter.name))
		}
	}()
}

/*
Package deckicon composes square icons for programmable macro keypads from a
background color, a stack of glyph or image layers and a text label, and
exports them as PNG files.

The package provides a command line interface, supporting flags and TOML
recipes for describing the icon. To check the supported commands type:

	$ deckicon --help

The composition is a plain value. Every editing operation returns a new value,
so the same state can be handed to the live preview and to an export at once:

	package main

	import (
		"context"
		"log"

		"github.com/esimov/deckicon"
	)

	func main() {
		c := deckicon.NewComposition().SetText("MUTE")
		c = c.UpdateLayer(c.ActiveID, deckicon.LayerPatch{
			Icon:  deckicon.Ptr("IconMicrophone"),
			Color: deckicon.Ptr("#f38ba8"),
		})

		e := deckicon.NewExporter(deckicon.WithSink(deckicon.FileSink{Dir: "."}))
		if err := e.Export(context.Background(), c); err != nil {
			log.Fatalf("Error exporting the icon: %v", err)
		}
	}
*/
package deckicon

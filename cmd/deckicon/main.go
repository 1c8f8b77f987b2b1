package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/esimov/deckicon"
	"github.com/esimov/deckicon/utils"
	"go.uber.org/zap"
)

const HelpBanner = `
┌┬┐┌─┐┌─┐┬┌─  ┬┌─┐┌─┐┌┐┌
 ││├┤ │  ├┴┐  ││  │ ││││
─┴┘└─┘└─┘┴ ┴  ┴└─┘└─┘┘└┘

Stream Deck icon composer.
    Version: %s

`

// Version indicates the current build version.
var Version string

var (
	// Flags
	text        = flag.String("text", "", "Label text")
	textColor   = flag.String("text-color", deckicon.DefaultTextColor, "Label color")
	textPos     = flag.String("text-pos", string(deckicon.DefaultTextPosition), "Label position")
	textScale   = flag.Float64("text-scale", 1, "Label scale")
	background  = flag.String("bg", deckicon.DefaultBackground, "Background color")
	icon        = flag.String("icon", deckicon.DefaultGlyph, "Glyph name of the active layer")
	iconColor   = flag.String("icon-color", deckicon.DefaultLayerColor, "Glyph color of the active layer")
	position    = flag.String("pos", string(deckicon.MiddleCenter), "Position of the active layer")
	offsetX     = flag.Float64("x", 0, "Horizontal offset of the active layer")
	offsetY     = flag.Float64("y", 0, "Vertical offset of the active layer")
	scale       = flag.Float64("scale", 1, "Scale of the active layer")
	rotate      = flag.Float64("rotate", 0, "Rotation of the active layer in degrees")
	imagePath   = flag.String("image", "", "PNG or JPEG image shown by the active layer")
	recipePath  = flag.String("recipe", "", "TOML recipe describing the icon")
	destination = flag.String("out", ".", "Destination directory, or - for stdout")
	preview     = flag.Bool("preview", false, "Show the live preview (press S to export, Esc to quit)")
	iconsDir    = flag.String("icons", "", "Directory of additional SVG glyphs")
	list        = flag.Bool("list", false, "List the available glyphs")
	verbose     = flag.Bool("v", false, "Verbose logging")
)

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, HelpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	logger := newLogger(*verbose)
	defer logger.Sync()
	deckicon.SetLogger(logger)

	if *iconsDir != "" {
		n, err := deckicon.Glyphs.LoadFS(os.DirFS(*iconsDir), "*.svg")
		if err != nil {
			log.Fatal(utils.DecorateText(err.Error(), utils.ErrorMessage))
		}
		logger.Debug("glyphs loaded", zap.String("dir", *iconsDir), zap.Int("count", n))
	}

	if *list {
		for _, name := range deckicon.Glyphs.Names() {
			fmt.Println(name)
		}
		return
	}

	c, err := buildComposition()
	if err != nil {
		log.Fatalf(
			utils.DecorateText("Failed to build the icon: %v", utils.ErrorMessage),
			utils.DecorateText(err.Error(), utils.DefaultMessage),
		)
	}

	sink, err := deckicon.NewSink(*destination)
	if err != nil {
		log.Fatal(utils.DecorateText(err.Error(), utils.ErrorMessage))
	}
	exporter := deckicon.NewExporter(deckicon.WithSink(sink))

	if *preview {
		deckicon.ShowPreview(c, exporter, func(code int) {
			logger.Sync()
			os.Exit(code)
		})
		return
	}
	export(exporter, sink, c)
}

// export runs a single export while showing the progress indicator.
func export(exporter *deckicon.Exporter, sink deckicon.Sink, c deckicon.Composition) {
	spinnerText := fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ DECKICON", utils.StatusMessage),
		utils.DecorateText("is rendering the icon...", utils.DefaultMessage))
	spinner := utils.NewSpinner(spinnerText, time.Millisecond*100, true)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	now := time.Now()
	spinner.Start()
	err := exporter.Export(ctx, c)
	if err != nil {
		spinner.StopMsg = fmt.Sprintf("%s %s\n",
			utils.DecorateText("⚡ DECKICON", utils.StatusMessage),
			utils.DecorateText("rendering the icon failed... ✘", utils.ErrorMessage))
	} else {
		spinner.StopMsg = fmt.Sprintf("%s %s\n",
			utils.DecorateText("⚡ DECKICON", utils.StatusMessage),
			utils.DecorateText("is rendering the icon... ✔", utils.DefaultMessage))
	}
	spinner.Stop()
	printStatus(sink, err)

	if err == nil {
		fmt.Fprintf(os.Stderr, "\nExecution time: %s\n",
			utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
	}
}

// buildComposition assembles the composition from the recipe, if any,
// and the flags set on the command line, which take precedence.
func buildComposition() (deckicon.Composition, error) {
	c := deckicon.NewComposition()

	if *recipePath != "" {
		r, err := loadRecipe(*recipePath)
		if err != nil {
			return c, err
		}
		if c, err = r.apply(c, filepath.Dir(*recipePath)); err != nil {
			return c, err
		}
	}

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["text"] {
		c = c.SetText(*text)
	}
	if set["text-color"] {
		c = c.SetTextColor(*textColor)
	}
	if set["text-pos"] {
		c = c.SetTextPosition(deckicon.Anchor(*textPos))
	}
	if set["text-scale"] {
		c = c.SetTextScale(*textScale)
	}
	if set["bg"] {
		c = c.SetBackground(*background)
	}

	var p deckicon.LayerPatch
	if set["icon"] {
		p.Icon = icon
		p.Source = deckicon.Ptr(deckicon.SourceIcon)
	}
	if set["icon-color"] {
		p.Color = iconColor
	}
	if set["pos"] {
		p.Position = deckicon.Ptr(deckicon.Anchor(*position))
	}
	if set["x"] {
		p.OffsetX = offsetX
	}
	if set["y"] {
		p.OffsetY = offsetY
	}
	if set["scale"] {
		p.Scale = scale
	}
	if set["rotate"] {
		p.Rotation = rotate
	}
	c = c.UpdateLayer(c.ActiveID, p)

	if *imagePath != "" {
		data, err := os.ReadFile(*imagePath)
		if err != nil {
			return c, fmt.Errorf("unable to open the image: %w", err)
		}
		if c, err = c.UploadImage(c.ActiveID, data); err != nil {
			return c, err
		}
		c = c.UpdateLayer(c.ActiveID, deckicon.LayerPatch{
			Source: deckicon.Ptr(deckicon.SourceImage),
		})
	}
	return c, nil
}

// newLogger returns a development logger in verbose mode and
// a production logger otherwise.
func newLogger(verbose bool) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// printStatus displays the outcome of the export.
func printStatus(sink deckicon.Sink, err error) {
	if err != nil {
		log.Fatalf(
			utils.DecorateText("\nError exporting the icon: %s", utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("\n\tReason: %v\n", err.Error()), utils.DefaultMessage),
		)
	}
	if fs, ok := sink.(deckicon.FileSink); ok {
		fmt.Fprintf(os.Stderr, "\nThe icon has been saved as: %s %s\n",
			utils.DecorateText(fs.Path(deckicon.ExportFileName), utils.SuccessMessage),
			utils.DefaultColor,
		)
	}
}

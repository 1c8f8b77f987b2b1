package deckicon

import (
	"os"

	"gioui.org/app"
	"go.uber.org/zap"
)

// ShowPreview opens the live renderer for c and blocks until its window is
// closed. It takes over the calling goroutine to run the Gio main loop,
// so it must be called from the main goroutine of the program.
//
// Since app.Main never returns, exit is called with the process status once
// the window is gone. A nil exit means os.Exit.
func ShowPreview(c Composition, e *Exporter, exit func(code int)) {
	if exit == nil {
		exit = os.Exit
	}
	p := NewPreview(c, e)
	go func() {
		exit(exitCode(p.Run()))
	}()
	app.Main()
}

func exitCode(err error) int {
	if err != nil {
		Logger().Error("preview closed", zap.Error(err))
		return 1
	}
	return 0
}

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"

	"github.com/mbelkhode/drawingfun/internal/board"
	"github.com/mbelkhode/drawingfun/internal/export"
)

type AppConfig struct {
	Title   string
	Size    fyne.Size
	Palette []color.Color
	Gallery export.Gallery
}

// RunApp opens the drawing window and blocks until it is closed. The color
// selection is offered once at startup.
func RunApp(cfg AppConfig, r *board.Rasterizer) {
	myApp := app.New()
	myWindow := myApp.NewWindow(cfg.Title)
	myWindow.Resize(cfg.Size)

	bw := NewBoardWidget(r)
	toolbar := NewToolbar(myWindow, bw, cfg.Palette, cfg.Gallery)

	content := container.NewBorder(toolbar, bw.StatusBar(), nil, nil, bw)
	myWindow.SetContent(content)

	myApp.Lifecycle().SetOnStarted(func() {
		ShowColorSelection(myWindow, bw, cfg.Palette)
	})
	myWindow.ShowAndRun()
}

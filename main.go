package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"fyne.io/fyne/v2"

	"github.com/mbelkhode/drawingfun/internal/board"
	"github.com/mbelkhode/drawingfun/internal/config"
	"github.com/mbelkhode/drawingfun/internal/export"
	"github.com/mbelkhode/drawingfun/internal/ui"
)

func main() {
	configPath := flag.String("config", "drawingfun.toml", "path to the TOML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	board.SetLogger(logger)

	palette, _ := cfg.Colors()
	gallery, err := export.NewDirGallery(cfg.GalleryDir, cfg.ThumbnailSize)
	if err != nil {
		log.Fatalf("Failed to open gallery: %v", err)
	}
	gallery.Logger = logger

	raster := board.New(
		board.WithAppName(cfg.AppName),
		board.WithJPEGQuality(cfg.JPEGQuality),
	)

	log.Printf("Starting %s, saving drawings to %s", cfg.AppName, cfg.GalleryDir)
	ui.RunApp(ui.AppConfig{
		Title:   cfg.AppName,
		Size:    fyne.NewSize(cfg.Window.Width, cfg.Window.Height),
		Palette: palette,
		Gallery: gallery,
	}, raster)
}

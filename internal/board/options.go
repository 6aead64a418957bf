package board

import (
	"time"

	"github.com/mbelkhode/drawingfun/internal/export"
)

const DefaultAppName = "DrawingFun"

type options struct {
	appName string
	quality int
	now     func() time.Time
}

func defaultOptions() options {
	return options{
		appName: DefaultAppName,
		quality: export.DefaultQuality,
		now:     time.Now,
	}
}

// Option configures a Rasterizer.
type Option func(*options)

// WithAppName sets the prefix of exported file names.
func WithAppName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.appName = name
		}
	}
}

// WithJPEGQuality sets the export quality, 1-100.
func WithJPEGQuality(q int) Option {
	return func(o *options) {
		o.quality = q
	}
}

// WithClock replaces the wall clock used to name exports.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

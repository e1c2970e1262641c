package ui

import (
	"image"
	"image/color"
	"time"

	"github.com/charmbracelet/log"

	"github.com/kyaoi/artex/internal/canvas"
	"github.com/kyaoi/artex/internal/listing"
	"github.com/kyaoi/artex/internal/preview"
)

// State contains the data required to bootstrap the Bubble Tea model.
type State struct {
	Loader          *listing.Loader
	Entries         []listing.Entry
	Preview         *preview.Preview
	Canvas          *canvas.Canvas
	Background      image.Image
	BackgroundColor color.Color
	MaxLabel        int
	FrameInterval   time.Duration
	Clock           preview.Clock
	Watch           bool
	Logger          *log.Logger
}

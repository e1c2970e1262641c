package app

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/kyaoi/artex/internal/assets"
	"github.com/kyaoi/artex/internal/canvas"
	"github.com/kyaoi/artex/internal/config"
	"github.com/kyaoi/artex/internal/listing"
	"github.com/kyaoi/artex/internal/preview"
	"github.com/kyaoi/artex/internal/ui"
)

// LoadInitialState lists dir, loads every asset named by cfg and prepares a
// preview that already shows the first entry. Any fault here is fatal.
func LoadInitialState(ctx context.Context, cfg *config.Config, dir string) (ui.State, error) {
	logger := LoggerFromContext(ctx)

	info, err := os.Stat(dir)
	if err != nil {
		return ui.State{}, err
	}
	if !info.IsDir() {
		return ui.State{}, fmt.Errorf("%s is not a directory", dir)
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return ui.State{}, err
	}

	loader := listing.NewLoader(absDir)
	entries, err := loader.List()
	if err != nil {
		return ui.State{}, err
	}
	logger.Debug("listed directory", "dir", absDir, "entries", len(entries))

	face, err := assets.LoadFont(cfg.Font.Path, cfg.Font.Size)
	if err != nil {
		return ui.State{}, fmt.Errorf("load font: %w", err)
	}
	rasterizer, err := preview.NewGlyphRasterizer(preview.Style{
		Face:      face,
		Fill:      cfg.TextColor(),
		Outline:   cfg.OutlineColor(),
		Thickness: cfg.Font.Outline,
	})
	if err != nil {
		return ui.State{}, err
	}

	prop, err := loadProp(cfg)
	if err != nil {
		return ui.State{}, err
	}
	var background image.Image
	if cfg.Assets.Background != "" {
		background, err = assets.LoadImage(cfg.Assets.Background)
		if err != nil {
			return ui.State{}, fmt.Errorf("load background: %w", err)
		}
	}

	cv := canvas.New(0, 0)
	prev, err := preview.New(preview.Options{
		Rasterizer: rasterizer,
		Backend:    cv,
		Prop:       prop,
		Duration:   cfg.Duration(),
	})
	if err != nil {
		return ui.State{}, err
	}
	if err := prev.Show(listing.Label(entries[0], cfg.Listing.MaxLabel)); err != nil {
		return ui.State{}, err
	}

	return ui.State{
		Loader:          loader,
		Entries:         entries,
		Preview:         prev,
		Canvas:          cv,
		Background:      background,
		BackgroundColor: cfg.BackgroundColor(),
		MaxLabel:        cfg.Listing.MaxLabel,
		FrameInterval:   cfg.FrameInterval(),
		Logger:          logger,
	}, nil
}

func loadProp(cfg *config.Config) (image.Image, error) {
	if cfg.Assets.Prop == "" {
		return assets.DefaultBook(), nil
	}
	img, err := assets.LoadImage(cfg.Assets.Prop)
	if err != nil {
		return nil, fmt.Errorf("load prop: %w", err)
	}
	return assets.Fit(img, cfg.Assets.PropMax), nil
}

package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hubastard/canopy/engine/core"
)

// fileConfig is the optional canopy.yaml next to the binary.
type fileConfig struct {
	Window struct {
		Title  string `yaml:"title,omitempty"`
		Width  int    `yaml:"width,omitempty"`
		Height int    `yaml:"height,omitempty"`
		VSync  *bool  `yaml:"vsync,omitempty"`
	} `yaml:"window"`
	Font struct {
		Path string  `yaml:"path,omitempty"`
		Size float32 `yaml:"size,omitempty"`
	} `yaml:"font"`
	GraceFrames uint64 `yaml:"grace_frames,omitempty"`
}

// loadConfig reads canopy.yaml if present and fills in defaults.
func loadConfig(path string) (core.Config, error) {
	cfg := core.Config{
		Title:       "Canopy Sandbox",
		Width:       1024,
		Height:      640,
		VSync:       true,
		ClearColor:  [4]float32{0.08, 0.10, 0.12, 1},
		FontPath:    "assets/fonts/default.ttf",
		FontSize:    32,
		GraceFrames: 0,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	if fc.Window.Title != "" {
		cfg.Title = fc.Window.Title
	}
	if fc.Window.Width > 0 {
		cfg.Width = fc.Window.Width
	}
	if fc.Window.Height > 0 {
		cfg.Height = fc.Window.Height
	}
	if fc.Window.VSync != nil {
		cfg.VSync = *fc.Window.VSync
	}
	if fc.Font.Path != "" {
		cfg.FontPath = fc.Font.Path
	}
	if fc.Font.Size > 0 {
		cfg.FontSize = fc.Font.Size
	}
	cfg.GraceFrames = fc.GraceFrames
	return cfg, nil
}

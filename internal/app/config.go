package app

import (
	"errors"
	"fmt"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	TypesPath string // .hcl / .yaml manifests, optional

	LogFormat string
	LogLevel  string

	// Width and Height are the surface size every node renders at.
	Width  int
	Height int
	Seed   float32

	// List prints the registered node types instead of evaluating them.
	List bool
	// Dump names a node type whose assembled source is printed.
	Dump string
}

// Default surface size.
const (
	DefaultWidth  = 1024
	DefaultHeight = 1024
)

func NewConfig(cfg Config) (*Config, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("surface size must be positive, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.List && cfg.Dump != "" {
		return nil, errors.New("list and dump cannot be combined")
	}
	return &cfg, nil
}

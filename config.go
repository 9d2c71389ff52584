package main

import (
	"flag"
	"fmt"
	"io"
	"os"
)

// flagOutput receives usage and parse errors.
var flagOutput io.Writer = os.Stderr

// Config is everything the binary takes from the command line.
type Config struct {
	Scene       string
	InputMode   string
	Debug       bool
	Watch       bool
	LogLevel    string
	BaseMonitor bool
}

func parseConfig(args []string) (Config, error) {
	var cfg Config
	fs := flag.NewFlagSet("shelfsort", flag.ContinueOnError)
	fs.SetOutput(flagOutput)
	fs.StringVar(&cfg.Scene, "scene", "shelf_room", "scene name in levels/ (basename, .json optional) or a path on disk")
	fs.StringVar(&cfg.InputMode, "input", "auto", "pointer input: mouse, touch or auto")
	fs.BoolVar(&cfg.Debug, "debug", false, "draw colliders and the debug HUD")
	fs.BoolVar(&cfg.Watch, "watch", false, "reload prefab tunables when files in prefabs/ change")
	fs.StringVar(&cfg.LogLevel, "log-level", "info", "log level: debug, info, warn or error")
	fs.BoolVar(&cfg.BaseMonitor, "m", false, "use base monitor instead of primary (for multi-monitor setups)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	switch cfg.InputMode {
	case "mouse", "touch", "auto":
	default:
		return Config{}, fmt.Errorf("invalid -input %q: want mouse, touch or auto", cfg.InputMode)
	}
	return cfg, nil
}

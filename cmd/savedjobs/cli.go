package main

import (
	"context"
	"io"
	"log/slog"
)

// Dependencies holds the resources commands run against.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log extraction stats to stderr"`

	Extract ExtractCmd `cmd:"" help:"Print the listings found in a saved page"`
	Import  ImportCmd  `cmd:"" help:"Import the listings of a saved page into a job database"`
}

type ExtractCmd struct {
	File    string `arg:"" help:"Saved HTML page, or - for stdin"`
	JSON    bool   `help:"Print a JSON array instead of a table"`
	Workers int    `short:"w" default:"4" help:"Blocks decoded in parallel"`
}

type ImportCmd struct {
	File    string `arg:"" help:"Saved HTML page, or - for stdin"`
	DB      string `required:"" type:"path" help:"SQLite database file (created if missing)"`
	Config  string `help:"YAML config providing title rules"`
	Workers int    `short:"w" default:"4" help:"Blocks decoded in parallel"`
}

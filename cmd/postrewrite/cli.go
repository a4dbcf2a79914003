package main

import (
	"context"
	"io"

	postrewriter "github.com/dazhiyu0235/post-rewriter"
	"github.com/dazhiyu0235/post-rewriter/rewrite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Store    postrewriter.PostStore
	Rewriter *rewrite.Rewriter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URL         string `env:"WORDPRESS_URL" help:"WordPress site URL"`
	Username    string `env:"WORDPRESS_USERNAME" help:"WordPress username"`
	AppPassword string `env:"WORDPRESS_APP_PASSWORD" help:"WordPress application password"`

	Verbose   bool   `short:"v" help:"Enable debug logging"`
	Render    bool   `help:"Fetch source pages with a headless browser"`
	Markdown  bool   `help:"Render dry-run previews as Markdown"`
	Extractor string `default:"heuristic" enum:"heuristic,readability,trafilatura" help:"Content extraction strategy"`

	Update UpdateCmd `cmd:"" help:"Strip text from a post, keeping its images"`
	Copy   CopyCmd   `cmd:"" help:"Copy extracted article content into a post"`
	Info   InfoCmd   `cmd:"" help:"Show post content statistics"`
	Batch  BatchCmd  `cmd:"" help:"Run update and copy tasks from a batch file"`
}

// UpdateCmd is the "update" subcommand.
type UpdateCmd struct {
	Target string `arg:"" help:"Target post URL"`
	DryRun bool   `help:"Preview without updating the post"`
}

// CopyCmd is the "copy" subcommand.
type CopyCmd struct {
	Target  string `arg:"" help:"Target post URL"`
	Source  string `arg:"" help:"Source article URL"`
	Keyword string `short:"k" help:"Slice source content from this keyword"`
	DryRun  bool   `help:"Preview without updating the post"`
}

// InfoCmd is the "info" subcommand.
type InfoCmd struct {
	Target string `arg:"" help:"Target post URL"`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	File   string `arg:"" type:"existingfile" help:"Batch task file"`
	DryRun bool   `help:"Preview without updating any post"`
}

// Package main is the entry point for the notion-export CLI tool.
//
// notion-export writes a single Notion page to a markdown file, plus
// one markdown table file per child database. Configuration is read
// from CLI flags, environment variables, a .env file next to the output
// directory, and an optional YAML config file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/hirosi1900day/notion-md/internal/config"
	"github.com/hirosi1900day/notion-md/internal/export"
	"github.com/hirosi1900day/notion-md/internal/notion"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "notion-export: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	version := flag.Bool("version", false, "Print version and exit")
	token := flag.String("token", "", "Notion integration token (or set NOTION_TOKEN)")
	pageID := flag.String("page", "", "Page ID to export (or set NOTION_PAGE_ID)")
	outputDir := flag.String("output", "", "Output directory (default ./output)")
	separateFiles := flag.Bool("separate-files", true, "Write each child database to its own file")
	includeInPage := flag.Bool("include-in-page", true, "Append child database tables to the page file")
	configPath := flag.String("config", "", "Path to YAML config file (optional)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	flag.Parse()
	if len(flag.Args()) > 0 {
		return fmt.Errorf("unknown arguments: %v", flag.Args())
	}

	if *version {
		printVersion()
		return nil
	}

	// Resolve config: defaults < YAML file < .env < environment < flags.
	cfg := config.Default()
	if *configPath != "" {
		if err := config.LoadFile(*configPath, cfg); err != nil {
			return err
		}
	}
	dotEnv, err := config.LoadDotEnv(".")
	if err != nil {
		return err
	}
	config.ApplyEnv(dotEnv, cfg)
	config.ApplyEnv(map[string]string{
		"NOTION_TOKEN":   os.Getenv("NOTION_TOKEN"),
		"NOTION_PAGE_ID": os.Getenv("NOTION_PAGE_ID"),
	}, cfg)
	if *token != "" {
		cfg.Token = *token
	}
	if *pageID != "" {
		cfg.PageID = *pageID
	}
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	opts := export.Options{
		SeparateDatabaseFiles: *separateFiles,
		IncludeDBInPage:       *includeInPage,
	}
	if !isFlagSet("separate-files") && cfg.SeparateDatabaseFiles != nil {
		opts.SeparateDatabaseFiles = *cfg.SeparateDatabaseFiles
	}
	if !isFlagSet("include-in-page") && cfg.IncludeDBInPage != nil {
		opts.IncludeDBInPage = *cfg.IncludeDBInPage
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	setupLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	client := notion.NewClient(cfg.Token)
	progress := &export.CLIProgress{Out: os.Stdout, Err: os.Stderr}
	exporter := export.NewExporter(client, cfg.OutputDir, progress)

	fmt.Println("Notion Export")
	fmt.Println("=============")
	fmt.Printf("Page: %s\n\n", cfg.PageID)

	result, err := exporter.ExportPage(ctx, cfg.PageID, opts)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	fmt.Printf("\nPage: %s\n", result.PagePath)
	for _, db := range result.Databases {
		fmt.Printf("Database: %s (%d items)\n", db.Path, db.Rows)
	}

	return nil
}

func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func setupLogger(level string) {
	ll := &slog.LevelVar{}
	switch level {
	case "debug":
		ll.Set(slog.LevelDebug)
	case "warn":
		ll.Set(slog.LevelWarn)
	case "error":
		ll.Set(slog.LevelError)
	default:
		ll.Set(slog.LevelInfo)
	}
	logger := slog.New(tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
		Level:      ll,
		TimeFormat: "15:04:05.000", // Like time.TimeOnly plus milliseconds.
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}))
	slog.SetDefault(logger)
}

func printVersion() {
	version := "dev"
	goVersion := "unknown"
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			version = info.Main.Version
		}
		goVersion = info.GoVersion
	}
	fmt.Printf("notion-export %s\n", version)
	fmt.Printf("  Go version: %s\n", goVersion)
}

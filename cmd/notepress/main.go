package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	slogctx "github.com/veqryn/slog-context"

	"github.com/eringen/notepress"
	"github.com/eringen/notepress/views"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// Credentials and site settings come from the environment (or .env),
	// read once here and passed down explicitly.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: could not load .env: %v\n", err)
	}

	logger := slog.New(slogctx.NewHandler(slog.NewTextHandler(os.Stderr, nil), nil))
	slog.SetDefault(logger)
	ctx := slogctx.NewCtx(context.Background(), logger)

	switch os.Args[1] {
	case "build":
		if err := runBuild(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "serve":
		if err := runServe(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("notepress %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runBuild(ctx context.Context) error {
	cfg := configFromEnv()
	src := notepress.SourceFor(cfg)
	return notepress.Build(ctx, src, cfg, siteViews(), cfg.OutputDir)
}

func runServe() error {
	app := notepress.New(configFromEnv(), siteViews())
	return app.Start()
}

func configFromEnv() notepress.SiteConfig {
	return notepress.SiteConfig{
		Name:             notepress.EnvOr("SITE_NAME", "Blog"),
		URL:              notepress.EnvOr("SITE_URL", "http://localhost:3000"),
		Description:      os.Getenv("SITE_DESCRIPTION"),
		Author:           os.Getenv("SITE_AUTHOR"),
		Addr:             notepress.EnvOr("ADDR", ":3000"),
		OutputDir:        notepress.EnvOr("OUTPUT_DIR", "dist"),
		NotionToken:      notepress.MustEnv("NOTION_TOKEN"),
		NotionDatabaseID: notepress.MustEnv("NOTION_DATABASE_ID"),
	}
}

func siteViews() notepress.ViewFuncs {
	return notepress.ViewFuncs{
		Home:        views.Home,
		Post:        views.PostPage,
		NotFound:    views.NotFound,
		ServerError: views.ServerError,
	}
}

func printUsage() {
	fmt.Println(`notepress - a static blog front end over a Notion database

Usage:
  notepress <command>

Commands:
  build         Pre-render the site into OUTPUT_DIR (default "dist")
  serve         Serve the pre-rendered site, resolving unknown permalinks live
  version       Print the notepress version
  help          Show this help message

Environment:
  NOTION_TOKEN         Notion integration token (required)
  NOTION_DATABASE_ID   Database holding the posts (required)
  SITE_NAME, SITE_URL, SITE_DESCRIPTION, SITE_AUTHOR
  ADDR                 Listen address for serve (default ":3000")
  OUTPUT_DIR           Build output directory (default "dist")`)
}

package notepress

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/a-h/templ"
	slogctx "github.com/veqryn/slog-context"
)

// Build pre-renders the whole site into outDir: the listing page at
// index.html, one permalink page per published post with a slug at
// post/<slug>/index.html, plus sitemap.xml and feed.xml. Any fetch failure
// aborts the build; there is no partial output contract. When two posts
// share a slug the later one in listing order overwrites the earlier file.
func Build(ctx context.Context, src *Source, cfg SiteConfig, views ViewFuncs, outDir string) error {
	cfg.setDefaults()
	log := slogctx.FromCtx(ctx)

	posts, err := src.Listing(ctx)
	if err != nil {
		return fmt.Errorf("notepress: build listing: %w", err)
	}
	log.InfoContext(ctx, "fetched published posts", slog.Int("Posts", len(posts)))

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("notepress: create output dir: %w", err)
	}

	if err := writeComponent(ctx, filepath.Join(outDir, "index.html"), views.Home(posts, cfg)); err != nil {
		return err
	}
	log.InfoContext(ctx, "rendered listing page")

	for _, post := range posts {
		if post.Slug == nil || *post.Slug == "" {
			// Listed, but no reachable permalink.
			continue
		}
		slug := *post.Slug
		dir := filepath.Join(outDir, "post", PathEscape(slug))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("notepress: create permalink dir: %w", err)
		}
		if err := writeComponent(ctx, filepath.Join(dir, "index.html"), views.Post(post, cfg)); err != nil {
			return err
		}
		log.InfoContext(ctx, "rendered permalink page", slog.String("Slug", slug))
	}

	sitemap, err := SitemapXML(cfg, posts)
	if err != nil {
		return fmt.Errorf("notepress: render sitemap: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "sitemap.xml"), sitemap, 0o644); err != nil {
		return fmt.Errorf("notepress: write sitemap: %w", err)
	}

	feed, err := FeedXML(cfg, posts)
	if err != nil {
		return fmt.Errorf("notepress: render feed: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "feed.xml"), feed, 0o644); err != nil {
		return fmt.Errorf("notepress: write feed: %w", err)
	}

	log.InfoContext(ctx, "build complete", slog.String("OutputDir", outDir))
	return nil
}

func writeComponent(ctx context.Context, path string, cmp templ.Component) error {
	var buf bytes.Buffer
	if err := cmp.Render(ctx, &buf); err != nil {
		return fmt.Errorf("notepress: render %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("notepress: write %s: %w", path, err)
	}
	return nil
}

package notepress

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuildWritesAllPages(t *testing.T) {
	f := &fakeStore{
		pagesJSON: []string{
			pageJSON("p1", "Hello", "hello"),
			pageJSON("p2", "No Permalink", ""),
		},
		blocksJSON: map[string]string{
			"p1": `{"object":"block","id":"b1","type":"paragraph","paragraph":{"rich_text":[{"plain_text":"hi"}]}}`,
			"p2": `{"object":"block","id":"b2","type":"paragraph","paragraph":{"rich_text":[{"plain_text":"hidden"}]}}`,
		},
	}
	src := newTestSource(t, f)
	outDir := filepath.Join(t.TempDir(), "dist")
	cfg := SiteConfig{Name: "Test Blog", URL: "http://blog.test"}

	if err := Build(context.Background(), src, cfg, stubViews(), outDir); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	index, err := os.ReadFile(filepath.Join(outDir, "index.html"))
	if err != nil {
		t.Fatalf("listing page not written: %v", err)
	}
	if string(index) != "home posts=2" {
		t.Errorf("listing page = %q, want both posts listed", index)
	}

	post, err := os.ReadFile(filepath.Join(outDir, "post", "hello", "index.html"))
	if err != nil {
		t.Fatalf("permalink page not written: %v", err)
	}
	if string(post) != "post id=p1" {
		t.Errorf("permalink page = %q", post)
	}

	// The slugless post is listed but gets no permalink directory.
	if entries, err := os.ReadDir(filepath.Join(outDir, "post")); err != nil || len(entries) != 1 {
		t.Errorf("expected exactly one permalink dir, got %v (err %v)", entries, err)
	}

	sitemap, err := os.ReadFile(filepath.Join(outDir, "sitemap.xml"))
	if err != nil {
		t.Fatalf("sitemap not written: %v", err)
	}
	if !strings.Contains(string(sitemap), "http://blog.test/post/hello/") {
		t.Errorf("sitemap missing permalink URL:\n%s", sitemap)
	}

	feed, err := os.ReadFile(filepath.Join(outDir, "feed.xml"))
	if err != nil {
		t.Fatalf("feed not written: %v", err)
	}
	if !strings.Contains(string(feed), "<title>Hello</title>") {
		t.Errorf("feed missing post item:\n%s", feed)
	}
}

func TestBuildSlugCollisionLastWins(t *testing.T) {
	f := &fakeStore{
		pagesJSON: []string{
			pageJSON("p1", "First", "dup"),
			pageJSON("p2", "Second", "dup"),
		},
		blocksJSON: map[string]string{"p1": ``, "p2": ``},
	}
	src := newTestSource(t, f)
	outDir := t.TempDir()

	if err := Build(context.Background(), src, SiteConfig{}, stubViews(), outDir); err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	page, err := os.ReadFile(filepath.Join(outDir, "post", "dup", "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	if string(page) != "post id=p2" {
		t.Errorf("page = %q, want the later post to win the collision", page)
	}
}

func TestBuildFailsWhenListingFails(t *testing.T) {
	f := &fakeStore{queryStatus: http.StatusServiceUnavailable}
	src := newTestSource(t, f)
	outDir := filepath.Join(t.TempDir(), "dist")

	if err := Build(context.Background(), src, SiteConfig{}, stubViews(), outDir); err == nil {
		t.Fatal("expected the build to fail")
	}
	if _, err := os.Stat(filepath.Join(outDir, "index.html")); err == nil {
		t.Error("no listing page should be written on a failed build")
	}
}

func TestBuildEscapesSlugInPath(t *testing.T) {
	f := &fakeStore{
		pagesJSON:  []string{pageJSON("p1", "Spacey", "hello world")},
		blocksJSON: map[string]string{"p1": ``},
	}
	src := newTestSource(t, f)
	outDir := t.TempDir()

	if err := Build(context.Background(), src, SiteConfig{}, stubViews(), outDir); err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "post", "hello%20world", "index.html")); err != nil {
		t.Errorf("escaped permalink path not written: %v", err)
	}
}

package notepress

import "time"

// SiteConfig holds all configuration for a notepress site.
type SiteConfig struct {
	Name        string // Site name (default "Blog")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags
	Author      string // Author name for meta tags

	Addr      string // Listen address for serve mode (default ":3000")
	OutputDir string // Directory for pre-rendered pages (default "dist")

	// Credentials for the document store, loaded once at process start
	// and passed down from here; nothing reads the environment later.
	NotionToken      string        // Required: integration token
	NotionDatabaseID string        // Required: database holding the posts
	FetchTimeout     time.Duration // Per-request timeout on the API client (default 30s)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.OutputDir == "" {
		c.OutputDir = "dist"
	}
	if c.FetchTimeout == 0 {
		c.FetchTimeout = 30 * time.Second
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// Package notepress is a static-site blog front end over a Notion database,
// built with Go, Echo, and templ. Posts are authored in Notion; notepress
// queries the database, transforms page blocks into typed content nodes,
// and renders them as HTML: ahead of time into an output directory, and on
// demand for permalinks that were not known at build time.
//
// Users provide their own templ components via the ViewFuncs struct, and
// notepress handles the fetching, transformation, page assembly, and the
// serve-mode handler logic.
package notepress

import (
	"fmt"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/notepress/notion"
)

// ViewFuncs holds user-provided templ components that the framework calls
// when rendering pages. This is the inversion-of-control mechanism that
// lets users own and customize all templates.
type ViewFuncs struct {
	Home        func(posts []Post, cfg SiteConfig) templ.Component
	Post        func(post Post, cfg SiteConfig) templ.Component
	NotFound    func() templ.Component
	ServerError func() templ.Component
}

// App is the serve-mode application. It wires together the post source,
// handlers, middleware, and user-provided templates, serving pre-rendered
// pages from the output directory and falling back to the live document
// store for permalinks that have no pre-rendered file.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Source *Source
	Views  ViewFuncs

	customRoutes []func(*App)
	staticDir    string
}

// New creates a new notepress App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the document-store client, middleware, routes, and
// starts the server.
func (a *App) Start() error {
	// Validate required config
	if a.Config.NotionToken == "" {
		return fmt.Errorf("notepress: NotionToken is required")
	}
	if a.Config.NotionDatabaseID == "" {
		return fmt.Errorf("notepress: NotionDatabaseID is required")
	}

	if a.Source == nil {
		a.Source = SourceFor(a.Config)
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// SourceFor builds the document-store client and Source described by cfg.
// Config defaults are applied first, so a zero FetchTimeout still ends up
// with the documented 30s request timeout. Both serve mode and the static
// build construct their Source through here.
func SourceFor(cfg SiteConfig) *Source {
	cfg.setDefaults()
	client := notion.NewClient(cfg.NotionToken,
		notion.WithHTTPClient(&http.Client{Timeout: cfg.FetchTimeout}))
	return NewSource(client, cfg.NotionDatabaseID)
}

func (a *App) setupRoutes() {
	e := a.Echo

	// User's static assets
	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	// Public routes
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/", a.handleHome)
	e.GET("/post/:slug/", a.handlePost)
}

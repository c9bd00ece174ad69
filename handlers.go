package notepress

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"
)

// handleHome serves the pre-rendered listing page when the build output is
// present, and renders it live from the document store otherwise.
func (a *App) handleHome(c echo.Context) error {
	if page, ok := a.prerendered("index.html"); ok {
		return c.HTMLBlob(http.StatusOK, page)
	}
	posts, err := a.Source.Listing(c.Request().Context())
	if err != nil {
		return err
	}
	return Render(c, a.Views.Home(posts, a.Config))
}

// handlePost serves a permalink page. Slugs known at build time come from
// the pre-rendered output; anything else is resolved at request time
// against the live source, so a post published after the last build is
// still reachable. A slug with no matching post renders the NotFound page.
func (a *App) handlePost(c echo.Context) error {
	slug := c.Param("slug")
	if page, ok := a.prerendered(filepath.Join("post", PathEscape(slug), "index.html")); ok {
		return c.HTMLBlob(http.StatusOK, page)
	}
	post, err := a.Source.Permalink(c.Request().Context(), slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	return Render(c, a.Views.Post(post, a.Config))
}

// prerendered reads a page from the build output directory, reporting
// whether it exists there.
func (a *App) prerendered(rel string) ([]byte, bool) {
	page, err := os.ReadFile(filepath.Join(a.Config.OutputDir, rel))
	if err != nil {
		return nil, false
	}
	return page, true
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Source.Published(c.Request().Context())
	if err != nil {
		return err
	}
	return a.renderSitemap(c, posts)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Source.Listing(c.Request().Context())
	if err != nil {
		return err
	}
	return a.renderRSS(c, posts)
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

func (a *App) handleRobots(c echo.Context) error {
	return c.File(a.staticDir + "/robots.txt")
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}

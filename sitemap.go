package notepress

import (
	"bytes"
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// SitemapXML renders the sitemap for the listing page and every post with a
// permalink. Used both by the static build and the live /sitemap.xml route.
func SitemapXML(cfg SiteConfig, posts []Post) ([]byte, error) {
	urls := []sitemapURL{
		{Loc: BuildURL(cfg.URL)},
	}
	for _, p := range posts {
		if p.Slug == nil || *p.Slug == "" {
			continue
		}
		urls = append(urls, sitemapURL{
			Loc:     BuildURL(cfg.URL, "post", PathEscape(*p.Slug)),
			LastMod: StringOr(p.LastEditedTime, ""),
		})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	if err := xml.NewEncoder(&buf).Encode(sitemap); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (a *App) renderSitemap(c echo.Context, posts []Post) error {
	out, err := SitemapXML(a.Config, posts)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/xml; charset=utf-8", out)
}

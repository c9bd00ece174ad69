package notepress

import (
	"bytes"
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

// FeedXML renders the RSS 2.0 feed over the given posts. Posts without a
// slug have no reachable permalink and are skipped. Used both by the static
// build and the live /feed.xml route.
func FeedXML(cfg SiteConfig, posts []Post) ([]byte, error) {
	items := make([]rssItem, 0, len(posts))
	for _, p := range posts {
		if p.Slug == nil || *p.Slug == "" {
			continue
		}
		pubDate := ""
		if p.CreatedTime != nil {
			if t, err := time.Parse(time.RFC3339, *p.CreatedTime); err == nil {
				pubDate = t.Format(time.RFC1123Z)
			}
		}
		postURL := BuildURL(cfg.URL, "post", PathEscape(*p.Slug))
		items = append(items, rssItem{
			Title:       StringOr(p.Title, ""),
			Link:        postURL,
			Description: Excerpt(p),
			PubDate:     pubDate,
			GUID:        postURL,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       cfg.Name,
			Link:        cfg.URL,
			Description: cfg.Description,
			Items:       items,
		},
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	if err := xml.NewEncoder(&buf).Encode(feed); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (a *App) renderRSS(c echo.Context, posts []Post) error {
	out, err := FeedXML(a.Config, posts)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/rss+xml; charset=utf-8", out)
}

// Package views renders notepress pages as templ components. All markup is
// written by hand into a buffer (no template code generation), so the same
// components serve both the static build and live fallback rendering.
package views

import (
	"bytes"
	"context"
	"html"
	"io"

	"github.com/a-h/templ"

	"github.com/eringen/notepress"
)

const (
	prismThemeURL      = "https://cdnjs.cloudflare.com/ajax/libs/prism/1.29.0/themes/prism-tomorrow.min.css"
	prismScriptURL     = "https://cdnjs.cloudflare.com/ajax/libs/prism/1.29.0/prism.min.js"
	prismAutoloaderURL = "https://cdnjs.cloudflare.com/ajax/libs/prism/1.29.0/plugins/autoloader/prism-autoloader.min.js"
)

// Home renders the listing page: every published post in full, newest first.
func Home(posts []notepress.Post, cfg notepress.SiteConfig) templ.Component {
	meta := notepress.PageMeta{
		Title:       cfg.Name,
		Description: cfg.Description,
		URL:         notepress.BuildURL(cfg.URL),
		OGType:      "website",
	}
	return layout(meta, func(buf *bytes.Buffer) {
		for _, post := range posts {
			writePost(buf, post, true)
		}
	})
}

// PostPage renders a single post's permalink page.
func PostPage(post notepress.Post, cfg notepress.SiteConfig) templ.Component {
	title := notepress.StringOr(post.Title, cfg.Name)
	meta := notepress.PageMeta{
		Title:       title,
		Description: notepress.Excerpt(post),
		OGType:      "article",
	}
	if post.Slug != nil && *post.Slug != "" {
		meta.URL = notepress.BuildURL(cfg.URL, "post", notepress.PathEscape(*post.Slug))
	}
	return layout(meta, func(buf *bytes.Buffer) {
		writePost(buf, post, false)
	})
}

// NotFound renders the 404 page for permalinks with no matching post.
func NotFound() templ.Component {
	meta := notepress.PageMeta{Title: "Not Found"}
	return layout(meta, func(buf *bytes.Buffer) {
		buf.WriteString(`<article class="post"><h1 class="post-title">Not Found</h1>`)
		buf.WriteString(`<p class="post-paragraph">There is no post here. <a href="/">Back to the blog</a>.</p></article>`)
	})
}

// ServerError renders the 500 page.
func ServerError() templ.Component {
	meta := notepress.PageMeta{Title: "Something went wrong"}
	return layout(meta, func(buf *bytes.Buffer) {
		buf.WriteString(`<article class="post"><h1 class="post-title">Something went wrong</h1>`)
		buf.WriteString(`<p class="post-paragraph">Please try again later.</p></article>`)
	})
}

// layout wraps page content in the HTML document shell.
func layout(meta notepress.PageMeta, body func(buf *bytes.Buffer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		buf.WriteString(`<!doctype html><html lang="en"><head>`)
		buf.WriteString(`<meta charset="utf-8"/>`)
		buf.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1"/>`)
		buf.WriteString(`<title>` + html.EscapeString(meta.Title) + `</title>`)
		if meta.Description != "" {
			buf.WriteString(`<meta name="description" content="` + html.EscapeString(meta.Description) + `"/>`)
		}
		buf.WriteString(`<meta property="og:title" content="` + html.EscapeString(meta.Title) + `"/>`)
		if meta.OGType != "" {
			buf.WriteString(`<meta property="og:type" content="` + html.EscapeString(meta.OGType) + `"/>`)
		}
		if meta.URL != "" {
			buf.WriteString(`<link rel="canonical" href="` + html.EscapeString(meta.URL) + `"/>`)
			buf.WriteString(`<meta property="og:url" content="` + html.EscapeString(meta.URL) + `"/>`)
		}
		buf.WriteString(`<link rel="stylesheet" href="` + prismThemeURL + `"/>`)
		buf.WriteString(`<link rel="stylesheet" href="/public/styles.css"/>`)
		buf.WriteString(`</head><body><main class="site-main">`)
		body(&buf)
		buf.WriteString(`</main>`)
		buf.WriteString(`<script src="` + prismScriptURL + `"></script>`)
		buf.WriteString(`<script src="` + prismAutoloaderURL + `"></script>`)
		buf.WriteString(`</body></html>`)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// writePost renders one post: title, timestamps, then its content nodes in
// order. On the listing page the title links to the post's permalink;
// posts without a slug keep a plain title.
func writePost(buf *bytes.Buffer, post notepress.Post, linkTitle bool) {
	buf.WriteString(`<article class="post">`)

	title := html.EscapeString(notepress.StringOr(post.Title, ""))
	if linkTitle && post.Slug != nil && *post.Slug != "" {
		href := "/post/" + notepress.PathEscape(*post.Slug) + "/"
		buf.WriteString(`<h1 class="post-title"><a href="` + href + `">` + title + `</a></h1>`)
	} else {
		buf.WriteString(`<h1 class="post-title">` + title + `</h1>`)
	}

	buf.WriteString(`<div class="post-meta">`)
	if created := notepress.FormatTimestamp(post.CreatedTime); created != "" {
		buf.WriteString(`<div class="post-date">Created: ` + created + `</div>`)
	}
	if edited := notepress.FormatTimestamp(post.LastEditedTime); edited != "" {
		buf.WriteString(`<div class="post-date">Updated: ` + edited + `</div>`)
	}
	buf.WriteString(`</div>`)

	buf.WriteString(`<div class="post-body">`)
	w := nodeWriter{buf: buf}
	for _, node := range post.Contents {
		node.Accept(w)
	}
	buf.WriteString(`</div></article>`)
}

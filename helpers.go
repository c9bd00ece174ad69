package notepress

import (
	"log"
	"net/url"
	"os"
	"path"
	"strings"
	"time"
)

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// PathEscape escapes a string for use in a URL path.
func PathEscape(s string) string {
	return url.PathEscape(s)
}

// StringOr returns *s, or fallback when s is nil.
func StringOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}

// FormatTimestamp renders an ISO 8601 timestamp from the document store as
// "2006-01-02 15:04". Nil or unparseable values come back empty.
func FormatTimestamp(ts *string) string {
	if ts == nil {
		return ""
	}
	t, err := time.Parse(time.RFC3339, *ts)
	if err != nil {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}

// Excerpt returns the text of the post's first paragraph node, for feed
// descriptions and meta tags. Headings, quotes and code contribute nothing.
func Excerpt(post Post) string {
	v := &excerptVisitor{}
	for _, node := range post.Contents {
		node.Accept(v)
		if v.done {
			break
		}
	}
	return v.text
}

type excerptVisitor struct {
	text string
	done bool
}

func (v *excerptVisitor) VisitParagraph(n Paragraph) {
	if n.Text != nil && *n.Text != "" {
		v.text = *n.Text
		v.done = true
	}
}

func (v *excerptVisitor) VisitHeading2(Heading2) {}
func (v *excerptVisitor) VisitHeading3(Heading3) {}
func (v *excerptVisitor) VisitQuote(Quote)       {}
func (v *excerptVisitor) VisitCode(Code)         {}

// EnvOr returns the value of the environment variable key, or fallback if empty.
// This is a convenience function for use in main packages at process start.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("notepress: required environment variable %s is not set", key)
	}
	return v
}

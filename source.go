package notepress

import (
	"context"
	"fmt"

	"github.com/eringen/notepress/notion"
)

// Property names expected on the source database. Name is the page title,
// Slug a rich-text field, Published a checkbox.
const (
	propTitle     = "Name"
	propSlug      = "Slug"
	propPublished = "Published"
)

// Source reads blog posts from one Notion database. It is constructed with
// an explicit client and database ID and holds no other state; methods are
// read-only against the external store and safe for concurrent use.
type Source struct {
	client     *notion.Client
	databaseID string
}

// NewSource creates a Source over the given client and database.
func NewSource(client *notion.Client, databaseID string) *Source {
	return &Source{client: client, databaseID: databaseID}
}

// Published returns every published post, newest first, with empty
// contents. Transport failures propagate as *notion.APIError.
func (s *Source) Published(ctx context.Context) ([]Post, error) {
	return s.query(ctx, notion.DatabaseQuery{
		Filter: &notion.Filter{
			Property: propPublished,
			Checkbox: &notion.CheckboxFilter{Equals: true},
		},
		Sorts: []notion.Sort{
			{Timestamp: "created_time", Direction: notion.SortDescending},
		},
	})
}

// BySlug returns the posts whose Slug property equals slug exactly, with
// empty contents. The comparison is case-sensitive and unnormalized; in
// practice at most one post matches.
func (s *Source) BySlug(ctx context.Context, slug string) ([]Post, error) {
	return s.query(ctx, notion.DatabaseQuery{
		Filter: &notion.Filter{
			Property: propSlug,
			RichText: &notion.TextFilter{Equals: slug},
		},
	})
}

func (s *Source) query(ctx context.Context, q notion.DatabaseQuery) ([]Post, error) {
	pages, err := s.client.QueryDatabase(ctx, s.databaseID, q)
	if err != nil {
		return nil, err
	}
	posts := make([]Post, 0, len(pages))
	for _, page := range pages {
		posts = append(posts, postFromPage(page))
	}
	return posts, nil
}

// Hydrate fetches the child blocks of post and returns a copy with Contents
// filled. Block order from the API is the rendering order; unsupported
// blocks are dropped without a placeholder. The input post is not modified.
func (s *Source) Hydrate(ctx context.Context, post Post) (Post, error) {
	blocks, err := s.client.BlockChildren(ctx, post.ID)
	if err != nil {
		return Post{}, fmt.Errorf("notepress: hydrate post %s: %w", post.ID, err)
	}
	contents := make([]ContentNode, 0, len(blocks))
	for _, b := range blocks {
		if node, ok := NodeForBlock(b); ok {
			contents = append(contents, node)
		}
	}
	post.Contents = contents
	return post, nil
}

// postFromPage extracts post metadata from a page record. A degenerate
// record without a properties map yields a minimal Post (nil metadata,
// empty contents) instead of failing the whole query.
func postFromPage(page notion.Page) Post {
	post := Post{ID: page.ID, Contents: []ContentNode{}}
	if page.Properties == nil {
		return post
	}

	post.CreatedTime = nonEmpty(page.CreatedTime)
	post.LastEditedTime = nonEmpty(page.LastEditedTime)

	if prop, ok := page.Properties[propTitle]; ok && prop.Type == "title" {
		post.Title = firstRunText(prop.Title)
	}
	if prop, ok := page.Properties[propSlug]; ok && prop.Type == "rich_text" {
		post.Slug = firstRunText(prop.RichText)
	}
	return post
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

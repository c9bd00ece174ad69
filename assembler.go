package notepress

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// ErrNotFound is returned when no published post matches a requested slug.
var ErrNotFound = errors.New("notepress: post not found")

// Listing returns every published post, hydrated, in creation-time
// descending order. Hydration requests are all issued at once and the call
// waits for every one of them: a single failure fails the whole listing,
// there is no partial result. Results are recombined by query order, so the
// ordering invariant holds no matter which fetch finishes first.
func (s *Source) Listing(ctx context.Context) ([]Post, error) {
	posts, err := s.Published(ctx)
	if err != nil {
		return nil, err
	}

	// A plain errgroup.Group, not WithContext: issued fetches run to
	// completion even when a sibling fails.
	hydrated := make([]Post, len(posts))
	var g errgroup.Group
	for i, post := range posts {
		g.Go(func() error {
			h, err := s.Hydrate(ctx, post)
			if err != nil {
				return err
			}
			hydrated[i] = h
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return hydrated, nil
}

// Permalink returns the hydrated published post with the given slug, or
// ErrNotFound when no post matches.
func (s *Source) Permalink(ctx context.Context, slug string) (Post, error) {
	posts, err := s.BySlug(ctx, slug)
	if err != nil {
		return Post{}, err
	}
	if len(posts) == 0 {
		return Post{}, ErrNotFound
	}
	return s.Hydrate(ctx, posts[0])
}

// Slugs enumerates the permalink paths to pre-render: one entry per
// published post with a non-empty slug, in listing order. Posts without a
// slug appear on the listing page but have no reachable permalink. Slug
// collisions are passed through as-is; when two posts share a slug the
// later occurrence overwrites the earlier at the file-writing layer.
func (s *Source) Slugs(ctx context.Context) ([]string, error) {
	posts, err := s.Published(ctx)
	if err != nil {
		return nil, err
	}
	var slugs []string
	for _, p := range posts {
		if p.Slug != nil && *p.Slug != "" {
			slugs = append(slugs, *p.Slug)
		}
	}
	return slugs, nil
}

package notepress

// Post is one blog entry read from the document store. Metadata fields are
// pointers because the source can return partial records; a nil field means
// the record did not carry that value. Contents is empty until the post is
// hydrated and is never mutated afterwards.
type Post struct {
	ID             string
	Title          *string
	Slug           *string
	CreatedTime    *string
	LastEditedTime *string
	Contents       []ContentNode
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}

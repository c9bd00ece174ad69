package notepress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/eringen/notepress/notion"
)

// fakeStore is an in-memory stand-in for the document store API, serving
// the database-query and block-children endpoints.
type fakeStore struct {
	mu          sync.Mutex
	queries     []notion.DatabaseQuery // recorded query request bodies
	pagesJSON   []string               // raw page objects returned to every query
	blocksJSON  map[string]string      // page ID -> raw block objects (comma-joined)
	blockDelay  map[string]time.Duration
	blockStatus map[string]int // page ID -> forced non-200 status
	queryStatus int            // forced non-200 status on queries
}

func (f *fakeStore) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/query"):
			var q notion.DatabaseQuery
			_ = json.NewDecoder(r.Body).Decode(&q)
			f.mu.Lock()
			f.queries = append(f.queries, q)
			f.mu.Unlock()
			if f.queryStatus != 0 {
				w.WriteHeader(f.queryStatus)
				fmt.Fprintf(w, `{"object":"error","status":%d,"code":"rate_limited","message":"slow down"}`, f.queryStatus)
				return
			}
			fmt.Fprintf(w, `{"object":"list","results":[%s],"has_more":false}`, strings.Join(f.pagesJSON, ","))
		case strings.HasPrefix(r.URL.Path, "/blocks/"):
			id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/blocks/"), "/children")
			if d := f.blockDelay[id]; d > 0 {
				time.Sleep(d)
			}
			if s := f.blockStatus[id]; s != 0 {
				w.WriteHeader(s)
				fmt.Fprintf(w, `{"object":"error","status":%d,"code":"internal_server_error","message":"boom"}`, s)
				return
			}
			fmt.Fprintf(w, `{"object":"list","results":[%s],"has_more":false}`, f.blocksJSON[id])
		default:
			http.NotFound(w, r)
		}
	})
}

func (f *fakeStore) queryCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

func (f *fakeStore) lastQuery(t *testing.T) notion.DatabaseQuery {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.queries) == 0 {
		t.Fatal("no query was sent")
	}
	return f.queries[len(f.queries)-1]
}

func newTestSource(t *testing.T, f *fakeStore) *Source {
	t.Helper()
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)
	client := notion.NewClient("secret", notion.WithBaseURL(srv.URL))
	return NewSource(client, "db-1")
}

// pageJSON builds a well-formed page record with title and slug properties.
func pageJSON(id, title, slug string) string {
	return fmt.Sprintf(`{"object":"page","id":%q,
		"created_time":"2024-05-01T10:00:00.000Z",
		"last_edited_time":"2024-05-02T11:30:00.000Z",
		"properties":{
			"Name":{"id":"title","type":"title","title":[{"type":"text","plain_text":%q}]},
			"Slug":{"id":"sl","type":"rich_text","rich_text":[{"type":"text","plain_text":%q}]},
			"Published":{"id":"pb","type":"checkbox","checkbox":true}}}`,
		id, title, slug)
}

func TestPublishedQueryAndFieldExtraction(t *testing.T) {
	f := &fakeStore{pagesJSON: []string{
		pageJSON("p1", "Newer Post", "newer"),
		pageJSON("p2", "Older Post", "older"),
	}}
	src := newTestSource(t, f)

	posts, err := src.Published(context.Background())
	if err != nil {
		t.Fatalf("Published failed: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("got %d posts, want 2", len(posts))
	}
	p := posts[0]
	if p.ID != "p1" {
		t.Errorf("ID = %q, want %q", p.ID, "p1")
	}
	if p.Title == nil || *p.Title != "Newer Post" {
		t.Errorf("Title = %v, want %q", p.Title, "Newer Post")
	}
	if p.Slug == nil || *p.Slug != "newer" {
		t.Errorf("Slug = %v, want %q", p.Slug, "newer")
	}
	if p.CreatedTime == nil || *p.CreatedTime != "2024-05-01T10:00:00.000Z" {
		t.Errorf("CreatedTime = %v, want verbatim copy", p.CreatedTime)
	}
	if p.LastEditedTime == nil || *p.LastEditedTime != "2024-05-02T11:30:00.000Z" {
		t.Errorf("LastEditedTime = %v, want verbatim copy", p.LastEditedTime)
	}
	if len(p.Contents) != 0 {
		t.Errorf("Contents should be empty before hydration, got %d nodes", len(p.Contents))
	}

	q := f.lastQuery(t)
	if q.Filter == nil || q.Filter.Property != "Published" || q.Filter.Checkbox == nil || !q.Filter.Checkbox.Equals {
		t.Errorf("query filter = %+v, want Published checkbox == true", q.Filter)
	}
	if len(q.Sorts) != 1 || q.Sorts[0].Timestamp != "created_time" || q.Sorts[0].Direction != notion.SortDescending {
		t.Errorf("query sorts = %+v, want created_time descending", q.Sorts)
	}
}

func TestBySlugSendsExactFilter(t *testing.T) {
	f := &fakeStore{pagesJSON: []string{pageJSON("p1", "Hello", "hello")}}
	src := newTestSource(t, f)

	posts, err := src.BySlug(context.Background(), "hello")
	if err != nil {
		t.Fatalf("BySlug failed: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("got %d posts, want 1", len(posts))
	}

	q := f.lastQuery(t)
	if q.Filter == nil || q.Filter.Property != "Slug" || q.Filter.RichText == nil {
		t.Fatalf("query filter = %+v, want Slug rich_text filter", q.Filter)
	}
	if q.Filter.RichText.Equals != "hello" {
		t.Errorf("filter value = %q, want %q (exact, no normalization)", q.Filter.RichText.Equals, "hello")
	}
}

func TestMalformedPageRecordDegrades(t *testing.T) {
	// A partial record without a properties map must not fail the query.
	f := &fakeStore{pagesJSON: []string{
		`{"object":"page","id":"broken"}`,
		pageJSON("p2", "Fine", "fine"),
	}}
	src := newTestSource(t, f)

	posts, err := src.Published(context.Background())
	if err != nil {
		t.Fatalf("Published failed on a malformed record: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("got %d posts, want 2", len(posts))
	}
	p := posts[0]
	if p.ID != "broken" {
		t.Errorf("ID = %q, want %q", p.ID, "broken")
	}
	if p.Title != nil || p.Slug != nil || p.CreatedTime != nil || p.LastEditedTime != nil {
		t.Errorf("malformed record should have nil metadata, got %+v", p)
	}
	if len(p.Contents) != 0 {
		t.Errorf("malformed record should have empty contents")
	}
}

func TestPropertyTypeMismatchIgnored(t *testing.T) {
	// A Name property that is not declared "title", and an empty Slug run
	// array, both extract to nil.
	f := &fakeStore{pagesJSON: []string{`{"object":"page","id":"p1",
		"created_time":"2024-05-01T10:00:00.000Z",
		"last_edited_time":"2024-05-01T10:00:00.000Z",
		"properties":{
			"Name":{"id":"t","type":"rich_text","rich_text":[{"type":"text","plain_text":"not a title"}]},
			"Slug":{"id":"s","type":"rich_text","rich_text":[]}}}`}}
	src := newTestSource(t, f)

	posts, err := src.Published(context.Background())
	if err != nil {
		t.Fatalf("Published failed: %v", err)
	}
	if posts[0].Title != nil {
		t.Errorf("Title = %q, want nil for mismatched property type", *posts[0].Title)
	}
	if posts[0].Slug != nil {
		t.Errorf("Slug = %q, want nil for empty run array", *posts[0].Slug)
	}
}

func TestQueryPropagatesAPIError(t *testing.T) {
	f := &fakeStore{queryStatus: http.StatusTooManyRequests}
	src := newTestSource(t, f)

	_, err := src.Published(context.Background())
	if err == nil {
		t.Fatal("expected an error")
	}
	var apiErr *notion.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *notion.APIError", err)
	}
	if apiErr.Status != http.StatusTooManyRequests || apiErr.Code != "rate_limited" {
		t.Errorf("APIError = %+v, want status 429 code rate_limited", apiErr)
	}
}

func TestHydrateOrderAndUnsupportedDrops(t *testing.T) {
	f := &fakeStore{
		pagesJSON: []string{pageJSON("p1", "Post", "post")},
		blocksJSON: map[string]string{
			"p1": strings.Join([]string{
				`{"object":"block","id":"b1","type":"heading_2","heading_2":{"rich_text":[{"plain_text":"Intro"}]}}`,
				`{"object":"block","id":"b2","type":"image","image":{}}`,
				`{"object":"block","id":"b3","type":"paragraph","paragraph":{"rich_text":[{"plain_text":"Body"}]}}`,
				`{"object":"block","id":"b4"}`,
				`{"object":"block","id":"b5","type":"code","code":{"rich_text":[{"plain_text":"x := 1"}],"language":"go"}}`,
			}, ","),
		},
	}
	src := newTestSource(t, f)

	posts, err := src.Published(context.Background())
	if err != nil {
		t.Fatalf("Published failed: %v", err)
	}
	post, err := src.Hydrate(context.Background(), posts[0])
	if err != nil {
		t.Fatalf("Hydrate failed: %v", err)
	}

	// 5 blocks, 3 supported, relative order kept and no placeholders.
	if len(post.Contents) != 3 {
		t.Fatalf("got %d nodes, want 3", len(post.Contents))
	}
	if _, ok := post.Contents[0].(Heading2); !ok {
		t.Errorf("node 0 = %T, want Heading2", post.Contents[0])
	}
	if _, ok := post.Contents[1].(Paragraph); !ok {
		t.Errorf("node 1 = %T, want Paragraph", post.Contents[1])
	}
	code, ok := post.Contents[2].(Code)
	if !ok {
		t.Fatalf("node 2 = %T, want Code", post.Contents[2])
	}
	if code.Language != "go" || code.Text == nil || *code.Text != "x := 1" {
		t.Errorf("code node = %+v, want language go, text %q", code, "x := 1")
	}

	// The input post is untouched.
	if len(posts[0].Contents) != 0 {
		t.Errorf("Hydrate mutated its input post")
	}
}

func TestHydratePropagatesAPIError(t *testing.T) {
	f := &fakeStore{
		pagesJSON:   []string{pageJSON("p1", "Post", "post")},
		blockStatus: map[string]int{"p1": http.StatusInternalServerError},
	}
	src := newTestSource(t, f)

	posts, _ := src.Published(context.Background())
	_, err := src.Hydrate(context.Background(), posts[0])
	var apiErr *notion.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *notion.APIError", err)
	}
}

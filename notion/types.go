package notion

import "fmt"

// RichText is one styled fragment of text inside a block or property.
// Only the plain-text value is consumed here; annotations are ignored.
type RichText struct {
	Type      string `json:"type,omitempty"`
	PlainText string `json:"plain_text"`
}

// Property is a single page property as returned by a database query.
// Exactly one of the value fields is populated, indicated by Type.
type Property struct {
	Type     string     `json:"type"`
	Title    []RichText `json:"title,omitempty"`
	RichText []RichText `json:"rich_text,omitempty"`
	Checkbox *bool      `json:"checkbox,omitempty"`
}

// Page is a database entry. The API can return partial page objects that
// carry no Properties map at all; callers must treat a nil Properties map
// as a degraded record, not an error.
type Page struct {
	ID             string              `json:"id"`
	CreatedTime    string              `json:"created_time,omitempty"`
	LastEditedTime string              `json:"last_edited_time,omitempty"`
	Properties     map[string]Property `json:"properties,omitempty"`
}

// RichTextContent is the payload shared by paragraph, heading and quote blocks.
type RichTextContent struct {
	RichText []RichText `json:"rich_text"`
}

// CodeContent is the payload of a code block.
type CodeContent struct {
	RichText []RichText `json:"rich_text"`
	Language string     `json:"language"`
}

// Block is one unit of page content. Type discriminates which payload field
// is set; blocks the API has not fully materialized may have an empty Type.
type Block struct {
	ID        string           `json:"id,omitempty"`
	Type      string           `json:"type"`
	Paragraph *RichTextContent `json:"paragraph,omitempty"`
	Heading2  *RichTextContent `json:"heading_2,omitempty"`
	Heading3  *RichTextContent `json:"heading_3,omitempty"`
	Quote     *RichTextContent `json:"quote,omitempty"`
	Code      *CodeContent     `json:"code,omitempty"`
}

// CheckboxFilter matches pages whose checkbox property equals the value.
type CheckboxFilter struct {
	Equals bool `json:"equals"`
}

// TextFilter matches pages whose rich-text property equals the value exactly.
type TextFilter struct {
	Equals string `json:"equals"`
}

// Filter is a single-property database filter.
type Filter struct {
	Property string          `json:"property"`
	Checkbox *CheckboxFilter `json:"checkbox,omitempty"`
	RichText *TextFilter     `json:"rich_text,omitempty"`
}

// Sort orders query results by a page timestamp.
type Sort struct {
	Timestamp string `json:"timestamp"`
	Direction string `json:"direction"`
}

// Sort directions accepted by the API.
const (
	SortAscending  = "ascending"
	SortDescending = "descending"
)

// DatabaseQuery is the request body for a database query.
type DatabaseQuery struct {
	Filter *Filter `json:"filter,omitempty"`
	Sorts  []Sort  `json:"sorts,omitempty"`
}

type pageList struct {
	Results    []Page `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor"`
}

type blockList struct {
	Results    []Block `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor string  `json:"next_cursor"`
}

// APIError is a transport, authorization or rate-limit failure reported by
// the document store. It is fatal for the page generation that triggered it;
// no retry happens at this layer.
type APIError struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("notion: request failed with status %d", e.Status)
	}
	return fmt.Sprintf("notion: %s (status %d): %s", e.Code, e.Status, e.Message)
}

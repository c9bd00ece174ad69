package notepress

// ContentNode is one renderable unit of post content. The set of kinds is
// closed: every node dispatches itself through a NodeVisitor, so a consumer
// that misses a kind fails to compile rather than at runtime.
type ContentNode interface {
	Accept(v NodeVisitor)
}

// NodeVisitor has one method per content-node kind. The renderer, the
// excerpt extraction and any future consumer implement this.
type NodeVisitor interface {
	VisitParagraph(n Paragraph)
	VisitHeading2(n Heading2)
	VisitHeading3(n Heading3)
	VisitQuote(n Quote)
	VisitCode(n Code)
}

// Paragraph is a plain paragraph of text. Text is nil when the source block
// carried no text run; that still renders, as an empty paragraph.
type Paragraph struct {
	Text *string
}

// Heading2 is a level-2 section heading.
type Heading2 struct {
	Text *string
}

// Heading3 is a level-3 heading. It renders as a styled paragraph rather
// than a semantic heading element; see the views package.
type Heading3 struct {
	Text *string
}

// Quote is a block quotation.
type Quote struct {
	Text *string
}

// Code is a preformatted code block. Language feeds the syntax-highlighting
// class on the rendered element and is copied verbatim from the source.
type Code struct {
	Text     *string
	Language string
}

func (n Paragraph) Accept(v NodeVisitor) { v.VisitParagraph(n) }

func (n Heading2) Accept(v NodeVisitor) { v.VisitHeading2(n) }

func (n Heading3) Accept(v NodeVisitor) { v.VisitHeading3(n) }

func (n Quote) Accept(v NodeVisitor) { v.VisitQuote(n) }

func (n Code) Accept(v NodeVisitor) { v.VisitCode(n) }

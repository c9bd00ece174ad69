package views

import (
	"bytes"
	"html"

	"github.com/eringen/notepress"
)

// nodeWriter renders content nodes as HTML. It implements
// notepress.NodeVisitor, so a new node kind cannot ship without a render
// rule here. Each node renders independently; nil text renders as empty.
type nodeWriter struct {
	buf *bytes.Buffer
}

func (w nodeWriter) VisitParagraph(n notepress.Paragraph) {
	w.buf.WriteString(`<p class="post-paragraph">` + escapeText(n.Text) + `</p>`)
}

func (w nodeWriter) VisitHeading2(n notepress.Heading2) {
	w.buf.WriteString(`<h2 class="post-heading">` + escapeText(n.Text) + `</h2>`)
}

// VisitHeading3 renders a styled paragraph, not an <h3>. The heading
// hierarchy on a post page deliberately stops at <h2>.
func (w nodeWriter) VisitHeading3(n notepress.Heading3) {
	w.buf.WriteString(`<p class="post-subheading">` + escapeText(n.Text) + `</p>`)
}

func (w nodeWriter) VisitQuote(n notepress.Quote) {
	w.buf.WriteString(`<blockquote class="post-quote">` + escapeText(n.Text) + `</blockquote>`)
}

// VisitCode emits the lang-* class prism uses to pick a grammar for
// client-side syntax highlighting.
func (w nodeWriter) VisitCode(n notepress.Code) {
	w.buf.WriteString(`<pre class="lang-` + html.EscapeString(n.Language) + `"><code>` + escapeText(n.Text) + `</code></pre>`)
}

func escapeText(t *string) string {
	if t == nil {
		return ""
	}
	return html.EscapeString(*t)
}

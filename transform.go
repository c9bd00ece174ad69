package notepress

import "github.com/eringen/notepress/notion"

// NodeForBlock converts one external block record into its content node.
// Blocks without a type discriminant and unsupported kinds (images, lists,
// embeds, tables, ...) report ok=false and are dropped by callers, leaving
// no gap in the output. The function is pure and never fails.
//
// Only the first rich-text run of a block is captured; additional runs from
// mixed formatting inside one block are discarded. That matches the source
// database's rendering contract and is relied on by the permalink pages.
func NodeForBlock(b notion.Block) (node ContentNode, ok bool) {
	switch b.Type {
	case "paragraph":
		return Paragraph{Text: firstRunText(richTextOf(b.Paragraph))}, true
	case "heading_2":
		return Heading2{Text: firstRunText(richTextOf(b.Heading2))}, true
	case "heading_3":
		return Heading3{Text: firstRunText(richTextOf(b.Heading3))}, true
	case "quote":
		return Quote{Text: firstRunText(richTextOf(b.Quote))}, true
	case "code":
		code := Code{}
		if b.Code != nil {
			code.Text = firstRunText(b.Code.RichText)
			code.Language = b.Code.Language
		}
		return code, true
	default:
		return nil, false
	}
}

func richTextOf(c *notion.RichTextContent) []notion.RichText {
	if c == nil {
		return nil
	}
	return c.RichText
}

// firstRunText returns the plain text of the first rich-text run, or nil
// when the run array is empty or absent.
func firstRunText(runs []notion.RichText) *string {
	if len(runs) == 0 {
		return nil
	}
	text := runs[0].PlainText
	return &text
}

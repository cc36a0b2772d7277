package render

import "strings"

// textSpecials and attrSpecials list the bytes each context must encode.
const (
	textSpecials = `&<>"'`
	attrSpecials = textSpecials + "\n\r\t"
)

// entity returns the replacement for c, or "" when c is written as is.
func entity(c byte, attr bool) string {
	switch c {
	case '&':
		return "&amp;"
	case '<':
		return "&lt;"
	case '>':
		return "&gt;"
	case '"':
		return "&quot;"
	case '\'':
		return "&#39;"
	}
	if !attr {
		return ""
	}
	switch c {
	case '\n':
		return "&#10;"
	case '\r':
		return "&#13;"
	case '\t':
		return "&#9;"
	}
	return ""
}

// escape copies s, replacing special bytes. Every special is ASCII, so
// multi-byte runes pass through untouched. Strings without specials are
// returned unchanged.
func escape(s, specials string, attr bool) string {
	i := strings.IndexAny(s, specials)
	if i < 0 {
		return s
	}

	var buf strings.Builder
	buf.Grow(len(s) + 8)
	buf.WriteString(s[:i])
	for ; i < len(s); i++ {
		if e := entity(s[i], attr); e != "" {
			buf.WriteString(e)
		} else {
			buf.WriteByte(s[i])
		}
	}
	return buf.String()
}

// escapeHTML escapes text content.
func escapeHTML(s string) string { return escape(s, textSpecials, false) }

// escapeAttr escapes an attribute value, also encoding whitespace that
// would otherwise be normalized by the parser.
func escapeAttr(s string) string { return escape(s, attrSpecials, true) }

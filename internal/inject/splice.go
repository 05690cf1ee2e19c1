package inject

import (
	"regexp"
	"strings"
)

// headClose finds the first closing head tag, any case, with optional
// whitespace before ">". This is a lexical search, not an HTML parse.
var headClose = regexp.MustCompile(`(?i)</head\s*>`)

// HasTag reports whether content already carries an element with the given
// id, in either quoting style. It is a substring check and can report a tag
// that only appears inside text or a comment.
func HasTag(content, tagID string) bool {
	if strings.Contains(content, `id="`+tagID+`"`) || strings.Contains(content, `id='`+tagID+`'`) {
		return true
	}
	// Pages written by an earlier run carry the escaped form.
	if escaped := EscapeAttr(tagID); escaped != tagID {
		return strings.Contains(content, `id="`+escaped+`"`)
	}
	return false
}

// Splice inserts tag right before the first closing head tag. The tag is
// followed by a newline and preceded by one unless the head tag already
// starts a line. Without a closing head tag the tag is prepended to the
// document. The second return value reports whether a head tag was found.
func Splice(content, tag string) (string, bool) {
	loc := headClose.FindStringIndex(content)
	if loc == nil {
		return tag + "\n" + content, false
	}

	i := loc[0]
	var b strings.Builder
	b.Grow(len(content) + len(tag) + 2)
	b.WriteString(content[:i])
	if i == 0 || content[i-1] != '\n' {
		b.WriteByte('\n')
	}
	b.WriteString(tag)
	b.WriteByte('\n')
	b.WriteString(content[i:])
	return b.String(), true
}

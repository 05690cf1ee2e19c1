package inject

import (
	"net/url"
	"strings"
)

// ScriptBaseURL is where the SpiderSeek loader is served from.
const ScriptBaseURL = "https://cdn.spiderseek.com/spiderseek.js"

// DefaultTagID is the id attribute used when none is configured.
const DefaultTagID = "spiderseek-sdk"

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
	"<", "&lt;",
	">", "&gt;",
)

// EscapeAttr escapes s for use inside a double-quoted HTML attribute.
func EscapeAttr(s string) string {
	return attrEscaper.Replace(s)
}

// EscapeQueryComponent percent-encodes s as a single query component.
// Spaces become %20 rather than "+".
func EscapeQueryComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// ScriptTag renders the markup inserted into every page.
func ScriptTag(tagID, siteID string) string {
	return `<script id="` + EscapeAttr(tagID) + `" async src="` + ScriptBaseURL +
		"?id=" + EscapeQueryComponent(siteID) + `"></script>`
}

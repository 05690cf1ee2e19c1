// Package urlpath maps built HTML files to the URL paths a static web server
// would serve them at.
package urlpath

import (
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/seekinject/internal/foundation/errors"
)

const indexFile = "index.html"

// FromRelative converts a slash-separated path relative to the site root into
// its canonical URL path. Index pages fold into their directory and keep a
// trailing slash: "about/index.html" -> "/about/", "index.html" -> "/".
// Every other file maps to "/" + rel unchanged.
func FromRelative(rel string) string {
	rel = strings.TrimPrefix(rel, "/")
	if rel == indexFile || strings.HasSuffix(rel, "/"+indexFile) {
		return "/" + strings.TrimSuffix(rel, indexFile)
	}
	return "/" + rel
}

// Resolve computes the URL path of file, which must live under root.
func Resolve(root, file string) (string, error) {
	rel, err := filepath.Rel(root, file)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryInternal, "failed to relativize page path").
			WithContext("path", file).
			Build()
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", errors.InternalError("page is outside the site root").
			WithContext("path", file).
			WithContext("root", root).
			Build()
	}
	return FromRelative(rel), nil
}

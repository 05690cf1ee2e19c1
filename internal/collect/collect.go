// Package collect enumerates the HTML pages of a built static site.
package collect

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/seekinject/internal/foundation/errors"
)

// HTMLExt is the only suffix the collector looks for. The match is case-sensitive.
const HTMLExt = ".html"

// ResolveRoot returns the absolute, symlink-free form of root. A site root
// published as a link (public -> build/) resolves to its target.
func ResolveRoot(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryFileSystem, "failed to resolve site root").
			Fatal().
			WithContext("path", root).
			Build()
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NotFoundError("site root does not exist").
				WithCause(err).
				WithContext("path", abs).
				Build()
		}
		return "", errors.WrapError(err, errors.CategoryFileSystem, "failed to resolve site root").
			Fatal().
			WithContext("path", abs).
			Build()
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryFileSystem, "failed to stat site root").
			Fatal().
			WithContext("path", resolved).
			Build()
	}
	if !info.IsDir() {
		return "", errors.NotFoundError("site root is not a directory").
			WithContext("path", resolved).
			Build()
	}
	return resolved, nil
}

// HTMLFiles returns the paths of all regular files under root whose name ends
// in ".html", in filepath.WalkDir order: depth first, entries of each directory
// in lexical order. Paths are rooted at ResolveRoot(root). Directory symlinks
// below the root are not descended into; a symlink to a regular file is kept.
//
// A missing root, a root that is not a directory, or any traversal error below
// it fails the whole collection.
func HTMLFiles(root string) ([]string, error) {
	resolved, err := ResolveRoot(root)
	if err != nil {
		return nil, err
	}

	var files []string
	walkErr := filepath.WalkDir(resolved, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), HTMLExt) {
			return nil
		}
		if isPage(p, d) {
			files = append(files, p)
		}
		return nil
	})
	if walkErr != nil {
		return nil, errors.WrapError(walkErr, errors.CategoryFileSystem, "failed to walk site root").
			Fatal().
			WithContext("path", resolved).
			Build()
	}
	return files, nil
}

// isPage reports whether d can be read as a page. FIFOs, sockets and devices
// would block or misbehave on read and are skipped.
func isPage(p string, d fs.DirEntry) bool {
	switch {
	case d.Type().IsRegular():
		return true
	case d.Type()&fs.ModeSymlink != 0:
		info, err := os.Stat(p)
		// A dangling link is kept so its read failure is reported for the page.
		return err != nil || info.Mode().IsRegular()
	default:
		return false
	}
}

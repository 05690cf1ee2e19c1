// Package testutils builds throwaway static site trees for tests.
package testutils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Site is a temporary build output directory.
type Site struct {
	t    *testing.T
	Root string
	orig map[string]string
}

// NewSite creates an empty site root under t.TempDir(). Root is symlink-free
// so it compares equal to the paths a run reports.
func NewSite(t *testing.T) *Site {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("resolve temp dir: %v", err)
	}
	return &Site{t: t, Root: root, orig: map[string]string{}}
}

// Page writes a file at the slash-separated path rel and remembers its content
// so AssertUnchanged can compare against it later.
func (s *Site) Page(rel, content string) *Site {
	s.t.Helper()
	full := s.Path(rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		s.t.Fatalf("mkdir for %s: %v", rel, err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		s.t.Fatalf("write %s: %v", rel, err)
	}
	s.orig[rel] = content
	return s
}

// Path returns the absolute path of rel inside the site.
func (s *Site) Path(rel string) string {
	return filepath.Join(s.Root, filepath.FromSlash(rel))
}

// Read returns the current content of rel.
func (s *Site) Read(rel string) string {
	s.t.Helper()
	// #nosec G304 - test helper, paths are controlled by test code
	data, err := os.ReadFile(s.Path(rel))
	if err != nil {
		s.t.Fatalf("read %s: %v", rel, err)
	}
	return string(data)
}

// AssertContains validates that rel contains expected.
func (s *Site) AssertContains(rel, expected string) *Site {
	s.t.Helper()
	if content := s.Read(rel); !strings.Contains(content, expected) {
		s.t.Errorf("Expected %s to contain %q\nActual content:\n%s", rel, expected, content)
	}
	return s
}

// AssertUnchanged validates that rel still has the content it was written with.
func (s *Site) AssertUnchanged(rel string) *Site {
	s.t.Helper()
	want, ok := s.orig[rel]
	if !ok {
		s.t.Fatalf("%s was not written through Page", rel)
	}
	if got := s.Read(rel); got != want {
		s.t.Errorf("Expected %s to be unchanged\nbefore:\n%s\nafter:\n%s", rel, want, got)
	}
	return s
}

// AssertCount validates the number of occurrences of needle in rel.
func (s *Site) AssertCount(rel, needle string, want int) *Site {
	s.t.Helper()
	if got := strings.Count(s.Read(rel), needle); got != want {
		s.t.Errorf("Expected %d occurrence(s) of %q in %s, found %d", want, needle, rel, got)
	}
	return s
}

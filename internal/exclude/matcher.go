// Package exclude decides which URL paths are left without the analytics tag.
//
// A Matcher is one of three closed variants: PrefixMatch, PatternMatch or
// GlobMatch. Matchers are built and validated when the configuration is
// parsed, so evaluation never fails.
package exclude

import (
	"regexp"
	"strings"

	"github.com/gobwas/glob"

	"git.home.luguber.info/inful/seekinject/internal/foundation/errors"
)

// Kind identifies the matcher variant.
type Kind string

const (
	KindPrefix  Kind = "prefix"
	KindPattern Kind = "regex"
	KindGlob    Kind = "glob"
)

// Textual prefixes used by String and ParseFlag for the non-prefix variants.
const (
	patternTag = "re:"
	globTag    = "glob:"
)

// Matcher tests a URL path against one exclusion rule.
type Matcher interface {
	Match(urlPath string) bool
	Kind() Kind
	// String renders the rule the way ParseFlag accepts it.
	String() string

	sealed()
}

// PrefixMatch excludes a path equal to Prefix or any path below it.
// Matching is segment-aware: "/admin" covers "/admin" and "/admin/users"
// but not "/administration".
type PrefixMatch struct {
	Prefix string
}

// NewPrefix validates and returns a PrefixMatch.
func NewPrefix(prefix string) (PrefixMatch, error) {
	if prefix == "" {
		return PrefixMatch{}, errors.ValidationError("exclude prefix must not be empty").Build()
	}
	return PrefixMatch{Prefix: prefix}, nil
}

func (m PrefixMatch) Match(p string) bool {
	if p == m.Prefix {
		return true
	}
	if strings.HasSuffix(m.Prefix, "/") {
		return strings.HasPrefix(p, m.Prefix)
	}
	return strings.HasPrefix(p, m.Prefix+"/")
}

func (m PrefixMatch) Kind() Kind     { return KindPrefix }
func (m PrefixMatch) String() string { return m.Prefix }
func (PrefixMatch) sealed()          {}

// PatternMatch excludes paths matched by a regular expression (RE2 syntax).
// The expression is unanchored unless it anchors itself.
type PatternMatch struct {
	re *regexp.Regexp
}

// NewPattern compiles expr into a PatternMatch.
func NewPattern(expr string) (PatternMatch, error) {
	if expr == "" {
		return PatternMatch{}, errors.ValidationError("exclude regex must not be empty").Build()
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return PatternMatch{}, errors.ValidationError("invalid exclude regex").
			WithCause(err).
			WithContext("pattern", expr).
			Build()
	}
	return PatternMatch{re: re}, nil
}

func (m PatternMatch) Match(p string) bool { return m.re.MatchString(p) }
func (m PatternMatch) Kind() Kind          { return KindPattern }
func (m PatternMatch) String() string      { return patternTag + m.re.String() }
func (PatternMatch) sealed()               {}

// Expr returns the source of the compiled expression.
func (m PatternMatch) Expr() string { return m.re.String() }

// GlobMatch excludes paths matched by a shell-style glob with "/" as the
// separator: "*" stays within one segment, "**" spans segments.
type GlobMatch struct {
	pattern string
	g       glob.Glob
}

// NewGlob compiles pattern into a GlobMatch.
func NewGlob(pattern string) (GlobMatch, error) {
	if pattern == "" {
		return GlobMatch{}, errors.ValidationError("exclude glob must not be empty").Build()
	}
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return GlobMatch{}, errors.ValidationError("invalid exclude glob").
			WithCause(err).
			WithContext("pattern", pattern).
			Build()
	}
	return GlobMatch{pattern: pattern, g: g}, nil
}

func (m GlobMatch) Match(p string) bool { return m.g.Match(p) }
func (m GlobMatch) Kind() Kind          { return KindGlob }
func (m GlobMatch) String() string      { return globTag + m.pattern }
func (GlobMatch) sealed()               {}

// Pattern returns the glob source.
func (m GlobMatch) Pattern() string { return m.pattern }

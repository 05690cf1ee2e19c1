package exclude

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/seekinject/internal/foundation/errors"
)

// Rules is an ordered list of matchers. Order matters only for reporting
// which rule excluded a page: the first match wins.
type Rules []Matcher

// First returns the first matcher that matches urlPath.
func (r Rules) First(urlPath string) (Matcher, bool) {
	for _, m := range r {
		if m.Match(urlPath) {
			return m, true
		}
	}
	return nil, false
}

// Strings renders every rule with String.
func (r Rules) Strings() []string {
	out := make([]string, 0, len(r))
	for _, m := range r {
		out = append(out, m.String())
	}
	return out
}

// ParseFlag parses the command-line form of a rule: "re:<expr>" for a regex,
// "glob:<pattern>" for a glob and anything else as a path prefix.
func ParseFlag(s string) (Matcher, error) {
	switch {
	case strings.HasPrefix(s, patternTag):
		return NewPattern(strings.TrimPrefix(s, patternTag))
	case strings.HasPrefix(s, globTag):
		return NewGlob(strings.TrimPrefix(s, globTag))
	default:
		return NewPrefix(s)
	}
}

// ParseFlags parses every value with ParseFlag, failing on the first bad one.
func ParseFlags(values []string) (Rules, error) {
	rules := make(Rules, 0, len(values))
	for i, v := range values {
		m, err := ParseFlag(v)
		if err != nil {
			return nil, withIndex(err, i)
		}
		rules = append(rules, m)
	}
	return rules, nil
}

// UnmarshalYAML accepts a sequence whose items are either a plain string
// (prefix) or a mapping with exactly one of the keys "regex" or "glob".
func (r *Rules) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return errors.ValidationError("exclude must be a list").
			WithContext("line", node.Line).
			Build()
	}
	rules := make(Rules, 0, len(node.Content))
	for i, item := range node.Content {
		m, err := matcherFromNode(item)
		if err != nil {
			return withIndex(err, i)
		}
		rules = append(rules, m)
	}
	*r = rules
	return nil
}

// MarshalYAML writes rules back in the form UnmarshalYAML reads.
func (r Rules) MarshalYAML() (any, error) {
	out := make([]any, 0, len(r))
	for _, m := range r {
		switch v := m.(type) {
		case PatternMatch:
			out = append(out, map[string]string{"regex": v.Expr()})
		case GlobMatch:
			out = append(out, map[string]string{"glob": v.Pattern()})
		default:
			out = append(out, m.String())
		}
	}
	return out, nil
}

func matcherFromNode(n *yaml.Node) (Matcher, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag != "!!str" {
			return nil, malformed(n, fmt.Sprintf("expected a string, got %s", strings.TrimPrefix(n.Tag, "!!")))
		}
		return NewPrefix(n.Value)
	case yaml.MappingNode:
		if len(n.Content) != 2 {
			return nil, malformed(n, "mapping must have exactly one of regex or glob")
		}
		key, val := n.Content[0], n.Content[1]
		if val.Kind != yaml.ScalarNode {
			return nil, malformed(n, key.Value+" must be a string")
		}
		switch key.Value {
		case "regex":
			return NewPattern(val.Value)
		case "glob":
			return NewGlob(val.Value)
		default:
			return nil, malformed(n, "unknown matcher key "+key.Value)
		}
	default:
		return nil, malformed(n, "expected a string or a mapping")
	}
}

func malformed(n *yaml.Node, reason string) error {
	return errors.ValidationError("malformed exclude entry").
		WithContext("reason", reason).
		WithContext("line", n.Line).
		Build()
}

func withIndex(err error, i int) error {
	if ce, ok := errors.AsClassified(err); ok {
		return ce.WithContext("index", i)
	}
	return err
}

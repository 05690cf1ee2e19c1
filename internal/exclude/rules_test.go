package exclude

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/seekinject/internal/foundation/errors"
)

type doc struct {
	Exclude Rules `yaml:"exclude"`
}

func TestRulesUnmarshalYAML(t *testing.T) {
	input := `
exclude:
  - /admin
  - regex: "^/preview"
  - glob: "/drafts/**"
`
	var d doc
	require.NoError(t, yaml.Unmarshal([]byte(input), &d))
	require.Len(t, d.Exclude, 3)
	require.Equal(t, KindPrefix, d.Exclude[0].Kind())
	require.Equal(t, KindPattern, d.Exclude[1].Kind())
	require.Equal(t, KindGlob, d.Exclude[2].Kind())
	require.True(t, d.Exclude[1].Match("/preview/"))
}

func TestRulesUnmarshalYAML_Malformed(t *testing.T) {
	tests := map[string]string{
		"number":       "exclude:\n  - 42\n",
		"null":         "exclude:\n  - ~\n",
		"unknown key":  "exclude:\n  - prefix: /admin\n",
		"two keys":     "exclude:\n  - regex: a\n    glob: b\n",
		"nested list":  "exclude:\n  - [a, b]\n",
		"not a list":   "exclude: /admin\n",
		"bad regex":    "exclude:\n  - regex: \"(\"\n",
		"empty prefix": "exclude:\n  - \"\"\n",
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			var d doc
			err := yaml.Unmarshal([]byte(input), &d)
			require.Error(t, err)
			require.True(t, errors.HasCategory(err, errors.CategoryValidation), err.Error())
		})
	}
}

func TestRulesMarshalYAML_RoundTrip(t *testing.T) {
	rules, err := ParseFlags([]string{"/admin", "re:^/preview", "glob:/drafts/**"})
	require.NoError(t, err)

	out, err := yaml.Marshal(doc{Exclude: rules})
	require.NoError(t, err)

	var back doc
	require.NoError(t, yaml.Unmarshal(out, &back))
	require.Equal(t, rules.Strings(), back.Exclude.Strings())
}

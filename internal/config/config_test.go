package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"git.home.luguber.info/inful/seekinject/internal/exclude"
	"git.home.luguber.info/inful/seekinject/internal/foundation/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seekinject.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Setenv(EnvSiteID, "")
	t.Setenv(EnvTagID, "")
	t.Setenv(EnvLogLevel, "")

	path := writeConfig(t, "site_id: \"abc-123\"\n"+
		"tag_id: seek\n"+
		"exclude:\n"+
		"  - /admin\n"+
		"  - regex: \"^/preview\"\n"+
		"  - glob: \"/drafts/**\"\n"+
		"logging:\n"+
		"  level: DEBUG\n"+
		"  format: json\n")

	cfg, err := Load(path, true)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SiteID != "abc-123" || cfg.TagID != "seek" {
		t.Errorf("site/tag = %q/%q", cfg.SiteID, cfg.TagID)
	}
	want := []string{"/admin", "re:^/preview", "glob:/drafts/**"}
	if got := cfg.Exclude.Strings(); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("exclude = %v, want %v", got, want)
	}
	if cfg.Exclude[0].Kind() != exclude.KindPrefix || cfg.Exclude[1].Kind() != exclude.KindPattern {
		t.Errorf("unexpected kinds %s %s", cfg.Exclude[0].Kind(), cfg.Exclude[1].Kind())
	}
	if cfg.Logging.Level != LogLevelDebug || cfg.Logging.Format != LogFormatJSON {
		t.Errorf("logging = %+v", cfg.Logging)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadConfig_ExpandsEnvironment(t *testing.T) {
	t.Setenv(EnvSiteID, "")
	t.Setenv("SEEK_TEST_SITE", "from-env")

	cfg, err := Load(writeConfig(t, "site_id: ${SEEK_TEST_SITE}\n"), true)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SiteID != "from-env" {
		t.Errorf("SiteID = %q, want from-env", cfg.SiteID)
	}
}

func TestLoadConfig_ExcludeRulesAreNotExpanded(t *testing.T) {
	t.Setenv(EnvSiteID, "")
	t.Setenv("SEEK_TEST_SEGMENT", "blog")

	cfg, err := Load(writeConfig(t, "site_id: ${SEEK_TEST_SEGMENT}-site\n"+
		"exclude:\n"+
		"  - regex: \"^/$SEEK_TEST_SEGMENT/v[0-9]+$\"\n"+
		"  - /$SEEK_TEST_SEGMENT\n"), true)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SiteID != "blog-site" {
		t.Errorf("SiteID = %q, want blog-site", cfg.SiteID)
	}
	want := []string{"re:^/$SEEK_TEST_SEGMENT/v[0-9]+$", "/$SEEK_TEST_SEGMENT"}
	if got := cfg.Exclude.Strings(); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("exclude = %v, want %v", got, want)
	}
	if _, ok := cfg.Exclude.First("/blog/v2"); ok {
		t.Error("regex must not have been rewritten with the environment value")
	}
}

func TestLoadConfig_EnvironmentOverridesFile(t *testing.T) {
	t.Setenv(EnvSiteID, "override")
	t.Setenv(EnvTagID, "custom-tag")
	t.Setenv(EnvLogLevel, "warning")

	cfg, err := Load(writeConfig(t, "site_id: file\ntag_id: file-tag\n"), true)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SiteID != "override" || cfg.TagID != "custom-tag" {
		t.Errorf("site/tag = %q/%q", cfg.SiteID, cfg.TagID)
	}
	if cfg.Logging.Level != LogLevelWarn {
		t.Errorf("level = %q, want warn", cfg.Logging.Level)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv(EnvSiteID, "")
	t.Setenv(EnvTagID, "")
	t.Setenv(EnvLogLevel, "")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), false)
	if err != nil {
		t.Fatalf("Load of optional missing file: %v", err)
	}
	if cfg.TagID != "spiderseek-sdk" {
		t.Errorf("TagID = %q", cfg.TagID)
	}
	if cfg.Logging.Level != LogLevelInfo || cfg.Logging.Format != LogFormatText {
		t.Errorf("logging = %+v", cfg.Logging)
	}
	if len(cfg.Exclude) != 0 {
		t.Errorf("exclude = %v", cfg.Exclude)
	}

	err = cfg.Validate()
	if !errors.HasCategory(err, errors.CategoryConfig) {
		t.Fatalf("expected config error for missing site id, got %v", err)
	}
	ce, _ := errors.AsClassified(err)
	if field, _ := ce.Context().GetString("field"); field != "site_id" {
		t.Errorf("field = %q", field)
	}
}

func TestLoadConfig_WhitespaceSiteIDRejected(t *testing.T) {
	t.Setenv(EnvSiteID, "")
	cfg, err := Load(writeConfig(t, "site_id: \"   \"\n"), true)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Validate() == nil {
		t.Error("expected whitespace-only site id to fail validation")
	}
}

func TestLoadConfig_RequiredMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), true)
	if !errors.HasCategory(err, errors.CategoryConfig) {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		category errors.ErrorCategory
	}{
		{"bad yaml", "site_id: [unterminated\n", errors.CategoryConfig},
		{"exclude not a list", "exclude: /admin\n", errors.CategoryValidation},
		{"numeric exclude entry", "exclude:\n  - 42\n", errors.CategoryValidation},
		{"unknown matcher key", "exclude:\n  - suffix: .html\n", errors.CategoryValidation},
		{"bad regex", "exclude:\n  - regex: \"(\"\n", errors.CategoryValidation},
		{"empty prefix", "exclude:\n  - \"\"\n", errors.CategoryValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			_, err := Load(path, true)
			if !errors.HasCategory(err, tt.category) {
				t.Fatalf("expected %s error, got %v", tt.category, err)
			}
			ce, _ := errors.AsClassified(err)
			if p, _ := ce.Context().GetString("path"); p != path {
				t.Errorf("path context = %q, want %q", p, path)
			}
		})
	}
}

func TestInit(t *testing.T) {
	t.Setenv(EnvSiteID, "")
	t.Setenv(EnvTagID, "")
	path := filepath.Join(t.TempDir(), "seekinject.yaml")

	if err := Init(path, false); err != nil {
		t.Fatalf("Init: %v", err)
	}
	cfg, err := Load(path, true)
	if err != nil {
		t.Fatalf("Load of generated config: %v", err)
	}
	if cfg.SiteID != "YOUR-SITE-ID" {
		t.Errorf("SiteID = %q", cfg.SiteID)
	}
	if got, want := cfg.Exclude.Strings(), Example().Exclude.Strings(); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("exclude round trip = %v, want %v", got, want)
	}

	err = Init(path, false)
	if !errors.HasCategory(err, errors.CategoryValidation) {
		t.Errorf("expected validation error on existing file, got %v", err)
	}
	if err := Init(path, true); err != nil {
		t.Errorf("Init with force: %v", err)
	}
}

func TestNormalizeLogLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"debug":   LogLevelDebug,
		" INFO ":  LogLevelInfo,
		"Warn":    LogLevelWarn,
		"warning": LogLevelWarn,
		"error":   LogLevelError,
		"trace":   LogLevelInfo,
		"":        LogLevelInfo,
	}
	for in, want := range cases {
		if got := NormalizeLogLevel(in); got != want {
			t.Errorf("NormalizeLogLevel(%q) = %q, want %q", in, got, want)
		}
	}
	if NormalizeLogFormat("JSON") != LogFormatJSON || NormalizeLogFormat("xml") != LogFormatText {
		t.Error("unexpected log format normalization")
	}
}

package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyRoot       = "root"
	KeyPath       = "path"
	KeyURLPath    = "url_path"
	KeyOutcome    = "outcome"
	KeyMatcher    = "matcher"
	KeySiteID     = "site_id"
	KeyTagID      = "tag_id"
	KeyStage      = "stage"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Root(p string) slog.Attr         { return slog.String(KeyRoot, p) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func URLPath(p string) slog.Attr      { return slog.String(KeyURLPath, p) }
func Outcome(o string) slog.Attr      { return slog.String(KeyOutcome, o) }
func Matcher(m string) slog.Attr      { return slog.String(KeyMatcher, m) }
func SiteID(id string) slog.Attr      { return slog.String(KeySiteID, id) }
func TagID(id string) slog.Attr       { return slog.String(KeyTagID, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}

// Package inject adds the SpiderSeek analytics script to the pages of a
// finished static site build.
//
// A run walks the site root, maps every HTML page to its URL path, skips
// pages matched by an exclusion rule or already carrying the tag, and
// splices the script tag in front of the closing head tag of the rest.
// Pages are processed one at a time in traversal order.
package inject

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/seekinject/internal/collect"
	"git.home.luguber.info/inful/seekinject/internal/exclude"
	"git.home.luguber.info/inful/seekinject/internal/foundation"
	"git.home.luguber.info/inful/seekinject/internal/foundation/errors"
	"git.home.luguber.info/inful/seekinject/internal/logfields"
	"git.home.luguber.info/inful/seekinject/internal/metrics"
	"git.home.luguber.info/inful/seekinject/internal/urlpath"
)

// Options is the per-invocation configuration of an Injector.
type Options struct {
	SiteID  string
	TagID   string
	Exclude exclude.Rules
}

// Option customizes an Injector.
type Option func(*Injector)

// WithLogger sets the logger used for per-page and summary events.
func WithLogger(l *slog.Logger) Option {
	return func(inj *Injector) {
		if l != nil {
			inj.logger = l
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(inj *Injector) {
		if r != nil {
			inj.recorder = r
		}
	}
}

// WithDryRun makes the injector decide every page without writing any.
func WithDryRun(dry bool) Option {
	return func(inj *Injector) { inj.dryRun = dry }
}

// Injector holds the immutable state of one injection run.
type Injector struct {
	opts     Options
	tag      string
	dryRun   bool
	logger   *slog.Logger
	recorder metrics.Recorder
	now      func() time.Time
}

// New validates opts and prepares the script tag. An empty site id is a
// configuration error.
func New(opts Options, options ...Option) (*Injector, error) {
	opts.SiteID = strings.TrimSpace(opts.SiteID)
	if opts.SiteID == "" {
		return nil, errors.ConfigError("site id is required").
			WithContext("field", "site_id").
			Build()
	}
	if opts.TagID == "" {
		opts.TagID = DefaultTagID
	}

	inj := &Injector{
		opts:     opts,
		tag:      ScriptTag(opts.TagID, opts.SiteID),
		logger:   slog.Default(),
		recorder: metrics.NoopRecorder{},
		now:      time.Now,
	}
	for _, o := range options {
		o(inj)
	}
	return inj, nil
}

// Tag returns the markup inserted into pages.
func (inj *Injector) Tag() string { return inj.tag }

// Run processes every HTML page under root. It fails only when the root
// cannot be traversed, in which case no page has been touched. Per-page read
// and write failures are collected in Result.Failed.
func (inj *Injector) Run(root string) (*Result, error) {
	start := inj.now()
	res := &Result{
		RunID:      uuid.NewString(),
		DryRun:     inj.dryRun,
		Exclusions: inj.opts.Exclude.Strings(),
		Failed:     []FileError{},
		Files:      []FileOutcome{},
		StartedAt:  start,
	}
	log := inj.logger.With(logfields.RunID(res.RunID))

	absRoot, err := collect.ResolveRoot(root)
	if err != nil {
		inj.recorder.IncRunOutcome(metrics.RunFailed)
		log.Error("Site root is not usable", logfields.Root(root), logfields.Error(err))
		return nil, err
	}
	res.Root = absRoot

	log.Info("Starting script injection",
		logfields.Root(absRoot),
		logfields.SiteID(inj.opts.SiteID),
		logfields.TagID(inj.opts.TagID),
		slog.Bool("dry_run", inj.dryRun),
		slog.Any("exclude", res.Exclusions))

	files, err := collect.HTMLFiles(absRoot)
	if err != nil {
		inj.recorder.IncRunOutcome(metrics.RunFailed)
		return nil, err
	}
	res.Scanned = len(files)
	inj.recorder.SetFilesScanned(len(files))
	log.Debug("Collected pages", logfields.Stage("collect"), logfields.Count(len(files)))

	for _, path := range files {
		rec := FileRecord{Path: path}
		rec.URLPath, err = urlpath.Resolve(absRoot, path)
		if err != nil {
			inj.recordFailure(log, res, FileError{FileRecord: rec, Err: err})
			continue
		}

		inj.processFile(log, rec).Match(
			func(o FileOutcome) {
				res.add(o)
				inj.recorder.IncFileOutcome(string(o.Outcome))
				log.Debug("Page processed",
					logfields.Path(o.Path),
					logfields.URLPath(o.URLPath),
					logfields.Outcome(string(o.Outcome)))
			},
			func(err error) {
				inj.recordFailure(log, res, FileError{FileRecord: rec, Err: err})
			},
		)
	}

	res.Duration = inj.now().Sub(start)
	inj.recorder.ObserveRunDuration(res.Duration)
	if len(res.Failed) > 0 {
		inj.recorder.IncRunOutcome(metrics.RunPartial)
	} else {
		inj.recorder.IncRunOutcome(metrics.RunSuccess)
	}

	log.Info("Script injection finished",
		slog.Int("scanned", res.Scanned),
		slog.Int("modified", res.Modified),
		slog.Int("excluded", res.Excluded),
		slog.Int("already_tagged", res.AlreadyTagged),
		slog.Int("failed", len(res.Failed)),
		logfields.DurationMS(float64(res.Duration.Microseconds())/1000))
	return res, nil
}

// processFile takes one page through exclusion, de-duplication and splicing.
func (inj *Injector) processFile(log *slog.Logger, rec FileRecord) foundation.Result[FileOutcome, error] {
	out := FileOutcome{FileRecord: rec}

	if m, ok := inj.opts.Exclude.First(rec.URLPath); ok {
		out.Outcome = OutcomeExcluded
		out.Matcher = m.String()
		return foundation.Ok[FileOutcome, error](out)
	}

	// #nosec G304 -- paths come from walking the configured site root
	data, err := os.ReadFile(rec.Path)
	if err != nil {
		return foundation.Err[FileOutcome, error](
			errors.WrapError(err, errors.CategoryFileSystem, "failed to read page").
				Warning().
				WithContext("path", rec.Path).
				Build())
	}
	content := string(data)

	if HasTag(content, inj.opts.TagID) {
		out.Outcome = OutcomeAlreadyTagged
		return foundation.Ok[FileOutcome, error](out)
	}

	updated, foundHead := Splice(content, inj.tag)
	out.Prepended = !foundHead
	if !foundHead {
		log.Warn("No closing head tag, prepending script",
			logfields.Path(rec.Path), logfields.URLPath(rec.URLPath))
	}

	if inj.dryRun {
		out.Outcome = OutcomeWouldInject
		return foundation.Ok[FileOutcome, error](out)
	}

	// The mode only applies if the page disappeared since it was read.
	if err := os.WriteFile(rec.Path, []byte(updated), 0o644); err != nil { // #nosec G306 -- published site content
		return foundation.Err[FileOutcome, error](
			errors.WrapError(err, errors.CategoryFileSystem, "failed to write page").
				Warning().
				WithContext("path", rec.Path).
				Build())
	}
	out.Outcome = OutcomeInjected
	return foundation.Ok[FileOutcome, error](out)
}

func (inj *Injector) recordFailure(log *slog.Logger, res *Result, fe FileError) {
	res.fail(fe)
	inj.recorder.IncFileOutcome(string(OutcomeFailed))
	log.Warn("Failed to process page",
		logfields.Path(fe.Path),
		logfields.URLPath(fe.URLPath),
		logfields.Error(fe.Err))
}

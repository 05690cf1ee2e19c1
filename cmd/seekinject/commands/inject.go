package commands

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"git.home.luguber.info/inful/seekinject/internal/config"
	"git.home.luguber.info/inful/seekinject/internal/exclude"
	"git.home.luguber.info/inful/seekinject/internal/inject"
	"git.home.luguber.info/inful/seekinject/internal/logfields"
	"git.home.luguber.info/inful/seekinject/internal/metrics"
)

// InjectCmd implements the 'inject' command.
type InjectCmd struct {
	Root        string   `arg:"" help:"Build output directory to process" type:"path"`
	SiteID      string   `name:"site-id" help:"SpiderSeek site identifier (overrides SEEKINJECT_SITE_ID and site_id)"`
	TagID       string   `name:"tag-id" help:"Id attribute of the injected script tag (default spiderseek-sdk)"`
	Exclude     []string `short:"e" sep:"none" help:"URL path to skip: a prefix, re:<regex> or glob:<pattern>. Repeatable; replaces configured exclusions"`
	DryRun      bool     `name:"dry-run" help:"Report what would change without writing any file"`
	Report      string   `help:"Write a JSON run report to this file" type:"path"`
	MetricsFile string   `name:"metrics-file" help:"Write Prometheus textfile metrics to this file" type:"path"`
	NoColor     bool     `name:"no-color" help:"Disable colored summary output"`

	Out io.Writer `kong:"-"`
}

func (c *InjectCmd) Run(g *Global, root *CLI) error {
	path, required := root.configPath()
	cfg, err := config.Load(path, required)
	if err != nil {
		return err
	}
	g.Logger = root.configureLogging(cfg.Logging)

	if err := c.applyFlags(cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var (
		recorder metrics.Recorder = metrics.NoopRecorder{}
		registry *prometheus.Registry
	)
	if c.MetricsFile != "" {
		registry = prometheus.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(registry)
	}

	inj, err := inject.New(inject.Options{
		SiteID:  cfg.SiteID,
		TagID:   cfg.TagID,
		Exclude: cfg.Exclude,
	}, inject.WithLogger(g.Logger), inject.WithRecorder(recorder), inject.WithDryRun(c.DryRun))
	if err != nil {
		return err
	}

	res, runErr := inj.Run(c.Root)
	// Metrics are written for failed runs too so CI can alert on them.
	if registry != nil {
		if err := metrics.WriteTextfile(c.MetricsFile, registry); err != nil {
			g.Logger.Warn("Failed to write metrics textfile", logfields.Path(c.MetricsFile), logfields.Error(err))
		}
	}
	if runErr != nil {
		return runErr
	}

	if c.Report != "" {
		if err := inject.WriteReport(c.Report, res); err != nil {
			return err
		}
		g.Logger.Debug("Wrote run report", logfields.Path(c.Report))
	}

	c.printSummary(res)
	return nil
}

// applyFlags layers command-line values over the loaded configuration.
func (c *InjectCmd) applyFlags(cfg *config.Config) error {
	if v := strings.TrimSpace(c.SiteID); v != "" {
		cfg.SiteID = v
	}
	if c.TagID != "" {
		cfg.TagID = c.TagID
	}
	if len(c.Exclude) > 0 {
		rules, err := exclude.ParseFlags(c.Exclude)
		if err != nil {
			return err
		}
		cfg.Exclude = rules
	}
	return nil
}

func (c *InjectCmd) printSummary(res *inject.Result) {
	out := c.Out
	if out == nil {
		out = os.Stdout
	}
	useColor := !c.NoColor && os.Getenv("NO_COLOR") == "" && isTerminal(out)

	headline := color.New(color.FgGreen, color.Bold)
	if len(res.Failed) > 0 {
		headline = color.New(color.FgYellow, color.Bold)
	}
	failure := color.New(color.FgRed)
	detail := color.New(color.Faint)
	for _, col := range []*color.Color{headline, failure, detail} {
		if useColor {
			col.EnableColor()
		} else {
			col.DisableColor()
		}
	}

	_, _ = headline.Fprintln(out, res.Summary())
	for _, f := range res.Failed {
		_, _ = failure.Fprintf(out, "  failed %s: %v\n", f.Path, f.Err)
	}

	p := message.NewPrinter(language.English)
	_, _ = detail.Fprintln(out, p.Sprintf("Processed %d pages in %v (run %s)",
		res.Scanned, res.Duration.Round(time.Millisecond), res.RunID))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

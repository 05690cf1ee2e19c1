package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/seekinject/internal/config"
)

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config    string           `short:"c" help:"Configuration file path (default seekinject.yaml, optional unless given)" type:"path"`
	Verbose   bool             `short:"v" help:"Enable verbose logging"`
	LogFormat string           `name:"log-format" help:"Log output format: text or json"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	Inject InjectCmd `cmd:"" help:"Inject the SpiderSeek script into the HTML pages of a build"`
	Init   InitCmd   `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; set up logging before any command runs.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	c.configureLogging(config.LoggingConfig{Level: config.LogLevel(os.Getenv(config.EnvLogLevel))})
	return nil
}

// configureLogging installs the default logger from lc. --verbose and
// --log-format win over lc.
func (c *CLI) configureLogging(lc config.LoggingConfig) *slog.Logger {
	level := config.NormalizeLogLevel(string(lc.Level)).SlogLevel()
	if c.Verbose {
		level = slog.LevelDebug
	}
	format := config.NormalizeLogFormat(string(lc.Format))
	if c.LogFormat != "" {
		format = config.NormalizeLogFormat(c.LogFormat)
	}
	logger := NewLogger(os.Stderr, format, level)
	slog.SetDefault(logger)
	return logger
}

// configPath returns the configuration file to load and whether it must exist.
func (c *CLI) configPath() (string, bool) {
	if c.Config != "" {
		return c.Config, true
	}
	return config.DefaultPath, false
}

// NewLogger builds a slog logger writing to w in the given format.
func NewLogger(w io.Writer, format config.LogFormat, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

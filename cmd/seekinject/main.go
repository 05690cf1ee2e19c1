package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/seekinject/cmd/seekinject/commands"
	"git.home.luguber.info/inful/seekinject/internal/foundation/errors"
	"git.home.luguber.info/inful/seekinject/internal/version"
)

func main() {
	cli := &commands.CLI{}
	ctx := kong.Parse(cli,
		kong.Name("seekinject"),
		kong.Description("Inject the SpiderSeek analytics script into a built static site."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	global := &commands.Global{Logger: slog.Default()}
	err := ctx.Run(global, cli)
	errors.NewCLIErrorAdapter(cli.Verbose, global.Logger).HandleError(err)
}

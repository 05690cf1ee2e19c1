package commands

import (
	"fmt"
	"io"
	"os"

	"git.home.luguber.info/inful/seekinject/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`

	Out io.Writer `kong:"-"`
}

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	out := i.Out
	if out == nil {
		out = os.Stdout
	}
	path, _ := root.configPath()
	_, _ = fmt.Fprintf(out, "Writing configuration to %s\n", path)
	if err := config.Init(path, i.Force); err != nil {
		_, _ = fmt.Fprintln(out, "Initialization failed")
		return err
	}
	_, _ = fmt.Fprintln(out, "initialized successfully")
	return nil
}

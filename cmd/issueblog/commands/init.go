package commands

import (
	"fmt"

	"git.home.luguber.info/inful/issueblog/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	path := root.Config
	if path == "" {
		path = config.DefaultConfigFile
	}
	if err := config.WriteExample(path, i.Force); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

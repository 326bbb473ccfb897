package commands

import (
	"fmt"

	"git.home.luguber.info/inful/kssbuilder/internal/builder"
	"git.home.luguber.info/inful/kssbuilder/internal/config"
)

// CloneCmd implements the 'clone' command.
type CloneCmd struct {
	Builder     string `arg:"" help:"Builder to clone: a directory or a git URL"`
	Destination string `arg:"" optional:"" type:"path" help:"Folder to create"`
}

func (c *CloneCmd) Run(g *Global, root *CLI) error {
	loader, err := root.Loader(g)
	if err != nil {
		return err
	}
	src, err := loader.SourceDir(g.ctx(), c.Builder)
	if err != nil {
		return err
	}

	dest := c.Destination
	if dest == "" {
		// Normalizing an empty clone value yields the default folder.
		dest = config.New(builder.NewBase().OptionDefinitions()).
			SetRaw(map[string]any{builder.OptionClone: ""}).
			String(builder.OptionClone)
	}

	if err := builder.NewBase().SetLogger(g.logger()).Clone(g.ctx(), src, dest); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(g.stdout(), "Builder cloned to %s\n", dest)
	return nil
}

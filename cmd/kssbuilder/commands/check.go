package commands

import (
	"fmt"

	"git.home.luguber.info/inful/kssbuilder/internal/builder"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct {
	Builder string `arg:"" optional:"" help:"Builder to check" default:"static"`
}

func (c *CheckCmd) Run(g *Global, root *CLI) error {
	// A fallback would hide the builder being checked.
	loader, err := root.Loader(g, builder.WithStrict(true))
	if err != nil {
		return err
	}
	b, err := loader.Load(g.ctx(), c.Builder)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(g.stdout(), "%s: builder API %s is compatible with %s\n", c.Builder, b.API(), builder.APIVersion)
	return nil
}

package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"git.home.luguber.info/inful/kssbuilder/internal/options"
)

// OptionsCmd implements the 'options' command.
type OptionsCmd struct {
	Builder string `arg:"" optional:"" help:"Builder whose options to list" default:"static"`
}

func (o *OptionsCmd) Run(g *Global, root *CLI) error {
	loader, err := root.Loader(g)
	if err != nil {
		return err
	}
	b, err := loader.Load(g.ctx(), o.Builder)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(g.stdout(), 0, 4, 2, ' ', 0)
	for i, group := range b.OptionDefinitions().Groups() {
		if i > 0 {
			_, _ = fmt.Fprintln(tw)
		}
		name := group.Name
		if name == "" {
			name = "Options:"
		}
		_, _ = fmt.Fprintln(tw, name)
		for _, def := range group.Definitions {
			_, _ = fmt.Fprintf(tw, "  %s\t%s\t%s\n", flagName(def), def.Describe, defaultText(def))
		}
	}
	return tw.Flush()
}

func flagName(def options.Definition) string {
	name := "--" + def.Key
	if def.Alias != "" {
		name = "-" + def.Alias + ", " + name
	}
	if def.Multiple() {
		name += " ..."
	}
	return name
}

func defaultText(def options.Definition) string {
	if !def.HasDefault() {
		return ""
	}
	d := fmt.Sprint(def.Default)
	if strings.ContainsAny(d, " |") {
		d = fmt.Sprintf("%q", d)
	}
	return "[default: " + d + "]"
}

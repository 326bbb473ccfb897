package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/kssbuilder/cmd/kssbuilder/commands"
	ferrors "git.home.luguber.info/inful/kssbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/kssbuilder/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Must(cli,
		kong.Name("kssbuilder"),
		kong.Description("Build living style guides from KSS models."),
		kong.Vars{"version": version.String()},
		kong.UsageOnError(),
	)
	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := kctx.Run(&commands.Global{Context: ctx, Logger: slog.Default(), Stdout: os.Stdout}, cli); err != nil {
		stop()
		ferrors.NewCLIErrorAdapter(cli.Verbose > 0, slog.Default()).HandleError(err)
	}
}

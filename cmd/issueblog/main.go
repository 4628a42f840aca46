package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/issueblog/cmd/issueblog/commands"
	"git.home.luguber.info/inful/issueblog/internal/foundation/errors"
)

func main() {
	var cli commands.CLI
	parser := kong.Parse(&cli,
		kong.Name("issueblog"),
		kong.Description("Build a static blog from labelled GitHub issues."),
		kong.UsageOnError(),
	)

	// AfterApply has installed the configured logger by now.
	err := parser.Run(&commands.Global{Logger: slog.Default()}, &cli)
	errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}

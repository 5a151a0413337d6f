package cmd

import (
	"context"

	"github.com/olimci/hinagata/pkg/version"
	"github.com/urfave/cli/v3"
)

var Version = version.String()

func Execute(ctx context.Context, args []string) error {
	app := &cli.Command{
		Name:  "hinagata",
		Usage: "Generate projects from declarative template collections",
		Commands: []*cli.Command{
			{
				Name:   "version",
				Usage:  "print version",
				Action: runVersion,
			},
			{
				Name:      "init",
				Usage:     "Generate a project from a template collection",
				ArgsUsage: "[source] [target]",
				Flags: append(commonFlags(),
					&cli.StringSliceFlag{Name: "var", Usage: "Set a variable or answer a question (key=value, repeatable)"},
					&cli.StringFlag{Name: "vars-file", Usage: "Read variables from a TOML, YAML or JSON file"},
					&cli.BoolFlag{Name: "interactive", Aliases: []string{"i"}, Value: false, Usage: "Ask questions with interactive forms"},
					&cli.BoolFlag{Name: "force", Aliases: []string{"f"}, Value: false, Usage: "Overwrite existing files"},
					&cli.BoolFlag{Name: "dry-run", Aliases: []string{"n"}, Value: false, Usage: "Show what would be written without writing"},
				),
				Action: runInit,
			},
			{
				Name:      "list",
				Usage:     "List the categories and components of a template collection",
				ArgsUsage: "[source]",
				Flags:     commonFlags(),
				Action:    runList,
			},
		},
	}

	return app.Run(ctx, args)
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Value: "", Usage: "config file path (defaults to the user config directory)"},
		&cli.StringFlag{Name: "log-level", Aliases: []string{"l"}, Value: "", Usage: "debug, info, warn or error (overrides config)"},
	}
}

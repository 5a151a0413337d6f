package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/olimci/hinagata/pkg/config"
	"github.com/olimci/hinagata/pkg/events"
	"github.com/olimci/hinagata/pkg/scaffold"
	"github.com/urfave/cli/v3"
)

var ErrNoSource = errors.New("no source given (pass one or set defaults.source in the config)")

func runInit(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	source, target, err := parseInitArgs(cmd, cfg)
	if err != nil {
		return err
	}

	vars, err := loadVars(cfg.Variables, strings.TrimSpace(cmd.String("vars-file")), cmd.StringSlice("var"))
	if err != nil {
		return err
	}

	logger := newLogger(cfg.Defaults.LogLevel)
	collector := events.NewCollector(logHandler{logger: logger})

	s, err := scaffold.Load(ctx, source)
	if err != nil {
		return err
	}
	defer s.Close()

	logger.Debug("loaded collection", "source", source, "file", s.File, "name", s.Config.Metadata.Name)

	opts := []scaffold.Option{
		scaffold.WithVariables(vars),
		scaffold.WithForce(cmd.Bool("force") || cfg.Defaults.Force),
		scaffold.WithDryRun(cmd.Bool("dry-run")),
		scaffold.WithMaxWorkers(cfg.Defaults.MaxWorkers),
		scaffold.WithEventHandler(collector),
		scaffold.WithRender(cfg.Render),
	}
	if cmd.Bool("interactive") {
		opts = append(opts, scaffold.WithAsker(formAsker{accessible: os.Getenv("ACCESSIBLE") != ""}))
	}

	res, err := scaffold.NewScaffolder(s, opts...).Run(ctx, target)
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			logger.Warn("cancelled, nothing was written")
			return nil
		}
		return err
	}

	printer := newResultPrinter(os.Stdout)
	printer.Print(res, target)
	printer.Summary(collector.Summary())

	return nil
}

func parseInitArgs(cmd *cli.Command, cfg *config.Config) (string, string, error) {
	source := strings.TrimSpace(cfg.Defaults.Source)
	target := cfg.Defaults.Output

	switch cmd.NArg() {
	case 0:
	case 1:
		source = strings.TrimSpace(cmd.Args().Get(0))
	case 2:
		source = strings.TrimSpace(cmd.Args().Get(0))
		target = strings.TrimSpace(cmd.Args().Get(1))
	default:
		return "", "", fmt.Errorf("too many arguments (expected [source] [target])")
	}

	if source == "" {
		return "", "", ErrNoSource
	}
	if strings.TrimSpace(target) == "" {
		target = "."
	}

	return source, target, nil
}

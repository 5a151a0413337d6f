package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/olimci/hinagata/pkg/generator"
	"github.com/olimci/hinagata/pkg/scaffold"
	"github.com/olimci/hinagata/pkg/session"
	"github.com/urfave/cli/v3"
)

func runList(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	source := strings.TrimSpace(cfg.Defaults.Source)
	if cmd.NArg() > 0 {
		source = strings.TrimSpace(cmd.Args().First())
	}
	if source == "" {
		return ErrNoSource
	}

	s, err := scaffold.Load(ctx, source)
	if err != nil {
		return err
	}
	defer s.Close()

	opts, err := s.Options()
	if err != nil {
		return err
	}

	settings := scaffold.NewBuiltins(cfg.Defaults.Output, "").ToMap()
	for k, v := range cfg.Variables {
		settings[k] = v
	}
	gc := session.New(session.WithSettings(settings))

	col, err := generator.NewCollection(ctx, gc, opts)
	if err != nil {
		return err
	}

	return printCollection(ctx, s, col)
}

func printCollection(ctx context.Context, s *scaffold.Scaffold, col *generator.Collection) error {
	meta := s.Config.Metadata
	if meta.Name != "" {
		fmt.Printf("%s", meta.Name)
		if meta.Version != "" {
			fmt.Printf(" %s", meta.Version)
		}
		fmt.Println()
	}
	if meta.Description != "" {
		fmt.Println(meta.Description)
	}

	cats, err := col.Categories(ctx)
	if err != nil {
		return err
	}

	for _, cat := range cats {
		name, err := cat.DisplayName(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("\n%s (%s)\n", name, cat.Identifier())

		comps, err := cat.Components(ctx)
		if err != nil {
			return err
		}

		for _, c := range comps {
			if err := printComponent(ctx, c); err != nil {
				return fmt.Errorf("component %s: %w", c.Identifier(), err)
			}
		}
	}

	return nil
}

func printComponent(ctx context.Context, c *generator.Component) error {
	name, err := c.DisplayName(ctx)
	if err != nil {
		return err
	}
	desc, err := c.Description(ctx)
	if err != nil {
		return err
	}
	on, err := c.DefaultEnabled(ctx)
	if err != nil {
		return err
	}

	mark := "[ ]"
	if on {
		mark = "[x]"
	}

	line := fmt.Sprintf("  %s %s (%s)", mark, name, c.Identifier())
	if desc != "" {
		line += ": " + desc
	}
	fmt.Println(line)

	for _, q := range c.Questions() {
		qline := fmt.Sprintf("      ? %s (%s)", q.Name, q.Kind)
		if q.Default != nil {
			qline += fmt.Sprintf(" [default: %v]", q.Default)
		}
		fmt.Println(qline)
	}

	return nil
}

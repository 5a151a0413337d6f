package scaffold

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/olimci/hinagata/pkg/generator"
	"github.com/olimci/hinagata/pkg/iofs"
	"github.com/olimci/hinagata/pkg/session"
)

// Prompt runs the question phase: for every category one multi-select over
// its components, then the questions of each selected component in order.
// The selection is recorded under session.SelectionKey and
// session.EnabledKey.
func Prompt(ctx context.Context, gc *session.Context, col *generator.Collection) error {
	return gc.Prompt(ctx, func(ctx context.Context) error {
		cats, err := col.Categories(ctx)
		if err != nil {
			return err
		}

		for _, cat := range cats {
			if err := promptCategory(ctx, gc, col, cat); err != nil {
				return fmt.Errorf("category %s: %w", cat.Identifier(), err)
			}
		}

		return nil
	})
}

func promptCategory(ctx context.Context, gc *session.Context, col *generator.Collection, cat *generator.Category) error {
	comps, err := cat.Components(ctx)
	if err != nil {
		return err
	}
	if len(comps) == 0 {
		return nil
	}

	title, err := cat.DisplayName(ctx)
	if err != nil {
		return err
	}

	q := session.Question{
		Name:        string(session.SelectionKey(cat.Identifier())),
		Prompt:      title,
		Description: col.Question(),
		Kind:        session.MultiSelect,
	}

	defaults := make([]string, 0, len(comps))
	for _, c := range comps {
		label, err := c.DisplayName(ctx)
		if err != nil {
			return err
		}
		q.Choices = append(q.Choices, session.Choice{Label: label, Value: c.Identifier()})

		on, err := c.DefaultEnabled(ctx)
		if err != nil {
			return err
		}
		if on {
			defaults = append(defaults, c.Identifier())
		}
	}
	q.Default = defaults

	answer, err := gc.Ask(ctx, q)
	if err != nil {
		return err
	}
	selected, _ := answer.([]string)

	for _, c := range comps {
		session.SetAs(gc, session.EnabledKey(c.Identifier()), slices.Contains(selected, c.Identifier()))
	}

	for _, c := range comps {
		if !slices.Contains(selected, c.Identifier()) {
			continue
		}
		for _, q := range c.Questions() {
			if _, err := gc.Ask(ctx, q); err != nil {
				return fmt.Errorf("component %s: %w", c.Identifier(), err)
			}
		}
	}

	return nil
}

// Write runs the processor of every active file mapping of every enabled
// component, staging the generated files on gc.
func Write(ctx context.Context, gc *session.Context, col *generator.Collection) error {
	cats, err := col.Categories(ctx)
	if err != nil {
		return err
	}

	for _, cat := range cats {
		comps, err := cat.Components(ctx)
		if err != nil {
			return fmt.Errorf("category %s: %w", cat.Identifier(), err)
		}

		for _, c := range comps {
			if err := writeComponent(ctx, gc, c); err != nil {
				return fmt.Errorf("component %s: %w", c.Identifier(), err)
			}
		}
	}

	return nil
}

func writeComponent(ctx context.Context, gc *session.Context, c *generator.Component) error {
	on, err := c.Enabled(ctx)
	if err != nil || !on {
		return err
	}

	fms, err := c.FileMappings(ctx)
	if err != nil {
		return err
	}

	n := 0
	for _, fm := range fms {
		active, err := fm.Active(ctx)
		if err != nil {
			return err
		}
		if !active {
			continue
		}

		if err := fm.Processor()(ctx); err != nil {
			return err
		}
		n++
	}

	gc.Infof(c.Identifier(), "generated %d files", n)
	return nil
}

// Result describes a finished run.
type Result struct {
	// Staged holds the generated changes. They were committed unless DryRun.
	Staged    []session.Change
	Conflicts []string
	Commit    *session.CommitResult
	DryRun    bool
}

// Scaffolder runs a loaded collection into a target directory.
type Scaffolder struct {
	scaffold *Scaffold
	options  *options
}

func NewScaffolder(s *Scaffold, opts ...Option) *Scaffolder {
	return &Scaffolder{
		scaffold: s,
		options:  defaultOptions().apply(opts...),
	}
}

// Session builds the generation context of a run into target: builtins and
// variables as settings, the renderer as generator, and an asker that takes
// answers from the variables before falling back to the configured one.
func (s *Scaffolder) Session(target string) *session.Context {
	o := s.options

	name, _ := o.variables["ProjectName"].(string)
	settings := NewBuiltins(target, name).ToMap()
	maps.Copy(settings, o.variables)

	var fallback session.Asker = session.Answers(nil)
	if o.asker != nil {
		fallback = o.asker
	}

	return session.New(
		session.WithSettings(settings),
		session.WithAsker(presetAsker{preset: o.variables, next: fallback}),
		session.WithGenerator(NewRenderer(s.scaffold, o.render)),
		session.WithStage(session.NewStage(session.WithForce(o.force), session.WithMaxWorkers(o.maxWorkers))),
		session.WithEventHandler(o.events),
	)
}

// Run prompts, generates every selected file and commits the result into
// target.
func (s *Scaffolder) Run(ctx context.Context, target string) (*Result, error) {
	opts, err := s.scaffold.Options()
	if err != nil {
		return nil, fmt.Errorf("converting %s: %w", s.scaffold.File, err)
	}

	gc := s.Session(target)

	col, err := generator.NewCollection(ctx, gc, opts)
	if err != nil {
		return nil, err
	}

	if err := Prompt(ctx, gc, col); err != nil {
		return nil, err
	}
	if err := Write(ctx, gc, col); err != nil {
		return nil, err
	}

	stage := gc.Stage()
	result := &Result{
		Staged:    stage.Changes(),
		Conflicts: stage.Conflicts(),
		DryRun:    s.options.dryRun,
	}

	for _, p := range result.Conflicts {
		gc.Warnf(p, "written by more than one file mapping, the last one wins")
	}

	if s.options.dryRun {
		return result, nil
	}

	commit, err := stage.Commit(ctx, iofs.FromOS(target))
	if err != nil {
		return result, err
	}
	result.Commit = commit

	return result, nil
}

type presetAsker struct {
	preset map[string]any
	next   session.Asker
}

func (a presetAsker) Ask(ctx context.Context, q session.Question) (any, error) {
	if v, ok := a.preset[q.Name]; ok {
		return session.Coerce(q, v)
	}
	return a.next.Ask(ctx, q)
}

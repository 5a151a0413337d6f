package cmd

import (
	"context"
	"fmt"
	"slices"

	"github.com/charmbracelet/huh"
	"github.com/olimci/hinagata/pkg/session"
)

// formAsker answers questions with huh forms, one form per question.
type formAsker struct {
	accessible bool
}

func (a formAsker) Ask(ctx context.Context, q session.Question) (any, error) {
	def, err := session.Coerce(q, q.Default)
	if err != nil {
		return nil, err
	}

	switch q.Kind {
	case session.Confirm:
		v := def.(bool)
		field := huh.NewConfirm().Title(q.Title()).Description(q.Description).Value(&v)
		if err := a.run(ctx, field); err != nil {
			return nil, err
		}
		return v, nil

	case session.Select:
		v := def.(string)
		field := huh.NewSelect[string]().Title(q.Title()).Description(q.Description).
			Options(options(q, nil)...).
			Value(&v)
		if err := a.run(ctx, field); err != nil {
			return nil, err
		}
		return v, nil

	case session.MultiSelect:
		v := def.([]string)
		field := huh.NewMultiSelect[string]().Title(q.Title()).Description(q.Description).
			Options(options(q, v)...).
			Value(&v)
		if err := a.run(ctx, field); err != nil {
			return nil, err
		}
		return v, nil

	case session.Input:
		v := def.(string)
		field := huh.NewInput().Title(q.Title()).Description(q.Description).Value(&v)
		if err := a.run(ctx, field); err != nil {
			return nil, err
		}
		return v, nil

	default:
		return nil, fmt.Errorf("unsupported question kind %s", q.Kind)
	}
}

func (a formAsker) run(ctx context.Context, field huh.Field) error {
	return huh.NewForm(huh.NewGroup(field)).
		WithAccessible(a.accessible).
		RunWithContext(ctx)
}

func options(q session.Question, selected []string) []huh.Option[string] {
	out := make([]huh.Option[string], 0, len(q.Choices))
	for _, c := range q.Choices {
		label := c.Label
		if label == "" {
			label = c.Value
		}
		out = append(out, huh.NewOption(label, c.Value).Selected(slices.Contains(selected, c.Value)))
	}
	return out
}

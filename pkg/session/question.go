package session

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

type QuestionKind uint8

const (
	Input QuestionKind = iota
	Confirm
	Select
	MultiSelect
)

func (k QuestionKind) String() string {
	switch k {
	case Input:
		return "input"
	case Confirm:
		return "confirm"
	case Select:
		return "select"
	case MultiSelect:
		return "multiselect"
	default:
		return fmt.Sprintf("QuestionKind(%d)", uint8(k))
	}
}

func ParseQuestionKind(s string) (QuestionKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "input", "text":
		return Input, nil
	case "confirm", "bool":
		return Confirm, nil
	case "select":
		return Select, nil
	case "multiselect", "multi-select":
		return MultiSelect, nil
	default:
		return 0, fmt.Errorf("unknown question kind %q", s)
	}
}

// Choice is one selectable answer of a Select or MultiSelect question.
type Choice struct {
	Label string
	Value string
}

// Question describes a setting to ask for. The answer is stored under Name:
// a string for Input and Select, a bool for Confirm, a []string for
// MultiSelect.
type Question struct {
	Name        string
	Prompt      string
	Description string
	Kind        QuestionKind
	Default     any
	Choices     []Choice
}

// Title is the text shown to the user.
func (q Question) Title() string {
	if q.Prompt != "" {
		return q.Prompt
	}
	return q.Name
}

type Asker interface {
	Ask(ctx context.Context, q Question) (any, error)
}

type AskerFunc func(ctx context.Context, q Question) (any, error)

func (f AskerFunc) Ask(ctx context.Context, q Question) (any, error) {
	return f(ctx, q)
}

// Answers is a non-interactive Asker. Questions without a recorded answer
// get their default.
type Answers map[string]any

func (a Answers) Ask(ctx context.Context, q Question) (any, error) {
	if v, ok := a[q.Name]; ok {
		return Coerce(q, v)
	}
	return Coerce(q, q.Default)
}

// Coerce converts v into the answer type of q.
func Coerce(q Question, v any) (any, error) {
	switch q.Kind {
	case Confirm:
		switch b := v.(type) {
		case nil:
			return false, nil
		case bool:
			return b, nil
		case string:
			if strings.TrimSpace(b) == "" {
				return false, nil
			}
			parsed, err := strconv.ParseBool(strings.TrimSpace(b))
			if err != nil {
				return nil, fmt.Errorf("%s: %q is not a boolean", q.Name, b)
			}
			return parsed, nil
		default:
			return nil, fmt.Errorf("%s: cannot use %T as a boolean", q.Name, v)
		}

	case MultiSelect:
		var out []string
		switch vs := v.(type) {
		case nil:
			out = []string{}
		case []string:
			out = slices.Clone(vs)
		case []any:
			out = make([]string, 0, len(vs))
			for _, x := range vs {
				out = append(out, fmt.Sprint(x))
			}
		case string:
			out = splitList(vs)
		default:
			return nil, fmt.Errorf("%s: cannot use %T as a list", q.Name, v)
		}
		for _, s := range out {
			if !q.hasChoice(s) {
				return nil, fmt.Errorf("%s: %q is not one of the choices", q.Name, s)
			}
		}
		return out, nil

	case Select:
		s := ""
		if v != nil {
			s = fmt.Sprint(v)
		}
		if s == "" && len(q.Choices) > 0 {
			s = q.Choices[0].Value
		}
		if !q.hasChoice(s) {
			return nil, fmt.Errorf("%s: %q is not one of the choices", q.Name, s)
		}
		return s, nil

	default:
		if v == nil {
			return "", nil
		}
		return fmt.Sprint(v), nil
	}
}

func (q Question) hasChoice(value string) bool {
	if len(q.Choices) == 0 {
		return true
	}
	return slices.ContainsFunc(q.Choices, func(c Choice) bool {
		return c.Value == value
	})
}

func splitList(s string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

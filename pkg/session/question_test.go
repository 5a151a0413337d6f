package session

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAnswersCoercion(t *testing.T) {
	ctx := context.Background()
	choices := []Choice{{Label: "Postgres", Value: "pg"}, {Label: "SQLite", Value: "sqlite"}}

	tests := []struct {
		name    string
		answers Answers
		q       Question
		want    any
		wantErr bool
	}{
		{name: "input default", q: Question{Name: "n", Default: "x"}, want: "x"},
		{name: "input missing", q: Question{Name: "n"}, want: ""},
		{name: "input number", answers: Answers{"n": 3}, q: Question{Name: "n"}, want: "3"},
		{name: "confirm string", answers: Answers{"c": "yes"}, q: Question{Name: "c", Kind: Confirm}, wantErr: true},
		{name: "confirm true", answers: Answers{"c": "true"}, q: Question{Name: "c", Kind: Confirm}, want: true},
		{name: "confirm default", q: Question{Name: "c", Kind: Confirm, Default: true}, want: true},
		{name: "select first", q: Question{Name: "s", Kind: Select, Choices: choices}, want: "pg"},
		{name: "select answer", answers: Answers{"s": "sqlite"}, q: Question{Name: "s", Kind: Select, Choices: choices}, want: "sqlite"},
		{name: "select unknown", answers: Answers{"s": "mysql"}, q: Question{Name: "s", Kind: Select, Choices: choices}, wantErr: true},
		{name: "multiselect csv", answers: Answers{"m": "pg, sqlite"}, q: Question{Name: "m", Kind: MultiSelect, Choices: choices}, want: []string{"pg", "sqlite"}},
		{name: "multiselect any", answers: Answers{"m": []any{"sqlite"}}, q: Question{Name: "m", Kind: MultiSelect, Choices: choices}, want: []string{"sqlite"}},
		{name: "multiselect none", q: Question{Name: "m", Kind: MultiSelect, Choices: choices}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.answers.Ask(ctx, tt.q)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("answer mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseQuestionKind(t *testing.T) {
	for in, want := range map[string]QuestionKind{
		"":             Input,
		"Confirm":      Confirm,
		"select":       Select,
		"multi-select": MultiSelect,
	} {
		got, err := ParseQuestionKind(in)
		if err != nil || got != want {
			t.Errorf("ParseQuestionKind(%q) = %v, %v; want %v", in, got, err, want)
		}
	}

	if _, err := ParseQuestionKind("slider"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

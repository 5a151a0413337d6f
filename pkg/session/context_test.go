package session

import (
	"context"
	"errors"
	"testing"

	"github.com/olimci/hinagata/pkg/events"
)

func TestTypedKeys(t *testing.T) {
	gc := New(WithSettings(map[string]any{"name": "demo"}))

	name := K[string]("name")
	if got := GetAs(gc, name); got != "demo" {
		t.Fatalf("GetAs(name) = %q, want demo", got)
	}

	SetAs(gc, EnabledKey("api"), true)
	if on, ok := Lookup(gc, EnabledKey("api")); !ok || !on {
		t.Fatalf("Lookup(components.api) = %v, %v", on, ok)
	}

	gc.Set("port", "8080")
	if _, ok := Lookup(gc, K[int]("port")); ok {
		t.Fatal("Lookup should fail when the stored type differs")
	}

	settings := gc.Settings()
	settings["name"] = "changed"
	if got := GetAs(gc, name); got != "demo" {
		t.Fatalf("Settings() must return a copy, context now has %q", got)
	}
}

func TestAskOnlyDuringPrompt(t *testing.T) {
	ctx := context.Background()
	gc := New(WithAsker(Answers{"name": "svc"}))
	q := Question{Name: "name", Kind: Input}

	if _, err := gc.Ask(ctx, q); !errors.Is(err, ErrNotPrompting) {
		t.Fatalf("Ask outside prompt: err = %v, want ErrNotPrompting", err)
	}

	err := gc.Prompt(ctx, func(ctx context.Context) error {
		if !gc.Prompting() {
			t.Error("Prompting() should be true inside Prompt")
		}
		answer, err := gc.Ask(ctx, q)
		if err != nil {
			return err
		}
		if answer != "svc" {
			t.Errorf("answer = %v, want svc", answer)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Prompt: %v", err)
	}

	if gc.Prompting() {
		t.Fatal("Prompting() should be false after Prompt returns")
	}
	if got := GetAs(gc, K[string]("name")); got != "svc" {
		t.Fatalf("answer not recorded, got %q", got)
	}
}

func TestPromptRejectsNesting(t *testing.T) {
	ctx := context.Background()
	gc := New()

	err := gc.Prompt(ctx, func(ctx context.Context) error {
		return gc.Prompt(ctx, func(context.Context) error { return nil })
	})
	if err == nil {
		t.Fatal("nested Prompt should fail")
	}
}

func TestGenerateDelegates(t *testing.T) {
	ctx := context.Background()

	if err := New().Generate(ctx, Mapping{}); !errors.Is(err, ErrNoGenerator) {
		t.Fatalf("Generate without generator: %v", err)
	}

	var got Mapping
	collector := events.NewCollector(nil)
	gc := New(
		WithEventHandler(collector),
		WithGenerator(GeneratorFunc(func(ctx context.Context, gc *Context, m Mapping) error {
			got = m
			gc.Infof(m.Destination, "generated")
			return gc.Stage().Write(m.Destination, []byte("x"))
		})),
	)

	if err := gc.Generate(ctx, Mapping{Source: "a.tmpl", Destination: "a.txt"}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got.Source != "a.tmpl" || got.Destination != "a.txt" {
		t.Fatalf("generator saw %+v", got)
	}
	if gc.Stage().Len() != 1 {
		t.Fatalf("stage has %d changes, want 1", gc.Stage().Len())
	}
	if len(collector.Events) != 1 || collector.Events[0].Source != "a.txt" {
		t.Fatalf("events = %+v", collector.Events)
	}
}

func TestZeroContextSettingsAndEvents(t *testing.T) {
	var gc Context

	gc.Set("name", "demo")
	if v, ok := gc.Get("name"); !ok || v != "demo" {
		t.Fatalf("Get(name) = %v, %v", v, ok)
	}
	gc.Infof("test", "dropped %d", 1)

	if err := gc.Generate(context.Background(), Mapping{Source: "a", Destination: "b"}); !errors.Is(err, ErrNoGenerator) {
		t.Fatalf("Generate error = %v, want %v", err, ErrNoGenerator)
	}
}

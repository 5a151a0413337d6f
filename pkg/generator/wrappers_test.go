package generator

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/olimci/hinagata/pkg/collection"
	"github.com/olimci/hinagata/pkg/resolve"
	"github.com/olimci/hinagata/pkg/session"
)

func TestWrappersReResolveOnEveryAccess(t *testing.T) {
	ctx := context.Background()
	gc := session.New(session.WithSettings(map[string]any{"name": "api"}))

	opts := &ComponentOptions{
		Identifier: "svc",
		DisplayName: resolve.Computed(func(ctx context.Context, gc *session.Context, owner any) (string, error) {
			return "Service " + session.GetAs(gc, session.K[string]("name")), nil
		}),
	}
	c := newComponent(gc, opts)

	if got, _ := c.DisplayName(ctx); got != "Service api" {
		t.Fatalf("DisplayName = %q", got)
	}
	gc.Set("name", "worker")
	if got, _ := c.DisplayName(ctx); got != "Service worker" {
		t.Fatalf("DisplayName after change = %q", got)
	}
}

func TestComputedFieldSeesOwner(t *testing.T) {
	ctx := context.Background()
	opts := &ComponentOptions{Identifier: "docker"}
	opts.DisplayName = resolve.Computed(func(ctx context.Context, gc *session.Context, owner any) (string, error) {
		return "Enable " + owner.(*ComponentOptions).Identifier, nil
	})

	got, err := newComponent(session.New(), opts).DisplayName(ctx)
	if err != nil || got != "Enable docker" {
		t.Fatalf("DisplayName = %q, %v", got, err)
	}
}

func TestComponentEnabled(t *testing.T) {
	ctx := context.Background()
	gc := session.New()
	c := newComponent(gc, &ComponentOptions{Identifier: "ci", DefaultEnabled: resolve.Literal(true)})

	if on, _ := c.Enabled(ctx); !on {
		t.Fatal("Enabled should fall back to DefaultEnabled")
	}
	session.SetAs(gc, session.EnabledKey("ci"), false)
	if on, _ := c.Enabled(ctx); on {
		t.Fatal("Enabled should follow the recorded selection")
	}

	bare := newComponent(gc, &ComponentOptions{Identifier: "other"})
	if on, _ := bare.DefaultEnabled(ctx); on {
		t.Fatal("unset DefaultEnabled should be false")
	}
}

func TestComponentQuestionsAreCopied(t *testing.T) {
	opts := &ComponentOptions{
		Identifier: "db",
		Questions: []session.Question{{
			Name:    "driver",
			Kind:    session.Select,
			Choices: []session.Choice{{Label: "Postgres", Value: "pg"}},
		}},
	}

	qs := newComponent(session.New(), opts).Questions()
	qs[0].Choices[0].Value = "mysql"

	if opts.Questions[0].Choices[0].Value != "pg" {
		t.Fatal("Questions must not alias the options")
	}
}

func TestComponentFileMappingsFollowContext(t *testing.T) {
	ctx := context.Background()
	gc := session.New()

	opts := &ComponentOptions{
		Identifier:  "docker",
		DisplayName: resolve.Literal("Docker"),
		FileMappings: resolve.Computed(func(ctx context.Context, gc *session.Context, owner any) ([]*FileMappingOptions, error) {
			fms := []*FileMappingOptions{{Source: resolve.Literal("Dockerfile"), Destination: resolve.Literal("Dockerfile")}}
			if session.GetAs(gc, session.K[bool]("compose")) {
				fms = append(fms, &FileMappingOptions{Source: resolve.Literal("compose.yaml"), Destination: resolve.Literal("compose.yaml")})
			}
			return fms, nil
		}),
	}
	c := newComponent(gc, opts)

	got, err := c.FileMappings(ctx)
	if err != nil || len(got) != 1 {
		t.Fatalf("FileMappings = %d, %v; want 1", len(got), err)
	}

	gc.Set("compose", true)
	got, err = c.FileMappings(ctx)
	if err != nil || len(got) != 2 {
		t.Fatalf("FileMappings after change = %d, %v; want 2", len(got), err)
	}
}

func TestFileMappingProcessorDelegatesToGenerator(t *testing.T) {
	ctx := context.Background()

	var got []session.Mapping
	gc := session.New(
		session.WithSettings(map[string]any{"name": "api"}),
		session.WithGenerator(session.GeneratorFunc(func(ctx context.Context, gc *session.Context, m session.Mapping) error {
			got = append(got, m)
			return nil
		})),
	)

	fm := newFileMapping(gc, &FileMappingOptions{
		Source: resolve.Literal("main.go.tmpl"),
		Destination: resolve.Computed(func(ctx context.Context, gc *session.Context, owner any) (string, error) {
			return "cmd/" + session.GetAs(gc, session.K[string]("name")) + "/main.go", nil
		}),
	})

	proc := fm.Processor()
	if err := proc(ctx); err != nil {
		t.Fatalf("processor: %v", err)
	}
	gc.Set("name", "worker")
	if err := proc(ctx); err != nil {
		t.Fatalf("processor: %v", err)
	}

	want := []session.Mapping{
		{Source: "main.go.tmpl", Destination: "cmd/api/main.go"},
		{Source: "main.go.tmpl", Destination: "cmd/worker/main.go"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mappings mismatch (-want +got):\n%s", diff)
	}
}

func TestFileMappingCustomProcessor(t *testing.T) {
	ctx := context.Background()
	gc := session.New()

	ran := false
	fm := newFileMapping(gc, &FileMappingOptions{
		Source:      resolve.Literal("a"),
		Destination: resolve.Literal("b"),
		Processor: resolve.Literal(ProcessorFunc(func(context.Context) error {
			ran = true
			return nil
		})),
	})

	if err := fm.Processor()(ctx); err != nil {
		t.Fatalf("processor: %v", err)
	}
	if !ran {
		t.Fatal("custom processor was not called")
	}
}

func TestFileMappingWithoutGenerator(t *testing.T) {
	fm := newFileMapping(session.New(), &FileMappingOptions{Source: resolve.Literal("a"), Destination: resolve.Literal("b")})

	if err := fm.Processor()(context.Background()); !errors.Is(err, session.ErrNoGenerator) {
		t.Fatalf("processor error = %v, want %v", err, session.ErrNoGenerator)
	}
}

func TestFileMappingActive(t *testing.T) {
	ctx := context.Background()
	gc := session.New()

	always := newFileMapping(gc, &FileMappingOptions{})
	if on, _ := always.Active(ctx); !on {
		t.Fatal("mapping without condition should be active")
	}

	cond := newFileMapping(gc, &FileMappingOptions{
		When: resolve.Computed(func(ctx context.Context, gc *session.Context, owner any) (bool, error) {
			return session.GetAs(gc, session.EnabledKey("ci")), nil
		}),
	})
	if on, _ := cond.Active(ctx); on {
		t.Fatal("condition should be false before selection")
	}
	session.SetAs(gc, session.EnabledKey("ci"), true)
	if on, _ := cond.Active(ctx); !on {
		t.Fatal("condition should follow the session")
	}
}

func TestCollectionWalk(t *testing.T) {
	ctx := context.Background()
	gc := session.New()

	opts := &CollectionOptions{
		Question: "Which features?",
		Categories: resolve.Literal([]*CategoryOptions{{
			Identifier:  "infra",
			DisplayName: resolve.Literal("Infrastructure"),
			Components:  resolve.Literal([]*ComponentOptions{component("docker", "Docker")}),
		}}),
	}

	col, err := NewCollection(ctx, gc, opts)
	if err != nil {
		t.Fatalf("NewCollection: %v", err)
	}
	if col.Question() != "Which features?" {
		t.Fatalf("Question = %q", col.Question())
	}

	cats, err := col.Categories(ctx)
	if err != nil || len(cats) != 1 {
		t.Fatalf("Categories = %d, %v", len(cats), err)
	}
	comps, err := cats[0].Components(ctx)
	if err != nil {
		t.Fatalf("Components: %v", err)
	}
	if diff := cmp.Diff([]string{"docker"}, componentIDs(t, comps)); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}

	ed := col.CategoryEditor()
	ed.Set(&CategoryOptions{Identifier: "infra", DisplayName: resolve.Literal("Infra v2")})
	cats, _ = ed.Items(ctx)
	if name, _ := cats[0].DisplayName(ctx); name != "Infra v2" {
		t.Fatalf("DisplayName after Set = %q", name)
	}
}

func TestNewCollectionRequiresQuestion(t *testing.T) {
	_, err := NewCollection(context.Background(), session.New(), &CollectionOptions{})
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("NewCollection error = %v, want configuration error", err)
	}
}

func TestCategoryEditorFromAsyncSource(t *testing.T) {
	ctx := context.Background()
	gc := session.New()
	src := collection.Defer(func(ctx context.Context) *resolve.Deferred[[]*CategoryOptions] {
		return resolve.Go(func() ([]*CategoryOptions, error) {
			return []*CategoryOptions{{Identifier: "x", DisplayName: resolve.Literal("X")}}, nil
		})
	})

	cats, err := NewCategoryEditor(gc, src).Items(ctx)
	if err != nil || len(cats) != 1 || cats[0].Identifier() != "x" {
		t.Fatalf("Items = %v, %v", cats, err)
	}
}

package scaffold

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/olimci/hinagata/pkg/config"
	"github.com/olimci/hinagata/pkg/session"
)

func newTestRenderer(t *testing.T, files fstest.MapFS) *Renderer {
	t.Helper()
	files["hinagata.toml"] = &fstest.MapFile{Data: []byte("templates = [\"*.tmpl\"]\n")}
	return NewRenderer(load(t, files), config.DefaultConfig().Render)
}

func TestRendererPipelines(t *testing.T) {
	r := newTestRenderer(t, fstest.MapFS{
		"style.css":  {Data: []byte("p {  color : {{ .color }} ; }\n")},
		"notes.md":   {Data: []byte("*{{ .title | upper }}*\n")},
		"plain.tmpl": {Data: []byte("{{ .title }}")},
		"raw.txt":    {Data: []byte("{{ .title }}")},
	})

	tests := []struct {
		name string
		m    session.Mapping
		want string
	}{
		{"default template", session.Mapping{Source: "plain.tmpl", Destination: "plain"}, "Hello"},
		{"default copy", session.Mapping{Source: "raw.txt", Destination: "raw.txt"}, "{{ .title }}"},
		{"markdown", session.Mapping{Source: "notes.md", Destination: "notes.html", Pipeline: []string{"template", "markdown"}}, "<p><em>HELLO</em></p>\n"},
		{"minify", session.Mapping{Source: "style.css", Destination: "style.css", Pipeline: []string{"template", "minify"}}, "p{color:red}"},
		{"minify skips unknown types", session.Mapping{Source: "raw.txt", Destination: "raw.txt", Pipeline: []string{"minify"}}, "{{ .title }}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gc := session.New(session.WithSettings(map[string]any{"title": "Hello", "color": "red"}), session.WithGenerator(r))
			if err := gc.Generate(context.Background(), tt.m); err != nil {
				t.Fatalf("Generate: %v", err)
			}

			changes := gc.Stage().Changes()
			if len(changes) != 1 {
				t.Fatalf("staged %d changes, want 1", len(changes))
			}
			if diff := cmp.Diff(tt.want, string(changes[0].Content)); diff != "" {
				t.Fatalf("content mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRendererErrors(t *testing.T) {
	r := newTestRenderer(t, fstest.MapFS{"a.txt": {Data: []byte("a")}})
	ctx := context.Background()
	gc := session.New(session.WithGenerator(r))

	if err := gc.Generate(ctx, session.Mapping{Source: "a.txt", Destination: "a", Pipeline: []string{"shout"}}); !errors.Is(err, ErrUnknownProcessor) {
		t.Fatalf("unknown processor error = %v", err)
	}
	if err := gc.Generate(ctx, session.Mapping{Source: "missing.txt", Destination: "a"}); err == nil {
		t.Fatal("missing source should fail")
	}
	if err := gc.Generate(ctx, session.Mapping{Source: "a.txt", Destination: "../escape"}); !errors.Is(err, session.ErrUnsafePath) {
		t.Fatalf("unsafe destination error = %v", err)
	}
}

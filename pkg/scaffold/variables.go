package scaffold

import (
	"fmt"
	"maps"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"text/template"
	"time"
	"unicode"

	"github.com/olimci/hinagata/pkg/session"
)

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
	dashRuns     = regexp.MustCompile(`-+`)
)

// Builtins are the settings every run starts with. User variables override
// them.
type Builtins struct {
	Year        string
	Directory   string
	ProjectName string
	ProjectSlug string
}

// NewBuiltins derives the builtin settings from the target directory. An
// empty name is derived from the directory.
func NewBuiltins(dir, name string) Builtins {
	if name == "" {
		name = deriveProjectName(dir)
	}

	return Builtins{
		Year:        time.Now().Format("2006"),
		Directory:   dir,
		ProjectName: name,
		ProjectSlug: toSlug(name),
	}
}

func (b Builtins) ToMap() map[string]any {
	return map[string]any{
		"Year":        b.Year,
		"Directory":   b.Directory,
		"ProjectName": b.ProjectName,
		"ProjectSlug": b.ProjectSlug,
	}
}

func deriveProjectName(dir string) string {
	if dir == "" || dir == "." {
		if abs, err := filepath.Abs("."); err == nil {
			dir = abs
		}
	}

	name := filepath.Base(dir)
	if name == "." || name == "/" || name == "" {
		return "My Project"
	}

	name = strings.ReplaceAll(name, "-", " ")
	name = strings.ReplaceAll(name, "_", " ")

	return toTitleCase(name)
}

func toSlug(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "_", " ")
	s = nonSlugChars.ReplaceAllString(s, "-")
	s = dashRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

func toTitleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			runes := []rune(word)
			runes[0] = unicode.ToUpper(runes[0])
			words[i] = string(runes)
		}
	}
	return strings.Join(words, " ")
}

// funcs are available in templated strings and in template sources.
var funcs = template.FuncMap{
	"slug":  func(s string) string { return toSlug(s) },
	"title": func(s string) string { return toTitleCase(s) },
	"lower": strings.ToLower,
	"upper": strings.ToUpper,
	"trim":  strings.TrimSpace,
	"default": func(def, v any) any {
		if isEmpty(v) {
			return def
		}
		return v
	},
	"has": func(list any, v string) bool {
		switch l := list.(type) {
		case []string:
			return slices.Contains(l, v)
		case []any:
			return slices.ContainsFunc(l, func(x any) bool { return fmt.Sprint(x) == v })
		default:
			return false
		}
	},
}

func isEmpty(v any) bool {
	switch v := v.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case bool:
		return !v
	case []string:
		return len(v) == 0
	case []any:
		return len(v) == 0
	default:
		return false
	}
}

// templateData is the data templates execute against: the session settings,
// with dotted keys also reachable as nested maps so that a setting stored
// under "components.api" reads as {{ .components.api }}.
func templateData(gc *session.Context) map[string]any {
	settings := gc.Settings()

	data := make(map[string]any, len(settings)+2)
	data["components"] = map[string]any{}
	data["categories"] = map[string]any{}

	maps.Copy(data, settings)

	for k, v := range settings {
		if strings.Contains(k, ".") {
			nest(data, strings.Split(k, "."), v)
		}
	}

	return data
}

func nest(m map[string]any, keys []string, v any) {
	for _, k := range keys[:len(keys)-1] {
		next, ok := m[k].(map[string]any)
		if !ok {
			if _, taken := m[k]; taken {
				return
			}
			next = map[string]any{}
			m[k] = next
		}
		m = next
	}

	last := keys[len(keys)-1]
	if _, taken := m[last]; !taken {
		m[last] = v
	}
}

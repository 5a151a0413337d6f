package generator

import (
	"github.com/olimci/hinagata/pkg/collection"
	"github.com/olimci/hinagata/pkg/session"
)

// ComponentEditor keeps one component per identifier.
type ComponentEditor struct {
	*Editor[*ComponentOptions, *Component]
	unique *collection.UniqueEditor[*ComponentOptions, string]
}

func NewComponentEditor(gc *session.Context, src collection.Source[*ComponentOptions]) *ComponentEditor {
	u := collection.NewUnique(src, (*ComponentOptions).Identity)
	return &ComponentEditor{
		Editor: NewEditor(gc, u, newComponent),
		unique: u,
	}
}

// Set adds opts, replacing any component with the same identifier.
func (e *ComponentEditor) Set(opts *ComponentOptions) {
	e.unique.Set(opts.Identity(), opts)
}

func (e *ComponentEditor) Delete(identifier string) {
	e.unique.Delete(identifier)
}

// CategoryEditor keeps one category per identifier.
type CategoryEditor struct {
	*Editor[*CategoryOptions, *Category]
	unique *collection.UniqueEditor[*CategoryOptions, string]
}

func NewCategoryEditor(gc *session.Context, src collection.Source[*CategoryOptions]) *CategoryEditor {
	u := collection.NewUnique(src, (*CategoryOptions).Identity)
	return &CategoryEditor{
		Editor: NewEditor(gc, u, newCategory),
		unique: u,
	}
}

// Set adds opts, replacing any category with the same identifier.
func (e *CategoryEditor) Set(opts *CategoryOptions) {
	e.unique.Set(opts.Identity(), opts)
}

func (e *CategoryEditor) Delete(identifier string) {
	e.unique.Delete(identifier)
}

// FileMappingEditor allows duplicates; two mappings writing the same
// destination are reported by the stage at write time.
type FileMappingEditor struct {
	*Editor[*FileMappingOptions, *FileMapping]
}

func NewFileMappingEditor(gc *session.Context, src collection.Source[*FileMappingOptions]) *FileMappingEditor {
	return &FileMappingEditor{
		Editor: NewEditor(gc, collection.FromSource(src), newFileMapping),
	}
}

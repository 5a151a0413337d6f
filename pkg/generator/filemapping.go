package generator

import (
	"context"

	"github.com/olimci/hinagata/pkg/session"
)

// FileMapping is the resolved view of a FileMappingOptions record.
type FileMapping struct {
	options *FileMappingOptions
	gc      *session.Context
}

func newFileMapping(gc *session.Context, opts *FileMappingOptions) *FileMapping {
	return &FileMapping{options: opts, gc: gc}
}

func (f *FileMapping) Options() *FileMappingOptions {
	return f.options
}

func (f *FileMapping) Source(ctx context.Context) (string, error) {
	return f.options.Source.Resolve(ctx, f.gc, f.options)
}

func (f *FileMapping) Destination(ctx context.Context) (string, error) {
	return f.options.Destination.Resolve(ctx, f.gc, f.options)
}

// Active reports whether the mapping should run. Mappings without a When
// condition are always active.
func (f *FileMapping) Active(ctx context.Context) (bool, error) {
	if !f.options.When.IsSet() {
		return true, nil
	}
	return f.options.When.Resolve(ctx, f.gc, f.options)
}

// Processor returns the function generating this mapping's file. Each call
// of the returned function resolves the paths again, then runs the record's
// own processor or hands the paths to the session's generator.
func (f *FileMapping) Processor() ProcessorFunc {
	return func(ctx context.Context) error {
		src, err := f.Source(ctx)
		if err != nil {
			return err
		}
		dst, err := f.Destination(ctx)
		if err != nil {
			return err
		}

		if f.options.Processor.IsSet() {
			proc, err := f.options.Processor.Resolve(ctx, f.gc, f.options)
			if err != nil {
				return err
			}
			if proc != nil {
				return proc(ctx)
			}
		}

		return f.gc.Generate(ctx, session.Mapping{Source: src, Destination: dst})
	}
}

package generator

import (
	"context"
	"slices"

	"github.com/olimci/hinagata/pkg/resolve"
	"github.com/olimci/hinagata/pkg/session"
)

// ProcessorFunc generates one file. It may be called any number of times.
type ProcessorFunc func(ctx context.Context) error

// Record is the contract every options record fulfils so it can be checked
// when it is instantiated. Implementations must accept a nil receiver.
type Record interface {
	// Kind names the record type in errors.
	Kind() string
	// Identity is a human readable identifier for errors, possibly empty.
	Identity() string
	// Fields lists the resolvable leaves to resolve and validate.
	Fields() []resolve.Field
}

// ComponentOptions describes an independently toggleable generation unit.
type ComponentOptions struct {
	Identifier     string
	DisplayName    resolve.Value[string]
	Description    resolve.Value[string]
	DefaultEnabled resolve.Value[bool]
	Questions      []session.Question
	FileMappings   resolve.Value[[]*FileMappingOptions]
}

func (o *ComponentOptions) Kind() string { return "component" }

func (o *ComponentOptions) Identity() string {
	if o == nil {
		return ""
	}
	return o.Identifier
}

func (o *ComponentOptions) Fields() []resolve.Field {
	if o == nil {
		o = &ComponentOptions{}
	}
	return []resolve.Field{
		resolve.Require("identifier", resolve.Literal(o.Identifier)),
		resolve.Require("display name", o.DisplayName),
		resolve.Optional("description", o.Description),
		resolve.Optional("default enabled", o.DefaultEnabled),
	}
}

// CategoryOptions groups components presented together.
type CategoryOptions struct {
	Identifier  string
	DisplayName resolve.Value[string]
	Components  resolve.Value[[]*ComponentOptions]
}

func (o *CategoryOptions) Kind() string { return "category" }

func (o *CategoryOptions) Identity() string {
	if o == nil {
		return ""
	}
	return o.Identifier
}

func (o *CategoryOptions) Fields() []resolve.Field {
	if o == nil {
		o = &CategoryOptions{}
	}
	return []resolve.Field{
		resolve.Require("identifier", resolve.Literal(o.Identifier)),
		resolve.Require("display name", o.DisplayName),
	}
}

// CollectionOptions is the root of a scaffolding configuration.
type CollectionOptions struct {
	Question   string
	Categories resolve.Value[[]*CategoryOptions]
}

func (o *CollectionOptions) Kind() string { return "collection" }

func (o *CollectionOptions) Identity() string { return "" }

func (o *CollectionOptions) Fields() []resolve.Field {
	if o == nil {
		o = &CollectionOptions{}
	}
	return []resolve.Field{
		resolve.Require("question", resolve.Literal(o.Question)),
	}
}

// FileMappingOptions describes how one generated file is produced. When
// Processor is unset the session's generator produces the content.
type FileMappingOptions struct {
	Source      resolve.Value[string]
	Destination resolve.Value[string]
	When        resolve.Value[bool]
	Processor   resolve.Value[ProcessorFunc]
}

func (o *FileMappingOptions) Kind() string { return "file mapping" }

func (o *FileMappingOptions) Identity() string { return "" }

func (o *FileMappingOptions) Fields() []resolve.Field {
	if o == nil {
		o = &FileMappingOptions{}
	}
	return []resolve.Field{
		resolve.Require("source", o.Source),
		resolve.Require("destination", o.Destination),
		resolve.Optional("when", o.When),
		resolve.Optional("processor", o.Processor),
	}
}

func cloneQuestions(qs []session.Question) []session.Question {
	out := slices.Clone(qs)
	for i := range out {
		out[i].Choices = slices.Clone(out[i].Choices)
	}
	return out
}

package scaffold

// CollectionCfg is the decoded form of a hinagata.toml collection file.
type CollectionCfg struct {
	Metadata      MetadataCfg   `toml:"metadata" yaml:"metadata" json:"metadata"`
	Question      string        `toml:"question" yaml:"question" json:"question"`
	Templates     []string      `toml:"templates" yaml:"templates" json:"templates"`
	StripSuffixes []string      `toml:"strip_suffixes" yaml:"strip_suffixes" json:"strip_suffixes"`
	Categories    []CategoryCfg `toml:"categories" yaml:"categories" json:"categories"`
}

type MetadataCfg struct {
	Name            string `toml:"name" yaml:"name" json:"name"`
	Description     string `toml:"description" yaml:"description" json:"description"`
	Version         string `toml:"version" yaml:"version" json:"version"`
	HinagataVersion string `toml:"hinagata_version" yaml:"hinagata_version" json:"hinagata_version"`
}

type CategoryCfg struct {
	ID         string         `toml:"id" yaml:"id" json:"id"`
	Name       string         `toml:"name" yaml:"name" json:"name"`
	Components []ComponentCfg `toml:"components" yaml:"components" json:"components"`
}

// ComponentCfg describes one component. Default is a bool or a string that
// renders to one.
type ComponentCfg struct {
	ID          string        `toml:"id" yaml:"id" json:"id"`
	Name        string        `toml:"name" yaml:"name" json:"name"`
	Description string        `toml:"description" yaml:"description" json:"description"`
	Default     any           `toml:"default" yaml:"default" json:"default"`
	Questions   []QuestionCfg `toml:"questions" yaml:"questions" json:"questions"`
	Files       []FileCfg     `toml:"files" yaml:"files" json:"files"`
	Include     []IncludeCfg  `toml:"include" yaml:"include" json:"include"`
}

type QuestionCfg struct {
	Name        string   `toml:"name" yaml:"name" json:"name"`
	Prompt      string   `toml:"prompt" yaml:"prompt" json:"prompt"`
	Description string   `toml:"description" yaml:"description" json:"description"`
	Kind        string   `toml:"kind" yaml:"kind" json:"kind"`
	Default     any      `toml:"default" yaml:"default" json:"default"`
	Options     []string `toml:"options" yaml:"options" json:"options"`
}

// FileCfg maps one source file to a destination. When is a bool or a string
// that renders to one.
type FileCfg struct {
	Source      string   `toml:"source" yaml:"source" json:"source"`
	Destination string   `toml:"destination" yaml:"destination" json:"destination"`
	When        any      `toml:"when" yaml:"when" json:"when"`
	Pipeline    []string `toml:"pipeline" yaml:"pipeline" json:"pipeline"`
}

// IncludeCfg maps every source file matching Glob. Strip is removed from the
// front of each matched path before it is placed under Destination.
type IncludeCfg struct {
	Glob        string   `toml:"glob" yaml:"glob" json:"glob"`
	Exclude     []string `toml:"exclude" yaml:"exclude" json:"exclude"`
	Strip       string   `toml:"strip" yaml:"strip" json:"strip"`
	Destination string   `toml:"destination" yaml:"destination" json:"destination"`
	When        any      `toml:"when" yaml:"when" json:"when"`
	Pipeline    []string `toml:"pipeline" yaml:"pipeline" json:"pipeline"`
}

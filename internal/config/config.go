// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
)

// Tools holds the argv templates for the external collaborators.
// A "{assembly}" token is replaced by the assembly ID; "{in}" and "{out}"
// by FIFO/file paths where a tool takes path arguments. Templates without
// a token get the value appended as the final argument.
type Tools struct {
	Taxonomy   []string `yaml:"taxonomy"`
	Proteins   []string `yaml:"proteins"`
	Fragmenter []string `yaml:"fragmenter"`
	Classifier []string `yaml:"classifier"`
	Renderer   []string `yaml:"renderer"`
}

// Report holds reporting defaults that flags may override.
type Report struct {
	Rank string `yaml:"rank"`
	Top  int    `yaml:"top"`
}

// Config is the pipeline configuration file.
type Config struct {
	WorkRoot string `yaml:"work_root"`
	Tools    Tools  `yaml:"tools"`
	Report   Report `yaml:"report"`
}

// Default returns the built-in configuration matching the historical
// pipeline's tool names.
func Default() Config {
	return Config{
		WorkRoot: "peptaxa-data",
		Tools: Tools{
			Taxonomy:   []string{"fetch-taxonomy", "{assembly}"},
			Proteins:   []string{"fetch-proteins", "{assembly}"},
			Fragmenter: []string{"prot2pept"},
			Classifier: []string{"unipept", "pept2lca"},
		},
		Report: Report{Rank: "species", Top: 10},
	}
}

// Load reads a YAML config file, layered over Default. An empty path
// returns Default unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// envTools maps PEPTAXA_TOOL_* suffixes onto Tools fields.
func (t *Tools) field(name string) *[]string {
	switch name {
	case "TAXONOMY":
		return &t.Taxonomy
	case "PROTEINS":
		return &t.Proteins
	case "FRAGMENTER":
		return &t.Fragmenter
	case "CLASSIFIER":
		return &t.Classifier
	case "RENDERER":
		return &t.Renderer
	}
	return nil
}

// ApplyEnv overlays PEPTAXA_* environment variables onto the config.
// Tool overrides are whitespace-split argv strings, e.g.
// PEPTAXA_TOOL_CLASSIFIER="unipept pept2lca".
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup("PEPTAXA_WORK_ROOT"); ok && v != "" {
		c.WorkRoot = v
	}
	if v, ok := lookup("PEPTAXA_REPORT_RANK"); ok && v != "" {
		c.Report.Rank = v
	}
	for _, name := range []string{"TAXONOMY", "PROTEINS", "FRAGMENTER", "CLASSIFIER", "RENDERER"} {
		if v, ok := lookup("PEPTAXA_TOOL_" + name); ok && v != "" {
			*c.Tools.field(name) = strings.Fields(v)
		}
	}
}

// Expand substitutes token in every template argument; if no argument
// contains token, value is appended instead.
func Expand(argv []string, token, value string) []string {
	out := make([]string, len(argv))
	hit := false
	for i, a := range argv {
		if strings.Contains(a, token) {
			hit = true
			a = strings.ReplaceAll(a, token, value)
		}
		out[i] = a
	}
	if !hit {
		out = append(out, value)
	}
	return out
}

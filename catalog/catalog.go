// Package catalog provides the named example SVGs offered by the page and
// the examples command.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed examples.yaml
var builtin []byte

type Example struct {
	Name  string `yaml:"name" json:"name"`
	Label string `yaml:"label" json:"label"`
	SVG   string `yaml:"svg" json:"svg"`
}

type Catalog struct {
	examples []Example
	byName   map[string]int
}

type file struct {
	Examples []Example `yaml:"examples"`
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := Parse(builtin)
	if err != nil {
		panic(fmt.Sprintf("builtin catalog: %v", err))
	}
	return c
}

// Load reads a catalog file. An empty path yields the built-in catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog. Names must be present and unique.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	c := &Catalog{byName: make(map[string]int, len(f.Examples))}
	for i, ex := range f.Examples {
		ex.Name = strings.TrimSpace(ex.Name)
		if ex.Name == "" {
			return nil, fmt.Errorf("example %d has no name", i)
		}
		if _, dup := c.byName[ex.Name]; dup {
			return nil, fmt.Errorf("duplicate example %q", ex.Name)
		}
		if ex.Label == "" {
			ex.Label = ex.Name
		}
		c.byName[ex.Name] = len(c.examples)
		c.examples = append(c.examples, ex)
	}
	return c, nil
}

func (c *Catalog) List() []Example {
	return append([]Example(nil), c.examples...)
}

func (c *Catalog) Get(name string) (Example, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Example{}, false
	}
	return c.examples[i], true
}

package news

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Section is one entry of the portal's fixed section catalog.
type Section struct {
	Name  string `yaml:"name"`
	Title string `yaml:"title"`
}

// Catalog holds the allowed article sections. The built-in set matches the
// portal's four verticals; an optional YAML file can replace it.
type Catalog struct {
	sections []Section
	index    map[string]Section
}

type catalogFile struct {
	Sections []Section `yaml:"sections"`
}

func DefaultCatalog() *Catalog {
	return newCatalog([]Section{
		{Name: "pokemon", Title: "Pokémon"},
		{Name: "starwars", Title: "Star Wars"},
		{Name: "lotr", Title: "The Lord of the Rings"},
		{Name: "medieval", Title: "Medieval"},
	})
}

// LoadCatalog reads the section catalog from a YAML file. An empty path
// returns the built-in catalog.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sections file: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse sections file: %w", err)
	}

	if len(file.Sections) == 0 {
		return nil, fmt.Errorf("sections file %s defines no sections", path)
	}

	for i, s := range file.Sections {
		if s.Name == "" {
			return nil, fmt.Errorf("sections file %s: entry %d has no name", path, i)
		}
	}

	return newCatalog(file.Sections), nil
}

func newCatalog(sections []Section) *Catalog {
	index := make(map[string]Section, len(sections))
	for _, s := range sections {
		if s.Title == "" {
			s.Title = s.Name
		}
		index[s.Name] = s
	}
	return &Catalog{sections: sections, index: index}
}

func (c *Catalog) IsAllowed(name string) bool {
	_, ok := c.index[name]
	return ok
}

func (c *Catalog) List() []Section {
	out := make([]Section, len(c.sections))
	copy(out, c.sections)
	return out
}

func (c *Catalog) Count() int {
	return len(c.sections)
}

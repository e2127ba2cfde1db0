package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/johnwards/propgrid/internal/domain"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Catalog is the decoded form of catalog.yaml.
type Catalog struct {
	Kinds map[string]KindDef `yaml:"kinds"`
	Scene []NodeDef          `yaml:"scene"`
}

// KindDef is the spec catalog of one node kind.
type KindDef struct {
	DefaultProperty string    `yaml:"defaultProperty"`
	Specs           []SpecDef `yaml:"specs"`
}

// SpecDef is one catalog entry. Default is any YAML value; it is stored as
// JSON.
type SpecDef struct {
	Name              string `yaml:"name"`
	Type              string `yaml:"type"`
	Category          string `yaml:"category"`
	Description       string `yaml:"description"`
	Editor            string `yaml:"editor"`
	Expandable        bool   `yaml:"expandable"`
	ReadOnly          bool   `yaml:"readOnly"`
	Hidden            bool   `yaml:"hidden"`
	Disabled          bool   `yaml:"disabled"`
	RefreshProperties bool   `yaml:"refreshProperties"`
	Default           any    `yaml:"default"`
}

// NodeDef is one node of the demo scene.
type NodeDef struct {
	ID         string         `yaml:"id"`
	Kind       string         `yaml:"kind"`
	Name       string         `yaml:"name"`
	Parent     string         `yaml:"parent"`
	Attributes map[string]any `yaml:"attributes"`
}

// Load decodes the embedded catalog.
func Load() (*Catalog, error) {
	return Parse(catalogYAML)
}

// Parse decodes a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	for kind, def := range c.Kinds {
		for i, s := range def.Specs {
			if s.Name == "" || s.Type == "" {
				return nil, fmt.Errorf("catalog kind %q spec %d: name and type are required", kind, i)
			}
		}
	}
	return &c, nil
}

// KindNames returns the catalog's kinds in sorted order.
func (c *Catalog) KindNames() []string {
	names := make([]string, 0, len(c.Kinds))
	for k := range c.Kinds {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

// Records converts the specs of kind to stored records.
func (c *Catalog) Records(kind string) ([]domain.SpecRecord, error) {
	def := c.Kinds[kind]
	recs := make([]domain.SpecRecord, len(def.Specs))
	for i, s := range def.Specs {
		recs[i] = domain.SpecRecord{
			Name:              s.Name,
			TypeName:          s.Type,
			Category:          s.Category,
			Description:       s.Description,
			Editor:            s.Editor,
			Expandable:        s.Expandable,
			ReadOnly:          s.ReadOnly,
			Hidden:            s.Hidden,
			Disabled:          s.Disabled,
			RefreshProperties: s.RefreshProperties,
			Position:          i,
		}
		if s.Default != nil {
			raw, err := json.Marshal(s.Default)
			if err != nil {
				return nil, fmt.Errorf("kind %q spec %q default: %w", kind, s.Name, err)
			}
			recs[i].DefaultValue = raw
		}
	}
	return recs, nil
}

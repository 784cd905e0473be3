// Package providers loads the read-only catalog of known subscription
// providers from a YAML file.
package providers

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Provider is one catalog entry.
type Provider struct {
	ID       string `yaml:"id" json:"id"`
	Name     string `yaml:"name" json:"name"`
	Color    string `yaml:"color" json:"color"`
	Category string `yaml:"category" json:"category"`
}

// Catalog is the loaded provider list with an ID index.
type Catalog struct {
	providers []Provider
	byID      map[string]Provider
}

// Load reads the catalog from a YAML file. A missing file yields an empty
// catalog: custom subscriptions work without a provider entry.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return newCatalog(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read provider catalog: %w", err)
	}

	var file struct {
		Providers []Provider `yaml:"providers"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse provider catalog: %w", err)
	}
	return newCatalog(file.Providers), nil
}

func newCatalog(providers []Provider) *Catalog {
	byID := make(map[string]Provider, len(providers))
	for _, p := range providers {
		byID[p.ID] = p
	}
	return &Catalog{providers: providers, byID: byID}
}

// All returns every provider in catalog order.
func (c *Catalog) All() []Provider {
	return c.providers
}

// Get looks up a provider by ID.
func (c *Catalog) Get(id string) (Provider, bool) {
	p, ok := c.byID[id]
	return p, ok
}

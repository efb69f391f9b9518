// Package config loads the atlas model registry: a YAML file naming the
// tidal solutions available to the CLI and server, so callers can select
// a model by name instead of spelling out file lists.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Model describes one gridded tidal solution on disk.
type Model struct {
	Name             string   `yaml:"name"`
	Directory        string   `yaml:"directory"`
	GridFile         string   `yaml:"grid_file"`
	ConstituentFiles []string `yaml:"constituent_files"`
	Variable         string   `yaml:"variable"`   // z, u, U, v or V.
	Scale            float64  `yaml:"scale"`      // Amplitude unit conversion; 0 means 1.
	Gzip             bool     `yaml:"gzip"`       // Files are gzip-compressed.
	Convention       string   `yaml:"convention"` // Nodal correction convention; default OTIS.
}

// Registry is the full model catalogue.
type Registry struct {
	Models []Model `yaml:"models"`
}

// Load reads and validates a registry file.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model registry: %w", err)
	}
	var reg Registry
	if err := yaml.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parsing model registry %s: %w", path, err)
	}
	seen := make(map[string]bool, len(reg.Models))
	for i, m := range reg.Models {
		if m.Name == "" {
			return nil, fmt.Errorf("model %d in %s has no name", i, path)
		}
		if seen[m.Name] {
			return nil, fmt.Errorf("duplicate model name %q in %s", m.Name, path)
		}
		seen[m.Name] = true
		if m.GridFile == "" {
			return nil, fmt.Errorf("model %q has no grid_file", m.Name)
		}
		if len(m.ConstituentFiles) == 0 {
			return nil, fmt.Errorf("model %q has no constituent_files", m.Name)
		}
		switch m.Convention {
		case "", "OTIS", "ATLAS", "GOT":
		default:
			return nil, fmt.Errorf("model %q has unknown convention %q", m.Name, m.Convention)
		}
	}
	return &reg, nil
}

// Lookup finds a model by name.
func (r *Registry) Lookup(name string) (Model, bool) {
	for _, m := range r.Models {
		if m.Name == name {
			return m, true
		}
	}
	return Model{}, false
}

// Names lists the registered model names in file order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.Models))
	for i, m := range r.Models {
		names[i] = m.Name
	}
	return names
}

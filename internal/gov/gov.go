// Package gov provides the organizational-unit registry: the jurisdictions
// entities may be filed under. Units are loaded from a TOML catalog and
// resolved by opaque id or human slug.
package gov

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/civicgraph/civicgraph/internal/ident"
)

// DefaultPath is the conventional location for the government catalog.
const DefaultPath = ".civicgraph/governments.toml"

// Unit is one organizational unit.
type Unit struct {
	ID     string `toml:"id" json:"id"`
	Slug   string `toml:"slug" json:"slug"`
	Name   string `toml:"name" json:"name"`
	Type   string `toml:"type" json:"type"` // city, county, state, district
	State  string `toml:"state" json:"state"`
	Status string `toml:"status" json:"status"`
}

// catalog is the on-disk TOML shape: a list of [[government]] tables.
type catalog struct {
	Governments []Unit `toml:"government"`
}

// Registry holds the loaded units indexed by id and slug.
type Registry struct {
	units  []Unit
	byID   map[string]int
	bySlug map[string]int
}

// Load reads a government catalog from path. A missing file yields an empty
// registry and no error, allowing callers to proceed without one.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return newRegistry(nil), nil
		}
		return nil, fmt.Errorf("reading government catalog: %w", err)
	}
	var cat catalog
	if err := toml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parsing government catalog: %w", err)
	}
	for i := range cat.Governments {
		if cat.Governments[i].Slug == "" {
			cat.Governments[i].Slug = ident.Slug(cat.Governments[i].Name)
		}
	}
	return newRegistry(cat.Governments), nil
}

// Save writes the registry's units back to a TOML catalog at path, creating
// parent directories as needed.
func Save(path string, r *Registry) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	data, err := toml.Marshal(catalog{Governments: r.units})
	if err != nil {
		return fmt.Errorf("marshaling government catalog: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing government catalog: %w", err)
	}
	return nil
}

func newRegistry(units []Unit) *Registry {
	r := &Registry{
		units:  units,
		byID:   make(map[string]int, len(units)),
		bySlug: make(map[string]int, len(units)),
	}
	for i := range units {
		r.byID[units[i].ID] = i
		r.bySlug[units[i].Slug] = i
	}
	return r
}

// Find returns the unit matching an id or slug.
func (r *Registry) Find(idOrSlug string) (*Unit, bool) {
	if i, ok := r.byID[idOrSlug]; ok {
		return &r.units[i], true
	}
	if i, ok := r.bySlug[idOrSlug]; ok {
		return &r.units[i], true
	}
	return nil, false
}

// Resolve returns the canonical id for an id or slug. It satisfies the entity
// repository's GovDirectory.
func (r *Registry) Resolve(idOrSlug string) (string, bool) {
	u, ok := r.Find(idOrSlug)
	if !ok {
		return "", false
	}
	return u.ID, true
}

// All returns every unit sorted by name.
func (r *Registry) All() []Unit {
	out := make([]Unit, len(r.units))
	copy(out, r.units)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Add registers a new unit, generating an id and a unique slug from the name.
func (r *Registry) Add(name, unitType, state string) *Unit {
	slug := ident.UniqueSlug(ident.Slug(name), func(s string) bool {
		_, taken := r.bySlug[s]
		return taken
	})
	id := ident.GenerateID("gov", []string{name, state}, func(candidate string) bool {
		_, taken := r.byID[candidate]
		return taken
	})
	u := Unit{ID: id, Slug: slug, Name: name, Type: unitType, State: state, Status: "active"}
	r.units = append(r.units, u)
	r.byID[id] = len(r.units) - 1
	r.bySlug[slug] = len(r.units) - 1
	return &r.units[len(r.units)-1]
}

package material

import (
	"fmt"
	"sort"
	"sync"
)

// Catalog is an in-memory material database guarded by a RWMutex.
type Catalog struct {
	mu        sync.RWMutex
	materials map[string]Material
}

// NewCatalog returns a catalog holding ms. Invalid entries are rejected.
func NewCatalog(ms ...Material) (*Catalog, error) {
	c := &Catalog{materials: make(map[string]Material, len(ms))}
	for _, m := range ms {
		if err := c.Put(m); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// NewReferenceCatalog returns a catalog preloaded with Reference().
func NewReferenceCatalog() *Catalog {
	c, err := NewCatalog(Reference()...)
	if err != nil {
		panic("material: invalid reference catalog: " + err.Error())
	}

	return c
}

// Put inserts or replaces m.
func (c *Catalog) Put(m Material) error {
	if err := m.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.materials[m.Name] = m

	return nil
}

// Get returns the material called name.
func (c *Catalog) Get(name string) (Material, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.materials[name]
	if !ok {
		return Material{}, fmt.Errorf("%q: %w", name, ErrMaterialNotFound)
	}

	return m, nil
}

// Density implements mass.DensityLookup.
func (c *Catalog) Density(name string) (float64, error) {
	m, err := c.Get(name)
	if err != nil {
		return 0, err
	}

	return m.Density, nil
}

// Names returns all material names sorted.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.materials))
	for n := range c.materials {
		out = append(out, n)
	}
	sort.Strings(out)

	return out
}

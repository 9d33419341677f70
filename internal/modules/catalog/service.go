package catalog

import (
	"context"
	"fmt"
	"log/slog"
)

// Catalog is the immutable runtime snapshot of the menu. It must be
// fully loaded before any configurator or cart touches it; after Load
// returns, nothing writes to it and readers need no locking.
type Catalog struct {
	products []Product
	byID     map[string]*Product
	bySlug   map[string]*Product
}

// Load reads every active product into a snapshot. Call once at startup.
func Load(ctx context.Context, repo *Repo, l *slog.Logger) (*Catalog, error) {
	items, err := repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	c := FromProducts(items)

	l.LogAttrs(ctx, slog.LevelInfo, "catalog_loaded",
		slog.Int("products", len(items)),
	)
	return c, nil
}

// FromProducts builds a snapshot from already-materialized products,
// bypassing the database. Used by tests and static deployments.
func FromProducts(items []Product) *Catalog {
	c := &Catalog{
		products: items,
		byID:     make(map[string]*Product, len(items)),
		bySlug:   make(map[string]*Product, len(items)),
	}
	for i := range c.products {
		p := &c.products[i]
		c.byID[p.ID] = p
		c.bySlug[p.Slug] = p
	}
	return c
}

// Products returns the menu in display order. Callers must not mutate
// the returned slice.
func (c *Catalog) Products() []Product { return c.products }

func (c *Catalog) Get(id string) (*Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

func (c *Catalog) GetBySlug(s string) (*Product, bool) {
	p, ok := c.bySlug[s]
	return p, ok
}

func (c *Catalog) Len() int { return len(c.products) }

// Group finds a product's option group by code.
func (p *Product) Group(code string) (*OptionGroup, bool) {
	for i := range p.Groups {
		if p.Groups[i].Code == code {
			return &p.Groups[i], true
		}
	}
	return nil, false
}

// Option finds a group's option by code.
func (g *OptionGroup) Option(code string) (*Option, bool) {
	for i := range g.Options {
		if g.Options[i].Code == code {
			return &g.Options[i], true
		}
	}
	return nil, false
}

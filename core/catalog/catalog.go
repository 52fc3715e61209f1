// Package catalog holds the equipment and product catalogs the planner draws
// its inputs from. Catalog retrieval and synchronization are external
// concerns; this package only offers an in-process, read-only view.
package catalog

import (
	"fmt"
	"sort"

	"github.com/tanklogix/loadplan/core/model"
)

// Trailer is one truck/trailer combination from the equipment catalog.
type Trailer struct {
	ID             string              `json:"id"`
	Name           string              `json:"name"`
	Compartments   []model.Compartment `json:"compartments"`
	TareLbs        float64             `json:"tare_lbs"`
	TargetGrossLbs float64             `json:"target_gross_lbs"`
}

// Limits returns the trailer's equipment weight limits.
func (t Trailer) Limits() model.EquipmentLimits {
	return model.EquipmentLimits{TargetGrossLbs: t.TargetGrossLbs, TareLbs: t.TareLbs}
}

// Validate checks the trailer's compartments.
func (t Trailer) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("trailer id is required")
	}
	seen := make(map[int]bool, len(t.Compartments))
	for _, c := range t.Compartments {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("trailer %s: %w", t.ID, err)
		}
		if seen[c.ID] {
			return fmt.Errorf("trailer %s: duplicate compartment %d", t.ID, c.ID)
		}
		seen[c.ID] = true
	}
	return nil
}

// Store is an immutable in-memory catalog lookup.
type Store struct {
	trailers map[string]Trailer
	products map[string]model.Product
}

// NewStore builds a Store from catalog listings.
func NewStore(trailers []Trailer, products []model.Product) (*Store, error) {
	s := &Store{
		trailers: make(map[string]Trailer, len(trailers)),
		products: make(map[string]model.Product, len(products)),
	}
	for _, t := range trailers {
		if err := t.Validate(); err != nil {
			return nil, err
		}
		s.trailers[t.ID] = t
	}
	for _, p := range products {
		if p.ID == "" {
			return nil, fmt.Errorf("product id is required")
		}
		s.products[p.ID] = p
	}
	return s, nil
}

// Trailer looks up a trailer by id.
func (s *Store) Trailer(id string) (Trailer, bool) {
	t, ok := s.trailers[id]
	return t, ok
}

// Product looks up a product by id.
func (s *Store) Product(id string) (model.Product, bool) {
	p, ok := s.products[id]
	return p, ok
}

// Trailers lists all trailers sorted by id.
func (s *Store) Trailers() []Trailer {
	out := make([]Trailer, 0, len(s.trailers))
	for _, t := range s.trailers {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Products lists all products sorted by id.
func (s *Store) Products() []model.Product {
	out := make([]model.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ProductMap returns the products keyed by id, as consumed by the planner.
func (s *Store) ProductMap() map[string]model.Product {
	out := make(map[string]model.Product, len(s.products))
	for k, v := range s.products {
		out[k] = v
	}
	return out
}

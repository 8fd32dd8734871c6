package store

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"barpos/internal/model"
)

func newID() string {
	return uuid.NewString()
}

func lessName(a, b string) bool {
	return strings.ToLower(a) < strings.ToLower(b)
}

// AddProduct inserts a new product, assigning an id when absent and placing
// it one past the current maximum display order within its category so new
// items append to the end of their category.
func (s *Store) AddProduct(p model.Product) model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = newID()
	}
	p.DisplayOrder = s.nextDisplayOrderLocked(p.Category)
	s.products[p.ID] = &p
	s.log.Info("product added",
		zap.String("product_id", p.ID),
		zap.String("name", p.Name),
		zap.String("category", string(p.Category)))
	s.persistLocked()
	return p
}

// UpdateProduct replaces an existing product's fields wholesale.
func (s *Store) UpdateProduct(p model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[p.ID]; !ok {
		return ErrProductNotFound
	}
	cp := p
	s.products[p.ID] = &cp
	s.persistLocked()
	return nil
}

// RemoveProducts hard-deletes products from the catalog. Hiding via the
// visibility flag is preferred while open tickets reference a product;
// lines keep working either way because they snapshot name and price.
func (s *Store) RemoveProducts(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for _, id := range ids {
		if _, ok := s.products[id]; ok {
			delete(s.products, id)
			removed++
		}
	}
	if removed > 0 {
		s.log.Info("products removed", zap.Int("count", removed))
		s.persistLocked()
	}
}

// DuplicateProduct copies a product under a new identity with "(copy)"
// appended to the name, placed at the end of its category.
func (s *Store) DuplicateProduct(id string) (model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	src, ok := s.products[id]
	if !ok {
		return model.Product{}, ErrProductNotFound
	}
	dup := *src
	dup.ID = newID()
	dup.Name = src.Name + " (copy)"
	dup.DisplayOrder = s.nextDisplayOrderLocked(src.Category)
	s.products[dup.ID] = &dup
	s.persistLocked()
	return dup, nil
}

// Product returns a copy of one product.
func (s *Store) Product(id string) (model.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return model.Product{}, false
	}
	return *p, true
}

// AllProducts returns every product, hidden ones included, for management
// views. Sorted by display order then name.
func (s *Store) AllProducts() []model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedProductsLocked()
}

// OrderedProducts is the sale-facing ordered view for one ordering key (a
// category tag or the "all" sentinel). Resolution: operator override if
// present and non-empty, else the default override, else manual display
// order. Ties inside an override list (products the list doesn't mention)
// fall back to display order then case-insensitive name, so the order stays
// total even with stale override lists. Hidden products are excluded.
func (s *Store) OrderedProducts(key string, operatorID string) []model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.Product
	for _, p := range s.products {
		if p.Hidden {
			continue
		}
		if key != model.OrderingKeyAll && string(p.Category) != key {
			continue
		}
		out = append(out, *p)
	}

	override := s.resolveOrderingLocked(operatorID, key)
	rank := make(map[string]int, len(override))
	for i, id := range override {
		rank[id] = i
	}
	missing := len(override)

	sort.Slice(out, func(i, j int) bool {
		ri, ok := rank[out[i].ID]
		if !ok {
			ri = missing
		}
		rj, ok := rank[out[j].ID]
		if !ok {
			rj = missing
		}
		if ri != rj {
			return ri < rj
		}
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}
		return lessName(out[i].Name, out[j].Name)
	})
	return out
}

// LowStock lists tracked products at or below their par level, for reorder
// signaling only.
func (s *Store) LowStock() []model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Product
	for _, p := range s.sortedProductsLocked() {
		if p.StockQuantity != nil && p.ParLevel > 0 && *p.StockQuantity <= p.ParLevel {
			out = append(out, p)
		}
	}
	return out
}

func (s *Store) nextDisplayOrderLocked(cat model.Category) int {
	max := -1
	for _, p := range s.products {
		if p.Category == cat && p.DisplayOrder > max {
			max = p.DisplayOrder
		}
	}
	return max + 1
}

package store

import (
	"testing"

	"barpos/internal/model"
)

func names(products []model.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}

func sameOrder(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestAddAppendsToEndOfCategory(t *testing.T) {
	s := newTestStore()
	a := addBeer(s, "A", 5)
	wine := s.AddProduct(model.Product{Name: "Red", Category: model.CategoryWine, Price: 9})
	b := addBeer(s, "B", 5)

	if a.DisplayOrder != 0 || b.DisplayOrder != 1 {
		t.Errorf("beer ordering should be per-category: a=%d b=%d", a.DisplayOrder, b.DisplayOrder)
	}
	if wine.DisplayOrder != 0 {
		t.Errorf("first wine should start its own category at 0, got %d", wine.DisplayOrder)
	}
}

func TestDuplicateCopiesToEndOfCategory(t *testing.T) {
	s := newTestStore()
	a := addBeer(s, "A", 5)
	addBeer(s, "B", 5)

	dup, err := s.DuplicateProduct(a.ID)
	if err != nil {
		t.Fatalf("duplicate: %v", err)
	}
	if dup.ID == a.ID {
		t.Errorf("duplicate must get a new identity")
	}
	if dup.Name != "A (copy)" {
		t.Errorf("duplicate name should append (copy), got %q", dup.Name)
	}
	if dup.DisplayOrder != 2 {
		t.Errorf("duplicate should land at the end of its category, got %d", dup.DisplayOrder)
	}
	if dup.Price != a.Price || dup.Category != a.Category {
		t.Errorf("duplicate should copy fields")
	}
}

func TestOrderedViewFallbackByDisplayOrder(t *testing.T) {
	s := newTestStore()
	addBeer(s, "A", 5)
	addBeer(s, "B", 5)
	addBeer(s, "C", 5)

	got := names(s.OrderedProducts("beer", ""))
	if !sameOrder(got, []string{"A", "B", "C"}) {
		t.Errorf("expected display-order fallback [A B C], got %v", got)
	}
}

func TestOrderedViewDefaultOverrideWins(t *testing.T) {
	s := newTestStore()
	a := addBeer(s, "A", 5)
	b := addBeer(s, "B", 5)
	c := addBeer(s, "C", 5)

	s.SetDefaultOrdering("beer", []string{c.ID, a.ID, b.ID})
	got := names(s.OrderedProducts("beer", "op-1"))
	if !sameOrder(got, []string{"C", "A", "B"}) {
		t.Errorf("default override should win with no operator override, got %v", got)
	}
}

func TestOrderedViewOperatorOverrideBeatsDefault(t *testing.T) {
	s := newTestStore()
	a := addBeer(s, "A", 5)
	b := addBeer(s, "B", 5)
	c := addBeer(s, "C", 5)

	s.SetDefaultOrdering("beer", []string{c.ID, a.ID, b.ID})
	s.SetOrdering("op-1", "beer", []string{b.ID, c.ID, a.ID})

	if got := names(s.OrderedProducts("beer", "op-1")); !sameOrder(got, []string{"B", "C", "A"}) {
		t.Errorf("operator override should win, got %v", got)
	}
	if got := names(s.OrderedProducts("beer", "op-2")); !sameOrder(got, []string{"C", "A", "B"}) {
		t.Errorf("other operators still see the default, got %v", got)
	}
}

func TestOrderedViewStaleOverrideStaysTotal(t *testing.T) {
	s := newTestStore()
	a := addBeer(s, "A", 5)
	b := addBeer(s, "B", 5)
	s.SetDefaultOrdering("beer", []string{b.ID, a.ID})

	// Products added after the override was saved sort after the listed
	// ones, by display order then name.
	addBeer(s, "D", 5)
	addBeer(s, "C", 5)

	got := names(s.OrderedProducts("beer", ""))
	if !sameOrder(got, []string{"B", "A", "D", "C"}) {
		t.Errorf("stale override must stay deterministic, got %v", got)
	}
}

func TestOrderedViewResetRevertsToDefault(t *testing.T) {
	s := newTestStore()
	a := addBeer(s, "A", 5)
	b := addBeer(s, "B", 5)
	s.SetDefaultOrdering("beer", []string{b.ID, a.ID})
	s.SetOrdering("op-1", "beer", []string{a.ID, b.ID})

	s.ResetOrdering("op-1")
	got := names(s.OrderedProducts("beer", "op-1"))
	if !sameOrder(got, []string{"B", "A"}) {
		t.Errorf("reset should revert to the default override, got %v", got)
	}
}

func TestAllKeyIsIndependentSlot(t *testing.T) {
	s := newTestStore()
	a := addBeer(s, "A", 5)
	wine := s.AddProduct(model.Product{Name: "Red", Category: model.CategoryWine, Price: 9})

	s.SetDefaultOrdering(model.OrderingKeyAll, []string{wine.ID, a.ID})
	got := names(s.OrderedProducts(model.OrderingKeyAll, ""))
	if !sameOrder(got, []string{"Red", "A"}) {
		t.Errorf("the all key should order the whole list, got %v", got)
	}

	// The per-category slot is unaffected by the all-key override.
	if got := names(s.OrderedProducts("beer", "")); !sameOrder(got, []string{"A"}) {
		t.Errorf("category slot must not inherit from all, got %v", got)
	}
}

func TestHiddenProductsExcludedFromSaleView(t *testing.T) {
	s := newTestStore()
	a := addBeer(s, "A", 5)
	b := addBeer(s, "B", 5)

	a.Hidden = true
	if err := s.UpdateProduct(a); err != nil {
		t.Fatalf("update: %v", err)
	}

	if got := names(s.OrderedProducts("beer", "")); !sameOrder(got, []string{"B"}) {
		t.Errorf("hidden products must not reach the sale view, got %v", got)
	}
	if got := names(s.AllProducts()); !sameOrder(got, []string{"A", "B"}) {
		t.Errorf("hidden products stay editable in the management view, got %v", got)
	}
	_ = b
}

func TestLowStockListsAtOrBelowPar(t *testing.T) {
	s := newTestStore()
	s.AddProduct(model.Product{Name: "Low", Category: model.CategoryBeer, Price: 5, StockQuantity: fptr(2), ParLevel: 6})
	s.AddProduct(model.Product{Name: "Fine", Category: model.CategoryBeer, Price: 5, StockQuantity: fptr(30), ParLevel: 6})
	s.AddProduct(model.Product{Name: "Untracked", Category: model.CategoryBeer, Price: 5, ParLevel: 6})

	got := names(s.LowStock())
	if !sameOrder(got, []string{"Low"}) {
		t.Errorf("expected only the low product, got %v", got)
	}
}

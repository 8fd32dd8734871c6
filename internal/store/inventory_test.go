package store

import (
	"testing"

	"barpos/internal/model"
)

func TestDepletionSubtractsServingSize(t *testing.T) {
	s := newTestStore()
	p := s.AddProduct(model.Product{
		Name:          "Whiskey",
		Category:      model.CategoryLiquor,
		Price:         9,
		StockQuantity: fptr(25),
		ServingSize:   1.5,
	})
	ticket := s.CreateTicket()
	s.AddLine(ticket.ID, p.ID, "", nil)
	s.AddLine(ticket.ID, p.ID, "", nil)

	if _, err := s.CloseTicket(ticket.ID, model.PaymentCard, 0, "Sam"); err != nil {
		t.Fatalf("close: %v", err)
	}

	got, _ := s.Product(p.ID)
	if got.StockQuantity == nil || *got.StockQuantity != 22 {
		t.Errorf("expected stock 22 after 2x1.5oz pour, got %v", got.StockQuantity)
	}
	if got.OutOfStock {
		t.Errorf("product should still be available")
	}
}

func TestDepletionDefaultsServingToOne(t *testing.T) {
	s := newTestStore()
	p := s.AddProduct(model.Product{
		Name:          "Bottle Beer",
		Category:      model.CategoryBeer,
		Price:         5,
		StockQuantity: fptr(10),
	})
	ticket := s.CreateTicket()
	s.AddLine(ticket.ID, p.ID, "", nil)
	s.AddLine(ticket.ID, p.ID, "", nil)
	s.AddLine(ticket.ID, p.ID, "", nil)

	if _, err := s.CloseTicket(ticket.ID, model.PaymentCash, 15, "Sam"); err != nil {
		t.Fatalf("close: %v", err)
	}
	got, _ := s.Product(p.ID)
	if *got.StockQuantity != 7 {
		t.Errorf("expected stock 7, got %v", *got.StockQuantity)
	}
}

func TestDepletionClampsAtZeroAndFlags(t *testing.T) {
	s := newTestStore()
	p := s.AddProduct(model.Product{
		Name:          "Last Keg",
		Category:      model.CategoryBeer,
		Price:         6,
		StockQuantity: fptr(2),
	})
	ticket := s.CreateTicket()
	for i := 0; i < 5; i++ {
		s.AddLine(ticket.ID, p.ID, "", nil)
	}

	if _, err := s.CloseTicket(ticket.ID, model.PaymentCard, 0, "Sam"); err != nil {
		t.Fatalf("close: %v", err)
	}
	got, _ := s.Product(p.ID)
	if *got.StockQuantity != 0 {
		t.Errorf("stock must clamp at zero, got %v", *got.StockQuantity)
	}
	if !got.OutOfStock {
		t.Errorf("hitting zero must flag the product unavailable")
	}
}

func TestDepletionSkipsUntrackedProducts(t *testing.T) {
	s := newTestStore()
	p := addBeer(s, "Well Drink", 5)
	ticket := s.CreateTicket()
	s.AddLine(ticket.ID, p.ID, "", nil)

	if _, err := s.CloseTicket(ticket.ID, model.PaymentCash, 5, "Sam"); err != nil {
		t.Fatalf("untracked product must not block the sale: %v", err)
	}
	got, _ := s.Product(p.ID)
	if got.StockQuantity != nil {
		t.Errorf("untracked product must stay untracked")
	}
	if got.OutOfStock {
		t.Errorf("untracked product must not be flagged")
	}
}

func TestReplenishDoesNotClearOutOfStock(t *testing.T) {
	s := newTestStore()
	p := s.AddProduct(model.Product{
		Name:          "Cider",
		Category:      model.CategoryBeer,
		Price:         6,
		StockQuantity: fptr(1),
	})
	ticket := s.CreateTicket()
	s.AddLine(ticket.ID, p.ID, "", nil)
	if _, err := s.CloseTicket(ticket.ID, model.PaymentCard, 0, "Sam"); err != nil {
		t.Fatalf("close: %v", err)
	}

	if _, err := s.AdjustStock(p.ID, 24, "restock", "Sam"); err != nil {
		t.Fatalf("adjust: %v", err)
	}
	got, _ := s.Product(p.ID)
	if *got.StockQuantity != 24 {
		t.Errorf("expected restocked quantity 24, got %v", *got.StockQuantity)
	}
	if !got.OutOfStock {
		t.Errorf("restocking must not auto-clear the unavailable flag")
	}
}

func TestAdjustStockWritesAuditEntry(t *testing.T) {
	s := newTestStore()
	p := s.AddProduct(model.Product{
		Name:          "Vodka",
		Category:      model.CategoryLiquor,
		Price:         8,
		StockQuantity: fptr(20),
	})

	entry, err := s.AdjustStock(p.ID, 17.5, "breakage", "Sam")
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if entry.OldQuantity != 20 || entry.NewQuantity != 17.5 || entry.Variance != -2.5 {
		t.Errorf("unexpected audit math: %+v", entry)
	}
	if entry.Reason != "breakage" {
		t.Errorf("audit entry should keep the reason")
	}

	entries := s.AuditEntries()
	if len(entries) != 1 || entries[0].ID != entry.ID {
		t.Errorf("audit log should contain the entry")
	}
}

func TestAdjustStockClampsNegativeRequests(t *testing.T) {
	s := newTestStore()
	p := s.AddProduct(model.Product{
		Name:          "Gin",
		Category:      model.CategoryLiquor,
		Price:         8,
		StockQuantity: fptr(3),
	})
	entry, err := s.AdjustStock(p.ID, -5, "count error", "Sam")
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if entry.NewQuantity != 0 {
		t.Errorf("negative adjustment must clamp to zero, got %v", entry.NewQuantity)
	}
	got, _ := s.Product(p.ID)
	if !got.OutOfStock {
		t.Errorf("adjusting to zero must flag the product")
	}
}

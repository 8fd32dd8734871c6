package store

import (
	"testing"

	"barpos/internal/model"
)

func newTestStore() *Store {
	return New(nil, nil, Options{})
}

func fptr(v float64) *float64 {
	return &v
}

func addBeer(s *Store, name string, price float64) model.Product {
	return s.AddProduct(model.Product{Name: name, Category: model.CategoryBeer, Price: price})
}

func TestAddLineStacksWithoutVariant(t *testing.T) {
	s := newTestStore()
	p := addBeer(s, "Lager", 6)
	ticket := s.CreateTicket()

	if _, err := s.AddLine(ticket.ID, p.ID, "", nil); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if _, err := s.AddLine(ticket.ID, p.ID, "", nil); err != nil {
		t.Fatalf("second add: %v", err)
	}

	got, _ := s.ActiveTicket()
	if len(got.Lines) != 1 {
		t.Fatalf("expected one stacked line, got %d", len(got.Lines))
	}
	if got.Lines[0].Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", got.Lines[0].Quantity)
	}
	if got.Total() != 12 {
		t.Errorf("expected total 12, got %v", got.Total())
	}
}

func TestAddLineVariantNeverStacks(t *testing.T) {
	s := newTestStore()
	p := addBeer(s, "Lager", 6)
	ticket := s.CreateTicket()

	pitcher := fptr(18.0)
	if _, err := s.AddLine(ticket.ID, p.ID, "pitcher", pitcher); err != nil {
		t.Fatalf("first variant add: %v", err)
	}
	if _, err := s.AddLine(ticket.ID, p.ID, "pitcher", pitcher); err != nil {
		t.Fatalf("second variant add: %v", err)
	}

	got, _ := s.ActiveTicket()
	if len(got.Lines) != 2 {
		t.Fatalf("expected two distinct variant lines, got %d", len(got.Lines))
	}
	for _, l := range got.Lines {
		if l.Quantity != 1 {
			t.Errorf("variant line quantity should be 1, got %d", l.Quantity)
		}
		if l.UnitPrice != 18 {
			t.Errorf("variant price should be 18, got %v", l.UnitPrice)
		}
	}
}

func TestDecrementLineRemovesAtZero(t *testing.T) {
	s := newTestStore()
	p := addBeer(s, "Stout", 7)
	ticket := s.CreateTicket()
	line, _ := s.AddLine(ticket.ID, p.ID, "", nil)
	s.AddLine(ticket.ID, p.ID, "", nil)

	if err := s.DecrementLine(ticket.ID, line.ID); err != nil {
		t.Fatalf("decrement: %v", err)
	}
	got, _ := s.ActiveTicket()
	if got.Lines[0].Quantity != 1 {
		t.Fatalf("expected quantity 1, got %d", got.Lines[0].Quantity)
	}

	if err := s.DecrementLine(ticket.ID, line.ID); err != nil {
		t.Fatalf("decrement to zero: %v", err)
	}
	got, _ = s.ActiveTicket()
	if len(got.Lines) != 0 {
		t.Errorf("line should be removed at zero, got %d lines", len(got.Lines))
	}
}

func TestDeleteTicketRefusesNonEmpty(t *testing.T) {
	s := newTestStore()
	p := addBeer(s, "IPA", 8)
	ticket := s.CreateTicket()
	s.AddLine(ticket.ID, p.ID, "", nil)

	if err := s.DeleteTicketIfEmpty(ticket.ID); err != ErrTicketNotEmpty {
		t.Fatalf("expected ErrTicketNotEmpty, got %v", err)
	}
	if len(s.Tickets()) != 1 {
		t.Errorf("ticket should survive a refused delete")
	}
}

func TestDeleteLastTicketRespawnsFreshOne(t *testing.T) {
	s := newTestStore()
	ticket := s.CreateTicket()

	if err := s.DeleteTicketIfEmpty(ticket.ID); err != nil {
		t.Fatalf("delete empty: %v", err)
	}
	tickets := s.Tickets()
	if len(tickets) != 1 {
		t.Fatalf("expected a respawned ticket, got %d", len(tickets))
	}
	if tickets[0].ID == ticket.ID {
		t.Errorf("respawned ticket should have a new identity")
	}
	if _, ok := s.ActiveTicket(); !ok {
		t.Errorf("respawned ticket should be active")
	}
}

func TestCloseCashRefusesUnderTender(t *testing.T) {
	s := newTestStore()
	p := addBeer(s, "Porter", 7)
	ticket := s.CreateTicket()
	s.AddLine(ticket.ID, p.ID, "", nil)

	_, err := s.CloseTicket(ticket.ID, model.PaymentCash, 5, "Sam")
	if err != ErrInsufficientTender {
		t.Fatalf("expected ErrInsufficientTender, got %v", err)
	}
	got, ok := s.ActiveTicket()
	if !ok || got.ID != ticket.ID {
		t.Fatalf("refused close must leave the ticket open")
	}
	if len(got.Lines) != 1 || got.Lines[0].Quantity != 1 {
		t.Errorf("refused close must leave lines unchanged")
	}
}

func TestCloseCashComputesChange(t *testing.T) {
	s := newTestStore()
	p := addBeer(s, "Pilsner", 7)
	ticket := s.CreateTicket()
	s.AddLine(ticket.ID, p.ID, "", nil)

	result, err := s.CloseTicket(ticket.ID, model.PaymentCash, 10, "Sam")
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if result.Total != 7 || result.CashTendered != 10 || result.ChangeDue != 3 {
		t.Errorf("unexpected close math: total=%v tendered=%v change=%v",
			result.Total, result.CashTendered, result.ChangeDue)
	}
	if len(result.Lines) != 1 || result.Lines[0].Name != "Pilsner" {
		t.Errorf("close result should snapshot the lines")
	}

	archive := s.ClosedTickets()
	if len(archive) != 1 || archive[0].ID != result.ID {
		t.Errorf("close result should be archived")
	}
}

func TestCloseResultDecoupledFromCatalogEdits(t *testing.T) {
	s := newTestStore()
	p := addBeer(s, "Amber", 6)
	ticket := s.CreateTicket()
	s.AddLine(ticket.ID, p.ID, "", nil)
	result, err := s.CloseTicket(ticket.ID, model.PaymentCard, 0, "Sam")
	if err != nil {
		t.Fatalf("close: %v", err)
	}

	p.Name = "Renamed"
	p.Price = 99
	if err := s.UpdateProduct(p); err != nil {
		t.Fatalf("update: %v", err)
	}

	archive := s.ClosedTickets()
	if archive[0].Lines[0].Name != "Amber" || archive[0].Lines[0].UnitPrice != 6 {
		t.Errorf("catalog edits must not rewrite history: %+v", archive[0].Lines[0])
	}
	_ = result
}

func TestClosingLastTicketRespawns(t *testing.T) {
	s := newTestStore()
	p := addBeer(s, "Helles", 6)
	ticket := s.CreateTicket()
	s.AddLine(ticket.ID, p.ID, "", nil)

	if _, err := s.CloseTicket(ticket.ID, model.PaymentCard, 0, "Sam"); err != nil {
		t.Fatalf("close: %v", err)
	}
	if len(s.Tickets()) != 1 {
		t.Errorf("closing the last ticket should respawn a fresh one")
	}
}

func TestCloseEmptyTicketRefused(t *testing.T) {
	s := newTestStore()
	ticket := s.CreateTicket()
	if _, err := s.CloseTicket(ticket.ID, model.PaymentCash, 0, "Sam"); err != ErrEmptyTicket {
		t.Errorf("expected ErrEmptyTicket, got %v", err)
	}
}

package store

import (
	"testing"

	"barpos/internal/model"
)

func TestSellChipsAddsLinesAndRaisesOutstanding(t *testing.T) {
	s := newTestStore()
	s.CreateTicket()

	lines, err := s.SellChips(model.ChipRed, 3)
	if err != nil {
		t.Fatalf("sell: %v", err)
	}
	if len(lines) != 3 {
		t.Fatalf("expected 3 synthetic lines, got %d", len(lines))
	}

	ticket, _ := s.ActiveTicket()
	if len(ticket.Lines) != 3 {
		t.Errorf("each chip sale is its own line, got %d", len(ticket.Lines))
	}
	if ticket.Total() != 15 {
		t.Errorf("3 red chips at the default price should total 15, got %v", ticket.Total())
	}

	for _, status := range s.ChipStatuses() {
		if status.Type == model.ChipRed && status.Outstanding != 3 {
			t.Errorf("outstanding red should be 3, got %d", status.Outstanding)
		}
	}
}

func TestRedeemChipsAddsNegativeLinesFlooredAtZero(t *testing.T) {
	s := newTestStore()
	s.CreateTicket()
	if _, err := s.SellChips(model.ChipGreen, 2); err != nil {
		t.Fatalf("sell: %v", err)
	}

	lines, err := s.RedeemChips(model.ChipGreen, 5)
	if err != nil {
		t.Fatalf("redeem: %v", err)
	}
	for _, l := range lines {
		if l.UnitPrice != -10 {
			t.Errorf("redemption line should carry the negative price, got %v", l.UnitPrice)
		}
	}

	for _, status := range s.ChipStatuses() {
		if status.Type == model.ChipGreen && status.Outstanding != 0 {
			t.Errorf("outstanding must floor at zero, got %d", status.Outstanding)
		}
	}

	ticket, _ := s.ActiveTicket()
	// 2 sold at +10, 5 redeemed at -10.
	if ticket.Total() != -30 {
		t.Errorf("expected ticket total -30, got %v", ticket.Total())
	}
}

func TestChipPriceOverrideAppliesToNewLines(t *testing.T) {
	s := newTestStore()
	s.CreateTicket()
	if err := s.SetChipPrice(model.ChipBlack, 25); err != nil {
		t.Fatalf("set price: %v", err)
	}
	lines, err := s.SellChips(model.ChipBlack, 1)
	if err != nil {
		t.Fatalf("sell: %v", err)
	}
	if lines[0].UnitPrice != 25 {
		t.Errorf("override price should apply, got %v", lines[0].UnitPrice)
	}
}

func TestChipSalesFlowIntoShiftMetrics(t *testing.T) {
	s := newTestStore()
	s.BeginShift("Sam", 100)
	if _, err := s.SellChips(model.ChipRed, 2); err != nil {
		t.Fatalf("sell: %v", err)
	}
	active, _ := s.ActiveTicket()
	if _, err := s.CloseTicket(active.ID, model.PaymentCash, 10, "Sam"); err != nil {
		t.Fatalf("close: %v", err)
	}

	report, err := s.SettleShift(110, "Sam")
	if err != nil {
		t.Fatalf("settle: %v", err)
	}
	if report.ExpectedCash != 110 {
		t.Errorf("chip sales ride the normal cash path: want expected 110, got %v", report.ExpectedCash)
	}
	if report.Gross != 10 {
		t.Errorf("chip sales should land in gross, got %v", report.Gross)
	}
}

func TestChipValidation(t *testing.T) {
	s := newTestStore()
	s.CreateTicket()
	if _, err := s.SellChips("purple", 1); err != ErrInvalidChipType {
		t.Errorf("expected ErrInvalidChipType, got %v", err)
	}
	if _, err := s.SellChips(model.ChipRed, 0); err != ErrBadChipCount {
		t.Errorf("expected ErrBadChipCount, got %v", err)
	}
}

package store

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"barpos/internal/model"
)

var (
	ErrInvalidChipType = errors.New("unknown chip type")
	ErrBadChipCount    = errors.New("chip count must be at least 1")
)

// chipTitles for synthetic line names.
var chipTitles = map[model.ChipType]string{
	model.ChipRed:   "Red Chip",
	model.ChipGreen: "Green Chip",
	model.ChipBlack: "Black Chip",
}

// SellChips puts count chip-sale lines on the active ticket at the current
// price for the tier and raises the outstanding counter. The lines ride
// the normal ticket path, so they settle and report like any other sale.
func (s *Store) SellChips(t model.ChipType, count int) ([]model.OrderLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !t.Valid() {
		return nil, ErrInvalidChipType
	}
	if count < 1 {
		return nil, ErrBadChipCount
	}
	ticket, ok := s.tickets[s.activeID]
	if !ok {
		return nil, ErrTicketNotFound
	}
	price := s.chipPrices[t]
	var lines []model.OrderLine
	for i := 0; i < count; i++ {
		lines = append(lines, s.appendSyntheticLineLocked(ticket, chipProductID(t), chipTitles[t], price))
	}
	s.chipOutstanding[t] += count
	s.log.Info("chips sold",
		zap.String("type", string(t)),
		zap.Int("count", count),
		zap.Int("outstanding", s.chipOutstanding[t]))
	s.persistLocked()
	return lines, nil
}

// RedeemChips puts count negative-price redemption lines on the active
// ticket and lowers the outstanding counter, floored at zero.
func (s *Store) RedeemChips(t model.ChipType, count int) ([]model.OrderLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !t.Valid() {
		return nil, ErrInvalidChipType
	}
	if count < 1 {
		return nil, ErrBadChipCount
	}
	ticket, ok := s.tickets[s.activeID]
	if !ok {
		return nil, ErrTicketNotFound
	}
	price := s.chipPrices[t]
	var lines []model.OrderLine
	for i := 0; i < count; i++ {
		lines = append(lines, s.appendSyntheticLineLocked(ticket, chipProductID(t), chipTitles[t]+" (redeemed)", -price))
	}
	s.chipOutstanding[t] -= count
	if s.chipOutstanding[t] < 0 {
		s.chipOutstanding[t] = 0
	}
	s.persistLocked()
	return lines, nil
}

// ChipStatuses returns price and outstanding count per tier.
func (s *Store) ChipStatuses() []model.ChipStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.ChipStatus
	for _, t := range model.ChipTypes() {
		out = append(out, model.ChipStatus{
			Type:        t,
			Price:       s.chipPrices[t],
			Outstanding: s.chipOutstanding[t],
		})
	}
	return out
}

// SetChipPrice overrides the sale/redemption price for one tier. Lines
// already on tickets keep the price they were added at.
func (s *Store) SetChipPrice(t model.ChipType, price float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !t.Valid() {
		return ErrInvalidChipType
	}
	s.chipPrices[t] = price
	s.persistLocked()
	return nil
}

func chipProductID(t model.ChipType) string {
	return fmt.Sprintf("chip:%s", t)
}

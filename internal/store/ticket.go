package store

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"barpos/internal/model"
)

// CreateTicket opens a fresh empty tab, names it from the running sequence
// and makes it the active ticket.
func (s *Store) CreateTicket() model.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.createTicketLocked()
	s.persistLocked()
	return *t
}

func (s *Store) createTicketLocked() *model.Ticket {
	s.ticketSeq++
	t := &model.Ticket{
		ID:        newID(),
		Name:      fmt.Sprintf("Tab %d", s.ticketSeq),
		CreatedAt: time.Now(),
	}
	s.tickets[t.ID] = t
	s.ticketOrder = append(s.ticketOrder, t.ID)
	s.activeID = t.ID
	return t
}

// SelectTicket makes the given ticket the active one.
func (s *Store) SelectTicket(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tickets[id]; !ok {
		return ErrTicketNotFound
	}
	s.activeID = id
	s.persistLocked()
	return nil
}

// RenameTicket sets a tab's display name.
func (s *Store) RenameTicket(id, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tickets[id]
	if !ok {
		return ErrTicketNotFound
	}
	t.Name = name
	s.persistLocked()
	return nil
}

// Tickets returns the open set in creation order.
func (s *Store) Tickets() []model.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Ticket, 0, len(s.ticketOrder))
	for _, id := range s.ticketOrder {
		out = append(out, *s.tickets[id])
	}
	return out
}

// ActiveTicket returns the currently selected ticket.
func (s *Store) ActiveTicket() (model.Ticket, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tickets[s.activeID]
	if !ok {
		return model.Ticket{}, false
	}
	return *t, true
}

// AddLine puts one unit of a product on a ticket. Without a variant the
// quantity stacks onto an existing variant-less line for the same product;
// a variant purchase is always its own line, even for the same product and
// variant, because variants are priced and tracked independently per add.
// priceOverride, when non-nil, replaces the catalog price for this line.
func (s *Store) AddLine(ticketID, productID, variant string, priceOverride *float64) (model.OrderLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tickets[ticketID]
	if !ok {
		return model.OrderLine{}, ErrTicketNotFound
	}
	p, ok := s.products[productID]
	if !ok {
		return model.OrderLine{}, ErrProductNotFound
	}
	price := p.Price
	if priceOverride != nil {
		price = *priceOverride
	}

	if variant == "" {
		for i := range t.Lines {
			l := &t.Lines[i]
			if l.ProductID == productID && l.Variant == "" && l.UnitPrice == price {
				l.Quantity++
				s.persistLocked()
				return *l, nil
			}
		}
	}

	line := model.OrderLine{
		ID:        newID(),
		ProductID: productID,
		Name:      p.Name,
		UnitPrice: price,
		Quantity:  1,
		Variant:   variant,
	}
	t.Lines = append(t.Lines, line)
	s.persistLocked()
	return line, nil
}

// appendSyntheticLineLocked adds a line with no catalog backing (chip sales
// and redemptions). Synthetic lines never stack.
func (s *Store) appendSyntheticLineLocked(t *model.Ticket, productID, name string, unitPrice float64) model.OrderLine {
	line := model.OrderLine{
		ID:        newID(),
		ProductID: productID,
		Name:      name,
		UnitPrice: unitPrice,
		Quantity:  1,
	}
	t.Lines = append(t.Lines, line)
	return line
}

// DecrementLine reduces a line's quantity by one, removing the line
// entirely when it reaches zero.
func (s *Store) DecrementLine(ticketID, lineID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tickets[ticketID]
	if !ok {
		return ErrTicketNotFound
	}
	for i := range t.Lines {
		if t.Lines[i].ID != lineID {
			continue
		}
		t.Lines[i].Quantity--
		if t.Lines[i].Quantity <= 0 {
			t.Lines = append(t.Lines[:i], t.Lines[i+1:]...)
		}
		s.persistLocked()
		return nil
	}
	return ErrLineNotFound
}

// RemoveLine deletes a line outright regardless of quantity.
func (s *Store) RemoveLine(ticketID, lineID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tickets[ticketID]
	if !ok {
		return ErrTicketNotFound
	}
	for i := range t.Lines {
		if t.Lines[i].ID == lineID {
			t.Lines = append(t.Lines[:i], t.Lines[i+1:]...)
			s.persistLocked()
			return nil
		}
	}
	return ErrLineNotFound
}

// DeleteTicketIfEmpty removes a ticket only when it has no lines. Deleting
// the last remaining ticket immediately respawns a fresh one so the open
// set never goes empty while an operator is working.
func (s *Store) DeleteTicketIfEmpty(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tickets[id]
	if !ok {
		return ErrTicketNotFound
	}
	if len(t.Lines) > 0 {
		return ErrTicketNotEmpty
	}
	s.removeTicketLocked(id)
	if len(s.ticketOrder) == 0 {
		s.createTicketLocked()
	}
	s.persistLocked()
	return nil
}

// CloseTicket settles one ticket: validates tender, snapshots the lines
// into an immutable CloseResult, depletes inventory, archives the result,
// rolls it into the active shift's metrics and removes the ticket from the
// open set. A cash close with tendered below the total refuses and leaves
// the ticket untouched.
func (s *Store) CloseTicket(id string, method model.PaymentMethod, tendered float64, operator string) (model.CloseResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeTicketLocked(id, method, tendered, operator)
}

func (s *Store) closeTicketLocked(id string, method model.PaymentMethod, tendered float64, operator string) (model.CloseResult, error) {
	t, ok := s.tickets[id]
	if !ok {
		return model.CloseResult{}, ErrTicketNotFound
	}
	if len(t.Lines) == 0 {
		return model.CloseResult{}, ErrEmptyTicket
	}
	subtotal := t.Subtotal()
	total := t.Total()

	var change float64
	if method == model.PaymentCash {
		if tendered < total {
			s.log.Warn("cash close refused, tendered below total",
				zap.String("ticket_id", id),
				zap.Float64("tendered", tendered),
				zap.Float64("total", total))
			return model.CloseResult{}, ErrInsufficientTender
		}
		change = tendered - total
	} else {
		tendered = 0
	}

	result := model.CloseResult{
		ID:           newID(),
		Name:         t.Name,
		Subtotal:     subtotal,
		Total:        total,
		Method:       method,
		CashTendered: tendered,
		ChangeDue:    change,
		ClosedAt:     time.Now(),
		Operator:     operator,
	}
	for _, l := range t.Lines {
		result.Lines = append(result.Lines, model.ClosedLine{
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Total:     l.Total(),
		})
		if p, ok := s.products[l.ProductID]; ok {
			s.depleteLocked(p, l.Quantity)
		}
	}

	s.closed = append(s.closed, result)
	if s.shift != nil {
		s.shift.Metrics.TabCount++
		s.shift.Metrics.Gross += total
		s.shift.Metrics.Net += subtotal
		s.shift.Metrics.Tax += total - subtotal
		s.shift.Metrics.ByMethod[method] += total
		s.shift.Closed = append(s.shift.Closed, result)
	}

	s.removeTicketLocked(id)
	if len(s.ticketOrder) == 0 {
		s.createTicketLocked()
	}

	s.log.Info("ticket closed",
		zap.String("ticket", result.Name),
		zap.String("method", string(method)),
		zap.Float64("total", total),
		zap.Float64("change_due", change))
	s.persistLocked()
	return result, nil
}

// removeTicketLocked drops a ticket from the open set and moves the active
// selection to the oldest remaining ticket if needed.
func (s *Store) removeTicketLocked(id string) {
	delete(s.tickets, id)
	for i, oid := range s.ticketOrder {
		if oid == id {
			s.ticketOrder = append(s.ticketOrder[:i], s.ticketOrder[i+1:]...)
			break
		}
	}
	if s.activeID == id {
		s.activeID = ""
		if len(s.ticketOrder) > 0 {
			s.activeID = s.ticketOrder[0]
		}
	}
}

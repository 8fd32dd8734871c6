package store

import (
	"time"

	"go.uber.org/zap"

	"barpos/internal/model"
)

// BeginShift opens a working session for an operator. It refuses while a
// shift is already active; callers must settle first. When no unsettled
// tickets were carried over from a prior shift the ticket set and its
// sequence counter reset; carried tickets are preserved and the sequence
// continues.
func (s *Store) BeginShift(operator string, openingCash float64) (model.ShiftRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.shift != nil {
		return model.ShiftRecord{}, ErrShiftActive
	}

	if !s.hasUnsettledLocked() {
		s.tickets = make(map[string]*model.Ticket)
		s.ticketOrder = nil
		s.activeID = ""
		s.ticketSeq = 0
	}
	if len(s.ticketOrder) == 0 {
		s.createTicketLocked()
	}
	if _, ok := s.tickets[s.activeID]; !ok {
		s.activeID = s.ticketOrder[0]
	}

	s.shift = &model.ShiftRecord{
		ID:          newID(),
		Operator:    operator,
		StartedAt:   time.Now(),
		OpeningCash: openingCash,
		Metrics:     model.NewShiftMetrics(),
	}
	s.log.Info("shift started",
		zap.String("shift_id", s.shift.ID),
		zap.String("operator", operator),
		zap.Float64("opening_cash", openingCash))
	s.persistLocked()
	return *copyShift(s.shift), nil
}

// CurrentShift returns the active shift, if any. The boolean forces call
// sites to handle the no-shift case.
func (s *Store) CurrentShift() (model.ShiftRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.shift == nil {
		return model.ShiftRecord{}, false
	}
	return *copyShift(s.shift), true
}

// SettleShift reconciles the active shift against counted cash and emits an
// immutable report. It refuses while any open ticket still has lines. On
// success the shift record is discarded, the open set clears and the ticket
// sequence resets.
func (s *Store) SettleShift(countedCash float64, closedBy string) (model.ShiftReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.shift == nil {
		return model.ShiftReport{}, ErrNoShift
	}
	if s.hasUnsettledLocked() {
		s.log.Warn("settle refused, unsettled tabs remain",
			zap.Int("open_tickets", len(s.ticketOrder)))
		return model.ShiftReport{}, ErrUnsettledTabs
	}

	report := s.buildReportLocked(countedCash, 0, closedBy)
	s.finishShiftLocked(report)

	s.tickets = make(map[string]*model.Ticket)
	s.ticketOrder = nil
	s.activeID = ""
	s.ticketSeq = 0
	s.persistLocked()
	return report, nil
}

// SettleShiftWithCarryOver settles without checking for unsettled tabs:
// empty tickets are pruned, tickets with lines survive into the next shift
// and the report note records how many were carried. If pruning leaves no
// tickets the sequence resets as if nothing was carried.
func (s *Store) SettleShiftWithCarryOver(countedCash float64, closedBy string) (model.ShiftReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.shift == nil {
		return model.ShiftReport{}, ErrNoShift
	}

	for _, id := range append([]string(nil), s.ticketOrder...) {
		if len(s.tickets[id].Lines) == 0 {
			s.removeTicketLocked(id)
		}
	}
	carried := len(s.ticketOrder)
	if carried == 0 {
		s.ticketSeq = 0
		s.activeID = ""
	}

	report := s.buildReportLocked(countedCash, carried, closedBy)
	s.finishShiftLocked(report)
	s.persistLocked()
	return report, nil
}

// CloseAllUnsettledTabs force-closes every open ticket that has lines using
// the zero-cash comp method, for operators who opt out of carrying over.
func (s *Store) CloseAllUnsettledTabs(operator string) []model.CloseResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	var results []model.CloseResult
	for _, id := range append([]string(nil), s.ticketOrder...) {
		t, ok := s.tickets[id]
		if !ok || len(t.Lines) == 0 {
			continue
		}
		result, err := s.closeTicketLocked(id, model.PaymentComp, 0, operator)
		if err != nil {
			s.log.Error("force close failed",
				zap.String("ticket_id", id), zap.Error(err))
			continue
		}
		results = append(results, result)
	}
	return results
}

// finishShiftLocked archives the report at the head of the archive (the
// most-recent-first ordering is a contract history views rely on) and
// discards the live shift record.
func (s *Store) finishShiftLocked(report model.ShiftReport) {
	s.reports = append([]model.ShiftReport{report}, s.reports...)
	s.log.Info("shift settled",
		zap.String("shift_id", report.ID),
		zap.Float64("expected_cash", report.ExpectedCash),
		zap.Float64("over_short", report.OverShort),
		zap.Bool("flagged", report.Flagged))
	s.shift = nil
}

// hasUnsettledLocked reports whether any open ticket has at least one line.
func (s *Store) hasUnsettledLocked() bool {
	for _, t := range s.tickets {
		if len(t.Lines) > 0 {
			return true
		}
	}
	return false
}

// Package store is the transactional core of the POS: it owns every piece
// of mutable state (catalog, open tickets, the current shift, archives,
// chip counters, ordering preferences, the audit log) and funnels all
// mutation through its methods. One mutex wraps every operation; almost
// every operation touches the shared maps, so the exclusion region is the
// whole store.
package store

import (
	"errors"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"barpos/internal/model"
	"barpos/internal/persist"
	"barpos/prometheus"
)

// Refusals: the operation declines, state is unchanged.
var (
	ErrShiftActive        = errors.New("a shift is already active")
	ErrNoShift            = errors.New("no active shift")
	ErrUnsettledTabs      = errors.New("open tabs with lines remain unsettled")
	ErrInsufficientTender = errors.New("cash tendered is below the ticket total")
	ErrTicketNotEmpty     = errors.New("ticket still has lines")
	ErrEmptyTicket        = errors.New("ticket has no lines")
	ErrTicketNotFound     = errors.New("ticket not found")
	ErrLineNotFound       = errors.New("line not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrOperatorNotFound   = errors.New("operator not found")
)

// DefaultOverShortThreshold is the absolute over/short amount above which a
// settlement is flagged for review.
const DefaultOverShortThreshold = 5.0

// Options tunes store behavior at construction time.
type Options struct {
	// OverShortThreshold overrides DefaultOverShortThreshold when > 0.
	OverShortThreshold float64
}

// Store owns all POS state. Construct with New; never mutate fields from
// outside the exported methods.
type Store struct {
	mu      sync.Mutex
	log     *zap.Logger
	gateway persist.Gateway

	threshold float64

	products map[string]*model.Product

	tickets     map[string]*model.Ticket
	ticketOrder []string
	activeID    string
	ticketSeq   int

	shift *model.ShiftRecord

	closed  []model.CloseResult
	reports []model.ShiftReport

	bartenders     []model.Bartender
	managerPIN     string
	adminUnlocked  bool
	paymentMethods []model.PaymentMethod
	defaultPayment model.PaymentMethod

	legacyChipValue float64
	legacyChipCount int
	chipOutstanding map[model.ChipType]int
	chipPrices      map[model.ChipType]float64

	operatorOrdering map[string]map[string][]string
	defaultOrdering  map[string][]string

	audit []model.AuditLogEntry
}

// New builds a store and loads the last snapshot through the gateway. A
// missing or unreadable snapshot falls back to an empty-but-valid default
// state so the application stays usable.
func New(log *zap.Logger, gateway persist.Gateway, opts Options) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	threshold := opts.OverShortThreshold
	if threshold <= 0 {
		threshold = DefaultOverShortThreshold
	}
	s := &Store{
		log:       log,
		gateway:   gateway,
		threshold: threshold,
	}
	s.applyDefaults()

	if gateway == nil {
		return s
	}
	snap, err := gateway.Load()
	if err != nil {
		if errors.Is(err, persist.ErrNotFound) {
			log.Info("no snapshot found, starting with defaults")
		} else {
			log.Error("snapshot load failed, starting with defaults", zap.Error(err))
		}
		return s
	}
	s.applySnapshot(snap)
	log.Info("snapshot loaded",
		zap.Int("version", snap.Version),
		zap.Int("products", len(s.products)),
		zap.Int("open_tickets", len(s.tickets)),
		zap.Int("shift_reports", len(s.reports)))
	return s
}

// applyDefaults resets the store to the empty-but-valid default state.
func (s *Store) applyDefaults() {
	s.products = make(map[string]*model.Product)
	s.tickets = make(map[string]*model.Ticket)
	s.ticketOrder = nil
	s.activeID = ""
	s.ticketSeq = 0
	s.shift = nil
	s.closed = nil
	s.reports = nil
	s.bartenders = []model.Bartender{{ID: newID(), Name: "House", Active: true}}
	s.managerPIN = ""
	s.adminUnlocked = false
	s.paymentMethods = model.PaymentMethods()
	s.defaultPayment = model.PaymentCash
	s.legacyChipValue = 0
	s.legacyChipCount = 0
	s.chipOutstanding = make(map[model.ChipType]int)
	s.chipPrices = model.DefaultChipPrices()
	s.operatorOrdering = make(map[string]map[string][]string)
	s.defaultOrdering = make(map[string][]string)
	s.audit = nil
}

// applySnapshot replaces all state with the snapshot's contents, filling
// defaults for fields an older document predates.
func (s *Store) applySnapshot(snap *model.Snapshot) {
	s.applyDefaults()

	for _, p := range snap.Products {
		cp := p
		s.products[p.ID] = &cp
	}
	s.managerPIN = snap.ManagerPIN
	s.adminUnlocked = snap.AdminUnlocked
	if len(snap.PaymentMethods) > 0 {
		s.paymentMethods = snap.PaymentMethods
	}
	if snap.DefaultPayment != "" {
		s.defaultPayment = snap.DefaultPayment
	}

	s.legacyChipValue = snap.LegacyChipValue
	s.legacyChipCount = snap.LegacyChipCount
	for t, n := range snap.ChipOutstanding {
		if t.Valid() && n > 0 {
			s.chipOutstanding[t] = n
		}
	}
	for t, price := range snap.ChipPrices {
		if t.Valid() {
			s.chipPrices[t] = price
		}
	}

	if len(snap.Bartenders) > 0 {
		s.bartenders = append([]model.Bartender(nil), snap.Bartenders...)
	}

	for _, t := range snap.OpenTickets {
		cp := t
		s.tickets[t.ID] = &cp
		s.ticketOrder = append(s.ticketOrder, t.ID)
	}
	s.ticketSeq = snap.TicketSeq
	if _, ok := s.tickets[snap.ActiveTicketID]; ok {
		s.activeID = snap.ActiveTicketID
	} else if len(s.ticketOrder) > 0 {
		s.activeID = s.ticketOrder[0]
	}
	s.shift = copyShift(snap.CurrentShift)
	if s.shift != nil && s.shift.Metrics.ByMethod == nil {
		s.shift.Metrics.ByMethod = make(map[model.PaymentMethod]float64)
	}

	s.closed = append([]model.CloseResult(nil), snap.ClosedTickets...)
	s.reports = append([]model.ShiftReport(nil), snap.ShiftReports...)

	for op, byKey := range snap.OperatorOrdering {
		m := make(map[string][]string, len(byKey))
		for key, ids := range byKey {
			m[key] = append([]string(nil), ids...)
		}
		s.operatorOrdering[op] = m
	}
	for key, ids := range snap.DefaultOrdering {
		s.defaultOrdering[key] = append([]string(nil), ids...)
	}

	s.audit = append([]model.AuditLogEntry(nil), snap.AuditLog...)
}

// snapshotLocked builds a full snapshot of the current state. Caller holds mu.
func (s *Store) snapshotLocked() *model.Snapshot {
	snap := &model.Snapshot{
		Version:          model.SnapshotVersion,
		ManagerPIN:       s.managerPIN,
		AdminUnlocked:    s.adminUnlocked,
		PaymentMethods:   append([]model.PaymentMethod(nil), s.paymentMethods...),
		DefaultPayment:   s.defaultPayment,
		LegacyChipValue:  s.legacyChipValue,
		LegacyChipCount:  s.legacyChipCount,
		ChipOutstanding:  make(map[model.ChipType]int, len(s.chipOutstanding)),
		ChipPrices:       make(map[model.ChipType]float64, len(s.chipPrices)),
		Bartenders:       append([]model.Bartender(nil), s.bartenders...),
		ActiveTicketID:   s.activeID,
		TicketSeq:        s.ticketSeq,
		CurrentShift:     copyShift(s.shift),
		ClosedTickets:    append([]model.CloseResult(nil), s.closed...),
		ShiftReports:     append([]model.ShiftReport(nil), s.reports...),
		OperatorOrdering: make(map[string]map[string][]string, len(s.operatorOrdering)),
		DefaultOrdering:  make(map[string][]string, len(s.defaultOrdering)),
		AuditLog:         append([]model.AuditLogEntry(nil), s.audit...),
	}
	for _, p := range s.sortedProductsLocked() {
		snap.Products = append(snap.Products, p)
	}
	for t, n := range s.chipOutstanding {
		snap.ChipOutstanding[t] = n
	}
	for t, price := range s.chipPrices {
		snap.ChipPrices[t] = price
	}
	for _, id := range s.ticketOrder {
		snap.OpenTickets = append(snap.OpenTickets, *s.tickets[id])
	}
	for op, byKey := range s.operatorOrdering {
		m := make(map[string][]string, len(byKey))
		for key, ids := range byKey {
			m[key] = append([]string(nil), ids...)
		}
		snap.OperatorOrdering[op] = m
	}
	for key, ids := range s.defaultOrdering {
		snap.DefaultOrdering[key] = append([]string(nil), ids...)
	}
	return snap
}

// persistLocked pushes a snapshot through the gateway. Failures are logged
// and the in-memory mutation stands; persistence is advisory durability.
func (s *Store) persistLocked() {
	if s.gateway == nil {
		return
	}
	if err := s.gateway.Save(s.snapshotLocked()); err != nil {
		s.log.Error("snapshot save failed", zap.Error(err))
		prometheus.RecordSnapshotSaveFailure()
	}
}

// Snapshot returns a full copy of the current state, the backup export.
func (s *Store) Snapshot() *model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Restore replaces all state with the imported snapshot (never merged) and
// persists the replacement immediately.
func (s *Store) Restore(snap *model.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applySnapshot(snap)
	s.log.Info("state restored from imported snapshot",
		zap.Int("version", snap.Version),
		zap.Int("products", len(s.products)))
	s.persistLocked()
}

// Operators returns the roster.
func (s *Store) Operators() []model.Bartender {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Bartender(nil), s.bartenders...)
}

// AddOperator appends a new active operator to the roster.
func (s *Store) AddOperator(name, pin string) model.Bartender {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := model.Bartender{ID: newID(), Name: name, Active: true, PIN: pin}
	s.bartenders = append(s.bartenders, b)
	s.persistLocked()
	return b
}

// DeactivateOperator marks an operator inactive. The roster is append-only;
// accounts are never removed so old reports keep resolving names.
func (s *Store) DeactivateOperator(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.bartenders {
		if s.bartenders[i].ID == id {
			s.bartenders[i].Active = false
			s.persistLocked()
			return nil
		}
	}
	return ErrOperatorNotFound
}

// AuthenticateOperator checks an operator's PIN. Inactive accounts fail.
func (s *Store) AuthenticateOperator(id, pin string) (model.Bartender, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bartenders {
		if b.ID == id && b.Active && b.PIN == pin {
			return b, true
		}
	}
	return model.Bartender{}, false
}

// CheckManagerPIN verifies the manager PIN and records the admin unlock.
func (s *Store) CheckManagerPIN(pin string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.managerPIN == "" || pin != s.managerPIN {
		return false
	}
	s.adminUnlocked = true
	s.persistLocked()
	return true
}

// SetManagerPIN replaces the manager PIN.
func (s *Store) SetManagerPIN(pin string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.managerPIN = pin
	s.persistLocked()
}

// AdminUnlocked reports whether the manager PIN has been entered.
func (s *Store) AdminUnlocked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.adminUnlocked
}

// Reports returns the shift report archive, most recent first.
func (s *Store) Reports() []model.ShiftReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.ShiftReport(nil), s.reports...)
}

// ClosedTickets returns the global closed-ticket archive in close order.
func (s *Store) ClosedTickets() []model.CloseResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.CloseResult(nil), s.closed...)
}

// DayReport aggregates every shift report whose end time falls on day,
// compared in day's location.
func (s *Store) DayReport(day time.Time) model.DayAggregate {
	s.mu.Lock()
	defer s.mu.Unlock()
	agg := model.DayAggregate{
		Date:     day.Format("2006-01-02"),
		ByMethod: make(map[model.PaymentMethod]float64),
	}
	y, m, d := day.Date()
	for _, r := range s.reports {
		ry, rm, rd := r.EndedAt.In(day.Location()).Date()
		if ry != y || rm != m || rd != d {
			continue
		}
		agg.Shifts++
		agg.TabCount += r.TabCount
		agg.Gross += r.Gross
		agg.Net += r.Net
		agg.Tax += r.Tax
		agg.OverShort += r.OverShort
		if r.Flagged {
			agg.Flagged++
		}
		for method, total := range r.ByMethod {
			agg.ByMethod[method] += total
		}
	}
	return agg
}

// copyShift deep-copies a shift record so snapshots never share mutable
// state with the live store.
func copyShift(shift *model.ShiftRecord) *model.ShiftRecord {
	if shift == nil {
		return nil
	}
	cp := *shift
	cp.Metrics.ByMethod = make(map[model.PaymentMethod]float64, len(shift.Metrics.ByMethod))
	for method, total := range shift.Metrics.ByMethod {
		cp.Metrics.ByMethod[method] = total
	}
	cp.Closed = append([]model.CloseResult(nil), shift.Closed...)
	return &cp
}

// sortedProductsLocked returns all products by display order then name.
func (s *Store) sortedProductsLocked() []model.Product {
	out := make([]model.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}
		return lessName(out[i].Name, out[j].Name)
	})
	return out
}

package store

import (
	"time"

	"go.uber.org/zap"

	"barpos/internal/model"
)

// depleteLocked converts a sale into a stock decrement: serving size
// (default 1) times quantity sold, floored at zero. A transition into
// exactly zero marks the product unavailable; replenishment does not clear
// the flag — a manager re-enables availability explicitly. Products with no
// tracked stock are skipped silently, the sale still completes.
func (s *Store) depleteLocked(p *model.Product, quantitySold int) {
	if p.StockQuantity == nil {
		return
	}
	serving := p.ServingSize
	if serving <= 0 {
		serving = 1
	}
	amount := serving * float64(quantitySold)
	was := *p.StockQuantity
	now := was - amount
	if now < 0 {
		now = 0
	}
	p.StockQuantity = &now
	if now == 0 && was > 0 {
		p.OutOfStock = true
		s.log.Info("product 86'd at zero stock",
			zap.String("product_id", p.ID),
			zap.String("name", p.Name))
	}
}

// AdjustStock sets a product's stock to an exact quantity and writes an
// audit entry with the signed variance. Negative requests clamp to zero.
// Adjusting an untracked product starts tracking it.
func (s *Store) AdjustStock(productID string, newQuantity float64, reason, operator string) (model.AuditLogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[productID]
	if !ok {
		return model.AuditLogEntry{}, ErrProductNotFound
	}
	if newQuantity < 0 {
		newQuantity = 0
	}
	var old float64
	if p.StockQuantity != nil {
		old = *p.StockQuantity
	}
	qty := newQuantity
	p.StockQuantity = &qty
	if qty == 0 {
		p.OutOfStock = true
	}

	entry := model.AuditLogEntry{
		ID:          newID(),
		At:          time.Now(),
		ProductID:   p.ID,
		ProductName: p.Name,
		OldQuantity: old,
		NewQuantity: newQuantity,
		Variance:    newQuantity - old,
		Reason:      reason,
		Operator:    operator,
	}
	s.audit = append(s.audit, entry)
	s.log.Info("stock adjusted",
		zap.String("product_id", p.ID),
		zap.Float64("old", old),
		zap.Float64("new", newQuantity),
		zap.String("reason", reason))
	s.persistLocked()
	return entry, nil
}

// AuditEntries returns the adjustment log, newest first.
func (s *Store) AuditEntries() []model.AuditLogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.AuditLogEntry, len(s.audit))
	for i, e := range s.audit {
		out[len(s.audit)-1-i] = e
	}
	return out
}

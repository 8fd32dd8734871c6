package model

import "time"

// PaymentMethod is the closed set of settlement kinds a ticket can close with.
type PaymentMethod string

const (
	PaymentCash  PaymentMethod = "cash"
	PaymentCard  PaymentMethod = "card"
	PaymentOther PaymentMethod = "other"
	// PaymentComp is the zero-cash method used when force-closing tabs an
	// operator chose not to carry over.
	PaymentComp PaymentMethod = "comp"
)

// PaymentMethods lists every valid payment method.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{PaymentCash, PaymentCard, PaymentOther, PaymentComp}
}

// Valid reports whether m is one of the known payment methods.
func (m PaymentMethod) Valid() bool {
	for _, known := range PaymentMethods() {
		if m == known {
			return true
		}
	}
	return false
}

// OrderLine is one entry on an open ticket. Name and UnitPrice are copied
// from the product at add time so later catalog edits don't reprice lines.
// A line with a Variant never stacks with another line.
type OrderLine struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	Variant   string  `json:"variant,omitempty"`
}

// Total returns quantity times unit price.
func (l OrderLine) Total() float64 {
	return float64(l.Quantity) * l.UnitPrice
}

// Ticket is an open tab: a named, ordered collection of lines.
type Ticket struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Lines     []OrderLine `json:"lines"`
	CreatedAt time.Time   `json:"created_at"`
}

// Subtotal sums the line totals.
func (t *Ticket) Subtotal() float64 {
	var sum float64
	for _, l := range t.Lines {
		sum += l.Total()
	}
	return sum
}

// Tax is a fixed derivation, currently always zero in this domain.
func (t *Ticket) Tax() float64 {
	return 0
}

// Total is subtotal plus tax.
func (t *Ticket) Total() float64 {
	return t.Subtotal() + t.Tax()
}

// ClosedLine is the immutable per-line snapshot kept in a CloseResult.
type ClosedLine struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Total     float64 `json:"total"`
}

// CloseResult is the immutable record of a closed ticket. It is decoupled
// from the live Product so later catalog edits never rewrite history.
type CloseResult struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Lines        []ClosedLine  `json:"lines"`
	Subtotal     float64       `json:"subtotal"`
	Total        float64       `json:"total"`
	Method       PaymentMethod `json:"method"`
	CashTendered float64       `json:"cash_tendered,omitempty"`
	ChangeDue    float64       `json:"change_due,omitempty"`
	ClosedAt     time.Time     `json:"closed_at"`
	Operator     string        `json:"operator,omitempty"`
}

package model

import "time"

// ChipType is the closed set of pre-paid token tiers.
type ChipType string

const (
	ChipRed   ChipType = "red"
	ChipGreen ChipType = "green"
	ChipBlack ChipType = "black"
)

// ChipTypes lists every chip tier.
func ChipTypes() []ChipType {
	return []ChipType{ChipRed, ChipGreen, ChipBlack}
}

// Valid reports whether t is one of the known chip tiers.
func (t ChipType) Valid() bool {
	for _, known := range ChipTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// DefaultChipPrices is the fixed starting price table, also the fallback
// when an older snapshot carries no per-type price overrides.
func DefaultChipPrices() map[ChipType]float64 {
	return map[ChipType]float64{
		ChipRed:   5,
		ChipGreen: 10,
		ChipBlack: 20,
	}
}

// ChipStatus is the read projection for one chip tier.
type ChipStatus struct {
	Type        ChipType `json:"type"`
	Price       float64  `json:"price"`
	Outstanding int      `json:"outstanding"`
}

// AuditLogEntry records one manual inventory adjustment. Append-only.
type AuditLogEntry struct {
	ID          string    `json:"id"`
	At          time.Time `json:"at"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	OldQuantity float64   `json:"old_quantity"`
	NewQuantity float64   `json:"new_quantity"`
	Variance    float64   `json:"variance"`
	Reason      string    `json:"reason"`
	Operator    string    `json:"operator,omitempty"`
}

// Bartender is an operator account. PIN is optional; accounts without one
// authenticate with an empty pin.
type Bartender struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
	PIN    string `json:"pin,omitempty"`
}

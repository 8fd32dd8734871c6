package model

import "time"

// ShiftMetrics accumulates running totals while a shift is active. Every
// ticket close bumps the counters; nothing ever decrements them.
type ShiftMetrics struct {
	TabCount int                       `json:"tab_count"`
	Gross    float64                   `json:"gross"`
	Net      float64                   `json:"net"`
	Tax      float64                   `json:"tax"`
	ByMethod map[PaymentMethod]float64 `json:"by_method"`
}

// NewShiftMetrics returns zeroed metrics with the method buckets allocated.
func NewShiftMetrics() ShiftMetrics {
	return ShiftMetrics{ByMethod: make(map[PaymentMethod]float64)}
}

// CashSales returns the cash bucket, the input to expected-cash at settlement.
func (m ShiftMetrics) CashSales() float64 {
	return m.ByMethod[PaymentCash]
}

// ShiftRecord is the live state of the currently open shift. It is discarded
// once settled; only the derived ShiftReport survives in the archive.
type ShiftRecord struct {
	ID          string        `json:"id"`
	Operator    string        `json:"operator"`
	StartedAt   time.Time     `json:"started_at"`
	OpeningCash float64       `json:"opening_cash"`
	Metrics     ShiftMetrics  `json:"metrics"`
	Closed      []CloseResult `json:"closed"`
}

// ShiftReport is the immutable settlement record. ExpectedCash and OverShort
// are computed once at settlement time and never recomputed.
type ShiftReport struct {
	ID           string                    `json:"id"`
	Operator     string                    `json:"operator"`
	ClosedBy     string                    `json:"closed_by,omitempty"`
	StartedAt    time.Time                 `json:"started_at"`
	EndedAt      time.Time                 `json:"ended_at"`
	OpeningCash  float64                   `json:"opening_cash"`
	ClosingCash  float64                   `json:"closing_cash"`
	TabCount     int                       `json:"tab_count"`
	Gross        float64                   `json:"gross"`
	Net          float64                   `json:"net"`
	Tax          float64                   `json:"tax"`
	ByMethod     map[PaymentMethod]float64 `json:"by_method"`
	ExpectedCash float64                   `json:"expected_cash"`
	OverShort    float64                   `json:"over_short"`
	Closed       []CloseResult             `json:"closed"`
	Flagged      bool                      `json:"flagged"`
	FlagNote     string                    `json:"flag_note,omitempty"`
}

// DayAggregate is a read projection summing every shift report whose end
// time falls on one calendar day.
type DayAggregate struct {
	Date      string                    `json:"date"`
	Shifts    int                       `json:"shifts"`
	TabCount  int                       `json:"tab_count"`
	Gross     float64                   `json:"gross"`
	Net       float64                   `json:"net"`
	Tax       float64                   `json:"tax"`
	ByMethod  map[PaymentMethod]float64 `json:"by_method"`
	OverShort float64                   `json:"over_short"`
	Flagged   int                       `json:"flagged"`
}

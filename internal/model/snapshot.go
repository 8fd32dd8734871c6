package model

// SnapshotVersion is the current snapshot schema revision. The schema is
// additive: loaders fill defaults for fields a stored document predates.
const SnapshotVersion = 3

// Snapshot is the complete serialized state handed to the persistence
// gateway after every mutation, and the unit of backup import/export.
// LegacyChipValue/LegacyChipCount predate per-type chips and are carried
// through untouched so older clients can still migrate.
type Snapshot struct {
	Version int `json:"version"`

	Products []Product `json:"products"`

	ManagerPIN     string          `json:"manager_pin,omitempty"`
	AdminUnlocked  bool            `json:"admin_unlocked"`
	PaymentMethods []PaymentMethod `json:"payment_methods,omitempty"`
	DefaultPayment PaymentMethod   `json:"default_payment,omitempty"`

	LegacyChipValue float64              `json:"legacy_chip_value,omitempty"`
	LegacyChipCount int                  `json:"legacy_chip_count,omitempty"`
	ChipOutstanding map[ChipType]int     `json:"chip_outstanding,omitempty"`
	ChipPrices      map[ChipType]float64 `json:"chip_prices,omitempty"`

	Bartenders []Bartender `json:"bartenders,omitempty"`

	OpenTickets    []Ticket     `json:"open_tickets,omitempty"`
	ActiveTicketID string       `json:"active_ticket_id,omitempty"`
	TicketSeq      int          `json:"ticket_seq,omitempty"`
	CurrentShift   *ShiftRecord `json:"current_shift,omitempty"`

	ClosedTickets []CloseResult `json:"closed_tickets,omitempty"`
	ShiftReports  []ShiftReport `json:"shift_reports,omitempty"`

	OperatorOrdering map[string]map[string][]string `json:"operator_ordering,omitempty"`
	DefaultOrdering  map[string][]string            `json:"default_ordering,omitempty"`

	AuditLog []AuditLogEntry `json:"audit_log,omitempty"`
}

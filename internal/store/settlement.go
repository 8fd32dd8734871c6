package store

import (
	"fmt"
	"math"
	"time"

	"barpos/internal/model"
)

// buildReportLocked derives the immutable settlement report from the active
// shift. expectedCash = openingCash + cashSales and overShort =
// countedCash - expectedCash, computed here once and never recomputed.
// |overShort| above the threshold flags the report with a note; a carry-over
// count is appended to the note, or becomes the whole note when unflagged.
func (s *Store) buildReportLocked(countedCash float64, carried int, closedBy string) model.ShiftReport {
	shift := s.shift
	expected := shift.OpeningCash + shift.Metrics.CashSales()
	overShort := countedCash - expected

	byMethod := make(map[model.PaymentMethod]float64, len(shift.Metrics.ByMethod))
	for method, total := range shift.Metrics.ByMethod {
		byMethod[method] = total
	}

	report := model.ShiftReport{
		ID:           shift.ID,
		Operator:     shift.Operator,
		ClosedBy:     closedBy,
		StartedAt:    shift.StartedAt,
		EndedAt:      time.Now(),
		OpeningCash:  shift.OpeningCash,
		ClosingCash:  countedCash,
		TabCount:     shift.Metrics.TabCount,
		Gross:        shift.Metrics.Gross,
		Net:          shift.Metrics.Net,
		Tax:          shift.Metrics.Tax,
		ByMethod:     byMethod,
		ExpectedCash: expected,
		OverShort:    overShort,
		Closed:       append([]model.CloseResult(nil), shift.Closed...),
		Flagged:      math.Abs(overShort) > s.threshold,
	}
	report.FlagNote = flagNote(report.Flagged, overShort, carried)
	return report
}

func flagNote(flagged bool, overShort float64, carried int) string {
	var note string
	if flagged {
		if overShort > 0 {
			note = fmt.Sprintf("Cash over by $%.2f", overShort)
		} else {
			note = fmt.Sprintf("Cash short by $%.2f", -overShort)
		}
	}
	if carried > 0 {
		carryNote := fmt.Sprintf("%d tabs carried over", carried)
		if carried == 1 {
			carryNote = "1 tab carried over"
		}
		if note == "" {
			return carryNote
		}
		return note + "; " + carryNote
	}
	return note
}

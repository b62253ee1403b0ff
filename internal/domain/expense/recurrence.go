package expense

import (
	"time"

	"github.com/fincontrol/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// EndOfMonth returns the last instant of the day closing t's calendar month
func EndOfMonth(t time.Time) time.Time {
	firstOfNext := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, 1, 0)
	return firstOfNext.Add(-time.Nanosecond)
}

// GenerateRecurrences materializes the missing instances of every recurring
// series up to the given horizon. It is a pure function over the existing
// expenses: running it twice with the same inputs yields no new instances.
// Generation starts from each series' maximum due date and never produces a
// duplicate (series, due date) pair.
func GenerateRecurrences(existing []Expense, horizon time.Time) []Expense {
	type series struct {
		origin  *Expense
		maxDue  time.Time
		present map[time.Time]bool
	}

	bySeries := make(map[uuid.UUID]*series)
	for i := range existing {
		e := &existing[i]
		id := e.SeriesID()
		s, ok := bySeries[id]
		if !ok {
			s = &series{present: make(map[time.Time]bool)}
			bySeries[id] = s
		}
		due := truncateToDay(e.DueDate)
		s.present[due] = true
		if due.After(s.maxDue) {
			s.maxDue = due
		}
		if e.Recurring && e.RecurrenceOriginID != nil && *e.RecurrenceOriginID == e.ID {
			s.origin = e
		}
	}

	var generated []Expense
	for id, s := range bySeries {
		if s.origin == nil || s.origin.Periodicity == nil {
			continue
		}
		next := s.origin.Periodicity.Next(s.maxDue)
		for !next.After(horizon) {
			if !s.present[next] {
				generated = append(generated, newInstance(s.origin, id, next))
				s.present[next] = true
			}
			next = s.origin.Periodicity.Next(next)
		}
	}
	return generated
}

// newInstance copies the descriptive fields of the series origin into a
// fresh pending expense due on the given date.
func newInstance(origin *Expense, seriesID uuid.UUID, dueDate time.Time) Expense {
	originID := seriesID
	return Expense{
		BaseEntity:         shared.NewBaseEntity(),
		Description:        origin.Description,
		Category:           origin.Category,
		Type:               origin.Type,
		Amount:             origin.Amount,
		DueDate:            dueDate,
		Status:             StatusPending,
		PaymentMethod:      origin.PaymentMethod,
		Supplier:           origin.Supplier,
		CostCenter:         origin.CostCenter,
		Notes:              origin.Notes,
		Recurring:          true,
		Periodicity:        origin.Periodicity,
		RecurrenceOriginID: &originID,
	}
}

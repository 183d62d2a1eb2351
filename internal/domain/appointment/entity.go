package appointment

import (
	"time"

	"github.com/BruksfildServices01/barberpro-booking/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Transition aplica a mudança de status e carimba os horários.
func Transition(ap *models.Appointment, to Status, now time.Time) error {
	if err := CanTransition(Status(ap.Status), to); err != nil {
		return err
	}

	ap.Status = string(to)
	switch to {
	case StatusCancelled:
		ap.CancelledAt = &now
	case StatusCompleted:
		ap.CompletedAt = &now
	}
	return nil
}

func Cancel(ap *models.Appointment, now time.Time) error {
	return Transition(ap, StatusCancelled, now)
}

func Complete(ap *models.Appointment, now time.Time) error {
	return Transition(ap, StatusCompleted, now)
}

// Overlaps compara intervalos semiabertos [aStart, aEnd) e [bStart, bEnd).
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// OverlapsAny informa se [start, end) intercepta algum agendamento vivo da lista.
func OverlapsAny(start, end time.Time, aps []models.Appointment) bool {
	for i := range aps {
		if !Status(aps[i].Status).IsLive() {
			continue
		}
		if Overlaps(start, end, aps[i].ScheduledAt, aps[i].EndsAt) {
			return true
		}
	}
	return false
}

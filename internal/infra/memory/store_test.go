package memory

import (
	"context"
	"testing"
	"time"

	domain "github.com/BruksfildServices01/barberpro-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barberpro-booking/internal/httperr"
	"github.com/BruksfildServices01/barberpro-booking/internal/models"
)

func newAppointment(professionalID uint, start time.Time, minutes int, key string) *models.Appointment {
	return &models.Appointment{
		TenantID:        1,
		ProfessionalID:  professionalID,
		ClientID:        1,
		ServiceID:       1,
		ScheduledAt:     start,
		EndsAt:          start.Add(time.Duration(minutes) * time.Minute),
		DurationMinutes: minutes,
		Status:          string(domain.StatusConfirmed),
		IdempotencyKey:  key,
	}
}

func TestInsertIfNoOverlap(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	nine := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	first, created, err := s.InsertIfNoOverlap(ctx, newAppointment(1, nine, 60, "a"))
	if err != nil || !created {
		t.Fatalf("first insert: created=%v err=%v", created, err)
	}

	_, _, err = s.InsertIfNoOverlap(ctx, newAppointment(1, nine.Add(30*time.Minute), 30, "b"))
	if !httperr.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}

	if _, created, err := s.InsertIfNoOverlap(ctx, newAppointment(2, nine, 60, "c")); err != nil || !created {
		t.Fatalf("other professional should book freely: created=%v err=%v", created, err)
	}

	if _, created, err := s.InsertIfNoOverlap(ctx, newAppointment(1, nine.Add(time.Hour), 30, "d")); err != nil || !created {
		t.Fatalf("adjacent slot should book: created=%v err=%v", created, err)
	}

	replay, created, err := s.InsertIfNoOverlap(ctx, newAppointment(1, nine, 60, "a"))
	if err != nil || created || replay.ID != first.ID {
		t.Fatalf("expected idempotent replay of %d, got %+v created=%v err=%v", first.ID, replay, created, err)
	}
}

func TestCancelledAppointmentFreesSlot(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	nine := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	ap, _, err := s.InsertIfNoOverlap(ctx, newAppointment(1, nine, 30, "a"))
	if err != nil {
		t.Fatal(err)
	}

	if err := domain.Cancel(ap, nine); err != nil {
		t.Fatal(err)
	}
	if err := s.UpdateStatus(ctx, ap, domain.StatusConfirmed); err != nil {
		t.Fatalf("update status: %v", err)
	}

	if _, created, err := s.InsertIfNoOverlap(ctx, newAppointment(1, nine, 30, "a")); err != nil || !created {
		t.Fatalf("cancelled slot and key must be reusable: created=%v err=%v", created, err)
	}

	got, err := s.FindByProfessionalAndDateRange(ctx, 1, 1, nine, nine.Add(time.Hour))
	if err != nil || len(got) != 1 {
		t.Fatalf("expected exactly one live appointment, got %d (%v)", len(got), err)
	}
}

func TestUpdateStatusIsConditional(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	nine := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	ap, _, _ := s.InsertIfNoOverlap(ctx, newAppointment(1, nine, 30, ""))
	stale := *ap

	ap.Status = string(domain.StatusCompleted)
	if err := s.UpdateStatus(ctx, ap, domain.StatusConfirmed); err != nil {
		t.Fatal(err)
	}

	stale.Status = string(domain.StatusCancelled)
	if err := s.UpdateStatus(ctx, &stale, domain.StatusConfirmed); !httperr.IsConflict(err) {
		t.Fatalf("expected status_changed conflict, got %v", err)
	}
}

func TestRescheduleKeepsOriginalOnConflict(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	nine := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	ap, _, _ := s.InsertIfNoOverlap(ctx, newAppointment(1, nine, 30, ""))
	s.InsertIfNoOverlap(ctx, newAppointment(1, nine.Add(time.Hour), 30, ""))

	old := *ap
	domain.Cancel(&old, nine)
	_, err := s.Reschedule(ctx, &old, domain.StatusConfirmed, newAppointment(1, nine.Add(time.Hour), 30, ""))
	if !httperr.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}

	cur, _ := s.GetAppointment(ctx, ap.ID)
	if cur.Status != string(domain.StatusConfirmed) {
		t.Fatalf("original must stay live, got %s", cur.Status)
	}

	// mover 15 minutos sobrepõe o próprio horário antigo, que é liberado na mesma transação
	old = *ap
	domain.Cancel(&old, nine)
	moved, err := s.Reschedule(ctx, &old, domain.StatusConfirmed, newAppointment(1, nine.Add(15*time.Minute), 30, ""))
	if err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	if moved.ID == ap.ID || old.Status != string(domain.StatusCancelled) {
		t.Fatalf("expected a new appointment and the old one cancelled: %+v %+v", moved, old)
	}
}

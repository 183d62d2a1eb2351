package appointment

import (
	"context"
	"testing"
	"time"

	domain "github.com/BruksfildServices01/barberpro-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barberpro-booking/internal/httperr"
	"github.com/BruksfildServices01/barberpro-booking/internal/models"
)

func bookAt(t *testing.T, f *fixture, svc models.Service, hm string) *models.Appointment {
	t.Helper()
	res, err := f.book().Execute(context.Background(), BookInput{
		TenantID:     f.tenant.ID,
		ServiceID:    svc.ID,
		Professional: domain.Specific(f.pro.ID),
		Start:        at(hm),
		ClientID:     f.client.ID,
	})
	if err != nil {
		t.Fatalf("book %s: %v", hm, err)
	}
	return res.Appointment
}

func TestCancelFreesSlot(t *testing.T) {
	f := newFixture(t)
	f.works(f.pro.ID, time.Monday, "09:00", "10:00", "", "")
	svc := f.service(60)

	ap := bookAt(t, f, svc, "09:00")

	slots, _ := f.availability().Execute(context.Background(), domain.AvailabilityInput{
		TenantID: f.tenant.ID, ServiceID: svc.ID, Date: testMonday, Professional: domain.Specific(f.pro.ID),
	})
	if len(slots) != 0 {
		t.Fatalf("booked day should be full, got %v", starts(slots))
	}

	cancelled, err := NewCancelAppointment(f.markStatus()).Execute(context.Background(), f.tenant.ID, nil, ap.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != string(domain.StatusCancelled) || cancelled.CancelledAt == nil {
		t.Fatalf("expected cancelled with timestamp, got %+v", cancelled)
	}

	slots, _ = f.availability().Execute(context.Background(), domain.AvailabilityInput{
		TenantID: f.tenant.ID, ServiceID: svc.ID, Date: testMonday, Professional: domain.Specific(f.pro.ID),
	})
	if got := starts(slots); !sameStrings(got, []string{"09:00"}) {
		t.Fatalf("cancelled slot should be offered again, got %v", got)
	}

	// mesmo cliente, mesmo horário: a chave antiga não conta mais
	again := bookAt(t, f, svc, "09:00")
	if again.ID == ap.ID {
		t.Fatal("cancelled appointment must not be replayed")
	}

	_, err = NewCancelAppointment(f.markStatus()).Execute(context.Background(), f.tenant.ID, nil, ap.ID)
	expectBusiness(t, err, httperr.KindInvalid, "invalid_state")
}

func TestMarkStatusTransitions(t *testing.T) {
	f := newFixture(t)
	f.works(f.pro.ID, time.Monday, "09:00", "18:00", "", "")
	svc := f.service(30)
	uc := f.markStatus()

	ap := bookAt(t, f, svc, "09:00")

	confirmed, err := uc.Execute(context.Background(), f.tenant.ID, nil, ap.ID, domain.StatusConfirmed)
	if err != nil || confirmed.Status != string(domain.StatusConfirmed) {
		t.Fatalf("confirm: %+v err=%v", confirmed, err)
	}

	done, err := uc.Execute(context.Background(), f.tenant.ID, nil, ap.ID, domain.StatusCompleted)
	if err != nil || done.CompletedAt == nil {
		t.Fatalf("complete: %+v err=%v", done, err)
	}

	_, err = uc.Execute(context.Background(), f.tenant.ID, nil, ap.ID, domain.StatusPending)
	expectBusiness(t, err, httperr.KindInvalid, "invalid_state")

	// completed continua ocupando o horário
	_, err = f.book().Execute(context.Background(), BookInput{
		TenantID:     f.tenant.ID,
		ServiceID:    svc.ID,
		Professional: domain.Specific(f.pro.ID),
		Start:        at("09:00"),
		ClientName:   "Outro",
		ClientPhone:  "11111111111",
	})
	expectBusiness(t, err, httperr.KindConflict, "time_conflict")
}

func TestMarkStatusAcrossTenants(t *testing.T) {
	f := newFixture(t)
	f.works(f.pro.ID, time.Monday, "09:00", "18:00", "", "")
	svc := f.service(30)
	ap := bookAt(t, f, svc, "09:00")

	other := f.store.AddTenant(models.Tenant{Name: "Outra", Slug: "outra"}, models.DefaultSettings(0))

	_, err := f.markStatus().Execute(context.Background(), other.ID, nil, ap.ID, domain.StatusCancelled)
	expectBusiness(t, err, httperr.KindTenantMismatch, "appointment_tenant_mismatch")

	_, err = f.markStatus().Execute(context.Background(), f.tenant.ID, nil, 9999, domain.StatusCancelled)
	expectBusiness(t, err, httperr.KindNotFound, "appointment_not_found")

	stored, _ := f.store.GetAppointment(context.Background(), ap.ID)
	if stored.Status != string(domain.StatusPending) {
		t.Fatalf("foreign tenant must not change the appointment, got %s", stored.Status)
	}
}

func TestRescheduleMovesAppointment(t *testing.T) {
	f := newFixture(t)
	f.works(f.pro.ID, time.Monday, "09:00", "18:00", "", "")
	svc := f.service(60)
	ap := bookAt(t, f, svc, "09:00")

	moved, err := f.reschedule().Execute(context.Background(), RescheduleInput{
		TenantID:      f.tenant.ID,
		AppointmentID: ap.ID,
		NewStart:      at("14:00"),
	})
	if err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	if moved.ID == ap.ID || !moved.ScheduledAt.Equal(at("14:00")) || !moved.EndsAt.Equal(at("15:00")) {
		t.Fatalf("unexpected rescheduled appointment %+v", moved)
	}
	if moved.Status != ap.Status {
		t.Fatalf("status should carry over: %s != %s", moved.Status, ap.Status)
	}

	old, _ := f.store.GetAppointment(context.Background(), ap.ID)
	if old.Status != string(domain.StatusCancelled) {
		t.Fatalf("original should be cancelled, got %s", old.Status)
	}

	// 09:00 voltou a ficar livre
	bookAt(t, f, svc, "09:00")
}

func TestRescheduleConflictKeepsOriginal(t *testing.T) {
	f := newFixture(t)
	f.works(f.pro.ID, time.Monday, "09:00", "18:00", "", "")
	svc := f.service(60)
	ap := bookAt(t, f, svc, "09:00")
	f.booked(f.pro.ID, "14:30", 30, domain.StatusConfirmed)

	_, err := f.reschedule().Execute(context.Background(), RescheduleInput{
		TenantID:      f.tenant.ID,
		AppointmentID: ap.ID,
		NewStart:      at("14:00"),
	})
	expectBusiness(t, err, httperr.KindConflict, "time_conflict")

	stored, _ := f.store.GetAppointment(context.Background(), ap.ID)
	if stored.Status != string(domain.StatusPending) || !stored.ScheduledAt.Equal(at("09:00")) {
		t.Fatalf("original must stay live and unchanged, got %+v", stored)
	}

	_, err = f.reschedule().Execute(context.Background(), RescheduleInput{
		TenantID:      f.tenant.ID,
		AppointmentID: ap.ID,
		NewStart:      at("17:30"),
	})
	expectBusiness(t, err, httperr.KindInvalid, "outside_working_hours")
}

func TestRescheduleOntoOverlappingOwnSlot(t *testing.T) {
	f := newFixture(t)
	f.works(f.pro.ID, time.Monday, "09:00", "18:00", "", "")
	svc := f.service(60)
	ap := bookAt(t, f, svc, "09:00")

	moved, err := f.reschedule().Execute(context.Background(), RescheduleInput{
		TenantID:      f.tenant.ID,
		AppointmentID: ap.ID,
		NewStart:      at("09:30"),
	})
	if err != nil {
		t.Fatalf("shifting within its own interval should succeed: %v", err)
	}
	if !moved.ScheduledAt.Equal(at("09:30")) {
		t.Fatalf("unexpected start %v", moved.ScheduledAt)
	}
}

func TestListAppointmentsByDateAndMonth(t *testing.T) {
	f := newFixture(t)
	f.works(f.pro.ID, time.Monday, "09:00", "18:00", "", "")
	f.works(f.pro.ID, time.Tuesday, "09:00", "18:00", "", "")
	svc := f.service(30)

	bookAt(t, f, svc, "11:00")
	bookAt(t, f, svc, "09:00")
	res, err := f.book().Execute(context.Background(), BookInput{
		TenantID:     f.tenant.ID,
		ServiceID:    svc.ID,
		Professional: domain.Specific(f.pro.ID),
		Start:        at("09:00").AddDate(0, 0, 1),
		ClientID:     f.client.ID,
	})
	if err != nil {
		t.Fatal(err)
	}

	day, err := NewListAppointmentsByDate(f.store).Execute(context.Background(), f.tenant.ID, 0, testMonday)
	if err != nil {
		t.Fatalf("by date: %v", err)
	}
	if len(day) != 2 || day[0].StartTime.Format("15:04") != "09:00" || day[1].StartTime.Format("15:04") != "11:00" {
		t.Fatalf("unexpected day agenda %+v", day)
	}
	if day[0].ClientName != f.client.Name || day[0].ServiceName != svc.Name || day[0].ProfessionalName != f.pro.Name {
		t.Fatalf("agenda should carry names, got %+v", day[0])
	}

	month, err := NewListAppointmentsByMonth(f.store).Execute(context.Background(), f.tenant.ID, f.pro.ID, 2026, 3)
	if err != nil {
		t.Fatalf("by month: %v", err)
	}
	if len(month) != 3 || month[2].ID != res.Appointment.ID {
		t.Fatalf("unexpected month agenda %+v", month)
	}

	_, err = NewListAppointmentsByMonth(f.store).Execute(context.Background(), f.tenant.ID, 0, 2026, 13)
	expectBusiness(t, err, httperr.KindInvalid, "invalid_month")

	_, err = NewListAppointmentsByDate(f.store).Execute(context.Background(), f.tenant.ID, 0, "amanhã")
	expectBusiness(t, err, httperr.KindInvalid, "invalid_date")
}

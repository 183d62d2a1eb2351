package appointment

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	domain "github.com/BruksfildServices01/barberpro-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barberpro-booking/internal/httperr"
	"github.com/BruksfildServices01/barberpro-booking/internal/models"
)

func TestBookCreatesPendingAppointmentWithSnapshot(t *testing.T) {
	f := newFixture(t)
	f.works(f.pro.ID, time.Monday, "09:00", "18:00", "", "")
	svc := f.service(45)

	res, err := f.book().Execute(context.Background(), BookInput{
		TenantID:     f.tenant.ID,
		ServiceID:    svc.ID,
		Professional: domain.Specific(f.pro.ID),
		Start:        at("10:00"),
		ClientID:     f.client.ID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ap := res.Appointment
	if res.Replayed {
		t.Fatal("first booking must not be a replay")
	}
	if ap.Status != string(domain.StatusPending) {
		t.Fatalf("expected pending, got %s", ap.Status)
	}
	if ap.ProfessionalID != f.pro.ID || ap.DurationMinutes != 45 || ap.Price != 50 {
		t.Fatalf("unexpected appointment %+v", ap)
	}
	if !ap.EndsAt.Equal(at("10:45")) {
		t.Fatalf("expected end 10:45, got %v", ap.EndsAt)
	}
}

func TestBookStaffAndAutoConfirm(t *testing.T) {
	f := newFixture(t)
	f.works(f.pro.ID, time.Monday, "09:00", "18:00", "", "")
	svc := f.service(30)

	res, err := f.book().Execute(context.Background(), BookInput{
		TenantID:     f.tenant.ID,
		ServiceID:    svc.ID,
		Professional: domain.Specific(f.pro.ID),
		Start:        at("09:00"),
		ClientID:     f.client.ID,
		Confirm:      true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Appointment.Status != string(domain.StatusConfirmed) {
		t.Fatalf("staff booking should be confirmed, got %s", res.Appointment.Status)
	}

	st := models.DefaultSettings(0)
	st.AutoConfirm = true
	g := newFixtureWith(t, st)
	g.works(g.pro.ID, time.Monday, "09:00", "18:00", "", "")
	gsvc := g.service(30)

	res, err = g.book().Execute(context.Background(), BookInput{
		TenantID:     g.tenant.ID,
		ServiceID:    gsvc.ID,
		Professional: domain.Specific(g.pro.ID),
		Start:        at("09:00"),
		ClientName:   "Maria",
		ClientPhone:  "11888887777",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Appointment.Status != string(domain.StatusConfirmed) {
		t.Fatalf("auto confirm should confirm, got %s", res.Appointment.Status)
	}
}

func TestBookEveryOfferedSlotSucceeds(t *testing.T) {
	f := newFixture(t)
	f.works(f.pro.ID, time.Monday, "09:00", "12:00", "10:00", "10:15")
	f.booked(f.pro.ID, "09:30", 30, domain.StatusConfirmed)
	svc := f.service(45)

	slots, err := f.availability().Execute(context.Background(), domain.AvailabilityInput{
		TenantID:     f.tenant.ID,
		ServiceID:    svc.ID,
		Date:         testMonday,
		Professional: domain.Specific(f.pro.ID),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, slot := range slots {
		// cada slot num store limpo, para não depender dos anteriores
		g := newFixture(t)
		g.works(g.pro.ID, time.Monday, "09:00", "12:00", "10:00", "10:15")
		g.booked(g.pro.ID, "09:30", 30, domain.StatusConfirmed)
		gsvc := g.service(45)

		_, err := g.book().Execute(context.Background(), BookInput{
			TenantID:     g.tenant.ID,
			ServiceID:    gsvc.ID,
			Professional: domain.Specific(g.pro.ID),
			Start:        slot.Start,
			ClientID:     g.client.ID,
		})
		if err != nil {
			t.Fatalf("offered slot %s rejected: %v", slot.Start.Format("15:04"), err)
		}
	}
}

func TestBookRejections(t *testing.T) {
	f := newFixture(t)
	f.works(f.pro.ID, time.Monday, "09:00", "12:00", "10:00", "10:15")
	f.works(f.pro.ID, time.Sunday, "08:00", "12:00", "", "")
	f.works(f.pro.ID, time.Wednesday, "08:00", "12:00", "", "")
	svc := f.service(30)
	broken := f.service(0)

	inactive := f.store.AddService(models.Service{TenantID: f.tenant.ID, Name: "Antigo", DurationMinutes: 30})

	other := f.store.AddTenant(models.Tenant{Name: "Outra", Slug: "outra"}, models.DefaultSettings(0))
	foreignClient := f.store.AddClient(models.Client{TenantID: other.ID, Name: "Ana", Phone: "1"})
	foreignService := f.store.AddService(models.Service{TenantID: other.ID, Name: "Barba", DurationMinutes: 30, Active: true})

	sunday := func(hm string) time.Time { return at(hm).AddDate(0, 0, -1) }

	tests := []struct {
		name string
		in   BookInput
		kind httperr.Kind
		code string
	}{
		{
			name: "inside break",
			in:   BookInput{ServiceID: svc.ID, Start: at("09:45")},
			kind: httperr.KindInvalid,
			code: "outside_working_hours",
		},
		{
			name: "past closing",
			in:   BookInput{ServiceID: svc.ID, Start: at("11:45")},
			kind: httperr.KindInvalid,
			code: "outside_working_hours",
		},
		{
			name: "day off",
			in:   BookInput{ServiceID: svc.ID, Start: at("09:00").AddDate(0, 0, 1)},
			kind: httperr.KindInvalid,
			code: "outside_working_hours",
		},
		{
			name: "one hour ahead with two hours minimum",
			in:   BookInput{ServiceID: svc.ID, Start: sunday("09:00")},
			kind: httperr.KindInvalid,
			code: "too_soon",
		},
		{
			name: "thirty one days ahead",
			in:   BookInput{ServiceID: svc.ID, Start: time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)},
			kind: httperr.KindInvalid,
			code: "too_far",
		},
		{
			name: "zero duration",
			in:   BookInput{ServiceID: broken.ID, Start: at("09:00")},
			kind: httperr.KindInvalid,
			code: "invalid_duration",
		},
		{
			name: "inactive service",
			in:   BookInput{ServiceID: inactive.ID, Start: at("09:00")},
			kind: httperr.KindInvalid,
			code: "service_inactive",
		},
		{
			name: "service from another tenant",
			in:   BookInput{ServiceID: foreignService.ID, Start: at("09:00")},
			kind: httperr.KindTenantMismatch,
			code: "service_tenant_mismatch",
		},
		{
			name: "client from another tenant",
			in:   BookInput{ServiceID: svc.ID, Start: at("09:00"), ClientID: foreignClient.ID},
			kind: httperr.KindTenantMismatch,
			code: "client_tenant_mismatch",
		},
		{
			name: "unknown professional",
			in:   BookInput{ServiceID: svc.ID, Start: at("09:00"), Professional: domain.Specific(9999)},
			kind: httperr.KindNotFound,
			code: "professional_not_found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tt.in
			in.TenantID = f.tenant.ID
			if in.ClientID == 0 {
				in.ClientID = f.client.ID
			}
			if in.Professional.IsAny() {
				in.Professional = domain.Specific(f.pro.ID)
			}

			_, err := f.book().Execute(context.Background(), in)
			expectBusiness(t, err, tt.kind, tt.code)
		})
	}

	if n := len(f.store.Appointments(f.tenant.ID)); n != 0 {
		t.Fatalf("rejected bookings must not persist, found %d", n)
	}
}

func TestBookConflictAndIdempotentReplay(t *testing.T) {
	f := newFixture(t)
	f.works(f.pro.ID, time.Monday, "09:00", "18:00", "", "")
	svc := f.service(60)
	other := f.store.AddClient(models.Client{TenantID: f.tenant.ID, Name: "Lucas", Phone: "11777776666"})

	in := BookInput{
		TenantID:     f.tenant.ID,
		ServiceID:    svc.ID,
		Professional: domain.Specific(f.pro.ID),
		Start:        at("10:00"),
		ClientID:     f.client.ID,
	}

	first, err := f.book().Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	replay, err := f.book().Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("replay failed: %v", err)
	}
	if !replay.Replayed || replay.Appointment.ID != first.Appointment.ID {
		t.Fatalf("expected replay of %d, got %+v", first.Appointment.ID, replay)
	}

	overlap := in
	overlap.ClientID = other.ID
	overlap.Start = at("10:30")
	_, err = f.book().Execute(context.Background(), overlap)
	expectBusiness(t, err, httperr.KindConflict, "time_conflict")

	if n := len(f.store.Appointments(f.tenant.ID)); n != 1 {
		t.Fatalf("expected a single appointment, found %d", n)
	}
}

func TestBookConcurrentRaceHasOneWinner(t *testing.T) {
	f := newFixture(t)
	f.works(f.pro.ID, time.Monday, "09:00", "18:00", "", "")
	svc := f.service(30)
	uc := f.book()

	const attempts = 100

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			// metade disputa 10:00, metade 10:15; os intervalos se sobrepõem
			start := at("10:00")
			if i%2 == 1 {
				start = at("10:15")
			}

			_, err := uc.Execute(context.Background(), BookInput{
				TenantID:     f.tenant.ID,
				ServiceID:    svc.ID,
				Professional: domain.Specific(f.pro.ID),
				Start:        start,
				ClientName:   fmt.Sprintf("Cliente %d", i),
				ClientPhone:  fmt.Sprintf("119%08d", i),
			})

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case httperr.IsConflict(err):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if succeeded != 1 || conflicts != attempts-1 {
		t.Fatalf("expected 1 success and %d conflicts, got %d and %d", attempts-1, succeeded, conflicts)
	}

	live := 0
	for _, ap := range f.store.Appointments(f.tenant.ID) {
		if domain.Status(ap.Status).IsLive() {
			live++
		}
	}
	if live != 1 {
		t.Fatalf("expected one live appointment, found %d", live)
	}
}

func TestBookAnyResolvesToLighterProfessional(t *testing.T) {
	f := newFixture(t)
	second := f.addProfessional("Bruno")
	f.works(f.pro.ID, time.Monday, "09:00", "18:00", "", "")
	f.works(second.ID, time.Monday, "09:00", "18:00", "", "")
	f.booked(f.pro.ID, "15:00", 30, domain.StatusConfirmed)
	svc := f.service(30)

	res, err := f.book().Execute(context.Background(), BookInput{
		TenantID:     f.tenant.ID,
		ServiceID:    svc.ID,
		Professional: domain.Any(),
		Start:        at("10:00"),
		ClientID:     f.client.ID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Appointment.ProfessionalID != second.ID {
		t.Fatalf("expected professional %d, got %d", second.ID, res.Appointment.ProfessionalID)
	}

	// second agora também tem um; o próximo empate vai para o menor id
	res, err = f.book().Execute(context.Background(), BookInput{
		TenantID:     f.tenant.ID,
		ServiceID:    svc.ID,
		Professional: domain.Any(),
		Start:        at("11:00"),
		ClientID:     f.client.ID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := min(f.pro.ID, second.ID); res.Appointment.ProfessionalID != want {
		t.Fatalf("tie should go to %d, got %d", want, res.Appointment.ProfessionalID)
	}
}

func TestBookAnyFallsBackWhenLighterIsBusy(t *testing.T) {
	f := newFixture(t)
	second := f.addProfessional("Bruno")
	f.works(f.pro.ID, time.Monday, "09:00", "18:00", "", "")
	f.works(second.ID, time.Monday, "09:00", "18:00", "", "")
	f.booked(f.pro.ID, "15:00", 30, domain.StatusConfirmed)
	f.booked(f.pro.ID, "16:00", 30, domain.StatusConfirmed)
	f.booked(second.ID, "10:00", 30, domain.StatusConfirmed)
	svc := f.service(30)

	res, err := f.book().Execute(context.Background(), BookInput{
		TenantID:     f.tenant.ID,
		ServiceID:    svc.ID,
		Professional: domain.Any(),
		Start:        at("10:00"),
		ClientID:     f.client.ID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Appointment.ProfessionalID != f.pro.ID {
		t.Fatalf("expected the only free professional %d, got %d", f.pro.ID, res.Appointment.ProfessionalID)
	}

	replay, err := f.book().Execute(context.Background(), BookInput{
		TenantID:     f.tenant.ID,
		ServiceID:    svc.ID,
		Professional: domain.Any(),
		Start:        at("10:00"),
		ClientID:     f.client.ID,
	})
	if err != nil || !replay.Replayed || replay.Appointment.ID != res.Appointment.ID {
		t.Fatalf("expected replay of %d, got %+v err=%v", res.Appointment.ID, replay, err)
	}
}

func TestBookRequiresClient(t *testing.T) {
	f := newFixture(t)
	f.works(f.pro.ID, time.Monday, "09:00", "18:00", "", "")
	svc := f.service(30)

	_, err := f.book().Execute(context.Background(), BookInput{
		TenantID:     f.tenant.ID,
		ServiceID:    svc.ID,
		Professional: domain.Specific(f.pro.ID),
		Start:        at("09:00"),
		ClientPhone:  "11999990000",
	})
	expectBusiness(t, err, httperr.KindInvalid, "missing_client")
}

func TestRejectedBookingDoesNotCreateClient(t *testing.T) {
	f := newFixture(t)
	f.works(f.pro.ID, time.Monday, "09:00", "18:00", "", "")
	svc := f.service(30)

	ctx := context.Background()
	before, err := f.store.ListClients(ctx, f.tenant.ID, "")
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name  string
		start time.Time
		code  string
	}{
		{"outside working hours", at("19:00"), "outside_working_hours"},
		{"in the past", testNow.Add(-time.Hour), "too_soon"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.book().Execute(ctx, BookInput{
				TenantID:     f.tenant.ID,
				ServiceID:    svc.ID,
				Professional: domain.Specific(f.pro.ID),
				Start:        tc.start,
				ClientName:   "Maria",
				ClientPhone:  "11988887777",
			})
			expectBusiness(t, err, httperr.KindInvalid, tc.code)
		})
	}

	after, err := f.store.ListClients(ctx, f.tenant.ID, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(after) != len(before) {
		t.Fatalf("clients = %d, want %d", len(after), len(before))
	}
}

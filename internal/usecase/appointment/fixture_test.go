package appointment

import (
	"testing"
	"time"

	domain "github.com/BruksfildServices01/barberpro-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barberpro-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barberpro-booking/internal/httperr"
	"github.com/BruksfildServices01/barberpro-booking/internal/infra/memory"
	"github.com/BruksfildServices01/barberpro-booking/internal/models"
	"github.com/BruksfildServices01/barberpro-booking/internal/timezone"
)

// domingo 01/03/2026 08:00 UTC; a segunda de teste é 02/03.
var (
	testNow    = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	testMonday = "2026-03-02"
)

func at(hm string) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04", testMonday+" "+hm, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

type fixture struct {
	store    *memory.Store
	tenant   models.Tenant
	pro      models.Professional
	client   models.Client
	calendar *schedule.Calendar
	clock    timezone.Clock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWith(t, models.DefaultSettings(0))
}

func newFixtureWith(t *testing.T, st models.TenantSettings) *fixture {
	t.Helper()

	s := memory.NewStore()
	tenant := s.AddTenant(models.Tenant{Name: "Barbearia Centro", Slug: "centro", Timezone: "UTC"}, st)
	pro := s.AddProfessional(models.Professional{TenantID: tenant.ID, Name: "Carlos", Active: true})
	client := s.AddClient(models.Client{TenantID: tenant.ID, Name: "João", Phone: "11999990000"})

	return &fixture{
		store:    s,
		tenant:   tenant,
		pro:      pro,
		client:   client,
		calendar: schedule.NewCalendar(s, nil),
		clock:    timezone.Fixed(testNow),
	}
}

func (f *fixture) addProfessional(name string) models.Professional {
	return f.store.AddProfessional(models.Professional{TenantID: f.tenant.ID, Name: name, Active: true})
}

func (f *fixture) works(professionalID uint, weekday time.Weekday, start, end, breakStart, breakEnd string) {
	f.store.AddSchedule(models.ProfessionalSchedule{
		TenantID:       f.tenant.ID,
		ProfessionalID: professionalID,
		DayOfWeek:      int(weekday),
		StartTime:      start,
		EndTime:        end,
		BreakStart:     breakStart,
		BreakEnd:       breakEnd,
	})
}

func (f *fixture) service(minutes int) models.Service {
	return f.store.AddService(models.Service{
		TenantID:        f.tenant.ID,
		Name:            "Corte",
		DurationMinutes: minutes,
		Price:           50,
		Active:          true,
	})
}

func (f *fixture) booked(professionalID uint, start string, minutes int, status domain.Status) models.Appointment {
	return f.store.AddAppointment(models.Appointment{
		TenantID:        f.tenant.ID,
		ProfessionalID:  professionalID,
		ClientID:        f.client.ID,
		ServiceID:       1,
		ScheduledAt:     at(start),
		DurationMinutes: minutes,
		Status:          string(status),
	})
}

func (f *fixture) availability() *GetAvailability {
	return NewGetAvailability(f.store, f.calendar, nil, f.clock, nil, nil)
}

func (f *fixture) book() *Book {
	return NewBook(f.store, f.calendar, nil, f.clock, nil, nil)
}

func (f *fixture) markStatus() *MarkStatus {
	return NewMarkStatus(f.store, nil, f.clock, nil, nil)
}

func (f *fixture) reschedule() *Reschedule {
	return NewReschedule(f.store, f.calendar, nil, f.clock, nil, nil)
}

func starts(slots []domain.Slot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Start.Format("15:04"))
	}
	return out
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func expectBusiness(t *testing.T, err error, kind httperr.Kind, code string) {
	t.Helper()
	if httperr.KindOf(err) != kind || !httperr.IsBusiness(err, code) {
		t.Fatalf("expected %s/%s, got %v", kind, code, err)
	}
}

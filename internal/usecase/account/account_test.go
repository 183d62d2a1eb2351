package account

import (
	"context"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/BruksfildServices01/barberpro-booking/internal/auth"
	"github.com/BruksfildServices01/barberpro-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barberpro-booking/internal/httperr"
	"github.com/BruksfildServices01/barberpro-booking/internal/infra/memory"
	"github.com/BruksfildServices01/barberpro-booking/internal/models"
)

func validInput() RegisterInput {
	return RegisterInput{
		TenantName: "Barbearia do Zé",
		TenantSlug: "  Barbearia-Do-Ze ",
		Name:       "José",
		Email:      "ZE@Example.com",
		Password:   "segredo123",
	}
}

func TestRegisterCreatesBookableTenant(t *testing.T) {
	store := memory.NewStore()
	uc := NewRegister(store, "secret", nil, nil)

	sess, err := uc.Execute(context.Background(), validInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if sess.Tenant.Slug != "barbearia-do-ze" || sess.User.Email != "ze@example.com" {
		t.Fatalf("input not normalized: %+v %+v", sess.Tenant, sess.User)
	}
	if sess.User.Role != models.RoleOwner || sess.Tenant.Timezone != "America/Sao_Paulo" {
		t.Fatalf("unexpected defaults: role=%s tz=%s", sess.User.Role, sess.Tenant.Timezone)
	}

	claims, err := auth.Parse("secret", sess.Token)
	if err != nil || claims.TenantID != sess.Tenant.ID || claims.UserID != sess.User.ID {
		t.Fatalf("bad token: %+v err=%v", claims, err)
	}

	st, err := store.GetSettings(context.Background(), sess.Tenant.ID)
	if err != nil || st.MinAdvanceHours != 2 || st.MaxAdvanceDays != 30 || st.SlotDurationMinutes != 30 {
		t.Fatalf("default settings missing: %+v err=%v", st, err)
	}

	pros, _ := store.ListActiveProfessionals(context.Background(), sess.Tenant.ID)
	if len(pros) != 1 {
		t.Fatalf("owner should be the first professional, got %d", len(pros))
	}

	cal := schedule.NewCalendar(store, nil)
	w, ok, err := cal.WorkingWindow(context.Background(), pros[0].ID, time.Monday)
	if err != nil || !ok || schedule.FormatClock(w.Start) != "09:00" || schedule.FormatClock(w.End) != "19:00" {
		t.Fatalf("unexpected monday window %+v ok=%v err=%v", w, ok, err)
	}
	if _, ok, _ := cal.WorkingWindow(context.Background(), pros[0].ID, time.Sunday); ok {
		t.Fatal("sunday should be a day off")
	}
}

func TestRegisterRejections(t *testing.T) {
	store := memory.NewStore()
	uc := NewRegister(store, "secret", nil, nil)
	if _, err := uc.Execute(context.Background(), validInput()); err != nil {
		t.Fatal(err)
	}

	sameSlug := validInput()
	sameSlug.Email = "outro@example.com"
	_, err := uc.Execute(context.Background(), sameSlug)
	if httperr.KindOf(err) != httperr.KindConflict || !httperr.IsBusiness(err, "slug_already_exists") {
		t.Fatalf("expected slug conflict, got %v", err)
	}

	sameEmail := validInput()
	sameEmail.TenantSlug = "outra"
	_, err = uc.Execute(context.Background(), sameEmail)
	if !httperr.IsBusiness(err, "email_already_exists") {
		t.Fatalf("expected email conflict, got %v", err)
	}

	badSlug := validInput()
	badSlug.TenantSlug = "com espaço"
	if _, err := uc.Execute(context.Background(), badSlug); !httperr.IsBusiness(err, "invalid_slug") {
		t.Fatalf("expected invalid_slug, got %v", err)
	}

	badTZ := validInput()
	badTZ.TenantSlug = "tz"
	badTZ.Email = "tz@example.com"
	badTZ.Timezone = "Marte/Olympus"
	if _, err := uc.Execute(context.Background(), badTZ); !httperr.IsBusiness(err, "invalid_timezone") {
		t.Fatalf("expected invalid_timezone, got %v", err)
	}

	noMX := NewRegister(store, "secret", nil, func(string) bool { return false })
	in := validInput()
	in.TenantSlug = "sem-mx"
	in.Email = "a@nowhere.invalid"
	if _, err := noMX.Execute(context.Background(), in); !httperr.IsBusiness(err, "invalid_email_domain") {
		t.Fatalf("expected invalid_email_domain, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	store := memory.NewStore()
	reg, err := NewRegister(store, "secret", nil, nil).Execute(context.Background(), validInput())
	if err != nil {
		t.Fatal(err)
	}

	uc := NewLogin(store, "secret", nil)

	sess, err := uc.Execute(context.Background(), " ze@example.com ", "segredo123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if sess.Tenant.ID != reg.Tenant.ID || sess.Token == "" {
		t.Fatalf("unexpected session %+v", sess)
	}

	if _, err := uc.Execute(context.Background(), "ze@example.com", "errada"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, err := uc.Execute(context.Background(), "ninguem@example.com", "x"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

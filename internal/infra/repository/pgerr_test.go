package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barberpro-booking/internal/db"
	domain "github.com/BruksfildServices01/barberpro-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barberpro-booking/internal/httperr"
	"github.com/BruksfildServices01/barberpro-booking/internal/models"
)

func wrapped(code, constraint string) error {
	return fmt.Errorf("insert appointment: %w", &pgconn.PgError{Code: code, ConstraintName: constraint})
}

func TestPgErrorClassification(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		overlap     bool
		idempotency bool
		unique      bool
	}{
		{"exclusion", wrapped("23P01", db.OverlapConstraint), true, false, false},
		{"idempotency index", wrapped("23505", db.IdempotencyIndex), false, true, true},
		{"other unique", wrapped("23505", "idx_client_tenant_phone"), false, false, true},
		{"other sqlstate", wrapped("23503", "fk_appointments_client"), false, false, false},
		{"plain error", errors.New("connection reset"), false, false, false},
		{"nil", nil, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isOverlapViolation(tt.err); got != tt.overlap {
				t.Errorf("isOverlapViolation = %v, want %v", got, tt.overlap)
			}
			if got := isIdempotencyViolation(tt.err); got != tt.idempotency {
				t.Errorf("isIdempotencyViolation = %v, want %v", got, tt.idempotency)
			}
			if got := isUniqueViolation(tt.err); got != tt.unique {
				t.Errorf("isUniqueViolation = %v, want %v", got, tt.unique)
			}
		})
	}
}

func TestMapInsertError(t *testing.T) {
	winner := &models.Appointment{ID: 42, Status: string(domain.StatusPending)}

	tests := []struct {
		name       string
		err        error
		replay     func() (*models.Appointment, error)
		wantID     uint
		wantCode   string
		wantRaw    bool
		wantReplay bool
	}{
		{
			name:     "exclusion is a conflict",
			err:      wrapped("23P01", db.OverlapConstraint),
			wantCode: "time_conflict",
		},
		{
			name:       "idempotency index replays the winner",
			err:        wrapped("23505", db.IdempotencyIndex),
			replay:     func() (*models.Appointment, error) { return winner, nil },
			wantID:     42,
			wantReplay: true,
		},
		{
			name:       "winner already gone is a conflict",
			err:        wrapped("23505", db.IdempotencyIndex),
			replay:     func() (*models.Appointment, error) { return nil, gorm.ErrRecordNotFound },
			wantCode:   "time_conflict",
			wantReplay: true,
		},
		{
			name:    "unique on another constraint is not a replay",
			err:     wrapped("23505", "idx_client_tenant_phone"),
			wantRaw: true,
		},
		{
			name:    "unknown errors pass through",
			err:     errors.New("connection reset"),
			wantRaw: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			replayed := false
			replay := func() (*models.Appointment, error) {
				replayed = true
				if tt.replay == nil {
					return nil, errors.New("unexpected replay")
				}
				return tt.replay()
			}

			ap, created, err := mapInsertError(tt.err, replay)

			if created {
				t.Fatal("mapped error must never report created")
			}
			if replayed != tt.wantReplay {
				t.Fatalf("replay called = %v, want %v", replayed, tt.wantReplay)
			}

			switch {
			case tt.wantID != 0:
				if err != nil || ap == nil || ap.ID != tt.wantID {
					t.Fatalf("got %+v, %v; want appointment %d", ap, err, tt.wantID)
				}
			case tt.wantCode != "":
				if !httperr.IsConflict(err) || !httperr.IsBusiness(err, tt.wantCode) {
					t.Fatalf("got %v, want conflict %q", err, tt.wantCode)
				}
			case tt.wantRaw:
				if !errors.Is(err, tt.err) {
					t.Fatalf("got %v, want the original error", err)
				}
			}
		})
	}
}

func TestNotFound(t *testing.T) {
	if !errors.Is(notFound(fmt.Errorf("get: %w", gorm.ErrRecordNotFound)), domain.ErrNotFound) {
		t.Fatal("record not found should map to domain.ErrNotFound")
	}
	other := errors.New("boom")
	if notFound(other) != other {
		t.Fatal("other errors must pass through")
	}
}

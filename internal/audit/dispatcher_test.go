package audit

import (
	"context"
	"sync"
	"testing"

	"github.com/BruksfildServices01/barberpro-booking/internal/models"
)

type recordingSink struct {
	mu      sync.Mutex
	entries []models.AuditLog
}

func (r *recordingSink) WriteAudit(_ context.Context, e *models.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *e)
	return nil
}

func TestDispatcherDrainsOnClose(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(sink, nil)

	id := uint(7)
	d.Dispatch(Event{
		TenantID: 1,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &id,
		Metadata: map[string]any{"professional_id": 3},
	})
	d.Close()
	d.Dispatch(Event{TenantID: 1, Action: "ignored"})
	d.Close()

	if len(sink.entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(sink.entries))
	}
	got := sink.entries[0]
	if got.Action != "appointment_created" || *got.EntityID != 7 {
		t.Fatalf("unexpected entry %+v", got)
	}
	if got.Metadata != `{"professional_id":3}` {
		t.Fatalf("unexpected metadata %q", got.Metadata)
	}
}

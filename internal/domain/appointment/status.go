package appointment

import "github.com/BruksfildServices01/barberpro-booking/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusNoShow    Status = "no_show"
	StatusCancelled Status = "cancelled"
)

// LiveStatuses ocupam o horário do profissional.
var LiveStatuses = []Status{StatusPending, StatusConfirmed, StatusCompleted}

// LiveStatusStrings é LiveStatuses pronto para cláusulas IN.
func LiveStatusStrings() []string {
	out := make([]string, len(LiveStatuses))
	for i, s := range LiveStatuses {
		out[i] = string(s)
	}
	return out
}

func ParseStatus(raw string) (Status, error) {
	switch s := Status(raw); s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusNoShow, StatusCancelled:
		return s, nil
	}
	return "", httperr.Invalid("invalid_status")
}

// IsLive: pending, confirmed e completed contam para sobreposição.
func (s Status) IsLive() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted:
		return true
	}
	return false
}

// IsTerminal: nenhum status sai de completed, no_show ou cancelled.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusNoShow, StatusCancelled:
		return true
	}
	return false
}

// ===============================
// Validations
// ===============================

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCompleted, StatusNoShow, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusNoShow, StatusCancelled},
}

// CanTransition define se from pode ir para to. Estados terminais nunca
// voltam a ficar vivos, então um horário liberado não é reocupado por
// mudança de status.
func CanTransition(from, to Status) error {
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return httperr.Invalid("invalid_state")
}

func CanCancel(current Status) error {
	return CanTransition(current, StatusCancelled)
}

func CanComplete(current Status) error {
	return CanTransition(current, StatusCompleted)
}

// InitialStatus: reservas feitas pela equipe ou com autoconfirmação nascem confirmadas.
func InitialStatus(confirm bool) Status {
	if confirm {
		return StatusConfirmed
	}
	return StatusPending
}

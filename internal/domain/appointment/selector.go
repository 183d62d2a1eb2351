package appointment

import (
	"strconv"
	"strings"

	"github.com/BruksfildServices01/barberpro-booking/internal/httperr"
)

// ProfessionalSelector é Specific(id) ou Any. Any só é resolvido para um
// profissional concreto dentro da reserva.
type ProfessionalSelector struct {
	id uint
}

func Specific(id uint) ProfessionalSelector {
	return ProfessionalSelector{id: id}
}

func Any() ProfessionalSelector {
	return ProfessionalSelector{}
}

func (s ProfessionalSelector) IsAny() bool {
	return s.id == 0
}

func (s ProfessionalSelector) ID() uint {
	return s.id
}

func (s ProfessionalSelector) String() string {
	if s.IsAny() {
		return "any"
	}
	return strconv.FormatUint(uint64(s.id), 10)
}

// ParseSelector aceita "", "any" ou um id numérico.
func ParseSelector(raw string) (ProfessionalSelector, error) {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" || raw == "any" {
		return Any(), nil
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return ProfessionalSelector{}, httperr.Invalid("invalid_professional_id")
	}
	return Specific(uint(id)), nil
}

package appointment

import "time"

type AvailabilityInput struct {
	TenantID     uint
	ServiceID    uint
	Date         string // YYYY-MM-DD, no fuso do tenant
	Professional ProfessionalSelector
}

// Slot é um horário candidato. Com Any, ProfessionalID é o profissional
// que receberia a reserva pelo critério de menor carga.
type Slot struct {
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	ProfessionalID uint      `json:"professional_id"`
}

package schedule

import (
	"context"
	"log/slog"
	"time"

	"github.com/BruksfildServices01/barberpro-booking/internal/models"
)

// Source lê linhas de escala. Linha ausente é (nil, nil).
type Source interface {
	GetSchedule(
		ctx context.Context,
		professionalID uint,
		weekday int,
	) (*models.ProfessionalSchedule, error)
}

// Calendar responde "o profissional P trabalha no dia da semana W?".
// Sem linha significa fechado.
type Calendar struct {
	src Source
	log *slog.Logger
}

func NewCalendar(src Source, log *slog.Logger) *Calendar {
	if log == nil {
		log = slog.Default()
	}
	return &Calendar{src: src, log: log}
}

func (c *Calendar) WorkingWindow(
	ctx context.Context,
	professionalID uint,
	weekday time.Weekday,
) (Window, bool, error) {

	row, err := c.src.GetSchedule(ctx, professionalID, int(weekday))
	if err != nil {
		return Window{}, false, err
	}

	w, ok, err := FromRow(row)
	if err != nil {
		// linhas inválidas gravadas antes da validação: tratadas como fechado
		c.log.Warn("invalid schedule row",
			"professional_id", professionalID,
			"weekday", int(weekday),
			"err", err,
		)
		return Window{}, false, nil
	}
	return w, ok, nil
}

package schedule

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/barberpro-booking/internal/httperr"
	"github.com/BruksfildServices01/barberpro-booking/internal/models"
)

// Window é o expediente semanal de um profissional em minutos desde a
// meia-noite, no fuso do tenant.
type Window struct {
	Start      int
	End        int
	BreakStart int
	BreakEnd   int
	HasBreak   bool
}

// ParseClock converte "HH:MM" em minutos desde a meia-noite.
func ParseClock(hm string) (int, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, fmt.Errorf("invalid clock %q: %w", hm, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// FromRow monta a janela de uma linha de escala. ok=false quando é folga.
func FromRow(row *models.ProfessionalSchedule) (Window, bool, error) {
	if row == nil || row.IsDayOff {
		return Window{}, false, nil
	}

	start, err := ParseClock(row.StartTime)
	if err != nil {
		return Window{}, false, httperr.Invalid("invalid_start_time")
	}
	end, err := ParseClock(row.EndTime)
	if err != nil {
		return Window{}, false, httperr.Invalid("invalid_end_time")
	}
	if start >= end {
		return Window{}, false, httperr.Invalid("start_after_end")
	}

	w := Window{Start: start, End: end}

	if row.BreakStart == "" && row.BreakEnd == "" {
		return w, true, nil
	}
	if row.BreakStart == "" || row.BreakEnd == "" {
		return Window{}, false, httperr.Invalid("incomplete_break")
	}

	bs, err := ParseClock(row.BreakStart)
	if err != nil {
		return Window{}, false, httperr.Invalid("invalid_break_start")
	}
	be, err := ParseClock(row.BreakEnd)
	if err != nil {
		return Window{}, false, httperr.Invalid("invalid_break_end")
	}
	if bs >= be {
		return Window{}, false, httperr.Invalid("break_start_after_end")
	}
	if bs < start || be > end {
		return Window{}, false, httperr.Invalid("break_outside_window")
	}

	w.BreakStart, w.BreakEnd, w.HasBreak = bs, be, true
	return w, true, nil
}

// Validate aplica as invariantes de uma linha de escala antes de salvar.
func Validate(row *models.ProfessionalSchedule) error {
	if row.DayOfWeek < 0 || row.DayOfWeek > 6 {
		return httperr.Invalid("invalid_day_of_week")
	}
	if row.IsDayOff {
		return nil
	}
	_, _, err := FromRow(row)
	return err
}

// Day é a janela projetada num dia concreto.
type Day struct {
	Start      time.Time
	End        time.Time
	BreakStart time.Time
	BreakEnd   time.Time
	HasBreak   bool
}

// On projeta a janela no dia de date, usando o fuso de date.
func (w Window) On(date time.Time) Day {
	at := func(minutes int) time.Time {
		return time.Date(
			date.Year(), date.Month(), date.Day(),
			minutes/60, minutes%60, 0, 0,
			date.Location(),
		)
	}

	d := Day{Start: at(w.Start), End: at(w.End), HasBreak: w.HasBreak}
	if w.HasBreak {
		d.BreakStart = at(w.BreakStart)
		d.BreakEnd = at(w.BreakEnd)
	}
	return d
}

// Fits informa se [start, end) cabe inteiro no expediente.
func (d Day) Fits(start, end time.Time) bool {
	return !start.Before(d.Start) && !end.After(d.End)
}

// HitsBreak informa se [start, end) intercepta a pausa.
func (d Day) HitsBreak(start, end time.Time) bool {
	return d.HasBreak && start.Before(d.BreakEnd) && end.After(d.BreakStart)
}

// Admits combina Fits e HitsBreak.
func (d Day) Admits(start, end time.Time) bool {
	return d.Fits(start, end) && !d.HitsBreak(start, end)
}

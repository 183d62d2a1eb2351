package timezone

import "time"

const DefaultTimezone = "America/Sao_Paulo"

// Clock devolve o instante atual. Use cases recebem um Clock para que os
// testes controlem "agora".
type Clock func() time.Time

func SystemClock() time.Time {
	return time.Now()
}

// Fixed devolve um Clock parado em t.
func Fixed(t time.Time) Clock {
	return func() time.Time { return t }
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func Now() time.Time {
	return time.Now().In(Location(DefaultTimezone))
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// ParseDate interpreta "2006-01-02" como meia-noite no fuso tz.
func ParseDate(tz, date string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", date, Location(tz))
}

// ParseDateTime interpreta "2006-01-02" + "15:04" no fuso tz.
func ParseDateTime(tz, date, hm string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", date+" "+hm, Location(tz))
}

// StartOfDay trunca t para a meia-noite do seu próprio fuso.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

package validators

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

type scheduleRow struct {
	Start string `validate:"hhmm"`
}

func TestValidHHMM(t *testing.T) {
	v := validator.New()
	if err := v.RegisterValidation("hhmm", ValidHHMM); err != nil {
		t.Fatal(err)
	}

	cases := map[string]bool{
		"":      true,
		"09:00": true,
		"23:59": true,
		"24:00": false,
		"9:00":  false,
		"09:60": false,
		"nove":  false,
	}
	for in, want := range cases {
		err := v.Struct(scheduleRow{Start: in})
		if (err == nil) != want {
			t.Errorf("%q: valid=%v, want %v", in, err == nil, want)
		}
	}
}

func TestRegisterWithGin(t *testing.T) {
	if err := Register(); err != nil {
		t.Fatalf("register: %v", err)
	}
}

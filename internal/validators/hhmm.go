package validators

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/barberpro-booking/internal/domain/schedule"
)

// ValidHHMM aceita "" (campo opcional) ou um horário "HH:MM" válido.
func ValidHHMM(fl validator.FieldLevel) bool {
	v := fl.Field().String()
	if v == "" {
		return true
	}
	if len(v) != 5 {
		return false
	}
	_, err := schedule.ParseClock(v)
	return err == nil
}

// Register instala as tags customizadas no validador do gin.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("hhmm", ValidHHMM)
}

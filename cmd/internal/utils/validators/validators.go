package validators

import (
	"psiagenda/cmd/internal/utils"

	"github.com/go-playground/validator/v10"
)

// New returns a validator with every custom tag used by request DTOs.
func New() *validator.Validate {
	validate := validator.New()
	_ = validate.RegisterValidation("isodate", IsISODate)
	_ = validate.RegisterValidation("clocktime", IsClockTime)
	return validate
}

func IsISODate(fl validator.FieldLevel) bool {
	_, err := utils.ToISODate(fl.Field().String())
	return err == nil
}

func IsClockTime(fl validator.FieldLevel) bool {
	return utils.IsClockTime(fl.Field().String())
}

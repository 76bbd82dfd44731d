package usecase

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/Restaurante-api/internal/domain"
)

// inputValidator evalúa las etiquetas `validate` de los DTO. Los campos se reportan con su nombre JSON.
var inputValidator = newInputValidator()

func newInputValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateInput valida un DTO de entrada. Cualquier regla incumplida devuelve domain.ErrInvalidInput
// con el primer campo afectado.
func ValidateInput(in any) error {
	err := inputValidator.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if fe.Param() != "" {
			return fmt.Errorf("%w: %s no cumple %s=%s", domain.ErrInvalidInput, fe.Field(), fe.Tag(), fe.Param())
		}
		return fmt.Errorf("%w: %s no cumple %s", domain.ErrInvalidInput, fe.Field(), fe.Tag())
	}
	return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
}

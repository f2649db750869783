package validators

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

var (
	v *validator.Validate

	rePhone      = regexp.MustCompile(`^\+?\d{7,15}$`)
	rePersonName = regexp.MustCompile(`^[\p{L} ]+$`)
	phoneStrip   = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")
)

func init() {
	v = validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		val := fl.Field().String()
		if strings.TrimSpace(val) == "" {
			return true
		}
		return IsPhone(val)
	})

	_ = v.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
		val := strings.TrimSpace(fl.Field().String())
		if val == "" {
			return true
		}
		return rePersonName.MatchString(val)
	})
}

// NormalizePhone drops spaces, dashes and parentheses.
func NormalizePhone(raw string) string {
	return phoneStrip.Replace(strings.TrimSpace(raw))
}

func IsPhone(raw string) bool {
	return rePhone.MatchString(NormalizePhone(raw))
}

// Validate returns nil when s is valid, httperr.FieldErrors otherwise.
func Validate(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	out := httperr.FieldErrors{}
	for _, e := range ve {
		out.Add(e.Field(), message(e))
	}
	return out
}

func message(e validator.FieldError) string {
	isString := e.Kind() == reflect.String

	switch e.Tag() {
	case "required":
		return "Este campo es obligatorio."
	case "email":
		return "Ingrese un email válido."
	case "phone":
		return "Ingrese un teléfono válido (7 a 15 dígitos, opcionalmente con +)."
	case "personname":
		return "Solo se permiten letras y espacios."
	case "max":
		if isString {
			return fmt.Sprintf("Asegúrese de que este campo no tenga más de %s caracteres.", e.Param())
		}
		return fmt.Sprintf("Debe ser menor o igual a %s.", e.Param())
	case "min":
		if isString {
			return fmt.Sprintf("Asegúrese de que este campo tenga al menos %s caracteres.", e.Param())
		}
		return fmt.Sprintf("Debe ser mayor o igual a %s.", e.Param())
	case "gte":
		return fmt.Sprintf("Debe ser mayor o igual a %s.", e.Param())
	case "gt":
		return fmt.Sprintf("Debe ser mayor a %s.", e.Param())
	case "lte":
		return fmt.Sprintf("Debe ser menor o igual a %s.", e.Param())
	case "oneof":
		return fmt.Sprintf("Valor no permitido. Opciones: %s.", e.Param())
	case "timezone":
		return "Zona horaria inválida."
	default:
		return e.Error()
	}
}

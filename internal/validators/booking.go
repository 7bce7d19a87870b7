package validators

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
	})
	return validate
}

// Struct valida v e devolve mensagens por campo (nil quando válido).
func Struct(v any) map[string]string {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		key := fieldKey(fe)
		if _, exists := fields[key]; exists {
			continue
		}
		fields[key] = message(fe)
	}
	return fields
}

// fieldKey remove o nome da struct raiz: "CreateBookingRequest.customer_email" -> "customer_email".
func fieldKey(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Campo obrigatório."
	case "required_if":
		if fe.Field() == "customer_address" {
			return "Endereço obrigatório para atendimento a domicílio."
		}
		return "Campo obrigatório."
	case "email":
		return "E-mail inválido."
	case "uuid":
		return "Identificador inválido."
	case "datetime":
		return fmt.Sprintf("Formato inválido (esperado %s).", fe.Param())
	case "oneof":
		return fmt.Sprintf("Valor inválido (use: %s).", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Mínimo de %s caracteres.", fe.Param())
		}
		return fmt.Sprintf("Valor mínimo: %s.", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Máximo de %s caracteres.", fe.Param())
		}
		return fmt.Sprintf("Valor máximo: %s.", fe.Param())
	}
	return "Valor inválido."
}

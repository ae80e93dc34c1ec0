package handler

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"coverapi/internal/apperror"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// bind decodes the JSON body into dst and runs its validate tags.
func bind(c *fiber.Ctx, dst any) error {
	return decode(c.Body(), dst)
}

func decode(body []byte, dst any) error {
	if len(body) == 0 {
		return apperror.Validation("body", "Corps de requête requis")
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return apperror.Validation("body", "JSON invalide")
	}
	return check(dst)
}

// check reports the first failing field as a validation error.
func check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if !errors.As(err, &ves) || len(ves) == 0 {
		return apperror.Validation("body", "Requête invalide")
	}

	fe := ves[0]
	field := fieldPath(fe.Namespace())
	switch fe.Tag() {
	case "required":
		return apperror.Validation(field, field+" requis")
	case "email":
		return apperror.Validation(field, field+" invalide")
	case "min":
		return apperror.Validation(field, field+" trop court")
	default:
		return apperror.Validation(field, field+" invalide")
	}
}

// fieldPath drops the struct name from a validator namespace: "req.jobDetails.title" -> "jobDetails.title".
func fieldPath(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

// decodeObject decodes a body that must be a JSON object with arbitrary fields.
func decodeObject(body []byte, dst *map[string]any) error {
	if len(body) == 0 {
		return apperror.Validation("body", "Corps de requête requis")
	}
	if err := json.Unmarshal(body, dst); err != nil || *dst == nil {
		return apperror.Validation("body", "Un objet JSON est attendu")
	}
	return nil
}

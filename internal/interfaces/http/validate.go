package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ferreteria-api/internal/application/dto"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	return v
}

// errBadRequest la respuesta 400 ya fue escrita.
var errBadRequest = errors.New("http: petición inválida")

// parseBody decodifica el JSON y valida las etiquetas `validate`. Si falla escribe el 400
// y devuelve errBadRequest; el handler solo debe retornar nil.
func parseBody(c *fiber.Ctx, dest any) error {
	if err := c.BodyParser(dest); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		return errBadRequest
	}
	if err := validate.Struct(dest); err != nil {
		resp := dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"}
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			resp.Details = make(map[string]string, len(fieldErrs))
			for _, fe := range fieldErrs {
				resp.Details[fe.Field()] = validationMessage(fe)
			}
		}
		_ = c.Status(fiber.StatusBadRequest).JSON(resp)
		return errBadRequest
	}
	return nil
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es requerido"
	case "min":
		return fmt.Sprintf("debe ser al menos %s", fe.Param())
	case "max":
		return fmt.Sprintf("debe ser como máximo %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("debe ser uno de: %s", fe.Param())
	case "email":
		return "debe ser un email válido"
	}
	return "es inválido"
}

// validGuestID acepta un UUID o un token alfanumérico corto.
func validGuestID(id string) bool {
	return validate.Var(id, "omitempty,max=64,uuid|alphanum") == nil
}

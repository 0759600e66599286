package http

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Seguros-api/internal/application/dto"
	"github.com/jhoicas/Seguros-api/internal/domain"
)

var validate = newValidator()

// newValidator reporta los campos con su nombre JSON.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// requestError error de entrada detectado en la capa HTTP (cuerpo ilegible, validación).
type requestError struct {
	code    string
	message string
	details map[string]any
}

func (e *requestError) Error() string { return e.message }

// bindJSON parsea el cuerpo en v y aplica las etiquetas validate.
func bindJSON(c *fiber.Ctx, v any) error {
	if err := c.BodyParser(v); err != nil {
		return &requestError{code: "INVALID_BODY", message: "cuerpo inválido"}
	}
	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			details := make(map[string]any, len(verrs))
			for _, fe := range verrs {
				details[fe.Field()] = fe.Tag()
			}
			return &requestError{code: "VALIDATION", message: "datos inválidos", details: details}
		}
		return &requestError{code: "VALIDATION", message: err.Error()}
	}
	return nil
}

// writeError traduce errores de dominio a status HTTP y cuerpo {code, message, details}.
func writeError(c *fiber.Ctx, err error) error {
	var re *requestError
	if errors.As(err, &re) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: re.code, Message: re.message, Details: re.details})
	}

	status, code := classify(err)
	body := dto.ErrorResponse{Code: code, Message: domain.Message(err), Details: domain.Details(err)}
	return c.Status(status).JSON(body)
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrInvalidArgument):
		return fiber.StatusBadRequest, "INVALID_ARGUMENT"
	case errors.Is(err, domain.ErrInvalidState):
		return fiber.StatusConflict, "INVALID_STATE"
	case errors.Is(err, domain.ErrPreconditionFailed):
		return fiber.StatusPreconditionFailed, "PRECONDITION_FAILED"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict, "EMAIL_EXISTS"
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

// created responde 201. Si el recurso quedó persistido pero la relectura falló,
// responde igualmente 201 con la versión básica y un aviso.
func created(c *fiber.Ctx, out any, err error) error {
	if err == nil {
		return c.Status(fiber.StatusCreated).JSON(out)
	}
	if errors.Is(err, domain.ErrCreatedIncomplete) {
		return c.Status(fiber.StatusCreated).JSON(dto.CreatedWithWarning{Data: out, Warning: domain.ErrCreatedIncomplete.Error()})
	}
	return writeError(c, err)
}

func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	return dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
}

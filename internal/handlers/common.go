package handlers

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// FieldError is one entry of the validation error array
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

const invalidDataMessage = "البيانات المدخلة غير صحيحة"

// respond writes the uniform response envelope
func respond(c *fiber.Ctx, status int, message string, data any) error {
	body := fiber.Map{
		"ok":      status < 400,
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	return c.Status(status).JSON(body)
}

// respondValidation writes a 400 with per-field messages
func respondValidation(c *fiber.Ctx, fields []FieldError) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"ok":      false,
		"message": invalidDataMessage,
		"errors":  fields,
	})
}

// bindJSON parses the request body into dst and validates it. A nil return
// means dst is ready to use.
func bindJSON(c *fiber.Ctx, dst any) []FieldError {
	if err := c.BodyParser(dst); err != nil {
		return []FieldError{{Field: "body", Message: "invalid request body"}}
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]FieldError, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, FieldError{
					Field:   fe.Field(),
					Message: fmt.Sprintf("failed on '%s' validation", fe.Tag()),
				})
			}
			return fields
		}
		return []FieldError{{Field: "body", Message: "invalid request body"}}
	}
	return nil
}

// lang picks the response language: explicit query param wins, Arabic is
// the default
func lang(c *fiber.Ctx) string {
	if c.Query("lang") == "en" {
		return "en"
	}
	return "ar"
}

package handlers

import (
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var bodyValidator = validatorv10.New()

// BindAndValidate parses the JSON body into out and runs struct
// validation. On failure it writes a 400 with per-field messages and
// returns an error so the handler can short-circuit.
func BindAndValidate(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid_request_body",
			"msg":   err.Error(),
		})
		return err
	}
	if err := bodyValidator.Struct(out); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "validation_failed",
			"fields": validationErrorsToMap(err),
		})
		return err
	}
	return nil
}

func validationErrorsToMap(err error) map[string]string {
	out := map[string]string{}
	if ve, ok := err.(validatorv10.ValidationErrors); ok {
		for _, fe := range ve {
			out[fe.Field()] = fe.Tag()
		}
	} else {
		out["error"] = err.Error()
	}
	return out
}

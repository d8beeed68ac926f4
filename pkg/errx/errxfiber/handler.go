package errxfiber

import (
	"errors"

	"github.com/Abraxas-365/hiretrack/pkg/errx"
	"github.com/Abraxas-365/hiretrack/pkg/logx"
	"github.com/gofiber/fiber/v2"
)

// ErrorHandler converts returned errors into JSON responses
func ErrorHandler(c *fiber.Ctx, err error) error {
	// Fiber errors (e.g. 404 route not found, body too large)
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{
			"error": fe.Message,
			"code":  fe.Code,
		})
	}

	if e, ok := errx.As(err); ok {
		if e.HTTPStatus >= fiber.StatusInternalServerError {
			logx.Errorf("%s %s: %v", c.Method(), c.Path(), e)
		}
		return c.Status(e.HTTPStatus).JSON(e.ToHTTPResponse())
	}

	logx.Errorf("Internal Server Error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "Internal Server Error",
		"type":    "INTERNAL",
		"code":    "INTERNAL_ERROR",
		"message": "An unexpected error occurred",
	})
}

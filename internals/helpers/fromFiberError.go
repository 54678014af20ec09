package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// FromFiberError merender error dari handler ke envelope JSON standar.
// *fiber.Error dipakai apa adanya; error lain jadi 500 tanpa membocorkan detail internal.
func FromFiberError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	return JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
}

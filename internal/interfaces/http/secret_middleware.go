package http

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"

	"github.com/mynt/inventory-tracker/internal/application/dto"
)

// SecretGuard protege una ruta con un secreto compartido en el query param
// "secret". Sin secreto configurado del lado del servidor responde 500
// (error de configuración); con secreto distinto responde 401. En ambos
// casos, antes de cualquier side effect.
func SecretGuard(expected string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if expected == "" {
			return c.Status(fiber.StatusInternalServerError).
				JSON(dto.ErrorResponse{Code: "CONFIG", Message: "secreto no configurado"})
		}
		if !secretMatches(c.Query("secret"), expected) {
			return c.Status(fiber.StatusUnauthorized).
				JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "secreto inválido"})
		}
		return c.Next()
	}
}

// secretMatches compara en tiempo constante.
func secretMatches(got, expected string) bool {
	return subtle.ConstantTimeCompare([]byte(got), []byte(expected)) == 1
}

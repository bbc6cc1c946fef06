package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/temucosoft/retail-api/internal/domain/repository"
)

// pageFrom lee page y page_size de la query (default 10, máximo 100).
func pageFrom(c *fiber.Ctx) repository.Page {
	return repository.NewPage(c.QueryInt("page", 1), c.QueryInt("page_size", repository.DefaultPageSize))
}

// parseBody decodifica el cuerpo JSON en v.
func parseBody(c *fiber.Ctx, v any) error {
	if err := c.BodyParser(v); err != nil {
		return errBody()
	}
	return nil
}

// created responde 201 con el cuerpo.
func created(c *fiber.Ctx, v any) error {
	return c.Status(fiber.StatusCreated).JSON(v)
}

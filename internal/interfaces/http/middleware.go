package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/temucosoft/retail-api/internal/domain"
	"github.com/temucosoft/retail-api/internal/domain/authz"
	"github.com/temucosoft/retail-api/internal/domain/identity"
	"github.com/temucosoft/retail-api/pkg/logger"
)

// Locals key donde queda el conjunto de capacidades de la petición.
const LocalCapabilities = "capabilities"

// Mensajes de autenticación.
const (
	MsgNoCredentials = "Las credenciales de autenticación no se proveyeron."
	MsgBadHeader     = "formato: Bearer <token>"
)

// TokenAuthenticator valida un token de acceso. Lo implementa *auth.AuthUseCase.
type TokenAuthenticator interface {
	Authenticate(token string) (identity.Principal, error)
}

// Authenticate lee el Bearer Token si viene y calcula las capacidades de la petición.
// Sin cabecera la petición sigue como anónima; un token inválido corta con 401.
func Authenticate(tokens TokenAuthenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			c.Locals(LocalCapabilities, identity.CapabilitiesOf(identity.Anonymous()))
			return c.Next()
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			return domain.Unauthorized(MsgBadHeader)
		}
		principal, err := tokens.Authenticate(strings.TrimSpace(parts[1]))
		if err != nil {
			return err
		}
		c.Locals(LocalCapabilities, identity.CapabilitiesOf(principal))
		return c.Next()
	}
}

// Authorize aplica la política del recurso según el método. Un anónimo rechazado recibe 401;
// un autenticado sin permiso, 403.
func Authorize(res authz.Resource) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caps := GetCapabilities(c)
		if err := authz.Authorize(caps, res, c.Method()); err != nil {
			if !caps.Authenticated {
				return domain.Unauthorized(MsgNoCredentials)
			}
			return err
		}
		return c.Next()
	}
}

// GetCapabilities devuelve las capacidades de la petición (anónimas si no pasó por Authenticate).
func GetCapabilities(c *fiber.Ctx) identity.Capabilities {
	caps, _ := c.Locals(LocalCapabilities).(identity.Capabilities)
	return caps
}

// RequestLogger registra cada petición con método, ruta, status y latencia.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			// el ErrorHandler todavía no escribió la respuesta
			status, _ = errorResponse(err)
		}
		log.Info().
			Str("request_id", requestID(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("request")
		return err
	}
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals(requestid.ConfigDefault.ContextKey).(string)
	return id
}

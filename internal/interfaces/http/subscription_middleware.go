package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/temucosoft/retail-api/internal/application/dto"
	"github.com/temucosoft/retail-api/internal/domain"
	"github.com/temucosoft/retail-api/pkg/logger"
)

// MsgNoSubscription respuesta cuando la empresa no tiene una suscripción vigente.
const MsgNoSubscription = "La empresa no tiene una suscripción activa."

// subscriptionChecker contrato mínimo del middleware; lo implementa *usecase.SubscriptionUseCase.
type subscriptionChecker interface {
	HasActive(ctx context.Context, companyID string) (bool, error)
}

// RequireActiveSubscription exige que la empresa del usuario tenga una suscripción que
// cubra hoy. Va después de Authenticate.
//
// Comportamiento:
//   - alcance de plataforma (super_admin) → pasa sin consultar.
//   - sin empresa → 403.
//   - sin suscripción vigente → 403 SUBSCRIPTION_REQUIRED.
//   - fallo de infraestructura → 503; no se concede el acceso.
func RequireActiveSubscription(checker subscriptionChecker, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caps := GetCapabilities(c)
		if caps.PlatformWide() {
			return c.Next()
		}
		if caps.CompanyID == "" {
			return domain.ErrForbidden
		}

		active, err := checker.HasActive(c.UserContext(), caps.CompanyID)
		if err != nil {
			log.Error().Err(err).Str("company_id", caps.CompanyID).Msg("verificar suscripción")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "SUBSCRIPTION_CHECK_FAILED",
				Message: "no se pudo verificar la suscripción, intente más tarde",
			})
		}
		if !active {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "SUBSCRIPTION_REQUIRED",
				Message: MsgNoSubscription,
			})
		}
		return c.Next()
	}
}

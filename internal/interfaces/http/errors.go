package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/corporate-meals/internal/application/access"
	"github.com/jhoicas/corporate-meals/internal/application/auth"
	"github.com/jhoicas/corporate-meals/internal/application/dto"
	"github.com/jhoicas/corporate-meals/internal/domain"
)

const genericRemoteMessage = "No se pudo comunicar con el servidor. Inténtalo de nuevo."

// classify traduce la cadena de errores de dominio a código HTTP y código de error estable.
// El orden importa: un 401 remoto llega envuelto como rechazo y debe leerse como sesión expirada.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrSessionExpired):
		return fiber.StatusUnauthorized, "SESSION_EXPIRED"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, "INVALID_CREDENTIALS"
	case errors.Is(err, domain.ErrAuthUnavailable):
		return fiber.StatusServiceUnavailable, "AUTH_UNAVAILABLE"
	case errors.Is(err, auth.ErrSuperseded):
		return fiber.StatusConflict, "SUPERSEDED"
	case errors.Is(err, domain.ErrMissingIdentityContext), errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrMutationInFlight):
		return fiber.StatusConflict, "IN_FLIGHT"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrGeolocationUnavailable):
		return fiber.StatusUnprocessableEntity, "GEOLOCATION_UNAVAILABLE"
	case errors.Is(err, domain.ErrUnknownCurrency):
		return fiber.StatusBadRequest, "UNKNOWN_CURRENCY"
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusUnprocessableEntity, "VALIDATION"
	case errors.Is(err, domain.ErrRemoteRejected):
		return fiber.StatusUnprocessableEntity, "REMOTE_REJECTED"
	case errors.Is(err, domain.ErrTransport), errors.Is(err, domain.ErrFetchFailed):
		return fiber.StatusBadGateway, "REMOTE_UNAVAILABLE"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

// writeError responde con dto.ErrorResponse. Una sesión expirada no es un error de la vista:
// la identidad ya se destruyó y se redirige al login.
func writeError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrSessionExpired) {
		return c.Redirect(string(access.ViewLogin), fiber.StatusSeeOther)
	}
	status, code := classify(err)
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: errorMessage(err, code)})
}

// writeOutcome responde a una mutación. Si hubo disposición (o errores de campo) el cuerpo es
// el outcome; si la mutación ni siquiera arrancó, un ErrorResponse.
func writeOutcome(c *fiber.Ctx, outcome dto.MutationOutcome, err error) error {
	if err == nil {
		return c.JSON(outcome)
	}
	if errors.Is(err, domain.ErrSessionExpired) {
		return c.Redirect(string(access.ViewLogin), fiber.StatusSeeOther)
	}
	if outcome.ID == "" && len(outcome.FieldErrors) == 0 && outcome.Message == "" {
		return writeError(c, err)
	}
	status, _ := classify(err)
	return c.Status(status).JSON(outcome)
}

func errorMessage(err error, code string) string {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Error()
	case code == "REMOTE_REJECTED":
		if msg := domain.RemoteMessage(err); msg != "" {
			return msg
		}
		return "La operación fue rechazada."
	case code == "REMOTE_UNAVAILABLE":
		return genericRemoteMessage
	case code == "INTERNAL":
		return "error interno"
	}
	return err.Error()
}

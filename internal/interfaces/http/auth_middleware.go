package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/corporate-meals/internal/application/access"
	"github.com/jhoicas/corporate-meals/internal/application/dto"
)

// Locals key con la decisión del gate para la petición en curso.
const LocalDecision = "gate_decision"

// staleSessionExpirer lo implementa *auth.Store.
type staleSessionExpirer interface {
	ExpireIfStale(now time.Time) bool
}

// GateRecorder registra decisiones del gate; lo implementa *metrics.ClientMetrics.
type GateRecorder interface {
	GateDecision(kind string)
}

// SessionMiddleware expira la sesión si su token ya venció, antes de cualquier decisión del gate.
func SessionMiddleware(sessions staleSessionExpirer, now func() time.Time) fiber.Handler {
	if now == nil {
		now = time.Now
	}
	return func(c *fiber.Ctx) error {
		sessions.ExpireIfStale(now())
		return c.Next()
	}
}

// RequireView aplica el Authorization Gate a la vista con el requisito dado.
//
// Comportamiento:
//   - Pending  → 202 {"status":"pending"}; no se renderiza nada ni se redirige.
//   - Redirect → 303 a la vista destino (login u home).
//   - Allow    → siguiente handler.
//
// Nunca responde con un error: una vista no autorizada solo redirige.
func RequireView(gate *access.Gate, req access.Requirement, rec GateRecorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		d := gate.Check(req)
		if rec != nil {
			rec.GateDecision(string(d.Kind))
		}
		c.Locals(LocalDecision, d)
		switch d.Kind {
		case access.Pending:
			return c.Status(fiber.StatusAccepted).JSON(dto.PendingResponse{Status: "pending"})
		case access.Redirect:
			return c.Redirect(string(d.Target), fiber.StatusSeeOther)
		}
		return c.Next()
	}
}

// respondDecision traduce una decisión de aterrizaje (Pending o Redirect) a la respuesta HTTP.
func respondDecision(c *fiber.Ctx, d access.Decision) error {
	if d.Kind == access.Pending {
		return c.Status(fiber.StatusAccepted).JSON(dto.PendingResponse{Status: "pending"})
	}
	return c.Redirect(string(d.Target), fiber.StatusSeeOther)
}

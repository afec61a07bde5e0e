package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/corporate-meals/internal/application/access"
	"github.com/jhoicas/corporate-meals/internal/application/auth"
	"github.com/jhoicas/corporate-meals/internal/application/dto"
	"github.com/jhoicas/corporate-meals/internal/application/ports"
	"github.com/jhoicas/corporate-meals/internal/application/usecase"
	"github.com/jhoicas/corporate-meals/internal/domain/entity"
)

// AuthHandler inicio y cierre de sesión, identidad vigente y restablecimiento de contraseña.
type AuthHandler struct {
	store *auth.Store
	gate  *access.Gate
	users *usecase.UserUseCase
}

// NewAuthHandler construye el handler de sesión.
func NewAuthHandler(store *auth.Store, gate *access.Gate, users *usecase.UserUseCase) *AuthHandler {
	return &AuthHandler{store: store, gate: gate, users: users}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.SessionResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	in.Email = strings.TrimSpace(in.Email)
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y password son requeridos"})
	}
	if _, err := h.store.SignIn(c.UserContext(), ports.Credentials{Email: in.Email, Password: in.Password}); err != nil {
		status, code := classify(err)
		msg := "No se pudo iniciar sesión. Inténtalo más tarde."
		if code == "INVALID_CREDENTIALS" {
			msg = "Email o contraseña incorrectos."
		}
		return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
	}
	return h.Current(c)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         session
// @Success      204
// @Router       /logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.store.SignOut()
	return c.SendStatus(fiber.StatusNoContent)
}

// Current godoc
// @Summary      Identidad vigente
// @Tags         session
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Success      202  {object}  dto.PendingResponse
// @Success      204
// @Router       /session [get]
func (h *AuthHandler) Current(c *fiber.Ctx) error {
	if h.store.Resolving() {
		return c.Status(fiber.StatusAccepted).JSON(dto.PendingResponse{Status: "pending"})
	}
	s, ok := h.store.Session()
	if !ok {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(toSessionResponse(s))
}

// LoginView godoc
// @Summary      Vista de login (redirige al panel si ya hay sesión)
// @Tags         session
// @Produce      json
// @Success      200  {object}  dto.ViewResponse
// @Success      303
// @Router       /login [get]
func (h *AuthHandler) LoginView(c *fiber.Ctx) error {
	if h.store.Current() != nil || h.store.Resolving() {
		return respondDecision(c, h.gate.Landing())
	}
	return c.JSON(dto.ViewResponse{View: string(access.ViewLogin)})
}

// Dashboard godoc
// @Summary      Entrada común: redirige al panel del rol
// @Tags         session
// @Success      202  {object}  dto.PendingResponse
// @Success      303
// @Router       /dashboard [get]
func (h *AuthHandler) Dashboard(c *fiber.Ctx) error {
	return respondDecision(c, h.gate.Landing())
}

// ValidateResetToken godoc
// @Summary      Comprobar enlace de restablecimiento
// @Tags         password-reset
// @Produce      json
// @Param        token  path  string  true  "token de restablecimiento"
// @Success      200  {object}  dto.ViewResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /password-reset/{token} [get]
func (h *AuthHandler) ValidateResetToken(c *fiber.Ctx) error {
	token := c.Params("token")
	if err := h.users.ValidateResetToken(c.UserContext(), token); err != nil {
		status, code := classify(err)
		if status < fiber.StatusInternalServerError {
			status, code = fiber.StatusNotFound, "INVALID_RESET_TOKEN"
		}
		return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: "El enlace no es válido o ha expirado."})
	}
	return c.JSON(dto.ViewResponse{View: string(access.ViewPasswordReset)})
}

// ResetPassword godoc
// @Summary      Restablecer contraseña
// @Tags         password-reset
// @Accept       json
// @Produce      json
// @Param        token  path  string                    true  "token de restablecimiento"
// @Param        body   body  dto.PasswordResetRequest  true  "password, confirmation"
// @Success      200  {object}  dto.MutationOutcome
// @Failure      422  {object}  dto.MutationOutcome
// @Router       /password-reset/{token} [post]
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var in dto.PasswordResetRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	outcome, err := h.users.ResetPassword(c.UserContext(), c.Params("token"), in)
	return writeOutcome(c, outcome, err)
}

func toSessionResponse(s auth.Session) dto.SessionResponse {
	out := dto.SessionResponse{
		UserID:  s.Identity.ID(),
		Role:    string(s.Identity.Role()),
		Landing: string(access.DefaultViewFor(s.Identity.Role())),
	}
	if !s.ExpiresAt.IsZero() {
		t := s.ExpiresAt
		out.ExpiresAt = &t
	}
	switch id := s.Identity.(type) {
	case entity.Company:
		out.Ref, out.CompanyRef = id.CompanyRef, id.CompanyRef
	case entity.Employee:
		out.Ref, out.CompanyRef = id.EmployeeRef, id.CompanyRef
	case entity.Chef:
		out.Ref = id.ChefRef
	case entity.DeliveryPerson:
		out.Ref = id.CourierRef
	}
	return out
}

// Home godoc
// @Summary      Página pública de inicio
// @Tags         session
// @Produce      json
// @Success      200  {object}  dto.ViewResponse
// @Router       / [get]
func (h *AuthHandler) Home(c *fiber.Ctx) error {
	return c.JSON(dto.ViewResponse{View: string(access.ViewHome), SignedIn: h.store.Current() != nil})
}

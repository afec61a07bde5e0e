package dto

import "time"

// LoginRequest entrada del formulario de inicio de sesión.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionResponse identidad vigente tal como la ve la UI (sin token).
type SessionResponse struct {
	UserID     string     `json:"user_id"`
	Role       string     `json:"role"`
	Ref        string     `json:"ref,omitempty"`
	CompanyRef string     `json:"company_ref,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	Landing    string     `json:"landing"`
}

// PasswordResetRequest nueva contraseña con su confirmación.
type PasswordResetRequest struct {
	Password     string `json:"password" validate:"required,min=8"`
	Confirmation string `json:"confirmation" validate:"required"`
}

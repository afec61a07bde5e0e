package remote

import (
	"context"
	"net/http"

	"github.com/jhoicas/corporate-meals/internal/application/ports"
	"github.com/jhoicas/corporate-meals/internal/domain"
	"github.com/jhoicas/corporate-meals/internal/domain/entity"
)

var (
	_ ports.AuthGateway          = (*AuthGateway)(nil)
	_ ports.PasswordResetGateway = (*AuthGateway)(nil)
)

// AuthGateway autenticación y restablecimiento de contraseña.
type AuthGateway struct {
	c *Client
}

// NewAuthGateway construye el gateway.
func NewAuthGateway(c *Client) *AuthGateway { return &AuthGateway{c: c} }

// Login autentica con email y contraseña. 400/401/403 → domain.ErrInvalidCredentials.
func (g *AuthGateway) Login(ctx context.Context, creds ports.Credentials) (*ports.AuthResult, error) {
	var out authWire
	err := g.c.do(ctx, call{
		op:     "login",
		method: http.MethodPost,
		path:   "/auth/login",
		body:   map[string]string{"email": creds.Email, "password": creds.Password},
		out:    &out,
		public: true,
	})
	if err != nil {
		if rejectedWith(err, http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden) {
			return nil, &domain.RemoteError{Op: "login", Message: domain.RemoteMessage(err), Rejected: true, Err: domain.ErrInvalidCredentials}
		}
		return nil, err
	}
	return toAuthResult(out.Token, out.User), nil
}

// Me resuelve la identidad de token. Un 401 se devuelve como domain.ErrSessionExpired.
func (g *AuthGateway) Me(ctx context.Context, token string) (*ports.AuthResult, error) {
	var out userWire
	err := g.c.do(ctx, call{op: "me", method: http.MethodGet, path: "/auth/me", token: token, out: &out})
	if err != nil {
		return nil, err
	}
	return toAuthResult(token, out), nil
}

// ValidateResetToken comprueba un token de restablecimiento.
func (g *AuthGateway) ValidateResetToken(ctx context.Context, token string) error {
	return g.c.do(ctx, call{
		op:     "validate reset token",
		method: http.MethodGet,
		path:   "/auth/password-reset/" + pathEscape(token),
		public: true,
	})
}

// ConsumeResetToken fija la nueva contraseña consumiendo el token.
func (g *AuthGateway) ConsumeResetToken(ctx context.Context, token, newPassword string) error {
	return g.c.do(ctx, call{
		op:     "consume reset token",
		method: http.MethodPost,
		path:   "/auth/password-reset/" + pathEscape(token),
		body:   map[string]string{"password": newPassword},
		public: true,
	})
}

func toAuthResult(token string, u userWire) *ports.AuthResult {
	return &ports.AuthResult{Token: token, UserID: u.ID, Role: entity.Role(u.Role), Ref: u.Ref, CompanyRef: u.CompanyRef}
}

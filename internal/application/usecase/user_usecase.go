package usecase

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/jhoicas/corporate-meals/internal/application/dto"
	"github.com/jhoicas/corporate-meals/internal/application/mutation"
	"github.com/jhoicas/corporate-meals/internal/application/ports"
	"github.com/jhoicas/corporate-meals/internal/domain"
)

// MinPasswordLength longitud mínima de contraseña comprobada en el cliente.
const MinPasswordLength = 8

// UserUseCase restablecimiento de contraseña con un token emitido fuera del cliente.
type UserUseCase struct {
	reset ports.PasswordResetGateway
	wf    *mutation.Workflow
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(reset ports.PasswordResetGateway, wf *mutation.Workflow) *UserUseCase {
	return &UserUseCase{reset: reset, wf: wf}
}

// ValidateResetToken comprueba que el token siga vigente antes de mostrar el formulario.
func (uc *UserUseCase) ValidateResetToken(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return domain.ErrInvalidInput
	}
	return uc.reset.ValidateResetToken(ctx, token)
}

// ResetPassword consume el token con la nueva contraseña. Longitud y confirmación se
// comprueban aquí; nada llega a la red si fallan.
func (uc *UserUseCase) ResetPassword(ctx context.Context, token string, in dto.PasswordResetRequest) (dto.MutationOutcome, error) {
	return uc.wf.Run(ctx, mutation.Mutation{
		Name:  "password.reset",
		Scope: "password-reset:" + token,
		Validate: func() error {
			v := domain.NewValidationError()
			if strings.TrimSpace(token) == "" {
				v.Add("token", "enlace inválido")
			}
			if utf8.RuneCountInString(in.Password) < MinPasswordLength {
				v.Add("password", "mínimo 8 caracteres")
			}
			if in.Password != in.Confirmation {
				v.Add("confirmation", "las contraseñas no coinciden")
			}
			return v.OrNil()
		},
		Do:             func(ctx context.Context) error { return uc.reset.ConsumeResetToken(ctx, token, in.Password) },
		SuccessMessage: "Contraseña actualizada. Ya puedes iniciar sesión.",
		FailureMessage: "El enlace no es válido o ha expirado.",
	})
}

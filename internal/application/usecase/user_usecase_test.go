package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/corporate-meals/internal/application/dto"
	"github.com/jhoicas/corporate-meals/internal/application/usecase"
	"github.com/jhoicas/corporate-meals/internal/domain"
	"github.com/jhoicas/corporate-meals/internal/domain/mocks"
)

func TestUserUseCase_ValidateResetToken(t *testing.T) {
	gw := &mocks.MockPasswordReset{}
	_, wf := newInfra()
	uc := usecase.NewUserUseCase(gw, wf)

	require.NoError(t, uc.ValidateResetToken(context.Background(), "tok-1"))
	assert.Equal(t, []string{"tok-1"}, gw.Validated)

	assert.ErrorIs(t, uc.ValidateResetToken(context.Background(), " "), domain.ErrInvalidInput)
	assert.Len(t, gw.Validated, 1)
}

func TestUserUseCase_ResetPassword_Exito(t *testing.T) {
	gw := &mocks.MockPasswordReset{}
	_, wf := newInfra()
	uc := usecase.NewUserUseCase(gw, wf)

	out, err := uc.ResetPassword(context.Background(), "tok-1", dto.PasswordResetRequest{Password: "s3cretos!", Confirmation: "s3cretos!"})

	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, "s3cretos!", gw.Consumed["tok-1"])
}

func TestUserUseCase_ResetPassword_ValidacionLocal(t *testing.T) {
	gw := &mocks.MockPasswordReset{}
	_, wf := newInfra()
	uc := usecase.NewUserUseCase(gw, wf)

	out, err := uc.ResetPassword(context.Background(), "tok-1", dto.PasswordResetRequest{Password: "corta", Confirmation: "otra"})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, out.FieldErrors, "password")
	assert.Contains(t, out.FieldErrors, "confirmation")
	assert.Empty(t, gw.Consumed)
}

func TestUserUseCase_ResetPassword_TokenRechazado(t *testing.T) {
	gw := &mocks.MockPasswordReset{ConsumeErr: &domain.RemoteError{Op: "reset", Rejected: true}}
	_, wf := newInfra()
	uc := usecase.NewUserUseCase(gw, wf)

	out, err := uc.ResetPassword(context.Background(), "tok-viejo", dto.PasswordResetRequest{Password: "s3cretos!", Confirmation: "s3cretos!"})

	assert.ErrorIs(t, err, domain.ErrRemoteRejected)
	assert.False(t, out.Success)
	assert.Equal(t, "El enlace no es válido o ha expirado.", out.Message)
}

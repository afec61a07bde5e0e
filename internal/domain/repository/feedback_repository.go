package repository

import (
	"context"

	"github.com/jhoicas/corporate-meals/internal/domain/entity"
)

// FeedbackRepository puerto de feedback de empleados.
type FeedbackRepository interface {
	List(ctx context.Context) ([]entity.Feedback, error)
	Submit(ctx context.Context, employeeRef string, in entity.FeedbackInput) (*entity.Feedback, error)
}

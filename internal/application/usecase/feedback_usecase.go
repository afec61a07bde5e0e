package usecase

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/jhoicas/corporate-meals/internal/application/cache"
	"github.com/jhoicas/corporate-meals/internal/application/dto"
	"github.com/jhoicas/corporate-meals/internal/application/mutation"
	"github.com/jhoicas/corporate-meals/internal/domain"
	"github.com/jhoicas/corporate-meals/internal/domain/entity"
	"github.com/jhoicas/corporate-meals/internal/domain/repository"
)

const maxCommentLength = 1000

// FeedbackUseCase feedback de empleados: listado (admin) y envío (empleado).
type FeedbackUseCase struct {
	feedback repository.FeedbackRepository
	cache    *cache.Cache
	wf       *mutation.Workflow
	ids      IdentitySource
}

// NewFeedbackUseCase construye el caso de uso.
func NewFeedbackUseCase(feedback repository.FeedbackRepository, c *cache.Cache, wf *mutation.Workflow, ids IdentitySource) *FeedbackUseCase {
	return &FeedbackUseCase{feedback: feedback, cache: c, wf: wf, ids: ids}
}

// List todo el feedback recibido.
func (uc *FeedbackUseCase) List(ctx context.Context) (*dto.FeedbackListResponse, error) {
	entry := cache.Get(ctx, uc.cache, cache.KeyFeedback, uc.feedback.List)
	if !entry.HasValue && entry.Status == cache.StatusError {
		return nil, entry.Err
	}
	items := make([]dto.FeedbackResponse, 0, len(entry.Value))
	for _, f := range entry.Value {
		items = append(items, toFeedbackResponse(f))
	}
	return &dto.FeedbackListResponse{Items: items, Cache: dto.NewCacheMeta(string(entry.Status), entry.FetchedAt, entry.Err)}, nil
}

// Submit envía la opinión del empleado vigente.
func (uc *FeedbackUseCase) Submit(ctx context.Context, in dto.FeedbackRequest) (dto.MutationOutcome, error) {
	ref, err := employeeRef(uc.ids)
	if err != nil {
		return dto.MutationOutcome{}, err
	}
	return uc.wf.Run(ctx, mutation.Mutation{
		Name:     "feedback.submit",
		Scope:    "feedback:" + ref,
		Validate: func() error { return validateFeedback(in) },
		Do: func(ctx context.Context) error {
			_, err := uc.feedback.Submit(ctx, ref, entity.FeedbackInput{
				MealID:  in.MealID,
				Rating:  in.Rating,
				Comment: strings.TrimSpace(in.Comment),
			})
			return err
		},
		Invalidate:     []cache.Key{cache.KeyFeedback},
		SuccessMessage: "¡Gracias por tu opinión!",
	})
}

func validateFeedback(in dto.FeedbackRequest) error {
	v := domain.NewValidationError()
	if in.Rating < 1 || in.Rating > 5 {
		v.Add("rating", "la calificación va de 1 a 5")
	}
	comment := strings.TrimSpace(in.Comment)
	switch {
	case comment == "":
		v.Add("comment", "el comentario es obligatorio")
	case utf8.RuneCountInString(comment) > maxCommentLength:
		v.Add("comment", "máximo 1000 caracteres")
	}
	return v.OrNil()
}

func toFeedbackResponse(f entity.Feedback) dto.FeedbackResponse {
	return dto.FeedbackResponse{
		ID:          f.ID,
		EmployeeRef: f.EmployeeRef,
		MealID:      f.MealID,
		Rating:      f.Rating,
		Comment:     f.Comment,
		CreatedAt:   f.CreatedAt,
	}
}

package dto

import "time"

// FeedbackRequest opinión enviada por un empleado.
type FeedbackRequest struct {
	MealID  string `json:"meal_id"`
	Rating  int    `json:"rating" validate:"min=1,max=5"`
	Comment string `json:"comment"`
}

// FeedbackResponse opinión registrada.
type FeedbackResponse struct {
	ID          string    `json:"id"`
	EmployeeRef string    `json:"employee_ref"`
	MealID      string    `json:"meal_id,omitempty"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment"`
	CreatedAt   time.Time `json:"created_at"`
}

// FeedbackListResponse listado para el admin.
type FeedbackListResponse struct {
	Items []FeedbackResponse `json:"items"`
	Cache CacheMeta          `json:"cache"`
}

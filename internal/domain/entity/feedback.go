package entity

import "time"

// Feedback opinión de un empleado sobre el servicio o un plato.
type Feedback struct {
	ID          string
	EmployeeRef string
	MealID      string
	Rating      int // 1..5
	Comment     string
	CreatedAt   time.Time
}

// FeedbackInput alta de feedback desde la vista del empleado.
type FeedbackInput struct {
	MealID  string
	Rating  int
	Comment string
}

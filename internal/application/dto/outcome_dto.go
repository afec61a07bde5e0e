package dto

import "time"

// MutationOutcome disposición de un intento de mutación. Se produce una vez por intento,
// la vista la muestra y después se descarta; nunca se reintenta automáticamente.
type MutationOutcome struct {
	ID          string            `json:"id"`
	Mutation    string            `json:"mutation"`
	Success     bool              `json:"success"`
	Message     string            `json:"message"`
	FieldErrors map[string]string `json:"field_errors,omitempty"`
	At          time.Time         `json:"at"`
}

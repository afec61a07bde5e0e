package dto

import "time"

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PendingResponse cuerpo de una vista que espera la resolución de identidad.
type PendingResponse struct {
	Status string `json:"status"`
}

// CacheMeta estado de la entrada de caché de la que sale una vista.
type CacheMeta struct {
	Status    string     `json:"status"`
	FetchedAt *time.Time `json:"fetched_at,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// NewCacheMeta describe una entrada de caché para la vista. El error se resume en un
// mensaje estable; el detalle queda en los logs.
func NewCacheMeta(status string, fetchedAt time.Time, err error) CacheMeta {
	meta := CacheMeta{Status: status}
	if !fetchedAt.IsZero() {
		t := fetchedAt
		meta.FetchedAt = &t
	}
	if err != nil {
		meta.Error = "No se pudo actualizar la información."
	}
	return meta
}

// ViewResponse vista sin datos propios (login, formulario de restablecimiento, inicio).
type ViewResponse struct {
	View     string `json:"view"`
	SignedIn bool   `json:"signed_in,omitempty"`
}

package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")

	// AuthError
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrAuthUnavailable    = errors.New("servicio de autenticación no disponible")
	ErrSessionExpired     = errors.New("sesión expirada")

	// OrderError
	ErrMissingIdentityContext = errors.New("la identidad no tiene la referencia necesaria para el pedido")
	ErrRemoteRejected         = errors.New("la API remota rechazó la operación")
	ErrTransport              = errors.New("fallo de comunicación con la API remota")

	// CacheError
	ErrFetchFailed = errors.New("no se pudo obtener el recurso remoto")

	// Mutaciones y plataforma
	ErrMutationInFlight       = errors.New("ya hay una operación en curso")
	ErrGeolocationUnavailable = errors.New("ubicación no disponible")
	ErrUnknownCurrency        = errors.New("moneda desconocida")
)

// AuthError error de autenticación. Kind es uno de ErrInvalidCredentials, ErrAuthUnavailable o ErrSessionExpired.
type AuthError struct {
	Kind error
	Err  error
}

func (e *AuthError) Error() string {
	if e.Err != nil && !errors.Is(e.Err, e.Kind) {
		return fmt.Sprintf("auth: %v: %v", e.Kind, e.Err)
	}
	return "auth: " + e.Kind.Error()
}

func (e *AuthError) Unwrap() []error { return nonNil(e.Kind, e.Err) }

// OrderError error del envío de un pedido. Kind es ErrMissingIdentityContext, ErrRemoteRejected o ErrTransport.
// Message es el mensaje legible del servidor si lo hubo.
type OrderError struct {
	Kind    error
	Message string
	Err     error
}

func (e *OrderError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("order: %v: %s", e.Kind, e.Message)
	}
	return "order: " + e.Kind.Error()
}

func (e *OrderError) Unwrap() []error { return nonNil(e.Kind, e.Err) }

// CacheError fallo al poblar una entrada de la caché remota.
type CacheError struct {
	Key string
	Err error
}

func (e *CacheError) Error() string {
	return fmt.Sprintf("cache %q: %v: %v", e.Key, ErrFetchFailed, e.Err)
}

func (e *CacheError) Unwrap() []error { return nonNil(ErrFetchFailed, e.Err) }

// RemoteError lo produce el adaptador de la API remota. Rejected=true indica que el servidor
// respondió con un rechazo (validación, regla de negocio); false indica fallo de transporte.
type RemoteError struct {
	Op       string
	Message  string
	Rejected bool
	Err      error
}

func (e *RemoteError) Error() string {
	kind := ErrTransport
	if e.Rejected {
		kind = ErrRemoteRejected
	}
	if e.Message != "" {
		return fmt.Sprintf("%s: %v: %s", e.Op, kind, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v: %v", e.Op, kind, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, kind)
}

func (e *RemoteError) Unwrap() []error {
	if e.Rejected {
		return nonNil(ErrRemoteRejected, e.Err)
	}
	return nonNil(ErrTransport, e.Err)
}

func nonNil(errs ...error) []error {
	out := errs[:0]
	for _, err := range errs {
		if err != nil {
			out = append(out, err)
		}
	}
	return out
}

// RemoteMessage extrae el mensaje legible del servidor de una cadena de errores, si existe.
func RemoteMessage(err error) string {
	var re *RemoteError
	if errors.As(err, &re) {
		return re.Message
	}
	return ""
}

// ValidationError errores de formulario resueltos en el cliente antes de cualquier llamada remota.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError construye un error vacío; usar Add y OrNil.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

// Add registra el error de un campo (el primero gana).
func (e *ValidationError) Add(field, msg string) {
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

// OrNil devuelve nil si no hay campos con error.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validación: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Package mutation ejecuta escrituras contra la API remota y reconcilia el estado del cliente
// con su resultado: invalida la caché, aplica el efecto local de éxito y publica la disposición.
package mutation

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jhoicas/corporate-meals/internal/application/cache"
	"github.com/jhoicas/corporate-meals/internal/application/dto"
	"github.com/jhoicas/corporate-meals/internal/domain"
	"github.com/jhoicas/corporate-meals/pkg/logger"
)

// GenericFailureMessage mensaje estable cuando el servidor no aporta uno.
const GenericFailureMessage = "No se pudo completar la operación. Inténtalo de nuevo."

// Resultados de métricas.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultInvalid = "invalid"
	ResultIgnored = "ignored"
)

// Mutation describe una escritura.
type Mutation struct {
	Name string
	// Scope serializa las ejecuciones: solo una en curso por scope. Vacío = Name.
	Scope string
	// Validate comprueba el formulario antes de cualquier llamada remota.
	Validate func() error
	Do       func(ctx context.Context) error
	// Invalidate y InvalidatePrefixes se invalidan tras un éxito.
	Invalidate         []cache.Key
	InvalidatePrefixes []string
	// OnSuccess efecto local de éxito (p. ej. vaciar la selección). Se ejecuta al resolver.
	OnSuccess      func()
	SuccessMessage string
	FailureMessage string
}

// Invalidator lo implementa *cache.Cache.
type Invalidator interface {
	Invalidate(key cache.Key)
	InvalidatePrefix(prefix string)
}

// SessionExpirer lo implementa el Identity Store.
type SessionExpirer interface {
	Expire()
}

// Observer recibe el resultado de cada intento (métricas).
type Observer interface {
	MutationFinished(name, result string, elapsed time.Duration)
}

// Workflow coordinador de mutaciones. Seguro para uso concurrente.
type Workflow struct {
	cache    Invalidator
	board    *Board
	expirer  SessionExpirer
	observer Observer
	log      *logger.Logger

	mu       sync.Mutex
	inflight map[string]struct{}
}

// Option opción funcional del constructor.
type Option func(*Workflow)

func WithExpirer(e SessionExpirer) Option { return func(w *Workflow) { w.expirer = e } }
func WithObserver(o Observer) Option      { return func(w *Workflow) { w.observer = o } }
func WithLogger(l *logger.Logger) Option  { return func(w *Workflow) { w.log = l.Component("mutation") } }

// NewWorkflow construye el coordinador.
func NewWorkflow(c Invalidator, board *Board, opts ...Option) *Workflow {
	w := &Workflow{
		cache:    c,
		board:    board,
		log:      logger.Nop(),
		inflight: map[string]struct{}{},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Board tablero donde se publican las disposiciones.
func (w *Workflow) Board() *Board { return w.board }

// Run ejecuta m:
//   - Validate falla → outcome con FieldErrors, sin llamada remota ni disposición.
//   - otra ejecución del mismo scope en curso → domain.ErrMutationInFlight, se ignora.
//   - éxito → OnSuccess, invalidaciones y disposición de éxito.
//   - fallo → disposición con el mensaje del servidor o el genérico; el estado local no cambia.
//
// La llamada remota usa un contexto desacoplado del llamador para que la reconciliación
// siempre se aplique.
func (w *Workflow) Run(ctx context.Context, m Mutation) (dto.MutationOutcome, error) {
	start := time.Now()
	if m.Validate != nil {
		if err := m.Validate(); err != nil {
			w.finish(m.Name, ResultInvalid, start)
			out := dto.MutationOutcome{Mutation: m.Name, Message: err.Error()}
			var verr *domain.ValidationError
			if errors.As(err, &verr) {
				out.Message = "Revisa los campos marcados."
				out.FieldErrors = verr.Fields
			}
			return out, err
		}
	}

	scope := m.Scope
	if scope == "" {
		scope = m.Name
	}
	if !w.acquire(scope) {
		w.finish(m.Name, ResultIgnored, start)
		w.log.Debug().Str("mutation", m.Name).Str("scope", scope).Msg("mutación ignorada: ya hay una en curso")
		return dto.MutationOutcome{}, domain.ErrMutationInFlight
	}
	defer w.release(scope)

	err := m.Do(context.WithoutCancel(ctx))
	if err != nil {
		msg := domain.RemoteMessage(err)
		if msg == "" {
			msg = m.FailureMessage
		}
		if msg == "" {
			msg = GenericFailureMessage
		}
		if errors.Is(err, domain.ErrSessionExpired) && w.expirer != nil {
			w.expirer.Expire()
		}
		w.log.Warn().Err(err).Str("mutation", m.Name).Msg("mutación fallida")
		w.finish(m.Name, ResultFailure, start)
		out := w.board.Publish(dto.MutationOutcome{Mutation: m.Name, Success: false, Message: msg})
		return out, err
	}

	if m.OnSuccess != nil {
		m.OnSuccess()
	}
	for _, key := range m.Invalidate {
		w.cache.Invalidate(key)
	}
	for _, prefix := range m.InvalidatePrefixes {
		w.cache.InvalidatePrefix(prefix)
	}
	msg := m.SuccessMessage
	if msg == "" {
		msg = "Operación completada."
	}
	w.log.Info().Str("mutation", m.Name).Dur("elapsed", time.Since(start)).Msg("mutación completada")
	w.finish(m.Name, ResultSuccess, start)
	return w.board.Publish(dto.MutationOutcome{Mutation: m.Name, Success: true, Message: msg}), nil
}

// InFlight informa si hay una mutación en curso en scope (la vista deshabilita el disparador).
func (w *Workflow) InFlight(scope string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.inflight[scope]
	return ok
}

func (w *Workflow) acquire(scope string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, busy := w.inflight[scope]; busy {
		return false
	}
	w.inflight[scope] = struct{}{}
	return true
}

func (w *Workflow) release(scope string) {
	w.mu.Lock()
	delete(w.inflight, scope)
	w.mu.Unlock()
}

func (w *Workflow) finish(name, result string, start time.Time) {
	if w.observer != nil {
		w.observer.MutationFinished(name, result, time.Since(start))
	}
}

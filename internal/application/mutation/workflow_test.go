package mutation_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/corporate-meals/internal/application/cache"
	"github.com/jhoicas/corporate-meals/internal/application/mutation"
	"github.com/jhoicas/corporate-meals/internal/domain"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type invalidatorSpy struct {
	mu       sync.Mutex
	keys     []cache.Key
	prefixes []string
}

func (s *invalidatorSpy) Invalidate(key cache.Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys = append(s.keys, key)
}

func (s *invalidatorSpy) InvalidatePrefix(prefix string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefixes = append(s.prefixes, prefix)
}

type expirerSpy struct{ calls int }

func (e *expirerSpy) Expire() { e.calls++ }

type observerSpy struct {
	mu      sync.Mutex
	results []string
}

func (o *observerSpy) MutationFinished(name, result string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.results = append(o.results, result)
}

func newWorkflow() (*mutation.Workflow, *invalidatorSpy, *expirerSpy, *observerSpy) {
	inv := &invalidatorSpy{}
	exp := &expirerSpy{}
	obs := &observerSpy{}
	wf := mutation.NewWorkflow(inv, mutation.NewBoard(), mutation.WithExpirer(exp), mutation.WithObserver(obs))
	return wf, inv, exp, obs
}

// ──────────────────────────────────────────────────────────────────────────────
// Run
// ──────────────────────────────────────────────────────────────────────────────

func TestRun_Exito_InvalidaYPublica(t *testing.T) {
	wf, inv, _, obs := newWorkflow()
	var order []string

	out, err := wf.Run(context.Background(), mutation.Mutation{
		Name:               "plan.delete",
		Do:                 func(ctx context.Context) error { order = append(order, "do"); return nil },
		OnSuccess:          func() { order = append(order, "success") },
		Invalidate:         []cache.Key{cache.KeyPlans},
		InvalidatePrefixes: []string{cache.PrefixSubscription},
		SuccessMessage:     "Plan eliminado",
	})

	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, "Plan eliminado", out.Message)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, []string{"do", "success"}, order)
	assert.Equal(t, []cache.Key{cache.KeyPlans}, inv.keys)
	assert.Equal(t, []string{cache.PrefixSubscription}, inv.prefixes)
	assert.Equal(t, []string{mutation.ResultSuccess}, obs.results)

	latest, ok := wf.Board().Latest()
	require.True(t, ok)
	assert.Equal(t, out, latest)
}

// La validación bloquea localmente: sin llamada remota ni disposición.
func TestRun_ValidacionFallida_NoLlamaAlRemoto(t *testing.T) {
	wf, inv, _, obs := newWorkflow()
	called := false

	out, err := wf.Run(context.Background(), mutation.Mutation{
		Name: "meal.create",
		Validate: func() error {
			v := domain.NewValidationError()
			v.Add("price", "debe ser mayor que cero")
			return v.OrNil()
		},
		Do: func(ctx context.Context) error { called = true; return nil },
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.False(t, called)
	assert.False(t, out.Success)
	assert.Equal(t, map[string]string{"price": "debe ser mayor que cero"}, out.FieldErrors)
	assert.Empty(t, inv.keys)
	_, published := wf.Board().Latest()
	assert.False(t, published)
	assert.Equal(t, []string{mutation.ResultInvalid}, obs.results)
}

func TestRun_Fallo_MensajeDelServidor(t *testing.T) {
	wf, inv, _, _ := newWorkflow()
	successRan := false

	out, err := wf.Run(context.Background(), mutation.Mutation{
		Name:       "order.submit",
		Do:         func(ctx context.Context) error { return &domain.RemoteError{Op: "create order", Message: "El plato 3 ya no está disponible", Rejected: true} },
		OnSuccess:  func() { successRan = true },
		Invalidate: []cache.Key{cache.KeyCatalog},
	})

	assert.ErrorIs(t, err, domain.ErrRemoteRejected)
	assert.False(t, out.Success)
	assert.Equal(t, "El plato 3 ya no está disponible", out.Message)
	assert.False(t, successRan, "el estado local no cambia ante un fallo")
	assert.Empty(t, inv.keys)
}

func TestRun_Fallo_MensajeGenerico(t *testing.T) {
	wf, _, _, _ := newWorkflow()

	out, err := wf.Run(context.Background(), mutation.Mutation{
		Name: "plan.update",
		Do:   func(ctx context.Context) error { return errors.New("connection reset") },
	})

	require.Error(t, err)
	assert.Equal(t, mutation.GenericFailureMessage, out.Message)
}

func TestRun_SesionExpirada_Expira(t *testing.T) {
	wf, _, exp, _ := newWorkflow()

	_, err := wf.Run(context.Background(), mutation.Mutation{
		Name: "feedback.submit",
		Do:   func(ctx context.Context) error { return domain.ErrSessionExpired },
	})

	assert.ErrorIs(t, err, domain.ErrSessionExpired)
	assert.Equal(t, 1, exp.calls)
}

// Solo una ejecución en curso por scope; la segunda se ignora.
func TestRun_MismoScopeEnCurso_SeIgnora(t *testing.T) {
	wf, _, _, obs := newWorkflow()
	release := make(chan struct{})
	started := make(chan struct{})
	calls := 0

	m := mutation.Mutation{
		Name:  "order.submit",
		Scope: "order:u-1",
		Do: func(ctx context.Context) error {
			calls++
			close(started)
			<-release
			return nil
		},
	}

	done := make(chan error, 1)
	go func() {
		_, err := wf.Run(context.Background(), m)
		done <- err
	}()
	<-started
	assert.True(t, wf.InFlight("order:u-1"))

	_, err := wf.Run(context.Background(), m)
	assert.ErrorIs(t, err, domain.ErrMutationInFlight)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, calls)
	assert.False(t, wf.InFlight("order:u-1"))
	assert.Contains(t, obs.results, mutation.ResultIgnored)
}

// Cancelar el contexto del llamador no aborta la llamada remota.
func TestRun_ContextoCancelado_NoAfectaAlRemoto(t *testing.T) {
	wf, _, _, _ := newWorkflow()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var remoteErr error
	_, err := wf.Run(ctx, mutation.Mutation{
		Name: "meal.delete",
		Do:   func(ctx context.Context) error { remoteErr = ctx.Err(); return nil },
	})

	require.NoError(t, err)
	assert.NoError(t, remoteErr)
}

// ──────────────────────────────────────────────────────────────────────────────
// Board
// ──────────────────────────────────────────────────────────────────────────────

func TestBoard_Dismiss(t *testing.T) {
	wf, _, _, _ := newWorkflow()
	first, _ := wf.Run(context.Background(), mutation.Mutation{Name: "a", Do: func(context.Context) error { return nil }})
	second, _ := wf.Run(context.Background(), mutation.Mutation{Name: "b", Do: func(context.Context) error { return nil }})

	board := wf.Board()
	assert.False(t, board.Dismiss(first.ID), "solo se descarta la disposición vigente")
	assert.True(t, board.Dismiss(second.ID))
	_, ok := board.Latest()
	assert.False(t, ok)
}

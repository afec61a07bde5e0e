// Package cache implementa la caché de recursos remotos: única fuente de verdad del cliente
// para listados y detalles servidos por la API remota.
//
// Reglas:
//   - Como máximo un fetch aplicable por clave; las peticiones concurrentes se adjuntan al fetch
//     en curso (singleflight por vuelo: clave, generación y secuencia del vuelo).
//   - Una entrada lista que supera su ventana de frescura se sirve como stale mientras se
//     refresca en segundo plano.
//   - Invalidate sube la generación de la clave: el siguiente Get vuelve a pedir y la respuesta
//     de un fetch anterior que llegue tarde se descarta, nunca pisa un valor más nuevo.
//   - Los fetch se ejecutan con un contexto desacoplado del llamador: abandonar una vista no
//     cancela el fetch y su resultado siempre puede aplicarse a la caché.
//   - Las notificaciones se entregan en orden desde una cola propia, nunca desde dentro del
//     fetch: un listener puede volver a llamar a Get sobre la misma clave.
package cache

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/corporate-meals/internal/domain"
	"github.com/jhoicas/corporate-meals/pkg/logger"
)

// Status estado observable de una entrada.
type Status string

const (
	StatusAbsent  Status = "absent"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusStale   Status = "stale"
	StatusError   Status = "error"
)

// Entry instantánea tipada de una entrada. Value solo es significativo si HasValue.
type Entry[V any] struct {
	Key       Key
	Status    Status
	Value     V
	HasValue  bool
	FetchedAt time.Time
	Err       error
}

// Fetcher obtiene el valor remoto de una clave.
type Fetcher[V any] func(ctx context.Context) (V, error)

// SessionExpirer recibe el aviso de sesión expirada detectado en un fetch.
type SessionExpirer interface {
	Expire()
}

// Observer recibe eventos para métricas. Las implementaciones deben ser baratas y no bloquear.
type Observer interface {
	CacheHit(key Key)
	CacheMiss(key Key)
	FetchStarted(key Key)
	FetchFailed(key Key)
	FetchDiscarded(key Key)
}

// Listener recibe cambios de estado de una clave.
type Listener func(key Key, status Status)

// Config parámetros de la caché.
type Config struct {
	StaleAfter   time.Duration // 0 = nunca stale
	Retries      int           // reintentos automáticos tras un fallo (0 o 1)
	FetchTimeout time.Duration // 0 = sin timeout propio
}

// Option opción funcional del constructor.
type Option func(*Cache)

// WithExpirer registra el receptor de sesiones expiradas.
func WithExpirer(e SessionExpirer) Option { return func(c *Cache) { c.expirer = e } }

// WithObserver registra el observador de métricas.
func WithObserver(o Observer) Option { return func(c *Cache) { c.observer = o } }

// WithLogger registra el logger.
func WithLogger(l *logger.Logger) Option { return func(c *Cache) { c.log = l.Component("cache") } }

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option { return func(c *Cache) { c.now = now } }

// Cache almacén de entradas por clave. Seguro para uso concurrente.
type Cache struct {
	cfg      Config
	mu       sync.Mutex
	records  map[Key]*record
	gen      uint64
	flights  uint64
	group    singleflight.Group
	events   []event
	draining bool
	now      func() time.Time
	expirer  SessionExpirer
	observer Observer
	log      *logger.Logger

	subMu   sync.Mutex
	subs    map[int]Listener
	nextSub int
}

type record struct {
	value      any
	hasValue   bool
	fetchedAt  time.Time
	err        error
	failed     bool
	loading    bool
	gen        uint64
	flight     uint64 // secuencia del vuelo en curso; solo vale si loading
	staleAfter time.Duration
}

type event struct {
	key    Key
	status Status
}

// New construye la caché.
func New(cfg Config, opts ...Option) *Cache {
	if cfg.Retries < 0 {
		cfg.Retries = 0
	}
	c := &Cache{
		cfg:      cfg,
		records:  map[Key]*record{},
		now:      time.Now,
		observer: nopObserver{},
		log:      logger.Nop(),
		subs:     map[int]Listener{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetOption ajusta un Get concreto.
type GetOption func(*getOptions)

type getOptions struct {
	staleAfter time.Duration
}

// WithStaleAfter ventana de frescura para esta clave (p. ej. seguimiento de pedidos).
func WithStaleAfter(d time.Duration) GetOption {
	return func(o *getOptions) { o.staleAfter = d }
}

// Get sirve la entrada de key, pidiéndola con fetch si hace falta:
//   - ready y fresca: se sirve sin fetch.
//   - stale: se sirve el último valor y se lanza (o reutiliza) un refresco en segundo plano.
//   - absent, invalidada o error: se lanza (o reutiliza) el fetch y se espera su resultado.
//
// Si ctx termina antes del resultado, la entrada vuelve con Status loading y Err = ctx.Err();
// el fetch sigue y su resultado se aplica igual.
func Get[V any](ctx context.Context, c *Cache, key Key, fetch Fetcher[V], opts ...GetOption) Entry[V] {
	o := getOptions{staleAfter: c.cfg.StaleAfter}
	for _, opt := range opts {
		opt(&o)
	}
	wrapped := func(fctx context.Context) (any, error) { return fetch(fctx) }

	for attempt := 0; ; attempt++ {
		c.mu.Lock()
		rec := c.recordLocked(key)
		rec.staleAfter = o.staleAfter
		now := c.now()

		if rec.hasValue && !rec.failed {
			if !rec.isStale(now) {
				entry := snapshot[V](key, rec, now)
				c.mu.Unlock()
				c.observer.CacheHit(key)
				return entry
			}
			c.flightLocked(ctx, key, rec, wrapped)
			entry := snapshot[V](key, rec, now)
			c.mu.Unlock()
			c.observer.CacheHit(key)
			return entry
		}

		ch := c.flightLocked(ctx, key, rec, wrapped)
		gen, seq := rec.gen, rec.flight
		c.mu.Unlock()
		c.observer.CacheMiss(key)

		var res singleflight.Result
		select {
		case res = <-ch:
		case <-ctx.Done():
			var zero V
			return Entry[V]{Key: key, Status: StatusLoading, Value: zero, Err: ctx.Err()}
		}

		c.mu.Lock()
		cur := c.records[key]
		if cur != nil && cur.gen == gen {
			if cur.loading && cur.flight != seq {
				// Otro Get ya lanzó un vuelo nuevo tras el nuestro: se responde con nuestro resultado.
				c.mu.Unlock()
				return detached[V](key, res, c.now())
			}
			entry := snapshot[V](key, cur, c.now())
			c.mu.Unlock()
			return entry
		}
		c.mu.Unlock()

		// La clave se invalidó mientras esperábamos: la respuesta pertenece a una generación
		// anterior. Se pide una vez más; si vuelve a ocurrir se devuelve el resultado sin cachear.
		if attempt == 0 {
			continue
		}
		return detached[V](key, res, c.now())
	}
}

// Peek devuelve la instantánea de key sin disparar ningún fetch.
func Peek[V any](c *Cache, key Key) Entry[V] {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.records[key]
	if !ok {
		return Entry[V]{Key: key, Status: StatusAbsent}
	}
	return snapshot[V](key, rec, c.now())
}

// Invalidate retira de inmediato la elegibilidad del valor de key; el próximo Get vuelve a pedir.
func (c *Cache) Invalidate(key Key) {
	c.InvalidateMatching(func(k Key) bool { return k == key })
}

// InvalidatePrefix invalida todas las claves con el prefijo dado.
func (c *Cache) InvalidatePrefix(prefix string) {
	c.InvalidateMatching(func(k Key) bool { return k.HasPrefix(prefix) })
}

// InvalidateAll invalida todas las claves (p. ej. al cambiar de identidad).
func (c *Cache) InvalidateAll() {
	c.InvalidateMatching(func(Key) bool { return true })
}

// InvalidateMatching invalida las claves que cumplen pred.
func (c *Cache) InvalidateMatching(pred func(Key) bool) {
	c.mu.Lock()
	var changed []Key
	for key, rec := range c.records {
		if !pred(key) {
			continue
		}
		c.gen++
		rec.gen = c.gen
		rec.value = nil
		rec.hasValue = false
		rec.failed = false
		rec.err = nil
		rec.loading = false
		rec.fetchedAt = time.Time{}
		c.enqueueLocked(key, StatusAbsent)
		changed = append(changed, key)
	}
	c.mu.Unlock()
	for _, key := range changed {
		c.log.Debug().Str("key", string(key)).Msg("clave invalidada")
	}
}

// Reset descarta todas las entradas (teardown en tests y al cerrar sesión).
// Los fetch en curso se descartan al completar.
func (c *Cache) Reset() {
	c.mu.Lock()
	c.records = map[Key]*record{}
	c.mu.Unlock()
}

// Subscribe registra un listener de cambios de estado. Devuelve la función para darse de baja.
// Las notificaciones se entregan en orden, de forma asíncrona y fuera de los locks de la caché;
// el listener puede llamar a Get, Peek o Invalidate.
func (c *Cache) Subscribe(l Listener) (unsubscribe func()) {
	c.subMu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = l
	c.subMu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			c.subMu.Lock()
			delete(c.subs, id)
			c.subMu.Unlock()
		})
	}
}

// enqueueLocked encola una notificación. Debe llamarse con c.mu tomado para que el orden de la
// cola sea el de los cambios de estado.
func (c *Cache) enqueueLocked(key Key, status Status) {
	c.events = append(c.events, event{key: key, status: status})
	if !c.draining {
		c.draining = true
		go c.drain()
	}
}

// drain entrega la cola de a una notificación; termina cuando la cola queda vacía.
func (c *Cache) drain() {
	for {
		c.mu.Lock()
		if len(c.events) == 0 {
			c.draining = false
			c.mu.Unlock()
			return
		}
		ev := c.events[0]
		c.events = c.events[1:]
		c.mu.Unlock()
		c.deliver(ev.key, ev.status)
	}
}

func (c *Cache) deliver(key Key, status Status) {
	c.subMu.Lock()
	listeners := make([]Listener, 0, len(c.subs))
	for _, l := range c.subs {
		listeners = append(listeners, l)
	}
	c.subMu.Unlock()
	for _, l := range listeners {
		l(key, status)
	}
}

func (c *Cache) recordLocked(key Key) *record {
	rec, ok := c.records[key]
	if !ok {
		c.gen++
		rec = &record{gen: c.gen}
		c.records[key] = rec
	}
	return rec
}

// flightLocked devuelve el canal del vuelo en curso de key o lanza uno nuevo. Debe llamarse con
// c.mu tomado. loading solo pasa a true cuando de verdad empieza un fetch, y cada vuelo tiene su
// propia clave en el grupo: un Get que llega mientras otro vuelo termina nunca se adjunta a él.
func (c *Cache) flightLocked(ctx context.Context, key Key, rec *record, fetch func(context.Context) (any, error)) <-chan singleflight.Result {
	if !rec.loading {
		c.flights++
		rec.flight = c.flights
		rec.loading = true
		c.enqueueLocked(key, rec.status(c.now()))
	}
	gen, seq := rec.gen, rec.flight
	detachedCtx := context.WithoutCancel(ctx)
	return c.group.DoChan(flightKey(key, gen, seq), func() (any, error) {
		return c.run(detachedCtx, key, gen, seq, fetch)
	})
}

func (c *Cache) run(ctx context.Context, key Key, gen, seq uint64, fetch func(context.Context) (any, error)) (any, error) {
	if c.cfg.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.FetchTimeout)
		defer cancel()
	}
	c.observer.FetchStarted(key)
	c.log.Debug().Str("key", string(key)).Msg("fetch iniciado")

	value, err := fetch(ctx)
	for i := 0; err != nil && i < c.cfg.Retries && retryable(err) && ctx.Err() == nil; i++ {
		c.log.Debug().Err(err).Str("key", string(key)).Msg("reintentando fetch")
		value, err = fetch(ctx)
	}
	if err != nil {
		err = &domain.CacheError{Key: string(key), Err: err}
	}
	c.complete(key, gen, seq, value, err)
	return value, err
}

// complete aplica el resultado si el vuelo sigue siendo el vigente; si no, lo descarta.
// Al volver, el registro ya no apunta a este vuelo: el expirer y los listeners que llamen a Get
// lanzan uno nuevo en lugar de esperar a este.
func (c *Cache) complete(key Key, gen, seq uint64, value any, err error) {
	c.mu.Lock()
	rec, ok := c.records[key]
	if !ok || rec.gen != gen || !rec.loading || rec.flight != seq {
		c.mu.Unlock()
		c.observer.FetchDiscarded(key)
		c.log.Debug().Str("key", string(key)).Msg("respuesta descartada: la clave fue invalidada")
		return
	}
	rec.loading = false
	status := StatusReady
	if err != nil {
		// Se conserva el último valor; mostrarlo o no es decisión del llamador.
		rec.failed = true
		rec.err = err
		status = StatusError
	} else {
		rec.value = value
		rec.hasValue = true
		rec.failed = false
		rec.err = nil
		rec.fetchedAt = c.now()
	}
	c.enqueueLocked(key, status)
	c.mu.Unlock()

	if err != nil {
		c.observer.FetchFailed(key)
		c.log.Warn().Err(err).Str("key", string(key)).Msg("fetch fallido")
		if errors.Is(err, domain.ErrSessionExpired) && c.expirer != nil {
			c.expirer.Expire()
		}
	}
}

func retryable(err error) bool {
	return !errors.Is(err, domain.ErrSessionExpired) && !errors.Is(err, domain.ErrNotFound)
}

func (r *record) isStale(now time.Time) bool {
	return r.staleAfter > 0 && now.Sub(r.fetchedAt) >= r.staleAfter
}

func (r *record) status(now time.Time) Status {
	switch {
	case r.failed && !r.loading:
		return StatusError
	case r.hasValue && !r.failed && r.isStale(now):
		return StatusStale
	case r.hasValue && !r.failed:
		return StatusReady
	case r.loading:
		return StatusLoading
	default:
		return StatusAbsent
	}
}

func snapshot[V any](key Key, rec *record, now time.Time) Entry[V] {
	entry := Entry[V]{
		Key:       key,
		Status:    rec.status(now),
		FetchedAt: rec.fetchedAt,
		Err:       rec.err,
	}
	if rec.hasValue {
		if v, ok := rec.value.(V); ok {
			entry.Value = v
			entry.HasValue = true
		}
	}
	return entry
}

func detached[V any](key Key, res singleflight.Result, now time.Time) Entry[V] {
	entry := Entry[V]{Key: key, Status: StatusReady, FetchedAt: now}
	if res.Err != nil {
		entry.Status = StatusError
		entry.Err = res.Err
		return entry
	}
	if v, ok := res.Val.(V); ok {
		entry.Value = v
		entry.HasValue = true
	}
	return entry
}

func flightKey(key Key, gen, seq uint64) string {
	return string(key) + "#" + strconv.FormatUint(gen, 10) + "#" + strconv.FormatUint(seq, 10)
}

type nopObserver struct{}

func (nopObserver) CacheHit(Key)       {}
func (nopObserver) CacheMiss(Key)      {}
func (nopObserver) FetchStarted(Key)   {}
func (nopObserver) FetchFailed(Key)    {}
func (nopObserver) FetchDiscarded(Key) {}

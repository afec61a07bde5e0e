// Package auth mantiene la identidad autenticada del cliente (Identity Store).
//
// Hay como máximo una identidad viva. Solo SignIn, Resolve, SignOut y Expire la escriben;
// el resto de componentes la lee con Current o se suscribe a sus cambios.
package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jhoicas/corporate-meals/internal/application/ports"
	"github.com/jhoicas/corporate-meals/internal/domain"
	"github.com/jhoicas/corporate-meals/internal/domain/entity"
	"github.com/jhoicas/corporate-meals/pkg/jwt"
	"github.com/jhoicas/corporate-meals/pkg/logger"
)

// ErrSuperseded el intento de sesión terminó después de un SignOut u otro intento más reciente.
var ErrSuperseded = errors.New("auth: intento de sesión reemplazado por un cambio posterior")

// Session identidad vigente con su token y vencimiento (cero si el token no lo declara).
type Session struct {
	Identity  entity.Identity
	Token     string
	ExpiresAt time.Time
}

// Listener recibe la identidad nueva (nil tras sign-out o expiración).
type Listener = func(entity.Identity)

// Config parámetros del store.
type Config struct {
	// TokenSecret si no está vacío, la firma de los tokens se verifica localmente.
	TokenSecret string
}

// Store Identity Store del proceso. Seguro para uso concurrente.
type Store struct {
	gw  ports.AuthGateway
	cfg Config
	log *logger.Logger
	now func() time.Time

	mu      sync.RWMutex
	session   *Session
	resolving int // Resolve en curso
	signingIn int // SignIn en curso
	attempt   uint64

	// Cambios pendientes de entregar, en el orden en que ocurrieron. Un solo llamador los
	// entrega a la vez; los cambios provocados por un listener se encolan y salen después.
	queue      []entity.Identity
	delivering bool

	subMu    sync.Mutex
	subs     map[int]Listener
	nextSub  int
}

// NewStore construye el store. log puede ser nil.
func NewStore(gw ports.AuthGateway, cfg Config, log *logger.Logger) *Store {
	return &Store{
		gw:   gw,
		cfg:  cfg,
		log:  log.Component("identity"),
		now:  time.Now,
		subs: map[int]Listener{},
	}
}

// SetClock reemplaza el reloj (tests).
func (s *Store) SetClock(now func() time.Time) { s.now = now }

// Current identidad vigente o nil.
func (s *Store) Current() entity.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	return s.session.Identity
}

// Session copia de la sesión vigente.
func (s *Store) Session() (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return Session{}, false
	}
	return *s.session, true
}

// Token token de la sesión vigente ("" sin sesión). Lo usa el adaptador remoto.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return ""
	}
	return s.session.Token
}

// Resolving informa si la identidad aún se está resolviendo (Resolve en curso). Un SignIn en
// curso no cuenta: mientras tanto Current sigue siendo la identidad anterior.
func (s *Store) Resolving() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolving > 0
}

// SigningIn informa si hay un SignIn en curso.
func (s *Store) SigningIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.signingIn > 0
}

// SignIn autentica contra la API remota. Mientras está en curso Current sigue devolviendo la
// identidad anterior. Los errores son *domain.AuthError (InvalidCredentials o Unavailable) y
// no se reintentan.
func (s *Store) SignIn(ctx context.Context, creds ports.Credentials) (entity.Identity, error) {
	seq := s.begin(false)
	res, err := s.gw.Login(ctx, creds)
	if err != nil {
		s.end(false)
		kind := domain.ErrAuthUnavailable
		if errors.Is(err, domain.ErrInvalidCredentials) {
			kind = domain.ErrInvalidCredentials
		}
		s.log.Warn().Err(err).Msg("inicio de sesión fallido")
		return nil, &domain.AuthError{Kind: kind, Err: err}
	}
	return s.establish(seq, false, res, "inicio de sesión")
}

// Resolve recupera la identidad de un token ya emitido (p. ej. al arrancar). Un token vencido
// falla con SessionExpired sin llamar a la API.
func (s *Store) Resolve(ctx context.Context, token string) (entity.Identity, error) {
	seq := s.begin(true)
	if _, err := jwt.Read(s.cfg.TokenSecret, token, s.now()); err != nil && errors.Is(err, jwt.ErrExpired) {
		s.end(true)
		return nil, &domain.AuthError{Kind: domain.ErrSessionExpired, Err: err}
	}
	res, err := s.gw.Me(ctx, token)
	if err != nil {
		s.end(true)
		kind := domain.ErrAuthUnavailable
		if errors.Is(err, domain.ErrSessionExpired) || errors.Is(err, domain.ErrInvalidCredentials) {
			kind = domain.ErrSessionExpired
		}
		s.log.Warn().Err(err).Msg("no se pudo resolver la sesión")
		return nil, &domain.AuthError{Kind: kind, Err: err}
	}
	if res.Token == "" {
		res.Token = token
	}
	return s.establish(seq, true, res, "sesión resuelta")
}

// SignOut destruye la identidad vigente y descarta cualquier SignIn en curso.
func (s *Store) SignOut() {
	s.drop("sesión cerrada")
}

// Expire equivale a SignOut; se invoca al detectar una sesión muerta (401 de la API o exp vencido).
func (s *Store) Expire() {
	s.drop("sesión expirada")
}

// ExpireIfStale expira la sesión si su token ya venció. Devuelve true si expiró.
func (s *Store) ExpireIfStale(now time.Time) bool {
	s.mu.RLock()
	stale := s.session != nil && !s.session.ExpiresAt.IsZero() && !now.Before(s.session.ExpiresAt)
	s.mu.RUnlock()
	if stale {
		s.Expire()
	}
	return stale
}

// Subscribe registra un listener de cambios de identidad. Los cambios se entregan en orden;
// un listener puede llamar a SignOut o Expire: su cambio se entrega al terminar la entrega actual.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = l
	s.subMu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

// Reset vuelve al estado inicial sin notificar (teardown en tests).
func (s *Store) Reset() {
	s.mu.Lock()
	s.session = nil
	s.resolving, s.signingIn = 0, 0
	s.queue = nil
	s.attempt++
	s.mu.Unlock()
	s.subMu.Lock()
	s.subs = map[int]Listener{}
	s.subMu.Unlock()
}

func (s *Store) begin(resolve bool) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	*s.counter(resolve)++
	s.attempt++
	return s.attempt
}

func (s *Store) end(resolve bool) {
	s.mu.Lock()
	s.endLocked(resolve)
	s.mu.Unlock()
}

func (s *Store) endLocked(resolve bool) {
	if n := s.counter(resolve); *n > 0 {
		*n--
	}
}

// counter contador de intentos del tipo dado. Requiere s.mu.
func (s *Store) counter(resolve bool) *int {
	if resolve {
		return &s.resolving
	}
	return &s.signingIn
}

// establish instala la sesión si seq sigue siendo el último intento; un SignOut o un SignIn
// posterior la dejan obsoleta.
func (s *Store) establish(seq uint64, resolve bool, res *ports.AuthResult, msg string) (entity.Identity, error) {
	identity := entity.NewIdentity(res.UserID, res.Role, res.Ref, res.CompanyRef)
	sess := &Session{Identity: identity, Token: res.Token}
	if claims, err := jwt.Decode(res.Token); err == nil {
		sess.ExpiresAt = claims.ExpiresAtTime()
	}

	s.mu.Lock()
	s.endLocked(resolve)
	if seq != s.attempt {
		s.mu.Unlock()
		s.log.Debug().Str("user_id", identity.ID()).Msg("sesión descartada: hubo un cambio posterior")
		return nil, ErrSuperseded
	}
	s.session = sess
	s.log.Info().Str("user_id", identity.ID()).Str("role", identity.Role().String()).Msg(msg)
	s.publishLocked(identity)
	return identity, nil
}

func (s *Store) drop(msg string) {
	s.mu.Lock()
	s.attempt++
	if s.session == nil {
		s.mu.Unlock()
		return
	}
	userID := s.session.Identity.ID()
	s.session = nil
	s.log.Info().Str("user_id", userID).Msg(msg)
	s.publishLocked(nil)
}

// publishLocked encola el cambio y, si nadie está entregando, entrega la cola. Se llama con
// s.mu tomado y lo libera.
func (s *Store) publishLocked(identity entity.Identity) {
	s.queue = append(s.queue, identity)
	if s.delivering {
		s.mu.Unlock()
		return
	}
	s.delivering = true
	for len(s.queue) > 0 {
		next := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()
		s.deliver(next)
		s.mu.Lock()
	}
	s.delivering = false
	s.mu.Unlock()
}

func (s *Store) deliver(identity entity.Identity) {
	s.subMu.Lock()
	listeners := make([]Listener, 0, len(s.subs))
	for _, l := range s.subs {
		listeners = append(listeners, l)
	}
	s.subMu.Unlock()
	for _, l := range listeners {
		l(identity)
	}
}

// Package remote implementa los puertos del cliente contra la API remota de pedidos.
// Es el único paquete que conoce HTTP: hacia dentro solo salen valores de dominio y
// errores de la taxonomía de domain.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/jhoicas/corporate-meals/internal/domain"
	"github.com/jhoicas/corporate-meals/pkg/logger"
)

const maxBodyBytes = 1 << 20

// TokenSource entrega el token de la sesión vigente ("" sin sesión).
type TokenSource interface {
	Token() string
}

// TokenFunc adapta una función a TokenSource.
type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }

// Config parámetros del cliente.
type Config struct {
	BaseURL string
	Timeout time.Duration
	RPS     int
	Burst   int
}

// Client adaptador HTTP de la API remota. Seguro para uso concurrente.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	tokens  TokenSource
	log     *logger.Logger
}

// Option opción funcional del constructor.
type Option func(*Client)

// WithHTTPClient reemplaza el *http.Client (tests).
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

// WithLogger registra el logger.
func WithLogger(l *logger.Logger) Option { return func(c *Client) { c.log = l.Component("remote") } }

// NewClient construye el cliente. tokens puede ser nil (solo llamadas públicas).
func NewClient(cfg Config, tokens TokenSource, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	limit := rate.Inf
	if cfg.RPS > 0 {
		limit = rate.Limit(cfg.RPS)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(limit, burst),
		tokens:  tokens,
		log:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// call describe una petición a la API.
type call struct {
	op          string
	method      string
	path        string
	query       url.Values
	body        any
	out         any
	token       string // token explícito; si está vacío se usa TokenSource
	public      bool   // no envía Authorization y un 401 no se interpreta como sesión expirada
	idempotency string
}

// do ejecuta la petición y traduce la respuesta:
//   - 2xx → decodifica out (si no es nil).
//   - 401 en llamada autorizada → domain.ErrSessionExpired.
//   - 404 → domain.ErrNotFound.
//   - otro no-2xx → RemoteError{Rejected: true} con el mensaje del servidor.
//   - fallo de red → RemoteError{Rejected: false}.
func (c *Client) do(ctx context.Context, r call) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &domain.RemoteError{Op: r.op, Err: err}
	}

	var body io.Reader
	if r.body != nil {
		raw, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("%s: serializar request: %w", r.op, err)
		}
		body = bytes.NewReader(raw)
	}
	target := c.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return fmt.Errorf("%s: crear request: %w", r.op, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.idempotency != "" {
		req.Header.Set("Idempotency-Key", r.idempotency)
	}
	if !r.public {
		token := r.token
		if token == "" && c.tokens != nil {
			token = c.tokens.Token()
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			err = fmt.Errorf("timeout o cancelación: %w", ctx.Err())
		}
		c.log.Warn().Err(err).Str("op", r.op).Str("request_id", requestID).Msg("llamada remota fallida")
		return &domain.RemoteError{Op: r.op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &domain.RemoteError{Op: r.op, Err: fmt.Errorf("leer respuesta: %w", err)}
	}
	c.log.Debug().Str("op", r.op).Str("request_id", requestID).Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).Msg("llamada remota")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError(r, resp.StatusCode, raw)
	}
	if r.out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, r.out); err != nil {
		return &domain.RemoteError{Op: r.op, Err: fmt.Errorf("respuesta inválida: %w", err)}
	}
	return nil
}

func (c *Client) statusError(r call, status int, raw []byte) error {
	msg := serverMessage(raw)
	rerr := &domain.RemoteError{Op: r.op, Message: msg, Rejected: true, Err: statusCode(status)}
	switch {
	case status == http.StatusUnauthorized && !r.public:
		rerr.Err = domain.ErrSessionExpired
	case status == http.StatusNotFound:
		rerr.Err = domain.ErrNotFound
	case status == http.StatusConflict:
		rerr.Err = domain.ErrConflict
	case status >= 500:
		// Un 5xx es un fallo del servicio, no un rechazo de la petición.
		rerr.Rejected = false
		rerr.Message = ""
	}
	if status >= 500 || errors.Is(rerr, domain.ErrSessionExpired) {
		c.log.Warn().Str("op", r.op).Int("status", status).Msg("respuesta remota de error")
	}
	return rerr
}

// serverMessage extrae el mensaje legible de {"message"|"detail"|"error"}.
func serverMessage(raw []byte) string {
	var body struct {
		Message string          `json:"message"`
		Detail  json.RawMessage `json:"detail"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	for _, field := range []json.RawMessage{body.Detail, body.Error} {
		var s string
		if len(field) > 0 && json.Unmarshal(field, &s) == nil && s != "" {
			return s
		}
	}
	return ""
}

func pathEscape(s string) string { return url.PathEscape(s) }

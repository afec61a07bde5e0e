package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/corporate-meals/internal/application/cache"
	"github.com/jhoicas/corporate-meals/internal/application/dto"
	"github.com/jhoicas/corporate-meals/internal/application/ports"
	"github.com/jhoicas/corporate-meals/internal/domain"
	"github.com/jhoicas/corporate-meals/internal/domain/money"
	"github.com/jhoicas/corporate-meals/pkg/logger"
)

// CurrencyUseCase moneda de presentación: preferencia local + tasas cacheadas por moneda base.
// La preferencia nunca interviene en decisiones de seguridad.
type CurrencyUseCase struct {
	prefs ports.PreferenceStore
	rates ports.CurrencyRates
	cache *cache.Cache
	base  string
	log   *logger.Logger

	mu   sync.RWMutex
	code string
}

// NewCurrencyUseCase construye el caso de uso; base es la moneda nativa del servidor.
func NewCurrencyUseCase(prefs ports.PreferenceStore, rates ports.CurrencyRates, c *cache.Cache, base string, log *logger.Logger) *CurrencyUseCase {
	return &CurrencyUseCase{prefs: prefs, rates: rates, cache: c, base: base, code: base, log: log.Component("currency")}
}

// Load lee la preferencia persistida (al arrancar). Una preferencia ilegible o inválida
// deja la moneda base.
func (uc *CurrencyUseCase) Load() {
	code, err := uc.prefs.Currency()
	if err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo leer la preferencia de moneda")
		return
	}
	if code == "" {
		return
	}
	norm, err := money.NormalizeCode(code)
	if err != nil {
		uc.log.Warn().Err(err).Msg("preferencia de moneda inválida, se usa la base")
		return
	}
	uc.mu.Lock()
	uc.code = norm
	uc.mu.Unlock()
}

// Code moneda de presentación elegida.
func (uc *CurrencyUseCase) Code() string {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.code
}

// Display moneda de presentación con su tasa. Sin tasa disponible se presenta en la base.
func (uc *CurrencyUseCase) Display(ctx context.Context) money.Currency {
	code := uc.Code()
	if code == uc.base {
		return money.Identity(uc.base)
	}
	rate, err := uc.rate(ctx, code)
	if err != nil {
		uc.log.Warn().Err(err).Str("currency", code).Msg("tasa no disponible, se presenta en moneda base")
		return money.Identity(uc.base)
	}
	return money.Currency{Code: code, Rate: rate}
}

// Current moneda vigente para la vista de preferencias.
func (uc *CurrencyUseCase) Current(ctx context.Context) *dto.CurrencyResponse {
	cur := uc.Display(ctx)
	return &dto.CurrencyResponse{Base: uc.base, Code: cur.Code, Rate: cur.Rate.String()}
}

// SetCurrency valida el código, comprueba que haya tasa y persiste la preferencia.
func (uc *CurrencyUseCase) SetCurrency(ctx context.Context, code string) (*dto.CurrencyResponse, error) {
	norm, err := money.NormalizeCode(code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnknownCurrency, err)
	}
	if norm != uc.base {
		if _, err := uc.rate(ctx, norm); err != nil {
			return nil, err
		}
	}
	if err := uc.prefs.SetCurrency(norm); err != nil {
		return nil, fmt.Errorf("currency: guardar preferencia: %w", err)
	}
	uc.mu.Lock()
	uc.code = norm
	uc.mu.Unlock()
	uc.log.Info().Str("currency", norm).Msg("moneda de presentación actualizada")
	return uc.Current(ctx), nil
}

func (uc *CurrencyUseCase) rate(ctx context.Context, code string) (decimal.Decimal, error) {
	entry := cache.Get(ctx, uc.cache, cache.KeyCurrencyRates(uc.base), func(ctx context.Context) (map[string]decimal.Decimal, error) {
		return uc.rates.Rates(ctx, uc.base)
	})
	if !entry.HasValue {
		if entry.Err != nil {
			return decimal.Zero, entry.Err
		}
		return decimal.Zero, ctx.Err()
	}
	rate, ok := entry.Value[code]
	if !ok || !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: sin tasa para %s", domain.ErrUnknownCurrency, code)
	}
	return rate, nil
}

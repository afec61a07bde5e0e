package mocks

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/corporate-meals/internal/application/ports"
	"github.com/jhoicas/corporate-meals/internal/domain/entity"
)

// MockAuthGateway is a mock implementation of ports.AuthGateway for testing.
// Release, si no es nil, bloquea Login/Me hasta que se cierre.
type MockAuthGateway struct {
	mu         sync.Mutex
	LoginRes   *ports.AuthResult
	LoginErr   error
	MeRes      *ports.AuthResult
	MeErr      error
	LoginCalls []ports.Credentials
	MeCalls    []string
	Release    chan struct{}
}

func (m *MockAuthGateway) Login(ctx context.Context, creds ports.Credentials) (*ports.AuthResult, error) {
	if m.Release != nil {
		<-m.Release
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoginCalls = append(m.LoginCalls, creds)
	if m.LoginErr != nil {
		return nil, m.LoginErr
	}
	res := *m.LoginRes
	return &res, nil
}

func (m *MockAuthGateway) Me(ctx context.Context, token string) (*ports.AuthResult, error) {
	if m.Release != nil {
		<-m.Release
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MeCalls = append(m.MeCalls, token)
	if m.MeErr != nil {
		return nil, m.MeErr
	}
	res := *m.MeRes
	return &res, nil
}

// MockPasswordReset is a mock implementation of ports.PasswordResetGateway for testing.
type MockPasswordReset struct {
	mu          sync.Mutex
	Validated   []string
	Consumed    map[string]string
	ValidateErr error
	ConsumeErr  error
}

func (m *MockPasswordReset) ValidateResetToken(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Validated = append(m.Validated, token)
	return m.ValidateErr
}

func (m *MockPasswordReset) ConsumeResetToken(ctx context.Context, token, newPassword string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ConsumeErr != nil {
		return m.ConsumeErr
	}
	if m.Consumed == nil {
		m.Consumed = map[string]string{}
	}
	m.Consumed[token] = newPassword
	return nil
}

// MockGeoService is a mock implementation of ports.GeoService for testing.
type MockGeoService struct {
	mu          sync.Mutex
	Coordinates map[string]entity.Coordinates
	Nearby      []entity.Meal
	Queries     []entity.Coordinates
	GeocodeErr  error
	NearbyErr   error
}

func (m *MockGeoService) Geocode(ctx context.Context, address string) (entity.Coordinates, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GeocodeErr != nil {
		return entity.Coordinates{}, m.GeocodeErr
	}
	return m.Coordinates[address], nil
}

func (m *MockGeoService) NearbyMeals(ctx context.Context, at entity.Coordinates, radiusKm float64) ([]entity.Meal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Queries = append(m.Queries, at)
	if m.NearbyErr != nil {
		return nil, m.NearbyErr
	}
	return append([]entity.Meal(nil), m.Nearby...), nil
}

// MockCurrencyRates is a mock implementation of ports.CurrencyRates for testing.
type MockCurrencyRates struct {
	mu    sync.Mutex
	Table map[string]decimal.Decimal
	Calls int
	Err   error
}

func (m *MockCurrencyRates) Rates(ctx context.Context, base string) (map[string]decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	out := make(map[string]decimal.Decimal, len(m.Table))
	for k, v := range m.Table {
		out[k] = v
	}
	return out, nil
}

// MockLocator is a mock implementation of ports.Locator for testing.
type MockLocator struct {
	Position entity.Coordinates
	Err      error
}

func (m *MockLocator) CurrentPosition(ctx context.Context) (entity.Coordinates, error) {
	if m.Err != nil {
		return entity.Coordinates{}, m.Err
	}
	return m.Position, nil
}

// MockPreferenceStore is a mock implementation of ports.PreferenceStore for testing.
type MockPreferenceStore struct {
	mu       sync.Mutex
	Code     string
	ReadErr  error
	WriteErr error
}

func (m *MockPreferenceStore) Currency() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Code, m.ReadErr
}

func (m *MockPreferenceStore) SetCurrency(code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.Code = code
	return nil
}

package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/corporate-meals/internal/application/access"
	"github.com/jhoicas/corporate-meals/internal/application/auth"
	"github.com/jhoicas/corporate-meals/internal/application/cache"
	"github.com/jhoicas/corporate-meals/internal/application/catalog"
	"github.com/jhoicas/corporate-meals/internal/application/dto"
	"github.com/jhoicas/corporate-meals/internal/application/mutation"
	"github.com/jhoicas/corporate-meals/internal/application/order"
	"github.com/jhoicas/corporate-meals/internal/application/ports"
	"github.com/jhoicas/corporate-meals/internal/application/selection"
	"github.com/jhoicas/corporate-meals/internal/application/usecase"
	"github.com/jhoicas/corporate-meals/internal/domain"
	"github.com/jhoicas/corporate-meals/internal/domain/entity"
	"github.com/jhoicas/corporate-meals/internal/domain/mocks"
	"github.com/jhoicas/corporate-meals/internal/infrastructure/platform"
	apphttp "github.com/jhoicas/corporate-meals/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type receiptStub struct{}

func (receiptStub) GenerateReceiptPDF(_ context.Context, r order.Receipt) ([]byte, error) {
	return []byte("%PDF-1.4 " + r.OrderID), nil
}

type gateway struct {
	app    *fiber.App
	gw     *mocks.MockAuthGateway
	store  *auth.Store
	meals  *mocks.MockMealRepository
	orders *mocks.MockOrderRepository
	geo    *mocks.MockGeoService
	reset  *mocks.MockPasswordReset
	sel    *selection.Set
	board  *mutation.Board
}

// newGateway monta el gateway completo sobre dobles en memoria de la API remota.
func newGateway(t *testing.T) *gateway {
	t.Helper()
	g := &gateway{
		gw: &mocks.MockAuthGateway{},
		meals: &mocks.MockMealRepository{Catalog: []entity.Meal{
			{ID: "m1", ChefRef: "C1", ChefName: "Ana", Name: "Bandeja paisa", Category: "almuerzo", Price: decimal.NewFromInt(12), Available: true},
			{ID: "m2", ChefRef: "C1", ChefName: "Ana", Name: "Ajiaco", Category: "almuerzo", Price: decimal.NewFromInt(10), Available: false},
			{ID: "m3", ChefRef: "C2", ChefName: "Luis", Name: "Arepa", Category: "desayuno", Price: decimal.NewFromInt(4), Available: true},
		}},
		orders: &mocks.MockOrderRepository{},
		geo: &mocks.MockGeoService{Nearby: []entity.Meal{
			{ID: "m3", Name: "Arepa", Category: "desayuno", Price: decimal.NewFromInt(4), Available: true},
		}},
		reset: &mocks.MockPasswordReset{},
		sel:   selection.New(),
		board: mutation.NewBoard(),
	}
	g.store = auth.NewStore(g.gw, auth.Config{}, nil)
	c := cache.New(cache.Config{}, cache.WithExpirer(g.store))
	wf := mutation.NewWorkflow(c, g.board, mutation.WithExpirer(g.store))
	g.sel.BindIdentity(g.store)
	g.store.Subscribe(func(entity.Identity) {
		c.InvalidateAll()
		g.board.Clear()
	})

	currency := usecase.NewCurrencyUseCase(&mocks.MockPreferenceStore{},
		&mocks.MockCurrencyRates{Table: map[string]decimal.Decimal{"EUR": decimal.RequireFromString("0.9")}}, c, "USD", nil)
	plans := &mocks.MockPlanRepository{}
	registry := access.NewRegistry()

	g.app = fiber.New()
	apphttp.Router(g.app, apphttp.RouterDeps{
		Store:      g.store,
		Gate:       access.NewGate(g.store),
		Registry:   registry,
		Board:      g.board,
		CatalogUC:  catalog.NewUseCase(c, g.meals, g.sel, currency),
		OrderUC:    order.NewUseCase(g.orders, c, g.sel, wf, g.store, currency, receiptStub{}, order.Config{}),
		MealUC:     usecase.NewMealUseCase(g.meals, c, wf, g.store, currency),
		PlanUC:     usecase.NewPlanUseCase(plans, c, wf, currency),
		CompanyUC:  usecase.NewCompanyUseCase(plans, c, wf, g.store),
		FeedbackUC: usecase.NewFeedbackUseCase(&mocks.MockFeedbackRepository{}, c, wf, g.store),
		UserUC:     usecase.NewUserUseCase(g.reset, wf),
		NearbyUC:   usecase.NewNearbyUseCase(g.geo, platform.ContextLocator{}, c, currency),
		DeliveryUC: usecase.NewDeliveryUseCase(&mocks.MockDeliveryRepository{}, c, wf, g.store),
		CurrencyUC: currency,
	})
	return g
}

func (g *gateway) signIn(t *testing.T, role entity.Role, ref string) {
	t.Helper()
	g.gw.LoginRes = &ports.AuthResult{Token: "tok-" + ref, UserID: "u-" + ref, Role: role, Ref: ref, CompanyRef: "CO-1"}
	_, err := g.store.SignIn(context.Background(), ports.Credentials{Email: "a@b.co", Password: "secreto"})
	require.NoError(t, err)
}

func (g *gateway) do(t *testing.T, method, path string, body any, headers ...string) *http.Response {
	t.Helper()
	var req *http.Request
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, path, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := g.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Sesión y aterrizaje
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_DevuelveSesionYAterrizajePorRol(t *testing.T) {
	g := newGateway(t)
	g.gw.LoginRes = &ports.AuthResult{Token: "tok", UserID: "u-1", Role: entity.RoleChef, Ref: "C1"}

	resp := g.do(t, http.MethodPost, "/login", dto.LoginRequest{Email: "chef@x.co", Password: "secreto123"})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.SessionResponse
	decodeBody(t, resp, &out)
	assert.Equal(t, "chef", out.Role)
	assert.Equal(t, "C1", out.Ref)
	assert.Equal(t, "/chef/dashboard", out.Landing)

	resp = g.do(t, http.MethodGet, "/dashboard", nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/chef/dashboard", resp.Header.Get("Location"))
}

func TestLogin_CredencialesInvalidas_Retorna401(t *testing.T) {
	g := newGateway(t)
	g.gw.LoginErr = domain.ErrInvalidCredentials

	resp := g.do(t, http.MethodPost, "/login", dto.LoginRequest{Email: "x@x.co", Password: "malo"})

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var out dto.ErrorResponse
	decodeBody(t, resp, &out)
	assert.Equal(t, "INVALID_CREDENTIALS", out.Code)
	assert.Nil(t, g.store.Current())
}

func TestLogin_ServicioCaido_Retorna503(t *testing.T) {
	g := newGateway(t)
	g.gw.LoginErr = &domain.RemoteError{Op: "auth.login", Err: context.DeadlineExceeded}

	resp := g.do(t, http.MethodPost, "/login", dto.LoginRequest{Email: "x@x.co", Password: "secreto"})

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestLogin_CamposVacios_Retorna400(t *testing.T) {
	g := newGateway(t)

	resp := g.do(t, http.MethodPost, "/login", dto.LoginRequest{Email: " "})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, g.gw.LoginCalls)
}

func TestDashboard_SinSesion_RedirigeAHome(t *testing.T) {
	g := newGateway(t)

	resp := g.do(t, http.MethodGet, "/dashboard", nil)

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
}

func TestLogout_VistasProtegidasRedirigenAlLogin(t *testing.T) {
	g := newGateway(t)
	g.signIn(t, entity.RoleEmployee, "E1")

	resp := g.do(t, http.MethodPost, "/logout", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = g.do(t, http.MethodGet, "/employee/catalog", nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestSession_SinSesion_Retorna204(t *testing.T) {
	g := newGateway(t)

	resp := g.do(t, http.MethodGet, "/session", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestPanel_ListaSoloVistasDelRol(t *testing.T) {
	g := newGateway(t)
	g.signIn(t, entity.RoleDeliveryPerson, "D1")

	resp := g.do(t, http.MethodGet, "/delivery/dashboard", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.DashboardResponse
	decodeBody(t, resp, &out)
	assert.Equal(t, "delivery_person", out.Role)
	assert.Contains(t, out.Views, "/delivery/orders")
	assert.Contains(t, out.Views, "/orders/tracking")
	assert.NotContains(t, out.Views, "/employee/catalog")
	assert.NotContains(t, out.Views, "/admin/plans")
}

// ──────────────────────────────────────────────────────────────────────────────
// Gate sobre rutas reales
// ──────────────────────────────────────────────────────────────────────────────

func TestCatalogo_ChefNoEntra_RedirigeAHome(t *testing.T) {
	g := newGateway(t)
	g.signIn(t, entity.RoleChef, "C1")

	resp := g.do(t, http.MethodGet, "/employee/catalog", nil)

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
	assert.Zero(t, g.meals.CatalogCalls, "una vista denegada no pide datos")
}

func TestPlanesAdmin_EmpleadoNoEntra(t *testing.T) {
	g := newGateway(t)
	g.signIn(t, entity.RoleEmployee, "E1")

	resp := g.do(t, http.MethodPost, "/admin/plans", dto.PlanRequest{Name: "Básico"})

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo, selección y pedido
// ──────────────────────────────────────────────────────────────────────────────

func TestCatalogo_FiltraPorDisponibilidadYTexto(t *testing.T) {
	g := newGateway(t)
	g.signIn(t, entity.RoleEmployee, "E1")

	resp := g.do(t, http.MethodGet, "/employee/catalog?availability=available&q=ana", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.CatalogResponse
	decodeBody(t, resp, &out)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "m1", out.Items[0].ID)
	assert.ElementsMatch(t, []string{"almuerzo", "desayuno"}, out.Categories)
	assert.Equal(t, "ready", out.Cache.Status)
}

func TestCatalogo_DisponibilidadInvalida_Retorna422(t *testing.T) {
	g := newGateway(t)
	g.signIn(t, entity.RoleEmployee, "E1")

	resp := g.do(t, http.MethodGet, "/employee/catalog?availability=quizas", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestSeleccion_NoDisponibleNoSeAgrega(t *testing.T) {
	g := newGateway(t)
	g.signIn(t, entity.RoleEmployee, "E1")

	resp := g.do(t, http.MethodPost, "/employee/selection", dto.ToggleRequest{ItemID: "m2"})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Zero(t, g.sel.Len())
}

func TestPedido_FlujoCompleto(t *testing.T) {
	g := newGateway(t)
	g.signIn(t, entity.RoleEmployee, "E1")

	resp := g.do(t, http.MethodPost, "/employee/selection", dto.ToggleRequest{ItemID: "m1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = g.do(t, http.MethodPost, "/employee/selection", dto.ToggleRequest{ItemID: "m3"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var sel dto.SelectionResponse
	decodeBody(t, resp, &sel)
	assert.Equal(t, 2, sel.Count)
	assert.Equal(t, "USD 16.00", sel.Total.Text)

	resp = g.do(t, http.MethodPost, "/employee/orders", nil)

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var out dto.OrderSubmitResponse
	decodeBody(t, resp, &out)
	assert.Equal(t, "order-1", out.OrderID)
	assert.True(t, out.Outcome.Success)
	assert.Zero(t, g.sel.Len(), "la selección se vacía al confirmar")
	require.Len(t, g.orders.Requests, 1)
	assert.Equal(t, "E1", g.orders.Requests[0].SubjectRef)
	assert.NotEmpty(t, g.orders.Requests[0].IdempotencyKey)

	// La disposición se muestra una vez y se descarta.
	resp = g.do(t, http.MethodGet, "/disposition", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var disp dto.MutationOutcome
	decodeBody(t, resp, &disp)
	assert.Equal(t, out.Outcome.ID, disp.ID)

	resp = g.do(t, http.MethodDelete, "/disposition/"+disp.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = g.do(t, http.MethodGet, "/disposition", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestPedido_SeleccionVacia_NoLlamaALaAPI(t *testing.T) {
	g := newGateway(t)
	g.signIn(t, entity.RoleEmployee, "E1")

	resp := g.do(t, http.MethodPost, "/employee/orders", nil)

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Zero(t, g.orders.CreateCalls())
}

func TestPedido_RechazoDelServidor_ConservaSeleccion(t *testing.T) {
	g := newGateway(t)
	g.signIn(t, entity.RoleEmployee, "E1")
	g.orders.CreateErr = &domain.RemoteError{Op: "orders.create", Rejected: true, Message: "Cupo diario agotado"}
	g.sel.Toggle("m1")

	resp := g.do(t, http.MethodPost, "/employee/orders", nil)

	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	var out dto.OrderSubmitResponse
	decodeBody(t, resp, &out)
	assert.False(t, out.Outcome.Success)
	assert.Equal(t, "Cupo diario agotado", out.Outcome.Message)
	assert.Equal(t, 1, g.sel.Len())
}

func TestComprobante_DevuelvePDF(t *testing.T) {
	g := newGateway(t)
	g.signIn(t, entity.RoleEmployee, "E1")
	g.orders.Orders = map[string]entity.Order{"o-9": {ID: "o-9", EmployeeRef: "E1", Status: entity.OrderStatusPending}}

	resp := g.do(t, http.MethodGet, "/employee/orders/receipt/o-9", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "pedido-o-9.pdf")
}

// ──────────────────────────────────────────────────────────────────────────────
// Sesión expirada y errores remotos
// ──────────────────────────────────────────────────────────────────────────────

func TestCatalogo_401Remoto_ExpiraSesionYRedirige(t *testing.T) {
	g := newGateway(t)
	g.signIn(t, entity.RoleEmployee, "E1")
	g.meals.ListErr = &domain.RemoteError{Op: "meals.catalog", Rejected: true, Err: domain.ErrSessionExpired}

	resp := g.do(t, http.MethodGet, "/employee/catalog", nil)

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	assert.Nil(t, g.store.Current(), "la identidad se destruye")
}

func TestCatalogo_FalloDeTransporte_Retorna502(t *testing.T) {
	g := newGateway(t)
	g.signIn(t, entity.RoleEmployee, "E1")
	g.meals.ListErr = &domain.RemoteError{Op: "meals.catalog", Err: context.DeadlineExceeded}

	resp := g.do(t, http.MethodGet, "/employee/catalog", nil)

	require.Equal(t, http.StatusBadGateway, resp.StatusCode)
	var out dto.ErrorResponse
	decodeBody(t, resp, &out)
	assert.Equal(t, "REMOTE_UNAVAILABLE", out.Code)
	assert.NotNil(t, g.store.Current())
}

// ──────────────────────────────────────────────────────────────────────────────
// Chef, cercanos, contraseña y preferencias
// ──────────────────────────────────────────────────────────────────────────────

func TestPlatoChef_Invalido_DevuelveErroresDeCampo(t *testing.T) {
	g := newGateway(t)
	g.signIn(t, entity.RoleChef, "C1")

	resp := g.do(t, http.MethodPost, "/chef/meals", dto.MealRequest{Name: "", Category: "almuerzo"})

	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	var out dto.MutationOutcome
	decodeBody(t, resp, &out)
	assert.False(t, out.Success)
	assert.Contains(t, out.FieldErrors, "name")
	assert.Contains(t, out.FieldErrors, "price")
	assert.Empty(t, g.meals.Created, "nada llega a la API")
}

func TestPlatoChef_Crear(t *testing.T) {
	g := newGateway(t)
	g.signIn(t, entity.RoleChef, "C1")

	resp := g.do(t, http.MethodPost, "/chef/meals", dto.MealRequest{Name: "Sancocho", Category: "almuerzo", Price: decimal.NewFromInt(9)})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.MutationOutcome
	decodeBody(t, resp, &out)
	assert.True(t, out.Success)
	require.Len(t, g.meals.Created, 1)
	assert.Equal(t, "Sancocho", g.meals.Created[0].Name)
}

func TestCercanos_UsaPosicionDelDispositivo(t *testing.T) {
	g := newGateway(t)
	g.signIn(t, entity.RoleEmployee, "E1")

	resp := g.do(t, http.MethodGet, "/employee/nearby", nil, apphttp.HeaderGeoLat, "4.65", apphttp.HeaderGeoLng, "-74.05")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.MealListResponse
	decodeBody(t, resp, &out)
	require.Len(t, out.Items, 1)
	require.Len(t, g.geo.Queries, 1)
	assert.InDelta(t, 4.65, g.geo.Queries[0].Lat, 1e-9)
}

func TestCercanos_SinPosicion_Retorna422(t *testing.T) {
	g := newGateway(t)
	g.signIn(t, entity.RoleEmployee, "E1")

	resp := g.do(t, http.MethodGet, "/employee/nearby", nil)

	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	var out dto.ErrorResponse
	decodeBody(t, resp, &out)
	assert.Equal(t, "GEOLOCATION_UNAVAILABLE", out.Code)
}

func TestRestablecerContrasena_ConfirmacionDistinta(t *testing.T) {
	g := newGateway(t)

	resp := g.do(t, http.MethodPost, "/password-reset/tok-1", dto.PasswordResetRequest{Password: "nueva-clave", Confirmation: "otra-clave"})

	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	var out dto.MutationOutcome
	decodeBody(t, resp, &out)
	assert.Contains(t, out.FieldErrors, "confirmation")
	assert.Empty(t, g.reset.Consumed)
}

func TestRestablecerContrasena_Exito(t *testing.T) {
	g := newGateway(t)

	resp := g.do(t, http.MethodPost, "/password-reset/tok-1", dto.PasswordResetRequest{Password: "nueva-clave", Confirmation: "nueva-clave"})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "nueva-clave", g.reset.Consumed["tok-1"])
}

func TestRestablecerContrasena_TokenInvalido_Retorna404(t *testing.T) {
	g := newGateway(t)
	g.reset.ValidateErr = &domain.RemoteError{Op: "auth.reset", Rejected: true, Err: domain.ErrNotFound}

	resp := g.do(t, http.MethodGet, "/password-reset/caducado", nil)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPreferencias_CambiaMoneda(t *testing.T) {
	g := newGateway(t)
	g.signIn(t, entity.RoleEmployee, "E1")

	resp := g.do(t, http.MethodPut, "/preferences", dto.CurrencyRequest{Code: "eur"})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.CurrencyResponse
	decodeBody(t, resp, &out)
	assert.Equal(t, "EUR", out.Code)
	assert.Equal(t, "USD", out.Base)

	resp = g.do(t, http.MethodPut, "/preferences", dto.CurrencyRequest{Code: "US"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/corporate-meals/internal/application/access"
	"github.com/jhoicas/corporate-meals/internal/application/auth"
	"github.com/jhoicas/corporate-meals/internal/application/catalog"
	"github.com/jhoicas/corporate-meals/internal/application/mutation"
	"github.com/jhoicas/corporate-meals/internal/application/order"
	"github.com/jhoicas/corporate-meals/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Store    *auth.Store
	Gate     *access.Gate
	Registry *access.Registry
	Board    *mutation.Board
	Metrics  GateRecorder // opcional

	CatalogUC  *catalog.UseCase
	OrderUC    *order.UseCase
	MealUC     *usecase.MealUseCase
	PlanUC     *usecase.PlanUseCase
	CompanyUC  *usecase.CompanyUseCase
	FeedbackUC *usecase.FeedbackUseCase
	UserUC     *usecase.UserUseCase
	NearbyUC   *usecase.NearbyUseCase
	DeliveryUC *usecase.DeliveryUseCase
	CurrencyUC *usecase.CurrencyUseCase

	// Now reloj para detectar tokens vencidos (tests); por defecto time.Now.
	Now func() time.Time
}

// Router registra una ruta por vista o acción. Cada vista protegida pasa por RequireView con
// el requisito fijado en el registro de vistas.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(SessionMiddleware(deps.Store, deps.Now))

	view := func(v access.View) fiber.Handler {
		return RequireView(deps.Gate, deps.Registry.MustRequirement(v), deps.Metrics)
	}

	// Públicas
	authHandler := NewAuthHandler(deps.Store, deps.Gate, deps.UserUC)
	app.Get(string(access.ViewHome), authHandler.Home)
	app.Get(string(access.ViewLogin), authHandler.LoginView)
	app.Post(string(access.ViewLogin), authHandler.Login)
	app.Post("/logout", authHandler.Logout)
	app.Get("/session", authHandler.Current)
	app.Get(string(access.ViewDashboard), authHandler.Dashboard)
	reset := app.Group(string(access.ViewPasswordReset), view(access.ViewPasswordReset))
	reset.Get("/:token", authHandler.ValidateResetToken)
	reset.Post("/:token", authHandler.ResetPassword)

	// Paneles por rol
	dashboardHandler := NewDashboardHandler(deps.Store, deps.Registry, deps.Board)
	for _, v := range []access.View{
		access.ViewAdminDashboard,
		access.ViewCompanyDashboard,
		access.ViewEmployeeDashboard,
		access.ViewChefDashboard,
		access.ViewDeliveryDashboard,
	} {
		app.Get(string(v), view(v), dashboardHandler.Show)
	}
	app.Get(string(access.ViewDisposition), view(access.ViewDisposition), dashboardHandler.Disposition)
	app.Delete(string(access.ViewDisposition)+"/:id", view(access.ViewDisposition), dashboardHandler.Dismiss)

	// Admin
	planHandler := NewPlanHandler(deps.PlanUC)
	adminPlans := app.Group(string(access.ViewAdminPlans), view(access.ViewAdminPlans))
	adminPlans.Get("/", planHandler.List)
	adminPlans.Post("/", planHandler.Create)
	adminPlans.Put("/:id", planHandler.Update)
	adminPlans.Delete("/:id", planHandler.Delete)

	feedbackHandler := NewFeedbackHandler(deps.FeedbackUC)
	app.Get(string(access.ViewAdminFeedback), view(access.ViewAdminFeedback), feedbackHandler.List)

	// Empresa
	companyHandler := NewCompanyHandler(deps.PlanUC, deps.CompanyUC)
	app.Get(string(access.ViewCompanyPlans), view(access.ViewCompanyPlans), companyHandler.Plans)
	app.Get(string(access.ViewSubscription), view(access.ViewSubscription), companyHandler.Subscription)
	app.Post(string(access.ViewSubscription), view(access.ViewSubscription), companyHandler.Subscribe)

	// Empleado
	catalogHandler := NewCatalogHandler(deps.CatalogUC, deps.NearbyUC)
	app.Get(string(access.ViewCatalog), view(access.ViewCatalog), catalogHandler.Browse)
	app.Get(string(access.ViewSelection), view(access.ViewSelection), catalogHandler.Selection)
	app.Post(string(access.ViewSelection), view(access.ViewSelection), catalogHandler.Toggle)
	app.Delete(string(access.ViewSelection), view(access.ViewSelection), catalogHandler.Clear)
	app.Get(string(access.ViewNearby), view(access.ViewNearby), PositionMiddleware(), catalogHandler.Nearby)
	app.Post(string(access.ViewEmployeeFeedback), view(access.ViewEmployeeFeedback), feedbackHandler.Submit)

	orderHandler := NewOrderHandler(deps.OrderUC)
	app.Get(string(access.ViewOrders), view(access.ViewOrders), orderHandler.History)
	app.Post(string(access.ViewOrders), view(access.ViewOrders), orderHandler.Submit)
	app.Get(string(access.ViewOrderReceipt)+"/:id", view(access.ViewOrderReceipt), orderHandler.Receipt)
	app.Get(string(access.ViewOrderTracking)+"/:id", view(access.ViewOrderTracking), orderHandler.Track)

	// Chef
	mealHandler := NewMealHandler(deps.MealUC)
	chefMeals := app.Group(string(access.ViewChefMeals), view(access.ViewChefMeals))
	chefMeals.Get("/", mealHandler.List)
	chefMeals.Post("/", mealHandler.Create)
	chefMeals.Put("/:id", mealHandler.Update)
	chefMeals.Delete("/:id", mealHandler.Delete)
	chefMeals.Patch("/:id/availability", mealHandler.SetAvailability)

	// Repartidor
	deliveryHandler := NewDeliveryHandler(deps.DeliveryUC)
	deliveries := app.Group(string(access.ViewDeliveries), view(access.ViewDeliveries))
	deliveries.Get("/", deliveryHandler.List)
	deliveries.Post("/:id/delivered", deliveryHandler.MarkDelivered)

	// Preferencias
	prefsHandler := NewPreferencesHandler(deps.CurrencyUC)
	app.Get(string(access.ViewPreferences), view(access.ViewPreferences), prefsHandler.Currency)
	app.Put(string(access.ViewPreferences), view(access.ViewPreferences), prefsHandler.SetCurrency)
}

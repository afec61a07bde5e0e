package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/corporate-meals/internal/application/access"
	"github.com/jhoicas/corporate-meals/internal/application/auth"
	"github.com/jhoicas/corporate-meals/internal/application/cache"
	"github.com/jhoicas/corporate-meals/internal/application/catalog"
	"github.com/jhoicas/corporate-meals/internal/application/mutation"
	"github.com/jhoicas/corporate-meals/internal/application/order"
	"github.com/jhoicas/corporate-meals/internal/application/selection"
	"github.com/jhoicas/corporate-meals/internal/application/usecase"
	"github.com/jhoicas/corporate-meals/internal/domain/entity"
	"github.com/jhoicas/corporate-meals/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/corporate-meals/internal/infrastructure/pdf"
	"github.com/jhoicas/corporate-meals/internal/infrastructure/platform"
	"github.com/jhoicas/corporate-meals/internal/infrastructure/prefs"
	"github.com/jhoicas/corporate-meals/internal/infrastructure/remote"
	httpRouter "github.com/jhoicas/corporate-meals/internal/interfaces/http"
	"github.com/jhoicas/corporate-meals/pkg/config"
	"github.com/jhoicas/corporate-meals/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("remote", cfg.Remote.BaseURL).
		Msg("iniciando cliente")

	clientMetrics := metrics.New()

	// El cliente remoto lee el token del store en cada petición; el store se crea después
	// porque necesita el gateway de auth construido sobre el mismo cliente.
	var store *auth.Store
	client := remote.NewClient(remote.Config{
		BaseURL: cfg.Remote.BaseURL,
		Timeout: cfg.Remote.Timeout(),
		RPS:     cfg.Remote.RPS,
		Burst:   cfg.Remote.Burst,
	}, remote.TokenFunc(func() string { return store.Token() }), remote.WithLogger(log))
	authGateway := remote.NewAuthGateway(client)
	store = auth.NewStore(authGateway, auth.Config{TokenSecret: cfg.Session.TokenSecret}, log)

	resourceCache := cache.New(cache.Config{
		StaleAfter:   cfg.Cache.StaleAfter(),
		Retries:      cfg.Cache.FetchRetries,
		FetchTimeout: cfg.Cache.FetchTimeout(),
	}, cache.WithExpirer(store), cache.WithObserver(clientMetrics), cache.WithLogger(log))
	board := mutation.NewBoard()
	workflow := mutation.NewWorkflow(resourceCache, board,
		mutation.WithExpirer(store), mutation.WithObserver(clientMetrics), mutation.WithLogger(log))

	// Todo lo derivado de la identidad anterior se descarta en cada cambio.
	sel := selection.New()
	sel.BindIdentity(store)
	store.Subscribe(func(entity.Identity) {
		resourceCache.InvalidateAll()
		board.Clear()
	})

	prefStore, err := prefs.NewFileStore(cfg.Currency.PreferencesPath)
	if err != nil {
		log.Fatal().Err(err).Msg("preferencias locales")
	}
	currencyUC := usecase.NewCurrencyUseCase(prefStore, remote.NewCurrencyRates(client), resourceCache, cfg.Currency.Base, log)
	currencyUC.Load()

	mealRepo := remote.NewMealRepository(client)
	orderRepo := remote.NewOrderRepository(client)
	planRepo := remote.NewPlanRepository(client)

	catalogUC := catalog.NewUseCase(resourceCache, mealRepo, sel, currencyUC)
	orderUC := order.NewUseCase(orderRepo, resourceCache, sel, workflow, store, currencyUC,
		infrapdf.NewMarotoReceiptGenerator(cfg.App.Name),
		order.Config{TrackingStaleAfter: cfg.Cache.TrackingStaleAfter()})
	planUC := usecase.NewPlanUseCase(planRepo, resourceCache, workflow, currencyUC)

	gate := access.NewGate(store)
	registry := access.NewRegistry()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.Remote.Timeout() + time.Second*5,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Corporate Meals Client",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(clientMetrics.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Store:      store,
		Gate:       gate,
		Registry:   registry,
		Board:      board,
		Metrics:    clientMetrics,
		CatalogUC:  catalogUC,
		OrderUC:    orderUC,
		MealUC:     usecase.NewMealUseCase(mealRepo, resourceCache, workflow, store, currencyUC),
		PlanUC:     planUC,
		CompanyUC:  usecase.NewCompanyUseCase(planRepo, resourceCache, workflow, store),
		FeedbackUC: usecase.NewFeedbackUseCase(remote.NewFeedbackRepository(client), resourceCache, workflow, store),
		UserUC:     usecase.NewUserUseCase(authGateway, workflow),
		NearbyUC:   usecase.NewNearbyUseCase(remote.NewGeoService(client), platform.ContextLocator{}, resourceCache, currencyUC),
		DeliveryUC: usecase.NewDeliveryUseCase(remote.NewDeliveryRepository(client), resourceCache, workflow, store),
		CurrencyUC: currencyUC,
	})

	// Sesión heredada: se resuelve en segundo plano; mientras tanto el gate responde pendiente.
	if cfg.Session.Token != "" {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Remote.Timeout())
			defer cancel()
			if _, err := store.Resolve(ctx, cfg.Session.Token); err != nil {
				log.Warn().Err(err).Msg("no se pudo restaurar la sesión")
			}
		}()
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	store.SignOut()

	log.Info().Msg("cliente detenido")
}

package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"

	"github.com/janisto/echo-sortable/internal/http/docs"
	"github.com/janisto/echo-sortable/internal/http/health"
	"github.com/janisto/echo-sortable/internal/http/sortable"
	"github.com/janisto/echo-sortable/internal/http/v1/routes"
	"github.com/janisto/echo-sortable/internal/platform/config"
	applog "github.com/janisto/echo-sortable/internal/platform/logging"
	"github.com/janisto/echo-sortable/internal/platform/metrics"
	appmiddleware "github.com/janisto/echo-sortable/internal/platform/middleware"
	"github.com/janisto/echo-sortable/internal/platform/respond"
	"github.com/janisto/echo-sortable/internal/platform/validate"
	"github.com/janisto/echo-sortable/internal/service/item"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

//	@title			Sortable items API
//	@version		1.0
//	@description	Drag-and-drop ordering for a list of named items.
//	@BasePath		/
func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		applog.LogFatal(ctx, "invalid configuration", err)
	}
	applog.SetLevel(cfg.LogLevel)
	if cfg.StoreDriver == item.DriverFirestore && cfg.IsDevelopment() {
		applog.LogWarn(ctx, "using firestore project for local development",
			slog.String("project_id", cfg.FirebaseProjectID))
	}

	repo, closeStore, err := item.Open(ctx, item.StoreConfig{
		Driver:            cfg.StoreDriver,
		DatabaseURL:       cfg.DatabaseURL,
		FirebaseProjectID: cfg.FirebaseProjectID,
	})
	if err != nil {
		applog.LogFatal(ctx, "store init failed", err, slog.String("driver", cfg.StoreDriver))
	}
	defer func() {
		if closeErr := closeStore(); closeErr != nil {
			applog.LogError(ctx, "store close error", closeErr)
		}
	}()

	if cfg.SeedOnStart {
		n, err := item.Seed(ctx, repo, cfg.SeedCount)
		if err != nil {
			applog.LogFatal(ctx, "seeding items failed", err)
		}
		applog.LogInfo(ctx, "items seeded", slog.Int("created", n))
	}

	catalog := item.NewCatalog(repo)

	reg := metrics.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(reg)
	reorderMetrics := metrics.NewReorderMetrics(reg)

	e := echo.New()
	e.Validator = validate.New()
	e.HTTPErrorHandler = respond.NewHTTPErrorHandler()
	e.IPExtractor = echo.ExtractIPFromRealIPHeader()
	e.Logger = applog.Logger()

	e.Use(
		appmiddleware.Security(appmiddleware.SecurityConfig{
			SkipPaths:    []string{"/api-docs"},
			AssetOrigins: []string{sortable.AssetOrigin},
		}),
		appmiddleware.Vary(),
		appmiddleware.CORS(cfg.CORSOrigins...),
		appmiddleware.RequestID(),
		middleware.BodyLimit(1<<20),
		applog.RequestLogger(cfg.FirebaseProjectID),
		applog.AccessLogger(),
		httpMetrics.Middleware(),
		respond.Recoverer(),
	)

	pinger, _ := repo.(health.Pinger)
	e.GET("/health", health.NewHandler(pinger))
	e.GET("/metrics", echo.WrapHandler(metrics.Handler(reg)))
	docs.Register(e, cfg.OpenAPISpecPath)

	sortable.Register(e.Group(""), catalog, reorderMetrics)

	v1 := e.Group("/v1")
	routes.Register(v1, catalog)

	applog.LogInfo(ctx, "server starting",
		slog.String("addr", ":"+cfg.Port),
		slog.String("store", cfg.StoreDriver),
		slog.String("version", Version))

	sc := echo.StartConfig{
		Address:         ":" + cfg.Port,
		GracefulTimeout: 10 * time.Second,
		BeforeServeFunc: func(s *http.Server) error {
			s.ReadTimeout = 5 * time.Second
			s.ReadHeaderTimeout = 2 * time.Second
			s.WriteTimeout = 10 * time.Second
			s.IdleTimeout = 60 * time.Second
			s.MaxHeaderBytes = 64 << 10
			return nil
		},
	}

	sigCtx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := sc.Start(sigCtx, e); err != nil {
		log.Fatal(err)
	}

	applog.LogInfo(ctx, "server exited")
}

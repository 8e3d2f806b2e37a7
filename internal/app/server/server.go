package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"

	"hrpay/internal/domain/auth"
	"hrpay/internal/domain/directory"
	"hrpay/internal/domain/notifications"
	"hrpay/internal/domain/org"
	"hrpay/internal/domain/payroll"
	"hrpay/internal/platform/config"
	"hrpay/internal/platform/db"
	"hrpay/internal/platform/email"
	"hrpay/internal/platform/metrics"
	"hrpay/internal/transport/http/api"
	approvalshandler "hrpay/internal/transport/http/handlers/approvals"
	authhandler "hrpay/internal/transport/http/handlers/auth"
	notificationshandler "hrpay/internal/transport/http/handlers/notifications"
	orghandler "hrpay/internal/transport/http/handlers/org"
	payrollshandler "hrpay/internal/transport/http/handlers/payrolls"
	"hrpay/internal/transport/http/middleware"
)

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	authStore := auth.NewStore(pool)
	orgStore := org.NewStore(pool)
	directorySvc := directory.NewService(directory.NewStore(pool))

	notificationSvc := notifications.New(notifications.NewStore(pool), email.New(cfg))
	notificationSvc.DefaultFrom = cfg.EmailFrom
	dispatcher := notifications.NewDispatcher(notificationSvc)

	payrollSvc := payroll.NewService(payroll.NewStore(pool), directorySvc, dispatcher)

	collector := metrics.New()
	if !cfg.MetricsEnabled {
		collector = nil
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(authStore, cfg.JWTSecret, cfg.TokenTTL)
		r.Post("/auth/login", authHandler.HandleLogin)

		approvalshandler.NewHandler(payrollSvc, authStore).RegisterRoutes(r)
		payrollshandler.NewHandler(payrollSvc, authStore).RegisterRoutes(r)
		notificationshandler.NewHandler(notificationSvc).RegisterRoutes(r)
		orghandler.NewHandler(orgStore, authStore, notificationSvc).RegisterRoutes(r)

		r.With(middleware.RequirePermission(auth.PermSystemAdmin, authStore)).
			Get("/admin/metrics", func(w http.ResponseWriter, req *http.Request) {
				if collector == nil {
					api.Fail(w, http.StatusNotFound, "metrics_disabled", "metrics collection is disabled", middleware.GetRequestID(req.Context()))
					return
				}
				api.Success(w, collector.Snapshot(), middleware.GetRequestID(req.Context()))
			})
	})

	router.Mount("/", spaHandler{staticPath: cfg.FrontendDir, indexPath: "index.html"})

	log.Printf("payroll server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

type spaHandler struct {
	staticPath string
	indexPath  string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.staticPath, r.URL.Path)
	_, err := os.Stat(path)
	if err == nil {
		http.FileServer(http.Dir(h.staticPath)).ServeHTTP(w, r)
		return
	}

	if os.IsNotExist(err) {
		http.ServeFile(w, r, filepath.Join(h.staticPath, h.indexPath))
		return
	}

	http.NotFound(w, r)
}

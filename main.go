package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"windasset-cloud/internal/assets/infrastructure/postgres"
	"windasset-cloud/internal/audit"
	"windasset-cloud/internal/auth"
	catalogapp "windasset-cloud/internal/catalog/application"
	catalogrepo "windasset-cloud/internal/catalog/infrastructure/postgres"
	cataloghttp "windasset-cloud/internal/catalog/interfaces/http"
	"windasset-cloud/internal/eventbus"
	ingestapp "windasset-cloud/internal/ingest/application"
	ingestrepo "windasset-cloud/internal/ingest/infrastructure/postgres"
	ingesthttp "windasset-cloud/internal/ingest/interfaces/http"
	"windasset-cloud/internal/maillabel"
	"windasset-cloud/internal/observability/metrics"
	wizardapp "windasset-cloud/internal/wizard/application"
	wizardhttp "windasset-cloud/internal/wizard/interfaces/http"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := loadConfig()
	logger := log.New(os.Stdout, "", log.LstdFlags)

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("db open error: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatalf("db ping error: %v", err)
	}

	metrics.Init()
	auditRepo := audit.NewRepository(db)

	lookupRepo := catalogrepo.NewLookupRepository(db)
	writeRepo := catalogrepo.NewWriteRepository(db)
	fleetRepo := catalogrepo.NewFleetRepository(db)
	assetRepo := postgres.NewAssetRepository(db)
	projectAssetRepo := postgres.NewProjectAssetRepository(db)
	detailRepo := postgres.NewDetailRepository(db)
	ingestConfigRepo := ingestrepo.NewConfigRepository(db)
	fileMapRepo := ingestrepo.NewFileMapRepository(db)

	ingestCfg, err := ingestapp.LoadConfig()
	if err != nil {
		logger.Fatalf("ingest config error: %v", err)
	}

	bus := eventbus.NewInMemoryBus()
	auditConsumer := audit.NewConsumer(auditRepo, logger)
	auditConsumer.Register(bus)

	wizardOpts := []wizardapp.Option{
		wizardapp.WithBus(bus),
		wizardapp.WithLogger(logger),
		wizardapp.WithIngestDefaults(ingestCfg),
	}
	if ingestCfg.Gmail.BaseURL != "" {
		labelClient, err := maillabel.NewClient(ingestCfg.Gmail.BaseURL, ingestCfg.Gmail.Token)
		if err != nil {
			logger.Fatalf("label client error: %v", err)
		}
		resolver, err := maillabel.NewResolver(labelClient)
		if err != nil {
			logger.Fatalf("label resolver error: %v", err)
		}
		wizardOpts = append(wizardOpts, wizardapp.WithLabelResolver(resolver))
	}

	wizardService, err := wizardapp.NewService(lookupRepo, assetRepo, projectAssetRepo, detailRepo, ingestConfigRepo, wizardOpts...)
	if err != nil {
		logger.Fatalf("wizard service error: %v", err)
	}
	wizardHandler, err := wizardhttp.NewHandler(wizardService)
	if err != nil {
		logger.Fatalf("wizard handler error: %v", err)
	}

	catalogService, err := catalogapp.NewService(lookupRepo, writeRepo, fleetRepo)
	if err != nil {
		logger.Fatalf("catalog service error: %v", err)
	}
	catalogHandler, err := cataloghttp.NewHandler(catalogService, auditRepo)
	if err != nil {
		logger.Fatalf("catalog handler error: %v", err)
	}

	ingestService, err := ingestapp.NewService(ingestConfigRepo, fileMapRepo)
	if err != nil {
		logger.Fatalf("ingest service error: %v", err)
	}
	ingestHandler, err := ingesthttp.NewHandler(ingestService)
	if err != nil {
		logger.Fatalf("ingest handler error: %v", err)
	}

	policy := auth.NewDefaultPolicy([]string{"/healthz", "/metrics"}, nil)
	authMiddleware := auth.NewMiddleware([]byte(cfg.JWTSecret), policy)

	mux := http.NewServeMux()
	mux.Handle("/api/v1/wizard/sessions", wizardHandler)
	mux.Handle("/api/v1/wizard/sessions/", wizardHandler)
	catalogHandler.Register(mux)
	ingestHandler.Register(mux)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	server := &http.Server{Addr: cfg.HTTPAddr, Handler: loggingMiddleware(authMiddleware.Wrap(mux), logger)}
	logger.Printf("http listening on %s", cfg.HTTPAddr)
	logger.Fatal(server.ListenAndServe())
}

type config struct {
	DatabaseURL string
	HTTPAddr    string
	JWTSecret   string
}

func loadConfig() config {
	cfg := config{
		DatabaseURL: getenvDefault("DATABASE_URL", getenvDefault("PG_DSN", "")),
		HTTPAddr:    getenvDefault("HTTP_ADDR", ":8080"),
		JWTSecret:   getenvDefault("AUTH_JWT_SECRET", getenvDefault("JWT_SECRET", "")),
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL or PG_DSN is required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("AUTH_JWT_SECRET is required")
	}
	return cfg
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func loggingMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		resp := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(resp, r)
		logger.Printf("http %s %s %d %s", r.Method, r.URL.Path, resp.status, time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

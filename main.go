package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/OWDB/OWDB-Backend/internal/config"
	"github.com/OWDB/OWDB-Backend/internal/db"
	"github.com/OWDB/OWDB-Backend/internal/enrich"
	"github.com/OWDB/OWDB-Backend/internal/middleware"
	"github.com/OWDB/OWDB-Backend/internal/utils"
	"github.com/OWDB/OWDB-Backend/internal/wrestlers"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	response := "Server is up!"
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, response)
}

func NewRouter(cfg config.Config, repo *wrestlers.Repository, catalogue *enrich.Catalogue, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))
	r.Get("/", RootHandler)

	r.Mount("/wrestlers", wrestlers.SetupRoutes(repo))
	r.Mount("/enrichment", enrich.SetupRoutes(
		enrich.NewHandlers(catalogue, repo, logger, enrich.WithWriteRate(cfg.WritesPerSecond)),
		cfg.APIKeyHash,
	))
	return r
}

func main() {
	_ = godotenv.Load(".env.local")

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	logger, err := utils.NewLogger(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	conn, err := db.Connect(cfg.DatabaseURL, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := wrestlers.Migrate(conn); err != nil {
		logger.Fatal("failed to migrate", zap.Error(err))
	}

	catalogue, err := enrich.OpenCatalogue(cfg.DataDir)
	if err != nil {
		logger.Fatal("failed to load enrichment catalogue", zap.Error(err))
	}
	if cfg.APIKeyHash == "" {
		logger.Warn("ENRICH_API_KEY_HASH not set; POST /enrichment/run is disabled")
	}

	r := NewRouter(cfg, wrestlers.NewRepository(conn), catalogue, logger)

	logger.Info("server listening", zap.String("port", cfg.Port))
	if err := http.ListenAndServe("0.0.0.0:"+cfg.Port, r); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

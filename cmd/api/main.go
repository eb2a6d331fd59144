// ==============================================================================
// ADMIN API SERVICE - cmd/api/main.go
// ==============================================================================
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"rensadmin/internal/admin"
	"rensadmin/internal/article"
	"rensadmin/internal/auth"
	"rensadmin/internal/content"
	"rensadmin/internal/deal"
	"rensadmin/internal/handler"
	"rensadmin/internal/i18n"
	"rensadmin/internal/middleware"
	"rensadmin/internal/report"
	"rensadmin/internal/repository/postgres"
	"rensadmin/internal/settings"
	"rensadmin/internal/stats"
	"rensadmin/pkg/cache"
	"rensadmin/pkg/config"
	"rensadmin/pkg/logger"
	"rensadmin/pkg/validator"
)

func main() {
	// .env is optional; containerized deployments inject the environment
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New("admin-api")

	if err := cfg.ValidateCore(); err != nil {
		log.Fatal("Invalid configuration", map[string]interface{}{"error": err.Error()})
	}

	log.Info("Starting Admin API", map[string]interface{}{
		"port": cfg.Server.Port,
	})

	backendDB := connectDB(log, "backend", cfg.BackendDatabase)
	defer backendDB.Close()

	publicDB := connectDB(log, "public", cfg.PublicDatabase)
	defer publicDB.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.URL,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis", map[string]interface{}{
			"error": err.Error(),
		})
	}
	log.Info("Redis connected", nil)

	// Backend-store repositories
	userRepo := postgres.NewUserRepository(backendDB)
	subRepo := postgres.NewSubscriptionRepository(backendDB)
	deviceRepo := postgres.NewDeviceRepository(backendDB)
	analysisRepo := postgres.NewAnalysisRepository(backendDB)

	// Public-store repositories
	dealRepo := postgres.NewDealRepository(publicDB)
	relationRepo := postgres.NewDealRelationRepository(publicDB)
	dealTransRepo := postgres.NewDealTranslationRepository(publicDB)
	translationRepo := postgres.NewTranslationRepository(publicDB)
	languageRepo := postgres.NewLanguageRepository(publicDB)
	landingRepo := postgres.NewLandingPageRepository(publicDB)
	sectionRepo := postgres.NewReportSectionRepository(publicDB)
	documentRepo := postgres.NewReportDocumentRepository(publicDB)
	settingRepo := postgres.NewAppSettingRepository(publicDB)
	adminUserRepo := postgres.NewAdminUserRepository(publicDB)
	articleRepo := postgres.NewArticleRepository(publicDB)

	// Services
	pricing := stats.NewPlanPricing(cfg.Pricing.PremiumMonthly, cfg.Pricing.EnterpriseYearly)
	analysisClient := admin.NewHTTPAnalysisClient(cfg.Analysis)
	adminService := admin.NewService(userRepo, subRepo, deviceRepo, analysisRepo, analysisClient, pricing, log)
	adminService.UseStatsCache(cache.NewRedis(redisClient), time.Minute)
	authService := auth.NewService(adminUserRepo, cfg.JWT.Secret, cfg.JWT.Expiration, log)
	dealService := deal.NewService(dealRepo, log)
	dealGraph := deal.NewGraph(dealRepo, relationRepo, log)
	contentService := content.NewService(landingRepo, log)
	translationService := i18n.NewTranslationService(translationRepo, log)
	languageService := i18n.NewLanguageService(languageRepo, log)
	dealTransService := i18n.NewDealTranslationService(dealTransRepo, log)
	reportService := report.NewService(sectionRepo, documentRepo, log)
	settingsService := settings.NewService(settingRepo, log)
	articleService := article.NewService(articleRepo, settingsService, log)

	// Handlers
	val := validator.New()
	authHandler := handler.NewAuthHandler(authService, val, log)
	adminHandler := handler.NewAdminHandler(adminService, val, log)
	dealHandler := handler.NewDealHandler(dealService, dealGraph, val, log)
	i18nHandler := handler.NewI18nHandler(translationService, languageService, dealTransService, val, log)
	contentHandler := handler.NewContentHandler(contentService, val, log)
	reportHandler := handler.NewReportHandler(reportService, val, log)
	settingsHandler := handler.NewSettingsHandler(settingsService, log)
	articleHandler := handler.NewArticleHandler(articleService, settingsService, val, log)

	// Router
	r := mux.NewRouter()

	r.Use(middleware.CORS)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.Recovery)
	r.Use(middleware.CorrelationID)
	r.Use(middleware.NewLoggingMiddleware(log).Log)
	r.Use(middleware.BodyLimit(10 << 20)) // 10MB: report documents arrive base64-inline
	r.Use(middleware.NewRateLimiter(redisClient, cfg.RateLimit.Requests, cfg.RateLimit.Window).Limit)

	r.HandleFunc("/health", healthCheck).Methods("GET")
	r.HandleFunc("/ready", readyCheck(backendDB, publicDB)).Methods("GET")

	api := r.PathPrefix("/api/admin").Subrouter()

	// Auth routes (no token required)
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	api.HandleFunc("/auth/init-admin", authHandler.InitAdmin).Methods("POST")

	// Everything else requires a valid admin token
	authMW := middleware.NewAuthMiddleware(cfg.JWT.Secret)
	protected := api.NewRoute().Subrouter()
	protected.Use(authMW.Authenticate)

	// Users
	protected.HandleFunc("/users", adminHandler.ListUsers).Methods("GET")
	protected.HandleFunc("/users/{id}", adminHandler.GetUser).Methods("GET")
	protected.HandleFunc("/users/{id}", adminHandler.UpdateUser).Methods("PUT")
	protected.HandleFunc("/users/{id}", adminHandler.DeleteUser).Methods("DELETE")

	// Subscriptions
	protected.HandleFunc("/subscriptions", adminHandler.ListSubscriptions).Methods("GET")
	protected.HandleFunc("/subscriptions/{id}", adminHandler.GetSubscription).Methods("GET")
	protected.HandleFunc("/subscriptions/{id}/cancel", adminHandler.CancelSubscription).Methods("PUT")

	// Dashboard
	protected.HandleFunc("/stats", adminHandler.DashboardStats).Methods("GET")

	// Analysis requests
	protected.HandleFunc("/analysis-requests", adminHandler.ListAnalysisRequests).Methods("GET")
	protected.HandleFunc("/analysis-requests/{id}", adminHandler.GetAnalysisRequest).Methods("GET")
	protected.HandleFunc("/analysis-requests/{id}/status", adminHandler.UpdateAnalysisStatus).Methods("PUT")
	protected.HandleFunc("/analysis-requests/{id}/refresh", adminHandler.RefreshAnalysisResult).Methods("POST")

	// Deals
	protected.HandleFunc("/deals", dealHandler.List).Methods("GET")
	protected.HandleFunc("/deals/pending", dealHandler.ListPending).Methods("GET")
	protected.HandleFunc("/deals/pending/today", dealHandler.ListPendingToday).Methods("GET")
	protected.HandleFunc("/deals/pending/today/count", dealHandler.CountPendingToday).Methods("GET")
	protected.HandleFunc("/deals/approved", dealHandler.ListApproved).Methods("GET")
	protected.HandleFunc("/deals/rejected", dealHandler.ListRejected).Methods("GET")
	protected.HandleFunc("/deals/batch-approve", dealHandler.BatchApprove).Methods("POST")
	protected.HandleFunc("/deals/backfill-relationships", dealHandler.BackfillRelationships).Methods("POST")
	protected.HandleFunc("/deals/{id}", dealHandler.Get).Methods("GET")
	protected.HandleFunc("/deals/{id}", dealHandler.Update).Methods("PUT")
	protected.HandleFunc("/deals/{id}", dealHandler.Delete).Methods("DELETE")
	protected.HandleFunc("/deals/{id}/approve", dealHandler.Approve).Methods("POST")
	protected.HandleFunc("/deals/{id}/reject", dealHandler.Reject).Methods("POST")
	protected.HandleFunc("/deals/{id}/activate", dealHandler.Activate).Methods("POST")
	protected.HandleFunc("/deals/{id}/deactivate", dealHandler.Deactivate).Methods("POST")
	protected.HandleFunc("/deals/{id}/relations", dealHandler.Relations).Methods("GET")

	// Deal translations
	protected.HandleFunc("/deal-translations", i18nHandler.UpsertDealTranslation).Methods("POST")
	protected.HandleFunc("/deal-translations/deal/{dealId}", i18nHandler.ListDealTranslations).Methods("GET")
	protected.HandleFunc("/deal-translations/deal/{dealId}", i18nHandler.DeleteDealTranslations).Methods("DELETE")
	protected.HandleFunc("/deal-translations/deal/{dealId}/language/{code}", i18nHandler.ListDealTranslationsByLanguage).Methods("GET")
	protected.HandleFunc("/deal-translations/deal/{dealId}/language/{code}", i18nHandler.DeleteDealTranslationsByLanguage).Methods("DELETE")
	protected.HandleFunc("/deal-translations/deal/{dealId}/language/{code}/map", i18nHandler.DealFieldMap).Methods("GET")
	protected.HandleFunc("/deal-translations/{id}", i18nHandler.DeleteDealTranslation).Methods("DELETE")

	// UI translations
	protected.HandleFunc("/translations", i18nHandler.ListTranslations).Methods("GET")
	protected.HandleFunc("/translations", i18nHandler.UpsertTranslation).Methods("POST")
	protected.HandleFunc("/translations/bulk", i18nHandler.SeedTranslations).Methods("POST")
	protected.HandleFunc("/translations/language/{code}", i18nHandler.ListTranslationsByLanguage).Methods("GET")
	protected.HandleFunc("/translations/language/{code}/namespaces", i18nHandler.ListNamespaces).Methods("GET")
	protected.HandleFunc("/translations/{id}", i18nHandler.UpdateTranslation).Methods("PUT")
	protected.HandleFunc("/translations/{id}", i18nHandler.DeleteTranslation).Methods("DELETE")

	// Languages
	protected.HandleFunc("/languages", i18nHandler.ListLanguages).Methods("GET")
	protected.HandleFunc("/languages", i18nHandler.CreateLanguage).Methods("POST")
	protected.HandleFunc("/languages/{id}", i18nHandler.GetLanguage).Methods("GET")
	protected.HandleFunc("/languages/{id}", i18nHandler.UpdateLanguage).Methods("PUT")
	protected.HandleFunc("/languages/{id}", i18nHandler.DeleteLanguage).Methods("DELETE")
	protected.HandleFunc("/languages/{id}/toggle", i18nHandler.ToggleLanguage).Methods("PATCH")
	protected.HandleFunc("/languages/{id}/set-default", i18nHandler.SetDefaultLanguage).Methods("PATCH")

	// Landing page content
	protected.HandleFunc("/landing-page", contentHandler.List).Methods("GET")
	protected.HandleFunc("/landing-page", contentHandler.Upsert).Methods("POST")
	protected.HandleFunc("/landing-page/section/{section}", contentHandler.ListBySection).Methods("GET")
	protected.HandleFunc("/landing-page/section/{section}/language/{code}", contentHandler.SectionMap).Methods("GET")
	protected.HandleFunc("/landing-page/section/{section}/language/{code}", contentHandler.DeleteSection).Methods("DELETE")
	protected.HandleFunc("/landing-page/language/{code}", contentHandler.ListByLanguage).Methods("GET")
	protected.HandleFunc("/landing-page/{id}", contentHandler.Get).Methods("GET")
	protected.HandleFunc("/landing-page/{id}", contentHandler.Update).Methods("PUT")
	protected.HandleFunc("/landing-page/{id}", contentHandler.Delete).Methods("DELETE")

	// Report sections and documents
	protected.HandleFunc("/reports/sections", reportHandler.ListSections).Methods("GET")
	protected.HandleFunc("/reports/sections", reportHandler.CreateSection).Methods("POST")
	protected.HandleFunc("/reports/sections/{id}", reportHandler.GetSection).Methods("GET")
	protected.HandleFunc("/reports/sections/{id}", reportHandler.UpdateSection).Methods("PUT")
	protected.HandleFunc("/reports/sections/{id}", reportHandler.DeleteSection).Methods("DELETE")
	protected.HandleFunc("/reports/sections/{id}/documents", reportHandler.UploadDocument).Methods("POST")
	protected.HandleFunc("/reports/documents/{id}", reportHandler.DownloadDocument).Methods("GET")
	protected.HandleFunc("/reports/documents/{id}", reportHandler.ReplaceDocument).Methods("PUT")
	protected.HandleFunc("/reports/documents/{id}", reportHandler.DeleteDocument).Methods("DELETE")

	// Articles
	protected.HandleFunc("/articles", articleHandler.List).Methods("GET")
	protected.HandleFunc("/articles", articleHandler.Create).Methods("POST")
	protected.HandleFunc("/articles/enable", articleHandler.GetEnabled).Methods("GET")
	protected.HandleFunc("/articles/enable", articleHandler.UpdateEnabled).Methods("PUT")
	protected.HandleFunc("/articles/{id}", articleHandler.Get).Methods("GET")
	protected.HandleFunc("/articles/{id}", articleHandler.Update).Methods("PUT")
	protected.HandleFunc("/articles/{id}", articleHandler.Delete).Methods("DELETE")
	protected.HandleFunc("/articles/{id}/enable", articleHandler.Enable).Methods("PUT")

	// Feature flags
	protected.HandleFunc("/weekly-deals/enable", settingsHandler.GetWeeklyDeals).Methods("GET")
	protected.HandleFunc("/weekly-deals/enable", settingsHandler.UpdateWeeklyDeals).Methods("PUT")

	// Public article feed, consumed by the app backend without a token
	public := r.PathPrefix("/api").Subrouter()
	public.HandleFunc("/articles", articleHandler.ListPublic).Methods("GET")
	public.HandleFunc("/articles/slug/{slug}", articleHandler.GetPublicBySlug).Methods("GET")
	public.HandleFunc("/articles/{id}", articleHandler.GetPublic).Methods("GET")

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("Admin API started", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down Admin API...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Admin API forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
	}

	log.Info("Admin API stopped gracefully", nil)
}

func connectDB(log logger.Logger, name string, cfg config.DatabaseConfig) *sqlx.DB {
	db, err := sqlx.Connect("postgres", cfg.URL)
	if err != nil {
		log.Fatal("Failed to connect to database", map[string]interface{}{
			"store": name,
			"error": err.Error(),
		})
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	log.Info("Database connected", map[string]interface{}{"store": name})
	return db
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	_ = r
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy","service":"admin-api","timestamp":"` + time.Now().Format(time.RFC3339) + `"}`))
}

func readyCheck(backendDB, publicDB *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = r
		w.Header().Set("Content-Type", "application/json")
		if err := backendDB.Ping(); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"not ready","reason":"backend store unavailable"}`))
			return
		}
		if err := publicDB.Ping(); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"not ready","reason":"public store unavailable"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ready","service":"admin-api"}`))
	}
}

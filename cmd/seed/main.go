// Idempotent seeding tool for a fresh public store: default admin account,
// default language, the standard report sections, the weekly-deals flag, a
// handful of sample deals, and a relationship backfill over them.
//
// Usage (env overrides):
//
//	SEED_ADMIN_EMAIL=admin@rensights.com SEED_ADMIN_PASSWORD=ChangeMe123!
//
// Reads PUBLIC_DATABASE_URL and other core config via rensadmin/pkg/config.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"rensadmin/internal/deal"
	"rensadmin/internal/domain"
	"rensadmin/internal/repository/postgres"
	"rensadmin/pkg/config"
	apperrors "rensadmin/pkg/errors"
	"rensadmin/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	log := logger.New("seed")

	cfg := config.Load()
	if err := cfg.ValidateCore(); err != nil {
		log.Fatal("Invalid configuration", map[string]interface{}{"error": err.Error()})
	}

	db, err := sqlx.Connect("postgres", cfg.PublicDatabase.URL)
	if err != nil {
		log.Fatal("Failed to connect to public database", map[string]interface{}{"error": err.Error()})
	}
	defer db.Close()

	adminRepo := postgres.NewAdminUserRepository(db)
	languageRepo := postgres.NewLanguageRepository(db)
	sectionRepo := postgres.NewReportSectionRepository(db)
	settingRepo := postgres.NewAppSettingRepository(db)
	dealRepo := postgres.NewDealRepository(db)
	relationRepo := postgres.NewDealRelationRepository(db)

	ctx := context.Background()

	email := getenv("SEED_ADMIN_EMAIL", "admin@rensights.com")
	password := getenv("SEED_ADMIN_PASSWORD", "ChangeMe123!")
	ensureAdmin(ctx, adminRepo, log, email, password)
	ensureLanguage(ctx, languageRepo, log)
	ensureSections(ctx, sectionRepo, log)
	ensureWeeklyDealsFlag(ctx, settingRepo, log)
	ensureSampleDeals(ctx, dealRepo, log)

	graph := deal.NewGraph(dealRepo, relationRepo, log)
	result, err := graph.Backfill(ctx)
	if err != nil {
		log.Fatal("Relationship backfill failed", map[string]interface{}{"error": err.Error()})
	}
	log.Info("Relationship backfill done", map[string]interface{}{
		"hubs_processed": result.HubsProcessed,
		"edges_created":  result.EdgesCreated,
	})

	fmt.Println("OK: public store seeded")
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func ensureAdmin(ctx context.Context, repo *postgres.AdminUserRepository, log logger.Logger, email, password string) {
	exists, err := repo.ExistsByEmail(ctx, email)
	if err != nil {
		log.Fatal("ExistsByEmail failed", map[string]interface{}{"error": err.Error()})
	}
	if exists {
		log.Info("Admin already present", map[string]interface{}{"email": email})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password", map[string]interface{}{"error": err.Error()})
	}
	fullName := "Default Admin"
	admin := &domain.AdminUser{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     &fullName,
		IsActive:     true,
	}
	if err := repo.Create(ctx, admin); err != nil {
		log.Fatal("Failed to create admin", map[string]interface{}{"error": err.Error()})
	}
	log.Info("Admin created", map[string]interface{}{"email": email})
}

func ensureLanguage(ctx context.Context, repo *postgres.LanguageRepository, log logger.Logger) {
	if _, err := repo.FindByCode(ctx, "en"); err == nil {
		return
	} else if !errors.Is(err, apperrors.ErrLanguageNotFound) {
		log.Fatal("FindByCode failed", map[string]interface{}{"error": err.Error()})
	}

	native := "English"
	language := &domain.Language{
		ID:         uuid.New(),
		Code:       "en",
		Name:       "English",
		NativeName: &native,
		IsEnabled:  true,
		IsDefault:  true,
	}
	if err := repo.Create(ctx, language); err != nil && !errors.Is(err, apperrors.ErrLanguageExists) {
		log.Fatal("Failed to create default language", map[string]interface{}{"error": err.Error()})
	}
	log.Info("Default language created", map[string]interface{}{"code": "en"})
}

// ensureSections creates the fixed report layout. Matching is by title so a
// re-run after a manual rename does not duplicate sections.
func ensureSections(ctx context.Context, repo *postgres.ReportSectionRepository, log logger.Logger) {
	defaults := []domain.ReportSection{
		{Title: "Executive Summary", AccessTier: domain.AccessFree, DisplayOrder: 1, IsActive: true},
		{Title: "Market Overview", AccessTier: domain.AccessFree, DisplayOrder: 2, IsActive: true},
		{Title: "Price Trends", AccessTier: domain.AccessPremium, DisplayOrder: 3, IsActive: true},
		{Title: "Rental Yields", AccessTier: domain.AccessPremium, DisplayOrder: 4, IsActive: true},
		{Title: "Gallery", AccessTier: domain.AccessFree, DisplayOrder: 5, IsActive: true},
		{Title: "Quarterly Outlook", AccessTier: domain.AccessEnterprise, DisplayOrder: 6, IsActive: true},
	}

	existing, err := repo.FindAll(ctx)
	if err != nil {
		log.Fatal("Failed to list report sections", map[string]interface{}{"error": err.Error()})
	}
	present := make(map[string]bool, len(existing))
	for _, section := range existing {
		present[section.Title] = true
	}

	created := 0
	for _, section := range defaults {
		if present[section.Title] {
			continue
		}
		section.ID = uuid.New()
		if err := repo.Create(ctx, &section); err != nil {
			log.Fatal("Failed to create report section", map[string]interface{}{
				"title": section.Title,
				"error": err.Error(),
			})
		}
		created++
	}
	log.Info("Report sections ensured", map[string]interface{}{"created": created})
}

func ensureWeeklyDealsFlag(ctx context.Context, repo *postgres.AppSettingRepository, log logger.Logger) {
	if _, err := repo.FindByKey(ctx, domain.SettingWeeklyDeals); err == nil {
		return
	} else if !errors.Is(err, apperrors.ErrSettingNotFound) {
		log.Fatal("FindByKey failed", map[string]interface{}{"error": err.Error()})
	}

	if _, err := repo.Upsert(ctx, domain.SettingWeeklyDeals, "true"); err != nil {
		log.Fatal("Failed to seed weekly-deals flag", map[string]interface{}{"error": err.Error()})
	}
	log.Info("Weekly-deals flag seeded", map[string]interface{}{"value": "true"})
}

// ensureSampleDeals inserts demo listings under deterministic ids, so re-runs
// are no-ops at the database level.
func ensureSampleDeals(ctx context.Context, repo *postgres.DealRepository, log logger.Logger) {
	type sample struct {
		title    string
		city     string
		area     string
		price    int64
		status   domain.DealStatus
		daysBack int
	}
	samples := []sample{
		{"Marina Heights 2BR", "Dubai", "Dubai Marina", 1_850_000, domain.DealApproved, 7},
		{"Downtown Loft 1BR", "Dubai", "Downtown", 1_200_000, domain.DealApproved, 3},
		{"JVC Garden Townhouse", "Dubai", "Jumeirah Village Circle", 2_400_000, domain.DealApproved, 1},
		{"Creek Harbour 3BR", "Dubai", "Dubai Creek Harbour", 3_100_000, domain.DealPending, 0},
		{"Palm Shoreline Apartment", "Dubai", "Palm Jumeirah", 4_500_000, domain.DealPending, 0},
	}

	approver := "seed"
	for _, s := range samples {
		area := s.area
		price := decimal.NewFromInt(s.price)
		d := &domain.Deal{
			ID:          uuid.NewSHA1(uuid.NameSpaceOID, []byte("seed-deal:"+s.title)),
			Title:       s.title,
			City:        s.city,
			Area:        &area,
			AskingPrice: &price,
			Status:      s.status,
			AccessTier:  domain.AccessFree,
			IsActive:    true,
			BatchDate:   time.Now().AddDate(0, 0, -s.daysBack),
		}
		if s.status == domain.DealApproved {
			d.ApprovedBy = &approver
		}
		if err := repo.Create(ctx, d); err != nil {
			log.Fatal("Failed to create sample deal", map[string]interface{}{
				"title": s.title,
				"error": err.Error(),
			})
		}
	}
	log.Info("Sample deals ensured", map[string]interface{}{"count": len(samples)})
}

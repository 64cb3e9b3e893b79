// Package db opens the GORM connection used by the service.
package db

import (
	"fmt"
	"log"
	"os"
	"time"

	gpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	authentity "earningsnerd_backend/internal/feature/auth/domain/entity"
	billingentity "earningsnerd_backend/internal/feature/billing/domain/entity"
	companyentity "earningsnerd_backend/internal/feature/companies/domain/entity"
	filingentity "earningsnerd_backend/internal/feature/filings/domain/entity"
	financialentity "earningsnerd_backend/internal/feature/financials/domain/entity"
	intakeentity "earningsnerd_backend/internal/feature/intake/domain/entity"
	summaryentity "earningsnerd_backend/internal/feature/summaries/domain/entity"
	watchlistentity "earningsnerd_backend/internal/feature/watchlist/domain/entity"
)

// OpenDB connects to Postgres using the DB_* environment variables and
// retries for up to 60 seconds before giving up. When RUN_MIGRATIONS=true
// it also runs AutoMigrate for every entity the service persists.
func OpenDB() *gorm.DB {
	user := os.Getenv("DB_USER")
	pass := os.Getenv("DB_PASSWORD")
	name := os.Getenv("DB_NAME")
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	if port == "" {
		port = "5432"
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, pass, name, sslMode())

	var (
		db  *gorm.DB
		err error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		db, err = gorm.Open(gpostgres.Open(dsn), &gorm.Config{})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		if err := db.AutoMigrate(
			&authentity.User{},
			&companyentity.Company{},
			&filingentity.Filing{},
			&financialentity.FinancialSnapshot{},
			&summaryentity.Summary{},
			&watchlistentity.WatchlistItem{},
			&billingentity.Subscription{},
			&intakeentity.WaitlistSignup{},
			&intakeentity.ContactSubmission{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}

// sslMode defaults to require; local development overrides with DB_SSLMODE=disable.
func sslMode() string {
	if v := os.Getenv("DB_SSLMODE"); v != "" {
		return v
	}
	return "require"
}

package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	companyadapters "earningsnerd_backend/internal/feature/companies/adapters"
	companyusecase "earningsnerd_backend/internal/feature/companies/usecase"
	filingadapters "earningsnerd_backend/internal/feature/filings/adapters"
	filingusecase "earningsnerd_backend/internal/feature/filings/usecase"
	platformdb "earningsnerd_backend/internal/platform/db"
	"earningsnerd_backend/internal/platform/externalapi/edgar"
	platformhttp "earningsnerd_backend/internal/platform/http"
)

func main() {
	_ = godotenv.Load()

	db := platformdb.OpenDB()

	edgarCfg := edgar.LoadConfig()
	edgarClient := edgar.NewClient(edgarCfg, platformhttp.NewHTTPClient(edgarCfg.Timeout))

	companyRepo := companyadapters.NewCompanyPostgres(db)
	filingRepo := filingadapters.NewFilingPostgres(db)

	companyUC := companyusecase.NewCompanyUsecase(companyRepo, edgarClient)
	ingestUC := filingusecase.NewIngestUsecase(edgarClient, filingRepo, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	synced, err := companyUC.SyncFromDirectory(ctx)
	if err != nil {
		log.Fatal("failed to sync ticker directory: ", err)
	}
	log.Printf("ticker directory synced: %d companies", synced)

	total, err := ingestUC.IngestAll(ctx, companyRepo)
	if err != nil {
		log.Fatal("ingest aborted: ", err)
	}
	log.Printf("ingest ok: %d filings upserted", total)
}

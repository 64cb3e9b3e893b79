package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"earningsnerd_backend/internal/app/router"
	"earningsnerd_backend/internal/app/scheduler"
	authadapters "earningsnerd_backend/internal/feature/auth/adapters"
	authhandler "earningsnerd_backend/internal/feature/auth/transport/handler"
	authusecase "earningsnerd_backend/internal/feature/auth/usecase"
	billingadapters "earningsnerd_backend/internal/feature/billing/adapters"
	stripegw "earningsnerd_backend/internal/feature/billing/adapters/stripe"
	billinghandler "earningsnerd_backend/internal/feature/billing/transport/handler"
	billingusecase "earningsnerd_backend/internal/feature/billing/usecase"
	companyadapters "earningsnerd_backend/internal/feature/companies/adapters"
	companyhandler "earningsnerd_backend/internal/feature/companies/transport/handler"
	companyusecase "earningsnerd_backend/internal/feature/companies/usecase"
	filingadapters "earningsnerd_backend/internal/feature/filings/adapters"
	filinghandler "earningsnerd_backend/internal/feature/filings/transport/handler"
	filingusecase "earningsnerd_backend/internal/feature/filings/usecase"
	financialadapters "earningsnerd_backend/internal/feature/financials/adapters"
	financialshandler "earningsnerd_backend/internal/feature/financials/transport/handler"
	financialusecase "earningsnerd_backend/internal/feature/financials/usecase"
	intakeadapters "earningsnerd_backend/internal/feature/intake/adapters"
	resendmailer "earningsnerd_backend/internal/feature/intake/adapters/resend"
	intakehandler "earningsnerd_backend/internal/feature/intake/transport/handler"
	intakeusecase "earningsnerd_backend/internal/feature/intake/usecase"
	summaryadapters "earningsnerd_backend/internal/feature/summaries/adapters"
	"earningsnerd_backend/internal/feature/summaries/adapters/gemini"
	summaryhandler "earningsnerd_backend/internal/feature/summaries/transport/handler"
	summaryusecase "earningsnerd_backend/internal/feature/summaries/usecase"
	trendingadapters "earningsnerd_backend/internal/feature/trending/adapters"
	trendinghandler "earningsnerd_backend/internal/feature/trending/transport/handler"
	trendingusecase "earningsnerd_backend/internal/feature/trending/usecase"
	watchlistadapters "earningsnerd_backend/internal/feature/watchlist/adapters"
	watchlisthandler "earningsnerd_backend/internal/feature/watchlist/transport/handler"
	watchlistusecase "earningsnerd_backend/internal/feature/watchlist/usecase"
	"earningsnerd_backend/internal/platform/cache"
	platformdb "earningsnerd_backend/internal/platform/db"
	"earningsnerd_backend/internal/platform/externalapi/edgar"
	"earningsnerd_backend/internal/platform/externalapi/quotes"
	platformhttp "earningsnerd_backend/internal/platform/http"
	jwtmw "earningsnerd_backend/internal/platform/jwt"
	platformredis "earningsnerd_backend/internal/platform/redis"
	"earningsnerd_backend/internal/platform/session"
	"earningsnerd_backend/internal/platform/webhook"
)

func main() {
	// .env is optional; real deployments set environment variables directly.
	_ = godotenv.Load()

	// db
	db := platformdb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache; refresh sessions and quotas are disabled.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// External API clients
	edgarCfg := edgar.LoadConfig()
	edgarClient := edgar.NewClient(edgarCfg, platformhttp.NewHTTPClient(edgarCfg.Timeout))

	quotesCfg := quotes.LoadConfig()
	quotesClient := quotes.NewClient(quotesCfg, platformhttp.NewHTTPClient(quotesCfg.Timeout))

	summarizer, err := gemini.NewGeminiSummarizer(context.Background())
	if err != nil {
		log.Fatal("failed to initialize Gemini client: ", err)
	}

	// Repositories
	userRepo := authadapters.NewUserPostgres(db)
	sessionRepo := session.NewSessionRedis(rdb, "sessions")
	companyRepo := companyadapters.NewCompanyPostgres(db)
	filingRepo := filingadapters.NewFilingPostgres(db)
	snapshotRepo := financialadapters.NewSnapshotPostgres(db)
	summaryRepo := summaryadapters.NewSummaryPostgres(db)
	watchlistRepo := watchlistadapters.NewWatchlistPostgres(db)
	subscriptionRepo := billingadapters.NewSubscriptionPostgres(db)
	intakeRepo := intakeadapters.NewIntakePostgres(db)

	// Redis-backed decorators and stores
	cachedFilingRepo := cache.NewCachingFilingRepository(rdb, cache.TimeUntilNext6AMEastern(), filingRepo, "filings")
	summaryCache := summaryadapters.NewSummaryCacheRedis(rdb, 0, "summaries")
	quotaStore := summaryadapters.NewQuotaRedis(rdb, "summaries:quota")
	trendingCache := trendingadapters.NewTrendingCacheRedis(rdb)

	// Usecases
	jwtGen := jwtmw.NewGenerator(os.Getenv(jwtmw.EnvKeyJWTSecret), 15*time.Minute)
	authUC := authusecase.NewAuthUsecase(userRepo, sessionRepo, jwtGen)
	companyUC := companyusecase.NewCompanyUsecase(companyRepo, edgarClient)
	filingsUC := filingusecase.NewFilingsUsecase(cachedFilingRepo)
	extractUC := financialusecase.NewExtractUsecase(edgarClient, snapshotRepo)
	billingUC := billingusecase.NewBillingUsecase(subscriptionRepo, stripegw.NewGateway(stripegw.LoadConfig()))
	summaryUC := summaryusecase.NewSummaryUsecase(summarizer, summaryRepo, summaryCache, quotaStore, billingUC, extractUC, 0)
	watchlistUC := watchlistusecase.NewWatchlistUsecase(watchlistRepo, companyUC)
	trendingUC := trendingusecase.NewTrendingUsecase(quotesClient, trendingCache)
	intakeUC := intakeusecase.NewIntakeUsecase(intakeRepo, resendmailer.NewMailer())

	// Resend webhook signature verifier
	resendVerifier, err := webhook.NewVerifier(os.Getenv(resendmailer.EnvKeyWebhookSecret))
	if err != nil {
		log.Println("[WARN] RESEND_WEBHOOK_SECRET is missing or malformed. Resend webhooks will be rejected.")
		resendVerifier, _ = webhook.NewVerifier("whsec_")
	}

	// Handlers
	handlers := router.Handlers{
		Auth:          authhandler.NewAuthHandler(authUC),
		Companies:     companyhandler.NewCompanyHandler(companyUC),
		Filings:       filinghandler.NewFilingHandler(filingsUC, companyUC),
		Financials:    financialshandler.NewFinancialsHandler(extractUC, filingsUC, companyUC),
		Summaries:     summaryhandler.NewSummaryHandler(summaryUC, filingsUC, companyUC),
		Watchlist:     watchlisthandler.NewWatchlistHandler(watchlistUC),
		Billing:       billinghandler.NewBillingHandler(billingUC),
		StripeWebhook: billinghandler.NewStripeWebhookHandler(billingUC),
		Trending:      trendinghandler.NewTrendingHandler(trendingUC),
		Intake:        intakehandler.NewIntakeHandler(intakeUC),
		ResendWebhook: intakehandler.NewResendWebhookHandler(resendVerifier),
	}

	var origins []string
	if raw := os.Getenv("CORS_ALLOWED_ORIGINS"); raw != "" {
		origins = strings.Split(raw, ",")
	}
	engine := router.NewRouter(handlers, router.DefaultCORSConfig(origins))

	// Background trending refresh
	sched, err := scheduler.New(trendingUC)
	if err != nil {
		log.Fatal("failed to initialize scheduler: ", err)
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv(jwtmw.EnvKeyJWTSecret) == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	if err := engine.Run(addr); err != nil {
		log.Fatal(err)
	}
}

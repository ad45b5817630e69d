package app

import (
	"github.com/mukkoticf/twilight-investors-dashboard/internal/config"
	"github.com/mukkoticf/twilight-investors-dashboard/internal/database"
	"github.com/mukkoticf/twilight-investors-dashboard/internal/declarations"
	"github.com/mukkoticf/twilight-investors-dashboard/internal/exits"
	"github.com/mukkoticf/twilight-investors-dashboard/internal/health"
	"github.com/mukkoticf/twilight-investors-dashboard/internal/investors"
	"github.com/mukkoticf/twilight-investors-dashboard/internal/ledger"
	"github.com/mukkoticf/twilight-investors-dashboard/internal/locks"
	"github.com/mukkoticf/twilight-investors-dashboard/internal/middleware"
	"github.com/mukkoticf/twilight-investors-dashboard/internal/payments"
	"github.com/mukkoticf/twilight-investors-dashboard/internal/pools"
	"github.com/mukkoticf/twilight-investors-dashboard/internal/reports"
	"github.com/mukkoticf/twilight-investors-dashboard/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CreateApp builds the Fiber app with all global middleware and route
// registration. The DB and Redis clients are returned for startup pings.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler,
	})

	// Redis: request stats + distributed locks
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		rdb = redis.NewClient(opt)
		app.Use(middleware.RequestStats(rdb))
	}

	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())
	app.Use(middleware.ActorExtractor(cfg.AdminHeader))

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		var errDB error
		db, errDB = database.Open(cfg.DatabaseURL)
		if errDB != nil {
			return nil, nil, nil, errDB
		}
	}

	// Health (no DB is reported, not fatal: lets the app boot for smoke tests)
	healthHandlers := &health.Handlers{Rdb: rdb}
	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			healthHandlers.DB = sqlDB
		}
	}
	app.Get("/health/json", healthHandlers.JSON)

	if db == nil || rdb == nil {
		return app, db, rdb, nil
	}

	lockManager := locks.NewManager(rdb)
	investmentStore := &storage.GormInvestmentStore{DB: db}
	declarationStore := &storage.GormDeclarationStore{DB: db}
	paymentStore := &storage.GormPaymentStore{DB: db}
	poolStore := &storage.GormPoolStore{DB: db}
	investorStore := &storage.GormInvestorStore{DB: db}

	// Investors module
	investorHandlers := &investors.Handlers{Service: &investors.Service{Investors: investorStore}}
	investorGroup := app.Group("/api/v1/investors")
	investorGroup.Post("/create-investor", middleware.RequireAdmin(), investorHandlers.CreateInvestor)
	investorGroup.Get("/get-all-investors", investorHandlers.GetAllInvestors)
	investorGroup.Get("/get-investor/:investor_id", investorHandlers.GetInvestor)

	// Pools module
	poolHandlers := &pools.Handlers{Service: &pools.Service{Pools: poolStore}}
	poolGroup := app.Group("/api/v1/pools")
	poolGroup.Post("/create-pool", middleware.RequireAdmin(), poolHandlers.CreatePool)
	poolGroup.Get("/get-all-pools", poolHandlers.GetAllPools)
	poolGroup.Get("/get-pool/:pool_id", poolHandlers.GetPool)

	// Investment ledger module
	ledgerService := &ledger.Service{Investments: investmentStore, Pools: poolStore}
	ledgerHandlers := &ledger.Handlers{Service: ledgerService}
	investmentGroup := app.Group("/api/v1/investments")
	investmentGroup.Post("/create-investment", middleware.RequireAdmin(), ledgerHandlers.CreateInvestment)
	investmentGroup.Get("/get-pool-investments/:pool_id", ledgerHandlers.GetPoolInvestments)
	investmentGroup.Get("/get-investment/:investment_id", ledgerHandlers.GetInvestment)
	investmentGroup.Post("/record-exit", middleware.RequireAdmin(), ledgerHandlers.RecordExit)

	// Exit sessions (batch exits, all-or-nothing)
	exitHandlers := &exits.Handlers{Service: &exits.Service{Investments: investmentStore, Locks: lockManager}}
	investmentGroup.Post("/commit-exits", middleware.RequireAdmin(), exitHandlers.CommitExits)

	// Declarations module
	declarationService := &declarations.Service{Declarations: declarationStore, Pools: poolStore}
	declarationHandlers := &declarations.Handlers{Service: declarationService}
	declarationGroup := app.Group("/api/v1/declarations")
	declarationGroup.Post("/create-declaration", middleware.RequireAdmin(), declarationHandlers.CreateDeclaration)
	declarationGroup.Post("/finalize-declaration", middleware.RequireAdmin(), declarationHandlers.FinalizeDeclaration)
	declarationGroup.Get("/get-pool-declarations/:pool_id", declarationHandlers.GetPoolDeclarations)

	// Payments module
	paymentService := &payments.Service{
		Declarations:   declarationStore,
		Investments:    investmentStore,
		Payments:       paymentStore,
		Locks:          lockManager,
		Allocation:     payments.ProRataByPrincipal{},
		TdsDefaultRate: cfg.TdsDefaultRate,
	}
	paymentHandlers := &payments.Handlers{Service: paymentService}
	paymentGroup := app.Group("/api/v1/payments")
	paymentGroup.Post("/generate-payments", middleware.RequireAdmin(), paymentHandlers.GeneratePayments)
	paymentGroup.Get("/get-declaration-payments/:declaration_id", paymentHandlers.GetDeclarationPayments)
	paymentGroup.Patch("/correct-payment", paymentHandlers.CorrectPayment)
	paymentGroup.Post("/mark-paid", paymentHandlers.MarkPaid)
	paymentGroup.Post("/mark-failed", paymentHandlers.MarkFailed)

	// Reports module
	reportHandlers := &reports.Handlers{Service: &reports.Service{DB: db}}
	reportGroup := app.Group("/api/v1/reports")
	reportGroup.Get("/investor-summary/:investor_id", reportHandlers.GetInvestorSummary)
	reportGroup.Get("/pool-summary/:pool_id", reportHandlers.GetPoolSummary)
	reportGroup.Get("/quarterly-history/:investor_id", reportHandlers.GetQuarterlyHistory)

	return app, db, rdb, nil
}

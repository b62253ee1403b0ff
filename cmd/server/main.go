package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	bankingapp "github.com/fincontrol/backend/internal/application/banking"
	boletoapp "github.com/fincontrol/backend/internal/application/boleto"
	expenseapp "github.com/fincontrol/backend/internal/application/expense"
	reportapp "github.com/fincontrol/backend/internal/application/report"
	saleapp "github.com/fincontrol/backend/internal/application/sale"
	"github.com/fincontrol/backend/internal/infrastructure/config"
	"github.com/fincontrol/backend/internal/infrastructure/logger"
	"github.com/fincontrol/backend/internal/infrastructure/nfeimport"
	"github.com/fincontrol/backend/internal/infrastructure/persistence"
	"github.com/fincontrol/backend/internal/interfaces/http/handler"
	"github.com/fincontrol/backend/internal/interfaces/http/middleware"
	"github.com/fincontrol/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting fincontrol backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to migrate database", zap.Error(err))
	}
	log.Info("Database ready", zap.String("path", cfg.Database.Path))

	// Repositories
	accountRepo := persistence.NewGormBankAccountRepository(db.DB)
	movementRepo := persistence.NewGormMovementRepository(db.DB)
	boletoRepo := persistence.NewGormBoletoRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	supplementRepo := persistence.NewGormSupplementRepository(db.DB)

	// Application services. The ledger is the only balance mutation path and
	// the report service doubles as the cash provider for cash settlements.
	ledgerService := bankingapp.NewLedgerService(accountRepo, movementRepo, log)
	accountService := bankingapp.NewAccountService(accountRepo, movementRepo, log)
	reportService := reportapp.NewService(saleRepo, boletoRepo, supplementRepo, log)
	boletoService := boletoapp.NewService(boletoRepo, ledgerService, reportService, nfeimport.NewParser(), log)
	saleService := saleapp.NewService(saleRepo, ledgerService, log)
	expenseService := expenseapp.NewService(expenseRepo, cfg.Expense.SeedOnFirstRun, log)
	resetService := persistence.NewResetService(db.DB, log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORS(cfg.HTTP.CORSAllowOrigins))

	r := router.NewRouter(engine, "v1")
	r.Register(
		handler.NewAccountHandler(accountService),
		handler.NewBoletoHandler(boletoService),
		handler.NewSaleHandler(saleService),
		handler.NewExpenseHandler(expenseService),
		handler.NewReportHandler(reportService),
		handler.NewSystemHandler(db, resetService),
	)
	r.Setup()

	engine.GET("/health", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited gracefully")
}

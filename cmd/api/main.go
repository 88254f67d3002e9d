package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/tdnguyen/debt-ledger/internal/config"
	"github.com/tdnguyen/debt-ledger/internal/handlers"
	"github.com/tdnguyen/debt-ledger/internal/repository"
	"github.com/tdnguyen/debt-ledger/internal/services"
	xhttp "github.com/tdnguyen/debt-ledger/pkg/http"
	"github.com/tdnguyen/debt-ledger/pkg/logger"
	"github.com/tdnguyen/debt-ledger/pkg/pg"
	"github.com/tdnguyen/debt-ledger/pkg/prom"
	"github.com/tdnguyen/debt-ledger/pkg/redis"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {

	err := config.Load(argContainsEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}

	readConf := pg.Config{
		User:     config.Get().PostgresReadUser,
		Host:     config.Get().PostgresReadHost,
		Port:     config.Get().PostgresReadPort,
		Password: config.Get().PostgresReadPassword,
		Database: config.Get().PostgresReadDatabase,
	}
	writeConf := pg.Config{
		User:     config.Get().PostgresWriteUser,
		Host:     config.Get().PostgresWriteHost,
		Port:     config.Get().PostgresWritePort,
		Password: config.Get().PostgresWritePassword,
		Database: config.Get().PostgresWriteDatabase,
	}

	pgDebug := false
	if config.Get().AppEnv == "dev" {
		pgDebug = true
	}
	db, err := pg.CreateReadWrite(readConf, writeConf, pgDebug)
	if err != nil {
		logger.Error("failed connecting to pg", "error", err)
		return
	}

	redisAdap, err := redis.NewRedisAdapter("default", config.Get().RedisUniversalKeyPrefix, &redis.Options{
		Addrs:      []string{config.Get().RedisAddr},
		ClientName: "default",
		DB:         config.Get().RedisDatabase,
		Username:   config.Get().RedisUsername,
		Password:   config.Get().RedisPassword,
	})
	if err != nil {
		logger.Error("failed connecting to redis", "error", err)
		return
	}

	if config.Get().PromNamespace != "" {
		host, _ := os.Hostname()
		if err := prom.Create(host, config.Get().AppEnv, config.Get().PromNamespace); err != nil {
			logger.Error("failed registering metrics", "error", err)
		}
		if config.Get().AppDebugMetricsAddr != "" {
			go prom.ListenAndServer(config.Get().AppDebugMetricsAddr, config.Get().AppDebugMetricsURI)
		}
	}

	// repositories
	customerRepo := repository.NewCustomerRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	balanceRepo := repository.NewBalanceRepository(db)

	// services
	customerService := services.NewCustomerService(customerRepo, balanceRepo)
	ledgerService := services.NewLedgerService(transactionRepo, customerRepo)
	reportService := services.NewReportService(balanceRepo)
	sessionService := services.NewSessionService(redisAdap, config.Get().AdminPassword, config.Get().RecoveryCode)
	healthService := services.NewHealthService(balanceRepo)

	// transport
	s := xhttp.NewServer(xhttp.DefaultServerOption)
	s.Server.ReadBufferSize = 1024 * 16
	s.Server.WriteBufferSize = 1024 * 16
	s.Use(xhttp.CompressMiddleware(6))
	s.Use(xhttp.TimeoutMiddleware(time.Second * 5))
	s.Use(xhttp.RequestLoggerMiddleware)
	s.Use(handlers.MetricsMiddleware)
	s.Use(handlers.AuthMiddleware(sessionService))
	s.Use(xhttp.RecoverMiddleware)
	s.Router = xhttp.CreateDefaultRouter()

	// v1 handlers
	customerHandler := handlers.NewCustomerHandler(customerService)
	transactionHandler := handlers.NewTransactionHandler(ledgerService)
	reportHandler := handlers.NewReportHandler(reportService)
	authHandler := handlers.NewAuthHandler(sessionService)
	healthHandler := handlers.NewHealthHandler(healthService)

	g := s.Router.Group("/api/v1")
	handlers.RegisterCustomerRoutes(g, customerHandler)
	handlers.RegisterTransactionRoutes(g, transactionHandler)
	handlers.RegisterReportRoutes(g, reportHandler)
	handlers.RegisterAuthRoutes(g, authHandler)
	handlers.RegisterHealthRoutes(s.Router, healthHandler)

	logger.Info("starting", "version", version, "commit", commit, "build_date", date)

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		var err = s.ListenAndServe(config.Get().HttpListenAddr)
		if err != nil {
			logger.Error("error in running http-server", "error", err)
		}
	}()

	select {
	case <-c:
		s.Shutdown()
	}
}

func argContainsEnvPath() string {
	for _, v := range os.Args {
		if strings.Contains(v, "--env=") {
			s := strings.Split(v, "=")
			if _, err := os.Open(s[1]); err != nil {
				logger.Error("failed to open the passed env file, got error" + err.Error())
				return ""
			}
			return s[1]
		}
	}
	return ""
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"database/sql"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/vroomhq/vroom-service/internal/config"
	"github.com/vroomhq/vroom-service/internal/handler"
	"github.com/vroomhq/vroom-service/internal/integrations/rates"
	"github.com/vroomhq/vroom-service/internal/middleware"
	"github.com/vroomhq/vroom-service/internal/repository"
	"github.com/vroomhq/vroom-service/internal/scheduler"
	"github.com/vroomhq/vroom-service/internal/service"
	"github.com/vroomhq/vroom-service/internal/utils/email"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	cache := repository.NewRedisCache(cfg.RedisAddr)
	svc := service.NewService(repo, cache, logger, cfg)
	h := handler.NewHandler(svc)
	ratesClient := rates.NewClient(cfg, logger)
	sender := email.NewSender(cfg, logger)

	// Start payment reminder scheduler
	sched := scheduler.NewScheduler(repo, sender, logger)
	if err := sched.Start(); err != nil {
		logger.Fatalf("Failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Setup router
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	r.HandleFunc("/oauth/callback", h.OAuthCallback).Methods("POST")
	// Market rate endpoint
	r.HandleFunc("/market-rate", func(w http.ResponseWriter, r *http.Request) {
		rate, err := ratesClient.GetMarketRate()
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to get market rate: %v", err), http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]float64{"market_rate": rate})
	}).Methods("GET")
	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/vehicles", h.CreateVehicle).Methods("POST")
	authRouter.HandleFunc("/vehicles", h.ListVehicles).Methods("GET")
	authRouter.HandleFunc("/vehicles/{id}/expenses", h.AddExpense).Methods("POST")
	authRouter.HandleFunc("/vehicles/{id}/expenses", h.ListExpenses).Methods("GET")
	authRouter.HandleFunc("/vehicles/{id}/fuel", h.AddFuelLog).Methods("POST")
	authRouter.HandleFunc("/vehicles/{id}/fuel-efficiency", h.FuelEfficiency).Methods("GET")
	authRouter.HandleFunc("/vehicles/{id}/cost-per-mile", h.CostPerMile).Methods("GET")
	authRouter.HandleFunc("/vehicles/{id}/cost-summary", h.CostSummary).Methods("GET")
	authRouter.HandleFunc("/loans", h.CreateLoan).Methods("POST")
	authRouter.HandleFunc("/loans", h.ListLoans).Methods("GET")
	authRouter.HandleFunc("/loans/{id}", h.GetLoan).Methods("GET")
	authRouter.HandleFunc("/loans/{id}/schedule", h.GetAmortizationSchedule).Methods("GET")
	authRouter.HandleFunc("/loans/{id}/payments", h.RecordPayment).Methods("POST")
	authRouter.HandleFunc("/loans/{id}/payments", h.ListPayments).Methods("GET")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.Errorf("Server failed: %v", err)
		return
	case <-quit:
		logger.Info("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Error during server shutdown: %v", err)
	}

	logger.Info("Server exited")
}

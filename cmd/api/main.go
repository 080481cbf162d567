package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"

	"github.com/ajwalsh/piggy/internal/cache"
	"github.com/ajwalsh/piggy/internal/config"
	"github.com/ajwalsh/piggy/internal/database"
	piggyHttp "github.com/ajwalsh/piggy/internal/http"
	dashboardHandler "github.com/ajwalsh/piggy/internal/http/dashboard"
	goalsHandler "github.com/ajwalsh/piggy/internal/http/goals"
	onboardingHandler "github.com/ajwalsh/piggy/internal/http/onboardinghttp"
	txHandler "github.com/ajwalsh/piggy/internal/http/transactions"
	"github.com/ajwalsh/piggy/internal/ledger"
	ledgerStore "github.com/ajwalsh/piggy/internal/ledger/store"
	"github.com/ajwalsh/piggy/internal/onboarding"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	localCache, err := cache.New(afero.NewOsFs(), cfg.Cache.Dir)
	if err != nil {
		slog.Error("failed to open local cache", "error", err)
		os.Exit(1)
	}

	var (
		ledgerService     = ledger.NewService(ledgerStore.New(db), localCache, cfg.Ledger.RecentLimit)
		onboardingService = onboarding.NewService(localCache)
	)

	var (
		dashboardH  = dashboardHandler.NewHandler(ledgerService)
		goalsH      = goalsHandler.NewHandler(ledgerService)
		txH         = txHandler.NewHandler(ledgerService)
		onboardingH = onboardingHandler.NewHandler(onboardingService, localCache)
	)

	router := piggyHttp.New([]byte(cfg.Auth.JWTSecret), dashboardH, goalsH, txH, onboardingH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

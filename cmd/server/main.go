package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/tendant/chi-demo/app"

	"github.com/tendant/simple-cms/internal/api"
	"github.com/tendant/simple-cms/internal/auth"
	"github.com/tendant/simple-cms/internal/config"
	"github.com/tendant/simple-cms/internal/service"
	"github.com/tendant/simple-cms/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to read configuration", "err", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	st, err := store.Open(context.Background(), cfg)
	if err != nil {
		slog.Error("Failed to initialize store", "database_type", cfg.DatabaseType, "err", err)
		os.Exit(1)
	}
	defer st.Close()
	slog.Info("Store initialized", "database_type", cfg.DatabaseType)

	issuer := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// Initialize services
	identityService := service.NewIdentityService(st.Users, issuer, cfg.Auth.BcryptCost)
	categoryService := service.NewCategoryService(st.Categories)
	contentService := service.NewContentService(st.Contents, st.Categories, st.Users)

	server := app.DefaultApp()

	app.RoutesHealthz(server.R)
	app.RoutesHealthzReady(server.R)

	server.R.Mount("/api", api.NewRouter(identityService, categoryService, contentService, issuer))

	server.Run()
}

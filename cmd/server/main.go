package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ignite/leadmailer/internal/api"
	"github.com/ignite/leadmailer/internal/config"
	"github.com/ignite/leadmailer/internal/copygen"
	"github.com/ignite/leadmailer/internal/dispatch"
	"github.com/ignite/leadmailer/internal/repository/postgres"
	"github.com/ignite/leadmailer/internal/service/brand"
	"github.com/ignite/leadmailer/internal/service/campaign"
	"github.com/ignite/leadmailer/internal/service/feature"
	"github.com/ignite/leadmailer/internal/service/generation"
	"github.com/ignite/leadmailer/internal/service/lead"
	"github.com/ignite/leadmailer/internal/service/template"
)

func main() {
	cfg, err := config.LoadFromEnv("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Database.URL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := postgres.Open(cfg.Database.URL, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to database")

	ctx := context.Background()

	copyGen, err := copygen.NewBedrockGenerator(ctx, cfg.Bedrock)
	if err != nil {
		log.Fatalf("Failed to init copy generator: %v", err)
	}
	if cfg.Bedrock.Configured() {
		log.Printf("Copy generator: bedrock (%s)", cfg.Bedrock.ModelID)
	} else {
		log.Println("Copy generator: fallback (bedrock not configured)")
	}

	gateway, err := dispatch.NewSESGateway(ctx, cfg.SES)
	if err != nil {
		log.Fatalf("Failed to init dispatch gateway: %v", err)
	}
	if cfg.SES.Configured() {
		log.Printf("Dispatch gateway: ses (%s)", cfg.SES.Region)
	} else {
		log.Println("Dispatch gateway: disabled (sends will be skipped)")
	}

	brands := brand.NewService(postgres.NewBrandRepo(db))
	features := feature.NewService(postgres.NewFeatureRepo(db))
	templates := template.NewService(postgres.NewTemplateRepo(db))
	campaigns := campaign.NewService(postgres.NewCampaignRepo(db))
	leads := lead.NewService(postgres.NewLeadRepo(db), brands)
	emails := generation.NewService(postgres.NewEmailRepo(db), leads, brands, campaigns, templates, copyGen, gateway, cfg.Mailing.DefaultTone)

	handlers := api.NewHandlers(brands, features, templates, campaigns, leads, emails)
	server := api.NewServer(handlers)

	addr := fmt.Sprintf("%s:%d", cfg.Server.GetHost(), cfg.Server.Port)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Server listening on %s", addr)
		if err := server.ListenAndServe(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	log.Println("Server stopped")
}

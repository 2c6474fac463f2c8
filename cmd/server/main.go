// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"

	"github.com/unclebandit/mailerbot-backend/internal/config"
	"github.com/unclebandit/mailerbot-backend/internal/controller"
	"github.com/unclebandit/mailerbot-backend/internal/db"
	appErrors "github.com/unclebandit/mailerbot-backend/internal/errors"
	"github.com/unclebandit/mailerbot-backend/internal/logger"
	"github.com/unclebandit/mailerbot-backend/internal/mailer"
	"github.com/unclebandit/mailerbot-backend/internal/metrics"
	"github.com/unclebandit/mailerbot-backend/internal/middleware"
	"github.com/unclebandit/mailerbot-backend/internal/queue"
	"github.com/unclebandit/mailerbot-backend/internal/repository"
	"github.com/unclebandit/mailerbot-backend/internal/service"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on OS environment variables")
	}

	cfg := config.Load()
	logg := logger.NewLogger(cfg.LogLevel, cfg.LogDir)

	conn, err := db.Open(cfg.DB)
	if err != nil {
		logg.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logg.Info("connected to database",
		slog.String("host", cfg.DB.Host),
		slog.String("name", cfg.DB.Name),
	)

	metrics.Init()

	campaignRepo := &repository.CampaignRepository{DB: conn, Log: logg}
	recipientRepo := &repository.RecipientRepository{DB: conn, Log: logg}
	contentRepo := &repository.ContentRepository{DB: conn, Log: logg}
	salesPersonRepo := &repository.SalesPersonRepository{DB: conn, Log: logg}

	provider := mailer.NewSendGridClient(cfg.SendGridAPIKey)
	sender := &mailer.BulkSender{
		Client:     provider,
		ChunkSize:  cfg.ChunkSize,
		ChunkDelay: cfg.ChunkDelay,
		ReportTo:   cfg.Notification.To,
		ReportCC:   cfg.Notification.CC,
		ReportFrom: cfg.Notification.From,
		Log:        logg,
	}

	dispatchService := &service.DispatchService{
		Campaigns:   campaignRepo,
		Recipients:  recipientRepo,
		Contents:    contentRepo,
		SalesPeople: salesPersonRepo,
		Sender:      sender,
		Log:         logg,
	}
	if cfg.AMQPURL != "" {
		dispatchService.Events = &queue.Publisher{URL: cfg.AMQPURL, Log: logg}
	}

	dispatchController := &controller.DispatchController{
		DispatchService: dispatchService,
		Provider:        provider,
		TestRecipient:   first(cfg.Notification.To),
		TestSender:      cfg.Notification.From,
	}

	if cfg.DispatchCron != "" {
		c := cron.New()
		_, err := c.AddFunc(cfg.DispatchCron, func() {
			_, err := dispatchService.Run(context.Background())
			if err != nil &&
				!errors.Is(err, appErrors.ErrNoCampaigns) &&
				!errors.Is(err, appErrors.ErrDispatchInProgress) {
				logg.Error("scheduled dispatch failed", slog.String("error", err.Error()))
			}
		})
		if err != nil {
			logg.Error("invalid dispatch cron spec",
				slog.String("spec", cfg.DispatchCron),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
		c.Start()
		logg.Info("dispatch schedule registered", slog.String("spec", cfg.DispatchCron))
	}

	r := chi.NewRouter()
	r.Use(middleware.MetricsMiddleware)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Hello World!"))
	})
	r.Post("/extract-Data-send-Mail", dispatchController.ExtractDataAndSendMail)
	r.Post("/test-mail", dispatchController.TestMail)
	r.Handle("/metrics", promhttp.Handler())

	logg.Info("server running", slog.String("port", cfg.HTTPPort))
	log.Fatal(http.ListenAndServe(":"+cfg.HTTPPort, r))
}

func first(values []string) string {
	if len(values) > 0 {
		return values[0]
	}
	return ""
}

package main

import (
	"fmt"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"gstflow/internal/config"
	"gstflow/internal/erp"
	"gstflow/internal/handler"
	"gstflow/internal/invoice"
	"gstflow/internal/logger"
	"gstflow/internal/port"
	"gstflow/internal/router"
	"gstflow/internal/service"
	"gstflow/internal/session"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run() error {
	// .env is optional; real deployments use environment variables.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger.Setup(cfg.Log.Level, cfg.Log.Format)
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	clientFor := erpClientFactory(&cfg.ERP)
	store := session.NewMemoryStore()
	builder := invoice.NewBuilder(cfg.GST.HomeState, cfg.GST.DefaultCompany, cfg.GST.CompanyAbbr)

	// Initialize services
	validationSvc := service.NewValidationService(store, clientFor)
	invoiceSvc := service.NewInvoiceService(builder)
	submissionSvc := service.NewSubmissionService(clientFor, cfg.ERP.SubmitEndpoint())
	mastersSvc := service.NewMastersService(clientFor(port.Credentials{}))

	// Initialize handlers
	uploadH := handler.NewUploadHandler(validationSvc, cfg.Upload.Dir, cfg.Upload.MaxFileSizeMB)
	validationH := handler.NewValidationHandler(validationSvc)
	invoiceH := handler.NewInvoiceHandler(invoiceSvc, submissionSvc)
	mastersH := handler.NewMastersHandler(mastersSvc)
	healthH := handler.NewHealthHandler(cfg.Server.Environment)

	// Setup router
	r := router.Setup(cfg.CORS.AllowedOrigins, logger.WithComponent("http"), uploadH, validationH, invoiceH, mastersH, healthH)

	log.Info().Str("port", cfg.Server.Port).Str("environment", cfg.Server.Environment).Msg("server starting")
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

// erpClientFactory builds per-request clients. Caller-supplied credentials
// override the configured defaults; a caller endpoint also redirects lookups
// to that host.
func erpClientFactory(cfg *config.ERPConfig) port.ERPClientFactory {
	return func(creds port.Credentials) port.ERPClient {
		baseURL := cfg.BaseURL
		if creds.Endpoint != "" {
			if u, err := url.Parse(creds.Endpoint); err == nil && u.Scheme != "" && u.Host != "" {
				baseURL = u.Scheme + "://" + u.Host
			}
		}
		token := cfg.APIToken
		if creds.APIToken != "" {
			token = creds.APIToken
		}
		return erp.NewClient(baseURL, token, erp.WithTimeouts(cfg.LookupTimeout, cfg.SubmitTimeout))
	}
}

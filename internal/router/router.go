package router

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"gstflow/internal/handler"
	"gstflow/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	corsOrigins []string,
	log zerolog.Logger,
	uploadH *handler.UploadHandler,
	validationH *handler.ValidationHandler,
	invoiceH *handler.InvoiceHandler,
	mastersH *handler.MastersHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)

	v1 := r.Group("/api/v1")

	// Spreadsheet upload opens a validation session
	v1.POST("/uploads", uploadH.Upload)

	// Validation session lifecycle
	validations := v1.Group("/validations")
	validations.POST("", validationH.Create)
	validations.POST("/:id/run", validationH.Run)
	validations.GET("/:id", validationH.Status)
	validations.GET("/:id/report", validationH.Report)
	validations.GET("/:id/report.csv", validationH.ExportReportCSV)
	validations.POST("/:id/corrections", validationH.ApplyCorrections)
	validations.DELETE("/:id", validationH.Delete)

	// Invoice building and submission
	invoices := v1.Group("/invoices")
	invoices.POST("/generate", invoiceH.Generate)
	invoices.POST("/submit", invoiceH.Submit)

	// Master-data helpers
	masters := v1.Group("/masters")
	masters.GET("/customers/suggestions", mastersH.SuggestCustomers)
	masters.GET("/items/suggestions", mastersH.SuggestItems)
	masters.GET("/items/rate-check", mastersH.CheckItemRate)
	masters.GET("/uoms/check", mastersH.CheckUOM)

	return r
}

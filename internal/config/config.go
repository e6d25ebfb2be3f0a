package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	ERP    ERPConfig
	GST    GSTConfig
	Upload UploadConfig
	Log    LogConfig
	CORS   CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// ERPConfig holds connection settings for the upstream ERP instance.
type ERPConfig struct {
	BaseURL       string        `mapstructure:"base_url"`
	APIToken      string        `mapstructure:"api_token"`
	Endpoint      string        `mapstructure:"endpoint"`
	LookupTimeout time.Duration `mapstructure:"lookup_timeout"`
	SubmitTimeout time.Duration `mapstructure:"submit_timeout"`
	BulkLimit     int           `mapstructure:"bulk_limit"`
}

// SubmitEndpoint returns the sales invoice endpoint, deriving it from the
// base URL when not configured explicitly.
func (e *ERPConfig) SubmitEndpoint() string {
	if e.Endpoint != "" {
		return e.Endpoint
	}
	return strings.TrimRight(e.BaseURL, "/") + "/api/resource/Sales%20Invoice"
}

// GSTConfig holds the seller-side tax identity.
type GSTConfig struct {
	HomeState      string `mapstructure:"home_state"`
	DefaultCompany string `mapstructure:"default_company"`
	CompanyAbbr    string `mapstructure:"company_abbr"`
}

// UploadConfig holds spreadsheet upload settings.
type UploadConfig struct {
	Dir           string `mapstructure:"dir"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the GSTFLOW_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("GSTFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.environment", "development")

	// ERP defaults
	v.SetDefault("erp.base_url", "http://localhost:8000")
	v.SetDefault("erp.api_token", "")
	v.SetDefault("erp.endpoint", "")
	v.SetDefault("erp.lookup_timeout", "15s")
	v.SetDefault("erp.submit_timeout", "30s")
	v.SetDefault("erp.bulk_limit", 1000)

	// GST defaults
	v.SetDefault("gst.home_state", "Maharashtra")
	v.SetDefault("gst.default_company", "Vibgyor Industries Private Limited")
	v.SetDefault("gst.company_abbr", "VIPL")

	// Upload defaults
	v.SetDefault("upload.dir", os.TempDir())
	v.SetDefault("upload.max_file_size_mb", 16)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":             "GSTFLOW_SERVER_PORT",
		"server.read_timeout":     "GSTFLOW_SERVER_READ_TIMEOUT",
		"server.write_timeout":    "GSTFLOW_SERVER_WRITE_TIMEOUT",
		"server.environment":      "GSTFLOW_SERVER_ENVIRONMENT",
		"erp.base_url":            "GSTFLOW_ERP_BASE_URL",
		"erp.api_token":           "GSTFLOW_ERP_API_TOKEN",
		"erp.endpoint":            "GSTFLOW_ERP_ENDPOINT",
		"erp.lookup_timeout":      "GSTFLOW_ERP_LOOKUP_TIMEOUT",
		"erp.submit_timeout":      "GSTFLOW_ERP_SUBMIT_TIMEOUT",
		"erp.bulk_limit":          "GSTFLOW_ERP_BULK_LIMIT",
		"gst.home_state":          "GSTFLOW_GST_HOME_STATE",
		"gst.default_company":     "GSTFLOW_GST_DEFAULT_COMPANY",
		"gst.company_abbr":        "GSTFLOW_GST_COMPANY_ABBR",
		"upload.dir":              "GSTFLOW_UPLOAD_DIR",
		"upload.max_file_size_mb": "GSTFLOW_UPLOAD_MAX_FILE_SIZE_MB",
		"log.level":               "GSTFLOW_LOG_LEVEL",
		"log.format":              "GSTFLOW_LOG_FORMAT",
		"cors.allowed_origins":    "GSTFLOW_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if GSTFLOW_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("GSTFLOW_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.ERP = ERPConfig{
		BaseURL:       v.GetString("erp.base_url"),
		APIToken:      v.GetString("erp.api_token"),
		Endpoint:      v.GetString("erp.endpoint"),
		LookupTimeout: v.GetDuration("erp.lookup_timeout"),
		SubmitTimeout: v.GetDuration("erp.submit_timeout"),
		BulkLimit:     v.GetInt("erp.bulk_limit"),
	}
	cfg.GST = GSTConfig{
		HomeState:      v.GetString("gst.home_state"),
		DefaultCompany: v.GetString("gst.default_company"),
		CompanyAbbr:    v.GetString("gst.company_abbr"),
	}
	cfg.Upload = UploadConfig{
		Dir:           v.GetString("upload.dir"),
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	return cfg, nil
}

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	DB         DBConfig
	JWT        JWTConfig
	S3         S3Config
	Log        LogConfig
	CORS       CORSConfig
	Email      EmailConfig
	Confidence ConfidenceConfig
	Pipeline   PipelineConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret            string        `mapstructure:"secret"`
	AccessTokenExpiry time.Duration `mapstructure:"access_expiry"`
	Issuer            string        `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings for document scan storage.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
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

// EmailConfig holds email delivery settings for reviewer alerts.
type EmailConfig struct {
	Provider      string `mapstructure:"provider"`
	Region        string `mapstructure:"region"`
	FromAddress   string `mapstructure:"from_address"`
	FromName      string `mapstructure:"from_name"`
	ReviewInbox   string `mapstructure:"review_inbox"`
	ReviewBaseURL string `mapstructure:"review_base_url"`
}

// ConfidenceConfig holds factor weight overrides. Zero values mean the
// built-in weights apply.
type ConfidenceConfig struct {
	Extraction         float64 `mapstructure:"extraction"`
	Issuer             float64 `mapstructure:"issuer"`
	FormatMatch        float64 `mapstructure:"format_match"`
	HistoricalAccuracy float64 `mapstructure:"historical_accuracy"`
	Completeness       float64 `mapstructure:"completeness"`
	TermMatch          float64 `mapstructure:"term_match"`
}

// Overrides returns the non-zero weights keyed by factor name.
func (c *ConfidenceConfig) Overrides() map[string]float64 {
	out := map[string]float64{}
	set := func(name string, value float64) {
		if value > 0 {
			out[name] = value
		}
	}
	set("extraction", c.Extraction)
	set("issuer", c.Issuer)
	set("format_match", c.FormatMatch)
	set("historical_accuracy", c.HistoricalAccuracy)
	set("completeness", c.Completeness)
	set("term_match", c.TermMatch)
	return out
}

// PipelineConfig holds per-document processing settings.
type PipelineConfig struct {
	TimeoutSecs int `mapstructure:"timeout_secs"`
}

// Timeout returns the per-document processing deadline.
func (p *PipelineConfig) Timeout() time.Duration {
	return time.Duration(p.TimeoutSecs) * time.Second
}

// Load reads configuration from environment variables with the DOCFLOW_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DOCFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "docflow")
	v.SetDefault("db.password", "docflow_secret")
	v.SetDefault("db.name", "docflow_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.issuer", "docflow")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "docflow-scans")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 50)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "noreply@docflow.dev")
	v.SetDefault("email.from_name", "Docflow")
	v.SetDefault("email.review_inbox", "")
	v.SetDefault("email.review_base_url", "http://localhost:3000")

	// Confidence weight overrides; zero means use the built-in weight
	v.SetDefault("confidence.extraction", 0.0)
	v.SetDefault("confidence.issuer", 0.0)
	v.SetDefault("confidence.format_match", 0.0)
	v.SetDefault("confidence.historical_accuracy", 0.0)
	v.SetDefault("confidence.completeness", 0.0)
	v.SetDefault("confidence.term_match", 0.0)

	// Pipeline defaults
	v.SetDefault("pipeline.timeout_secs", 30)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                    "DOCFLOW_SERVER_PORT",
		"server.read_timeout":            "DOCFLOW_SERVER_READ_TIMEOUT",
		"server.write_timeout":           "DOCFLOW_SERVER_WRITE_TIMEOUT",
		"server.environment":             "DOCFLOW_SERVER_ENVIRONMENT",
		"db.host":                        "DOCFLOW_DB_HOST",
		"db.port":                        "DOCFLOW_DB_PORT",
		"db.user":                        "DOCFLOW_DB_USER",
		"db.password":                    "DOCFLOW_DB_PASSWORD",
		"db.name":                        "DOCFLOW_DB_NAME",
		"db.sslmode":                     "DOCFLOW_DB_SSLMODE",
		"db.max_open":                    "DOCFLOW_DB_MAX_OPEN",
		"db.max_idle":                    "DOCFLOW_DB_MAX_IDLE",
		"jwt.secret":                     "DOCFLOW_JWT_SECRET",
		"jwt.access_expiry":              "DOCFLOW_JWT_ACCESS_EXPIRY",
		"jwt.issuer":                     "DOCFLOW_JWT_ISSUER",
		"s3.region":                      "DOCFLOW_S3_REGION",
		"s3.bucket":                      "DOCFLOW_S3_BUCKET",
		"s3.endpoint":                    "DOCFLOW_S3_ENDPOINT",
		"s3.access_key":                  "DOCFLOW_S3_ACCESS_KEY",
		"s3.secret_key":                  "DOCFLOW_S3_SECRET_KEY",
		"s3.max_file_size_mb":            "DOCFLOW_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":              "DOCFLOW_S3_PRESIGN_EXPIRY",
		"log.level":                      "DOCFLOW_LOG_LEVEL",
		"log.format":                     "DOCFLOW_LOG_FORMAT",
		"cors.allowed_origins":           "DOCFLOW_CORS_ALLOWED_ORIGINS",
		"email.provider":                 "DOCFLOW_EMAIL_PROVIDER",
		"email.region":                   "DOCFLOW_EMAIL_REGION",
		"email.from_address":             "DOCFLOW_EMAIL_FROM_ADDRESS",
		"email.from_name":                "DOCFLOW_EMAIL_FROM_NAME",
		"email.review_inbox":             "DOCFLOW_EMAIL_REVIEW_INBOX",
		"email.review_base_url":          "DOCFLOW_EMAIL_REVIEW_BASE_URL",
		"confidence.extraction":          "DOCFLOW_CONFIDENCE_EXTRACTION",
		"confidence.issuer":              "DOCFLOW_CONFIDENCE_ISSUER",
		"confidence.format_match":        "DOCFLOW_CONFIDENCE_FORMAT_MATCH",
		"confidence.historical_accuracy": "DOCFLOW_CONFIDENCE_HISTORICAL_ACCURACY",
		"confidence.completeness":        "DOCFLOW_CONFIDENCE_COMPLETENESS",
		"confidence.term_match":          "DOCFLOW_CONFIDENCE_TERM_MATCH",
		"pipeline.timeout_secs":          "DOCFLOW_PIPELINE_TIMEOUT_SECS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if DOCFLOW_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("DOCFLOW_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:            v.GetString("jwt.secret"),
		AccessTokenExpiry: v.GetDuration("jwt.access_expiry"),
		Issuer:            v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
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
	cfg.Email = EmailConfig{
		Provider:      v.GetString("email.provider"),
		Region:        v.GetString("email.region"),
		FromAddress:   v.GetString("email.from_address"),
		FromName:      v.GetString("email.from_name"),
		ReviewInbox:   v.GetString("email.review_inbox"),
		ReviewBaseURL: v.GetString("email.review_base_url"),
	}
	cfg.Confidence = ConfidenceConfig{
		Extraction:         v.GetFloat64("confidence.extraction"),
		Issuer:             v.GetFloat64("confidence.issuer"),
		FormatMatch:        v.GetFloat64("confidence.format_match"),
		HistoricalAccuracy: v.GetFloat64("confidence.historical_accuracy"),
		Completeness:       v.GetFloat64("confidence.completeness"),
		TermMatch:          v.GetFloat64("confidence.term_match"),
	}
	cfg.Pipeline = PipelineConfig{
		TimeoutSecs: v.GetInt("pipeline.timeout_secs"),
	}

	return cfg, nil
}

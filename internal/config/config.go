package config

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	AuthModeHeader = "header"
	AuthModeBearer = "bearer"

	StorageLocal = "local"
	StorageR2    = "r2"

	ProviderGenAI     = "genai"
	ProviderLangChain = "langchain"

	defaultJWTSecret = "not-so-secret-now-is-it?"
)

type ServerConfig struct {
	Port           string        `mapstructure:"port" validate:"required"`
	Environment    string        `mapstructure:"env"`
	FrontendOrigin string        `mapstructure:"frontend_origin"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
}

// AuthConfig selects exactly one identity resolution strategy for the deployment.
type AuthConfig struct {
	Mode          string `mapstructure:"mode" validate:"oneof=header bearer"`
	Header        string `mapstructure:"header" validate:"required"`
	AutoProvision bool   `mapstructure:"auto_provision"`
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret" validate:"required"`
	TTL    time.Duration `mapstructure:"ttl" validate:"gt=0"`
	Issuer string        `mapstructure:"issuer"`
}

type GoogleConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectURL  string `mapstructure:"redirect_url"`
}

type R2Config struct {
	AccountID       string `mapstructure:"account_id"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	Region          string `mapstructure:"region"`
}

type StorageConfig struct {
	Driver    string `mapstructure:"driver" validate:"oneof=local r2"`
	UploadDir string `mapstructure:"upload_dir"`
}

type LLMConfig struct {
	Provider    string        `mapstructure:"provider" validate:"oneof=genai langchain"`
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model" validate:"required"`
	Temperature float32       `mapstructure:"temperature" validate:"gte=0,lte=2"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type RabbitMQConfig struct {
	URL      string `mapstructure:"url"`
	Exchange string `mapstructure:"exchange"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	DBURL    string         `mapstructure:"db_url"`
	Auth     AuthConfig     `mapstructure:"auth"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Google   GoogleConfig   `mapstructure:"google"`
	Storage  StorageConfig  `mapstructure:"storage"`
	R2       R2Config       `mapstructure:"r2"`
	LLM      LLMConfig      `mapstructure:"llm"`
	RabbitMQ RabbitMQConfig `mapstructure:"rabbitmq"`
}

// envKeys maps config keys to the environment variables the deployment uses.
var envKeys = map[string]string{
	"server.port":            "PORT",
	"server.env":             "ENV",
	"server.frontend_origin": "FRONTEND_ORIGIN",
	"server.read_timeout":    "READ_TIMEOUT",
	"server.write_timeout":   "WRITE_TIMEOUT",
	"db_url":                 "DB_URL",
	"auth.mode":              "AUTH_MODE",
	"auth.header":            "AUTH_HEADER",
	"auth.auto_provision":    "AUTH_AUTO_PROVISION",
	"jwt.secret":             "JWT_SECRET",
	"jwt.ttl":                "JWT_TTL",
	"jwt.issuer":             "JWT_ISSUER",
	"google.client_id":       "GOOGLE_CLIENT_ID",
	"google.client_secret":   "GOOGLE_CLIENT_SECRET",
	"google.redirect_url":    "GOOGLE_REDIRECT_URL",
	"storage.driver":         "STORAGE_DRIVER",
	"storage.upload_dir":     "STORAGE_UPLOAD_DIR",
	"r2.account_id":          "R2_ACCOUNT_ID",
	"r2.access_key_id":       "R2_ACCESS_KEY_ID",
	"r2.secret_access_key":   "R2_SECRET_ACCESS_KEY",
	"r2.bucket_name":         "R2_BUCKET_NAME",
	"r2.region":              "R2_REGION",
	"llm.provider":           "LLM_PROVIDER",
	"llm.api_key":            "GEMINI_API_KEY",
	"llm.model":              "LLM_MODEL",
	"llm.temperature":        "LLM_TEMPERATURE",
	"llm.timeout":            "LLM_TIMEOUT",
	"rabbitmq.url":           "RABBITMQ_URL",
	"rabbitmq.exchange":      "RABBITMQ_EXCHANGE",
}

// Load reads the env file (ENV_FILE, default .env) and the process environment.
func Load() (*Config, error) {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	// A missing env file is normal outside local development.
	_ = godotenv.Load(envFile)

	v := viper.New()
	setDefaults(v)
	for key, env := range envKeys {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Auth.Mode = strings.ToLower(cfg.Auth.Mode)
	cfg.Storage.Driver = strings.ToLower(cfg.Storage.Driver)
	cfg.LLM.Provider = strings.ToLower(cfg.LLM.Provider)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.env", EnvDevelopment)
	v.SetDefault("server.frontend_origin", "http://localhost:3000")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 2*time.Minute)

	v.SetDefault("db_url", "")

	v.SetDefault("auth.mode", AuthModeHeader)
	v.SetDefault("auth.header", "X-User-Id")
	v.SetDefault("auth.auto_provision", true)

	v.SetDefault("jwt.secret", defaultJWTSecret)
	v.SetDefault("jwt.ttl", 2*time.Hour)
	v.SetDefault("jwt.issuer", "resumefix")

	v.SetDefault("google.client_id", "")
	v.SetDefault("google.client_secret", "")
	v.SetDefault("google.redirect_url", "http://localhost:8080/auth/google/callback")

	v.SetDefault("storage.driver", StorageLocal)
	v.SetDefault("storage.upload_dir", "uploads")

	v.SetDefault("r2.account_id", "")
	v.SetDefault("r2.access_key_id", "")
	v.SetDefault("r2.secret_access_key", "")
	v.SetDefault("r2.bucket_name", "")
	v.SetDefault("r2.region", "auto")

	v.SetDefault("llm.provider", ProviderGenAI)
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "gemini-2.0-flash")
	v.SetDefault("llm.temperature", 0.2)
	v.SetDefault("llm.timeout", 60*time.Second)

	v.SetDefault("rabbitmq.url", "")
	v.SetDefault("rabbitmq.exchange", "resumes")
}

// Validate checks field constraints and the production-only requirements.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if c.Server.Environment == EnvProduction {
		if c.DBURL == "" {
			return fmt.Errorf("DB_URL is required in %s", c.Server.Environment)
		}
		if c.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set to a secure value in %s", c.Server.Environment)
		}
	}

	if c.Storage.Driver == StorageR2 {
		if c.R2.AccountID == "" || c.R2.BucketName == "" || c.R2.AccessKeyID == "" || c.R2.SecretAccessKey == "" {
			return fmt.Errorf("R2_ACCOUNT_ID, R2_BUCKET_NAME, R2_ACCESS_KEY_ID and R2_SECRET_ACCESS_KEY are required for the r2 storage driver")
		}
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == EnvProduction
}

func (c *Config) CorsOptions() cors.Options {
	return cors.Options{
		AllowedOrigins:   []string{c.Server.FrontendOrigin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
	}
}

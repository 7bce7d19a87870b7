package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// ======================================================
// CONFIG
// ======================================================
// Variáveis vazias desligam a integração correspondente
// (DATABASE_URL vazio = modo demo em memória).

type Config struct {
	Server      ServerConfig
	DB          DBConfig
	Redis       RedisConfig
	JWT         JWTConfig
	CORS        CORSConfig
	Log         LogConfig
	App         AppConfig
	MercadoPago MercadoPagoConfig
	Mail        MailConfig
	Storage     StorageConfig
	AMQP        AMQPConfig
	RateLimit   RateLimitConfig
}

type ServerConfig struct {
	Port    string `envconfig:"SERVER_PORT" default:"8080"`
	GinMode string `envconfig:"GIN_MODE" default:"release"`
}

type DBConfig struct {
	URL             string        `envconfig:"DATABASE_URL"`
	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"30m"`
	ConnMaxIdleTime time.Duration `envconfig:"DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL string        `envconfig:"REDIS_URL"`
	TTL time.Duration `envconfig:"REDIS_AVAILABILITY_TTL" default:"5m"`
}

type JWTConfig struct {
	Secret   string        `envconfig:"JWT_SECRET" default:"changeme"`
	Duration time.Duration `envconfig:"JWT_DURATION" default:"24h"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,X-Internal-Key"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
}

type AppConfig struct {
	Mode            string `envconfig:"APP_MODE" default:"marketplace"`
	SingleSlug      string `envconfig:"SINGLE_BARBER_SLUG" default:"luccifadez"`
	BaseURL         string `envconfig:"APP_BASE_URL" default:"http://localhost:3000"`
	APIURL          string `envconfig:"APP_API_URL" default:"http://localhost:8080"`
	DefaultTimezone string `envconfig:"APP_DEFAULT_TIMEZONE" default:"America/Sao_Paulo"`
	InternalKey     string `envconfig:"INTERNAL_API_KEY"`
	TemplateDays    int    `envconfig:"AVAILABILITY_TEMPLATE_DAYS" default:"28"`
}

type MercadoPagoConfig struct {
	AccessToken   string `envconfig:"MP_ACCESS_TOKEN"`
	WebhookSecret string `envconfig:"MP_WEBHOOK_SECRET"`
	Currency      string `envconfig:"MP_CURRENCY" default:"BRL"`
}

type MailConfig struct {
	ResendAPIKey string `envconfig:"RESEND_API_KEY"`
	From         string `envconfig:"RESEND_FROM_EMAIL" default:"no-reply@barber-booking.local"`
}

type StorageConfig struct {
	Bucket        string `envconfig:"S3_BUCKET"`
	Region        string `envconfig:"S3_REGION" default:"us-east-1"`
	Endpoint      string `envconfig:"S3_ENDPOINT"`
	AccessKey     string `envconfig:"S3_ACCESS_KEY"`
	SecretKey     string `envconfig:"S3_SECRET_KEY"`
	PublicBaseURL string `envconfig:"S3_PUBLIC_BASE_URL"`
	MaxWidth      int    `envconfig:"GALLERY_MAX_WIDTH" default:"1600"`
}

type AMQPConfig struct {
	URL      string `envconfig:"AMQP_URL"`
	Exchange string `envconfig:"AMQP_EXCHANGE" default:"booking.events"`
}

type RateLimitConfig struct {
	RPS   float64 `envconfig:"RATE_LIMIT_RPS" default:"2"`
	Burst int     `envconfig:"RATE_LIMIT_BURST" default:"10"`
}

// Load lê .env (se existir) e as variáveis de ambiente.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%s", c.Server.Port)
}

func (c Config) DemoMode() bool {
	return c.DB.URL == ""
}

func (c Config) SingleMode() bool {
	return c.App.Mode == "single"
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{Port: "8889", GinMode: "test"},
		JWT:    JWTConfig{Secret: "test-secret", Duration: time.Hour},
		Log:    LogConfig{Level: "error"},
		App: AppConfig{
			Mode:            "marketplace",
			SingleSlug:      "luccifadez",
			BaseURL:         "http://localhost:3000",
			APIURL:          "http://localhost:8889",
			DefaultTimezone: "America/Sao_Paulo",
			InternalKey:     "internal-test-key",
			TemplateDays:    28,
		},
		MercadoPago: MercadoPagoConfig{Currency: "BRL", WebhookSecret: "whsec-test"},
		RateLimit:   RateLimitConfig{RPS: 100, Burst: 100},
	}
}

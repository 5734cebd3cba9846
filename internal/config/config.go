package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Env string `env:"ENV" envDefault:"development"`

	// Server
	Port string `env:"PORT" envDefault:"5000"`

	// Database
	DBDriver       string `env:"DB_DRIVER" envDefault:"postgres"`
	DBHost         string `env:"DB_HOST" envDefault:"localhost"`
	DBPort         string `env:"DB_PORT" envDefault:"5432"`
	DBUser         string `env:"DB_USER" envDefault:"stockglass"`
	DBPassword     string `env:"DB_PASSWORD" envDefault:"stockglass"`
	DBName         string `env:"DB_NAME" envDefault:"stockglass"`
	DBSSLMode      string `env:"DB_SSLMODE" envDefault:"disable"`
	SQLitePath     string `env:"SQLITE_PATH" envDefault:"stockglass.db"`
	MigrationsPath string `env:"MIGRATIONS_PATH" envDefault:"migrations"`

	// JWT
	JWTSecret        string        `env:"JWT_SECRET" envDefault:"stockglass_jwt_secret"`
	JWTExpirationDur time.Duration `env:"JWT_EXPIRES_IN" envDefault:"24h"`

	// Events
	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaTopic   string   `env:"KAFKA_TOPIC" envDefault:"stockglass-notifications"`

	// Client session (cmd/watch)
	APIURL           string        `env:"API_URL" envDefault:"http://localhost:5000/api"`
	APIToken         string        `env:"API_TOKEN"`
	RequestTimeout   time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
	FeedInterval     time.Duration `env:"FEED_INTERVAL" envDefault:"30s"`
	FeedMaxDelta     float64       `env:"FEED_MAX_DELTA" envDefault:"5"`
	WatchlistBackend string        `env:"WATCHLIST_BACKEND" envDefault:"file"`
	WatchlistPath    string        `env:"WATCHLIST_PATH" envDefault:".stockglass.json"`
	RedisAddr        string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword    string        `env:"REDIS_PASSWORD"`
	RedisDB          int           `env:"REDIS_DB" envDefault:"0"`
}

var appConfig *Config

// Load loads configuration from the environment, reading a .env file first if
// one is present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, err
	}
	if config.JWTExpirationDur <= 0 {
		log.Printf("Warning: invalid JWT_EXPIRES_IN value '%s', falling back to 24h\n", config.JWTExpirationDur)
		config.JWTExpirationDur = 24 * time.Hour
	}

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// Set replaces the process-wide configuration. Tests use it to pin secrets.
func Set(cfg *Config) {
	appConfig = cfg
}

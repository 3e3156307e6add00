package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"

	pkgcfg "github.com/Skotchmaster/showcase/pkg/config"
)

type Config struct {
	ServiceName string
	ServerPort  string

	DBDriver    string
	DatabaseURL string

	LogLevel  string
	LogFormat string

	AdminJWTSecret   []byte
	AdminSessionTTL  time.Duration
	AdminDefaultCode string
	SecureCookies    bool
	CSRFEnabled      bool

	CascadeCategoryRename bool
	SeedDefaults          bool

	KafkaBrokers      []string
	KafkaTopicCatalog string
	KafkaTopicClicks  string

	ESURL      string
	ESUser     string
	ESPassword string
	ESIndex    string
}

// LoadEnvFile loads path into the process environment if it exists.
func LoadEnvFile(path string) {
	if err := godotenv.Load(path); err != nil {
		log.Printf("warning: could not load %s: %v", path, err)
	}
}

func Load() *Config {
	cfg := &Config{
		ServiceName: pkgcfg.EnvDefault("SERVICE_NAME", "showcase"),
		ServerPort:  pkgcfg.EnvDefault("SERVER_PORT", "8080"),

		DBDriver:    pkgcfg.EnvDefault("DB_DRIVER", "postgres"),
		DatabaseURL: pkgcfg.EnvDefault("DATABASE_URL", ""),

		LogLevel:  pkgcfg.EnvDefault("LOG_LEVEL", "info"),
		LogFormat: pkgcfg.EnvDefault("LOG_FORMAT", "json"),

		AdminJWTSecret:   []byte(pkgcfg.EnvDefault("ADMIN_JWT_SECRET", "")),
		AdminSessionTTL:  pkgcfg.EnvDurationDefault("ADMIN_SESSION_TTL", 24*time.Hour),
		AdminDefaultCode: pkgcfg.EnvDefault("ADMIN_DEFAULT_CODE", "123456"),
		SecureCookies:    pkgcfg.EnvBoolDefault("SECURE_COOKIES", false),
		CSRFEnabled:      pkgcfg.EnvBoolDefault("CSRF_ENABLED", true),

		CascadeCategoryRename: pkgcfg.EnvBoolDefault("CASCADE_CATEGORY_RENAME", false),
		SeedDefaults:          pkgcfg.EnvBoolDefault("SEED_DEFAULTS", true),

		KafkaBrokers:      pkgcfg.CSV(pkgcfg.EnvDefault("KAFKA_BROKERS", "")),
		KafkaTopicCatalog: pkgcfg.EnvDefault("KAFKA_TOPIC_CATALOG", "catalog_events"),
		KafkaTopicClicks:  pkgcfg.EnvDefault("KAFKA_TOPIC_CLICKS", "click_events"),

		ESURL:      pkgcfg.EnvDefault("ES_URL", ""),
		ESUser:     pkgcfg.EnvDefault("ES_USER", ""),
		ESPassword: pkgcfg.EnvDefault("ES_PASSWORD", ""),
		ESIndex:    pkgcfg.EnvDefault("ES_INDEX", "products"),
	}

	pkgcfg.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	pkgcfg.MustNonEmptyBytes(cfg.AdminJWTSecret, "ADMIN_JWT_SECRET")

	return cfg
}

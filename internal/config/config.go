package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App              App              `mapstructure:",squash"`
	Server           Server           `mapstructure:",squash"`
	Database         Database         `mapstructure:",squash"`
	Meta             Meta             `mapstructure:",squash"`
	Google           Google           `mapstructure:",squash"`
	Platforms        Platforms        `mapstructure:",squash"`
	Auth             Auth             `mapstructure:",squash"`
	Redis            Redis            `mapstructure:",squash"`
	BudgetReviewSync BudgetReviewSync `mapstructure:",squash"`
}

type Server struct {
	Host         string   `mapstructure:"host"`
	Port         string   `mapstructure:"port"`
	AllowOrigins []string `mapstructure:"allow_origins"`
}

type Database struct {
	DSN          string `mapstructure:"-"`
	Driver       string `mapstructure:"database_driver"`
	Password     string `mapstructure:"database_password"`
	URL          string `mapstructure:"database_url"`
	User         string `mapstructure:"database_user"`
	SQLitePath   string `mapstructure:"database_sqlite_path"`
	MaxOpenConns int    `mapstructure:"database_max_open_conns"`
	AutoMigrate  bool   `mapstructure:"database_auto_migrate"`
}

type Meta struct {
	BaseURL     string `mapstructure:"meta_base_url"`
	URL         string `mapstructure:"meta_url"`
	Version     string `mapstructure:"meta_version"`
	AccessToken string `mapstructure:"meta_access_token"`
}

type Google struct {
	BaseURL         string `mapstructure:"google_ads_base_url"`
	URL             string `mapstructure:"google_ads_url"`
	Version         string `mapstructure:"google_ads_version"`
	DeveloperToken  string `mapstructure:"google_ads_developer_token"`
	LoginCustomerID string `mapstructure:"google_ads_login_customer_id"`
	AccessToken     string `mapstructure:"google_ads_access_token"`
}

// Platforms reúne limites comuns às chamadas às plataformas de anúncios
type Platforms struct {
	RequestTimeout    time.Duration `mapstructure:"platform_request_timeout"`
	RequestsPerSecond float64       `mapstructure:"platform_requests_per_second"`
	PageLimit         int           `mapstructure:"platform_page_limit"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	Timezone string `mapstructure:"timezone"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type Redis struct {
	Address  string `mapstructure:"redis_address"`
	Password string `mapstructure:"redis_password"`
	DB       int    `mapstructure:"redis_db"`
}

type BudgetReviewSync struct {
	Interval        time.Duration `mapstructure:"budget_review_sync_interval"`
	Enabled         bool          `mapstructure:"budget_review_sync_enabled"`
	DistributedLock bool          `mapstructure:"budget_review_sync_distributed_lock"`
	LockTTL         time.Duration `mapstructure:"budget_review_sync_lock_ttl"`
}

// Location retorna o fuso configurado para "hoje"; fuso inválido cai para UTC
func (a App) Location() *time.Location {
	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("ALLOW_ORIGINS", "*")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/budget_pacing?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_SQLITE_PATH", "budget_pacing.db")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	viper.SetDefault("DATABASE_AUTO_MIGRATE", false)

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v22.0")
	viper.SetDefault("META_ACCESS_TOKEN", "") // ONLY LOCAL

	viper.SetDefault("GOOGLE_ADS_BASE_URL", "https://googleads.googleapis.com")
	viper.SetDefault("GOOGLE_ADS_VERSION", "v17")
	viper.SetDefault("GOOGLE_ADS_DEVELOPER_TOKEN", "")
	viper.SetDefault("GOOGLE_ADS_LOGIN_CUSTOMER_ID", "")
	viper.SetDefault("GOOGLE_ADS_ACCESS_TOKEN", "") // ONLY LOCAL

	viper.SetDefault("PLATFORM_REQUEST_TIMEOUT", "30s")
	viper.SetDefault("PLATFORM_REQUESTS_PER_SECOND", 2)
	viper.SetDefault("PLATFORM_PAGE_LIMIT", 200)

	viper.SetDefault("AUTH_SECRET", "your_secret_key")

	viper.SetDefault("REDIS_ADDRESS", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)

	// Revisão de orçamento a cada 5 minutos
	viper.SetDefault("BUDGET_REVIEW_SYNC_INTERVAL", "5m")
	viper.SetDefault("BUDGET_REVIEW_SYNC_ENABLED", true)
	viper.SetDefault("BUDGET_REVIEW_SYNC_DISTRIBUTED_LOCK", false)
	viper.SetDefault("BUDGET_REVIEW_SYNC_LOCK_TTL", "30m")

	viper.SetDefault("TIMEZONE", "America/Sao_Paulo")
	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Meta.URL = fmt.Sprintf("%s/%s", strings.TrimRight(config.Meta.BaseURL, "/"), config.Meta.Version)
	config.Google.URL = fmt.Sprintf("%s/%s", strings.TrimRight(config.Google.BaseURL, "/"), config.Google.Version)

	switch config.Database.Driver {
	case "sqlite":
		config.Database.DSN = config.Database.SQLitePath
	default:
		config.Database.DSN = fmt.Sprintf(
			"%s://%s:%s@%s",
			config.Database.Driver,
			config.Database.User,
			config.Database.Password,
			config.Database.URL,
		)
	}

	if config.BudgetReviewSync.DistributedLock && config.Redis.Address == "" {
		return nil, fmt.Errorf("config: BUDGET_REVIEW_SYNC_DISTRIBUTED_LOCK exige REDIS_ADDRESS")
	}

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}

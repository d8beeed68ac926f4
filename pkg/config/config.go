package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config groups every setting the server reads at startup.
// Values come from the environment, optionally seeded by a .env file.
type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	Storage  StorageConfig
	JWT      JWTConfig
	Mail     MailConfig
	Export   ExportConfig
	Password PasswordConfig
	Worker   WorkerConfig
}

type AppConfig struct {
	Env          string // development, staging, production
	Name         string
	Port         int
	LogLevel     string
	ClientOrigin string
}

// Addr returns the listen address
func (c AppConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// DBConfig holds PostgreSQL settings. DatabaseURL wins over the discrete fields.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	Name        string
	SSLMode     string
}

func (c DBConfig) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.Name,
		RawQuery: "sslmode=" + c.SSLMode,
	}
	return u.String()
}

type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	QueueName string
}

// Enabled reports whether a Redis address was configured
func (c RedisConfig) Enabled() bool { return c.Addr != "" }

type StorageConfig struct {
	Driver   string // s3 or local
	Bucket   string
	Region   string
	Prefix   string
	LocalDir string
}

type JWTConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

type MailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	Company  string
}

type ExportConfig struct {
	Timezone string
}

// Location resolves the export timezone, falling back to UTC
func (c ExportConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

type PasswordConfig struct {
	BcryptCost int
}

type WorkerConfig struct {
	Count int
}

// Load reads configuration from the environment and an optional .env file
// in the working directory. Environment variables take precedence.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // the file is optional

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Env:          v.GetString("APP_ENV"),
			Name:         v.GetString("APP_NAME"),
			Port:         v.GetInt("PORT"),
			LogLevel:     v.GetString("LOG_LEVEL"),
			ClientOrigin: v.GetString("CLIENT_ORIGIN"),
		},
		DB: DBConfig{
			DatabaseURL: v.GetString("DATABASE_URL"),
			Host:        v.GetString("DB_HOST"),
			Port:        v.GetInt("DB_PORT"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASS"),
			Name:        v.GetString("DB_NAME"),
			SSLMode:     v.GetString("DB_SSLMODE"),
		},
		Redis: RedisConfig{
			Addr:      v.GetString("REDIS_ADDR"),
			Password:  v.GetString("REDIS_PASS"),
			DB:        v.GetInt("REDIS_DB"),
			QueueName: v.GetString("MAIL_QUEUE_NAME"),
		},
		Storage: StorageConfig{
			Driver:   strings.ToLower(v.GetString("STORAGE_DRIVER")),
			Bucket:   v.GetString("AWS_BUCKET"),
			Region:   v.GetString("AWS_REGION"),
			Prefix:   v.GetString("STORAGE_PREFIX"),
			LocalDir: v.GetString("UPLOAD_DIR"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
			Issuer: v.GetString("JWT_ISSUER"),
			TTL:    v.GetDuration("JWT_TTL"),
		},
		Mail: MailConfig{
			Host:     v.GetString("SMTP_HOST"),
			Port:     v.GetInt("SMTP_PORT"),
			User:     v.GetString("SMTP_USER"),
			Password: v.GetString("SMTP_PASS"),
			From:     v.GetString("MAIL_FROM"),
			Company:  v.GetString("COMPANY_NAME"),
		},
		Export: ExportConfig{
			Timezone: v.GetString("EXPORT_TIMEZONE"),
		},
		Password: PasswordConfig{
			BcryptCost: v.GetInt("BCRYPT_COST"),
		},
		Worker: WorkerConfig{
			Count: v.GetInt("MAIL_WORKERS"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "HireTrack API")
	v.SetDefault("PORT", 8080)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CLIENT_ORIGIN", "*")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "hiretrack")
	v.SetDefault("DB_SSLMODE", "disable")

	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("MAIL_QUEUE_NAME", "hiretrack:mail")

	v.SetDefault("STORAGE_DRIVER", "local")
	v.SetDefault("STORAGE_PREFIX", "uploads")
	v.SetDefault("UPLOAD_DIR", "uploads")

	v.SetDefault("JWT_ISSUER", "hiretrack")
	v.SetDefault("JWT_TTL", "168h")

	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("COMPANY_NAME", "Forge India Connect Pvt. Ltd.")

	v.SetDefault("EXPORT_TIMEZONE", "UTC")
	v.SetDefault("BCRYPT_COST", 12)
	v.SetDefault("MAIL_WORKERS", 2)
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case "local", "s3":
	default:
		return fmt.Errorf("config: unsupported STORAGE_DRIVER %q", c.Storage.Driver)
	}
	if c.Storage.Driver == "s3" && c.Storage.Bucket == "" {
		return fmt.Errorf("config: AWS_BUCKET is required when STORAGE_DRIVER=s3")
	}
	if c.Password.BcryptCost < 10 || c.Password.BcryptCost > 14 {
		return fmt.Errorf("config: BCRYPT_COST must be between 10 and 14, got %d", c.Password.BcryptCost)
	}
	if c.JWT.TTL <= 0 {
		return fmt.Errorf("config: JWT_TTL must be positive")
	}
	if c.Worker.Count < 1 {
		c.Worker.Count = 1
	}
	return nil
}

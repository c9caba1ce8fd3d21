package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	DB       DBConfig
	Server   ServerConfig
	Identity IdentityConfig
	Logger   LoggerConfig
	Sentry   SentryConfig
	Env      string
}

type DBConfig struct {
	// URL takes precedence over the discrete fields when set.
	URL      string
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	MaxConns int
}

type ServerConfig struct {
	Port int
}

// IdentityConfig holds the service-account credential for the external
// identity provider. Only ProjectID participates in token verification;
// ClientEmail and PrivateKey are recognized so deployments can supply the
// full credential set.
type IdentityConfig struct {
	ProjectID   string
	ClientEmail string
	PrivateKey  string
}

type LoggerConfig struct {
	Level string
	Env   string
}

type SentryConfig struct {
	DSN string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("db.port", 5432)
	viper.SetDefault("db.max_conns", 10)
	viper.SetDefault("logger.level", "info")

	viper.AutomaticEnv()

	// The config file is optional; environment variables alone are enough.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &Config{
		DB: DBConfig{
			URL:      viper.GetString("db.url"),
			Host:     viper.GetString("db.host"),
			Port:     viper.GetInt("db.port"),
			User:     viper.GetString("db.user"),
			Password: viper.GetString("db.password"),
			DBName:   viper.GetString("db.name"),
			MaxConns: viper.GetInt("db.max_conns"),
		},
		Server: ServerConfig{
			Port: viper.GetInt("server.port"),
		},
		Identity: IdentityConfig{
			ProjectID:   viper.GetString("identity.project_id"),
			ClientEmail: viper.GetString("identity.client_email"),
			PrivateKey:  viper.GetString("identity.private_key"),
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
		},
		Sentry: SentryConfig{
			DSN: viper.GetString("sentry.dsn"),
		},
		Env: viper.GetString("env"),
	}

	// Override with environment variables if set
	if url := os.Getenv("DATABASE_URL"); url != "" {
		config.DB.URL = url
	}
	if host := os.Getenv("DB_HOST"); host != "" {
		config.DB.Host = host
	}
	if port := viper.GetInt("DB_PORT"); port != 0 {
		config.DB.Port = port
	}
	if user := os.Getenv("DB_USER"); user != "" {
		config.DB.User = user
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		config.DB.Password = password
	}
	if dbname := os.Getenv("DB_NAME"); dbname != "" {
		config.DB.DBName = dbname
	}
	if port := viper.GetInt("SERVER_PORT"); port != 0 {
		config.Server.Port = port
	}
	if projectID := os.Getenv("FIREBASE_PROJECT_ID"); projectID != "" {
		config.Identity.ProjectID = projectID
	}
	if clientEmail := os.Getenv("FIREBASE_CLIENT_EMAIL"); clientEmail != "" {
		config.Identity.ClientEmail = clientEmail
	}
	if privateKey := os.Getenv("FIREBASE_PRIVATE_KEY"); privateKey != "" {
		// Keys passed through env often carry literal \n sequences.
		config.Identity.PrivateKey = strings.ReplaceAll(privateKey, `\n`, "\n")
	}
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		config.Sentry.DSN = dsn
	}
	if env := os.Getenv("ENV"); env != "" {
		config.Env = env
	}
	if config.Logger.Env == "" {
		config.Logger.Env = config.Env
	}

	return config, nil
}

// GetDSN builds the Postgres connection string. DATABASE_URL wins when set;
// otherwise the discrete fields are assembled, with TLS required only in
// production deployments.
func (c *Config) GetDSN() string {
	if c.DB.URL != "" {
		return c.DB.URL
	}
	sslMode := "disable"
	if c.Env == "production" {
		sslMode = "require"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DB.User,
		c.DB.Password,
		c.DB.Host,
		c.DB.Port,
		c.DB.DBName,
		sslMode,
	)
}

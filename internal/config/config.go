package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Session  SessionConfig
	Upload   UploadConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	Schema   string
	// MaxOpenConns bounds the connection pool; StatementTimeout is applied
	// per connection, in milliseconds.
	MaxOpenConns     int
	StatementTimeout int
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type SessionConfig struct {
	Secret string
	// EncryptionKey encrypts the session cookie payload; must be 16, 24
	// or 32 bytes.
	EncryptionKey string
	CSRFKey       string
	CookieSecure  bool
}

type UploadConfig struct {
	// Dir is the public static-asset root uploaded images land under.
	Dir string
}

func Load() *Config {
	// .env is optional; real environment variables win either way.
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not read .env file: %v", err)
	}

	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SCHEMA", "public")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DB_STATEMENT_TIMEOUT_MS", 5000)
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("SESSION_SECRET", "dev-session-secret")
	viper.SetDefault("SESSION_ENC_KEY", "dev-session-enc-key-32-bytes-ok!")
	viper.SetDefault("CSRF_KEY", "dev-csrf-key-must-be-32-bytes-00")
	viper.SetDefault("COOKIE_SECURE", false)
	viper.SetDefault("UPLOAD_DIR", "public")

	return &Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
			Env:  viper.GetString("SERVER_ENV"),
		},
		Database: DatabaseConfig{
			Host:             viper.GetString("DB_HOST"),
			Port:             viper.GetString("DB_PORT"),
			User:             viper.GetString("DB_USER"),
			Password:         viper.GetString("DB_PASSWORD"),
			Database:         viper.GetString("DB_DATABASE"),
			Schema:           viper.GetString("DB_SCHEMA"),
			MaxOpenConns:     viper.GetInt("DB_MAX_OPEN_CONNS"),
			StatementTimeout: viper.GetInt("DB_STATEMENT_TIMEOUT_MS"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Session: SessionConfig{
			Secret:        viper.GetString("SESSION_SECRET"),
			EncryptionKey: viper.GetString("SESSION_ENC_KEY"),
			CSRFKey:       viper.GetString("CSRF_KEY"),
			CookieSecure:  viper.GetBool("COOKIE_SECURE"),
		},
		Upload: UploadConfig{
			Dir: viper.GetString("UPLOAD_DIR"),
		},
	}
}

package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

// JWTConfig holds the token signing parameters. SecretKey is loaded once at
// startup and never mutated afterwards.
type JWTConfig struct {
	SecretKey string        `mapstructure:"secretKey"`
	TokenTTL  time.Duration `mapstructure:"tokenTTL"`
	Issuer    string        `mapstructure:"issuer"`
}

// MailConfig configures the SendGrid welcome-mail client.
type MailConfig struct {
	APIKey    string `mapstructure:"apiKey"`
	FromEmail string `mapstructure:"fromEmail"`
	FromName  string `mapstructure:"fromName"`
	Enabled   bool   `mapstructure:"enabled"`
}

// AWSConfig configures the S3 image store.
type AWSConfig struct {
	Bucket   string `mapstructure:"bucket"`
	Region   string `mapstructure:"region"`
	Endpoint string `mapstructure:"endpoint"` // optional, for S3-compatible stores
}

type Config struct {
	Mode         string `mapstructure:"mode"`
	Repositories struct {
		Postgres struct {
			Host     string `mapstructure:"host"`
			Password string `mapstructure:"password"`
			Port     string `mapstructure:"port"`
			Username string `mapstructure:"username"`
			DB       string `mapstructure:"db"`
			SSLMode  string `mapstructure:"sslmode"`
		} `mapstructure:"postgres"`
	} `mapstructure:"repositories"`
	Server struct {
		HTTPPort    string        `mapstructure:"HTTPPort"`
		MetricsPort string        `mapstructure:"metricsPort"`
		Timeout     time.Duration `mapstructure:"HTTPTimeout"`
	} `mapstructure:"server"`
	JWT  JWTConfig  `mapstructure:"jwt"`
	Mail MailConfig `mapstructure:"mail"`
	AWS  AWSConfig  `mapstructure:"aws"`
}

// InitConfig loads config.yml from disk, falling back to the embedded copy,
// then overlays secrets from the environment.
func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("Warning: failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %w", err)
		}
	}

	if err := v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Secrets never live in the yml; the environment wins when set.
	if s := os.Getenv("JWT_SECRET_KEY"); s != "" {
		config.JWT.SecretKey = s
	}
	if s := os.Getenv("POSTGRES_PASSWORD"); s != "" {
		config.Repositories.Postgres.Password = s
	}
	if s := os.Getenv("SENDGRID_API_KEY"); s != "" {
		config.Mail.APIKey = s
	}
	if s := os.Getenv("AWS_BUCKET"); s != "" {
		config.AWS.Bucket = s
	}

	return config, nil
}

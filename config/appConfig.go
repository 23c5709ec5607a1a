package config

import (
	"allegro_sync/config/values"
	"errors"
	"fmt"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
	"io"
	"os"
	"time"
)

type AllegroConfig struct {
	ApiURL      string        `yaml:"api_url" validate:"required,url"`
	Token       string        `yaml:"token"`
	RateLimit   float64       `yaml:"rate_limit" validate:"gt=0"`
	WorkerCount int           `yaml:"worker_count" validate:"gte=1,lte=32"`
	MaxRetries  int           `yaml:"max_retries" validate:"gte=0"`
	Timeout     time.Duration `yaml:"timeout"`
}

type MetricsConfig struct {
	Address string `yaml:"address"`
}

type AppConfig struct {
	Allegro  AllegroConfig       `yaml:"allegro"`
	Postgres PostgresConfig      `yaml:"postgres"`
	Margin   values.MarginConfig `yaml:"margin"`
	Offer    values.OfferValues  `yaml:"offer"`
	Metrics  MetricsConfig       `yaml:"metrics"`
	LogFile  string              `yaml:"log_file"`
}

func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Allegro: AllegroConfig{
			ApiURL:      "https://api.allegro.pl",
			RateLimit:   5,
			WorkerCount: 5,
			MaxRetries:  5,
			Timeout:     60 * time.Second,
		},
		Offer:   values.DefaultOfferValues(),
		Metrics: MetricsConfig{Address: ":9100"},
	}
}

// LoadConfig читает yaml-файл поверх значений по умолчанию, затем применяет переменные окружения.
func LoadConfig(filename string) (*AppConfig, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	config := defaultAppConfig()
	if err := decoder.Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode %s: %w", filename, err)
	}

	config.Postgres = config.Postgres.withEnv()
	config.Allegro.Token = getEnv("ALLEGRO_TOKEN", config.Allegro.Token)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *AppConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

package config

import (
	"os"
)

type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
}

// withEnv - переменные окружения важнее файла, пустые поля получают значения по умолчанию.
func (pc PostgresConfig) withEnv() PostgresConfig {
	return PostgresConfig{
		Host:     getEnv("POSTGRES_HOST", orDefault(pc.Host, "localhost")),
		Port:     getEnv("POSTGRES_PORT", orDefault(pc.Port, "5432")),
		User:     getEnv("POSTGRES_USER", orDefault(pc.User, "postgres")),
		Password: getEnv("POSTGRES_PASSWORD", orDefault(pc.Password, "postgres")),
		DBName:   getEnv("POSTGRES_NAME", orDefault(pc.DBName, "postgres")),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func orDefault(value, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}

package config

import (
	"fmt"
)

type DatabaseConfig interface {
	GetConnectionString() string
}

// GetConnectionString собирает DSN для lib/pq.
func (pc *PostgresConfig) GetConnectionString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		pc.Host, pc.Port, pc.User, pc.Password, pc.DBName)
}

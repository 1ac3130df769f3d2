package config

import (
	"bookcatalog-backend/internal/infrastructure/database"
)

// LoadDatabaseConfig chuyển DatabaseConfig sang DBConfig của infrastructure layer
func LoadDatabaseConfig(cfg DatabaseConfig) *database.DBConfig {
	return &database.DBConfig{
		Host:              cfg.Host,
		Port:              cfg.Port,
		Username:          cfg.User,
		Password:          cfg.Password,
		DBName:            cfg.Database,
		SSLMode:           cfg.SSLMode,
		MaxConns:          int32(cfg.MaxConns),
		MinConns:          int32(cfg.MinConns),
		MaxConnLifetime:   cfg.MaxConnLifetime,
		MaxConnIdleTime:   cfg.MaxConnIdleTime,
		HealthCheckPeriod: cfg.HealthCheckPeriod,
		MaxRetries:        cfg.MaxRetries,
		RetryDelay:        cfg.RetryDelay,
		ConnectTimeout:    cfg.ConnectTimeout,
	}
}

package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPool construye y devuelve un pool de conexiones de solo lectura para el contenido.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	poolCfg, err := parsePoolConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	poolCfg.ConnConfig.RuntimeParams["default_transaction_read_only"] = "on"

	return pgxpool.NewWithConfig(ctx, poolCfg)
}

// NewWritablePool es el pool que usa content_sync para publicar el contenido.
func NewWritablePool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	poolCfg, err := parsePoolConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	return pgxpool.NewWithConfig(ctx, poolCfg)
}

func parsePoolConfig(databaseURL string) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}

	// El contenido se lee al arrancar; con pocas conexiones alcanza.
	poolCfg.MaxConns = 4
	poolCfg.MinConns = 0
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute
	poolCfg.HealthCheckPeriod = 30 * time.Second
	poolCfg.ConnConfig.ConnectTimeout = 5 * time.Second
	return poolCfg, nil
}

// Ping verifica conectividad con la base de datos.
func Ping(ctx context.Context, pool *pgxpool.Pool) error {
	return pool.Ping(ctx)
}

package db

import (
	"bank_backend/internal/migrations"
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// RunMigrations - накатывает встроенные миграции схемы при старте
func RunMigrations(ctx context.Context, dsn string) error {
	dbc, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer dbc.Close()

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}

	return goose.UpContext(ctx, dbc, ".")
}

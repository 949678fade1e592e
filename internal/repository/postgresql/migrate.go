package postgresql

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"

	"github.com/homecare-staffing/nursing-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

//go:embed schema.sql
var schemaSQL string

// Migrate applies the schema. Every statement is idempotent, so it is safe to run on every deploy.
func Migrate(ctx context.Context, db *database.DB) error {
	err := WithTransaction(ctx, db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, schemaSQL); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
		return nil
	})
	if err != nil {
		return database.Wrap("migrate", err)
	}

	slog.Info("Database schema is up to date")
	return nil
}

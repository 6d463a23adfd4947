package main

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

func upMigrations(db *sql.DB) error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("clickhouse"); err != nil {
		return fmt.Errorf("can't set dialect for migrations: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("can't up migrations: %w", err)
	}

	return nil
}

func saveRentStatistics(ctx context.Context, db *sql.DB, currentTime time.Time, rows []rentStatRow) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("can't begin statistics transaction: %w", err)
	}
	defer tx.Rollback()

	batch, err := tx.PrepareContext(ctx, "INSERT INTO rent_stats (date_time, locality, rooms, listings, median_rent)")
	if err != nil {
		return fmt.Errorf("can't prepare statistics SQL statement: %w", err)
	}

	for _, row := range rows {
		_, err := batch.ExecContext(ctx,
			currentTime.UTC(),
			row.Locality,
			row.Rooms,
			uint32(row.Listings),
			row.MedianRent,
		)
		if err != nil {
			return fmt.Errorf("can't add statistics row to batch: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("can't write statistics data: %w", err)
	}

	return nil
}

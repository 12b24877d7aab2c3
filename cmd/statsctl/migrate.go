package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/mlr-stats/stats-api/migrations"
)

var withClickHouse bool

func init() {
	migrateUpCmd.Flags().BoolVar(&withClickHouse, "clickhouse", false, "Also create the ClickHouse analytics tables")

	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	migrateCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(migrateCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		db, err := openSQL()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := migrations.Up(ctx, db); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Postgres schema is up to date")

		if withClickHouse {
			if err := migrateClickHouse(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ClickHouse analytics tables created")
		}
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openSQL()
		if err != nil {
			return err
		}
		defer db.Close()
		return migrations.Down(cmd.Context(), db)
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "List migrations and whether they are applied",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openSQL()
		if err != nil {
			return err
		}
		defer db.Close()

		statuses, err := migrations.Status(cmd.Context(), db)
		if err != nil {
			return err
		}
		for _, s := range statuses {
			applied := "pending"
			if !s.AppliedAt.IsZero() {
				applied = s.AppliedAt.Format("2006-01-02 15:04:05")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-40s %s\n", s.Source.Path, applied)
		}
		return nil
	},
}

func openSQL() (*sql.DB, error) {
	db, err := sql.Open("postgres", postgresURL)
	if err != nil {
		return nil, fmt.Errorf("opening postgres: %w", err)
	}
	return db, nil
}

func migrateClickHouse(ctx context.Context) error {
	if clickhouseURL == "" {
		return fmt.Errorf("--clickhouse-url or CLICKHOUSE_URL is required with --clickhouse")
	}
	opts, err := clickhouse.ParseDSN(clickhouseURL)
	if err != nil {
		return fmt.Errorf("parsing clickhouse url: %w", err)
	}
	conn, err := clickhouse.Open(opts)
	if err != nil {
		return fmt.Errorf("connecting to clickhouse: %w", err)
	}
	defer conn.Close()

	statements, err := migrations.ClickHouseStatements()
	if err != nil {
		return err
	}
	for _, stmt := range statements {
		if err := conn.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("executing %q: %w", stmt[:min(len(stmt), 50)], err)
		}
	}
	return nil
}

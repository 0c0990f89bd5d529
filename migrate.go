package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending SQL migrations from db/",
	Long: "Applies db/*.sql files in name order, skipping ones already recorded in the\n" +
		"migrations table. Each migration and its record run in one transaction.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "no .env file found, using system env vars")
	}

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, os.Getenv("DB_URL"))
	if err != nil {
		return fmt.Errorf("unable to connect to database: %w", err)
	}
	defer conn.Close(ctx)

	files, err := filepath.Glob(filepath.Join("db", "*.sql"))
	if err != nil || len(files) == 0 {
		return fmt.Errorf("no migration files found in db/")
	}
	sort.Strings(files)

	// Already-applied migrations; the table may not exist on a fresh database.
	applied := make(map[string]bool)
	rows, err := conn.Query(ctx, "SELECT migration FROM migrations")
	if err == nil {
		for rows.Next() {
			var name string
			if err := rows.Scan(&name); err == nil {
				applied[name] = true
			}
		}
		rows.Close()
	}

	ran := 0
	for _, f := range files {
		filename := filepath.Base(f)
		if applied[filename] {
			fmt.Fprintf(cmd.OutOrStdout(), "  skip: %s\n", filename)
			continue
		}

		content, err := os.ReadFile(f)
		if err != nil {
			return fmt.Errorf("reading %s: %w", filename, err)
		}

		tx, err := conn.Begin(ctx)
		if err != nil {
			return fmt.Errorf("starting transaction for %s: %w", filename, err)
		}
		if _, err := tx.Exec(ctx, string(content)); err != nil {
			tx.Rollback(ctx)
			return fmt.Errorf("applying %s: %w", filename, err)
		}
		if _, err := tx.Exec(ctx,
			"INSERT INTO migrations (migration) VALUES ($1)", filename); err != nil {
			tx.Rollback(ctx)
			return fmt.Errorf("recording %s: %w", filename, err)
		}
		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("committing %s: %w", filename, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "  apply: %s\n", filename)
		ran++
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Done. %d migration(s) applied.\n", ran)
	return nil
}

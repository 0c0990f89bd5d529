package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Create a dashboard user with daily macro targets",
	Long: "Interactively creates a users row keyed by the chat platform's numeric id.\n" +
		"Empty target inputs fall back to the dashboard defaults.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCreateUser(cmd)
	},
}

func init() {
	rootCmd.AddCommand(createUserCmd)
}

// promptFloat reads one numeric answer, returning fallback on empty input.
func promptFloat(reader *bufio.Reader, cmd *cobra.Command, label string, fallback float64) (float64, error) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [%.0f]: ", label, fallback)
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(line, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%s must be a positive number", label)
	}
	return v, nil
}

func runCreateUser(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "no .env file found, using system env vars")
	}

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, os.Getenv("DB_URL"))
	if err != nil {
		return fmt.Errorf("unable to connect to database: %w", err)
	}
	defer conn.Close(ctx)

	reader := bufio.NewReader(os.Stdin)

	fmt.Fprint(cmd.OutOrStdout(), "Chat user id (numeric): ")
	idLine, _ := reader.ReadString('\n')
	userID, err := strconv.ParseInt(strings.TrimSpace(idLine), 10, 64)
	if err != nil || userID <= 0 {
		return fmt.Errorf("chat user id must be a positive integer")
	}

	calories, err := promptFloat(reader, cmd, "Calorie target", defaultTargets.Calories)
	if err != nil {
		return err
	}
	protein, err := promptFloat(reader, cmd, "Protein target (g)", defaultTargets.ProteinG)
	if err != nil {
		return err
	}
	carbs, err := promptFloat(reader, cmd, "Carbs target (g)", defaultTargets.CarbsG)
	if err != nil {
		return err
	}
	fat, err := promptFloat(reader, cmd, "Fat target (g)", defaultTargets.FatG)
	if err != nil {
		return err
	}

	_, err = conn.Exec(ctx,
		`INSERT INTO users (user_id, calorie_target, protein_target_g, carbs_target_g, fat_target_g)
		 VALUES ($1, $2, $3, $4, $5)`,
		userID, calories, protein, carbs, fat)
	if err != nil {
		return fmt.Errorf("creating user: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nUser created successfully!\n")
	fmt.Fprintf(cmd.OutOrStdout(), "  ID:       %d\n", userID)
	fmt.Fprintf(cmd.OutOrStdout(), "  Targets:  %.0f kcal | P %.0fg | C %.0fg | F %.0fg\n", calories, protein, carbs, fat)
	fmt.Fprintf(cmd.OutOrStdout(), "  Dashboard: /nutrition-dashboard?user_id=%d\n", userID)

	if os.Getenv("BOT_SERVICE_TOKEN") == "" {
		fmt.Fprintf(cmd.OutOrStdout(), "\nBOT_SERVICE_TOKEN is not set; suggested value: %s\n", uuid.NewString())
	}
	return nil
}

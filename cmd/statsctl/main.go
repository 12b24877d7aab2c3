package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mlr-stats/stats-api/internal/config"
)

var (
	postgresURL   string
	clickhouseURL string
)

var rootCmd = &cobra.Command{
	Use:   "statsctl",
	Short: "Operate the league stats database",
	Long: `A command-line tool for applying schema migrations and running the
leaderboard and player stats queries the API serves, printed as JSON.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if postgresURL == "" {
			return fmt.Errorf("--postgres-url or POSTGRES_URL is required")
		}
		return nil
	},
}

func init() {
	// Flags default to the same environment the API reads
	_ = config.LoadDotEnv()

	rootCmd.PersistentFlags().StringVar(&postgresURL, "postgres-url", os.Getenv("POSTGRES_URL"), "Postgres connection URL")
	rootCmd.PersistentFlags().StringVar(&clickhouseURL, "clickhouse-url", os.Getenv("CLICKHOUSE_URL"), "ClickHouse connection URL")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "statsctl: %v\n", err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}

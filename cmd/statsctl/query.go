package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/mlr-stats/stats-api/internal/logic"
)

var (
	leadersParams logic.StatLeadersParams
	playersParams logic.PlayerStatsParams
	playerID      int64
	teamID        int64
)

func init() {
	leadersCmd.Flags().StringVar(&leadersParams.Group, "group", "hitting", "Comma separated stat groups")
	leadersCmd.Flags().StringVar(&leadersParams.Season, "season", "current", "Season number or 'current'")

	playersCmd.Flags().StringVar(&playersParams.Group, "group", "hitting", "Comma separated stat groups")
	playersCmd.Flags().StringSliceVar(&playersParams.Fields, "fields", nil, "Stat columns to return")
	playersCmd.Flags().StringVar(&playersParams.GameType, "game-type", "R", "R (regular season) or P (postseason)")
	playersCmd.Flags().StringVar(&playersParams.Season, "season", "current", "Season number or 'current'")
	playersCmd.Flags().StringVar(&playersParams.SortStat, "sort", "", "Stat column to sort by")
	playersCmd.Flags().StringVar(&playersParams.Order, "order", "desc", "asc or desc")
	playersCmd.Flags().IntVar(&playersParams.Limit, "limit", 25, "Maximum splits per group, 0 for all")
	playersCmd.Flags().Int64Var(&playerID, "player", 0, "Player filter")
	playersCmd.Flags().Int64Var(&teamID, "team", 0, "Team filter")

	rootCmd.AddCommand(leadersCmd)
	rootCmd.AddCommand(playersCmd)
}

var leadersCmd = &cobra.Command{
	Use:   "leaders",
	Short: "Print stat leaders as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStatsService(cmd.Context(), func(svc logic.StatsService) error {
			leaders, err := svc.StatLeaders(cmd.Context(), leadersParams)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]interface{}{"leagueLeaders": leaders})
		})
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "Print player stat splits as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("player") {
			playersParams.PlayerID = &playerID
		}
		if cmd.Flags().Changed("team") {
			playersParams.TeamID = &teamID
		}
		return withStatsService(cmd.Context(), func(svc logic.StatsService) error {
			stats, err := svc.PlayerStats(cmd.Context(), playersParams)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]interface{}{"stats": stats})
		})
	},
}

// withStatsService runs fn against a stats service without the Redis season
// cache; one-off commands always read the current season from Postgres.
func withStatsService(ctx context.Context, fn func(logic.StatsService) error) error {
	pg, err := pgxpool.New(ctx, postgresURL)
	if err != nil {
		return fmt.Errorf("connecting to postgres: %w", err)
	}
	defer pg.Close()

	seasons := logic.NewSeasonResolver(logic.SeasonResolverConfig{Postgres: pg})
	return fn(logic.NewStatsService(logic.NewStatsRepository(pg), seasons))
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

package logic

import (
	"context"
	"fmt"

	"github.com/mlr-stats/stats-api/internal/models"
)

// StatLeadersParams are the raw leaderboard query parameters.
type StatLeadersParams struct {
	Group  string
	Season string
	Type   string
}

// PlayerStatsParams are the raw player stats query parameters.
// Fields is nil to return every stat column.
type PlayerStatsParams struct {
	Fields   []string
	GameType string
	Group    string
	Limit    int
	Order    string
	PlayerID *int64
	Season   string
	SortStat string
	TeamID   *int64
	Type     string
}

type statsService struct {
	repo    StatsRepository
	seasons SeasonResolver
}

func NewStatsService(repo StatsRepository, seasons SeasonResolver) StatsService {
	return &statsService{repo: repo, seasons: seasons}
}

// StatLeaders returns the season leaders of each requested stat group, in request order.
func (s *statsService) StatLeaders(ctx context.Context, params StatLeadersParams) ([]models.StatLeadersGroup, error) {
	if _, err := ParseQueryType(params.Type); err != nil {
		return nil, err
	}
	groups, err := ParseStatGroups(params.Group)
	if err != nil {
		return nil, err
	}
	season, err := s.resolveSeason(ctx, params.Season)
	if err != nil {
		return nil, err
	}

	response := make([]models.StatLeadersGroup, 0, len(groups))
	for _, group := range groups {
		rows, err := s.repo.LeaderboardRows(ctx, group, season)
		if err != nil {
			return nil, err
		}
		response = append(response, models.StatLeadersGroup{
			StatGroup:        group,
			LeaderCategories: GroupLeaders(rows, season),
		})
	}
	return response, nil
}

// PlayerStats returns the splits of each requested stat group, in request order.
func (s *statsService) PlayerStats(ctx context.Context, params PlayerStatsParams) ([]models.PlayerStatsGroup, error) {
	queryType, err := ParseQueryType(params.Type)
	if err != nil {
		return nil, err
	}
	groups, err := ParseStatGroups(params.Group)
	if err != nil {
		return nil, err
	}
	order, err := ParseSortOrder(params.Order)
	if err != nil {
		return nil, err
	}

	readModels := make([]ReadModel, 0, len(groups))
	for _, group := range groups {
		model, err := ResolveReadModel(group, params.GameType)
		if err != nil {
			return nil, err
		}
		readModels = append(readModels, model)
	}

	season, err := s.resolveSeason(ctx, params.Season)
	if err != nil {
		return nil, err
	}

	// The requested sort stat along with a stable ascending season order
	var orderBy []OrderTerm
	if params.SortStat != "" {
		orderBy = append(orderBy, OrderTerm{Field: params.SortStat, Order: order})
	}
	orderBy = append(orderBy, OrderTerm{Field: "season", Order: models.SortAsc})

	response := make([]models.PlayerStatsGroup, 0, len(readModels))
	for _, model := range readModels {
		records, err := s.repo.FindPlayerStats(ctx, PlayerStatsQuery{
			Model:     model,
			Selection: BuildFieldSelection(params.Fields, model.RunningFields()),
			Filter: PlayerStatsFilter{
				Season:   season,
				PlayerID: params.PlayerID,
				TeamID:   params.TeamID,
			},
			Limit:   params.Limit,
			OrderBy: orderBy,
		})
		if err != nil {
			return nil, err
		}

		splits := make([]models.Split, 0, len(records))
		for _, rec := range records {
			split := ToSplit(rec)
			if params.Fields == nil && !model.HasRunningStats() {
				split.Stat = ZeroFillBaseRunning(split.Stat)
			}
			splits = append(splits, split)
		}
		response = append(response, models.PlayerStatsGroup{
			Group:       model.Group,
			Type:        queryType,
			TotalSplits: len(splits),
			Splits:      splits,
		})
	}
	return response, nil
}

func (s *statsService) resolveSeason(ctx context.Context, token string) (*int64, error) {
	season, current, err := ParseSeasonToken(token)
	if err != nil || !current {
		return season, err
	}
	n, err := s.seasons.CurrentSeason(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving current season: %w", err)
	}
	return &n, nil
}

// GroupLeaders buckets leaderboard rows by stat category, keeping the order in
// which categories first appear. Every leader is tagged with the season.
func GroupLeaders(rows []models.LeaderboardRow, season *int64) []models.LeaderCategory {
	categories := make([]models.LeaderCategory, 0)
	index := make(map[string]int)

	for _, row := range rows {
		i, ok := index[row.Stat]
		if !ok {
			i = len(categories)
			index[row.Stat] = i
			categories = append(categories, models.LeaderCategory{
				LeaderCategory: row.Stat,
				Leaders:        []map[string]any{},
			})
		}

		leader := make(map[string]any, len(row.Leader)+1)
		for k, v := range row.Leader {
			leader[k] = v
		}
		if season != nil {
			leader["season"] = *season
		}
		categories[i].Leaders = append(categories[i].Leaders, leader)
	}
	return categories
}

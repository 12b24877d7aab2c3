package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/mlr-stats/stats-api/internal/config"
)

// Config
const (
	playersPerTeam = 12
	pitchersShare  = 4
)

var teamNames = []struct {
	Location, Nickname, Abbreviation, Emoji string
}{
	{"Harbor City", "Comets", "HCC", "☄️"},
	{"Pine Valley", "Owls", "PVO", "🦉"},
	{"Red Mesa", "Coyotes", "RMC", "🐺"},
	{"Lakeshore", "Herons", "LSH", "🪶"},
}

type seed struct {
	seasons []int
	rng     *rand.Rand
	start   time.Time
}

func main() {
	_ = config.LoadDotEnv()

	url := flag.String("postgres-url", os.Getenv("POSTGRES_URL"), "Postgres connection URL")
	first := flag.Int("from", 2021, "First season to generate")
	last := flag.Int("to", time.Now().Year(), "Last season to generate")
	randSeed := flag.Uint64("seed", 42, "Random seed")
	flag.Parse()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()
	log := logger.Sugar()

	if *url == "" {
		log.Fatal("POSTGRES_URL is required")
	}
	if *last < *first {
		log.Fatalw("Invalid season range", "from", *first, "to", *last)
	}

	ctx := context.Background()
	pg, err := pgxpool.New(ctx, *url)
	if err != nil {
		log.Fatalw("Failed to connect to Postgres", "error", err)
	}
	defer pg.Close()

	s := newSeed(*first, *last, *randSeed)
	batch := s.build()

	if err := pg.SendBatch(ctx, batch).Close(); err != nil {
		log.Fatalw("Failed to seed demo data", "error", err)
	}
	log.Infow("Seeded demo data",
		"seasons", len(s.seasons),
		"teams", len(teamNames),
		"statements", batch.Len(),
	)
}

func newSeed(first, last int, randSeed uint64) *seed {
	s := &seed{
		rng:   rand.New(rand.NewPCG(randSeed, randSeed^0x9e3779b97f4a7c15)),
		start: time.Date(first, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	for season := first; season <= last; season++ {
		s.seasons = append(s.seasons, season)
	}
	return s
}

// build queues every insert of the demo data set. Existing rows are left alone.
func (s *seed) build() *pgx.Batch {
	b := &pgx.Batch{}

	for _, season := range s.seasons {
		start := time.Date(season, 3, 28, 0, 0, 0, 0, time.UTC)
		end := time.Date(season, 11, 1, 0, 0, 0, 0, time.UTC)
		b.Queue(`INSERT INTO seasons (season, season_start, season_end) VALUES ($1, $2, $3)
			ON CONFLICT (season) DO NOTHING`, season, start, end)
	}

	for i, t := range teamNames {
		teamID := i + 1
		b.Queue(`INSERT INTO teams (team_id, location, nickname, full_name, team_abbreviation, url_slug,
				current_team_status, valid_from, season_from, division, division_id, league, league_id,
				team_main_color, team_emoji)
			VALUES ($1, $2, $3, $4, $5, $6, 'active', $7, $8, $9, $10, 'Demo League', 1, $11, $12)
			ON CONFLICT DO NOTHING`,
			teamID, t.Location, t.Nickname, t.Location+" "+t.Nickname, t.Abbreviation,
			slug(t.Location+" "+t.Nickname), s.start, s.seasons[0],
			fmt.Sprintf("Division %d", i%2+1), i%2+1,
			fmt.Sprintf("#%06x", s.rng.IntN(0xffffff)), t.Emoji,
		)
	}

	playerID := 0
	for i, t := range teamNames {
		teamID := i + 1
		for n := 0; n < playersPerTeam; n++ {
			playerID++
			name := fmt.Sprintf("%s Player %d", t.Nickname, n+1)
			for _, season := range s.seasons {
				if n < pitchersShare {
					s.queuePitching(b, "player_pitching_stats_season", playerID, name, teamID, season, 1)
					s.queuePitching(b, "player_pitching_stats_postseason", playerID, name, teamID, season, 0.1)
					continue
				}
				s.queueBatting(b, "player_batting_stats_season", playerID, name, teamID, season, 1)
				s.queueBatting(b, "player_batting_stats_postseason", playerID, name, teamID, season, 0.1)

				// Some hitters never ran the bases in a season; their splits are zero-filled
				if s.rng.IntN(5) > 0 {
					s.queueRunning(b, "player_running_stats_season", playerID, name, season, 1)
				}
				if s.rng.IntN(3) == 0 {
					s.queueRunning(b, "player_running_stats_postseason", playerID, name, season, 0.1)
				}
			}
		}
	}
	return b
}

func (s *seed) queueBatting(b *pgx.Batch, table string, playerID int, name string, teamID, season int, scale float64) {
	games := s.scaled(150, scale)
	pa := games*4 + s.rng.IntN(games+1)
	ab := pa - s.rng.IntN(pa/8+1)
	hits := ab * (200 + s.rng.IntN(120)) / 1000
	doubles := hits / 5
	triples := hits / 40
	hr := s.rng.IntN(hits/4 + 1)
	walks := pa - ab
	avg, obp, slg := ratio(hits, ab), ratio(hits+walks, pa), ratio(hits+doubles+2*triples+3*hr, ab)

	b.Queue(fmt.Sprintf(`INSERT INTO %s (player_id, player_name, team_id, team_valid_from, season,
			games, plate_appearances, at_bats, hits, doubles, triples, home_runs, runs_batted_in,
			walks, strikeouts, avg, obp, slg, ops)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		ON CONFLICT (player_id, season) DO NOTHING`, pgx.Identifier{table}.Sanitize()),
		playerID, name, teamID, s.start, season,
		games, pa, ab, hits, doubles, triples, hr, hr*3+s.rng.IntN(30),
		walks, ab/5+s.rng.IntN(20), avg, obp, slg, obp+slg,
	)
}

func (s *seed) queueRunning(b *pgx.Batch, table string, playerID int, name string, season int, scale float64) {
	sb := s.scaled(30, scale)
	b.Queue(fmt.Sprintf(`INSERT INTO %s (player_id, player_name, season, stolen_bases, caught_stealing, runs, pickoffs)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (player_id, season) DO NOTHING`, pgx.Identifier{table}.Sanitize()),
		playerID, name, season, sb, sb/4, s.scaled(90, scale), s.rng.IntN(3),
	)
}

func (s *seed) queuePitching(b *pgx.Batch, table string, playerID int, name string, teamID, season int, scale float64) {
	games := s.scaled(32, scale)
	ip := float64(games*5 + s.rng.IntN(games+1))
	earned := int(ip * (2 + s.rng.Float64()*3) / 9)
	hitsAllowed := int(ip * (0.7 + s.rng.Float64()*0.4))
	walks := int(ip * (0.2 + s.rng.Float64()*0.2))
	era := ratio(earned*9, int(ip))
	whip := ratio(hitsAllowed+walks, int(ip))

	b.Queue(fmt.Sprintf(`INSERT INTO %s (player_id, player_name, team_id, team_valid_from, season,
			games, games_started, wins, losses, saves, innings_pitched, hits_allowed, runs,
			earned_runs, walks, strikeouts, home_runs_allowed, stolen_bases, caught_stealing, era, whip)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		ON CONFLICT (player_id, season) DO NOTHING`, pgx.Identifier{table}.Sanitize()),
		playerID, name, teamID, s.start, season,
		games, games, s.rng.IntN(games/2+1), s.rng.IntN(games/2+1), s.rng.IntN(5), ip, hitsAllowed,
		earned+s.rng.IntN(8), earned, walks, int(ip)+s.rng.IntN(40), s.rng.IntN(int(ip)/20+1),
		s.rng.IntN(games/2+1), s.rng.IntN(games/6+1), era, whip,
	)
}

func (s *seed) scaled(n int, scale float64) int {
	v := int(float64(n)*scale) + s.rng.IntN(int(float64(n)*scale/3)+1)
	return max(v, 1)
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	// Round to three places to fit the numeric columns
	return float64(num*1000/den) / 1000
}

func slug(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			out = append(out, r+'a'-'A')
		case r == ' ':
			out = append(out, '-')
		default:
			out = append(out, r)
		}
	}
	return string(out)
}

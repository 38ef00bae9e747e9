package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/scorewise/predictions-api/internal/domain/league"
	"github.com/scorewise/predictions-api/internal/domain/match"
	"github.com/scorewise/predictions-api/internal/domain/standing"
	"github.com/scorewise/predictions-api/internal/platform/logging"
)

// MatchSyncConfig bounds what the sync jobs pull from the provider.
// MajorLeagueIDs is the per-sport allow-list; leagues outside it are never
// mirrored or given standings.
type MatchSyncConfig struct {
	Sports         []string
	WindowDays     int
	LivePruneAfter time.Duration
	MajorLeagueIDs map[string][]int64
}

func (c MatchSyncConfig) normalized() MatchSyncConfig {
	if len(c.Sports) == 0 {
		c.Sports = []string{match.SportFootball, match.SportBasketball}
	}
	if c.WindowDays <= 0 {
		c.WindowDays = 7
	}
	if c.LivePruneAfter <= 0 {
		c.LivePruneAfter = 2 * time.Hour
	}
	return c
}

// SyncReport aggregates one sync run. Row-level failures are counted, not
// propagated; a report with Errors > 0 still means the run completed.
type SyncReport struct {
	Fetched  int
	Upserted int
	Pruned   int64
	Errors   int
}

type MatchSyncService struct {
	provider  SportsDataProvider
	matches   match.Repository
	leagues   league.Repository
	standings standing.Repository
	cfg       MatchSyncConfig
	logger    *logging.Logger
	now       func() time.Time
}

func NewMatchSyncService(
	provider SportsDataProvider,
	matches match.Repository,
	leagues league.Repository,
	standings standing.Repository,
	cfg MatchSyncConfig,
	logger *logging.Logger,
) *MatchSyncService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchSyncService{
		provider:  provider,
		matches:   matches,
		leagues:   leagues,
		standings: standings,
		cfg:       cfg.normalized(),
		logger:    logger,
		now:       time.Now,
	}
}

// SyncLive mirrors in-play matches for every configured sport, then prunes
// finished live rows older than the configured cutoff. A provider failure for
// one sport does not abort the others.
func (s *MatchSyncService) SyncLive(ctx context.Context) (SyncReport, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchSyncService.SyncLive")
	defer span.End()

	var report SyncReport
	for _, sport := range s.cfg.Sports {
		items, err := s.provider.FetchLiveMatches(ctx, sport)
		if err != nil {
			if ctx.Err() != nil {
				return report, ctx.Err()
			}
			report.Errors++
			s.logger.WarnContext(ctx, "fetch live matches failed, continuing with next sport", "sport", sport, "error", err)
			continue
		}
		report.Fetched += len(items)

		for _, item := range items {
			if err := s.matches.UpsertLive(ctx, s.toDomainMatch(sport, item)); err != nil {
				report.Errors++
				s.logger.WarnContext(ctx, "upsert live match failed", "sport", sport, "match_ref_id", item.MatchRefID, "error", err)
				continue
			}
			report.Upserted++
		}

		cutoff := s.now().UTC().Add(-s.cfg.LivePruneAfter)
		pruned, err := s.matches.PruneFinishedLive(ctx, sport, cutoff)
		if err != nil {
			report.Errors++
			s.logger.WarnContext(ctx, "prune finished live matches failed", "sport", sport, "error", err)
			continue
		}
		report.Pruned += pruned
	}

	return report, nil
}

// SyncFixturesWindow walks a sliding window of upcoming days, one date at a
// time per sport, so the outbound request rate stays bounded.
func (s *MatchSyncService) SyncFixturesWindow(ctx context.Context) (SyncReport, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchSyncService.SyncFixturesWindow")
	defer span.End()

	var report SyncReport
	start := s.now().UTC().Truncate(24 * time.Hour)
	for _, sport := range s.cfg.Sports {
		for offset := 0; offset < s.cfg.WindowDays; offset++ {
			day := start.AddDate(0, 0, offset)
			items, err := s.provider.FetchFixturesByDate(ctx, sport, day)
			if err != nil {
				if ctx.Err() != nil {
					return report, ctx.Err()
				}
				report.Errors++
				s.logger.WarnContext(ctx, "fetch fixtures failed, continuing with next date", "sport", sport, "date", day.Format("2006-01-02"), "error", err)
				continue
			}
			report.Fetched += len(items)

			for _, item := range items {
				if err := s.matches.UpsertUpcoming(ctx, s.toDomainMatch(sport, item)); err != nil {
					report.Errors++
					s.logger.WarnContext(ctx, "upsert upcoming match failed", "sport", sport, "match_ref_id", item.MatchRefID, "error", err)
					continue
				}
				report.Upserted++
			}
		}
	}

	return report, nil
}

// SyncLeaguesAndStandings refreshes the league mirror and replaces standings
// snapshots for every allow-listed league.
func (s *MatchSyncService) SyncLeaguesAndStandings(ctx context.Context) (SyncReport, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchSyncService.SyncLeaguesAndStandings")
	defer span.End()

	var report SyncReport
	for _, sport := range s.cfg.Sports {
		allowed := s.cfg.MajorLeagueIDs[sport]
		if len(allowed) == 0 {
			continue
		}
		allowedSet := make(map[int64]struct{}, len(allowed))
		for _, id := range allowed {
			allowedSet[id] = struct{}{}
		}

		items, err := s.provider.FetchLeagues(ctx, sport)
		if err != nil {
			if ctx.Err() != nil {
				return report, ctx.Err()
			}
			report.Errors++
			s.logger.WarnContext(ctx, "fetch leagues failed, continuing with next sport", "sport", sport, "error", err)
			continue
		}

		for _, item := range items {
			if _, ok := allowedSet[item.LeagueRefID]; !ok {
				continue
			}
			report.Fetched++
			if err := s.leagues.UpsertLeague(ctx, league.League{
				Sport:       sport,
				LeagueRefID: item.LeagueRefID,
				Name:        item.Name,
				Country:     item.Country,
				Season:      item.Season,
				LogoURL:     item.LogoURL,
				LastUpdated: s.now().UTC(),
			}); err != nil {
				report.Errors++
				s.logger.WarnContext(ctx, "upsert league failed", "sport", sport, "league_ref_id", item.LeagueRefID, "error", err)
				continue
			}
			report.Upserted++

			if err := s.syncLeagueDetails(ctx, sport, item); err != nil {
				report.Errors++
				s.logger.WarnContext(ctx, "sync league details failed", "sport", sport, "league_ref_id", item.LeagueRefID, "error", err)
			}
		}
	}

	return report, nil
}

func (s *MatchSyncService) syncLeagueDetails(ctx context.Context, sport string, item ExternalLeague) error {
	teams, err := s.provider.FetchTeamsByLeague(ctx, sport, item.LeagueRefID)
	if err != nil {
		return fmt.Errorf("fetch teams: %w", err)
	}
	domainTeams := make([]league.Team, 0, len(teams))
	for _, t := range teams {
		domainTeams = append(domainTeams, league.Team{
			Sport:       sport,
			TeamRefID:   t.TeamRefID,
			LeagueRefID: t.LeagueRefID,
			Name:        t.Name,
			LogoURL:     t.LogoURL,
			LastUpdated: s.now().UTC(),
		})
	}
	if err := s.leagues.UpsertTeams(ctx, domainTeams); err != nil {
		return fmt.Errorf("upsert teams: %w", err)
	}

	table, err := s.provider.FetchStandings(ctx, sport, item.LeagueRefID)
	if err != nil {
		return fmt.Errorf("fetch standings: %w", err)
	}
	rows := make([]standing.Row, 0, len(table.Rows))
	for _, r := range table.Rows {
		rows = append(rows, standing.Row{
			Position:     r.Position,
			TeamRefID:    r.TeamRefID,
			TeamName:     r.TeamName,
			Played:       r.Played,
			Won:          r.Won,
			Draw:         r.Draw,
			Lost:         r.Lost,
			GoalsFor:     r.GoalsFor,
			GoalsAgainst: r.GoalsAgainst,
			Points:       r.Points,
			Form:         r.Form,
		})
	}
	if err := s.standings.ReplaceTable(ctx, standing.Table{
		Sport:       sport,
		LeagueRefID: item.LeagueRefID,
		LeagueName:  firstNonEmpty(table.LeagueName, item.Name),
		Season:      firstNonEmpty(table.Season, item.Season),
		Rows:        rows,
		UpdatedAt:   s.now().UTC(),
	}); err != nil {
		return fmt.Errorf("replace standings: %w", err)
	}
	return nil
}

func (s *MatchSyncService) toDomainMatch(sport string, item ExternalMatch) match.Match {
	return match.Match{
		Sport:         sport,
		MatchRefID:    item.MatchRefID,
		LeagueRefID:   item.LeagueRefID,
		LeagueName:    item.LeagueName,
		Season:        item.Season,
		HomeTeamRefID: item.HomeTeamRefID,
		AwayTeamRefID: item.AwayTeamRefID,
		HomeTeam:      item.HomeTeam,
		AwayTeam:      item.AwayTeam,
		KickoffAt:     item.KickoffAt,
		Status:        match.NormalizeStatus(item.Status),
		HomeScore:     item.HomeScore,
		AwayScore:     item.AwayScore,
		LastUpdated:   s.now().UTC(),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

package httpapi

import (
	"time"

	"github.com/scorewise/predictions-api/internal/domain/match"
	"github.com/scorewise/predictions-api/internal/domain/prediction"
	"github.com/scorewise/predictions-api/internal/domain/standing"
	"github.com/scorewise/predictions-api/internal/usecase"
)

type predictionDTO struct {
	ID         string `json:"id"`
	Sport      string `json:"sport"`
	MatchRefID int64  `json:"match_ref_id"`
	HomeTeam   string `json:"home_team"`
	AwayTeam   string `json:"away_team"`
	LeagueName string `json:"league_name,omitempty"`
	KickoffAt  string `json:"kickoff_at"`
	Type       string `json:"type"`
	Tip        string `json:"tip"`
	Confidence int    `json:"confidence"`
	Source     string `json:"source"`
	IsVIP      bool   `json:"is_vip"`
	Status     string `json:"status"`
	HomeScore  *int   `json:"home_score,omitempty"`
	AwayScore  *int   `json:"away_score,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

type predictionListDTO struct {
	Predictions []predictionDTO `json:"predictions"`
	Source      string          `json:"source"`
	Message     string          `json:"message,omitempty"`
}

func predictionToDTO(p prediction.Prediction) predictionDTO {
	return predictionDTO{
		ID:         p.ID,
		Sport:      p.Sport,
		MatchRefID: p.MatchRefID,
		HomeTeam:   p.HomeTeam,
		AwayTeam:   p.AwayTeam,
		LeagueName: p.LeagueName,
		KickoffAt:  formatTimestamp(p.KickoffAt),
		Type:       p.Type,
		Tip:        p.Tip,
		Confidence: p.Confidence,
		Source:     p.Source,
		IsVIP:      p.IsVIP,
		Status:     p.Status,
		HomeScore:  p.HomeScore,
		AwayScore:  p.AwayScore,
		Notes:      p.Notes,
	}
}

func predictionListToDTO(list usecase.PredictionList) predictionListDTO {
	items := make([]predictionDTO, 0, len(list.Predictions))
	for _, p := range list.Predictions {
		items = append(items, predictionToDTO(p))
	}
	return predictionListDTO{
		Predictions: items,
		Source:      list.Source,
		Message:     list.Message,
	}
}

type matchDTO struct {
	ID          string `json:"id"`
	Sport       string `json:"sport"`
	MatchRefID  int64  `json:"match_ref_id"`
	LeagueRefID int64  `json:"league_ref_id,omitempty"`
	LeagueName  string `json:"league_name,omitempty"`
	Season      string `json:"season,omitempty"`
	HomeTeam    string `json:"home_team"`
	AwayTeam    string `json:"away_team"`
	KickoffAt   string `json:"kickoff_at"`
	Status      string `json:"status"`
	HomeScore   *int   `json:"home_score,omitempty"`
	AwayScore   *int   `json:"away_score,omitempty"`
	LastUpdated string `json:"last_updated"`
}

func matchToDTO(m match.Match) matchDTO {
	return matchDTO{
		ID:          m.ID,
		Sport:       m.Sport,
		MatchRefID:  m.MatchRefID,
		LeagueRefID: m.LeagueRefID,
		LeagueName:  m.LeagueName,
		Season:      m.Season,
		HomeTeam:    m.HomeTeam,
		AwayTeam:    m.AwayTeam,
		KickoffAt:   formatTimestamp(m.KickoffAt),
		Status:      m.Status,
		HomeScore:   m.HomeScore,
		AwayScore:   m.AwayScore,
		LastUpdated: formatTimestamp(m.LastUpdated),
	}
}

type standingRowDTO struct {
	Position     int    `json:"position"`
	TeamRefID    int64  `json:"team_ref_id"`
	TeamName     string `json:"team_name"`
	Played       int    `json:"played"`
	Won          int    `json:"won"`
	Draw         int    `json:"draw"`
	Lost         int    `json:"lost"`
	GoalsFor     int    `json:"goals_for"`
	GoalsAgainst int    `json:"goals_against"`
	Points       int    `json:"points"`
	Form         string `json:"form,omitempty"`
}

type standingTableDTO struct {
	Sport       string           `json:"sport"`
	LeagueRefID int64            `json:"league_ref_id"`
	LeagueName  string           `json:"league_name"`
	Season      string           `json:"season,omitempty"`
	Rows        []standingRowDTO `json:"rows"`
	UpdatedAt   string           `json:"updated_at"`
}

func standingTableToDTO(t standing.Table) standingTableDTO {
	rows := make([]standingRowDTO, 0, len(t.Rows))
	for _, row := range t.Rows {
		rows = append(rows, standingRowDTO{
			Position:     row.Position,
			TeamRefID:    row.TeamRefID,
			TeamName:     row.TeamName,
			Played:       row.Played,
			Won:          row.Won,
			Draw:         row.Draw,
			Lost:         row.Lost,
			GoalsFor:     row.GoalsFor,
			GoalsAgainst: row.GoalsAgainst,
			Points:       row.Points,
			Form:         row.Form,
		})
	}
	return standingTableDTO{
		Sport:       t.Sport,
		LeagueRefID: t.LeagueRefID,
		LeagueName:  t.LeagueName,
		Season:      t.Season,
		Rows:        rows,
		UpdatedAt:   formatTimestamp(t.UpdatedAt),
	}
}

type syncReportDTO struct {
	Fetched  int   `json:"fetched"`
	Upserted int   `json:"upserted"`
	Pruned   int64 `json:"pruned"`
	Errors   int   `json:"errors"`
}

func syncReportToDTO(report usecase.SyncReport) syncReportDTO {
	return syncReportDTO{
		Fetched:  report.Fetched,
		Upserted: report.Upserted,
		Pruned:   report.Pruned,
		Errors:   report.Errors,
	}
}

func formatTimestamp(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.UTC().Format(time.RFC3339)
}

package match

import (
	"strings"
	"time"
)

const (
	SportFootball   = "football"
	SportBasketball = "basketball"
)

// Match represents one fixture mirrored from the upstream sports API. The same
// shape backs both the live and the upcoming tables; MatchRefID is the
// provider's identifier and the natural key within a sport.
type Match struct {
	ID            string
	Sport         string
	MatchRefID    int64
	LeagueRefID   int64
	LeagueName    string
	Season        string
	HomeTeamRefID int64
	AwayTeamRefID int64
	HomeTeam      string
	AwayTeam      string
	KickoffAt     time.Time
	Status        string
	HomeScore     *int
	AwayScore     *int
	LastUpdated   time.Time
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return "NS"
	}
	return status
}

// IsOpenStatus reports whether the match has not started yet and is therefore
// eligible for pre-match predictions.
func IsOpenStatus(status string) bool {
	switch NormalizeStatus(status) {
	case "NS", "TBD", "SCHEDULED", "NOT_STARTED":
		return true
	default:
		return false
	}
}

func IsLiveStatus(status string) bool {
	switch NormalizeStatus(status) {
	case "LIVE", "IN_PLAY", "HT", "1H", "2H", "ET", "Q1", "Q2", "Q3", "Q4", "OT":
		return true
	default:
		return false
	}
}

func IsFinishedStatus(status string) bool {
	switch NormalizeStatus(status) {
	case "FT", "AET", "PEN", "FINISHED":
		return true
	default:
		return false
	}
}

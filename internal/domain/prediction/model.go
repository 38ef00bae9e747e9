package prediction

import (
	"strings"
	"time"
)

const (
	TypeAll      = "all"
	TypeBanker   = "banker"
	TypeSurprise = "surprise"
	TypeVIP      = "vip"
)

const (
	SourceAI      = "ai"
	SourceAPI     = "highlightly"
	SourceManual  = "manual"
	SourceLiveAPI = "live-api"
)

const (
	StatusPending = "pending"
	StatusWon     = "won"
	StatusLost    = "lost"
	StatusVoid    = "void"
)

// Prediction is one betting tip for a match. A match can carry several
// predictions with different tips; (sport, match_ref_id, tip) is the natural
// key the writer upserts on.
type Prediction struct {
	ID         string
	Sport      string
	MatchRefID int64
	HomeTeam   string
	AwayTeam   string
	LeagueName string
	KickoffAt  time.Time
	Type       string
	Tip        string
	Confidence int
	Source     string
	IsVIP      bool
	IsPublic   bool
	Status     string
	HomeScore  *int
	AwayScore  *int
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Filter narrows List queries. Category filters by prediction type; the
// zero value lists everything public and unexpired.
type Filter struct {
	Sport       string
	Category    string
	IncludeVIP  bool
	IncludePast bool
	Page        int
	Limit       int
}

func IsValidType(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case TypeAll, TypeBanker, TypeSurprise, TypeVIP:
		return true
	default:
		return false
	}
}

func IsValidStatus(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case StatusPending, StatusWon, StatusLost, StatusVoid:
		return true
	default:
		return false
	}
}

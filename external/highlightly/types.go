package highlightly

// Provider payload shapes. Every list endpoint wraps its rows in a data
// envelope; numeric identifiers arrive as JSON numbers.

type listEnvelope[T any] struct {
	Data []T `json:"data"`
}

type matchDTO struct {
	ID       int64     `json:"id"`
	League   leagueDTO `json:"league"`
	HomeTeam teamDTO   `json:"homeTeam"`
	AwayTeam teamDTO   `json:"awayTeam"`
	Date     string    `json:"date"`
	State    stateDTO  `json:"state"`
	Score    *scoreDTO `json:"score"`
}

type leagueDTO struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
	Season  string `json:"season"`
	Logo    string `json:"logo"`
}

type teamDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo"`
}

type stateDTO struct {
	Status      string `json:"status"`
	Description string `json:"description"`
}

type scoreDTO struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

type standingsEnvelope struct {
	League leagueDTO     `json:"league"`
	Groups []standingDTO `json:"standings"`
}

type standingDTO struct {
	Position int     `json:"position"`
	Team     teamDTO `json:"team"`
	Played   int     `json:"played"`
	Won      int     `json:"won"`
	Draw     int     `json:"draw"`
	Lost     int     `json:"lost"`
	Goals    struct {
		For     int `json:"for"`
		Against int `json:"against"`
	} `json:"goals"`
	Points int    `json:"points"`
	Form   string `json:"form"`
}

package models

import "time"

// GameLog is one player's box score line for one game.
// GameDate carries only month and day ("Fri 12/16"); the year comes from Season.
type GameLog struct {
	PlayerName       string    `db:"player_name" json:"player_name" validate:"required"`
	TeamName         string    `db:"team_name" json:"team_name" validate:"required"`
	Season           string    `db:"season" json:"season" validate:"required"`
	GameDate         string    `db:"game_date" json:"game_date" validate:"required"`
	Opponent         string    `db:"opp" json:"opp" validate:"required"`
	Result           string    `db:"result" json:"result" validate:"required"`
	MinutesPlayed    int       `db:"minutes_played" json:"minutes_played" validate:"gte=0"`
	Points           int       `db:"points" json:"points" validate:"gte=0"`
	Rebounds         int       `db:"rebounds" json:"rebounds" validate:"gte=0"`
	Assists          int       `db:"assists" json:"assists" validate:"gte=0"`
	Steals           int       `db:"steals" json:"steals" validate:"gte=0"`
	Blocks           int       `db:"blocks" json:"blocks" validate:"gte=0"`
	Fouls            int       `db:"fouls" json:"fouls" validate:"gte=0"`
	Turnovers        int       `db:"turn_overs" json:"turn_overs" validate:"gte=0"`
	FGMade           int       `db:"fg_made" json:"fg_made" validate:"gte=0"`
	FGAttempted      int       `db:"fg_att" json:"fg_att" validate:"gtefield=FGMade"`
	ThreePtMade      int       `db:"three_pt_made" json:"three_pt_made" validate:"gte=0"`
	ThreePtAttempted int       `db:"three_pt_att" json:"three_pt_att" validate:"gtefield=ThreePtMade"`
	FTMade           int       `db:"ft_made" json:"ft_made" validate:"gte=0"`
	FTAttempted      int       `db:"ft_att" json:"ft_att" validate:"gtefield=FTMade"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

// GameLogKey is the natural key a game log is upserted by.
type GameLogKey struct {
	PlayerName string
	TeamName   string
	Season     string
	GameDate   string
}

// Key returns the natural key of the game log.
func (g *GameLog) Key() GameLogKey {
	return GameLogKey{
		PlayerName: g.PlayerName,
		TeamName:   g.TeamName,
		Season:     g.Season,
		GameDate:   g.GameDate,
	}
}

// PlayerTeam identifies one player on one team.
type PlayerTeam struct {
	PlayerName string `db:"player_name" json:"player_name"`
	TeamName   string `db:"team_name" json:"team_name"`
}

package domain

import "time"

// SportStat is one row of a per-sport summary.
type SportStat struct {
	Sport   Sport `json:"sport"`
	Volume  int64 `json:"volume"`
	Wallets int   `json:"wallets"`
}

// DailyVolume is the bet volume for one (day, sport) pair.
type DailyVolume struct {
	Day    string `json:"day"`
	Sport  Sport  `json:"sport"`
	Volume int64  `json:"volume"`
}

// GameStat is one row of a per-game leaderboard.
type GameStat struct {
	GameName string `json:"game_name"`
	Volume   int64  `json:"volume"`
	Wallets  int    `json:"wallets"`
}

// Report is the finalized output of one rendering pass: everything the
// dashboard page and the JSON API need, already joined and aggregated.
type Report struct {
	GeneratedAt time.Time `json:"generated_at"`

	Markets      int `json:"markets"`
	Transactions int `json:"transactions"`

	Sports            []SportStat   `json:"sports"`
	DailyVolume       []DailyVolume `json:"daily_volume"`
	TopGamesByVolume  []GameStat    `json:"top_games_by_volume"`
	TopGamesByWallets []GameStat    `json:"top_games_by_wallets"`
	Tokens            []TokenVolume `json:"tokens"`
}

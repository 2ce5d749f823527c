package entities

import "time"

// HighScore is a player's best recorded run score
type HighScore struct {
	PlayerID     string    `json:"player_id"`
	Score        int       `json:"score"`
	DateAchieved time.Time `json:"date_achieved"`
}

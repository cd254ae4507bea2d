// Package types contains common types used across the application
package types

// Entry represents a leaderboard entry. Players with equal points share a rank.
type Entry struct {
	Rank   int    `json:"rank"`
	Player string `json:"player"`
	Points int    `json:"points"`
}

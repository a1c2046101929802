package model

import "time"

// PlayerID uniquely identifies a player within a session.
// It is opaque and stable for the lifetime of the player's connection.
type PlayerID string

// Role is a player's secret team, fixed for the whole session
type Role string

const (
	// RoleSaint players try to submit the objectively correct answer
	RoleSaint Role = "SAINT"
	// RoleSinner players try to submit the funniest plausible wrong answer
	RoleSinner Role = "SINNER"
)

// Player represents a game participant
type Player struct {
	ID          PlayerID
	DisplayName string
	Role        Role
	Score       int // only ever increases
	JoinedAt    time.Time
}

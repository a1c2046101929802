package request

// JoinRequest is the request body for joining a session
type JoinRequest struct {
	DisplayName string `json:"display_name"`
	PlayerID    string `json:"player_id,omitempty"`
}

// LeaveRequest is the request body for leaving a session
type LeaveRequest struct {
	PlayerID string `json:"player_id"`
}

// StartRequest is the request body for starting a game
type StartRequest struct {
	HostID string `json:"host_id"`
}

// SkipRequest is the request body for skipping the current phase
type SkipRequest struct {
	HostID string `json:"host_id"`
}

// AnswerRequest is the request body for submitting an answer
type AnswerRequest struct {
	PlayerID string `json:"player_id"`
	Answer   string `json:"answer"`
}

// VoteRequest is the request body for casting a vote
type VoteRequest struct {
	VoterID  string `json:"voter_id"`
	VoteType string `json:"vote_type"`
	AnswerID string `json:"answer_id"`
}

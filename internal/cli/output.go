package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case CreateSessionResult:
		o.printCreateSessionResult(v)
	case JoinResult:
		o.printJoinResult(v)
	case Session:
		o.printSession(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// CreateSessionResult response type (matches API)
type CreateSessionResult struct {
	Code    string `json:"code"`
	HostID  string `json:"host_id"`
	Channel string `json:"channel"`
}

// JoinResult response type
type JoinResult struct {
	PlayerID string `json:"player_id"`
	Role     string `json:"role"`
	Channel  string `json:"channel"`
}

// SessionPlayer response type
type SessionPlayer struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	Score       int    `json:"score"`
	IsHost      bool   `json:"is_host"`
}

// SessionAnswer response type
type SessionAnswer struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Session response type
type Session struct {
	Code          string          `json:"code"`
	Status        string          `json:"status"`
	Phase         string          `json:"phase,omitempty"`
	RoundIndex    int             `json:"round_index"`
	TotalRounds   int             `json:"total_rounds"`
	Clue          string          `json:"clue,omitempty"`
	CorrectAnswer string          `json:"correct_answer,omitempty"`
	Answers       []SessionAnswer `json:"answers,omitempty"`
	Players       []SessionPlayer `json:"players"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printCreateSessionResult(r CreateSessionResult) {
	fmt.Printf("Session: %s\n", r.Code)
	fmt.Printf("Host key: %s\n", r.HostID)
	fmt.Printf("Channel: %s\n", r.Channel)
	fmt.Println("\nKeep the host key secret; it authorises start and skip.")
}

func (o *Output) printJoinResult(r JoinResult) {
	fmt.Printf("Player: %s\n", r.PlayerID)
	fmt.Printf("Role: %s\n", r.Role)
	fmt.Printf("Channel: %s\n", r.Channel)
}

func (o *Output) printSession(s Session) {
	fmt.Printf("Session: %s\n", s.Code)
	fmt.Printf("Status: %s\n", s.Status)
	if s.Phase != "" {
		fmt.Printf("Phase: %s\n", s.Phase)
	}
	if s.TotalRounds > 0 {
		fmt.Printf("Round: %d/%d\n", s.RoundIndex+1, s.TotalRounds)
	}
	if s.Clue != "" {
		fmt.Printf("Clue: %s\n", s.Clue)
	}
	if s.CorrectAnswer != "" {
		fmt.Printf("Correct answer: %s\n", s.CorrectAnswer)
	}
	if len(s.Answers) > 0 {
		fmt.Printf("Answers (%d):\n", len(s.Answers))
		for _, a := range s.Answers {
			fmt.Printf("  - [%s] %s\n", a.ID, a.Text)
		}
	}
	fmt.Printf("Players (%d):\n", len(s.Players))
	for _, p := range s.Players {
		hostStr := ""
		if p.IsHost {
			hostStr = " [host]"
		}
		fmt.Printf("  - %s (%s) - %s, %d pts%s\n", p.DisplayName, p.ID, p.Role, p.Score, hostStr)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}

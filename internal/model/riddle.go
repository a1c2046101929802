package model

// Riddle is an immutable clue/answer pair drawn from the riddle pool
type Riddle struct {
	Clue   string
	Answer string
}

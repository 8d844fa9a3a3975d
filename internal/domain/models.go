package domain

// GameRecord is the slice of the stored game metadata the exporter needs.
type GameRecord struct {
	PIN          string
	Title        string
	NumQuestions int
}

// ScoreTable maps player name to the raw string-encoded point total as it
// sits in Redis. Values are parsed to integers only at render time.
type ScoreTable map[string]string

// AnswerTally accumulates per-player answer counts across all questions.
// Right never exceeds Answered.
type AnswerTally struct {
	Answered int
	Right    int
}

// PlayerStats maps player name to their folded answer tally.
type PlayerStats map[string]*AnswerTally

// AnswerEvent is one recorded response by one player to one question.
type AnswerEvent struct {
	Username string
	Right    bool
}

// DevUser is one shared development account.
type DevUser struct {
	Username string
	Email    string
	Password string
}

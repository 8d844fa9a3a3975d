package domain

// QuizAnswer is one answer option as the editor API represents it.
type QuizAnswer struct {
	Right  bool    `json:"right"`
	Answer string  `json:"answer"`
	Color  *string `json:"color"`
}

// QuizQuestion is one question in the editor API shape. Time is a
// string-encoded number of seconds.
type QuizQuestion struct {
	Question    string       `json:"question"`
	Time        string       `json:"time"`
	Type        string       `json:"type"`
	Answers     []QuizAnswer `json:"answers"`
	Image       *string      `json:"image"`
	HideResults bool         `json:"hide_results"`
}

// Quiz is the subset of the quiz document the sync jobs read and push back.
type Quiz struct {
	ID              string         `json:"id,omitempty"`
	Public          bool           `json:"public"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	CoverImage      *string        `json:"cover_image"`
	BackgroundColor *string        `json:"background_color"`
	BackgroundImage *string        `json:"background_image"`
	Questions       []QuizQuestion `json:"questions"`
}

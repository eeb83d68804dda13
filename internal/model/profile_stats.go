package model

// ProfileStatsPayload is the queue message carrying one finished session's
// contribution to a user's lifetime stats.
type ProfileStatsPayload struct {
	UserID            int `json:"user_id"`
	ScoreDelta        int `json:"score_delta"`
	QuestionsAnswered int `json:"questions_answered"`
	CorrectAnswers    int `json:"correct_answers"`
}

package model

import "time"

type Result struct {
	ID             string    `json:"_id"`
	QuizID         string    `json:"quizId,omitempty"`
	UserID         string    `json:"userId,omitempty"`
	SubmissionID   string    `json:"submissionId"`
	TotalPoints    float64   `json:"totalPoints"`
	Score          float64   `json:"score"`
	CorrectAnswers int       `json:"correctAnswers"`
	WrongAnswers   int       `json:"wrongAnswers"`
	Skipped        int       `json:"skipped"`
	IsPassed       bool      `json:"isPassed"`
	CompletedAt    time.Time `json:"completedAt,omitempty"`
}

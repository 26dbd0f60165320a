package model

import "time"

// Submission lifecycle statuses as reported by the remote service.
const (
	SubmissionStarted   = "started"
	SubmissionAnswering = "answering"
	SubmissionSubmitted = "submitted"
)

type Submission struct {
	ID          string        `json:"_id"`
	ExamID      string        `json:"examId"`
	UserID      string        `json:"userId"`
	Status      string        `json:"status,omitempty"`
	Answers     []SavedAnswer `json:"answers,omitempty"`
	Score       float64       `json:"score,omitempty"`
	Notes       string        `json:"notes,omitempty"`
	TimeElapsed int           `json:"timeElapsed,omitempty"` // seconds
	SubmittedAt time.Time     `json:"submittedAt,omitempty"`
}

type SavedAnswer struct {
	QuestionID string `json:"questionId"`
	Answer     string `json:"answer"`
}

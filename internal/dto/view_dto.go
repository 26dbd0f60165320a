package dto

// View DTOs consumed by the terminal presentation layer.

type ExamSummaryView struct {
	ID                string
	Title             string
	Description       string
	Duration          int
	PassingPercentage float64
	QuestionCount     int
}

type ResultView struct {
	ID             string
	SubmissionID   string
	TotalPoints    float64
	Score          float64
	CorrectAnswers int
	WrongAnswers   int
	Skipped        int
	IsPassed       bool
}

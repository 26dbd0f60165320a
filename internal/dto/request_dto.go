package dto

// AnswerItem is one buffered answer as the save endpoint expects it.
type AnswerItem struct {
	QuestionID string `json:"questionId"`
	Answer     string `json:"answer"`
}

// SaveAnswersRequest carries the full answer buffer. Every save replaces
// the previously saved state for the submission, so resending the same
// buffer is harmless.
type SaveAnswersRequest struct {
	Answers []AnswerItem `json:"answers"`
}

// SubmitRequest finalizes a submission. Both fields are optional on the
// wire; TimeElapsed is in seconds.
type SubmitRequest struct {
	Notes       string `json:"notes,omitempty"`
	TimeElapsed *int   `json:"timeElapsed,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Role     string `json:"role,omitempty"` // "student" or "teacher"
}

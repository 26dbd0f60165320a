package dto

import "github.com/lshigami/Tamarin/internal/model"

// ErrorResponse is the remote service's failure envelope. The message is
// surfaced to callers unmodified when present.
type ErrorResponse struct {
	Message string `json:"message"`
}

// StartExamResponse tolerates both envelope shapes the backend uses:
// a submission nested under "submission" or the submission at top level.
type StartExamResponse struct {
	Submission *model.Submission `json:"submission,omitempty"`
	Exam       *model.Exam       `json:"exam,omitempty"`
	ID         string            `json:"_id,omitempty"`
}

// SubmissionID returns the started submission's identifier, empty when
// the response carried none.
func (r *StartExamResponse) SubmissionID() string {
	if r.Submission != nil && r.Submission.ID != "" {
		return r.Submission.ID
	}
	return r.ID
}

// SubmitResponse tolerates a result nested under "result" or a bare
// top-level identifier.
type SubmitResponse struct {
	Result *model.Result `json:"result,omitempty"`
	ID     string        `json:"_id,omitempty"`
}

// ResultID returns the produced result's identifier, empty when the
// response carried none.
func (r *SubmitResponse) ResultID() string {
	if r.Result != nil && r.Result.ID != "" {
		return r.Result.ID
	}
	return r.ID
}

type AuthResponse struct {
	Message     string     `json:"message"`
	User        model.User `json:"user"`
	AccessToken string     `json:"access_token"`
}

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/lshigami/Tamarin/internal/dto"
	"github.com/lshigami/Tamarin/internal/errs"
)

// GetExam fetches one exam with its questions, raw as the backend
// stores it. Normalization of kinds and options happens in the service
// layer.
func (c *Client) GetExam(ctx context.Context, examID string) (*dto.RawExam, error) {
	body, err := c.do(ctx, http.MethodGet, "/exams/"+examID, nil)
	if err != nil {
		return nil, err
	}
	return decode[dto.RawExam](body, errs.KindUnknown)
}

// ListAvailableExams returns the published exams visible to the current
// student.
func (c *Client) ListAvailableExams(ctx context.Context) ([]dto.RawExam, error) {
	body, err := c.do(ctx, http.MethodGet, "/exams/available", nil)
	if err != nil {
		return nil, err
	}
	var exams []dto.RawExam
	if err := json.Unmarshal(body, &exams); err != nil {
		return nil, errs.Wrap(errs.KindUnknown, "cannot decode exam list", err)
	}
	return exams, nil
}

// StartExam opens a new submission for the exam.
func (c *Client) StartExam(ctx context.Context, examID string) (*dto.StartExamResponse, error) {
	body, err := c.do(ctx, http.MethodPost, "/submissions/start/"+examID, struct{}{})
	if err != nil {
		return nil, asKind(err, errs.KindAttemptStart)
	}
	resp, err := decode[dto.StartExamResponse](body, errs.KindAttemptStart)
	if err != nil {
		return nil, err
	}
	if resp.SubmissionID() == "" {
		return nil, errs.New(errs.KindAttemptStart, fmt.Sprintf("no submission id returned for exam %s", examID))
	}
	return resp, nil
}

// SaveAnswers overwrites the saved answer set for the submission with
// the full buffer in req. Safe to call repeatedly.
func (c *Client) SaveAnswers(ctx context.Context, submissionID string, req dto.SaveAnswersRequest) error {
	if _, err := c.do(ctx, http.MethodPost, "/submissions/"+submissionID+"/save", req); err != nil {
		return asKind(err, errs.KindSave)
	}
	return nil
}

// SubmitExam finalizes the submission and returns the graded result
// reference.
func (c *Client) SubmitExam(ctx context.Context, submissionID string, req dto.SubmitRequest) (*dto.SubmitResponse, error) {
	body, err := c.do(ctx, http.MethodPost, "/submissions/"+submissionID+"/submit", req)
	if err != nil {
		return nil, asKind(err, errs.KindSubmit)
	}
	return decode[dto.SubmitResponse](body, errs.KindSubmit)
}

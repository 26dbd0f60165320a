package client

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/lshigami/Tamarin/internal/errs"
	"github.com/lshigami/Tamarin/internal/model"
)

// GetSubmission fetches one submission by id.
func (c *Client) GetSubmission(ctx context.Context, submissionID string) (*model.Submission, error) {
	body, err := c.do(ctx, http.MethodGet, "/submissions/"+submissionID, nil)
	if err != nil {
		return nil, err
	}
	return decode[model.Submission](body, errs.KindUnknown)
}

// MySubmissions lists the current user's submissions.
func (c *Client) MySubmissions(ctx context.Context) ([]model.Submission, error) {
	body, err := c.do(ctx, http.MethodGet, "/submissions/my-submissions", nil)
	if err != nil {
		return nil, err
	}
	var submissions []model.Submission
	if err := json.Unmarshal(body, &submissions); err != nil {
		return nil, errs.Wrap(errs.KindUnknown, "cannot decode submission list", err)
	}
	return submissions, nil
}

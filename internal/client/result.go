package client

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/lshigami/Tamarin/internal/errs"
	"github.com/lshigami/Tamarin/internal/model"
)

// GetResult fetches one graded result by id.
func (c *Client) GetResult(ctx context.Context, resultID string) (*model.Result, error) {
	body, err := c.do(ctx, http.MethodGet, "/results/"+resultID, nil)
	if err != nil {
		return nil, err
	}
	return decode[model.Result](body, errs.KindUnknown)
}

// MyResults lists the current user's graded results.
func (c *Client) MyResults(ctx context.Context) ([]model.Result, error) {
	body, err := c.do(ctx, http.MethodGet, "/results/user", nil)
	if err != nil {
		return nil, err
	}
	var results []model.Result
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, errs.Wrap(errs.KindUnknown, "cannot decode result list", err)
	}
	return results, nil
}

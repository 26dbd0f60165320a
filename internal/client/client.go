// Package client is the HTTP client for the remote exam service. Every
// call attaches the bearer token from the session store; failures map
// onto the errs taxonomy with the server's message passed through.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lshigami/Tamarin/config"
	"github.com/lshigami/Tamarin/internal/dto"
	"github.com/lshigami/Tamarin/internal/errs"
	"github.com/rs/zerolog/log"
)

// TokenSource supplies the current bearer token, empty when logged out.
type TokenSource interface {
	Token() string
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

func New(cfg *config.Config, tokens TokenSource) *Client {
	timeout := time.Duration(cfg.API.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    cfg.API.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
	}
}

// do performs one request and returns the raw response body. There is no
// retry here on purpose: whether a failed save or submit is retried is
// the caller's decision, and a 401 is a systemic signal, not a blip.
func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, errs.Wrap(errs.KindValidation, "cannot encode request body", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, errs.Wrap(errs.KindNetwork, "cannot build request", err)
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log.Debug().Str("method", method).Str("path", path).Msg("exam service request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("method", method).Str("path", path).Msg("exam service unreachable")
		return nil, errs.Wrap(errs.KindNetwork, "exam service unreachable", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.Wrap(errs.KindNetwork, "cannot read response body", err)
	}

	log.Debug().Str("method", method).Str("path", path).Int("status", resp.StatusCode).Msg("exam service response")

	if resp.StatusCode >= 400 {
		message := envelopeMessage(respBody)
		if message == "" {
			message = fmt.Sprintf("exam service returned status %d", resp.StatusCode)
		}
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return nil, errs.New(errs.KindUnauthorized, message)
		case http.StatusForbidden:
			return nil, errs.New(errs.KindForbidden, message)
		case http.StatusNotFound:
			return nil, errs.New(errs.KindNotFound, message)
		default:
			return nil, errs.New(errs.KindUnknown, message)
		}
	}

	return respBody, nil
}

// envelopeMessage extracts the human-readable message from a failure
// body, empty when the body is not the expected envelope.
func envelopeMessage(body []byte) string {
	var envelope dto.ErrorResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	return envelope.Message
}

// asKind stamps an operation kind onto err while keeping systemic kinds
// (unauthorized, forbidden, not found) and the underlying chain intact.
func asKind(err error, kind errs.Kind) error {
	var e *errs.Error
	if errors.As(err, &e) {
		switch e.Kind {
		case errs.KindUnauthorized, errs.KindForbidden, errs.KindNotFound, errs.KindValidation:
			return err
		}
		return errs.Wrap(kind, e.Message, err)
	}
	return errs.Wrap(kind, err.Error(), err)
}

func decode[T any](body []byte, kind errs.Kind) (*T, error) {
	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, errs.Wrap(kind, "cannot decode exam service response", err)
	}
	return &out, nil
}

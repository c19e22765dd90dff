package twocaptcha

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"
)

// Result is a solved captcha. Immutable once returned.
type Result struct {
	// ID is the vendor task identifier. Keep it around for Report.
	ID string

	// Code is the solved answer. Structured answers (coordinates, canvas)
	// arrive as their raw JSON text.
	Code string

	// Extended holds the extra vendor fields (cookies, useragent, price)
	// when Config.ExtendedResponse is set.
	Extended map[string]any
}

// timeouter lets a captcha type pick a non-default polling deadline.
type timeouter interface {
	solveTimeout(cfg Config) time.Duration
}

// Solve submits the captcha and polls until the answer is ready, the vendor
// reports a terminal failure, or the deadline passes. With Config.Callback
// set, polling is skipped: the returned Result carries the task id only and
// the vendor delivers the answer to the pingback URL.
func (c *Client) Solve(ctx context.Context, captcha Captcha) (*Result, error) {
	id, err := c.Send(ctx, captcha)
	if err != nil {
		return nil, err
	}

	if c.cfg.Callback != "" {
		return &Result{ID: id}, nil
	}

	timeout := c.cfg.DefaultTimeout
	if t, ok := captcha.(timeouter); ok {
		timeout = t.solveTimeout(c.cfg)
	}
	return c.waitResult(ctx, id, timeout)
}

// Send submits the captcha and returns the vendor task id without polling.
// Validation failures surface before anything is sent; a vendor rejection
// surfaces as *SubmissionError.
func (c *Client) Send(ctx context.Context, captcha Captcha) (string, error) {
	params, files, err := captcha.Payload()
	if err != nil {
		return "", err
	}
	for k, v := range c.submitParams() {
		params[k] = v
	}

	env, err := c.api.in(ctx, params, files)
	if err != nil {
		return "", err
	}
	if env.Status != 1 {
		return "", &SubmissionError{Code: env.code(), Text: env.ErrorText}
	}

	id := env.code()
	c.log.Info("captcha task created", slog.String("id", id), slog.String("method", params["method"]))
	return id, nil
}

// GetResult polls the task once. It returns ErrNotReady while the vendor is
// still working, the result when ready, and *SolveError on a terminal code.
func (c *Client) GetResult(ctx context.Context, id string) (*Result, error) {
	params := c.resParams("get")
	params["id"] = id

	env, err := c.api.res(ctx, params)
	if err != nil {
		return nil, err
	}

	switch c.classify.classify(env) {
	case outcomeReady:
		return c.result(id, env), nil
	case outcomePending:
		return nil, ErrNotReady
	default:
		return nil, &SolveError{TaskID: id, Code: env.code()}
	}
}

// waitResult is the polling loop: fixed interval, cooperative cancellation,
// exactly one terminal outcome per task id.
func (c *Client) waitResult(ctx context.Context, id string, timeout time.Duration) (*Result, error) {
	deadline := time.Now().Add(timeout)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		res, err := c.GetResult(ctx, id)
		if err == nil {
			c.log.Info("captcha solved", slog.String("id", id))
			return res, nil
		}
		if !errors.Is(err, ErrNotReady) {
			return nil, err
		}

		if time.Now().After(deadline) {
			return nil, &TimeoutError{TaskID: id, Waited: timeout}
		}

		c.log.Debug("captcha not ready", slog.String("id", id))
		select {
		case <-time.After(c.cfg.PollInterval):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// result builds a Result from a ready envelope.
func (c *Client) result(id string, env envelope) *Result {
	res := &Result{ID: id, Code: env.code()}
	if !c.cfg.ExtendedResponse {
		return res
	}

	var extended map[string]any
	if err := json.Unmarshal(env.raw, &extended); err == nil {
		delete(extended, "status")
		res.Extended = extended
	}
	return res
}

// Package twocaptcha is a client for the 2captcha solving service. A task is
// built from a typed parameter struct, submitted to the vendor, and polled at
// a fixed interval until an answer, a terminal error, or a timeout.
package twocaptcha

import (
	"log/slog"
	"strconv"
)

// Client talks to the captcha solving service. Configuration is fixed at
// construction and every solve call carries its own state, so one Client can
// serve any number of concurrent callers.
type Client struct {
	cfg      Config
	api      *apiClient
	classify *classifier
	log      *slog.Logger
}

// NewClient creates a fully-wired solver client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, &ValidationError{Field: "APIKey", Reason: "required"}
	}
	cfg.defaults()

	return &Client{
		cfg:      cfg,
		api:      newAPIClient(cfg),
		classify: newClassifier(cfg.PendingCodes),
		log:      cfg.Logger,
	}, nil
}

// New creates a client with default configuration for the given API key.
func New(apiKey string) (*Client, error) {
	return NewClient(Config{APIKey: apiKey})
}

// submitParams are attached to every task creation request.
func (c *Client) submitParams() map[string]string {
	params := map[string]string{
		"key":     c.cfg.APIKey,
		"json":    "1",
		"soft_id": strconv.Itoa(c.cfg.SoftID),
	}
	if c.cfg.Callback != "" {
		params["pingback"] = c.cfg.Callback
	}
	return params
}

// resParams builds the base query for a res.php action.
func (c *Client) resParams(action string) map[string]string {
	return map[string]string{
		"key":    c.cfg.APIKey,
		"action": action,
		"json":   "1",
	}
}

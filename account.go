package twocaptcha

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"strconv"
	"strings"
)

// balanceWarnLevel triggers a log warning when funds run low.
const balanceWarnLevel = 5.0

// Balance returns the account balance in USD.
func (c *Client) Balance(ctx context.Context) (float64, error) {
	env, err := c.api.res(ctx, c.resParams("getbalance"))
	if err != nil {
		return 0, err
	}
	if env.Status != 1 {
		return 0, &APIError{Op: "getbalance", Code: env.code(), Text: env.ErrorText}
	}

	balance, perr := strconv.ParseFloat(env.code(), 64)
	if perr != nil {
		return 0, &APIError{Op: "getbalance", Code: "UNPARSABLE_RESPONSE", Text: env.code()}
	}
	if balance < balanceWarnLevel {
		c.log.Warn("account balance low", slog.Float64("balance", balance))
	}
	return balance, nil
}

// Report tells the vendor whether the answer for a solved task was correct.
// Reporting adjusts worker ratings and refunds bad answers.
func (c *Client) Report(ctx context.Context, id string, correct bool) error {
	action := "reportbad"
	if correct {
		action = "reportgood"
	}

	params := c.resParams(action)
	params["id"] = id

	env, err := c.api.res(ctx, params)
	if err != nil {
		return err
	}
	if env.Status != 1 {
		return &APIError{Op: action, Code: env.code(), Text: env.ErrorText}
	}
	return nil
}

// AddPingback registers a callback URL with the vendor. The URL must be
// registered before Config.Callback can point at it.
func (c *Client) AddPingback(ctx context.Context, addr string) error {
	if addr == "" {
		return &ValidationError{Field: "addr", Reason: "required"}
	}

	params := c.resParams("add_pingback")
	params["addr"] = addr

	env, err := c.api.res(ctx, params)
	if err != nil {
		return err
	}
	if env.Status != 1 {
		return &APIError{Op: "add_pingback", Code: env.code(), Text: env.ErrorText}
	}
	return nil
}

// GetPingbacks lists the callback URLs registered with the vendor.
func (c *Client) GetPingbacks(ctx context.Context) ([]string, error) {
	env, err := c.api.res(ctx, c.resParams("get_pingback"))
	if err != nil {
		return nil, err
	}
	if env.Status != 1 {
		return nil, &APIError{Op: "get_pingback", Code: env.code(), Text: env.ErrorText}
	}

	// The vendor has served this as a JSON array, a JSON object keyed by
	// index, and a pipe-separated string. Accept all three.
	var list []string
	if jerr := json.Unmarshal(env.Request, &list); jerr == nil {
		return list, nil
	}
	var keyed map[string]string
	if jerr := json.Unmarshal(env.Request, &keyed); jerr == nil {
		for _, addr := range keyed {
			list = append(list, addr)
		}
		sort.Strings(list)
		return list, nil
	}
	if s := env.code(); s != "" {
		return strings.Split(s, "|"), nil
	}
	return nil, nil
}

// DeletePingback removes a registered callback URL; addr "all" clears every
// registration.
func (c *Client) DeletePingback(ctx context.Context, addr string) error {
	if addr == "" {
		return &ValidationError{Field: "addr", Reason: "required"}
	}

	params := c.resParams("del_pingback")
	params["addr"] = addr

	env, err := c.api.res(ctx, params)
	if err != nil {
		return err
	}
	if env.Status != 1 {
		return &APIError{Op: "del_pingback", Code: env.code(), Text: env.ErrorText}
	}
	return nil
}

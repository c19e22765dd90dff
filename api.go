package twocaptcha

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

const (
	inEndpoint  = "/in.php"  // task creation
	resEndpoint = "/res.php" // results, balance, reporting, pingbacks
)

// envelope is the vendor response body when json=1 is requested.
type envelope struct {
	Status    int             `json:"status"`
	Request   json.RawMessage `json:"request"`
	ErrorText string          `json:"error_text"`

	raw []byte // full body, kept for extended-response parsing
}

// code returns the request field as plain text. Error codes, task ids and
// most answers are JSON strings; structured answers (coordinates, canvas)
// stay as their raw JSON.
func (e envelope) code() string {
	var s string
	if err := json.Unmarshal(e.Request, &s); err == nil {
		return s
	}
	return string(e.Request)
}

// apiClient issues HTTP calls against the vendor endpoints.
type apiClient struct {
	base string
	http *resty.Client
	rl   ratelimit.Limiter
}

func newAPIClient(cfg Config) *apiClient {
	base := cfg.Server
	if !strings.Contains(base, "://") {
		base = "https://" + base
	}

	client := resty.New().
		SetTimeout(cfg.HTTPTimeout).
		SetHeader("User-Agent", "go-twocaptcha")

	return &apiClient{
		base: strings.TrimSuffix(base, "/"),
		http: client,
		rl:   ratelimit.New(cfg.RequestsPerSecond),
	}
}

// in posts a task creation request. Plain form encoding normally, multipart
// when binary attachments are present.
func (a *apiClient) in(ctx context.Context, params map[string]string, files map[string][]byte) (envelope, error) {
	a.rl.Take()

	req := a.http.R().SetContext(ctx)
	if len(files) == 0 {
		req.SetFormData(params)
	} else {
		req.SetMultipartFormData(params)
		for field, content := range files {
			req.SetFileReader(field, field, bytes.NewReader(content))
		}
	}

	resp, err := req.Post(a.base + inEndpoint)
	return a.decode("in.php", resp, err)
}

// res queries the result endpoint used for polling and account operations.
func (a *apiClient) res(ctx context.Context, params map[string]string) (envelope, error) {
	a.rl.Take()

	resp, err := a.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(a.base + resEndpoint)
	return a.decode("res.php", resp, err)
}

func (a *apiClient) decode(op string, resp *resty.Response, err error) (envelope, error) {
	if err != nil {
		return envelope{}, &NetworkError{Op: op, Err: err}
	}
	if resp.IsError() {
		return envelope{}, &NetworkError{
			Op:  op,
			Err: fmt.Errorf("HTTP %d: %s", resp.StatusCode(), truncate(resp.String(), 200)),
		}
	}

	body := []byte(resp.String())
	var env envelope
	if jerr := json.Unmarshal(body, &env); jerr != nil {
		return envelope{}, &APIError{Op: op, Code: "UNPARSABLE_RESPONSE", Text: truncate(resp.String(), 200)}
	}
	env.raw = body
	return env, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

package twocaptcha

import (
	"strconv"
	"time"
)

// ReCaptcha solves Google reCAPTCHA v2 and v3, including enterprise and
// invisible variants.
type ReCaptcha struct {
	SiteKey string
	PageURL string

	// Version is "v2" (default) or "v3".
	Version    string
	Enterprise bool
	Invisible  bool

	// Action and MinScore apply to v3 only.
	Action   string
	MinScore float64

	// DataS is the one-time data-s token some Google properties embed.
	DataS     string
	Domain    string // google.com or recaptcha.net
	Cookies   string
	UserAgent string
	Proxy     *Proxy
}

func (c *ReCaptcha) Payload() (map[string]string, map[string][]byte, error) {
	if err := requireFields("SiteKey", c.SiteKey, "PageURL", c.PageURL); err != nil {
		return nil, nil, err
	}

	version := c.Version
	if version == "" {
		version = "v2"
	}

	params := map[string]string{
		"method":    "userrecaptcha",
		"googlekey": c.SiteKey,
		"pageurl":   c.PageURL,
		"version":   version,
	}
	setFlag(params, "enterprise", c.Enterprise)
	setFlag(params, "invisible", c.Invisible)
	setIf(params, "action", c.Action)
	if c.MinScore > 0 {
		params["min_score"] = strconv.FormatFloat(c.MinScore, 'f', -1, 64)
	}
	setIf(params, "data-s", c.DataS)
	setIf(params, "domain", c.Domain)
	setIf(params, "cookies", c.Cookies)
	setIf(params, "userAgent", c.UserAgent)
	c.Proxy.apply(params)
	return params, nil, nil
}

// reCAPTCHA queues are slower than everything else; use the dedicated budget.
func (c *ReCaptcha) solveTimeout(cfg Config) time.Duration { return cfg.RecaptchaTimeout }

// HCaptcha solves hCaptcha challenges.
type HCaptcha struct {
	SiteKey   string
	PageURL   string
	Invisible bool
	Domain    string
	Data      string // custom rqdata
	UserAgent string
	Proxy     *Proxy
}

func (c *HCaptcha) Payload() (map[string]string, map[string][]byte, error) {
	if err := requireFields("SiteKey", c.SiteKey, "PageURL", c.PageURL); err != nil {
		return nil, nil, err
	}
	params := map[string]string{
		"method":  "hcaptcha",
		"sitekey": c.SiteKey,
		"pageurl": c.PageURL,
	}
	setFlag(params, "invisible", c.Invisible)
	setIf(params, "domain", c.Domain)
	setIf(params, "data", c.Data)
	setIf(params, "userAgent", c.UserAgent)
	c.Proxy.apply(params)
	return params, nil, nil
}

// FunCaptcha solves Arkose Labs FunCaptcha challenges.
type FunCaptcha struct {
	PublicKey  string
	PageURL    string
	ServiceURL string // surl, when the site uses a non-default Arkose host
	UserAgent  string
	// Data holds the site-specific blob values, sent as data[key]=value.
	Data  map[string]string
	Proxy *Proxy
}

func (c *FunCaptcha) Payload() (map[string]string, map[string][]byte, error) {
	if err := requireFields("PublicKey", c.PublicKey, "PageURL", c.PageURL); err != nil {
		return nil, nil, err
	}
	params := map[string]string{
		"method":    "funcaptcha",
		"publickey": c.PublicKey,
		"pageurl":   c.PageURL,
	}
	setIf(params, "surl", c.ServiceURL)
	setIf(params, "userAgent", c.UserAgent)
	for k, v := range c.Data {
		params["data["+k+"]"] = v
	}
	c.Proxy.apply(params)
	return params, nil, nil
}

// GeeTest solves GeeTest v3 challenges. The challenge token is one-time and
// must be fetched fresh from the target site right before submission.
type GeeTest struct {
	GT        string
	Challenge string
	PageURL   string
	APIServer string
	Proxy     *Proxy
}

func (c *GeeTest) Payload() (map[string]string, map[string][]byte, error) {
	if err := requireFields("GT", c.GT, "Challenge", c.Challenge, "PageURL", c.PageURL); err != nil {
		return nil, nil, err
	}
	params := map[string]string{
		"method":    "geetest",
		"gt":        c.GT,
		"challenge": c.Challenge,
		"pageurl":   c.PageURL,
	}
	setIf(params, "api_server", c.APIServer)
	c.Proxy.apply(params)
	return params, nil, nil
}

// GeeTestV4 solves GeeTest v4 (adaptive) challenges.
type GeeTestV4 struct {
	CaptchaID string
	PageURL   string
	Proxy     *Proxy
}

func (c *GeeTestV4) Payload() (map[string]string, map[string][]byte, error) {
	if err := requireFields("CaptchaID", c.CaptchaID, "PageURL", c.PageURL); err != nil {
		return nil, nil, err
	}
	params := map[string]string{
		"method":     "geetest_v4",
		"captcha_id": c.CaptchaID,
		"pageurl":    c.PageURL,
	}
	c.Proxy.apply(params)
	return params, nil, nil
}

// KeyCaptcha solves KeyCaptcha puzzles.
type KeyCaptcha struct {
	UserID         string
	SessionID      string
	WebServerSign  string
	WebServerSign2 string
	PageURL        string
}

func (c *KeyCaptcha) Payload() (map[string]string, map[string][]byte, error) {
	if err := requireFields(
		"UserID", c.UserID,
		"SessionID", c.SessionID,
		"WebServerSign", c.WebServerSign,
		"WebServerSign2", c.WebServerSign2,
		"PageURL", c.PageURL,
	); err != nil {
		return nil, nil, err
	}
	return map[string]string{
		"method":                 "keycaptcha",
		"s_s_c_user_id":          c.UserID,
		"s_s_c_session_id":       c.SessionID,
		"s_s_c_web_server_sign":  c.WebServerSign,
		"s_s_c_web_server_sign2": c.WebServerSign2,
		"pageurl":                c.PageURL,
	}, nil, nil
}

// Capy solves Capy puzzle captchas.
type Capy struct {
	SiteKey   string
	PageURL   string
	APIServer string
}

func (c *Capy) Payload() (map[string]string, map[string][]byte, error) {
	if err := requireFields("SiteKey", c.SiteKey, "PageURL", c.PageURL); err != nil {
		return nil, nil, err
	}
	params := map[string]string{
		"method":     "capy",
		"captchakey": c.SiteKey,
		"pageurl":    c.PageURL,
	}
	setIf(params, "api_server", c.APIServer)
	return params, nil, nil
}

// Turnstile solves Cloudflare Turnstile challenges.
type Turnstile struct {
	SiteKey string
	PageURL string

	// Action, Data and PageData come from the turnstile.render call on
	// challenge pages; standalone widgets leave them empty.
	Action    string
	Data      string
	PageData  string
	UserAgent string
	Proxy     *Proxy
}

func (c *Turnstile) Payload() (map[string]string, map[string][]byte, error) {
	if err := requireFields("SiteKey", c.SiteKey, "PageURL", c.PageURL); err != nil {
		return nil, nil, err
	}
	params := map[string]string{
		"method":  "turnstile",
		"sitekey": c.SiteKey,
		"pageurl": c.PageURL,
	}
	setIf(params, "action", c.Action)
	setIf(params, "data", c.Data)
	setIf(params, "pagedata", c.PageData)
	setIf(params, "userAgent", c.UserAgent)
	c.Proxy.apply(params)
	return params, nil, nil
}

// AmazonWAF solves Amazon WAF challenges.
type AmazonWAF struct {
	SiteKey         string
	IV              string
	Context         string
	PageURL         string
	ChallengeScript string
	CaptchaScript   string
}

func (c *AmazonWAF) Payload() (map[string]string, map[string][]byte, error) {
	if err := requireFields("SiteKey", c.SiteKey, "IV", c.IV, "Context", c.Context, "PageURL", c.PageURL); err != nil {
		return nil, nil, err
	}
	params := map[string]string{
		"method":  "amazon_waf",
		"sitekey": c.SiteKey,
		"iv":      c.IV,
		"context": c.Context,
		"pageurl": c.PageURL,
	}
	setIf(params, "challenge_script", c.ChallengeScript)
	setIf(params, "captcha_script", c.CaptchaScript)
	return params, nil, nil
}

// MTCaptcha solves MTCaptcha challenges.
type MTCaptcha struct {
	SiteKey string
	PageURL string
}

func (c *MTCaptcha) Payload() (map[string]string, map[string][]byte, error) {
	if err := requireFields("SiteKey", c.SiteKey, "PageURL", c.PageURL); err != nil {
		return nil, nil, err
	}
	return map[string]string{
		"method":  "mt_captcha",
		"sitekey": c.SiteKey,
		"pageurl": c.PageURL,
	}, nil, nil
}

// FriendlyCaptcha solves Friendly Captcha challenges.
type FriendlyCaptcha struct {
	SiteKey string
	PageURL string
}

func (c *FriendlyCaptcha) Payload() (map[string]string, map[string][]byte, error) {
	if err := requireFields("SiteKey", c.SiteKey, "PageURL", c.PageURL); err != nil {
		return nil, nil, err
	}
	return map[string]string{
		"method":  "friendly_captcha",
		"sitekey": c.SiteKey,
		"pageurl": c.PageURL,
	}, nil, nil
}

// Tencent solves Tencent captcha challenges.
type Tencent struct {
	AppID   string
	PageURL string
}

func (c *Tencent) Payload() (map[string]string, map[string][]byte, error) {
	if err := requireFields("AppID", c.AppID, "PageURL", c.PageURL); err != nil {
		return nil, nil, err
	}
	return map[string]string{
		"method":  "tencent",
		"app_id":  c.AppID,
		"pageurl": c.PageURL,
	}, nil, nil
}

// AtbCaptcha solves atbCAPTCHA challenges.
type AtbCaptcha struct {
	AppID     string
	APIServer string
	PageURL   string
}

func (c *AtbCaptcha) Payload() (map[string]string, map[string][]byte, error) {
	if err := requireFields("AppID", c.AppID, "APIServer", c.APIServer, "PageURL", c.PageURL); err != nil {
		return nil, nil, err
	}
	return map[string]string{
		"method":     "atb_captcha",
		"app_id":     c.AppID,
		"api_server": c.APIServer,
		"pageurl":    c.PageURL,
	}, nil, nil
}

// CutCaptcha solves CutCaptcha challenges.
type CutCaptcha struct {
	MiseryKey string
	APIKey    string
	PageURL   string
}

func (c *CutCaptcha) Payload() (map[string]string, map[string][]byte, error) {
	if err := requireFields("MiseryKey", c.MiseryKey, "APIKey", c.APIKey, "PageURL", c.PageURL); err != nil {
		return nil, nil, err
	}
	return map[string]string{
		"method":     "cutcaptcha",
		"misery_key": c.MiseryKey,
		"api_key":    c.APIKey,
		"pageurl":    c.PageURL,
	}, nil, nil
}

// DataDome solves DataDome slider pages. The vendor requires the caller's
// proxy and user agent so the answer matches the blocked session.
type DataDome struct {
	CaptchaURL string
	PageURL    string
	UserAgent  string
	Proxy      *Proxy
}

func (c *DataDome) Payload() (map[string]string, map[string][]byte, error) {
	if err := requireFields("CaptchaURL", c.CaptchaURL, "PageURL", c.PageURL, "UserAgent", c.UserAgent); err != nil {
		return nil, nil, err
	}
	if c.Proxy == nil {
		return nil, nil, &ValidationError{Field: "Proxy", Reason: "required"}
	}
	params := map[string]string{
		"method":      "datadome",
		"captcha_url": c.CaptchaURL,
		"pageurl":     c.PageURL,
		"userAgent":   c.UserAgent,
	}
	c.Proxy.apply(params)
	return params, nil, nil
}

// CyberSiARA solves CyberSiARA challenges.
type CyberSiARA struct {
	MasterURLID string
	PageURL     string
	UserAgent   string
}

func (c *CyberSiARA) Payload() (map[string]string, map[string][]byte, error) {
	if err := requireFields("MasterURLID", c.MasterURLID, "PageURL", c.PageURL, "UserAgent", c.UserAgent); err != nil {
		return nil, nil, err
	}
	return map[string]string{
		"method":        "cybersiara",
		"master_url_id": c.MasterURLID,
		"pageurl":       c.PageURL,
		"userAgent":     c.UserAgent,
	}, nil, nil
}

// YandexSmart solves Yandex SmartCaptcha challenges.
type YandexSmart struct {
	SiteKey string
	PageURL string
}

func (c *YandexSmart) Payload() (map[string]string, map[string][]byte, error) {
	if err := requireFields("SiteKey", c.SiteKey, "PageURL", c.PageURL); err != nil {
		return nil, nil, err
	}
	return map[string]string{
		"method":  "yandex",
		"sitekey": c.SiteKey,
		"pageurl": c.PageURL,
	}, nil, nil
}

// Lemin solves Lemin Cropped captchas.
type Lemin struct {
	CaptchaID string
	DivID     string
	PageURL   string
	APIServer string
}

func (c *Lemin) Payload() (map[string]string, map[string][]byte, error) {
	if err := requireFields("CaptchaID", c.CaptchaID, "DivID", c.DivID, "PageURL", c.PageURL); err != nil {
		return nil, nil, err
	}
	params := map[string]string{
		"method":     "lemin",
		"captcha_id": c.CaptchaID,
		"div_id":     c.DivID,
		"pageurl":    c.PageURL,
	}
	setIf(params, "api_server", c.APIServer)
	return params, nil, nil
}

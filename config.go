package twocaptcha

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the solver client. It is read once by
// NewClient and never mutated afterwards, so a single client built from it is
// safe to share across concurrent Solve calls.
type Config struct {
	// APIKey is the vendor account key. Required.
	APIKey string `mapstructure:"api_key"`

	// Server is the vendor host. A bare host gets the https scheme; a value
	// with a scheme is used verbatim.
	// Default: 2captcha.com
	Server string `mapstructure:"server"`

	// SoftID identifies the submitting software to the vendor.
	SoftID int `mapstructure:"soft_id"`

	// Callback is a pingback URL registered with the vendor. When set, Solve
	// returns right after submission and the vendor delivers the answer to
	// the callback instead of being polled. Register it with AddPingback
	// first.
	Callback string `mapstructure:"callback"`

	// DefaultTimeout bounds the polling wait for most captcha types.
	DefaultTimeout time.Duration `mapstructure:"default_timeout"`

	// RecaptchaTimeout bounds the polling wait for reCAPTCHA tasks, which the
	// vendor solves noticeably slower than image captchas.
	RecaptchaTimeout time.Duration `mapstructure:"recaptcha_timeout"`

	// PollInterval is the fixed delay between result polls.
	PollInterval time.Duration `mapstructure:"poll_interval"`

	// HTTPTimeout bounds each individual HTTP request.
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`

	// RequestsPerSecond caps outbound requests to the vendor across all
	// concurrent solve calls on one client.
	RequestsPerSecond int `mapstructure:"requests_per_second"`

	// ExtendedResponse asks the vendor for the extended answer payload
	// (cookies, useragent, price) on top of the answer text.
	ExtendedResponse bool `mapstructure:"extended_response"`

	// PendingCodes extends the set of vendor codes treated as "not ready
	// yet" by the response classifier.
	PendingCodes []string `mapstructure:"pending_codes"`

	// Logger overrides the default slog logger.
	Logger *slog.Logger `mapstructure:"-"`
}

// defaults fills in zero-value config fields with sensible defaults.
func (cfg *Config) defaults() {
	if cfg.Server == "" {
		cfg.Server = "2captcha.com"
	}
	if cfg.SoftID == 0 {
		cfg.SoftID = 4580
	}
	if cfg.DefaultTimeout == 0 {
		cfg.DefaultTimeout = 120 * time.Second
	}
	if cfg.RecaptchaTimeout == 0 {
		cfg.RecaptchaTimeout = 600 * time.Second
	}
	if cfg.PollInterval == 0 {
		cfg.PollInterval = 10 * time.Second
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = 30 * time.Second
	}
	if cfg.RequestsPerSecond == 0 {
		cfg.RequestsPerSecond = 10
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
}

// LoadConfig reads configuration from an optional twocaptcha.yaml in the
// working directory with TWOCAPTCHA_* environment variable overrides, e.g.
// TWOCAPTCHA_API_KEY.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetConfigName("twocaptcha")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetDefault("server", "2captcha.com")
	v.SetDefault("soft_id", 4580)
	v.SetDefault("default_timeout", "120s")
	v.SetDefault("recaptcha_timeout", "600s")
	v.SetDefault("poll_interval", "10s")
	v.SetDefault("http_timeout", "30s")
	v.SetDefault("requests_per_second", 10)

	v.SetEnvPrefix("twocaptcha")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Keys without defaults must be bound explicitly for env lookup.
	for _, key := range []string{"api_key", "callback", "extended_response"} {
		if err := v.BindEnv(key); err != nil {
			return Config{}, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unable to decode config: %w", err)
	}
	return cfg, nil
}

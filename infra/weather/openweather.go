// Package weather fetches current conditions near the causeway from
// OpenWeatherMap. The client always fails open: callers receive default
// tropical conditions when the API is unreachable.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/causewaylab/crossing/core/feature"
	"github.com/causewaylab/crossing/core/logger"
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

// Johor Bahru causeway area.
const (
	jbLat = 1.4655
	jbLon = 103.7578
)

// Config defines the OpenWeatherMap client settings.
type Config struct {
	APIKey         string `json:"api_key"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 5
	}
}

// Client implements feature.WeatherSource against OpenWeatherMap.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	log     logger.Logger
}

// NewClient builds a Client. Returns nil when no API key is configured so
// the caller can wire the nil source and rely on feature defaults.
func NewClient(cfg Config, log logger.Logger) *Client {
	if cfg.APIKey == "" {
		return nil
	}
	cfg.SetDefaults()
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		log:     log,
	}
}

type currentResponse struct {
	Rain struct {
		OneHour float64 `json:"1h"`
	} `json:"rain"`
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
}

// Current returns the current weather for the JB causeway area.
func (c *Client) Current(ctx context.Context) (feature.Weather, error) {
	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%.4f", jbLat))
	q.Set("lon", fmt.Sprintf("%.4f", jbLon))
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return feature.DefaultWeather, fmt.Errorf("build weather request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return feature.DefaultWeather, fmt.Errorf("fetch weather: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return feature.DefaultWeather, fmt.Errorf("weather API status %d", resp.StatusCode)
	}
	var body currentResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return feature.DefaultWeather, fmt.Errorf("decode weather response: %w", err)
	}
	return feature.Weather{RainMM: body.Rain.OneHour, TempC: body.Main.Temp}, nil
}

// WithBaseURL overrides the API endpoint, used by tests.
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = u
	return c
}

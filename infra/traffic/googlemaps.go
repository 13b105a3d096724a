// Package traffic implements the live-traffic collaborators: the Google
// Maps Distance Matrix API for the real-time multiplier and the LTA
// DataMall API for checkpoint cameras and speed bands. Both are fail-open
// sources; errors degrade to "no reading", never abort a prediction.
package traffic

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/causewaylab/crossing/core/logger"
	"github.com/causewaylab/crossing/core/model"
)

const distanceMatrixURL = "https://maps.googleapis.com/maps/api/distancematrix/json"

// Config defines the live-traffic client settings.
type Config struct {
	GoogleAPIKey   string `json:"google_api_key"`
	LTAAccountKey  string `json:"lta_account_key"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 10
	}
}

// Checkpoint coordinates on both sides of the two crossings.
var locations = map[string]string{
	"singapore_woodlands": "1.4437,103.7854",
	"singapore_tuas":      "1.3480,103.6369",
	"jb_woodlands":        "1.4655,103.7578",
	"jb_tuas":             "1.3539,103.6360",
}

// GoogleMapsSource implements traffic.LiveSource using the Distance
// Matrix API with departure_time=now.
type GoogleMapsSource struct {
	apiKey  string
	baseURL string
	http    *http.Client
	log     logger.Logger
}

// NewGoogleMapsSource builds a source. Returns nil when no API key is
// configured; the pipeline then runs without live adjustment.
func NewGoogleMapsSource(cfg Config, log logger.Logger) *GoogleMapsSource {
	if cfg.GoogleAPIKey == "" {
		return nil
	}
	cfg.SetDefaults()
	return &GoogleMapsSource{
		apiKey:  cfg.GoogleAPIKey,
		baseURL: distanceMatrixURL,
		http:    &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		log:     log,
	}
}

type matrixResponse struct {
	Status string `json:"status"`
	Rows   []struct {
		Elements []struct {
			Status   string `json:"status"`
			Duration struct {
				Value int `json:"value"`
			} `json:"duration"`
			DurationInTraffic struct {
				Value int `json:"value"`
			} `json:"duration_in_traffic"`
		} `json:"elements"`
	} `json:"rows"`
}

// Multiplier returns duration_in_traffic/duration for the route through
// the checkpoint. ok is false when the API yields no usable reading.
func (g *GoogleMapsSource) Multiplier(ctx context.Context, origin, destination model.Location, checkpoint model.Checkpoint) (float64, bool, error) {
	var from, to string
	if origin == model.LocationSingapore {
		from = locations["singapore_"+checkpoint.String()]
		to = locations["jb_"+checkpoint.String()]
	} else {
		from = locations["jb_"+checkpoint.String()]
		to = locations["singapore_"+checkpoint.String()]
	}

	q := url.Values{}
	q.Set("origins", from)
	q.Set("destinations", to)
	q.Set("departure_time", "now")
	q.Set("traffic_model", "best_guess")
	q.Set("key", g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return 0, false, fmt.Errorf("build distance matrix request: %w", err)
	}
	resp, err := g.http.Do(req)
	if err != nil {
		return 0, false, fmt.Errorf("fetch distance matrix: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return 0, false, fmt.Errorf("distance matrix status %d", resp.StatusCode)
	}
	var body matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, false, fmt.Errorf("decode distance matrix response: %w", err)
	}
	if body.Status != "OK" || len(body.Rows) == 0 || len(body.Rows[0].Elements) == 0 {
		return 0, false, fmt.Errorf("distance matrix API status %q", body.Status)
	}
	el := body.Rows[0].Elements[0]
	if el.Status != "OK" || el.Duration.Value <= 0 {
		return 0, false, fmt.Errorf("route not found: %q", el.Status)
	}
	if el.DurationInTraffic.Value <= 0 {
		// No traffic-aware duration published for this route right now.
		return 0, false, nil
	}
	return float64(el.DurationInTraffic.Value) / float64(el.Duration.Value), true, nil
}

// WithBaseURL overrides the API endpoint, used by tests.
func (g *GoogleMapsSource) WithBaseURL(u string) *GoogleMapsSource {
	g.baseURL = u
	return g
}

package traffic

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/causewaylab/crossing/core/logger"
	"github.com/causewaylab/crossing/core/model"
)

const ltaBaseURL = "http://datamall2.mytransport.sg/ltaodataservice"

// Traffic cameras near each checkpoint, keyed by LTA camera ID.
var checkpointCameras = map[model.Checkpoint][]string{
	model.CheckpointWoodlands: {"2701", "2702", "2703", "2704", "2705"},
	model.CheckpointTuas:      {"4703", "4704", "4705", "4706", "4707", "4708"},
}

// Camera is one LTA traffic camera image reference.
type Camera struct {
	CameraID  string  `json:"CameraID"`
	Latitude  float64 `json:"Latitude"`
	Longitude float64 `json:"Longitude"`
	ImageLink string  `json:"ImageLink"`
}

// LTAClient queries the LTA DataMall API.
type LTAClient struct {
	accountKey string
	baseURL    string
	http       *http.Client
	log        logger.Logger
}

// NewLTAClient builds a client. Returns nil when no account key is
// configured.
func NewLTAClient(cfg Config, log logger.Logger) *LTAClient {
	if cfg.LTAAccountKey == "" {
		return nil
	}
	cfg.SetDefaults()
	return &LTAClient{
		accountKey: cfg.LTAAccountKey,
		baseURL:    ltaBaseURL,
		http:       &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		log:        log,
	}
}

func (l *LTAClient) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build LTA request: %w", err)
	}
	req.Header.Set("AccountKey", l.accountKey)
	resp, err := l.http.Do(req)
	if err != nil {
		return fmt.Errorf("fetch LTA %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("LTA API status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode LTA response: %w", err)
	}
	return nil
}

// Cameras returns the traffic camera images near the checkpoint.
func (l *LTAClient) Cameras(ctx context.Context, checkpoint model.Checkpoint) ([]Camera, error) {
	var body struct {
		Value []Camera `json:"value"`
	}
	if err := l.get(ctx, "/Traffic-Imagesv2", &body); err != nil {
		return nil, err
	}
	wanted := map[string]bool{}
	for _, id := range checkpointCameras[checkpoint] {
		wanted[id] = true
	}
	var out []Camera
	for _, cam := range body.Value {
		if wanted[cam.CameraID] {
			out = append(out, cam)
		}
	}
	return out, nil
}

// SpeedBand is one road segment speed reading.
type SpeedBand struct {
	LinkID    string  `json:"LinkID"`
	RoadName  string  `json:"RoadName"`
	SpeedBand int     `json:"SpeedBand"`
	MinSpeed  float64 `json:"MinimumSpeed,string"`
	MaxSpeed  float64 `json:"MaximumSpeed,string"`
}

// SpeedBands returns the current traffic speed bands.
func (l *LTAClient) SpeedBands(ctx context.Context) ([]SpeedBand, error) {
	var body struct {
		Value []SpeedBand `json:"value"`
	}
	if err := l.get(ctx, "/TrafficSpeedBandsv2", &body); err != nil {
		return nil, err
	}
	return body.Value, nil
}

// WithBaseURL overrides the API endpoint, used by tests.
func (l *LTAClient) WithBaseURL(u string) *LTAClient {
	l.baseURL = u
	return l
}

package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/causewaylab/crossing/core/record"
)

// CrossingSubmission is a user-reported completed crossing.
type CrossingSubmission struct {
	Checkpoint        string  `json:"checkpoint"`
	Origin            string  `json:"origin"`
	Destination       string  `json:"destination"`
	Mode              string  `json:"mode"`
	TravelTimeMinutes float64 `json:"travel_time_minutes"`
	WaitTimeMinutes   float64 `json:"wait_time_minutes"`
	PredictedMinutes  float64 `json:"predicted_time_minutes,omitempty"`
}

func (h *Handler) submitCrossing(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeError(w, http.StatusServiceUnavailable, "crossing storage is not configured")
		return
	}
	var body CrossingSubmission
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.Checkpoint == "" || body.TravelTimeMinutes <= 0 {
		writeError(w, http.StatusBadRequest, "checkpoint and a positive travel_time_minutes are required")
		return
	}
	now := time.Now()
	c := record.Crossing{
		Timestamp:         now,
		Checkpoint:        body.Checkpoint,
		Origin:            body.Origin,
		Destination:       body.Destination,
		Mode:              body.Mode,
		TravelTimeMinutes: body.TravelTimeMinutes,
		WaitTimeMinutes:   body.WaitTimeMinutes,
		TotalTimeMinutes:  body.TravelTimeMinutes + body.WaitTimeMinutes,
		DayOfWeek:         (int(now.Weekday()) + 6) % 7,
		HourOfDay:         now.Hour(),
		PredictedMinutes:  body.PredictedMinutes,
	}
	if body.PredictedMinutes > 0 {
		c.PredictionErrorMin = c.TotalTimeMinutes - body.PredictedMinutes
	}
	if err := h.store.AddCrossing(r.Context(), c); err != nil {
		h.log.Errorf("store crossing: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to store crossing")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "recorded"})
}

func (h *Handler) recentCrossings(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeError(w, http.StatusServiceUnavailable, "crossing storage is not configured")
		return
	}
	q := record.Query{
		Checkpoint: r.URL.Query().Get("checkpoint"),
		Limit:      100,
	}
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > 1000 {
			writeError(w, http.StatusBadRequest, "limit must be an integer in [1,1000]")
			return
		}
		q.Limit = n
	}
	if s := r.URL.Query().Get("since"); s != "" {
		since, err := time.Parse(time.RFC3339, s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "since must be RFC3339")
			return
		}
		q.Since = since
	}
	crossings, err := h.store.RecentCrossings(r.Context(), q)
	if err != nil {
		h.log.Errorf("query crossings: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to query crossings")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"count": len(crossings), "crossings": crossings})
}

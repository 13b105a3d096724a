package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/causewaylab/crossing/core/model"
	"github.com/causewaylab/crossing/pkg/export"
)

const (
	defaultHistoricalDays = 30
	maxHistoricalDays     = 90
)

type historicalQuery struct {
	days        int
	origin      model.Location
	destination model.Location
	checkpoint  model.Checkpoint
}

func parseHistoricalQuery(r *http.Request) (historicalQuery, error) {
	q := historicalQuery{
		days:        defaultHistoricalDays,
		origin:      model.LocationSingapore,
		destination: model.LocationJB,
		checkpoint:  model.CheckpointWoodlands,
	}
	var err error
	if s := r.URL.Query().Get("days"); s != "" {
		q.days, err = strconv.Atoi(s)
		if err != nil || q.days < 1 || q.days > maxHistoricalDays {
			return q, fmt.Errorf("days must be an integer in [1,%d]", maxHistoricalDays)
		}
	}
	if s := r.URL.Query().Get("origin"); s != "" {
		if q.origin, err = model.ParseLocation(s); err != nil {
			return q, err
		}
	}
	if s := r.URL.Query().Get("destination"); s != "" {
		if q.destination, err = model.ParseLocation(s); err != nil {
			return q, err
		}
	}
	if s := r.URL.Query().Get("checkpoint"); s != "" {
		if q.checkpoint, err = model.ParseCheckpoint(s); err != nil {
			return q, err
		}
	}
	return q, nil
}

// historical serves the synthesised travel-time series as JSON, or CSV when
// format=csv is given.
func (h *Handler) historical(w http.ResponseWriter, r *http.Request) {
	q, err := parseHistoricalQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	points := h.engine.Historical(r.Context(), q.days, q.origin, q.destination, q.checkpoint)
	if r.URL.Query().Get("format") == "csv" {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="historical.csv"`)
		if err := export.WriteHistoricalCSV(w, points); err != nil {
			h.log.Errorf("write historical csv: %v", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"days":       q.days,
		"checkpoint": q.checkpoint.String(),
		"direction":  directionOf(q.origin).String(),
		"data":       points,
	})
}

// historicalChart renders the series as an HTML line chart.
func (h *Handler) historicalChart(w http.ResponseWriter, r *http.Request) {
	q, err := parseHistoricalQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	points := h.engine.Historical(r.Context(), q.days, q.origin, q.destination, q.checkpoint)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Crossing time at %s", q.checkpoint),
			Subtitle: fmt.Sprintf("%s to %s, past %d days", q.origin, q.destination, q.days),
		}),
		charts.WithYAxisOpts(opts.YAxis{Name: "minutes"}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
	)
	labels := make([]string, 0, len(points))
	data := make([]opts.LineData, 0, len(points))
	for _, p := range points {
		labels = append(labels, fmt.Sprintf("%s %02d:00", p.Date, p.Hour))
		data = append(data, opts.LineData{Value: p.AvgMinutes})
	}
	line.SetXAxis(labels).AddSeries("avg travel time", data)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := line.Render(w); err != nil {
		h.log.Errorf("render historical chart: %v", err)
	}
}

func directionOf(origin model.Location) model.Direction {
	if origin == model.LocationSingapore {
		return model.DirectionSGToJB
	}
	return model.DirectionJBToSG
}

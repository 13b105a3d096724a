// Package export writes stored crossing records and historical series in
// JSON or CSV form.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/causewaylab/crossing/core/model"
	"github.com/causewaylab/crossing/core/record"
)

// WriteCrossingsJSON writes the crossings to w in JSON format.
func WriteCrossingsJSON(w io.Writer, crossings []record.Crossing) error {
	return json.NewEncoder(w).Encode(crossings)
}

// WriteCrossingsCSV writes the crossings to w in CSV format.
func WriteCrossingsCSV(w io.Writer, crossings []record.Crossing) error {
	cw := csv.NewWriter(w)
	header := []string{
		"id", "timestamp", "checkpoint", "origin", "destination", "mode",
		"travel_time_minutes", "wait_time_minutes", "total_time_minutes",
		"congestion_level", "predicted_time_minutes",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, c := range crossings {
		rec := []string{
			c.ID,
			c.Timestamp.Format(time.RFC3339),
			c.Checkpoint,
			c.Origin,
			c.Destination,
			c.Mode,
			formatFloat(c.TravelTimeMinutes),
			formatFloat(c.WaitTimeMinutes),
			formatFloat(c.TotalTimeMinutes),
			c.CongestionLevel,
			formatFloat(c.PredictedMinutes),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteHistoricalCSV writes the historical series to w in CSV format.
func WriteHistoricalCSV(w io.Writer, points []model.HistoricalPoint) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "hour", "avg_travel_time", "congestion_level"}); err != nil {
		return err
	}
	for _, p := range points {
		rec := []string{
			p.Date,
			strconv.Itoa(p.Hour),
			formatFloat(p.AvgMinutes),
			p.Congestion.String(),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

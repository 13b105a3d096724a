// Package congestion classifies a predicted travel time into a severity
// tier and composes the user-facing alert text.
package congestion

import (
	"strings"

	"github.com/causewaylab/crossing/core/model"
)

// BaseMinutes is the free-flow reference travel time.
const BaseMinutes = 30.0

// Alert texts. The holiday notice is appended to any congestion alert or
// stands alone.
const (
	severeAlert  = "Severe congestion expected. Consider alternative timing."
	peakAlert    = "Heavy traffic during peak hours. Plan extra time."
	holidayAlert = "Holiday period - expect increased traffic at borders."
)

// Classify maps predicted/base to a tier. Thresholds are strict on the low
// side: a ratio of exactly 1.2 is moderate, not low.
func Classify(predicted, base float64) model.CongestionLevel {
	ratio := predicted / base
	switch {
	case ratio < 1.2:
		return model.CongestionLow
	case ratio < 1.5:
		return model.CongestionModerate
	case ratio < 2.0:
		return model.CongestionHigh
	default:
		return model.CongestionSevere
	}
}

// ComposeAlert builds the alert string for the final classification. An
// empty string means no alert. High congestion outside peak hours produces
// no traffic alert.
func ComposeAlert(level model.CongestionLevel, peakHour, anyHoliday bool) string {
	var parts []string
	switch {
	case level == model.CongestionSevere:
		parts = append(parts, severeAlert)
	case level == model.CongestionHigh && peakHour:
		parts = append(parts, peakAlert)
	}
	if anyHoliday {
		parts = append(parts, holidayAlert)
	}
	return strings.Join(parts, " ")
}

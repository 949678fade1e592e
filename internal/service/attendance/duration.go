package attendance

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/homecare-staffing/nursing-backend-go/internal/domain/attendance"
	"github.com/homecare-staffing/nursing-backend-go/internal/pkg/utils"
)

// FormatDuration turns a stored total ("H:MM" or decimal hours) or, when no
// total is stored, the same-day span between start and end into worked
// minutes and display text. Unusable input yields 0 / "0 min".
func FormatDuration(totalHoursRaw *string, start, end *utils.TimeOfDay) attendance.WorkedDuration {
	if totalHoursRaw != nil {
		if raw := strings.TrimSpace(*totalHoursRaw); raw != "" {
			if strings.Contains(raw, ":") {
				return formatMinutes(parseHHMM(raw))
			}
			return formatDecimalHours(raw)
		}
	}

	if start != nil && end != nil {
		// Same-day arithmetic: an end before the start is not wrapped past midnight.
		elapsed := int(end.Sub(*start) / time.Minute)
		if elapsed < 0 {
			elapsed = 0
		}
		return formatMinutes(elapsed)
	}

	return formatMinutes(0)
}

// parseHHMM reads "H:MM" (a trailing ":SS" is ignored). Malformed input is 0.
func parseHHMM(raw string) int {
	parts := strings.Split(raw, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0
	}
	hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || hours < 0 {
		return 0
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || minutes < 0 || minutes > 59 {
		return 0
	}
	return hours*60 + minutes
}

func formatMinutes(total int) attendance.WorkedDuration {
	hours, minutes := total/60, total%60
	var display string
	switch {
	case hours == 0:
		display = fmt.Sprintf("%d min", minutes)
	case minutes == 0:
		display = fmt.Sprintf("%dh", hours)
	default:
		display = fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return attendance.WorkedDuration{Minutes: total, Display: display}
}

// formatDecimalHours renders decimal totals as hours only, e.g. "2.5h".
func formatDecimalHours(raw string) attendance.WorkedDuration {
	hours, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(hours) || math.IsInf(hours, 0) || hours <= 0 {
		return formatMinutes(0)
	}
	return attendance.WorkedDuration{
		Minutes: int(math.Round(hours * 60)),
		Display: strconv.FormatFloat(hours, 'f', -1, 64) + "h",
	}
}

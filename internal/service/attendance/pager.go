package attendance

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/homecare-staffing/nursing-backend-go/internal/domain/attendance"
)

// Paginate orders days most recent first and returns the requested page along
// with the total number of days before slicing. Out-of-range pages are empty.
func Paginate(days []attendance.DailyAttendance, page, pageSize int) ([]attendance.DailyAttendance, int) {
	total := len(days)
	sorted := slices.Clone(days)
	slices.SortStableFunc(sorted, func(a, b attendance.DailyAttendance) int {
		return strings.Compare(b.Date, a.Date)
	})

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		return []attendance.DailyAttendance{}, total
	}

	start := (page - 1) * pageSize
	if start >= total {
		return []attendance.DailyAttendance{}, total
	}
	end := min(start+pageSize, total)
	return sorted[start:end], total
}

func totalPages(total, limit int) int {
	if limit < 1 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}

func showing(page, limit, shown, total int) string {
	if total == 0 || shown == 0 {
		return fmt.Sprintf("0 of %d", total)
	}
	first := (page-1)*limit + 1
	return fmt.Sprintf("%d-%d of %d", first, first+shown-1, total)
}

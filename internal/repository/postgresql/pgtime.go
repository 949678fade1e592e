package postgresql

import (
	"time"

	"github.com/homecare-staffing/nursing-backend-go/internal/pkg/utils"
	"github.com/jackc/pgx/v5/pgtype"
)

// TIME columns travel as microseconds since midnight.

func toPgTime(t *utils.TimeOfDay) pgtype.Time {
	if t == nil {
		return pgtype.Time{}
	}
	return pgtype.Time{Microseconds: int64(*t) * int64(time.Second/time.Microsecond), Valid: true}
}

func fromPgTime(t pgtype.Time) *utils.TimeOfDay {
	if !t.Valid {
		return nil
	}
	tod := utils.TimeOfDay(t.Microseconds / int64(time.Second/time.Microsecond))
	return &tod
}

func toPgDate(t time.Time) pgtype.Date {
	return pgtype.Date{Time: utils.DateOf(t), Valid: true}
}

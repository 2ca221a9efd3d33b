package utils

import (
	"time"
)

// ParseDate interpreta "YYYY-MM-DD" no fuso informado. String vazia retorna nil.
func ParseDate(dateStr string, loc *time.Location) (*time.Time, error) {
	if dateStr == "" {
		return nil, nil
	}

	if loc == nil {
		loc = time.UTC
	}

	date, err := time.ParseInLocation(time.DateOnly, dateStr, loc)
	if err != nil {
		return nil, err
	}

	return &date, nil
}

// Today retorna a data corrente no fuso informado, como meia-noite UTC do mesmo dia
func Today(now time.Time, loc *time.Location) time.Time {
	if loc != nil {
		now = now.In(loc)
	}
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

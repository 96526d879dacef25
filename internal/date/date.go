// Package date handles the yyyy-mm-dd/hh:mm timestamps used by meetings.
package date

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

const layout = "2006-01-02/15:04"

var (
	ErrFormat = errors.New("date format must be yyyy-mm-dd/hh:mm")
	ErrRange  = errors.New("date out of range")
)

var pattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})/(\d{2}):(\d{2})$`)

// Parse reads a calendar minute. Values carry no zone; UTC is used as a neutral one.
func Parse(s string) (time.Time, error) {
	m := pattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrFormat, s)
	}
	var n [5]int
	for i := range n {
		n[i], _ = strconv.Atoi(m[i+1])
	}
	year, month, day, hour, minute := n[0], n[1], n[2], n[3], n[4]
	if !inRange(year, month, day, hour, minute) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrRange, s)
	}
	return time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC), nil
}

func Format(t time.Time) string {
	if !Valid(t) {
		return "0000-00-00/00:00"
	}
	return t.Format(layout)
}

func Valid(t time.Time) bool {
	return inRange(t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute()) &&
		t.Second() == 0 && t.Nanosecond() == 0
}

var daysIn = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func leap(y int) bool {
	return y%4 == 0 && y%100 != 0 || y%400 == 0
}

func inRange(year, month, day, hour, minute int) bool {
	if year < 1000 || year > 9999 {
		return false
	}
	if month < 1 || month > 12 {
		return false
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return false
	}
	limit := daysIn[month-1]
	if month == 2 && leap(year) {
		limit = 29
	}
	return day >= 1 && day <= limit
}

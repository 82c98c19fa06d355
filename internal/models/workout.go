package models

import (
	"fmt"
	"unicode/utf8"
)

// MaxTypeLen is the longest workout type kept, in characters.
const MaxTypeLen = 19

// Date is a calendar date as entered by the user. It is not validated.
type Date struct {
	Day   int
	Month int
	Year  int
}

// String formats the date as DD/MM/YYYY.
func (d Date) String() string {
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, d.Month, d.Year)
}

// Workout is a single logged training session.
type Workout struct {
	Date            Date
	Type            string
	DurationMinutes int
	CaloriesBurned  int
}

// String renders the workout on one line the way the menu displays it.
func (w Workout) String() string {
	return fmt.Sprintf("Date: %s, Type: %s, Duration: %d minutes, Calories burned: %d",
		w.Date, w.Type, w.DurationMinutes, w.CaloriesBurned)
}

// TruncateType cuts a workout type down to MaxTypeLen characters.
// Input that already fits is returned unchanged.
func TruncateType(raw string) string {
	if utf8.RuneCountInString(raw) <= MaxTypeLen {
		return raw
	}
	n := 0
	for i := range raw {
		if n == MaxTypeLen {
			return raw[:i]
		}
		n++
	}
	return raw
}

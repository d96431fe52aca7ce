package domain

import "time"

// User is a schedulable person. WeekdayHours is the default availability
// pattern, indexed Sunday through Saturday.
type User struct {
	ID           string
	Login        string
	Name         string
	WeekdayHours [7]float64
	CreatedAt    time.Time
}

// DefaultHoursOn returns the pattern hours for the weekday of the given date.
func (u *User) DefaultHoursOn(date time.Time) float64 {
	return u.WeekdayHours[int(date.Weekday())]
}

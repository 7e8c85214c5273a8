package timedim

import (
	"time"

	ptime "github.com/yaa110/go-persian-calendar"
)

// PersianDate is a date in the Solar Hijri calendar. Weekday counts from
// Saturday = 0.
type PersianDate struct {
	Year      int
	Month     int
	Day       int
	Weekday   int
	MonthName string
}

// Converter maps a Gregorian date to the Persian calendar.
type Converter interface {
	ToPersian(t time.Time) PersianDate
}

// PTime converts with github.com/yaa110/go-persian-calendar.
type PTime struct{}

func (PTime) ToPersian(t time.Time) PersianDate {
	p := ptime.New(t)
	return PersianDate{
		Year:      p.Year(),
		Month:     int(p.Month()),
		Day:       p.Day(),
		Weekday:   int(p.Weekday()),
		MonthName: PersianMonthName(int(p.Month())),
	}
}

var persianMonthNames = [12]string{
	"Farvardin", "Ordibehesht", "Khordad", "Tir", "Mordad", "Shahrivar",
	"Mehr", "Aban", "Azar", "Dey", "Bahman", "Esfand",
}

// PersianMonthName returns the Latin transliteration of a Persian month, or
// "" outside 1..12.
func PersianMonthName(month int) string {
	if month < 1 || month > len(persianMonthNames) {
		return ""
	}
	return persianMonthNames[month-1]
}

// PersianWeekdayNames localizes Gregorian weekdays.
var PersianWeekdayNames = map[time.Weekday]string{
	time.Saturday:  "شنبه",
	time.Sunday:    "یک‌شنبه",
	time.Monday:    "دوشنبه",
	time.Tuesday:   "سه‌شنبه",
	time.Wednesday: "چهارشنبه",
	time.Thursday:  "پنج‌شنبه",
	time.Friday:    "جمعه",
}

// PersianDayOfYear counts the first six months as 31 days and the rest as
// 30. Esfand leap days are not special-cased.
func PersianDayOfYear(month, day int) int {
	n := day
	for m := 1; m < month; m++ {
		if m <= 6 {
			n += 31
		} else {
			n += 30
		}
	}
	return n
}

// PersianWeekOfYear numbers weeks from Saturday, with week 1 holding
// Farvardin 1. weekday is the Saturday-based weekday of dayOfYear.
func PersianWeekOfYear(dayOfYear, weekday int) int {
	first := ((weekday-(dayOfYear-1))%7 + 7) % 7
	return (dayOfYear-1+first)/7 + 1
}

// Quarter maps a month number to its quarter.
func Quarter(month int) int {
	return (month-1)/3 + 1
}

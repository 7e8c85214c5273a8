package timedim

import (
	"fmt"
	"time"

	"github.com/ehr/healthgen/internal/sink"
)

// TableName is the warehouse table the rows load into.
const TableName = "Dim_Time"

// Row is one day of the time dimension.
type Row struct {
	TimeKey                     string `json:"time_key" parquet:"time_key"`
	FullDateAlternateKey        string `json:"full_date_alternate_key" parquet:"full_date_alternate_key"`
	PersianFullDateAlternateKey string `json:"persian_full_date_alternate_key" parquet:"persian_full_date_alternate_key"`
	DayNumberOfWeek             int    `json:"day_number_of_week" parquet:"day_number_of_week"`
	PersianDayNumberOfWeek      int    `json:"persian_day_number_of_week" parquet:"persian_day_number_of_week"`
	DayNameOfWeek               string `json:"day_name_of_week" parquet:"day_name_of_week"`
	PersianDayNameOfWeek        string `json:"persian_day_name_of_week" parquet:"persian_day_name_of_week"`
	DayNumberOfMonth            int    `json:"day_number_of_month" parquet:"day_number_of_month"`
	PersianDayNumberOfMonth     int    `json:"persian_day_number_of_month" parquet:"persian_day_number_of_month"`
	DayNumberOfYear             int    `json:"day_number_of_year" parquet:"day_number_of_year"`
	PersianDayNumberOfYear      int    `json:"persian_day_number_of_year" parquet:"persian_day_number_of_year"`
	WeekNumberOfYear            int    `json:"week_number_of_year" parquet:"week_number_of_year"`
	PersianWeekNumberOfYear     int    `json:"persian_week_number_of_year" parquet:"persian_week_number_of_year"`
	MonthName                   string `json:"month_name" parquet:"month_name"`
	PersianMonthName            string `json:"persian_month_name" parquet:"persian_month_name"`
	MonthNumberOfYear           int    `json:"month_number_of_year" parquet:"month_number_of_year"`
	PersianMonthNumberOfYear    int    `json:"persian_month_number_of_year" parquet:"persian_month_number_of_year"`
	CalendarQuarter             int    `json:"calendar_quarter" parquet:"calendar_quarter"`
	PersianCalendarQuarter      int    `json:"persian_calendar_quarter" parquet:"persian_calendar_quarter"`
	CalendarYear                int    `json:"calendar_year" parquet:"calendar_year"`
	PersianCalendarYear         int    `json:"persian_calendar_year" parquet:"persian_calendar_year"`
}

var Columns = []string{
	"time_key", "full_date_alternate_key", "persian_full_date_alternate_key",
	"day_number_of_week", "persian_day_number_of_week",
	"day_name_of_week", "persian_day_name_of_week",
	"day_number_of_month", "persian_day_number_of_month",
	"day_number_of_year", "persian_day_number_of_year",
	"week_number_of_year", "persian_week_number_of_year",
	"month_name", "persian_month_name",
	"month_number_of_year", "persian_month_number_of_year",
	"calendar_quarter", "persian_calendar_quarter",
	"calendar_year", "persian_calendar_year",
}

func (r Row) values() []interface{} {
	return []interface{}{
		r.TimeKey, r.FullDateAlternateKey, r.PersianFullDateAlternateKey,
		r.DayNumberOfWeek, r.PersianDayNumberOfWeek,
		r.DayNameOfWeek, r.PersianDayNameOfWeek,
		r.DayNumberOfMonth, r.PersianDayNumberOfMonth,
		r.DayNumberOfYear, r.PersianDayNumberOfYear,
		r.WeekNumberOfYear, r.PersianWeekNumberOfYear,
		r.MonthName, r.PersianMonthName,
		r.MonthNumberOfYear, r.PersianMonthNumberOfYear,
		r.CalendarQuarter, r.PersianCalendarQuarter,
		r.CalendarYear, r.PersianCalendarYear,
	}
}

// Table converts rows into a sink batch.
func Table(rows []Row) sink.Table {
	out := make([][]interface{}, len(rows))
	for i, r := range rows {
		out[i] = r.values()
	}
	return sink.Table{Name: TableName, Columns: Columns, Rows: out}
}

// Generate emits one row per Gregorian day from January 1 of startYear
// through December 31 of endYear.
func Generate(startYear, endYear int, conv Converter) ([]Row, error) {
	if conv == nil {
		return nil, fmt.Errorf("calendar converter is required")
	}
	if startYear > endYear {
		return nil, fmt.Errorf("start year %d after end year %d", startYear, endYear)
	}

	first := time.Date(startYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(endYear, time.December, 31, 0, 0, 0, 0, time.UTC)
	rows := make([]Row, 0, int(last.Sub(first).Hours()/24)+1)

	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		rows = append(rows, newRow(day, conv.ToPersian(day)))
	}
	return rows, nil
}

func newRow(t time.Time, p PersianDate) Row {
	_, week := t.ISOWeek()
	month := int(t.Month())
	persianDOY := PersianDayOfYear(p.Month, p.Day)

	return Row{
		TimeKey:                     t.Format("2006-01-02"),
		FullDateAlternateKey:        fmt.Sprintf("%d/%d/%d", month, t.Day(), t.Year()),
		PersianFullDateAlternateKey: fmt.Sprintf("%d/%d/%d", p.Year, p.Month, p.Day),
		DayNumberOfWeek:             (int(t.Weekday()) + 6) % 7,
		PersianDayNumberOfWeek:      p.Weekday,
		DayNameOfWeek:               t.Weekday().String(),
		PersianDayNameOfWeek:        PersianWeekdayNames[t.Weekday()],
		DayNumberOfMonth:            t.Day(),
		PersianDayNumberOfMonth:     p.Day,
		DayNumberOfYear:             t.YearDay(),
		PersianDayNumberOfYear:      persianDOY,
		WeekNumberOfYear:            week,
		PersianWeekNumberOfYear:     PersianWeekOfYear(persianDOY, p.Weekday),
		MonthName:                   t.Month().String(),
		PersianMonthName:            p.MonthName,
		MonthNumberOfYear:           month,
		PersianMonthNumberOfYear:    p.Month,
		CalendarQuarter:             Quarter(month),
		PersianCalendarQuarter:      Quarter(p.Month),
		CalendarYear:                t.Year(),
		PersianCalendarYear:         p.Year,
	}
}

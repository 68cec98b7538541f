package timezone

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

// FormatTimeRange форматирует диапазон времени
func FormatTimeRange(start, end time.Time) string {
	return fmt.Sprintf("%s-%s", start.Format(clockLayout), end.Format(clockLayout))
}

// FormatClockRange форматирует диапазон локального времени суток
func FormatClockRange(start, end civil.Time) string {
	return fmt.Sprintf("%s-%s", FormatClock(start), FormatClock(end))
}

// FormatDateWithWeekday форматирует дату с днём недели, например "Monday, 2025-03-03"
func FormatDateWithWeekday(d civil.Date) string {
	return fmt.Sprintf("%s, %s", Weekday(d), d.String())
}

// Weekday возвращает день недели календарной даты
func Weekday(d civil.Date) time.Weekday {
	return d.In(time.UTC).Weekday()
}

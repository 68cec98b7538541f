package model

import "time"

// AvailabilitySlot интервал, в который учитель готов проводить занятия.
// Границы всегда хранятся и сравниваются в UTC.
type AvailabilitySlot struct {
	ID        int64     `json:"id"`
	TutorID   int64     `json:"tutor_id"`
	StartUTC  time.Time `json:"start_utc"`
	EndUTC    time.Time `json:"end_utc"`
	CreatedAt time.Time `json:"created_at"`
}

// Contains проверяет, что интервал [start, end] целиком лежит внутри слота
func (s *AvailabilitySlot) Contains(start, end time.Time) bool {
	return !start.Before(s.StartUTC) && !end.After(s.EndUTC)
}

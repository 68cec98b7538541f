package model

import (
	"fmt"

	"cloud.google.com/go/civil"
)

// Occurrence конкретная дата и локальное время одного занятия
type Occurrence struct {
	Date  civil.Date `json:"date"`
	Start civil.Time `json:"start_time"`
	End   civil.Time `json:"end_time"`
}

// MinutesOfDay переводит время суток в минуты от полуночи
func MinutesOfDay(t civil.Time) int {
	return t.Hour*60 + t.Minute
}

// Validate проверяет, что окончание строго позже начала в пределах одного дня
func (o Occurrence) Validate() error {
	if !o.Date.IsValid() {
		return fmt.Errorf("%w: invalid date %v", ErrInvalidInput, o.Date)
	}
	if !o.Start.IsValid() || !o.End.IsValid() {
		return fmt.Errorf("%w: invalid time of day", ErrInvalidInput)
	}
	if MinutesOfDay(o.End) <= MinutesOfDay(o.Start) {
		return fmt.Errorf("%w: end time must be after start time", ErrInvalidInput)
	}
	return nil
}

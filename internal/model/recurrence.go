package model

import (
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/samber/mo"
)

// RecurrenceKind тип повторения занятия
type RecurrenceKind string

const (
	RecurrenceNone     RecurrenceKind = "none"
	RecurrenceDaily    RecurrenceKind = "daily"
	RecurrenceWeekly   RecurrenceKind = "weekly"
	RecurrenceWeekdays RecurrenceKind = "weekdays" // Пн-Пт
)

// Жёсткие ограничения на число повторений, если пользователь не указал count
const (
	MaxDailyOccurrences  = 365
	MaxWeeklyOccurrences = 52
)

// ParseRecurrenceKind разбирает тип повторения; пустая строка означает none
func ParseRecurrenceKind(s string) (RecurrenceKind, error) {
	switch RecurrenceKind(s) {
	case "", RecurrenceNone:
		return RecurrenceNone, nil
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceWeekdays:
		return RecurrenceKind(s), nil
	default:
		return "", fmt.Errorf("%w: unknown recurrence kind %q", ErrInvalidInput, s)
	}
}

// RecurrenceRule правило повторения и его граница
type RecurrenceRule struct {
	Kind  RecurrenceKind
	Count mo.Option[int]
	Until mo.Option[civil.Date]
}

// Limit возвращает фактическое число повторений, которое ограничивает генерацию
func (r RecurrenceRule) Limit() int {
	if count, ok := r.Count.Get(); ok && count >= 1 {
		return count
	}

	switch r.Kind {
	case RecurrenceNone:
		return 1
	case RecurrenceWeekly:
		return MaxWeeklyOccurrences
	default:
		return MaxDailyOccurrences
	}
}

// RecurrenceRequest неизменяемый запрос на генерацию занятий.
// Передаётся по значению, общего изменяемого состояния нет.
type RecurrenceRequest struct {
	Date  civil.Date
	Start civil.Time
	End   civil.Time
	Rule  RecurrenceRule
}

// Template возвращает первое (опорное) занятие запроса
func (r RecurrenceRequest) Template() Occurrence {
	return Occurrence{Date: r.Date, Start: r.Start, End: r.End}
}

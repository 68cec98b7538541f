package availability

import (
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/tutor_sessions/internal/model"
	"github.com/Freeeeeet/tutor_sessions/internal/timezone"
)

// maxListedConflicts сколько нарушений перечисляется в сводке поимённо
const maxListedConflicts = 3

// ValidateAll проверяет каждое занятие без остановки на первой ошибке и
// возвращает все нарушения в порядке занятий
func ValidateAll(occurrences []model.Occurrence, loc *time.Location, slots []*model.AvailabilitySlot) []model.Violation {
	var violations []model.Violation
	for _, o := range occurrences {
		outcome := Validate(o, loc, slots)
		if outcome.Valid {
			continue
		}
		violations = append(violations, model.Violation{Occurrence: o, Outcome: outcome})
	}
	return violations
}

// Report собирает одно сообщение по всем нарушениям.
// Одно нарушение выводится как есть; для нескольких выводится их число,
// первое нарушение и либо все сообщения (до трёх), либо "...and N more conflicts".
func Report(violations []model.Violation, total int) string {
	switch len(violations) {
	case 0:
		return ""
	case 1:
		return violations[0].Outcome.Message
	}

	first := violations[0]

	var b strings.Builder
	fmt.Fprintf(&b, "%d of %d sessions conflict with the tutor's availability. First conflict on %s: %s",
		len(violations), total, timezone.FormatDateWithWeekday(first.Occurrence.Date), first.Outcome.Message)

	if len(violations) <= maxListedConflicts {
		for _, v := range violations {
			fmt.Fprintf(&b, "\n- %s: %s", v.Occurrence.Date, v.Outcome.Message)
		}
		return b.String()
	}

	fmt.Fprintf(&b, "\n...and %d more conflicts", len(violations)-1)
	return b.String()
}

// Check проверяет всю серию и возвращает *model.ConflictError, если хотя бы
// одно занятие не проходит. Создавать ничего нельзя, пока Check не вернёт nil.
func Check(occurrences []model.Occurrence, loc *time.Location, slots []*model.AvailabilitySlot) error {
	return Conflict(ValidateAll(occurrences, loc, slots), len(occurrences))
}

// Conflict оборачивает уже найденные нарушения в *model.ConflictError; nil, если нарушений нет
func Conflict(violations []model.Violation, total int) error {
	if len(violations) == 0 {
		return nil
	}

	return &model.ConflictError{
		Violations: violations,
		Total:      total,
		Message:    Report(violations, total),
	}
}

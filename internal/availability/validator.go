// Package availability проверяет занятия на попадание в слоты доступности учителя.
package availability

import (
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/tutor_sessions/internal/model"
	"github.com/Freeeeeet/tutor_sessions/internal/timezone"
)

// Тексты отказов
const (
	MsgNoAvailability = "The tutor has no availability configured. Ask the tutor to add availability before scheduling sessions."
	msgNoSlotOnDate   = "The tutor is not available on %s. Please choose another date."
	msgOutsideSlot    = "Requested time %s on %s is outside the tutor's availability. Available times that day: %s."
)

// Validate решает, можно ли провести занятие o в зоне loc при слотах slots.
// Занятие валидно, только если какой-то слот того же локального дня целиком
// его содержит. Слоты не обязаны быть отсортированы и могут пересекаться.
// Ошибок не возвращает: результат всегда ValidationOutcome.
func Validate(o model.Occurrence, loc *time.Location, slots []*model.AvailabilitySlot) model.ValidationOutcome {
	if len(slots) == 0 {
		return model.ValidationOutcome{
			Message: MsgNoAvailability,
			Reason:  model.ReasonNoAvailability,
		}
	}

	startUTC := timezone.ToUTC(o.Date, o.Start, loc)
	endUTC := timezone.ToUTC(o.Date, o.End, loc)

	var sameDay []*model.AvailabilitySlot
	for _, slot := range slots {
		if slot == nil {
			continue
		}
		if timezone.ToLocal(slot.StartUTC, loc).Date != o.Date {
			continue
		}
		if slot.Contains(startUTC, endUTC) {
			return model.ValidationOutcome{Valid: true}
		}
		sameDay = append(sameDay, slot)
	}

	day := timezone.FormatDateWithWeekday(o.Date)
	if len(sameDay) == 0 {
		return model.ValidationOutcome{
			Message: fmt.Sprintf(msgNoSlotOnDate, day),
			Reason:  model.ReasonNoSlotOnDate,
		}
	}

	ranges := make([]string, 0, len(sameDay))
	for _, slot := range sameDay {
		ranges = append(ranges, timezone.FormatTimeRange(slot.StartUTC.In(loc), slot.EndUTC.In(loc)))
	}

	return model.ValidationOutcome{
		Message: fmt.Sprintf(msgOutsideSlot, timezone.FormatClockRange(o.Start, o.End), day, strings.Join(ranges, ", ")),
		Reason:  model.ReasonOutsideSlot,
	}
}

package model

import (
	"github.com/google/uuid"
	"github.com/samber/mo"
)

// OutcomeReason причина отказа при проверке доступности
type OutcomeReason string

const (
	ReasonNone           OutcomeReason = ""
	ReasonNoAvailability OutcomeReason = "no_availability"
	ReasonNoSlotOnDate   OutcomeReason = "no_slot_on_date"
	ReasonOutsideSlot    OutcomeReason = "outside_slot"
)

// ValidationOutcome результат проверки одного занятия.
// Message заполняется только для невалидных занятий.
type ValidationOutcome struct {
	Valid   bool          `json:"valid"`
	Message string        `json:"message,omitempty"`
	Reason  OutcomeReason `json:"reason,omitempty"`
}

// Violation занятие, не прошедшее проверку, вместе с причиной
type Violation struct {
	Occurrence Occurrence
	Outcome    ValidationOutcome
}

// TimezoneSource откуда взялась зона заявки
type TimezoneSource string

const (
	TimezoneFromUser   TimezoneSource = "user"
	TimezoneFromSystem TimezoneSource = "system"
	TimezoneDefaultUTC TimezoneSource = "default_utc"
)

// ResolvedTimezone зона, с которой проверялись и сохранялись занятия
type ResolvedTimezone struct {
	Name   string         `json:"name"`
	Source TimezoneSource `json:"source"`
}

// SubmissionResult итог создания серии занятий
type SubmissionResult struct {
	CreatedCount int               `json:"created_count"`
	TotalCount   int               `json:"total_count"`
	FirstError   mo.Option[string] `json:"first_error"`
	GroupID      uuid.UUID         `json:"group_id"`
	SessionIDs   []int64           `json:"session_ids"`
	RolledBack   bool              `json:"rolled_back,omitempty"`
	Timezone     ResolvedTimezone  `json:"timezone"`
}

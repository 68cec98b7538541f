package api

import (
	"time"

	"github.com/Freeeeeet/tutor_sessions/internal/model"
	"github.com/Freeeeeet/tutor_sessions/internal/service"
	"github.com/Freeeeeet/tutor_sessions/internal/timezone"
	"github.com/google/uuid"
	"github.com/samber/mo"
)

type recurrenceRequest struct {
	Kind  string `json:"kind" binding:"omitempty,oneof=none daily weekly weekdays"`
	Count *int   `json:"count" binding:"omitempty,min=1,max=365"`
	Until string `json:"until" binding:"omitempty,isodate"`
}

type createSessionsRequest struct {
	RequesterID   int64             `json:"requester_id" binding:"required"`
	CourseID      *int64            `json:"course_id"`
	Title         string            `json:"title" binding:"required,max=200"`
	Description   string            `json:"description" binding:"max=5000"`
	Date          string            `json:"date" binding:"required,isodate"`
	StartTime     string            `json:"start_time" binding:"required,hhmm"`
	EndTime       string            `json:"end_time" binding:"required,hhmm"`
	Recurrence    recurrenceRequest `json:"recurrence"`
	AttachmentURL string            `json:"attachment_url" binding:"omitempty,url"`
}

func (r createSessionsRequest) toInput(tutorID int64) service.CreateSessionsInput {
	in := service.CreateSessionsInput{
		RequesterID:   r.RequesterID,
		TutorID:       tutorID,
		CourseID:      mo.PointerToOption(r.CourseID),
		Title:         r.Title,
		Description:   r.Description,
		Date:          r.Date,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		Recurrence:    r.Recurrence.Kind,
		Count:         mo.PointerToOption(r.Recurrence.Count),
		AttachmentURL: r.AttachmentURL,
	}
	if r.Recurrence.Until != "" {
		in.Until = mo.Some(r.Recurrence.Until)
	}
	return in
}

type setTimezoneRequest struct {
	Timezone string `json:"timezone" binding:"required"`
}

type occurrenceResponse struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func newOccurrenceResponse(o model.Occurrence) occurrenceResponse {
	return occurrenceResponse{
		Date:      timezone.FormatDate(o.Date),
		StartTime: timezone.FormatClock(o.Start),
		EndTime:   timezone.FormatClock(o.End),
	}
}

type conflictResponse struct {
	occurrenceResponse
	Reason  model.OutcomeReason `json:"reason"`
	Message string              `json:"message"`
}

func newConflicts(violations []model.Violation) []conflictResponse {
	out := make([]conflictResponse, 0, len(violations))
	for _, v := range violations {
		out = append(out, conflictResponse{
			occurrenceResponse: newOccurrenceResponse(v.Occurrence),
			Reason:             v.Outcome.Reason,
			Message:            v.Outcome.Message,
		})
	}
	return out
}

type submissionResponse struct {
	CreatedCount int                    `json:"created_count"`
	TotalCount   int                    `json:"total_count"`
	GroupID      uuid.UUID              `json:"group_id"`
	SessionIDs   []int64                `json:"session_ids"`
	Timezone     model.ResolvedTimezone `json:"timezone"`
}

type previewResponse struct {
	Occurrences []occurrenceResponse   `json:"occurrences"`
	Conflicts   []conflictResponse     `json:"conflicts"`
	Message     string                 `json:"message,omitempty"`
	RRule       string                 `json:"rrule,omitempty"`
	Timezone    model.ResolvedTimezone `json:"timezone"`
}

func newPreviewResponse(p *service.Preview) previewResponse {
	occurrences := make([]occurrenceResponse, 0, len(p.Occurrences))
	for _, o := range p.Occurrences {
		occurrences = append(occurrences, newOccurrenceResponse(o))
	}
	return previewResponse{
		Occurrences: occurrences,
		Conflicts:   newConflicts(p.Violations),
		Message:     p.Message,
		RRule:       p.RRule,
		Timezone:    p.Timezone,
	}
}

type slotResponse struct {
	ID         int64     `json:"id"`
	StartUTC   time.Time `json:"start_utc"`
	EndUTC     time.Time `json:"end_utc"`
	LocalDate  string    `json:"local_date"`
	LocalStart string    `json:"local_start"`
	LocalEnd   string    `json:"local_end"`
}

func newSlotResponse(s *model.AvailabilitySlot, loc *time.Location) slotResponse {
	start := timezone.ToLocal(s.StartUTC, loc)
	end := timezone.ToLocal(s.EndUTC, loc)
	return slotResponse{
		ID:         s.ID,
		StartUTC:   s.StartUTC,
		EndUTC:     s.EndUTC,
		LocalDate:  timezone.FormatDate(start.Date),
		LocalStart: timezone.FormatClock(start.Time),
		LocalEnd:   timezone.FormatClock(end.Time),
	}
}

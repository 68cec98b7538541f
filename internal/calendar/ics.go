// Package calendar выгружает созданные серии занятий в формате iCalendar.
package calendar

import (
	"fmt"
	"io"
	"time"

	"github.com/Freeeeeet/tutor_sessions/internal/model"
	"github.com/Freeeeeet/tutor_sessions/internal/timezone"
	"github.com/emersion/go-ical"
)

const productID = "-//tutor_sessions//Session Export//EN"

// ContentType MIME-тип выгрузки
const ContentType = "text/calendar; charset=utf-8"

// Encode пишет занятия как VCALENDAR с одним VEVENT на занятие.
// Время событий пишется в UTC, пересчитанное из даты, локального времени и зоны занятия.
func Encode(w io.Writer, sessions []*model.ClassSession, now time.Time) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropProductID, productID)
	cal.Props.SetText(ical.PropVersion, "2.0")

	for _, s := range sessions {
		event, err := toEvent(s, now)
		if err != nil {
			return err
		}
		cal.Children = append(cal.Children, event.Component)
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("encode calendar: %w", err)
	}
	return nil
}

func toEvent(s *model.ClassSession, now time.Time) (*ical.Event, error) {
	loc, err := timezone.LoadZone(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("session %d: %w", s.ID, err)
	}
	date, err := timezone.ParseDate(s.Date)
	if err != nil {
		return nil, fmt.Errorf("session %d: %w", s.ID, err)
	}
	start, err := timezone.ParseClock(s.StartTime)
	if err != nil {
		return nil, fmt.Errorf("session %d: %w", s.ID, err)
	}
	end, err := timezone.ParseClock(s.EndTime)
	if err != nil {
		return nil, fmt.Errorf("session %d: %w", s.ID, err)
	}

	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, fmt.Sprintf("%s-%d@tutor-sessions", s.GroupID, s.ID))
	event.Props.SetDateTime(ical.PropDateTimeStamp, now.UTC())
	event.Props.SetDateTime(ical.PropDateTimeStart, timezone.ToUTC(date, start, loc))
	event.Props.SetDateTime(ical.PropDateTimeEnd, timezone.ToUTC(date, end, loc))
	event.Props.SetText(ical.PropSummary, s.Title)
	if s.Description != "" {
		event.Props.SetText(ical.PropDescription, s.Description)
	}
	if s.AttachmentURL != "" {
		event.Props.SetText(ical.PropAttach, s.AttachmentURL)
	}

	return event, nil
}

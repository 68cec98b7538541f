// Package recurrence раскрывает правило повторения в список конкретных занятий.
package recurrence

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/Freeeeeet/tutor_sessions/internal/model"
	"github.com/teambition/rrule-go"
)

var weekdays = []rrule.Weekday{rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR}

// Generate раскрывает запрос в упорядоченный список занятий, начиная с опорной даты.
// Функция чистая: одинаковый запрос всегда даёт одинаковый результат.
//
// Генерация останавливается, как только выпущено Limit() занятий или очередная
// дата оказалась позже Until. Для weekdays выходные пропускаются и не
// расходуют счётчик.
func Generate(req model.RecurrenceRequest) ([]model.Occurrence, error) {
	template := req.Template()
	if err := template.Validate(); err != nil {
		return nil, err
	}

	if req.Rule.Kind == model.RecurrenceNone || req.Rule.Kind == "" {
		return []model.Occurrence{template}, nil
	}

	opt, err := options(req.Date, req.Rule)
	if err != nil {
		return nil, err
	}

	r, err := rrule.NewRRule(opt)
	if err != nil {
		return nil, fmt.Errorf("%w: build recurrence rule: %v", model.ErrInvalidInput, err)
	}

	dates := r.All()
	occurrences := make([]model.Occurrence, 0, len(dates))
	for _, d := range dates {
		occurrences = append(occurrences, model.Occurrence{
			Date:  civil.DateOf(d),
			Start: req.Start,
			End:   req.End,
		})
	}

	return occurrences, nil
}

// RRule возвращает правило в формате RFC 5545 (без DTSTART), например
// "FREQ=DAILY;COUNT=5". Для RecurrenceNone возвращает пустую строку.
func RRule(anchor civil.Date, rule model.RecurrenceRule) (string, error) {
	if rule.Kind == model.RecurrenceNone || rule.Kind == "" {
		return "", nil
	}

	opt, err := options(anchor, rule)
	if err != nil {
		return "", err
	}
	return opt.RRuleString(), nil
}

// options строит параметры rrule; даты считаются полуночью UTC,
// поэтому сравнение с Until идёт по календарным датам.
func options(anchor civil.Date, rule model.RecurrenceRule) (rrule.ROption, error) {
	opt := rrule.ROption{
		Dtstart: anchor.In(time.UTC),
		Count:   rule.Limit(),
	}

	switch rule.Kind {
	case model.RecurrenceDaily:
		opt.Freq = rrule.DAILY
	case model.RecurrenceWeekly:
		opt.Freq = rrule.WEEKLY
	case model.RecurrenceWeekdays:
		opt.Freq = rrule.DAILY
		opt.Byweekday = weekdays
	default:
		return rrule.ROption{}, fmt.Errorf("%w: unknown recurrence kind %q", model.ErrInvalidInput, rule.Kind)
	}

	if until, ok := rule.Until.Get(); ok {
		if !until.IsValid() {
			return rrule.ROption{}, fmt.Errorf("%w: invalid until date %v", model.ErrInvalidInput, until)
		}
		opt.Until = until.In(time.UTC)
	}

	return opt, nil
}

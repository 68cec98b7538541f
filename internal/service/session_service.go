package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/tutor_sessions/internal/availability"
	"github.com/Freeeeeet/tutor_sessions/internal/model"
	"github.com/Freeeeeet/tutor_sessions/internal/recurrence"
	"github.com/Freeeeeet/tutor_sessions/internal/timezone"
	"github.com/google/uuid"
	"github.com/samber/mo"
	"go.uber.org/zap"
)

// UserSource данные пользователей: учитель и зона заявителя
type UserSource interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetTimezone(ctx context.Context, id int64) (mo.Option[string], error)
}

// AvailabilitySource слоты доступности учителя; пустой список не ошибка
type AvailabilitySource interface {
	GetByTutorID(ctx context.Context, tutorID int64) ([]*model.AvailabilitySlot, error)
}

// SessionReader чтение созданных серий
type SessionReader interface {
	GetByGroupID(ctx context.Context, groupID uuid.UUID) ([]*model.ClassSession, error)
}

// Notifier сообщает учителю о созданной серии
type Notifier interface {
	SessionsCreated(ctx context.Context, tutor *model.User, meta model.SessionMeta, result model.SubmissionResult) error
}

// CreateSessionsInput сырые поля формы создания занятий
type CreateSessionsInput struct {
	RequesterID   int64
	TutorID       int64
	CourseID      mo.Option[int64]
	Title         string
	Description   string
	Date          string // YYYY-MM-DD
	StartTime     string // HH:MM
	EndTime       string // HH:MM
	Recurrence    string // none, daily, weekly, weekdays
	Count         mo.Option[int]
	Until         mo.Option[string] // YYYY-MM-DD
	AttachmentURL string
}

// Request разбирает поля формы в неизменяемый запрос генерации
func (in CreateSessionsInput) Request() (model.RecurrenceRequest, error) {
	date, err := timezone.ParseDate(in.Date)
	if err != nil {
		return model.RecurrenceRequest{}, err
	}
	start, err := timezone.ParseClock(in.StartTime)
	if err != nil {
		return model.RecurrenceRequest{}, err
	}
	end, err := timezone.ParseClock(in.EndTime)
	if err != nil {
		return model.RecurrenceRequest{}, err
	}
	kind, err := model.ParseRecurrenceKind(in.Recurrence)
	if err != nil {
		return model.RecurrenceRequest{}, err
	}

	rule := model.RecurrenceRule{Kind: kind, Count: in.Count}
	if raw, ok := in.Until.Get(); ok && strings.TrimSpace(raw) != "" {
		until, err := timezone.ParseDate(raw)
		if err != nil {
			return model.RecurrenceRequest{}, err
		}
		rule.Until = mo.Some(until)
	}

	req := model.RecurrenceRequest{Date: date, Start: start, End: end, Rule: rule}
	if err := req.Template().Validate(); err != nil {
		return model.RecurrenceRequest{}, err
	}
	return req, nil
}

// Preview результат проверки без создания занятий
type Preview struct {
	Occurrences []model.Occurrence
	Violations  []model.Violation
	Message     string
	RRule       string
	Timezone    model.ResolvedTimezone
}

// SessionService создание серий занятий с проверкой доступности учителя
type SessionService struct {
	users        UserSource
	availability AvailabilitySource
	sessions     SessionReader
	submitter    *Submitter
	notifier     Notifier
	fallbackZone string
	logger       *zap.Logger
}

func NewSessionService(
	users UserSource,
	availability AvailabilitySource,
	sessions SessionReader,
	submitter *Submitter,
	notifier Notifier,
	fallbackZone string,
	logger *zap.Logger,
) *SessionService {
	return &SessionService{
		users:        users,
		availability: availability,
		sessions:     sessions,
		submitter:    submitter,
		notifier:     notifier,
		fallbackZone: fallbackZone,
		logger:       logger,
	}
}

// plan общая часть создания и предпросмотра
type plan struct {
	tutor       *model.User
	request     model.RecurrenceRequest
	occurrences []model.Occurrence
	slots       []*model.AvailabilitySlot
	tz          model.ResolvedTimezone
	violations  []model.Violation
}

func (s *SessionService) prepare(ctx context.Context, in CreateSessionsInput) (*plan, error) {
	req, err := in.Request()
	if err != nil {
		return nil, err
	}

	tutor, err := s.users.GetByID(ctx, in.TutorID)
	if err != nil {
		return nil, fmt.Errorf("get tutor: %w", err)
	}
	if tutor == nil {
		return nil, model.ErrTutorNotFound
	}
	if !tutor.IsTutor {
		return nil, model.ErrNotATutor
	}

	userZone, err := s.users.GetTimezone(ctx, in.RequesterID)
	if err != nil {
		return nil, fmt.Errorf("get requester timezone: %w", err)
	}
	tz, loc, err := timezone.Resolve(userZone, s.fallbackZone)
	if err != nil {
		return nil, err
	}
	if tz.Source != model.TimezoneFromUser {
		s.logger.Warn("Requester has no stored timezone, using fallback",
			zap.Int64("requester_id", in.RequesterID),
			zap.String("timezone", tz.Name),
			zap.String("source", string(tz.Source)))
	}

	occurrences, err := recurrence.Generate(req)
	if err != nil {
		return nil, err
	}
	if len(occurrences) == 0 {
		return nil, fmt.Errorf("%w: recurrence produces no sessions before the until date", model.ErrInvalidInput)
	}

	slots, err := s.availability.GetByTutorID(ctx, in.TutorID)
	if err != nil {
		return nil, fmt.Errorf("get tutor availability: %w", err)
	}

	return &plan{
		tutor:       tutor,
		request:     req,
		occurrences: occurrences,
		slots:       slots,
		tz:          tz,
		violations:  availability.ValidateAll(occurrences, loc, slots),
	}, nil
}

// CreateSessions раскрывает повторение, проверяет все занятия по снимку
// доступности учителя и, только если все валидны, создаёт их по очереди.
func (s *SessionService) CreateSessions(ctx context.Context, in CreateSessionsInput) (model.SubmissionResult, error) {
	s.logger.Info("CreateSessions called",
		zap.Int64("tutor_id", in.TutorID),
		zap.Int64("requester_id", in.RequesterID),
		zap.String("date", in.Date),
		zap.String("recurrence", in.Recurrence))

	p, err := s.prepare(ctx, in)
	if err != nil {
		return model.SubmissionResult{}, err
	}

	if len(p.slots) == 0 {
		s.logger.Info("Tutor has no availability configured",
			zap.Int64("tutor_id", in.TutorID))
		return model.SubmissionResult{TotalCount: len(p.occurrences), Timezone: p.tz},
			fmt.Errorf("%w: %s", model.ErrNoAvailabilityConfigured, availability.MsgNoAvailability)
	}

	if conflict := availability.Conflict(p.violations, len(p.occurrences)); conflict != nil {
		s.logger.Info("Sessions rejected by availability check",
			zap.Int64("tutor_id", in.TutorID),
			zap.Int("conflicts", len(p.violations)),
			zap.Int("total", len(p.occurrences)))
		return model.SubmissionResult{TotalCount: len(p.occurrences), Timezone: p.tz}, conflict
	}

	meta := model.SessionMeta{
		TutorID:       in.TutorID,
		CourseID:      in.CourseID,
		Title:         in.Title,
		Description:   in.Description,
		AttachmentURL: in.AttachmentURL,
	}

	result, err := s.submitter.Submit(ctx, p.occurrences, meta, p.tz)
	if result.CreatedCount > 0 && !result.RolledBack {
		s.notify(ctx, p.tutor, meta, result)
	}
	return result, err
}

// PreviewSessions выполняет генерацию и проверку, ничего не создавая
func (s *SessionService) PreviewSessions(ctx context.Context, in CreateSessionsInput) (*Preview, error) {
	p, err := s.prepare(ctx, in)
	if err != nil {
		return nil, err
	}

	rrule, err := recurrence.RRule(p.request.Date, p.request.Rule)
	if err != nil {
		return nil, err
	}

	return &Preview{
		Occurrences: p.occurrences,
		Violations:  p.violations,
		Message:     availability.Report(p.violations, len(p.occurrences)),
		RRule:       rrule,
		Timezone:    p.tz,
	}, nil
}

// GetAvailability возвращает слоты учителя
func (s *SessionService) GetAvailability(ctx context.Context, tutorID int64) ([]*model.AvailabilitySlot, error) {
	tutor, err := s.users.GetByID(ctx, tutorID)
	if err != nil {
		return nil, fmt.Errorf("get tutor: %w", err)
	}
	if tutor == nil {
		return nil, model.ErrTutorNotFound
	}

	return s.availability.GetByTutorID(ctx, tutorID)
}

// GetGroup возвращает все занятия одной серии
func (s *SessionService) GetGroup(ctx context.Context, groupID uuid.UUID) ([]*model.ClassSession, error) {
	sessions, err := s.sessions.GetByGroupID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("get session group: %w", err)
	}
	if len(sessions) == 0 {
		return nil, model.ErrGroupNotFound
	}
	return sessions, nil
}

// notify ошибки уведомления только логируются
func (s *SessionService) notify(ctx context.Context, tutor *model.User, meta model.SessionMeta, result model.SubmissionResult) {
	if s.notifier == nil {
		return
	}

	if err := s.notifier.SessionsCreated(ctx, tutor, meta, result); err != nil {
		s.logger.Warn("Failed to notify tutor",
			zap.Int64("tutor_id", tutor.ID),
			zap.String("group_id", result.GroupID.String()),
			zap.Error(err))
	}
}

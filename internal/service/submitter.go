package service

import (
	"context"

	"github.com/Freeeeeet/tutor_sessions/internal/model"
	"github.com/Freeeeeet/tutor_sessions/internal/timezone"
	"github.com/google/uuid"
	"github.com/samber/mo"
	"go.uber.org/zap"
)

// SessionCreator сохраняет одно занятие. Ошибка означает отказ хранилища.
type SessionCreator interface {
	Create(ctx context.Context, session *model.ClassSession) error
}

// SessionRemover удаляет занятие; нужен только для компенсации
type SessionRemover interface {
	Delete(ctx context.Context, id int64) error
}

// Submitter создаёт проверенные занятия строго по очереди
type Submitter struct {
	creator SessionCreator
	remover SessionRemover
	logger  *zap.Logger
}

// SubmitterOption настройка Submitter
type SubmitterOption func(*Submitter)

// WithCompensation включает удаление уже созданных занятий серии после первого отказа
func WithCompensation(remover SessionRemover) SubmitterOption {
	return func(s *Submitter) {
		s.remover = remover
	}
}

// NewSubmitter создаёт оркестратор записи занятий
func NewSubmitter(creator SessionCreator, logger *zap.Logger, opts ...SubmitterOption) *Submitter {
	s := &Submitter{
		creator: creator,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit создаёт по одному занятию на каждое occurrence в исходном порядке.
// На первом отказе цикл останавливается; оставшиеся занятия не создаются.
// Вложение привязывается только к первому занятию.
func (s *Submitter) Submit(
	ctx context.Context,
	occurrences []model.Occurrence,
	meta model.SessionMeta,
	tz model.ResolvedTimezone,
) (model.SubmissionResult, error) {
	result := model.SubmissionResult{
		TotalCount: len(occurrences),
		GroupID:    uuid.New(),
		SessionIDs: make([]int64, 0, len(occurrences)),
		Timezone:   tz,
	}

	loc, err := timezone.LoadZone(tz.Name)
	if err != nil {
		return result, err
	}

	for i, o := range occurrences {
		session := &model.ClassSession{
			GroupID:     result.GroupID,
			TutorID:     meta.TutorID,
			CourseID:    meta.CourseID,
			Title:       meta.Title,
			Description: meta.Description,
			Date:        timezone.FormatDate(o.Date),
			StartTime:   timezone.FormatClock(o.Start),
			EndTime:     timezone.FormatClock(o.End),
			Timezone:    tz.Name,
			StartUTC:    timezone.ToUTC(o.Date, o.Start, loc),
			EndUTC:      timezone.ToUTC(o.Date, o.End, loc),
		}
		if i == 0 {
			session.AttachmentURL = meta.AttachmentURL
		}

		if err := s.creator.Create(ctx, session); err != nil {
			s.logger.Error("Failed to create session",
				zap.String("group_id", result.GroupID.String()),
				zap.Int64("tutor_id", meta.TutorID),
				zap.String("date", session.Date),
				zap.Int("created", result.CreatedCount),
				zap.Int("total", result.TotalCount),
				zap.Error(err))

			creationErr := &model.CreationError{
				Created: result.CreatedCount,
				Total:   result.TotalCount,
				Date:    o.Date,
				Err:     err,
			}
			if s.remover != nil && result.CreatedCount > 0 {
				creationErr.RolledBack = s.compensate(ctx, result.SessionIDs)
				result.RolledBack = creationErr.RolledBack
			}
			result.FirstError = mo.Some(creationErr.Error())
			return result, creationErr
		}

		result.CreatedCount++
		result.SessionIDs = append(result.SessionIDs, session.ID)
	}

	s.logger.Info("Sessions created",
		zap.String("group_id", result.GroupID.String()),
		zap.Int64("tutor_id", meta.TutorID),
		zap.Int("count", result.CreatedCount))

	return result, nil
}

// compensate удаляет созданные занятия в обратном порядке.
// Возвращает true, если удалось удалить все.
func (s *Submitter) compensate(ctx context.Context, ids []int64) bool {
	ok := true
	for i := len(ids) - 1; i >= 0; i-- {
		if err := s.remover.Delete(ctx, ids[i]); err != nil {
			s.logger.Error("Failed to roll back session",
				zap.Int64("session_id", ids[i]),
				zap.Error(err))
			ok = false
		}
	}

	s.logger.Warn("Rolled back partially created series",
		zap.Int("sessions", len(ids)),
		zap.Bool("complete", ok))

	return ok
}

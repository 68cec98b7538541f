package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_sessions/internal/model"
	"github.com/Freeeeeet/tutor_sessions/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/mo"
	"go.uber.org/zap"
)

// SessionRepository занятия, созданные из заявок
type SessionRepository struct {
	*base.Repository
	logger *zap.Logger
}

func NewSessionRepository(pool *pgxpool.Pool, logger *zap.Logger) *SessionRepository {
	return &SessionRepository{
		Repository: base.NewRepository(pool),
		logger:     logger,
	}
}

// Create создаёт занятие, только если текущая доступность учителя всё ещё
// содержит его UTC-интервал. Иначе возвращает model.ErrSlotUnavailable.
func (r *SessionRepository) Create(ctx context.Context, session *model.ClassSession) error {
	query := `
		INSERT INTO class_sessions (group_id, tutor_id, course_id, title, description,
			session_date, start_time, end_time, timezone, attachment_url)
		SELECT $1::uuid, $2::bigint, $3::bigint, $4::text, $5::text,
			$6::date, $7::time, $8::time, $9::text, NULLIF($10::text, '')
		WHERE EXISTS (
			SELECT 1 FROM availability_slots
			WHERE tutor_id = $2::bigint AND start_utc <= $11::timestamptz AND end_utc >= $12::timestamptz
		)
		RETURNING id, created_at
	`

	err := r.InTx(ctx, func(q base.Querier) error {
		// блокируем слоты учителя до конца транзакции
		if _, err := q.Exec(ctx, `SELECT id FROM availability_slots WHERE tutor_id = $1 FOR SHARE`, session.TutorID); err != nil {
			return fmt.Errorf("lock availability: %w", err)
		}

		return q.QueryRow(
			ctx, query,
			session.GroupID,
			session.TutorID,
			session.CourseID.ToPointer(),
			session.Title,
			session.Description,
			session.Date,
			session.StartTime,
			session.EndTime,
			session.Timezone,
			session.AttachmentURL,
			session.StartUTC,
			session.EndUTC,
		).Scan(&session.ID, &session.CreatedAt)
	})

	if err != nil {
		if base.IsNotFound(err) {
			r.logger.Warn("Availability changed before commit",
				zap.Int64("tutor_id", session.TutorID),
				zap.String("date", session.Date),
				zap.String("start_time", session.StartTime))
			return model.ErrSlotUnavailable
		}
		return fmt.Errorf("create session: %w", err)
	}

	return nil
}

// Delete удаляет занятие
func (r *SessionRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.Pool().Exec(ctx, `DELETE FROM class_sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("session not found")
	}
	return nil
}

// GetByGroupID получает все занятия серии в порядке дат
func (r *SessionRepository) GetByGroupID(ctx context.Context, groupID uuid.UUID) ([]*model.ClassSession, error) {
	query := `
		SELECT id, group_id, tutor_id, course_id, title, description,
			to_char(session_date, 'YYYY-MM-DD'), to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'),
			timezone, COALESCE(attachment_url, ''), created_at
		FROM class_sessions
		WHERE group_id = $1
		ORDER BY session_date, start_time, id
	`

	rows, err := r.Pool().Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("get sessions by group: %w", err)
	}
	defer rows.Close()

	var sessions []*model.ClassSession
	for rows.Next() {
		var (
			session  model.ClassSession
			courseID *int64
		)
		err := rows.Scan(
			&session.ID,
			&session.GroupID,
			&session.TutorID,
			&courseID,
			&session.Title,
			&session.Description,
			&session.Date,
			&session.StartTime,
			&session.EndTime,
			&session.Timezone,
			&session.AttachmentURL,
			&session.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		session.CourseID = mo.PointerToOption(courseID)
		sessions = append(sessions, &session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}

	return sessions, nil
}

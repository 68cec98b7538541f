package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_sessions/internal/model"
	"github.com/Freeeeeet/tutor_sessions/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/mo"
)

type UserRepository struct {
	*base.Repository
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{Repository: base.NewRepository(pool)}
}

// GetByID получает пользователя по ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `
		SELECT id, telegram_id, first_name, last_name, is_tutor, timezone, created_at
		FROM users
		WHERE id = $1
	`

	var (
		user       model.User
		telegramID *int64
		tz         *string
	)
	err := r.Pool().QueryRow(ctx, query, id).Scan(
		&user.ID,
		&telegramID,
		&user.FirstName,
		&user.LastName,
		&user.IsTutor,
		&tz,
		&user.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil // Пользователь не найден
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}

	user.TelegramID = mo.PointerToOption(telegramID)
	user.Timezone = mo.PointerToOption(tz)

	return &user, nil
}

// GetTimezone возвращает сохранённую зону пользователя; отсутствие зоны не ошибка
func (r *UserRepository) GetTimezone(ctx context.Context, id int64) (mo.Option[string], error) {
	query := `SELECT timezone FROM users WHERE id = $1`

	var tz *string
	err := r.Pool().QueryRow(ctx, query, id).Scan(&tz)
	if err != nil {
		if base.IsNotFound(err) {
			return mo.None[string](), nil
		}
		return mo.None[string](), fmt.Errorf("get user timezone: %w", err)
	}

	if tz == nil || *tz == "" {
		return mo.None[string](), nil
	}
	return mo.Some(*tz), nil
}

// SetTimezone сохраняет зону пользователя
func (r *UserRepository) SetTimezone(ctx context.Context, id int64, tz string) error {
	tag, err := r.Pool().Exec(ctx, `UPDATE users SET timezone = $1 WHERE id = $2`, tz, id)
	if err != nil {
		return fmt.Errorf("set user timezone: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

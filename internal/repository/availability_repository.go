package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_sessions/internal/model"
	"github.com/Freeeeeet/tutor_sessions/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AvailabilityRepository слоты доступности учителей
type AvailabilityRepository struct {
	*base.Repository
}

func NewAvailabilityRepository(pool *pgxpool.Pool) *AvailabilityRepository {
	return &AvailabilityRepository{Repository: base.NewRepository(pool)}
}

// GetByTutorID получает все слоты учителя, границы в UTC
func (r *AvailabilityRepository) GetByTutorID(ctx context.Context, tutorID int64) ([]*model.AvailabilitySlot, error) {
	query := `
		SELECT id, tutor_id, start_utc, end_utc, created_at
		FROM availability_slots
		WHERE tutor_id = $1
		ORDER BY start_utc
	`

	rows, err := r.Pool().Query(ctx, query, tutorID)
	if err != nil {
		return nil, fmt.Errorf("get availability by tutor: %w", err)
	}
	defer rows.Close()

	var slots []*model.AvailabilitySlot
	for rows.Next() {
		var slot model.AvailabilitySlot
		err := rows.Scan(
			&slot.ID,
			&slot.TutorID,
			&slot.StartUTC,
			&slot.EndUTC,
			&slot.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan availability slot: %w", err)
		}
		slot.StartUTC = slot.StartUTC.UTC()
		slot.EndUTC = slot.EndUTC.UTC()
		slots = append(slots, &slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate availability slots: %w", err)
	}

	return slots, nil
}

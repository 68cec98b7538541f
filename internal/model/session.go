package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/mo"
)

// ClassSession занятие в том виде, в каком оно сохраняется.
// Хранится дата, локальное время и IANA-зона, а не единая UTC-метка,
// чтобы клиенты могли пересчитать время для своей зоны.
type ClassSession struct {
	ID            int64            `json:"id"`
	GroupID       uuid.UUID        `json:"group_id"` // общий для всех занятий одной заявки
	TutorID       int64            `json:"tutor_id"`
	CourseID      mo.Option[int64] `json:"course_id"`
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	Date          string           `json:"date"`       // YYYY-MM-DD
	StartTime     string           `json:"start_time"` // HH:MM
	EndTime       string           `json:"end_time"`   // HH:MM
	Timezone      string           `json:"timezone"`
	AttachmentURL string           `json:"attachment_url,omitempty"` // только у первого занятия серии
	CreatedAt     time.Time        `json:"created_at"`

	// UTC-границы для проверки доступности при записи (не из БД)
	StartUTC time.Time `json:"-"`
	EndUTC   time.Time `json:"-"`
}

// SessionMeta общие данные заявки, одинаковые для всех занятий серии
type SessionMeta struct {
	TutorID       int64
	CourseID      mo.Option[int64]
	Title         string
	Description   string
	AttachmentURL string
}

package model

import (
	"time"

	"github.com/samber/mo"
)

type User struct {
	ID         int64             `json:"id"`
	TelegramID mo.Option[int64]  `json:"telegram_id"` // нужен для уведомлений
	FirstName  string            `json:"first_name"`
	LastName   string            `json:"last_name"`
	IsTutor    bool              `json:"is_tutor"`
	Timezone   mo.Option[string] `json:"timezone"` // IANA, например Europe/Moscow
	CreatedAt  time.Time         `json:"created_at"`
}

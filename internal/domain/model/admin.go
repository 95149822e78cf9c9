package model

import (
	"time"

	"github.com/mhmad0m0/modcatalog/internal/domain/enums"
)

type Admin struct {
	TelegramID int64           `json:"telegram_id"`
	Username   string          `json:"username"`
	Role       enums.AdminRole `json:"role"`
	CreatedAt  time.Time       `json:"created_at"`
}

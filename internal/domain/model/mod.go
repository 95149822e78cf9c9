package model

import (
	"time"

	"github.com/mhmad0m0/modcatalog/internal/domain/enums"
)

type Mod struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	DownloadLink  string          `json:"download_link"`
	ImageKey      string          `json:"image_key"`
	CategoryID    *int64          `json:"category_id"`
	UploaderTGID  int64           `json:"uploader_tg_id"`
	Status        enums.ModStatus `json:"status"`
	ViewCount     int64           `json:"view_count"`
	DownloadCount int64           `json:"download_count"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

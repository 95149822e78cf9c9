package dto

import "time"

type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ModSummaryResponse struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	CategoryID    *int64 `json:"category_id,omitempty"`
	ImageURL      string `json:"image_url,omitempty"`
	ViewCount     int64  `json:"view_count"`
	DownloadCount int64  `json:"download_count"`
}

type ModDetailResponse struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	DownloadLink  string    `json:"download_link"`
	CategoryID    *int64    `json:"category_id,omitempty"`
	ImageURL      string    `json:"image_url,omitempty"`
	ViewCount     int64     `json:"view_count"`
	DownloadCount int64     `json:"download_count"`
	CreatedAt     time.Time `json:"created_at"`
}

type HomeResponse struct {
	Mods       []ModSummaryResponse `json:"mods"`
	Categories []CategoryResponse   `json:"categories"`
}

type CategoryModsResponse struct {
	Category CategoryResponse     `json:"category"`
	Mods     []ModSummaryResponse `json:"mods"`
}

type SearchResponse struct {
	Query string               `json:"query"`
	Mods  []ModSummaryResponse `json:"mods"`
}

package entity

import "time"

type RankingItem struct {
	ID          string                 `json:"id"`
	RankingID   string                 `json:"rankingId"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	ImageURL    *string                `json:"imageUrl,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	Position    int                    `json:"position"`
	CreatedAt   time.Time              `json:"createdAt"`
	UpdatedAt   time.Time              `json:"updatedAt"`
}

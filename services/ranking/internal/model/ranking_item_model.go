package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type RankingItemModel struct {
	ID          string         `gorm:"type:uuid;primary_key" json:"id"`
	RankingID   string         `gorm:"type:uuid;not null;index" json:"ranking_id"`
	Title       string         `gorm:"type:varchar(100);not null" json:"title"`
	Description string         `gorm:"type:varchar(500)" json:"description"`
	ImageURL    *string        `gorm:"type:varchar(2048)" json:"image_url"`
	Metadata    datatypes.JSON `json:"metadata"`
	Position    int            `gorm:"not null;index" json:"position"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (RankingItemModel) TableName() string {
	return "ranking_items"
}

func (i *RankingItemModel) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return nil
}

// AutoMigrate creates the tables for SQLite dev databases and tests.
// PostgreSQL schemas are owned by the goose migrations.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&RankingModel{}, &RankingItemModel{})
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RankingModel struct {
	ID               string         `gorm:"type:uuid;primary_key" json:"id"`
	AuthorID         string         `gorm:"type:varchar(64);not null;index" json:"author_id"`
	Title            string         `gorm:"type:varchar(100);not null" json:"title"`
	Slug             string         `gorm:"type:varchar(160);not null;uniqueIndex" json:"slug"`
	Description      string         `gorm:"type:varchar(500);not null" json:"description"`
	CoverImage       *string        `gorm:"type:varchar(2048)" json:"cover_image"`
	Category         string         `gorm:"type:varchar(50);index" json:"category"`
	Status           string         `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	CycleEndDate     time.Time      `gorm:"not null" json:"cycle_end_date"`
	AllowSuggestions bool           `gorm:"not null;default:false" json:"allow_suggestions"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (RankingModel) TableName() string {
	return "rankings"
}

func (r *RankingModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

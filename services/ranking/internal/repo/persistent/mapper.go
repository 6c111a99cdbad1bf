package persistent

import (
	"encoding/json"
	"time"

	"rankings-admin/services/ranking/internal/entity"
	"rankings-admin/services/ranking/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func ToRankingEntity(m *model.RankingModel) *entity.Ranking {
	if m == nil {
		return nil
	}

	ranking := &entity.Ranking{
		ID:               m.ID,
		AuthorID:         m.AuthorID,
		Title:            m.Title,
		Slug:             m.Slug,
		Description:      m.Description,
		CoverImage:       m.CoverImage,
		Category:         m.Category,
		Status:           entity.RankingStatus(m.Status),
		CycleEndDate:     m.CycleEndDate,
		AllowSuggestions: m.AllowSuggestions,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}

	if m.DeletedAt.Valid {
		deletedAt := m.DeletedAt.Time
		ranking.DeletedAt = &deletedAt
	}

	return ranking
}

func ToRankingModel(e *entity.Ranking) *model.RankingModel {
	if e == nil {
		return nil
	}

	ranking := &model.RankingModel{
		ID:               e.ID,
		AuthorID:         e.AuthorID,
		Title:            e.Title,
		Slug:             e.Slug,
		Description:      e.Description,
		CoverImage:       e.CoverImage,
		Category:         e.Category,
		Status:           string(e.Status),
		CycleEndDate:     e.CycleEndDate,
		AllowSuggestions: e.AllowSuggestions,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}

	if e.DeletedAt != nil {
		ranking.DeletedAt = gorm.DeletedAt{Time: *e.DeletedAt, Valid: true}
	}

	return ranking
}

func ToRankingItemEntity(m *model.RankingItemModel) *entity.RankingItem {
	if m == nil {
		return nil
	}

	return &entity.RankingItem{
		ID:          m.ID,
		RankingID:   m.RankingID,
		Title:       m.Title,
		Description: m.Description,
		ImageURL:    m.ImageURL,
		Metadata:    decodeMetadata(m.Metadata),
		Position:    m.Position,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func ToRankingItemModel(e *entity.RankingItem) *model.RankingItemModel {
	if e == nil {
		return nil
	}

	return &model.RankingItemModel{
		ID:          e.ID,
		RankingID:   e.RankingID,
		Title:       e.Title,
		Description: e.Description,
		ImageURL:    e.ImageURL,
		Metadata:    encodeMetadata(e.Metadata),
		Position:    e.Position,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func decodeMetadata(raw datatypes.JSON) map[string]interface{} {
	if len(raw) == 0 {
		return nil
	}
	var metadata map[string]interface{}
	if err := json.Unmarshal(raw, &metadata); err != nil {
		return nil
	}
	return metadata
}

func encodeMetadata(metadata map[string]interface{}) datatypes.JSON {
	if len(metadata) == 0 {
		return nil
	}
	raw, err := json.Marshal(metadata)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}

// cycleEnd is the end of a voting cycle that starts at now.
func cycleEnd(now time.Time, days int) time.Time {
	return now.AddDate(0, 0, days)
}

package persistent

import (
	"context"
	"errors"
	"time"

	"rankings-admin/pkg/logger"
	"rankings-admin/services/ranking/internal/entity"
	"rankings-admin/services/ranking/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type itemRepository struct {
	db     *gorm.DB
	logger *logger.Logger
	now    Clock
}

func NewItemRepository(db *gorm.DB, logger *logger.Logger) ItemRepository {
	return &itemRepository{db: db, logger: logger, now: time.Now}
}

func (r *itemRepository) ListByRanking(ctx context.Context, rankingID string) ([]*entity.RankingItem, error) {
	itemModels, err := r.list(r.db.WithContext(ctx), rankingID)
	if err != nil {
		return nil, storageFailure(r.logger, "item.list", MsgFetchItems, err, "ranking_id", rankingID)
	}
	return toItemEntities(itemModels), nil
}

func (r *itemRepository) FindByID(ctx context.Context, rankingID, id string) (*entity.RankingItem, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}

	var itemModel model.RankingItemModel
	err := r.db.WithContext(ctx).Where("ranking_id = ? AND id = ?", rankingID, id).First(&itemModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storageFailure(r.logger, "item.find_by_id", MsgFetchItem, err, "ranking_id", rankingID, "item_id", id)
	}
	return ToRankingItemEntity(&itemModel), nil
}

// Create appends the item after the current last position.
func (r *itemRepository) Create(ctx context.Context, dto entity.CreateItemDTO) (*entity.RankingItem, error) {
	now := r.now()
	itemModel := ToRankingItemModel(&entity.RankingItem{
		RankingID:   dto.RankingID,
		Title:       dto.Title,
		Description: dto.Description,
		ImageURL:    dto.ImageURL,
		Metadata:    dto.Metadata,
		CreatedAt:   now,
		UpdatedAt:   now,
	})

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockRanking(tx, dto.RankingID); err != nil {
			return err
		}

		var maxPosition int
		if err := tx.Model(&model.RankingItemModel{}).
			Where("ranking_id = ?", dto.RankingID).
			Select("COALESCE(MAX(position), 0)").
			Scan(&maxPosition).Error; err != nil {
			return err
		}

		itemModel.Position = maxPosition + 1
		return tx.Create(itemModel).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storageFailure(r.logger, "item.create", MsgCreateItem, err, "ranking_id", dto.RankingID)
	}

	return ToRankingItemEntity(itemModel), nil
}

func (r *itemRepository) Update(ctx context.Context, dto entity.UpdateItemDTO) (*entity.RankingItem, error) {
	existing, err := r.FindByID(ctx, dto.RankingID, dto.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	applyItemUpdate(existing, dto, r.now())

	itemModel := ToRankingItemModel(existing)
	if err := r.db.WithContext(ctx).Save(itemModel).Error; err != nil {
		return nil, storageFailure(r.logger, "item.update", MsgUpdateItem, err, "ranking_id", dto.RankingID, "item_id", dto.ID)
	}
	return ToRankingItemEntity(itemModel), nil
}

// Delete removes the item and shifts every later item up one place.
func (r *itemRepository) Delete(ctx context.Context, rankingID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockRanking(tx, rankingID); err != nil {
			return err
		}

		var itemModel model.RankingItemModel
		if err := tx.Where("ranking_id = ? AND id = ?", rankingID, id).First(&itemModel).Error; err != nil {
			return err
		}

		if err := tx.Delete(&itemModel).Error; err != nil {
			return err
		}

		return tx.Model(&model.RankingItemModel{}).
			Where("ranking_id = ? AND position > ?", rankingID, itemModel.Position).
			UpdateColumn("position", gorm.Expr("position - ?", 1)).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return storageFailure(r.logger, "item.delete", MsgDeleteItem, err, "ranking_id", rankingID, "item_id", id)
	}
	return nil
}

func (r *itemRepository) Reorder(ctx context.Context, rankingID string, orderedIDs []string) ([]*entity.RankingItem, error) {
	var reordered []*entity.RankingItem

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockRanking(tx, rankingID); err != nil {
			return err
		}

		itemModels, err := r.list(tx, rankingID)
		if err != nil {
			return err
		}

		reordered, err = reorderItems(toItemEntities(itemModels), orderedIDs)
		if err != nil {
			return err
		}

		now := r.now()
		for _, item := range reordered {
			item.UpdatedAt = now
			if err := tx.Model(&model.RankingItemModel{}).
				Where("id = ?", item.ID).
				Updates(map[string]interface{}{"position": item.Position, "updated_at": now}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, ErrInvalidOrder) {
		return nil, ErrInvalidOrder
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storageFailure(r.logger, "item.reorder", MsgReorderItems, err, "ranking_id", rankingID)
	}

	return reordered, nil
}

// lockRanking takes a row lock on the parent ranking so concurrent position
// writes for the same ranking run one after another.
func lockRanking(tx *gorm.DB, rankingID string) error {
	return lockRankingRow(tx, rankingID).Error
}

func lockRankingRow(tx *gorm.DB, rankingID string) *gorm.DB {
	var rankingModel model.RankingModel
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ?", rankingID).
		First(&rankingModel)
}

func (r *itemRepository) list(db *gorm.DB, rankingID string) ([]model.RankingItemModel, error) {
	var itemModels []model.RankingItemModel
	err := db.Where("ranking_id = ?", rankingID).Order("position ASC").Find(&itemModels).Error
	return itemModels, err
}

func toItemEntities(itemModels []model.RankingItemModel) []*entity.RankingItem {
	items := make([]*entity.RankingItem, len(itemModels))
	for i := range itemModels {
		items[i] = ToRankingItemEntity(&itemModels[i])
	}
	return items
}

var _ ItemRepository = (*itemRepository)(nil)

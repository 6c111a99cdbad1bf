package persistent

import (
	"context"
	"errors"
	"time"

	"rankings-admin/pkg/logger"
	"rankings-admin/pkg/slug"
	"rankings-admin/services/ranking/internal/entity"
	"rankings-admin/services/ranking/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type rankingRepository struct {
	db     *gorm.DB
	slugs  *slug.Generator
	logger *logger.Logger
	now    Clock
}

func NewRankingRepository(db *gorm.DB, slugs *slug.Generator, logger *logger.Logger) RankingRepository {
	return &rankingRepository{db: db, slugs: slugs, logger: logger, now: time.Now}
}

func (r *rankingRepository) Create(ctx context.Context, dto entity.CreateRankingDTO) (*entity.Ranking, error) {
	rankingModel := ToRankingModel(newRanking(dto, r.slugs, r.now()))

	if err := r.db.WithContext(ctx).Create(rankingModel).Error; err != nil {
		return nil, storageFailure(r.logger, "ranking.create", MsgCreateRanking, err, "title", dto.Title)
	}

	return ToRankingEntity(rankingModel), nil
}

func (r *rankingRepository) FindByID(ctx context.Context, id string) (*entity.Ranking, error) {
	// Ids are uuid columns; anything else can never match a row.
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}

	rankingModel, err := r.first(ctx, "id = ?", id)
	if err != nil {
		return nil, storageFailure(r.logger, "ranking.find_by_id", MsgFetchRanking, err, "ranking_id", id)
	}
	return ToRankingEntity(rankingModel), nil
}

func (r *rankingRepository) FindBySlug(ctx context.Context, slug string) (*entity.Ranking, error) {
	rankingModel, err := r.first(ctx, "slug = ?", slug)
	if err != nil {
		return nil, storageFailure(r.logger, "ranking.find_by_slug", MsgFetchRanking, err, "slug", slug)
	}
	return ToRankingEntity(rankingModel), nil
}

func (r *rankingRepository) FindAll(ctx context.Context) ([]*entity.Ranking, error) {
	var rankingModels []model.RankingModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rankingModels).Error; err != nil {
		return nil, storageFailure(r.logger, "ranking.find_all", MsgFetchRankings, err)
	}

	rankings := make([]*entity.Ranking, len(rankingModels))
	for i := range rankingModels {
		rankings[i] = ToRankingEntity(&rankingModels[i])
	}
	return rankings, nil
}

func (r *rankingRepository) Update(ctx context.Context, dto entity.UpdateRankingDTO) (*entity.Ranking, error) {
	existing, err := r.FindByID(ctx, dto.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	applyRankingUpdate(existing, dto, r.slugs, r.now())

	rankingModel := ToRankingModel(existing)
	if err := r.db.WithContext(ctx).Save(rankingModel).Error; err != nil {
		return nil, storageFailure(r.logger, "ranking.update", MsgUpdateRanking, err, "ranking_id", dto.ID)
	}

	return ToRankingEntity(rankingModel), nil
}

// Delete is a soft delete: gorm sets deleted_at and the default scope hides the row afterwards.
func (r *rankingRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}

	result := r.db.WithContext(ctx).Delete(&model.RankingModel{}, "id = ?", id)
	if result.Error != nil {
		return storageFailure(r.logger, "ranking.delete", MsgDeleteRanking, result.Error, "ranking_id", id)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *rankingRepository) first(ctx context.Context, query string, args ...interface{}) (*model.RankingModel, error) {
	var rankingModel model.RankingModel
	err := r.db.WithContext(ctx).Where(query, args...).First(&rankingModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rankingModel, nil
}

var _ RankingRepository = (*rankingRepository)(nil)

package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"rankings-admin/pkg/logger"
	"rankings-admin/pkg/validation"
	"rankings-admin/services/ranking/internal/entity"
	"rankings-admin/services/ranking/internal/repo/persistent"
)

type ItemUseCase interface {
	ListItems(ctx context.Context, rankingID string) ([]*entity.RankingItem, error)
	AddItem(ctx context.Context, dto entity.CreateItemDTO) (*entity.RankingItem, error)
	UpdateItem(ctx context.Context, dto entity.UpdateItemDTO) (*entity.RankingItem, error)
	RemoveItem(ctx context.Context, rankingID, itemID string) error
	ReorderItems(ctx context.Context, rankingID string, itemIDs []string) ([]*entity.RankingItem, error)
}

type itemUseCase struct {
	rankingRepo persistent.RankingRepository
	itemRepo    persistent.ItemRepository
	validator   *validation.Validator
	logger      *logger.Logger
}

func NewItemUseCase(rankingRepo persistent.RankingRepository, itemRepo persistent.ItemRepository, logger *logger.Logger) ItemUseCase {
	return &itemUseCase{
		rankingRepo: rankingRepo,
		itemRepo:    itemRepo,
		validator:   validation.New(),
		logger:      logger,
	}
}

func (uc *itemUseCase) ListItems(ctx context.Context, rankingID string) ([]*entity.RankingItem, error) {
	if err := uc.ensureRanking(ctx, rankingID); err != nil {
		return nil, err
	}

	items, err := uc.itemRepo.ListByRanking(ctx, rankingID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

func (uc *itemUseCase) AddItem(ctx context.Context, dto entity.CreateItemDTO) (*entity.RankingItem, error) {
	if err := uc.ensureRanking(ctx, dto.RankingID); err != nil {
		return nil, err
	}

	dto.Title = uc.validator.Sanitize(dto.Title)
	dto.Description = uc.validator.Sanitize(dto.Description)
	dto.ImageURL = trimOptional(dto.ImageURL)

	schema := validation.ItemSchema{
		Title:       dto.Title,
		Description: dto.Description,
		ImageURL:    valueOf(dto.ImageURL),
	}
	if err := newValidationError(uc.validator.Struct(schema)); err != nil {
		return nil, err
	}

	item, err := uc.itemRepo.Create(ctx, dto)
	if errors.Is(err, persistent.ErrNotFound) {
		return nil, ErrRankingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("add item: %w", err)
	}
	return item, nil
}

func (uc *itemUseCase) UpdateItem(ctx context.Context, dto entity.UpdateItemDTO) (*entity.RankingItem, error) {
	if err := uc.ensureRanking(ctx, dto.RankingID); err != nil {
		return nil, err
	}

	var schema validation.ItemSchema
	var fields []string
	if dto.Title != nil {
		title := uc.validator.Sanitize(*dto.Title)
		dto.Title = &title
		schema.Title = title
		fields = append(fields, "Title")
	}
	if dto.Description != nil {
		description := uc.validator.Sanitize(*dto.Description)
		dto.Description = &description
		schema.Description = description
		fields = append(fields, "Description")
	}
	if dto.ImageURL != nil {
		imageURL := strings.TrimSpace(*dto.ImageURL)
		dto.ImageURL = &imageURL
		schema.ImageURL = imageURL
		fields = append(fields, "ImageURL")
	}
	if err := newValidationError(uc.validator.Partial(schema, fields...)); err != nil {
		return nil, err
	}

	item, err := uc.itemRepo.Update(ctx, dto)
	if errors.Is(err, persistent.ErrNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	return item, nil
}

func (uc *itemUseCase) RemoveItem(ctx context.Context, rankingID, itemID string) error {
	if err := uc.ensureRanking(ctx, rankingID); err != nil {
		return err
	}

	err := uc.itemRepo.Delete(ctx, rankingID, itemID)
	if errors.Is(err, persistent.ErrNotFound) {
		return ErrItemNotFound
	}
	if err != nil {
		return fmt.Errorf("remove item: %w", err)
	}
	return nil
}

func (uc *itemUseCase) ReorderItems(ctx context.Context, rankingID string, itemIDs []string) ([]*entity.RankingItem, error) {
	if err := uc.ensureRanking(ctx, rankingID); err != nil {
		return nil, err
	}
	items, err := uc.itemRepo.Reorder(ctx, rankingID, itemIDs)
	if errors.Is(err, persistent.ErrInvalidOrder) {
		return nil, fieldError("itemIds", persistent.ErrInvalidOrder.Error())
	}
	if errors.Is(err, persistent.ErrNotFound) {
		return nil, ErrRankingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reorder items: %w", err)
	}

	uc.logger.With("op", "item.reorder", "ranking_id", rankingID).Info("reordered %d items", len(items))
	return items, nil
}

func (uc *itemUseCase) ensureRanking(ctx context.Context, rankingID string) error {
	ranking, err := uc.rankingRepo.FindByID(ctx, rankingID)
	if err != nil {
		return fmt.Errorf("get ranking: %w", err)
	}
	if ranking == nil {
		return ErrRankingNotFound
	}
	return nil
}

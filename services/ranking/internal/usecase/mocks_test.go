package usecase

import (
	"context"
	"mime/multipart"

	"rankings-admin/services/ranking/internal/entity"
	"rankings-admin/services/ranking/internal/repo/persistent"

	"github.com/stretchr/testify/mock"
)

type MockRankingRepository struct {
	mock.Mock
}

var _ persistent.RankingRepository = (*MockRankingRepository)(nil)

func (m *MockRankingRepository) Create(ctx context.Context, dto entity.CreateRankingDTO) (*entity.Ranking, error) {
	args := m.Called(ctx, dto)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Ranking), args.Error(1)
}

func (m *MockRankingRepository) FindByID(ctx context.Context, id string) (*entity.Ranking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Ranking), args.Error(1)
}

func (m *MockRankingRepository) FindBySlug(ctx context.Context, slug string) (*entity.Ranking, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Ranking), args.Error(1)
}

func (m *MockRankingRepository) FindAll(ctx context.Context) ([]*entity.Ranking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Ranking), args.Error(1)
}

func (m *MockRankingRepository) Update(ctx context.Context, dto entity.UpdateRankingDTO) (*entity.Ranking, error) {
	args := m.Called(ctx, dto)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Ranking), args.Error(1)
}

func (m *MockRankingRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockItemRepository struct {
	mock.Mock
}

var _ persistent.ItemRepository = (*MockItemRepository)(nil)

func (m *MockItemRepository) ListByRanking(ctx context.Context, rankingID string) ([]*entity.RankingItem, error) {
	args := m.Called(ctx, rankingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.RankingItem), args.Error(1)
}

func (m *MockItemRepository) FindByID(ctx context.Context, rankingID, id string) (*entity.RankingItem, error) {
	args := m.Called(ctx, rankingID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.RankingItem), args.Error(1)
}

func (m *MockItemRepository) Create(ctx context.Context, dto entity.CreateItemDTO) (*entity.RankingItem, error) {
	args := m.Called(ctx, dto)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.RankingItem), args.Error(1)
}

func (m *MockItemRepository) Update(ctx context.Context, dto entity.UpdateItemDTO) (*entity.RankingItem, error) {
	args := m.Called(ctx, dto)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.RankingItem), args.Error(1)
}

func (m *MockItemRepository) Delete(ctx context.Context, rankingID, id string) error {
	args := m.Called(ctx, rankingID, id)
	return args.Error(0)
}

func (m *MockItemRepository) Reorder(ctx context.Context, rankingID string, orderedIDs []string) ([]*entity.RankingItem, error) {
	args := m.Called(ctx, rankingID, orderedIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.RankingItem), args.Error(1)
}

var _ ImageStorage = (*MockImageStorage)(nil)

type MockImageStorage struct {
	mock.Mock
}

func (m *MockImageStorage) UploadFile(key string, file multipart.File, contentType string) (string, error) {
	args := m.Called(key, file, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockImageStorage) DeleteFile(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, routingKey string, payload interface{}) error {
	args := m.Called(ctx, routingKey, payload)
	return args.Error(0)
}

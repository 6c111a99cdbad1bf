package http

import (
	"context"
	"mime/multipart"

	"rankings-admin/services/ranking/internal/entity"
	"rankings-admin/services/ranking/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

// MockRankingUseCase is a mock implementation of RankingUseCase
type MockRankingUseCase struct {
	mock.Mock
}

func (m *MockRankingUseCase) CreateRanking(ctx context.Context, dto entity.CreateRankingDTO) (*entity.Ranking, error) {
	args := m.Called(dto)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Ranking), args.Error(1)
}

func (m *MockRankingUseCase) GetRanking(ctx context.Context, id string) (*entity.Ranking, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Ranking), args.Error(1)
}

func (m *MockRankingUseCase) GetRankingBySlug(ctx context.Context, slug string) (*entity.Ranking, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Ranking), args.Error(1)
}

func (m *MockRankingUseCase) ListRankings(ctx context.Context, query entity.RankingQuery) (*entity.RankingPage, error) {
	args := m.Called(query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.RankingPage), args.Error(1)
}

func (m *MockRankingUseCase) UpdateRanking(ctx context.Context, dto entity.UpdateRankingDTO) (*entity.Ranking, error) {
	args := m.Called(dto)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Ranking), args.Error(1)
}

func (m *MockRankingUseCase) DeleteRanking(ctx context.Context, id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockRankingUseCase) SetCoverImage(ctx context.Context, id string, file multipart.File, filename, contentType string) (*entity.Ranking, error) {
	args := m.Called(id, filename, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Ranking), args.Error(1)
}

func (m *MockRankingUseCase) PublicRankings(ctx context.Context, query entity.RankingQuery) (*entity.RankingPage, error) {
	args := m.Called(query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.RankingPage), args.Error(1)
}

func (m *MockRankingUseCase) PublicRanking(ctx context.Context, slug string) (*entity.Ranking, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Ranking), args.Error(1)
}

var _ usecase.RankingUseCase = (*MockRankingUseCase)(nil)

// MockItemUseCase is a mock implementation of ItemUseCase
type MockItemUseCase struct {
	mock.Mock
}

func (m *MockItemUseCase) ListItems(ctx context.Context, rankingID string) ([]*entity.RankingItem, error) {
	args := m.Called(rankingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.RankingItem), args.Error(1)
}

func (m *MockItemUseCase) AddItem(ctx context.Context, dto entity.CreateItemDTO) (*entity.RankingItem, error) {
	args := m.Called(dto)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.RankingItem), args.Error(1)
}

func (m *MockItemUseCase) UpdateItem(ctx context.Context, dto entity.UpdateItemDTO) (*entity.RankingItem, error) {
	args := m.Called(dto)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.RankingItem), args.Error(1)
}

func (m *MockItemUseCase) RemoveItem(ctx context.Context, rankingID, itemID string) error {
	args := m.Called(rankingID, itemID)
	return args.Error(0)
}

func (m *MockItemUseCase) ReorderItems(ctx context.Context, rankingID string, itemIDs []string) ([]*entity.RankingItem, error) {
	args := m.Called(rankingID, itemIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.RankingItem), args.Error(1)
}

var _ usecase.ItemUseCase = (*MockItemUseCase)(nil)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

package persistent

import (
	"context"
	"errors"
	"sort"
	"time"

	"rankings-admin/pkg/logger"
	"rankings-admin/pkg/slug"
	"rankings-admin/services/ranking/internal/entity"
)

// Fixed messages returned in place of storage failures.
const (
	MsgCreateRanking = "failed to create ranking"
	MsgFetchRanking  = "failed to fetch ranking"
	MsgFetchRankings = "failed to fetch rankings"
	MsgUpdateRanking = "failed to update ranking"
	MsgDeleteRanking = "failed to delete ranking"

	MsgCreateItem   = "failed to create ranking item"
	MsgFetchItem    = "failed to fetch ranking item"
	MsgFetchItems   = "failed to fetch ranking items"
	MsgUpdateItem   = "failed to update ranking item"
	MsgDeleteItem   = "failed to delete ranking item"
	MsgReorderItems = "failed to reorder ranking items"
)

var (
	// ErrNotFound is returned by Create, Update, Delete and Reorder when the target row
	// or its parent ranking is absent.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidOrder means a reorder list is not a permutation of the ranking's items.
	ErrInvalidOrder = errors.New("item order must list every item of the ranking exactly once")
)

// RepositoryError hides the underlying storage failure behind a fixed message.
// The cause is logged where the error is produced and deliberately not wrapped.
type RepositoryError struct {
	Op      string
	Message string
}

func (e *RepositoryError) Error() string {
	return e.Message
}

type RankingRepository interface {
	Create(ctx context.Context, dto entity.CreateRankingDTO) (*entity.Ranking, error)
	// FindByID returns (nil, nil) when the ranking is absent or soft-deleted.
	FindByID(ctx context.Context, id string) (*entity.Ranking, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Ranking, error)
	FindAll(ctx context.Context) ([]*entity.Ranking, error)
	Update(ctx context.Context, dto entity.UpdateRankingDTO) (*entity.Ranking, error)
	Delete(ctx context.Context, id string) error
}

type ItemRepository interface {
	ListByRanking(ctx context.Context, rankingID string) ([]*entity.RankingItem, error)
	FindByID(ctx context.Context, rankingID, id string) (*entity.RankingItem, error)
	Create(ctx context.Context, dto entity.CreateItemDTO) (*entity.RankingItem, error)
	Update(ctx context.Context, dto entity.UpdateItemDTO) (*entity.RankingItem, error)
	Delete(ctx context.Context, rankingID, id string) error
	Reorder(ctx context.Context, rankingID string, orderedIDs []string) ([]*entity.RankingItem, error)
}

// Clock is swapped in tests to pin cycle end dates.
type Clock func() time.Time

func storageFailure(log *logger.Logger, op, message string, err error, keysAndValues ...interface{}) error {
	log.With(append([]interface{}{"op", op}, keysAndValues...)...).Error("%s: %v", message, err)
	return &RepositoryError{Op: op, Message: message}
}

func newRanking(dto entity.CreateRankingDTO, slugs *slug.Generator, now time.Time) *entity.Ranking {
	cycle := dto.CycleLength
	if cycle <= 0 {
		cycle = entity.DefaultCycleLengthDays
	}

	return &entity.Ranking{
		AuthorID:         dto.AuthorID,
		Title:            dto.Title,
		Slug:             slugs.Generate(dto.Title),
		Description:      dto.Description,
		CoverImage:       dto.CoverImage,
		Category:         dto.Category,
		Status:           entity.StatusFromActive(dto.IsActive),
		CycleEndDate:     cycleEnd(now, cycle),
		AllowSuggestions: dto.AllowSuggestions,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// applyRankingUpdate copies every supplied field onto r. A changed title
// gets a fresh slug and a supplied cycle length restarts the cycle at now.
func applyRankingUpdate(r *entity.Ranking, dto entity.UpdateRankingDTO, slugs *slug.Generator, now time.Time) {
	if dto.Title != nil && *dto.Title != r.Title {
		r.Title = *dto.Title
		r.Slug = slugs.Generate(r.Title)
	}
	if dto.Description != nil {
		r.Description = *dto.Description
	}
	if dto.CoverImage != nil {
		if *dto.CoverImage == "" {
			r.CoverImage = nil
		} else {
			cover := *dto.CoverImage
			r.CoverImage = &cover
		}
	}
	if dto.Category != nil {
		r.Category = *dto.Category
	}
	if dto.Status != nil {
		r.Status = *dto.Status
	}
	if dto.AllowSuggestions != nil {
		r.AllowSuggestions = *dto.AllowSuggestions
	}
	if dto.CycleLength != nil {
		r.CycleEndDate = cycleEnd(now, *dto.CycleLength)
	}
	r.UpdatedAt = now
}

func applyItemUpdate(item *entity.RankingItem, dto entity.UpdateItemDTO, now time.Time) {
	if dto.Title != nil {
		item.Title = *dto.Title
	}
	if dto.Description != nil {
		item.Description = *dto.Description
	}
	if dto.ImageURL != nil {
		if *dto.ImageURL == "" {
			item.ImageURL = nil
		} else {
			imageURL := *dto.ImageURL
			item.ImageURL = &imageURL
		}
	}
	if dto.Metadata != nil {
		item.Metadata = dto.Metadata
	}
	item.UpdatedAt = now
}

// reorderItems assigns positions 1..n following orderedIDs.
func reorderItems(items []*entity.RankingItem, orderedIDs []string) ([]*entity.RankingItem, error) {
	if len(items) != len(orderedIDs) {
		return nil, ErrInvalidOrder
	}

	byID := make(map[string]*entity.RankingItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	result := make([]*entity.RankingItem, 0, len(orderedIDs))
	for i, id := range orderedIDs {
		item, ok := byID[id]
		if !ok {
			return nil, ErrInvalidOrder
		}
		delete(byID, id)

		reordered := *item
		reordered.Position = i + 1
		result = append(result, &reordered)
	}

	return result, nil
}

func sortByPosition(items []*entity.RankingItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Position < items[j].Position
	})
}

func sortNewestFirst(rankings []*entity.Ranking) {
	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].CreatedAt.After(rankings[j].CreatedAt)
	})
}

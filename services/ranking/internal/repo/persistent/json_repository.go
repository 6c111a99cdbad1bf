package persistent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"rankings-admin/pkg/logger"
	"rankings-admin/pkg/slug"
	"rankings-admin/services/ranking/internal/entity"

	"github.com/google/uuid"
)

// JSONDocument is the layout of the static rankings resource. A bare array
// of rankings is accepted as well.
type JSONDocument struct {
	Rankings []*entity.Ranking     `json:"rankings"`
	Items    []*entity.RankingItem `json:"items"`
}

// JSONSource reads the resource from a local path or an http(s) URL, on every call.
type JSONSource struct {
	location string
	client   *http.Client
}

func NewJSONSource(location string) *JSONSource {
	return &JSONSource{
		location: location,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *JSONSource) Load(ctx context.Context) (*JSONDocument, error) {
	raw, err := s.read(ctx)
	if err != nil {
		return nil, err
	}

	raw = bytes.TrimSpace(raw)
	doc := &JSONDocument{}
	if len(raw) > 0 && raw[0] == '[' {
		if err := json.Unmarshal(raw, &doc.Rankings); err != nil {
			return nil, fmt.Errorf("decode rankings array: %w", err)
		}
		return doc, nil
	}
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, fmt.Errorf("decode rankings document: %w", err)
	}
	return doc, nil
}

func (s *JSONSource) read(ctx context.Context) ([]byte, error) {
	if !strings.HasPrefix(s.location, "http://") && !strings.HasPrefix(s.location, "https://") {
		return os.ReadFile(s.location)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.location, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", s.location, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// jsonRankingRepository serves reads from the JSON resource. Writes return
// the computed result but are never persisted.
type jsonRankingRepository struct {
	source *JSONSource
	slugs  *slug.Generator
	logger *logger.Logger
	now    Clock
}

func NewJSONRankingRepository(source *JSONSource, slugs *slug.Generator, logger *logger.Logger) RankingRepository {
	return &jsonRankingRepository{source: source, slugs: slugs, logger: logger, now: time.Now}
}

func (r *jsonRankingRepository) Create(ctx context.Context, dto entity.CreateRankingDTO) (*entity.Ranking, error) {
	ranking := newRanking(dto, r.slugs, r.now())
	ranking.ID = uuid.New().String()
	return ranking, nil
}

func (r *jsonRankingRepository) FindByID(ctx context.Context, id string) (*entity.Ranking, error) {
	return r.find(ctx, "ranking.find_by_id", func(ranking *entity.Ranking) bool { return ranking.ID == id }, "ranking_id", id)
}

func (r *jsonRankingRepository) FindBySlug(ctx context.Context, slug string) (*entity.Ranking, error) {
	return r.find(ctx, "ranking.find_by_slug", func(ranking *entity.Ranking) bool { return ranking.Slug == slug }, "slug", slug)
}

func (r *jsonRankingRepository) FindAll(ctx context.Context) ([]*entity.Ranking, error) {
	doc, err := r.source.Load(ctx)
	if err != nil {
		return nil, storageFailure(r.logger, "ranking.find_all", MsgFetchRankings, err)
	}

	rankings := make([]*entity.Ranking, 0, len(doc.Rankings))
	for _, ranking := range doc.Rankings {
		if ranking != nil {
			rankings = append(rankings, ranking)
		}
	}
	sortNewestFirst(rankings)
	return rankings, nil
}

func (r *jsonRankingRepository) Update(ctx context.Context, dto entity.UpdateRankingDTO) (*entity.Ranking, error) {
	existing, err := r.FindByID(ctx, dto.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	applyRankingUpdate(existing, dto, r.slugs, r.now())
	return existing, nil
}

func (r *jsonRankingRepository) Delete(ctx context.Context, id string) error {
	existing, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	return nil
}

func (r *jsonRankingRepository) find(ctx context.Context, op string, match func(*entity.Ranking) bool, keysAndValues ...interface{}) (*entity.Ranking, error) {
	doc, err := r.source.Load(ctx)
	if err != nil {
		return nil, storageFailure(r.logger, op, MsgFetchRanking, err, keysAndValues...)
	}

	for _, ranking := range doc.Rankings {
		if ranking != nil && match(ranking) {
			return ranking, nil
		}
	}
	return nil, nil
}

var _ RankingRepository = (*jsonRankingRepository)(nil)

// jsonItemRepository mirrors jsonRankingRepository for the items array.
type jsonItemRepository struct {
	source *JSONSource
	logger *logger.Logger
	now    Clock
}

func NewJSONItemRepository(source *JSONSource, logger *logger.Logger) ItemRepository {
	return &jsonItemRepository{source: source, logger: logger, now: time.Now}
}

func (r *jsonItemRepository) ListByRanking(ctx context.Context, rankingID string) ([]*entity.RankingItem, error) {
	items, err := r.load(ctx, rankingID)
	if err != nil {
		return nil, storageFailure(r.logger, "item.list", MsgFetchItems, err, "ranking_id", rankingID)
	}
	return items, nil
}

func (r *jsonItemRepository) FindByID(ctx context.Context, rankingID, id string) (*entity.RankingItem, error) {
	items, err := r.load(ctx, rankingID)
	if err != nil {
		return nil, storageFailure(r.logger, "item.find_by_id", MsgFetchItem, err, "ranking_id", rankingID, "item_id", id)
	}

	for _, item := range items {
		if item.ID == id {
			return item, nil
		}
	}
	return nil, nil
}

func (r *jsonItemRepository) Create(ctx context.Context, dto entity.CreateItemDTO) (*entity.RankingItem, error) {
	items, err := r.ListByRanking(ctx, dto.RankingID)
	if err != nil {
		return nil, err
	}

	now := r.now()
	return &entity.RankingItem{
		ID:          uuid.New().String(),
		RankingID:   dto.RankingID,
		Title:       dto.Title,
		Description: dto.Description,
		ImageURL:    dto.ImageURL,
		Metadata:    dto.Metadata,
		Position:    len(items) + 1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (r *jsonItemRepository) Update(ctx context.Context, dto entity.UpdateItemDTO) (*entity.RankingItem, error) {
	existing, err := r.FindByID(ctx, dto.RankingID, dto.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	applyItemUpdate(existing, dto, r.now())
	return existing, nil
}

func (r *jsonItemRepository) Delete(ctx context.Context, rankingID, id string) error {
	existing, err := r.FindByID(ctx, rankingID, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	return nil
}

func (r *jsonItemRepository) Reorder(ctx context.Context, rankingID string, orderedIDs []string) ([]*entity.RankingItem, error) {
	items, err := r.ListByRanking(ctx, rankingID)
	if err != nil {
		return nil, err
	}
	return reorderItems(items, orderedIDs)
}

func (r *jsonItemRepository) load(ctx context.Context, rankingID string) ([]*entity.RankingItem, error) {
	doc, err := r.source.Load(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]*entity.RankingItem, 0)
	for _, item := range doc.Items {
		if item != nil && item.RankingID == rankingID {
			items = append(items, item)
		}
	}
	sortByPosition(items)
	return items, nil
}

var _ ItemRepository = (*jsonItemRepository)(nil)

package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"mime/multipart"
	"strings"
	"time"

	"rankings-admin/pkg/logger"
	"rankings-admin/pkg/queue"
	"rankings-admin/pkg/s3"
	"rankings-admin/pkg/validation"
	"rankings-admin/services/ranking/internal/entity"
	"rankings-admin/services/ranking/internal/repo/persistent"

	"github.com/google/uuid"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ImageStorage is the object store used for cover images.
type ImageStorage interface {
	UploadFile(key string, file multipart.File, contentType string) (string, error)
	DeleteFile(key string) error
}

// EventPublisher receives ranking lifecycle events.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
}

type RankingEvent struct {
	RankingID  string               `json:"rankingId"`
	Slug       string               `json:"slug"`
	Title      string               `json:"title"`
	Status     entity.RankingStatus `json:"status"`
	OccurredAt time.Time            `json:"occurredAt"`
}

type RankingUseCase interface {
	CreateRanking(ctx context.Context, dto entity.CreateRankingDTO) (*entity.Ranking, error)
	GetRanking(ctx context.Context, id string) (*entity.Ranking, error)
	GetRankingBySlug(ctx context.Context, slug string) (*entity.Ranking, error)
	ListRankings(ctx context.Context, query entity.RankingQuery) (*entity.RankingPage, error)
	UpdateRanking(ctx context.Context, dto entity.UpdateRankingDTO) (*entity.Ranking, error)
	DeleteRanking(ctx context.Context, id string) error
	SetCoverImage(ctx context.Context, id string, file multipart.File, filename, contentType string) (*entity.Ranking, error)
	PublicRankings(ctx context.Context, query entity.RankingQuery) (*entity.RankingPage, error)
	PublicRanking(ctx context.Context, slug string) (*entity.Ranking, error)
}

type rankingUseCase struct {
	rankingRepo     persistent.RankingRepository
	images          ImageStorage
	events          EventPublisher
	validator       *validation.Validator
	defaultAuthorID string
	logger          *logger.Logger
	now             func() time.Time
}

// NewRankingUseCase wires the ranking service. images and events may be nil.
func NewRankingUseCase(
	rankingRepo persistent.RankingRepository,
	images ImageStorage,
	events EventPublisher,
	defaultAuthorID string,
	logger *logger.Logger,
) RankingUseCase {
	return &rankingUseCase{
		rankingRepo:     rankingRepo,
		images:          images,
		events:          events,
		validator:       validation.New(),
		defaultAuthorID: defaultAuthorID,
		logger:          logger,
		now:             time.Now,
	}
}

func (uc *rankingUseCase) CreateRanking(ctx context.Context, dto entity.CreateRankingDTO) (*entity.Ranking, error) {
	dto.Title = uc.validator.Sanitize(dto.Title)
	dto.Description = uc.validator.Sanitize(dto.Description)
	dto.Category = uc.validator.Sanitize(dto.Category)
	dto.CoverImage = trimOptional(dto.CoverImage)
	if dto.AuthorID == "" {
		dto.AuthorID = uc.defaultAuthorID
	}

	schema := validation.RankingSchema{
		Title:       dto.Title,
		Description: dto.Description,
		CoverImage:  valueOf(dto.CoverImage),
		Category:    dto.Category,
		CycleLength: dto.CycleLength,
	}
	if err := newValidationError(uc.validator.Struct(schema)); err != nil {
		return nil, err
	}

	ranking, err := uc.rankingRepo.Create(ctx, dto)
	if err != nil {
		return nil, fmt.Errorf("create ranking: %w", err)
	}

	uc.log("create", ranking.ID).Info("ranking created: slug=%s status=%s", ranking.Slug, ranking.Status)
	uc.publish(ctx, queue.RoutingKeyRankingCreated, ranking)
	if ranking.IsPublished() {
		uc.publish(ctx, queue.RoutingKeyRankingPublished, ranking)
	}

	return ranking, nil
}

func (uc *rankingUseCase) GetRanking(ctx context.Context, id string) (*entity.Ranking, error) {
	ranking, err := uc.rankingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get ranking: %w", err)
	}
	if ranking == nil {
		return nil, ErrRankingNotFound
	}
	return ranking, nil
}

func (uc *rankingUseCase) GetRankingBySlug(ctx context.Context, slug string) (*entity.Ranking, error) {
	ranking, err := uc.rankingRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get ranking by slug: %w", err)
	}
	if ranking == nil {
		return nil, ErrRankingNotFound
	}
	return ranking, nil
}

// ListRankings loads every ranking, then filters and paginates in process.
func (uc *rankingUseCase) ListRankings(ctx context.Context, query entity.RankingQuery) (*entity.RankingPage, error) {
	if query.Status != "" && !query.Status.Valid() {
		return nil, fieldError("status", "status must be one of: draft, published, archived")
	}

	rankings, err := uc.rankingRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rankings: %w", err)
	}

	return paginate(filterRankings(rankings, query), query), nil
}

func (uc *rankingUseCase) UpdateRanking(ctx context.Context, dto entity.UpdateRankingDTO) (*entity.Ranking, error) {
	existing, err := uc.GetRanking(ctx, dto.ID)
	if err != nil {
		return nil, err
	}

	if err := uc.validateUpdate(&dto); err != nil {
		return nil, err
	}

	ranking, err := uc.rankingRepo.Update(ctx, dto)
	if errors.Is(err, persistent.ErrNotFound) {
		return nil, ErrRankingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update ranking: %w", err)
	}

	if !existing.IsPublished() && ranking.IsPublished() {
		uc.publish(ctx, queue.RoutingKeyRankingPublished, ranking)
	}

	return ranking, nil
}

func (uc *rankingUseCase) DeleteRanking(ctx context.Context, id string) error {
	ranking, err := uc.GetRanking(ctx, id)
	if err != nil {
		return err
	}

	if ranking.IsPublished() {
		uc.log("delete", id).Warn("deleting published ranking %q", ranking.Title)
	}

	err = uc.rankingRepo.Delete(ctx, id)
	if errors.Is(err, persistent.ErrNotFound) {
		return ErrRankingNotFound
	}
	if err != nil {
		return fmt.Errorf("delete ranking: %w", err)
	}

	uc.publish(ctx, queue.RoutingKeyRankingDeleted, ranking)
	return nil
}

func (uc *rankingUseCase) SetCoverImage(ctx context.Context, id string, file multipart.File, filename, contentType string) (*entity.Ranking, error) {
	if uc.images == nil {
		return nil, ErrImageStorageUnavailable
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fieldError("image", "image must be an image file")
	}

	existing, err := uc.GetRanking(ctx, id)
	if err != nil {
		return nil, err
	}

	key := s3.CoverKey(id, uuid.New().String(), filename)
	url, err := uc.images.UploadFile(key, file, contentType)
	if err != nil {
		uc.log("set_cover", id).Error("upload cover image: %v", err)
		return nil, fmt.Errorf("upload cover image: %w", err)
	}

	ranking, err := uc.UpdateRanking(ctx, entity.UpdateRankingDTO{ID: id, CoverImage: &url})
	if err != nil {
		uc.deleteCover(id, key)
		return nil, err
	}

	// Only objects this service stored under the ranking's prefix are removed.
	if existing.CoverImage != nil {
		if previous, ok := s3.CoverKeyFromURL(id, *existing.CoverImage); ok && previous != key {
			uc.deleteCover(id, previous)
		}
	}

	return ranking, nil
}

func (uc *rankingUseCase) deleteCover(rankingID, key string) {
	if err := uc.images.DeleteFile(key); err != nil {
		uc.log("set_cover", rankingID).Warn("delete cover object %s: %v", key, err)
	}
}

func (uc *rankingUseCase) PublicRankings(ctx context.Context, query entity.RankingQuery) (*entity.RankingPage, error) {
	query.Status = entity.StatusPublished
	return uc.ListRankings(ctx, query)
}

// PublicRanking hides everything that is not published behind not-found.
func (uc *rankingUseCase) PublicRanking(ctx context.Context, slug string) (*entity.Ranking, error) {
	ranking, err := uc.GetRankingBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !ranking.IsPublished() {
		return nil, ErrRankingNotFound
	}
	return ranking, nil
}

// validateUpdate sanitizes the supplied fields in place and checks only those.
func (uc *rankingUseCase) validateUpdate(dto *entity.UpdateRankingDTO) error {
	var schema validation.RankingSchema
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
	if dto.CoverImage != nil {
		cover := strings.TrimSpace(*dto.CoverImage)
		dto.CoverImage = &cover
		schema.CoverImage = cover
		fields = append(fields, "CoverImage")
	}
	if dto.Category != nil {
		category := uc.validator.Sanitize(*dto.Category)
		dto.Category = &category
		schema.Category = category
		fields = append(fields, "Category")
	}
	if dto.Status != nil {
		schema.Status = string(*dto.Status)
		fields = append(fields, "Status")
	}
	if dto.CycleLength != nil {
		schema.CycleLength = *dto.CycleLength
		fields = append(fields, "CycleLength")
	}

	fieldErrors := uc.validator.Partial(schema, fields...)
	if dto.Status != nil && !dto.Status.Valid() {
		fieldErrors.Add("status", "status must be one of: draft, published, archived")
	}
	return newValidationError(fieldErrors)
}

func (uc *rankingUseCase) publish(ctx context.Context, routingKey string, ranking *entity.Ranking) {
	if uc.events == nil {
		return
	}

	event := RankingEvent{
		RankingID:  ranking.ID,
		Slug:       ranking.Slug,
		Title:      ranking.Title,
		Status:     ranking.Status,
		OccurredAt: uc.now(),
	}
	if err := uc.events.Publish(ctx, routingKey, event); err != nil {
		uc.log("publish", ranking.ID).Error("publish %s: %v", routingKey, err)
	}
}

func (uc *rankingUseCase) log(op, rankingID string) *logger.Logger {
	return uc.logger.With("op", "ranking."+op, "ranking_id", rankingID)
}

func filterRankings(rankings []*entity.Ranking, query entity.RankingQuery) []*entity.Ranking {
	search := strings.ToLower(strings.TrimSpace(query.Search))

	result := make([]*entity.Ranking, 0, len(rankings))
	for _, ranking := range rankings {
		if query.Status != "" && ranking.Status != query.Status {
			continue
		}
		if search != "" && !matchesSearch(ranking, search) {
			continue
		}
		result = append(result, ranking)
	}
	return result
}

func matchesSearch(ranking *entity.Ranking, search string) bool {
	return strings.Contains(strings.ToLower(ranking.Title), search) ||
		strings.Contains(strings.ToLower(ranking.Description), search) ||
		strings.Contains(strings.ToLower(ranking.Category), search)
}

func paginate(rankings []*entity.Ranking, query entity.RankingQuery) *entity.RankingPage {
	page := query.Page
	if page < 1 {
		page = DefaultPage
	}
	limit := query.Limit
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	count := len(rankings)
	// Compare in pages first so huge page numbers cannot overflow the offset.
	start := count
	if page-1 <= count/limit {
		start = min((page-1)*limit, count)
	}
	end := min(start+limit, count)

	return &entity.RankingPage{
		Rankings: rankings[start:end],
		Pagination: entity.Pagination{
			Current: page,
			Total:   int(math.Ceil(float64(count) / float64(limit))),
			Count:   count,
		},
	}
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func valueOf(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

package http

import (
	"net/http"

	"rankings-admin/pkg/logger"
	"rankings-admin/pkg/middleware"
	"rankings-admin/pkg/validation"
	"rankings-admin/services/ranking/internal/entity"
	"rankings-admin/services/ranking/internal/usecase"

	"github.com/gin-gonic/gin"
)

type RankingHandler struct {
	rankingUseCase usecase.RankingUseCase
	logger         *logger.Logger
}

func NewRankingHandler(rankingUseCase usecase.RankingUseCase, logger *logger.Logger) *RankingHandler {
	return &RankingHandler{
		rankingUseCase: rankingUseCase,
		logger:         logger,
	}
}

type CreateRankingRequest struct {
	Title            string  `json:"title" example:"Best Films"`
	Description      string  `json:"description" example:"The greatest films of the decade"`
	IsActive         *bool   `json:"isActive"`
	AllowSuggestions *bool   `json:"allowSuggestions"`
	CycleLength      *int    `json:"cycleLength" example:"30"`
	Category         string  `json:"category" example:"movies"`
	CoverImage       *string `json:"coverImage"`
}

// UpdateRankingRequest is partial: omitted fields keep their stored value.
// An explicit status wins over isActive.
type UpdateRankingRequest struct {
	Title            *string `json:"title"`
	Description      *string `json:"description"`
	IsActive         *bool   `json:"isActive"`
	Status           *string `json:"status" enums:"draft,published,archived"`
	AllowSuggestions *bool   `json:"allowSuggestions"`
	CycleLength      *int    `json:"cycleLength"`
	Category         *string `json:"category"`
	CoverImage       *string `json:"coverImage"`
}

func (r CreateRankingRequest) toDTO(authorID string) entity.CreateRankingDTO {
	cycle := entity.DefaultCycleLengthDays
	if r.CycleLength != nil {
		cycle = *r.CycleLength
	}

	return entity.CreateRankingDTO{
		AuthorID:         authorID,
		Title:            r.Title,
		Description:      r.Description,
		CoverImage:       r.CoverImage,
		Category:         r.Category,
		IsActive:         r.IsActive != nil && *r.IsActive,
		AllowSuggestions: r.AllowSuggestions != nil && *r.AllowSuggestions,
		CycleLength:      cycle,
	}
}

func (r UpdateRankingRequest) toDTO(id string) entity.UpdateRankingDTO {
	dto := entity.UpdateRankingDTO{
		ID:               id,
		Title:            r.Title,
		Description:      r.Description,
		CoverImage:       r.CoverImage,
		Category:         r.Category,
		AllowSuggestions: r.AllowSuggestions,
		CycleLength:      r.CycleLength,
	}

	switch {
	case r.Status != nil:
		status := entity.RankingStatus(*r.Status)
		dto.Status = &status
	case r.IsActive != nil:
		status := entity.StatusFromActive(*r.IsActive)
		dto.Status = &status
	}
	return dto
}

// ListRankings godoc
// @Summary      List rankings
// @Description  Search and paginate every ranking
// @Tags         admin-rankings
// @Produce      json
// @Security     AdminToken
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Page size (max 100)" default(10)
// @Param        search query string false "Case-insensitive match on title, description and category"
// @Param        status query string false "Status filter" Enums(draft, published, archived)
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /admin/rankings [get]
func (h *RankingHandler) ListRankings(c *gin.Context) {
	query, fields := parseRankingQuery(c)
	if !fields.Empty() {
		fail(c, http.StatusBadRequest, "Validation failed", fields)
		return
	}

	page, err := h.rankingUseCase.ListRankings(c.Request.Context(), query)
	if err != nil {
		respondError(c, h.logger, "ranking.list", err)
		return
	}

	pageResponse(c, page)
}

// CreateRanking godoc
// @Summary      Create a ranking
// @Description  Create a ranking; the slug is derived from the title
// @Tags         admin-rankings
// @Accept       json
// @Produce      json
// @Security     AdminToken
// @Param        request body CreateRankingRequest true "Ranking fields"
// @Success      201  {object}  Response{data=entity.Ranking}
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /admin/rankings [post]
func (h *RankingHandler) CreateRanking(c *gin.Context) {
	var req CreateRankingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	ranking, err := h.rankingUseCase.CreateRanking(c.Request.Context(), req.toDTO(c.GetString(middleware.ContextUserID)))
	if err != nil {
		respondError(c, h.logger, "ranking.create", err)
		return
	}

	ok(c, http.StatusCreated, ranking, "Ranking created successfully")
}

// GetRanking godoc
// @Summary      Get ranking by ID
// @Tags         admin-rankings
// @Produce      json
// @Security     AdminToken
// @Param        id path string true "Ranking ID"
// @Success      200  {object}  Response{data=entity.Ranking}
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /admin/rankings/{id} [get]
func (h *RankingHandler) GetRanking(c *gin.Context) {
	ranking, err := h.rankingUseCase.GetRanking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "ranking.get", err)
		return
	}

	ok(c, http.StatusOK, ranking, "")
}

// UpdateRanking godoc
// @Summary      Update a ranking
// @Description  Partial update; omitted fields are left unchanged
// @Tags         admin-rankings
// @Accept       json
// @Produce      json
// @Security     AdminToken
// @Param        id path string true "Ranking ID"
// @Param        request body UpdateRankingRequest true "Fields to change"
// @Success      200  {object}  Response{data=entity.Ranking}
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /admin/rankings/{id} [put]
func (h *RankingHandler) UpdateRanking(c *gin.Context) {
	var req UpdateRankingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	ranking, err := h.rankingUseCase.UpdateRanking(c.Request.Context(), req.toDTO(c.Param("id")))
	if err != nil {
		respondError(c, h.logger, "ranking.update", err)
		return
	}

	ok(c, http.StatusOK, ranking, "Ranking updated successfully")
}

// DeleteRanking godoc
// @Summary      Delete a ranking
// @Description  Soft delete; the ranking disappears from every read
// @Tags         admin-rankings
// @Produce      json
// @Security     AdminToken
// @Param        id path string true "Ranking ID"
// @Success      200  {object}  Response
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /admin/rankings/{id} [delete]
func (h *RankingHandler) DeleteRanking(c *gin.Context) {
	if err := h.rankingUseCase.DeleteRanking(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, "ranking.delete", err)
		return
	}

	ok(c, http.StatusOK, nil, "Ranking deleted successfully")
}

// UploadCover godoc
// @Summary      Upload a cover image
// @Tags         admin-rankings
// @Accept       multipart/form-data
// @Produce      json
// @Security     AdminToken
// @Param        id path string true "Ranking ID"
// @Param        image formData file true "Cover image (jpg/png/webp)"
// @Success      200  {object}  Response{data=entity.Ranking}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      503  {object}  ErrorResponse
// @Router       /admin/rankings/{id}/cover [post]
func (h *RankingHandler) UploadCover(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		fail(c, http.StatusBadRequest, "Validation failed", validation.FieldErrors{"image": "image is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		fail(c, http.StatusBadRequest, "Failed to read uploaded file", nil)
		return
	}
	defer file.Close()

	ranking, err := h.rankingUseCase.SetCoverImage(
		c.Request.Context(),
		c.Param("id"),
		file,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		respondError(c, h.logger, "ranking.cover", err)
		return
	}

	ok(c, http.StatusOK, ranking, "Cover image updated successfully")
}

// PublicListRankings godoc
// @Summary      List published rankings
// @Tags         rankings
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Page size (max 100)" default(10)
// @Param        search query string false "Search text"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Router       /rankings [get]
func (h *RankingHandler) PublicListRankings(c *gin.Context) {
	query, fields := parseRankingQuery(c)
	if !fields.Empty() {
		fail(c, http.StatusBadRequest, "Validation failed", fields)
		return
	}

	page, err := h.rankingUseCase.PublicRankings(c.Request.Context(), query)
	if err != nil {
		respondError(c, h.logger, "ranking.public_list", err)
		return
	}

	pageResponse(c, page)
}

// PublicGetRanking godoc
// @Summary      Get a published ranking by slug
// @Tags         rankings
// @Produce      json
// @Param        slug path string true "Ranking slug"
// @Success      200  {object}  Response{data=entity.Ranking}
// @Failure      404  {object}  ErrorResponse
// @Router       /rankings/{slug} [get]
func (h *RankingHandler) PublicGetRanking(c *gin.Context) {
	ranking, err := h.rankingUseCase.PublicRanking(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, h.logger, "ranking.public_get", err)
		return
	}

	ok(c, http.StatusOK, ranking, "")
}

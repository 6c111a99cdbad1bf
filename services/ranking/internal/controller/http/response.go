package http

import (
	"errors"
	"net/http"
	"strconv"

	"rankings-admin/pkg/logger"
	"rankings-admin/pkg/validation"
	"rankings-admin/services/ranking/internal/entity"
	"rankings-admin/services/ranking/internal/repo/persistent"
	"rankings-admin/services/ranking/internal/usecase"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Success    bool               `json:"success"`
	Data       interface{}        `json:"data,omitempty"`
	Message    string             `json:"message,omitempty"`
	Pagination *entity.Pagination `json:"pagination,omitempty"`
}

type ErrorResponse struct {
	Success bool              `json:"success"`
	Error   string            `json:"error"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func ok(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, Response{Success: true, Data: data, Message: message})
}

func fail(c *gin.Context, status int, message string, fields validation.FieldErrors) {
	c.JSON(status, ErrorResponse{Success: false, Error: message, Errors: fields})
}

// respondError is the single place use case errors become status codes.
func respondError(c *gin.Context, log *logger.Logger, op string, err error) {
	var validationErr *usecase.ValidationError
	var repoErr *persistent.RepositoryError

	switch {
	case errors.As(err, &validationErr):
		fail(c, http.StatusBadRequest, "Validation failed", validationErr.Fields)
	case errors.Is(err, usecase.ErrRankingNotFound):
		fail(c, http.StatusNotFound, "Ranking not found", nil)
	case errors.Is(err, usecase.ErrItemNotFound):
		fail(c, http.StatusNotFound, "Ranking item not found", nil)
	case errors.Is(err, usecase.ErrImageStorageUnavailable):
		fail(c, http.StatusServiceUnavailable, "Image storage is not available", nil)
	case errors.As(err, &repoErr):
		fail(c, http.StatusInternalServerError, repoErr.Message, nil)
	default:
		log.With("op", op).Error("unexpected error: %v", err)
		fail(c, http.StatusInternalServerError, "Internal server error", nil)
	}
}

func invalidBody(c *gin.Context) {
	fail(c, http.StatusBadRequest, "Invalid request body", nil)
}

// queryInt reads an optional positive integer query parameter; 0 means absent.
func queryInt(c *gin.Context, name string, fields validation.FieldErrors) int {
	raw := c.Query(name)
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		fields.Add(name, name+" must be a positive integer")
		return 0
	}
	return value
}

func parseRankingQuery(c *gin.Context) (entity.RankingQuery, validation.FieldErrors) {
	fields := validation.FieldErrors{}
	query := entity.RankingQuery{
		Page:   queryInt(c, "page", fields),
		Limit:  queryInt(c, "limit", fields),
		Search: c.Query("search"),
		Status: entity.RankingStatus(c.Query("status")),
	}
	return query, fields
}

func pageResponse(c *gin.Context, page *entity.RankingPage) {
	rankings := page.Rankings
	if rankings == nil {
		rankings = []*entity.Ranking{}
	}
	pagination := page.Pagination
	c.JSON(http.StatusOK, Response{Success: true, Data: rankings, Pagination: &pagination})
}

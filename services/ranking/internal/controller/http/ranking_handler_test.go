package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"rankings-admin/pkg/logger"
	"rankings-admin/pkg/validation"
	"rankings-admin/services/ranking/internal/entity"
	"rankings-admin/services/ranking/internal/repo/persistent"
	"rankings-admin/services/ranking/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupRankingRouter(mockUseCase *MockRankingUseCase) *gin.Engine {
	handler := NewRankingHandler(mockUseCase, logger.NewNop())

	router := setupTestRouter()
	admin := router.Group("/api/admin", func(c *gin.Context) {
		c.Set("user_id", "admin")
		c.Next()
	})
	admin.GET("/rankings", handler.ListRankings)
	admin.POST("/rankings", handler.CreateRanking)
	admin.GET("/rankings/:id", handler.GetRanking)
	admin.PUT("/rankings/:id", handler.UpdateRanking)
	admin.DELETE("/rankings/:id", handler.DeleteRanking)
	admin.POST("/rankings/:id/cover", handler.UploadCover)
	router.GET("/api/rankings", handler.PublicListRankings)
	router.GET("/api/rankings/:slug", handler.PublicGetRanking)
	return router
}

func jsonRequest(method, path string, body interface{}) *http.Request {
	raw, _ := json.Marshal(body)
	req, _ := http.NewRequest(method, path, bytes.NewBuffer(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func TestCreateRanking_Success(t *testing.T) {
	mockUseCase := new(MockRankingUseCase)
	router := setupRankingRouter(mockUseCase)

	mockUseCase.On("CreateRanking", entity.CreateRankingDTO{
		AuthorID:    "admin",
		Title:       "Best Films",
		Description: "desc",
		CycleLength: 30,
	}).Return(&entity.Ranking{ID: "r1", Title: "Best Films", Slug: "best-films-abc123", Status: entity.StatusDraft}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/api/admin/rankings", map[string]interface{}{
		"title":       "Best Films",
		"description": "desc",
		"cycleLength": 30,
	}))

	assert.Equal(t, http.StatusCreated, w.Code)
	response := decode(t, w)
	assert.Equal(t, true, response["success"])
	assert.Equal(t, "Ranking created successfully", response["message"])
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "draft", data["status"])
	assert.Equal(t, "best-films-abc123", data["slug"])
	mockUseCase.AssertExpectations(t)
}

func TestCreateRanking_DefaultCycleLength(t *testing.T) {
	mockUseCase := new(MockRankingUseCase)
	router := setupRankingRouter(mockUseCase)

	mockUseCase.On("CreateRanking", mock.MatchedBy(func(dto entity.CreateRankingDTO) bool {
		return dto.CycleLength == entity.DefaultCycleLengthDays && dto.IsActive
	})).Return(&entity.Ranking{ID: "r1"}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/api/admin/rankings", map[string]interface{}{
		"title": "Albums", "description": "desc", "isActive": true,
	}))

	assert.Equal(t, http.StatusCreated, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestCreateRanking_ValidationError(t *testing.T) {
	mockUseCase := new(MockRankingUseCase)
	router := setupRankingRouter(mockUseCase)

	mockUseCase.On("CreateRanking", mock.Anything).Return(nil, &usecase.ValidationError{
		Fields: validation.FieldErrors{"cycleLength": "cycleLength must be at most 365"},
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/api/admin/rankings", map[string]interface{}{
		"title": "Best Films", "description": "desc", "cycleLength": 400,
	}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Validation failed","errors":{"cycleLength":"cycleLength must be at most 365"}}`, w.Body.String())
}

func TestCreateRanking_InvalidBody(t *testing.T) {
	mockUseCase := new(MockRankingUseCase)
	router := setupRankingRouter(mockUseCase)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/admin/rankings", bytes.NewBufferString(`{"title": 5`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUseCase.AssertNotCalled(t, "CreateRanking", mock.Anything)
}

func TestCreateRanking_RepositoryError(t *testing.T) {
	mockUseCase := new(MockRankingUseCase)
	router := setupRankingRouter(mockUseCase)

	mockUseCase.On("CreateRanking", mock.Anything).Return(nil, &persistent.RepositoryError{
		Op: "ranking.create", Message: persistent.MsgCreateRanking,
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/api/admin/rankings", map[string]interface{}{"title": "x", "description": "y"}))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"failed to create ranking"}`, w.Body.String())
}

func TestListRankings(t *testing.T) {
	mockUseCase := new(MockRankingUseCase)
	router := setupRankingRouter(mockUseCase)

	mockUseCase.On("ListRankings", entity.RankingQuery{Page: 2, Limit: 10, Search: "film", Status: entity.StatusDraft}).
		Return(&entity.RankingPage{
			Rankings:   []*entity.Ranking{{ID: "r11"}, {ID: "r12"}},
			Pagination: entity.Pagination{Current: 2, Total: 2, Count: 12},
		}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/admin/rankings?page=2&limit=10&search=film&status=draft", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	response := decode(t, w)
	assert.Len(t, response["data"], 2)
	assert.Equal(t, map[string]interface{}{"current": float64(2), "total": float64(2), "count": float64(12)}, response["pagination"])
}

func TestListRankings_EmptyDataIsArray(t *testing.T) {
	mockUseCase := new(MockRankingUseCase)
	router := setupRankingRouter(mockUseCase)

	mockUseCase.On("ListRankings", entity.RankingQuery{}).Return(&entity.RankingPage{}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/admin/rankings", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":[],"pagination":{"current":0,"total":0,"count":0}}`, w.Body.String())
}

func TestListRankings_BadPage(t *testing.T) {
	mockUseCase := new(MockRankingUseCase)
	router := setupRankingRouter(mockUseCase)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/admin/rankings?page=abc&limit=0", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	response := decode(t, w)
	errs := response["errors"].(map[string]interface{})
	assert.Contains(t, errs, "page")
	assert.Contains(t, errs, "limit")
	mockUseCase.AssertNotCalled(t, "ListRankings", mock.Anything)
}

func TestGetRanking_NotFound(t *testing.T) {
	mockUseCase := new(MockRankingUseCase)
	router := setupRankingRouter(mockUseCase)

	mockUseCase.On("GetRanking", "missing").Return(nil, usecase.ErrRankingNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/admin/rankings/missing", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Ranking not found"}`, w.Body.String())
}

func TestUpdateRanking_IsActiveMapsToStatus(t *testing.T) {
	mockUseCase := new(MockRankingUseCase)
	router := setupRankingRouter(mockUseCase)

	mockUseCase.On("UpdateRanking", mock.MatchedBy(func(dto entity.UpdateRankingDTO) bool {
		return dto.ID == "r1" && dto.Status != nil && *dto.Status == entity.StatusPublished &&
			dto.Title == nil && dto.Description != nil && *dto.Description == "new"
	})).Return(&entity.Ranking{ID: "r1", Status: entity.StatusPublished}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("PUT", "/api/admin/rankings/r1", map[string]interface{}{
		"isActive": true, "description": "new",
	}))

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestUpdateRanking_ExplicitStatusWins(t *testing.T) {
	mockUseCase := new(MockRankingUseCase)
	router := setupRankingRouter(mockUseCase)

	mockUseCase.On("UpdateRanking", mock.MatchedBy(func(dto entity.UpdateRankingDTO) bool {
		return dto.Status != nil && *dto.Status == entity.StatusArchived
	})).Return(&entity.Ranking{ID: "r1", Status: entity.StatusArchived}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("PUT", "/api/admin/rankings/r1", map[string]interface{}{
		"isActive": true, "status": "archived",
	}))

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestDeleteRanking(t *testing.T) {
	mockUseCase := new(MockRankingUseCase)
	router := setupRankingRouter(mockUseCase)

	mockUseCase.On("DeleteRanking", "r1").Return(nil).Once()
	mockUseCase.On("DeleteRanking", "r1").Return(usecase.ErrRankingNotFound).Once()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/api/admin/rankings/r1", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"message":"Ranking deleted successfully"}`, w.Body.String())

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("DELETE", "/api/admin/rankings/r1", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteRanking_UnexpectedError(t *testing.T) {
	mockUseCase := new(MockRankingUseCase)
	router := setupRankingRouter(mockUseCase)

	mockUseCase.On("DeleteRanking", "r1").Return(errors.New("connection reset by peer"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/api/admin/rankings/r1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection reset")
}

func multipartImage(t *testing.T, field, filename, contentType string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("\x89PNG fake image"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func TestUploadCover(t *testing.T) {
	mockUseCase := new(MockRankingUseCase)
	router := setupRankingRouter(mockUseCase)

	url := "https://covers.s3.us-east-1.amazonaws.com/rankings/r1/cover/x.png"
	mockUseCase.On("SetCoverImage", "r1", "cover.png", "image/png").Return(&entity.Ranking{ID: "r1", CoverImage: &url}, nil)

	body, contentType := multipartImage(t, "image", "cover.png", "image/png")
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/admin/rankings/r1/cover", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, url, data["coverImage"])
}

func TestUploadCover_MissingFile(t *testing.T) {
	mockUseCase := new(MockRankingUseCase)
	router := setupRankingRouter(mockUseCase)

	body, contentType := multipartImage(t, "other", "cover.png", "image/png")
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/admin/rankings/r1/cover", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUseCase.AssertNotCalled(t, "SetCoverImage", mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadCover_StorageUnavailable(t *testing.T) {
	mockUseCase := new(MockRankingUseCase)
	router := setupRankingRouter(mockUseCase)

	mockUseCase.On("SetCoverImage", "r1", "cover.png", "image/png").Return(nil, usecase.ErrImageStorageUnavailable)

	body, contentType := multipartImage(t, "image", "cover.png", "image/png")
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/admin/rankings/r1/cover", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestPublicEndpoints(t *testing.T) {
	mockUseCase := new(MockRankingUseCase)
	router := setupRankingRouter(mockUseCase)

	mockUseCase.On("PublicRankings", entity.RankingQuery{Search: "film"}).Return(&entity.RankingPage{
		Rankings:   []*entity.Ranking{{ID: "r1", Status: entity.StatusPublished}},
		Pagination: entity.Pagination{Current: 1, Total: 1, Count: 1},
	}, nil)
	mockUseCase.On("PublicRanking", "best-films-abc123").Return(&entity.Ranking{ID: "r1", Slug: "best-films-abc123"}, nil)
	mockUseCase.On("PublicRanking", "draft-x").Return(nil, usecase.ErrRankingNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/rankings?search=film", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/api/rankings/best-films-abc123", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/api/rankings/draft-x", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

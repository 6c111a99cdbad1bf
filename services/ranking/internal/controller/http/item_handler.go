package http

import (
	"net/http"

	"rankings-admin/pkg/logger"
	"rankings-admin/services/ranking/internal/entity"
	"rankings-admin/services/ranking/internal/usecase"

	"github.com/gin-gonic/gin"
)

type ItemHandler struct {
	itemUseCase usecase.ItemUseCase
	logger      *logger.Logger
}

func NewItemHandler(itemUseCase usecase.ItemUseCase, logger *logger.Logger) *ItemHandler {
	return &ItemHandler{
		itemUseCase: itemUseCase,
		logger:      logger,
	}
}

type CreateItemRequest struct {
	Title       string                 `json:"title" example:"Heat"`
	Description string                 `json:"description"`
	ImageURL    *string                `json:"imageUrl"`
	Metadata    map[string]interface{} `json:"metadata"`
}

type UpdateItemRequest struct {
	Title       *string                `json:"title"`
	Description *string                `json:"description"`
	ImageURL    *string                `json:"imageUrl"`
	Metadata    map[string]interface{} `json:"metadata"`
}

type ReorderItemsRequest struct {
	ItemIDs []string `json:"itemIds"`
}

// ListItems godoc
// @Summary      List ranking items
// @Description  Items of a ranking ordered by position
// @Tags         admin-items
// @Produce      json
// @Security     AdminToken
// @Param        id path string true "Ranking ID"
// @Success      200  {object}  Response{data=[]entity.RankingItem}
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/rankings/{id}/items [get]
func (h *ItemHandler) ListItems(c *gin.Context) {
	items, err := h.itemUseCase.ListItems(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "item.list", err)
		return
	}
	if items == nil {
		items = []*entity.RankingItem{}
	}

	ok(c, http.StatusOK, items, "")
}

// AddItem godoc
// @Summary      Add an item
// @Description  Appends the item after the current last position
// @Tags         admin-items
// @Accept       json
// @Produce      json
// @Security     AdminToken
// @Param        id path string true "Ranking ID"
// @Param        request body CreateItemRequest true "Item fields"
// @Success      201  {object}  Response{data=entity.RankingItem}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/rankings/{id}/items [post]
func (h *ItemHandler) AddItem(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	item, err := h.itemUseCase.AddItem(c.Request.Context(), entity.CreateItemDTO{
		RankingID:   c.Param("id"),
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Metadata:    req.Metadata,
	})
	if err != nil {
		respondError(c, h.logger, "item.add", err)
		return
	}

	ok(c, http.StatusCreated, item, "Item added successfully")
}

// UpdateItem godoc
// @Summary      Update an item
// @Tags         admin-items
// @Accept       json
// @Produce      json
// @Security     AdminToken
// @Param        id path string true "Ranking ID"
// @Param        itemId path string true "Item ID"
// @Param        request body UpdateItemRequest true "Fields to change"
// @Success      200  {object}  Response{data=entity.RankingItem}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/rankings/{id}/items/{itemId} [put]
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	item, err := h.itemUseCase.UpdateItem(c.Request.Context(), entity.UpdateItemDTO{
		ID:          c.Param("itemId"),
		RankingID:   c.Param("id"),
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Metadata:    req.Metadata,
	})
	if err != nil {
		respondError(c, h.logger, "item.update", err)
		return
	}

	ok(c, http.StatusOK, item, "Item updated successfully")
}

// RemoveItem godoc
// @Summary      Remove an item
// @Description  Later items move up one position
// @Tags         admin-items
// @Produce      json
// @Security     AdminToken
// @Param        id path string true "Ranking ID"
// @Param        itemId path string true "Item ID"
// @Success      200  {object}  Response
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/rankings/{id}/items/{itemId} [delete]
func (h *ItemHandler) RemoveItem(c *gin.Context) {
	if err := h.itemUseCase.RemoveItem(c.Request.Context(), c.Param("id"), c.Param("itemId")); err != nil {
		respondError(c, h.logger, "item.remove", err)
		return
	}

	ok(c, http.StatusOK, nil, "Item removed successfully")
}

// ReorderItems godoc
// @Summary      Reorder items
// @Description  itemIds must list every item of the ranking exactly once
// @Tags         admin-items
// @Accept       json
// @Produce      json
// @Security     AdminToken
// @Param        id path string true "Ranking ID"
// @Param        request body ReorderItemsRequest true "Ordered item IDs"
// @Success      200  {object}  Response{data=[]entity.RankingItem}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/rankings/{id}/reorder [post]
func (h *ItemHandler) ReorderItems(c *gin.Context) {
	var req ReorderItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	items, err := h.itemUseCase.ReorderItems(c.Request.Context(), c.Param("id"), req.ItemIDs)
	if err != nil {
		respondError(c, h.logger, "item.reorder", err)
		return
	}

	ok(c, http.StatusOK, items, "Items reordered successfully")
}

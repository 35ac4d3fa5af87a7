package handlers

import (
	"net/http"
	"strconv"
	"time"

	"restomart/internal/common"
	"restomart/internal/models"
	"restomart/internal/services"

	"github.com/labstack/echo/v4"
)

// MenuHandlers handles HTTP requests for menu items.
type MenuHandlers struct {
	menuService  services.MenuService
	mediaService services.MediaService
}

func NewMenuHandlers(menuService services.MenuService, mediaService services.MediaService) *MenuHandlers {
	return &MenuHandlers{menuService: menuService, mediaService: mediaService}
}

// CreateItem handles POST /api/menu
func (h *MenuHandlers) CreateItem(c echo.Context) error {
	item := &models.MenuItem{IsAvailable: true}
	if err := c.Bind(item); err != nil {
		return respondError(c, common.ValidationError("body", "invalid request format"))
	}
	created, err := h.menuService.Create(c.Request().Context(), item)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusCreated, created)
}

// GetItem handles GET /api/menu/:id
func (h *MenuHandlers) GetItem(c echo.Context) error {
	id, err := common.ParseUUID(c.Param("id"), "id")
	if err != nil {
		return respondError(c, err)
	}
	item, err := h.menuService.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, item)
}

// ListItems handles GET /api/menu
func (h *MenuHandlers) ListItems(c echo.Context) error {
	filter := &models.MenuFilter{}
	if category := c.QueryParam("category"); category != "" {
		filter.Category = &category
	}
	if availableStr := c.QueryParam("available"); availableStr != "" {
		available := availableStr == "true"
		filter.Available = &available
	}
	items, err := h.menuService.List(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, items)
}

// UpdateItem handles PUT /api/menu/:id
func (h *MenuHandlers) UpdateItem(c echo.Context) error {
	id, err := common.ParseUUID(c.Param("id"), "id")
	if err != nil {
		return respondError(c, err)
	}
	patch := &models.MenuPatch{}
	if err := c.Bind(patch); err != nil {
		return respondError(c, common.ValidationError("body", "invalid request format"))
	}
	updated, err := h.menuService.Update(c.Request().Context(), id, patch)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, updated)
}

// DeleteItem handles DELETE /api/menu/:id
func (h *MenuHandlers) DeleteItem(c echo.Context) error {
	id, err := common.ParseUUID(c.Param("id"), "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.menuService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, map[string]interface{}{"deleted": true})
}

// Categories handles GET /api/menu/categories
func (h *MenuHandlers) Categories(c echo.Context) error {
	categories, err := h.menuService.Categories(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, categories)
}

// Search handles GET /api/menu/search?q=...
func (h *MenuHandlers) Search(c echo.Context) error {
	query := c.QueryParam("q")
	var category *string
	if cat := c.QueryParam("category"); cat != "" {
		category = &cat
	}
	items, err := h.menuService.Search(c.Request().Context(), query, category)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, items)
}

// CheckAvailability handles GET /api/menu/:id/availability?quantity=N
func (h *MenuHandlers) CheckAvailability(c echo.Context) error {
	id, err := common.ParseUUID(c.Param("id"), "id")
	if err != nil {
		return respondError(c, err)
	}
	quantity := 1
	if qStr := c.QueryParam("quantity"); qStr != "" {
		if q, err := strconv.Atoi(qStr); err == nil {
			quantity = q
		}
	}
	result, err := h.menuService.CheckAvailability(c.Request().Context(), id, quantity)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, result)
}

// CheckAvailabilityBatch handles POST /api/menu/availability
func (h *MenuHandlers) CheckAvailabilityBatch(c echo.Context) error {
	var req struct {
		Items []*models.CreateOrderLine `json:"items"`
	}
	if err := c.Bind(&req); err != nil {
		return respondError(c, common.ValidationError("body", "invalid request format"))
	}
	results, err := h.menuService.CheckAvailabilityBatch(c.Request().Context(), req.Items)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, results)
}

// IngredientStats handles GET /api/menu/stats/ingredients
func (h *MenuHandlers) IngredientStats(c echo.Context) error {
	stats, err := h.menuService.IngredientStats(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, stats)
}

// UploadImage handles POST /api/menu/:id/image
func (h *MenuHandlers) UploadImage(c echo.Context) error {
	id, err := common.ParseUUID(c.Param("id"), "id")
	if err != nil {
		return respondError(c, err)
	}
	file, err := c.FormFile("image")
	if err != nil {
		return respondError(c, common.ValidationError("image", "file is required"))
	}
	src, err := file.Open()
	if err != nil {
		return respondError(c, common.UnexpectedError("open uploaded file", err))
	}
	defer src.Close()

	ctx := c.Request().Context()
	objectName, err := h.mediaService.UploadMenuImage(ctx, id, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		return respondError(c, common.UnexpectedError("upload menu image", err))
	}
	url, err := h.mediaService.MenuImageURL(objectName, 24*time.Hour)
	if err != nil {
		return respondError(c, common.UnexpectedError("presign menu image", err))
	}

	imageURL := url
	if _, err := h.menuService.Update(ctx, id, &models.MenuPatch{ImageURL: &imageURL}); err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, map[string]interface{}{
		"object_name": objectName,
		"image_url":   url,
	})
}

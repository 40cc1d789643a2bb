package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/GarageLog/garage-log-backend/errors"
	"github.com/GarageLog/garage-log-backend/logger"
	"github.com/GarageLog/garage-log-backend/middleware"
	"github.com/GarageLog/garage-log-backend/models"
	"github.com/GarageLog/garage-log-backend/services"
	"github.com/GarageLog/garage-log-backend/types"
)

type TimelineHandler struct {
	timelineModel *models.TimelineModel
	photoStorage  services.PhotoStorage
}

// NewTimelineHandler creates a timeline handler. photoStorage may be nil when
// photo storage is not configured; photo URL fields are then omitted.
func NewTimelineHandler(model *models.TimelineModel, photoStorage services.PhotoStorage) *TimelineHandler {
	return &TimelineHandler{
		timelineModel: model,
		photoStorage:  photoStorage,
	}
}

// timelineItemResponse wraps a timeline item with a short-lived photo URL.
type timelineItemResponse struct {
	*types.TimelineItem
	PhotoURL string `json:"photoUrl,omitempty"`
}

func (h *TimelineHandler) itemResponse(c *gin.Context, item *types.TimelineItem) timelineItemResponse {
	resp := timelineItemResponse{TimelineItem: item}
	if item.PhotoKey != "" && h.photoStorage != nil {
		url, err := h.photoStorage.GetURL(c.Request.Context(), item.PhotoKey)
		if err != nil {
			logger.GetLogger().Warnw("Failed to presign photo URL", "photoKey", item.PhotoKey, "error", err)
		} else {
			resp.PhotoURL = url
		}
	}
	return resp
}

func (h *TimelineHandler) CreateItemHandler(c *gin.Context) {
	log := logger.GetLogger()

	var req types.CreateTimelineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Errorw("Invalid request body", "error", err)
		_ = c.Error(errors.ValidationFailed("Invalid request body", err.Error()))
		return
	}

	userID := middleware.GetUserID(c)
	if userID == "" {
		middleware.AbortUnauthorized(c, "User not authenticated")
		return
	}
	vehicleID := c.Param("id")

	item, err := h.timelineModel.CreateItem(c.Request.Context(), userID, userID, vehicleID, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	middleware.Success(c, http.StatusCreated, h.itemResponse(c, item))
}

// GetFeedHandler returns the rendered timeline feed for a vehicle: each item
// projected into title, subtitle, and card data, newest first.
func (h *TimelineHandler) GetFeedHandler(c *gin.Context) {
	userID := middleware.GetUserID(c)
	vehicleID := c.Param("id")

	limit, offset := paginationParams(c)

	entries, pageInfo, err := h.timelineModel.GetFeed(c.Request.Context(), userID, vehicleID, limit, offset)
	if err != nil {
		_ = c.Error(err)
		return
	}

	middleware.SuccessWithPagination(c, gin.H{"entries": entries}, pageInfo)
}

func (h *TimelineHandler) GetItemHandler(c *gin.Context) {
	userID := middleware.GetUserID(c)
	vehicleID := c.Param("id")
	itemID := c.Param("itemId")

	item, err := h.timelineModel.GetItem(c.Request.Context(), userID, vehicleID, itemID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	middleware.Success(c, http.StatusOK, h.itemResponse(c, item))
}

func (h *TimelineHandler) UpdateItemHandler(c *gin.Context) {
	log := logger.GetLogger()

	var req types.UpdateTimelineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Errorw("Invalid request body", "error", err)
		_ = c.Error(errors.ValidationFailed("Invalid request body", err.Error()))
		return
	}

	userID := middleware.GetUserID(c)
	vehicleID := c.Param("id")
	itemID := c.Param("itemId")

	item, err := h.timelineModel.UpdateItem(c.Request.Context(), userID, userID, vehicleID, itemID, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	middleware.Success(c, http.StatusOK, h.itemResponse(c, item))
}

func (h *TimelineHandler) DeleteItemHandler(c *gin.Context) {
	userID := middleware.GetUserID(c)
	vehicleID := c.Param("id")
	itemID := c.Param("itemId")

	if err := h.timelineModel.DeleteItem(c.Request.Context(), userID, userID, vehicleID, itemID); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// paginationParams reads limit/offset query parameters. The model clamps the
// values; this only has to produce integers.
func paginationParams(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	return limit, offset
}

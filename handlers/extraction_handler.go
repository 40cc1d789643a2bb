package handlers

import (
	"bytes"
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/GarageLog/garage-log-backend/errors"
	"github.com/GarageLog/garage-log-backend/logger"
	"github.com/GarageLog/garage-log-backend/middleware"
	"github.com/GarageLog/garage-log-backend/services"
	"github.com/GarageLog/garage-log-backend/types"
)

type ExtractionHandler struct {
	extractionService services.ExtractionServiceInterface
	photoStorage      services.PhotoStorage
}

func NewExtractionHandler(extractionService services.ExtractionServiceInterface, photoStorage services.PhotoStorage) *ExtractionHandler {
	return &ExtractionHandler{
		extractionService: extractionService,
		photoStorage:      photoStorage,
	}
}

// extractResponse is the extraction result plus the storage key of the
// uploaded photo, so the client can attach it to the timeline item it
// creates from the pre-filled fields.
type extractResponse struct {
	*types.ExtractionResponse
	PhotoKey string `json:"photoKey,omitempty"`
}

// ExtractHandler runs vision extraction over a capture for a vehicle. When a
// photo is supplied and storage is configured, the photo is persisted and its
// key returned alongside the extracted fields.
func (h *ExtractionHandler) ExtractHandler(c *gin.Context) {
	log := logger.GetLogger()

	var req types.ExtractionRequest
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

	result, err := h.extractionService.Extract(c.Request.Context(), userID, req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	resp := extractResponse{ExtractionResponse: result}

	if req.PhotoBase64 != "" && h.photoStorage != nil {
		photo, err := base64.StdEncoding.DecodeString(req.PhotoBase64)
		if err != nil {
			_ = c.Error(errors.ValidationFailed("Invalid photo encoding", err.Error()))
			return
		}
		key := services.PhotoKey(userID, vehicleID, uuid.NewString())
		if err := h.photoStorage.Save(c.Request.Context(), key, bytes.NewReader(photo), "image/jpeg"); err != nil {
			// Extraction already succeeded; losing the photo is not fatal.
			log.Errorw("Failed to store extraction photo", "key", key, "error", err)
		} else {
			resp.PhotoKey = key
		}
	}

	middleware.Success(c, http.StatusOK, resp)
}

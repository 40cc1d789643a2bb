package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/GarageLog/garage-log-backend/errors"
	"github.com/GarageLog/garage-log-backend/middleware"
	"github.com/GarageLog/garage-log-backend/types"
)

func extractionTestRouter(svc *MockExtractionService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewExtractionHandler(svc, nil)

	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.Use(func(c *gin.Context) {
		c.Set(string(middleware.UserIDKey), testUserID)
		c.Next()
	})
	r.POST("/vehicles/:id/extract", handler.ExtractHandler)
	return r
}

func TestExtractHandler(t *testing.T) {
	svc := new(MockExtractionService)
	r := extractionTestRouter(svc)

	svc.On("Extract", mock.Anything, testUserID, mock.Anything).
		Return(&types.ExtractionResponse{
			ExtractedData: types.ExtractedData{"cost": 42.5},
			SuggestedType: types.EventTypeFuel,
			Confidence:    0.9,
		}, nil)

	body, _ := json.Marshal(types.ExtractionRequest{OCRText: "SHELL $42.50"})
	req := httptest.NewRequest("POST", "/vehicles/v-1/extract", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Success bool                     `json:"success"`
		Data    types.ExtractionResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	assert.Equal(t, types.EventTypeFuel, envelope.Data.SuggestedType)
	assert.InDelta(t, 0.9, envelope.Data.Confidence, 0.0001)
}

func TestExtractHandlerRateLimited(t *testing.T) {
	svc := new(MockExtractionService)
	r := extractionTestRouter(svc)

	svc.On("Extract", mock.Anything, testUserID, mock.Anything).
		Return(nil, apperrors.RateLimited("extraction limit reached", "try again in 20m"))

	body, _ := json.Marshal(types.ExtractionRequest{OCRText: "receipt"})
	req := httptest.NewRequest("POST", "/vehicles/v-1/extract", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/GarageLog/garage-log-backend/config"
	apperrors "github.com/GarageLog/garage-log-backend/errors"
	"github.com/GarageLog/garage-log-backend/logger"
	"github.com/GarageLog/garage-log-backend/pkg/openai"
	"github.com/GarageLog/garage-log-backend/pkg/valueobjects"
	"github.com/GarageLog/garage-log-backend/types"
)

// costFields are extracted_data fields that carry monetary amounts. The model
// is asked for plain numbers, but OCR text leaks through as "$42.50" often
// enough that every cost field gets run through Money normalization.
var costFields = []string{"cost", "total_cost", "labor_cost", "parts_cost", "price_per_gallon"}

// ExtractionServiceInterface defines the contract for photo/document extraction.
type ExtractionServiceInterface interface {
	Extract(ctx context.Context, userID string, req types.ExtractionRequest) (*types.ExtractionResponse, error)
}

// ExtractionService turns a capture (photo and/or OCR text) into a suggested
// timeline item via a vision model, metering requests per user.
type ExtractionService struct {
	client      openai.ClientInterface
	rateLimiter RateLimiterInterface
	cfg         config.ExtractionConfig
}

func NewExtractionService(client openai.ClientInterface, rateLimiter RateLimiterInterface, cfg config.ExtractionConfig) *ExtractionService {
	return &ExtractionService{
		client:      client,
		rateLimiter: rateLimiter,
		cfg:         cfg,
	}
}

func (s *ExtractionService) Extract(ctx context.Context, userID string, req types.ExtractionRequest) (*types.ExtractionResponse, error) {
	log := logger.GetLogger()

	if req.PhotoBase64 == "" && req.OCRText == "" {
		return nil, apperrors.ValidationFailed(
			"invalid extraction request",
			"either photoBase64 or ocrText must be provided",
		)
	}

	allowed, retryAfter, err := s.rateLimiter.CheckLimit(
		ctx,
		ExtractionRateKey(userID),
		s.cfg.RequestsPerHour,
		time.Hour,
	)
	if err != nil {
		log.Errorw("Rate limit check failed", "userId", userID, "error", err)
		return nil, apperrors.InternalServerError("failed to check rate limit")
	}
	if !allowed {
		log.Infow("Extraction rate limit exceeded", "userId", userID, "retryAfter", retryAfter)
		return nil, apperrors.RateLimited(
			"extraction limit reached",
			fmt.Sprintf("try again in %s", retryAfter.Round(time.Second)),
		)
	}

	resp, err := s.client.ExtractVehicleEvent(ctx, req)
	if err != nil {
		log.Errorw("Vision extraction failed", "userId", userID, "error", err)
		return nil, apperrors.NewExtractionError(err)
	}

	normalizeCosts(resp.ExtractedData)

	if resp.SuggestedType == "" && req.TypeHint != "" {
		resp.SuggestedType = req.TypeHint
	}
	resp.ReviewLevel = types.ReviewLevelFor(resp.Confidence)

	log.Infow("Extraction completed",
		"userId", userID,
		"suggestedType", resp.SuggestedType,
		"confidence", resp.Confidence,
		"reviewLevel", resp.ReviewLevel,
		"fieldCount", len(resp.ExtractedData))
	return resp, nil
}

// normalizeCosts rewrites known cost fields to plain floats. Values that do
// not parse as money are left untouched; the renderers degrade gracefully
// over whatever shape remains.
func normalizeCosts(data types.ExtractedData) {
	for _, field := range costFields {
		raw, ok := data[field]
		if !ok {
			continue
		}
		str, isString := raw.(string)
		if !isString {
			continue
		}
		money, err := valueobjects.NewMoneyFromString(str)
		if err != nil {
			continue
		}
		data[field] = money.Float64()
	}
}
